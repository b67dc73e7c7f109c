package main

import "ftl-translator/internal/cli"

func main() {
	cli.Execute()
}
