package po

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Write serializes the file. Output depends only on the file contents, so an
// unchanged template is rewritten byte for byte.
func (f *File) Write(w io.Writer) error {
	bw := bufio.NewWriter(w)

	if f.Comment != "" {
		for _, line := range strings.Split(f.Comment, "\n") {
			writeComment(bw, "#", line)
		}
		bw.WriteString("\n")
	}

	if len(f.Metadata) > 0 {
		var sb strings.Builder
		for _, h := range f.Metadata {
			fmt.Fprintf(&sb, "%s: %s\n", h.Key, h.Value)
		}
		bw.WriteString("msgid \"\"\n")
		writeString(bw, "msgstr", sb.String(), true)
		bw.WriteString("\n")
	}

	for _, e := range f.Entries {
		for _, c := range e.Comments {
			writeComment(bw, "#", c)
		}
		for _, r := range e.References {
			writeComment(bw, "#:", r)
		}
		if len(e.Flags) > 0 {
			writeComment(bw, "#,", strings.Join(e.Flags, ", "))
		}
		if e.Context != "" {
			fmt.Fprintf(bw, "msgctxt \"%s\"\n", escape(e.Context))
		}
		writeString(bw, "msgid", e.ID, false)
		writeString(bw, "msgstr", e.Str, false)
		bw.WriteString("\n")
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write po file: %w", err)
	}
	return nil
}

func writeComment(w *bufio.Writer, prefix, text string) {
	if text == "" {
		w.WriteString(prefix + "\n")
		return
	}
	w.WriteString(prefix + " " + text + "\n")
}

// writeString emits a keyword and its quoted value. Values with line breaks
// become a block: an empty first string followed by one string per line.
func writeString(w *bufio.Writer, keyword, s string, block bool) {
	if !block && !strings.Contains(s, "\n") {
		fmt.Fprintf(w, "%s \"%s\"\n", keyword, escape(s))
		return
	}

	fmt.Fprintf(w, "%s \"\"\n", keyword)
	for _, line := range strings.SplitAfter(s, "\n") {
		if line == "" {
			continue
		}
		fmt.Fprintf(w, "\"%s\"\n", escape(line))
	}
}

var escaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	"\n", `\n`,
	"\t", `\t`,
	"\r", `\r`,
)

func escape(s string) string {
	return escaper.Replace(s)
}
