// Package pipeline runs the three batch stages of the translation workflow:
// template extraction, catalog population and injection of catalogs back into
// the game documents.
//
// Documents are processed one at a time in name order. A document that cannot
// be read is logged and skipped; an identifier that cannot be generated or
// parsed aborts the run.
package pipeline

import (
	"fmt"
	"os"

	"ftl-translator/internal/classify"
	"ftl-translator/internal/config"
	"ftl-translator/internal/filewalker"
	"ftl-translator/internal/memory"
	"ftl-translator/internal/parser"
	"ftl-translator/internal/textid"

	"github.com/schollz/progressbar/v3"
)

const (
	templateExt = ".pot"
	catalogExt  = ".po"
)

// Pipeline holds the components shared by the stages.
type Pipeline struct {
	walker *filewalker.Walker
	parser *parser.XMLParser
	ids    *textid.Generator
	memory memory.Store

	project      string
	version      string
	indent       int
	showProgress bool
}

// New builds a pipeline from cfg. A nil store disables the translation memory.
func New(cfg *config.Config, store memory.Store, showProgress bool) *Pipeline {
	if store == nil {
		store = memory.Nop{}
	}
	return &Pipeline{
		walker:       filewalker.NewWalker(cfg.FileExtensions, cfg.FileMarker),
		parser:       parser.NewXMLParser(classify.New(cfg.ExcludedTags), cfg.FileExtensions),
		ids:          textid.NewGenerator(cfg.AnchorTags),
		memory:       store,
		project:      cfg.ProjectLabel,
		version:      cfg.Version,
		indent:       cfg.XMLIndent,
		showProgress: showProgress,
	}
}

func (p *Pipeline) newBar(total int, desc string) *progressbar.ProgressBar {
	if !p.showProgress {
		return progressbar.DefaultSilent(int64(total))
	}
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription(fmt.Sprintf("[cyan]%s[reset]", desc)),
		progressbar.OptionOnCompletion(func() { fmt.Fprintln(os.Stderr) }),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}))
}
