// Package memory keeps a translation memory of the source/translation pairs
// matched while populating catalogs.
package memory

import (
	"context"
	"fmt"
	"io"
	"strings"
)

// Pair is one translated text node.
type Pair struct {
	Lang        string `json:"lang"`
	File        string `json:"file"`
	Context     string `json:"context"`
	Source      string `json:"source"`
	Translation string `json:"translation"`
}

// Store receives the pairs matched for each catalog.
type Store interface {
	Record(ctx context.Context, pairs []Pair) error
}

// Nop discards pairs. It is used when no database is configured.
type Nop struct{}

func (Nop) Record(context.Context, []Pair) error { return nil }

// WriteTSV writes pairs as a tab separated corpus with a header row.
func WriteTSV(w io.Writer, pairs []Pair) error {
	if _, err := fmt.Fprintln(w, "lang\tfile\tcontext\tsource_text\ttranslated_text"); err != nil {
		return fmt.Errorf("write TSV header: %w", err)
	}
	for _, p := range pairs {
		_, err := fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			p.Lang,
			p.File,
			p.Context,
			escapeTSV(p.Source),
			escapeTSV(p.Translation),
		)
		if err != nil {
			return fmt.Errorf("write TSV row: %w", err)
		}
	}
	return nil
}

// escapeTSV replaces tabs and newlines in a string for TSV safety.
func escapeTSV(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "\t", "\\t")
	s = strings.ReplaceAll(s, "\n", "\\n")
	s = strings.ReplaceAll(s, "\r", "\\r")
	return s
}
