// Package report renders run summaries as plain text tables.
package report

import (
	"fmt"
	"io"
	"strconv"

	"ftl-translator/internal/pipeline"

	"github.com/olekukonko/tablewriter"
)

// Extract prints one row per template written.
func Extract(w io.Writer, s *pipeline.ExtractStats) {
	table := newTable(w, []string{"File", "Texts"})
	for _, fs := range s.Files {
		table.Append([]string{fs.File, strconv.Itoa(fs.Texts)})
	}
	table.SetFooter([]string{
		fmt.Sprintf("Templates %d", len(s.Files)),
		strconv.Itoa(s.Totals().Texts),
	})
	table.Render()
	writeSkipped(w, &s.RunStats)
}

// Populate prints one row per catalog written.
func Populate(w io.Writer, s *pipeline.PopulateStats) {
	table := newTable(w, []string{"File", "Texts", "Translated", "Failed", "Duplicates"})
	for _, fs := range s.Files {
		table.Append([]string{
			fs.File,
			strconv.Itoa(fs.Texts),
			strconv.Itoa(fs.Translated),
			strconv.Itoa(fs.Failed),
			strconv.Itoa(fs.Duplicates),
		})
	}
	t := s.Totals()
	table.SetFooter([]string{
		fmt.Sprintf("Catalogs [%s] %d", s.Lang, len(s.Files)),
		strconv.Itoa(t.Texts),
		strconv.Itoa(t.Translated),
		strconv.Itoa(t.Failed),
		strconv.Itoa(t.Duplicates),
	})
	table.Render()
	writeSkipped(w, &s.RunStats)
}

// Inject prints one row per translated document.
func Inject(w io.Writer, s *pipeline.InjectStats) {
	table := newTable(w, []string{"File", "Lang", "Entries", "Translated", "Unresolved", "Untranslated"})
	for _, fs := range s.Files {
		table.Append([]string{
			fs.File,
			fs.Lang,
			strconv.Itoa(fs.Texts),
			strconv.Itoa(fs.Translated),
			strconv.Itoa(fs.Failed),
			strconv.Itoa(fs.Untranslated),
		})
	}
	t := s.Totals()
	table.SetFooter([]string{
		fmt.Sprintf("Documents %d", len(s.Files)),
		"",
		strconv.Itoa(t.Texts),
		strconv.Itoa(t.Translated),
		strconv.Itoa(t.Failed),
		strconv.Itoa(t.Untranslated),
	})
	table.Render()
	writeSkipped(w, &s.RunStats)
}

func newTable(w io.Writer, header []string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetBorder(false)
	table.SetCenterSeparator("")
	align := make([]int, len(header))
	for i := range align {
		align[i] = tablewriter.ALIGN_RIGHT
	}
	align[0] = tablewriter.ALIGN_LEFT
	table.SetColumnAlignment(align)
	return table
}

func writeSkipped(w io.Writer, s *pipeline.RunStats) {
	if s.Skipped == 0 && s.Unparseable == 0 && s.FailedFiles == 0 {
		return
	}
	_, _ = fmt.Fprintf(w, "\nskipped: %d  unparseable: %d  missing counterpart: %d\n",
		s.Skipped, s.Unparseable, s.FailedFiles)
}
