package pipeline

// FileStats counts the work done on one document.
type FileStats struct {
	File string
	// Lang is the catalog language. Empty for templates.
	Lang string
	// Texts is the number of translatable nodes, or of catalog entries when
	// injecting.
	Texts int
	// Translated is the number of entries (populate) or nodes (inject) that
	// received a translation.
	Translated int
	// Failed is the number of identifiers without a counterpart.
	Failed int
	// Duplicates is the number of extra matches beyond the first.
	Duplicates int
	// Untranslated is the number of catalog entries with an empty translation.
	Untranslated int
}

// RunStats aggregates a stage run.
type RunStats struct {
	Files []FileStats
	// Skipped documents had nothing to process.
	Skipped int
	// Unparseable documents or catalogs could not be read.
	Unparseable int
	// FailedFiles had no usable template or reference document.
	FailedFiles int
}

func (s *RunStats) add(fs FileStats) {
	s.Files = append(s.Files, fs)
}

// Totals sums the per-file counts.
func (s *RunStats) Totals() FileStats {
	t := FileStats{File: "TOTAL"}
	for _, fs := range s.Files {
		t.Texts += fs.Texts
		t.Translated += fs.Translated
		t.Failed += fs.Failed
		t.Duplicates += fs.Duplicates
		t.Untranslated += fs.Untranslated
	}
	return t
}

// ExtractStats is the result of Extract.
type ExtractStats struct {
	RunStats
}

// PopulateStats is the result of Populate.
type PopulateStats struct {
	RunStats
	Lang string
}

// InjectStats is the result of Inject.
type InjectStats struct {
	RunStats
}
