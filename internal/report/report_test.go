package report

import (
	"bytes"
	"strings"
	"testing"

	"ftl-translator/internal/pipeline"

	"github.com/stretchr/testify/assert"
)

func TestExtract(t *testing.T) {
	var buf bytes.Buffer
	Extract(&buf, &pipeline.ExtractStats{RunStats: pipeline.RunStats{
		Files: []pipeline.FileStats{
			{File: "events_a.xml", Texts: 12},
			{File: "events_b.xml.append", Texts: 3},
		},
	}})

	out := buf.String()
	assert.Contains(t, out, "events_a.xml")
	assert.Contains(t, out, "events_b.xml.append")
	assert.Contains(t, out, "15")
	assert.NotContains(t, out, "skipped:")
}

func TestPopulate(t *testing.T) {
	var buf bytes.Buffer
	Populate(&buf, &pipeline.PopulateStats{
		Lang: "fr",
		RunStats: pipeline.RunStats{
			Files:       []pipeline.FileStats{{File: "events_a.xml", Texts: 4, Translated: 5, Failed: 1, Duplicates: 2}},
			FailedFiles: 2,
		},
	})

	out := buf.String()
	assert.Contains(t, out, "events_a.xml")
	assert.Contains(t, strings.ToLower(out), "[fr]")
	assert.Contains(t, out, "missing counterpart: 2")
}

func TestInject(t *testing.T) {
	var buf bytes.Buffer
	Inject(&buf, &pipeline.InjectStats{RunStats: pipeline.RunStats{
		Files:   []pipeline.FileStats{{File: "events_a.xml", Lang: "de", Texts: 7, Translated: 6, Untranslated: 1}},
		Skipped: 1,
	}})

	out := buf.String()
	assert.Contains(t, out, "events_a.xml")
	assert.Contains(t, out, "de")
	assert.Contains(t, out, "skipped: 1")
}
