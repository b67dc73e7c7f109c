package pipeline

import (
	"context"
	"fmt"
	"path/filepath"

	"ftl-translator/internal/po"

	"github.com/rs/zerolog/log"
)

// Extract writes a template to outDir for every document in dataDir that has
// translatable text. Templates are named after their document with a .pot
// suffix.
func (p *Pipeline) Extract(ctx context.Context, dataDir, outDir string) (*ExtractStats, error) {
	files, err := p.walker.Walk(dataDir)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}

	log.Info().Int("files", len(files)).Str("src", dataDir).Str("output", outDir).Msg("Generating templates")

	stats := &ExtractStats{}
	bar := p.newBar(len(files), "templates")
	defer bar.Finish()

	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		_ = bar.Add(1)

		result, err := p.parser.Parse(f.Path)
		if err != nil {
			log.Error().Err(err).Str("file", f.Name).Msg("Document unparseable, skipping")
			stats.Unparseable++
			continue
		}
		if len(result.Texts) == 0 {
			log.Debug().Str("file", f.Name).Msg("No translatable text")
			stats.Skipped++
			continue
		}

		tmpl := po.NewTemplate(p.project, p.version, f.Name)
		for _, t := range result.Texts {
			id, err := p.ids.Generate(t.Element)
			if err != nil {
				return stats, fmt.Errorf("%s: %w", f.Name, err)
			}
			tmpl.Add(f.Name, id.String(), t.Text)
		}

		if err := tmpl.Save(filepath.Join(outDir, f.Name+templateExt)); err != nil {
			return stats, fmt.Errorf("save template for %s: %w", f.Name, err)
		}

		stats.add(FileStats{File: f.Name, Texts: len(result.Texts)})
		log.Debug().Str("file", f.Name).Int("texts", len(result.Texts)).Msg("Template written")
	}

	log.Info().
		Int("templates", len(stats.Files)).
		Int("texts", stats.Totals().Texts).
		Int("unparseable", stats.Unparseable).
		Msg("Template generation complete")

	return stats, nil
}
