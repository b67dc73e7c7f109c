package pipeline

import (
	"context"
	"fmt"
	"path/filepath"

	"ftl-translator/internal/memory"
	"ftl-translator/internal/po"
	"ftl-translator/internal/textutil"

	"github.com/rs/zerolog/log"
)

// Populate fills the templates in potDir with the text of the already
// translated documents in dataDir and saves each result as a catalog for lang
// next to its template.
//
// A node is matched to every template entry sharing its identifier, since the
// game data repeats anchors. Matched pairs are forwarded to the translation
// memory.
func (p *Pipeline) Populate(ctx context.Context, dataDir, potDir, lang string) (*PopulateStats, error) {
	files, err := p.walker.Walk(dataDir)
	if err != nil {
		return nil, fmt.Errorf("list translated documents: %w", err)
	}

	log.Info().Int("files", len(files)).Str("lang", lang).Str("src", dataDir).Msg("Generating catalogs")

	stats := &PopulateStats{Lang: lang}
	bar := p.newBar(len(files), lang)
	defer bar.Finish()

	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		_ = bar.Add(1)

		result, err := p.parser.Parse(f.Path)
		if err != nil {
			log.Error().Err(err).Str("file", f.Name).Msg("Translated document unparseable, skipping")
			stats.Unparseable++
			continue
		}
		if len(result.Texts) == 0 {
			stats.Skipped++
			continue
		}

		tmpl, err := po.ParseFile(filepath.Join(potDir, f.Name+templateExt))
		if err != nil {
			log.Warn().Err(err).Str("file", f.Name).Msg("Template not usable, skipping")
			stats.FailedFiles++
			continue
		}

		index := po.NewIndex(tmpl.Entries)
		fs := FileStats{File: f.Name, Lang: lang, Texts: len(result.Texts)}
		var pairs []memory.Pair

		for _, t := range result.Texts {
			id, err := p.ids.Generate(t.Element)
			if err != nil {
				return stats, fmt.Errorf("%s: %w", f.Name, err)
			}

			matches := index.Lookup(id.String())
			if len(matches) == 0 {
				log.Debug().
					Str("file", f.Name).
					Str("context", id.String()).
					Str("text", textutil.Truncate(t.Text, 40)).
					Msg("Identifier not found in template")
				fs.Failed++
				continue
			}

			fs.Duplicates += len(matches) - 1
			for _, e := range matches {
				e.Str = t.Text
				fs.Translated++
				pairs = append(pairs, memory.Pair{
					Lang:        lang,
					File:        f.Name,
					Context:     e.Context,
					Source:      e.ID,
					Translation: t.Text,
				})
			}
		}

		tmpl.SetCatalogMetadata(lang)
		if err := tmpl.Save(filepath.Join(potDir, f.Name+catalogExt)); err != nil {
			return stats, fmt.Errorf("save catalog for %s: %w", f.Name, err)
		}

		if err := p.memory.Record(ctx, pairs); err != nil {
			log.Warn().Err(err).Str("file", f.Name).Msg("Failed to record translation memory")
		}

		stats.add(fs)
		log.Debug().
			Str("file", f.Name).
			Int("translated", fs.Translated).
			Int("failed", fs.Failed).
			Int("duplicates", fs.Duplicates).
			Msg("Catalog written")
	}

	totals := stats.Totals()
	log.Info().
		Str("lang", lang).
		Int("translated", totals.Translated).
		Int("failed", totals.Failed).
		Int("duplicates", totals.Duplicates).
		Int("missing_templates", stats.FailedFiles).
		Msg("Catalog generation complete")

	return stats, nil
}
