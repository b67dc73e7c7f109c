package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"ftl-translator/internal/parser"
	"ftl-translator/internal/po"
	"ftl-translator/internal/textid"

	"github.com/rs/zerolog/log"
)

// Inject applies every catalog in poDir to its reference document in refDir
// and writes the result to outDir/<lang>/<document>.
//
// Every node an identifier resolves to receives the translation. Entries with
// an empty translation leave the source text in place. Entries that resolve to
// nothing are counted and skipped.
func (p *Pipeline) Inject(ctx context.Context, poDir, refDir, outDir string) (*InjectStats, error) {
	catalogs, err := p.walker.WalkSuffix(poDir, catalogExt)
	if err != nil {
		return nil, fmt.Errorf("list catalogs: %w", err)
	}

	log.Info().Int("catalogs", len(catalogs)).Str("ref", refDir).Str("output", outDir).Msg("Injecting translations")

	stats := &InjectStats{}
	bar := p.newBar(len(catalogs), "inject")
	defer bar.Finish()

	for _, c := range catalogs {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		_ = bar.Add(1)

		fs, err := p.injectCatalog(c.Path, refDir, outDir)
		switch {
		case err == nil:
			stats.add(*fs)
		case errors.Is(err, textid.ErrMalformedID):
			return stats, fmt.Errorf("%s: %w", c.Name, err)
		case errors.Is(err, errNoLanguage):
			log.Warn().Str("file", c.Name).Msg("Catalog has no Language header, skipping")
			stats.Skipped++
		case errors.Is(err, errNoReference):
			log.Warn().Err(err).Str("file", c.Name).Msg("Reference document not usable, skipping")
			stats.FailedFiles++
		case errors.Is(err, errWrite):
			return stats, err
		default:
			log.Error().Err(err).Str("file", c.Name).Msg("Catalog unparseable, skipping")
			stats.Unparseable++
		}
	}

	totals := stats.Totals()
	log.Info().
		Int("documents", len(stats.Files)).
		Int("translated", totals.Translated).
		Int("unresolved", totals.Failed).
		Int("untranslated", totals.Untranslated).
		Msg("Injection complete")

	return stats, nil
}

var (
	errNoLanguage  = errors.New("catalog has no language")
	errNoReference = errors.New("reference document not usable")
	errWrite       = errors.New("write translated document")
)

func (p *Pipeline) injectCatalog(catalogPath, refDir, outDir string) (*FileStats, error) {
	cat, err := po.ParseFile(catalogPath)
	if err != nil {
		return nil, err
	}

	lang := cat.Language()
	if lang == "" {
		return nil, errNoLanguage
	}

	name := strings.TrimSuffix(filepath.Base(catalogPath), catalogExt)
	doc, err := parser.Load(filepath.Join(refDir, name))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s not found in %s", errNoReference, name, refDir)
		}
		return nil, fmt.Errorf("%w: %w", errNoReference, err)
	}

	fs := &FileStats{File: name, Lang: lang}
	for _, e := range cat.Entries {
		if e.Context == "" {
			continue
		}
		fs.Texts++

		id, err := textid.Parse(e.Context)
		if err != nil {
			return nil, err
		}
		if e.Str == "" {
			fs.Untranslated++
			continue
		}

		targets := textid.Resolve(doc, id)
		if len(targets) == 0 {
			log.Debug().Str("file", name).Str("context", e.Context).Msg("Identifier does not resolve, skipping")
			fs.Failed++
			continue
		}

		fs.Duplicates += len(targets) - 1
		for _, el := range targets {
			el.SetText(e.Str)
			fs.Translated++
		}
	}

	if err := parser.Write(doc, filepath.Join(outDir, lang, name), p.indent); err != nil {
		return nil, fmt.Errorf("%w %s: %w", errWrite, name, err)
	}

	log.Debug().Str("file", name).Str("lang", lang).Int("translated", fs.Translated).Msg("Document written")
	return fs, nil
}
