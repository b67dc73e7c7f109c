package memory

import (
	"context"
	"fmt"
	"os"
	"sync"

	"ftl-translator/internal/textutil"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS translation_memory (
	lang            TEXT NOT NULL,
	hash            TEXT NOT NULL,
	file            TEXT NOT NULL,
	context         TEXT NOT NULL,
	source_text     TEXT NOT NULL,
	translated_text TEXT NOT NULL,
	updated_at      TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (lang, hash)
)`

const upsertSQL = `
INSERT INTO translation_memory (lang, hash, file, context, source_text, translated_text)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (lang, hash) DO UPDATE
SET file = EXCLUDED.file,
    translated_text = EXCLUDED.translated_text,
    updated_at = now()`

const exportSQL = `
SELECT lang, file, context, source_text, translated_text
FROM translation_memory
WHERE lang = $1
ORDER BY file, context, source_text`

// PGStore persists pairs in PostgreSQL, keyed by language and the hash of
// context and source text.
type PGStore struct {
	pool *pgxpool.Pool
	mu   sync.Mutex
	seen map[string]string // lang+hash → translation already written this run
}

// NewPGStore creates a store on an existing pool.
func NewPGStore(pool *pgxpool.Pool) *PGStore {
	return &PGStore{
		pool: pool,
		seen: make(map[string]string),
	}
}

// Connect opens and pings a pool for databaseURL.
func Connect(ctx context.Context, databaseURL string) (*PGStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect PostgreSQL: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping PostgreSQL: %w", err)
	}
	log.Info().Msg("Connected to PostgreSQL")
	return NewPGStore(pool), nil
}

// Close releases the pool.
func (s *PGStore) Close() {
	s.pool.Close()
}

// EnsureSchema creates the translation_memory table.
func (s *PGStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create translation_memory table: %w", err)
	}
	return nil
}

// Record upserts pairs in a single batch, skipping pairs already written with
// the same translation during this run.
func (s *PGStore) Record(ctx context.Context, pairs []Pair) error {
	pending := s.pending(pairs)
	if len(pending) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, p := range pending {
		batch.Queue(upsertSQL, p.Lang, textutil.Hash(p.Context, p.Source), p.File, p.Context, p.Source, p.Translation)
	}

	br := s.pool.SendBatch(ctx, batch)
	defer br.Close()

	for range pending {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("upsert memory pair: %w", err)
		}
	}

	log.Debug().Int("pairs", len(pending)).Msg("Recorded translation memory")
	return nil
}

func (s *PGStore) pending(pairs []Pair) []Pair {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []Pair
	for _, p := range pairs {
		key := p.Lang + "\x00" + textutil.Hash(p.Context, p.Source)
		if prev, ok := s.seen[key]; ok && prev == p.Translation {
			continue
		}
		s.seen[key] = p.Translation
		out = append(out, p)
	}
	return out
}

// Export returns every pair stored for lang.
func (s *PGStore) Export(ctx context.Context, lang string) ([]Pair, error) {
	rows, err := s.pool.Query(ctx, exportSQL, lang)
	if err != nil {
		return nil, fmt.Errorf("query translation memory: %w", err)
	}

	pairs, err := pgx.CollectRows(rows, pgx.RowToStructByPos[Pair])
	if err != nil {
		return nil, fmt.Errorf("scan translation memory: %w", err)
	}
	return pairs, nil
}

// ExportTSV writes the pairs stored for lang to a TSV file.
func (s *PGStore) ExportTSV(ctx context.Context, lang, outputPath string) error {
	pairs, err := s.Export(ctx, lang)
	if err != nil {
		return err
	}

	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("create TSV file: %w", err)
	}
	defer f.Close()

	if err := WriteTSV(f, pairs); err != nil {
		return err
	}

	log.Info().Str("path", outputPath).Str("lang", lang).Int("pairs", len(pairs)).Msg("Exported translation memory to TSV")
	return nil
}
