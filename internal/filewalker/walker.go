package filewalker

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"
)

// DefaultExtensions lists the document types carrying event text.
var DefaultExtensions = []string{".xml", ".append"}

// DefaultMarker is the substring every event document name contains.
const DefaultMarker = "event"

// Walker lists the documents of a data directory.
type Walker struct {
	extensions map[string]bool
	marker     string
}

// NewWalker creates a Walker accepting files with one of extensions whose
// name contains marker.
func NewWalker(extensions []string, marker string) *Walker {
	w := &Walker{extensions: make(map[string]bool, len(extensions)), marker: marker}
	for _, ext := range extensions {
		w.extensions["."+strings.TrimPrefix(strings.ToLower(ext), ".")] = true
	}
	return w
}

// FileEntry represents a discovered file ready for processing.
type FileEntry struct {
	Path string
	Name string
	Ext  string
}

// Walk lists the matching documents directly inside dir, sorted by name.
// Subdirectories are not descended into.
func (w *Walker) Walk(dir string) ([]FileEntry, error) {
	entries, err := w.list(dir, func(name string) bool {
		return w.extensions[strings.ToLower(filepath.Ext(name))] && strings.Contains(name, w.marker)
	})
	if err != nil {
		return nil, err
	}

	log.Debug().Int("count", len(entries)).Str("dir", dir).Msg("Discovered documents")
	return entries, nil
}

// WalkSuffix lists the files directly inside dir whose name ends with suffix.
func (w *Walker) WalkSuffix(dir, suffix string) ([]FileEntry, error) {
	return w.list(dir, func(name string) bool {
		return strings.HasSuffix(name, suffix)
	})
}

func (w *Walker) list(dir string, match func(name string) bool) ([]FileEntry, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("stat directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("not a directory: %s", dir)
	}

	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read directory: %w", err)
	}

	var entries []FileEntry
	for _, de := range dirEntries {
		if de.IsDir() || !match(de.Name()) {
			continue
		}
		entries = append(entries, FileEntry{
			Path: filepath.Join(dir, de.Name()),
			Name: de.Name(),
			Ext:  strings.ToLower(filepath.Ext(de.Name())),
		})
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries, nil
}
