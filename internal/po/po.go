// Package po reads and writes the gettext templates (.pot) and catalogs (.po)
// exchanged with translators.
package po

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Entry is a single gettext record.
type Entry struct {
	// Comments are translator comments ("# ...").
	Comments []string
	// References are source references ("#: file").
	References []string
	// Flags are the "#," flags, e.g. fuzzy.
	Flags []string
	// Context is msgctxt: the text identifier.
	Context string
	// ID is msgid: the source text.
	ID string
	// Str is msgstr: the translation, empty until populated.
	Str string
}

// Header is a metadata field of the header entry.
type Header struct {
	Key   string
	Value string
}

// File is a parsed template or catalog.
type File struct {
	// Comment is the leading file comment, without the "# " prefixes.
	Comment string
	// Metadata is the header entry, in file order. Templates have none.
	Metadata []Header
	// Entries are the records in file order. Several may share a context.
	Entries []*Entry
}

// NewTemplate creates an empty template for a source document.
func NewTemplate(project, version, fileName string) *File {
	return &File{Comment: fmt.Sprintf("%s %s - %s", project, version, fileName)}
}

// Add appends an untranslated record referencing fileName.
func (f *File) Add(fileName, context, text string) *Entry {
	e := &Entry{
		References: []string{fileName},
		Context:    context,
		ID:         text,
	}
	f.Entries = append(f.Entries, e)
	return e
}

// Meta returns the value of a metadata field.
func (f *File) Meta(key string) string {
	for _, h := range f.Metadata {
		if h.Key == key {
			return h.Value
		}
	}
	return ""
}

// Language returns the catalog language, empty for templates.
func (f *File) Language() string {
	return f.Meta("Language")
}

// SetCatalogMetadata replaces the header with the fixed catalog fields for lang.
func (f *File) SetCatalogMetadata(lang string) {
	f.Metadata = []Header{
		{Key: "Project-Id-Version", Value: "1.0"},
		{Key: "Language", Value: lang},
		{Key: "MIME-Version", Value: "1.0"},
		{Key: "Content-Type", Value: "text/plain; charset=utf-8"},
		{Key: "Content-Transfer-Encoding", Value: "8bit"},
	}
}

// Save writes the file to path.
func (f *File) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create po directory: %w", err)
	}

	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create po file: %w", err)
	}
	if err := f.Write(out); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("close po file: %w", err)
	}
	return nil
}

// ParseFile reads a template or catalog from disk.
func ParseFile(path string) (*File, error) {
	in, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open po file: %w", err)
	}
	defer in.Close()

	f, err := Parse(in)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return f, nil
}

// Index groups entries by context. Contexts are not unique: documents
// routinely repeat anchors, so a lookup returns every entry sharing the key.
type Index map[string][]*Entry

// NewIndex builds the context lookup for entries.
func NewIndex(entries []*Entry) Index {
	ix := make(Index, len(entries))
	for _, e := range entries {
		ix[e.Context] = append(ix[e.Context], e)
	}
	return ix
}

// Lookup returns all entries with the given context.
func (ix Index) Lookup(context string) []*Entry {
	return ix[context]
}

func splitMetadata(s string) []Header {
	var headers []Header
	for _, line := range strings.Split(s, "\n") {
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		headers = append(headers, Header{Key: strings.TrimSpace(key), Value: strings.TrimSpace(value)})
	}
	return headers
}
