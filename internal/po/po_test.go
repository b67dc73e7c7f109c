package po

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFile_WriteTemplate(t *testing.T) {
	f := NewTemplate("FTL MULTIVERSE", "5.0", "events.xml")
	f.Add("events.xml", "event__INTRO__text[1]", `He said "hi".`)
	f.Add("events.xml", "event__INTRO__choice[1]/text[1]", "Line one.\nLine two.")

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))

	want := `# FTL MULTIVERSE 5.0 - events.xml

#: events.xml
msgctxt "event__INTRO__text[1]"
msgid "He said \"hi\"."
msgstr ""

#: events.xml
msgctxt "event__INTRO__choice[1]/text[1]"
msgid ""
"Line one.\n"
"Line two."
msgstr ""

`
	assert.Equal(t, want, buf.String())
}

func TestFile_WriteCatalog(t *testing.T) {
	f := NewTemplate("FTL MULTIVERSE", "5.0", "events.xml")
	e := f.Add("events.xml", "event__INTRO__text[1]", "Hello.")
	e.Str = "Bonjour.\n"
	f.SetCatalogMetadata("fr")

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))

	out := buf.String()
	assert.Contains(t, out, "msgid \"\"\nmsgstr \"\"\n\"Project-Id-Version: 1.0\\n\"\n\"Language: fr\\n\"\n")
	assert.Contains(t, out, "\"Content-Type: text/plain; charset=utf-8\\n\"\n")
	assert.Contains(t, out, "msgid \"Hello.\"\nmsgstr \"\"\n\"Bonjour.\\n\"\n")
}

func TestParse_RoundTrip(t *testing.T) {
	f := NewTemplate("FTL MULTIVERSE", "5.0", "events.xml")
	f.Add("events.xml", "event__A__text[1]", "Tab\there, back\\slash, \"quotes\".")
	f.Add("events.xml", "event__A__text[2]", "First.\n\nThird.\n")
	dup := f.Add("events.xml", "event__A__text[1]", "Duplicate.")
	dup.Str = "Doublon."
	f.SetCatalogMetadata("fr")

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))

	got, err := Parse(strings.NewReader(buf.String()))
	require.NoError(t, err)

	assert.Equal(t, f.Comment, got.Comment)
	assert.Equal(t, f.Metadata, got.Metadata)
	assert.Equal(t, "fr", got.Language())
	require.Len(t, got.Entries, 3)
	for i := range f.Entries {
		assert.Equal(t, *f.Entries[i], *got.Entries[i])
	}

	// Writing the parsed file again is byte-identical.
	var again bytes.Buffer
	require.NoError(t, got.Write(&again))
	assert.Equal(t, buf.String(), again.String())
}

func TestParse_LegacyTemplate(t *testing.T) {
	// Older templates split long texts into indented lines and leave a blank
	// line before msgstr.
	in := `# FTL MULTIVERSE 5.0 - events.xml

#: events.xml
msgctxt "event__INTRO__/text"
msgid ""
  "First line"
  "Second line"

msgstr ""

#: events.xml
msgctxt "event__INTRO__/choice[2]/text"
msgid "Leave."
msgstr "Partir."
`
	f, err := Parse(strings.NewReader(in))
	require.NoError(t, err)

	assert.Equal(t, "FTL MULTIVERSE 5.0 - events.xml", f.Comment)
	assert.Empty(t, f.Metadata)
	require.Len(t, f.Entries, 2)
	assert.Equal(t, "event__INTRO__/text", f.Entries[0].Context)
	assert.Equal(t, "First lineSecond line", f.Entries[0].ID)
	assert.Equal(t, []string{"events.xml"}, f.Entries[0].References)
	assert.Equal(t, "Partir.", f.Entries[1].Str)
}

func TestParse_StandardFeatures(t *testing.T) {
	in := `# Translator notes
#
msgid ""
msgstr ""
"Language: de\n"

# keep short
#. extracted comment
#, fuzzy, c-format
msgid "Hello"
msgstr "Hallo"
#~ msgid "Old"
#~ msgstr "Alt"
msgid "Apple"
msgid_plural "Apples"
msgstr[0] "Apfel"
msgstr[1] "Äpfel"
`
	f, err := Parse(strings.NewReader(in))
	require.NoError(t, err)

	assert.Equal(t, "Translator notes\n", f.Comment)
	assert.Equal(t, "de", f.Language())
	require.Len(t, f.Entries, 2)
	assert.Equal(t, []string{"keep short"}, f.Entries[0].Comments)
	assert.Equal(t, []string{"fuzzy", "c-format"}, f.Entries[0].Flags)
	assert.Equal(t, "Hallo", f.Entries[0].Str)
	assert.Equal(t, "Apple", f.Entries[1].ID)
	assert.Equal(t, "Apfel", f.Entries[1].Str)
}

func TestParse_SyntaxErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"garbage", "this is not gettext\n"},
		{"unterminated", "msgid \"open\nmsgstr \"\"\n"},
		{"msgstr before msgid", "msgstr \"x\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.in))
			assert.ErrorIs(t, err, ErrSyntax)
		})
	}
}

func TestIndex_Lookup(t *testing.T) {
	entries := []*Entry{
		{Context: "event__intro__text[1]", ID: "a"},
		{Context: "event__intro__text[2]", ID: "b"},
		{Context: "event__intro__text[1]", ID: "c"},
	}
	ix := NewIndex(entries)

	got := ix.Lookup("event__intro__text[1]")
	require.Len(t, got, 2)
	assert.Same(t, entries[0], got[0])
	assert.Same(t, entries[2], got[1])
	assert.Empty(t, ix.Lookup("event__missing__text[1]"))
}

func TestFile_SaveAndParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "po", "events.xml.pot")
	f := NewTemplate("FTL MULTIVERSE", "5.0", "events.xml")
	f.Add("events.xml", "event__A__text[1]", "Hi.")

	require.NoError(t, f.Save(path))

	got, err := ParseFile(path)
	require.NoError(t, err)
	require.Len(t, got.Entries, 1)
	assert.Equal(t, "Hi.", got.Entries[0].ID)

	_, err = ParseFile(filepath.Join(t.TempDir(), "missing.pot"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
