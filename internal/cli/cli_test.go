package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestCommands_EndToEnd(t *testing.T) {
	chdir(t, t.TempDir())

	writeFile(t, filepath.Join("src", "data", "events_intro.xml"), `<FTL>
<event name="INTRO">
	<text>Welcome aboard.</text>
</event>
</FTL>`)
	writeFile(t, filepath.Join("fr", "data", "events_intro.xml"), `<FTL>
<event name="INTRO">
	<text>Bienvenue à bord.</text>
</event>
</FTL>`)

	out, err := run(t, "generate", "--debug", "--src", "src", "--t-src", "fr", "--t-lang", "fr", "-o", "po")
	require.NoError(t, err)
	assert.Contains(t, out, "events_intro.xml")
	assert.FileExists(t, filepath.Join("po", "events_intro.xml.pot"))
	assert.FileExists(t, filepath.Join("po", "events_intro.xml.po"))

	_, err = run(t, "inject", "--debug", "-i", "po", "--src", filepath.Join("src", "data"), "-o", "translated")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join("translated", "fr", "events_intro.xml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "<text>Bienvenue à bord.</text>")
}

func TestExtract_Command(t *testing.T) {
	chdir(t, t.TempDir())
	writeFile(t, filepath.Join("game", "data", "events_a.xml"), `<FTL><event name="A"><text>Hi.</text></event></FTL>`)

	_, err := run(t, "extract", "--debug", "--src", "game", "-o", "out")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join("out", "events_a.xml.pot"))
}

func TestFlagValidation(t *testing.T) {
	chdir(t, t.TempDir())

	tests := []struct {
		name string
		args []string
	}{
		{"populate without language", []string{"populate", "--t-src", "fr"}},
		{"generate source without language", []string{"generate", "--t-src", "fr"}},
		{"generate language without source", []string{"generate", "--t-lang", "fr"}},
		{"skip-pot alone", []string{"generate", "--skip-pot"}},
		{"memory export without language", []string{"memory", "export"}},
		{"unexpected argument", []string{"extract", "extra"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.args...)
			assert.Error(t, err)
		})
	}
}

func TestMemoryExport_RequiresDatabase(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("DATABASE_URL", "")

	_, err := run(t, "memory", "export", "--lang", "fr")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
}

// chdir changes the working directory for the duration of the test
// (equivalent to testing.T.Chdir, which requires Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}
