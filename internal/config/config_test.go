package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())
	for _, key := range []string{"FTL_SRC_DIR", "ANCHOR_TAGS", "EXCLUDED_TAGS", "XML_INDENT", "MV_VERSION"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "src", cfg.SrcDir)
	assert.Equal(t, "5.0", cfg.Version)
	assert.Equal(t, []string{"event", "eventList", "textList", "ship"}, cfg.AnchorTags)
	assert.Contains(t, cfg.ExcludedTags, "choice")
	assert.Equal(t, 2, cfg.XMLIndent)
	require.NoError(t, cfg.Validate())
}

func TestLoad_Overrides(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("ANCHOR_TAGS", "ship, event ,")
	t.Setenv("XML_INDENT", "not-a-number")
	t.Setenv("MV_VERSION", "5.4.6")

	cfg := Load()

	assert.Equal(t, []string{"ship", "event"}, cfg.AnchorTags)
	assert.Equal(t, 2, cfg.XMLIndent)
	assert.Equal(t, "5.4.6", cfg.Version)
}

func TestValidate(t *testing.T) {
	cfg := &Config{AnchorTags: []string{"event"}, FileExtensions: []string{".xml"}}
	require.NoError(t, cfg.Validate())

	cfg.AnchorTags = nil
	assert.Error(t, cfg.Validate())

	cfg.AnchorTags = []string{"bad__tag"}
	assert.Error(t, cfg.Validate())

	cfg.AnchorTags = []string{"event"}
	cfg.FileExtensions = nil
	assert.Error(t, cfg.Validate())
}

func TestDataDir(t *testing.T) {
	assert.Equal(t, filepath.Join("src", "data"), DataDir("src"))
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
