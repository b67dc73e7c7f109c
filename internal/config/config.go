package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"ftl-translator/internal/classify"
	"ftl-translator/internal/filewalker"
	"ftl-translator/internal/textid"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	// SrcDir holds the reference game files; documents live in SrcDir/data.
	SrcDir string
	// PODir receives templates and catalogs.
	PODir string
	// RefDataDir holds the documents catalogs are injected into.
	RefDataDir string
	// OutDir receives translated documents, one subdirectory per language.
	OutDir string

	ProjectLabel string
	Version      string

	FileMarker     string
	FileExtensions []string
	AnchorTags     []string
	ExcludedTags   []string
	XMLIndent      int

	DatabaseURL string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found, using environment variables")
	}

	return &Config{
		SrcDir:         getEnv("FTL_SRC_DIR", "src"),
		PODir:          getEnv("FTL_PO_DIR", "po"),
		RefDataDir:     getEnv("FTL_DATA_PATH", "data_src"),
		OutDir:         getEnv("FTL_OUT_DIR", "translated"),
		ProjectLabel:   getEnv("PROJECT_LABEL", "FTL MULTIVERSE"),
		Version:        getEnv("MV_VERSION", "5.0"),
		FileMarker:     getEnv("FILE_MARKER", filewalker.DefaultMarker),
		FileExtensions: getEnvList("FILE_EXTENSIONS", filewalker.DefaultExtensions),
		AnchorTags:     getEnvList("ANCHOR_TAGS", textid.DefaultAnchorTags),
		ExcludedTags:   getEnvList("EXCLUDED_TAGS", classify.DefaultExcludedTags),
		XMLIndent:      getEnvInt("XML_INDENT", 2),
		DatabaseURL:    getEnv("DATABASE_URL", ""),
	}
}

// Validate rejects settings that would make identifiers ambiguous.
func (c *Config) Validate() error {
	if len(c.AnchorTags) == 0 {
		return fmt.Errorf("ANCHOR_TAGS must name at least one tag")
	}
	for _, tag := range c.AnchorTags {
		if strings.Contains(tag, textid.Separator) {
			return fmt.Errorf("anchor tag %q contains the identifier separator %q", tag, textid.Separator)
		}
	}
	if len(c.FileExtensions) == 0 {
		return fmt.Errorf("FILE_EXTENSIONS must name at least one extension")
	}
	return nil
}

// DataDir is the directory holding the event documents of a game tree.
func DataDir(root string) string {
	return filepath.Join(root, "data")
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

// getEnvList reads a comma separated list.
func getEnvList(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return append([]string(nil), fallback...)
	}
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
