// Package classify decides which text fragments of an FTL document are prose
// worth translating.
package classify

import (
	"strings"
	"unicode"
)

// DefaultExcludedTags hold technical values: sound cues, booleans, background
// and fleet identifiers, list choice markers and images.
var DefaultExcludedTags = []string{
	"autoReward",
	"aggressive",
	"playSound",
	"changeBackground",
	"customFleet",
	"choice",
	"img",
	"fleet",
}

// Classifier filters text nodes. The zero value excludes no tag.
type Classifier struct {
	excluded map[string]struct{}
}

// New creates a Classifier that never accepts text owned by excludedTags.
func New(excludedTags []string) *Classifier {
	c := &Classifier{excluded: make(map[string]struct{}, len(excludedTags))}
	for _, tag := range excludedTags {
		c.excluded[tag] = struct{}{}
	}
	return c
}

// IsTranslatable reports whether text owned by an element with the given tag
// should be offered for translation.
func (c *Classifier) IsTranslatable(text, tag string) bool {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return false
	}
	if isConstant(text) {
		return false
	}
	if _, ok := c.excluded[tag]; ok {
		return false
	}
	return trimmed != "true" && trimmed != "false"
}

// isConstant matches symbolic names such as PLAYER_HULL: at least one cased
// letter, no lowercase letter, and an underscore.
func isConstant(s string) bool {
	if !strings.Contains(s, "_") {
		return false
	}
	cased := false
	for _, r := range s {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsUpper(r) || unicode.IsTitle(r) {
			cased = true
		}
	}
	return cased
}
