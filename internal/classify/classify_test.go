package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifier_IsTranslatable(t *testing.T) {
	c := New(DefaultExcludedTags)

	tests := []struct {
		name string
		text string
		tag  string
		want bool
	}{
		{"prose", "Hello there.", "description", true},
		{"prose with underscore", "Press the big_red button.", "text", true},
		{"constant", "PLAYER_HULL", "description", false},
		{"constant with digits", "SECTOR_2_BOSS", "text", false},
		{"uppercase without underscore", "WARNING", "text", true},
		{"underscore only", "___", "text", true},
		{"boolean true", "true", "text", false},
		{"boolean false", "false", "description", false},
		{"padded boolean", "  true\n", "text", false},
		{"capitalized boolean", "True", "text", true},
		{"empty", "", "text", false},
		{"whitespace", " \n\t ", "text", false},
		{"excluded choice", "Accept the offer.", "choice", false},
		{"excluded sound", "airlock", "playSound", false},
		{"excluded image", "fleet_backdrop", "img", false},
		{"non latin prose", "Добро пожаловать.", "text", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.IsTranslatable(tt.text, tt.tag)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, c.IsTranslatable(tt.text, tt.tag), "classification is not stable")
		})
	}
}

func TestClassifier_CustomExclusions(t *testing.T) {
	c := New([]string{"title"})

	assert.False(t, c.IsTranslatable("A Title", "title"))
	assert.True(t, c.IsTranslatable("Accept the offer.", "choice"))
}

func TestClassifier_ZeroValue(t *testing.T) {
	var c Classifier
	assert.True(t, c.IsTranslatable("Hello.", "choice"))
	assert.False(t, c.IsTranslatable("false", "choice"))
}
