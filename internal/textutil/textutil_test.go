package textutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHash(t *testing.T) {
	assert.Equal(t, Hash("a", "b"), Hash("a", "b"))
	assert.NotEqual(t, Hash("ab", ""), Hash("a", "b"))
	assert.Len(t, Hash("x"), 64)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "line one line two", Truncate("line one\nline two", 40))
	assert.Equal(t, "Привет...", Truncate("Привет, мир", 6))
}
