package content

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEstimateDuration(t *testing.T) {
	// 150 words of 5 characters each reads in about a minute
	text := strings.TrimSpace(strings.Repeat("abcde ", 150))
	assert.InDelta(t, 60.0, EstimateDuration(text), 0.5)

	assert.Zero(t, EstimateDuration(""))
	assert.Zero(t, EstimateDuration("   \n\t"))
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		max  int
		want string
	}{
		{"shorter than limit", "hello", 10, "hello"},
		{"exactly at limit", "hello", 5, "hello"},
		{"truncated", "hello world", 5, "hello..."},
		{"multibyte runes", "héllo wörld", 5, "héllo..."},
		{"empty", "", 3, ""},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.want, Truncate(test.in, test.max))
		})
	}
}
