package podcast

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaultOutputFile(t *testing.T) {
	now := time.Date(2026, time.August, 31, 6, 30, 0, 0, time.UTC)
	assert.Equal(t, "newsletter-podcast-2026-08-31.mp3", DefaultOutputFile(now))
}
