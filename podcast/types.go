package podcast

import (
	"fmt"
	"time"
)

// Newsletter is one source document for a run
type Newsletter struct {
	ID      string
	Sender  string
	Subject string
	Date    time.Time
	Body    string
}

// Config represents the application configuration. API keys and durable
// settings come from the environment, per-run options from flags.
type Config struct {
	GeminiAPIKey string `env:"GEMINI_API_KEY"`
	TTSAPIKey    string `env:"GOOGLE_TTS_API_KEY"`
	Voice        string `env:"TTS_VOICE_NAME" envDefault:"en-US-Neural2-J"`
	Recipient    string `env:"RECIPIENT_EMAIL"`
	QuotaFile    string `env:"TTS_QUOTA_FILE" envDefault:"tts-usage.json"`
	QuotaLimit   int    `env:"TTS_MONTHLY_LIMIT" envDefault:"1000000"`

	InputPath  string // script file or directory of newsletter documents
	OutputFile string // output MP3 path, empty for the date-based default
	Play       bool   // play the result locally after generation
}

// RunResult describes a completed pipeline run
type RunResult struct {
	OutputFile string
	Characters int
	Chunks     int
}

// DefaultOutputFile returns the date-stamped output name used when no
// explicit path is given
func DefaultOutputFile(now time.Time) string {
	return fmt.Sprintf("newsletter-podcast-%s.mp3", now.Format("2006-01-02"))
}
