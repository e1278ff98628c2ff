package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/charmbracelet/log"

	"github.com/newsbrief/newsletter-podcast/internal/ai"
	"github.com/newsbrief/newsletter-podcast/internal/audio"
	"github.com/newsbrief/newsletter-podcast/internal/content"
	"github.com/newsbrief/newsletter-podcast/internal/speech"
	"github.com/newsbrief/newsletter-podcast/podcast"
)

func main() {
	input := flag.String("input", "", "script file or directory of newsletter documents")
	output := flag.String("out", "", "output MP3 path (default: newsletter-podcast-YYYY-MM-DD.mp3)")
	voice := flag.String("voice", "", "TTS voice name (overrides TTS_VOICE_NAME)")
	play := flag.Bool("play", false, "play the podcast locally after generation")
	dbg := flag.Bool("dbg", false, "debug logging")
	flag.Parse()

	if *dbg {
		log.SetLevel(log.DebugLevel)
	}

	var config podcast.Config
	if err := env.Parse(&config); err != nil {
		log.Fatal("failed to parse environment", "err", err)
	}
	config.InputPath = *input
	config.Play = *play
	if *output != "" {
		config.OutputFile = *output
	}
	if *voice != "" {
		config.Voice = *voice
	}

	if config.InputPath == "" {
		log.Fatal("please provide a script file or documents directory with -input")
	}
	if config.TTSAPIKey == "" {
		log.Fatal("GOOGLE_TTS_API_KEY environment variable must be set")
	}

	if err := run(context.Background(), config); err != nil {
		log.Fatal("podcast generation failed", "err", err)
	}
}

func run(ctx context.Context, config podcast.Config) error {
	script, err := loadScript(ctx, config)
	if err != nil {
		return err
	}
	log.Info("script ready",
		"characters", len(script),
		"estimated_minutes", fmt.Sprintf("%.1f", content.EstimateDuration(script)/60.0))

	pipeline := &speech.Pipeline{
		Normalize:   content.Normalize,
		Synthesizer: speech.NewGoogleTTSService(config.TTSAPIKey, nil),
		Assembler:   audio.NewMP3Assembler(),
		Ledger:      speech.NewUsageLedger(config.QuotaFile, config.QuotaLimit),
		Voice:       config.Voice,
		Retrier:     speech.Retrier{Attempts: 3, Interval: 2 * time.Second},
	}

	outputFile := config.OutputFile
	if outputFile == "" {
		outputFile = podcast.DefaultOutputFile(time.Now())
	}

	result, err := pipeline.Run(ctx, script, outputFile)
	if err != nil {
		return err
	}
	log.Info("podcast generated", "file", result.OutputFile, "chunks", result.Chunks, "characters", result.Characters)

	if config.Play {
		if err := audio.NewPlayer().Play(result.OutputFile); err != nil {
			return fmt.Errorf("failed to play podcast: %w", err)
		}
	}
	return nil
}

// loadScript reads the narration source: a single file is the script itself,
// a directory is a batch of newsletter documents turned into a script with
// Gemini
func loadScript(ctx context.Context, config podcast.Config) (string, error) {
	info, err := os.Stat(config.InputPath)
	if err != nil {
		return "", fmt.Errorf("cannot read input: %w", err)
	}

	if !info.IsDir() {
		data, err := os.ReadFile(config.InputPath)
		if err != nil {
			return "", fmt.Errorf("cannot read script file: %w", err)
		}
		return string(data), nil
	}

	newsletters, err := readNewsletters(config.InputPath)
	if err != nil {
		return "", err
	}
	if len(newsletters) == 0 {
		return "", fmt.Errorf("no documents found in %s", config.InputPath)
	}
	if config.GeminiAPIKey == "" {
		return "", fmt.Errorf("GEMINI_API_KEY environment variable must be set for directory input")
	}

	log.Info("generating podcast script", "documents", len(newsletters))
	return ai.NewGeminiService(config.GeminiAPIKey, nil).GenerateScript(ctx, newsletters)
}

// readNewsletters loads the text documents from dir in name order
func readNewsletters(dir string) ([]podcast.Newsletter, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("cannot read documents directory: %w", err)
	}

	var newsletters []podcast.Newsletter
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext != ".txt" && ext != ".md" && ext != ".html" {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("cannot read %s: %w", entry.Name(), err)
		}
		newsletters = append(newsletters, podcast.Newsletter{
			ID:      entry.Name(),
			Subject: strings.TrimSuffix(entry.Name(), ext),
			Body:    string(data),
		})
	}
	return newsletters, nil
}
