package speech

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/log"

	"github.com/newsbrief/newsletter-podcast/podcast"
)

// Assembler concatenates ordered fragments into one output file
type Assembler interface {
	Assemble(fragments []Fragment, outputFile string) error
}

// Pipeline runs the full delivery sequence: normalize, segment, chunk,
// pre-flight quota check, per-chunk synthesis, assembly, usage recording.
// Chunks are synthesized sequentially; a failure anywhere aborts the run
// with no partial output and no usage recorded.
type Pipeline struct {
	Normalize   func(string) string // nil leaves the script as is
	Synthesizer Synthesizer
	Assembler   Assembler
	Ledger      *UsageLedger
	Voice       string
	Retrier     Retrier

	// service ceilings; zero values fall back to the package constants
	UtteranceLen int
	RequestBytes int
}

// Run converts script into one audio file at outputFile
func (p *Pipeline) Run(ctx context.Context, script, outputFile string) (podcast.RunResult, error) {
	if strings.TrimSpace(script) == "" {
		return podcast.RunResult{}, ErrEmptyScript
	}

	normalized := script
	if p.Normalize != nil {
		normalized = p.Normalize(script)
	}
	if strings.TrimSpace(normalized) == "" {
		return podcast.RunResult{}, fmt.Errorf("%w: nothing left after normalization", ErrEmptyScript)
	}

	utterances := Segment(normalized, p.utteranceLen())
	chunks := BuildChunks(utterances, p.requestBytes())
	chars := utf8.RuneCountInString(normalized)

	status := p.Ledger.Check(chars)
	switch status.Severity {
	case SeverityExceeded:
		return podcast.RunResult{}, fmt.Errorf("%w: %s", ErrQuotaExceeded, status.Message)
	case SeverityCritical, SeverityWarning:
		log.Warn(status.Message)
	default:
		log.Debug(status.Message)
	}

	log.Info("synthesizing script", "characters", chars, "utterances", len(utterances), "chunks", len(chunks))

	fragments := make([]Fragment, 0, len(chunks))
	for _, chunk := range chunks {
		var fragment Fragment
		err := p.Retrier.Do(ctx, func() error {
			var synthErr error
			fragment, synthErr = p.Synthesizer.Synthesize(ctx, chunk, p.Voice)
			return synthErr
		})
		if err != nil {
			return podcast.RunResult{}, fmt.Errorf("%w: chunk %d of %d: %w", ErrSynthesis, chunk.Index, len(chunks), err)
		}
		log.Debug("chunk synthesized", "index", chunk.Index, "bytes", len(fragment.Audio))
		fragments = append(fragments, fragment)
	}

	if err := p.Assembler.Assemble(fragments, outputFile); err != nil {
		return podcast.RunResult{}, fmt.Errorf("failed to assemble audio: %w", err)
	}

	// recorded once, for the full script, only after assembly succeeded
	p.Ledger.Record(chars)

	return podcast.RunResult{OutputFile: outputFile, Characters: chars, Chunks: len(chunks)}, nil
}

func (p *Pipeline) utteranceLen() int {
	if p.UtteranceLen > 0 {
		return p.UtteranceLen
	}
	return MaxUtteranceLen
}

func (p *Pipeline) requestBytes() int {
	if p.RequestBytes > 0 {
		return p.RequestBytes
	}
	return MaxRequestBytes
}
