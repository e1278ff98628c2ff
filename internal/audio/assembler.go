package audio

import (
	"fmt"
	"os"

	"github.com/newsbrief/newsletter-podcast/internal/speech"
)

// MP3Assembler joins synthesized fragments into a single MP3 file. MP3
// frames are self-delimiting, so fragments encoded at the same fixed bitrate
// join with plain byte concatenation: no silence, no crossfade, no
// re-encoding. A single fragment is written through as is.
type MP3Assembler struct{}

// NewMP3Assembler creates an MP3 assembler
func NewMP3Assembler() *MP3Assembler {
	return &MP3Assembler{}
}

// Assemble writes fragments, in the given order, into outputFile. Fragment
// order is the sole ordering contract with the chunker, so a gap or
// out-of-order index aborts. No partial output survives a failure.
func (a *MP3Assembler) Assemble(fragments []speech.Fragment, outputFile string) error {
	if len(fragments) == 0 {
		return fmt.Errorf("no audio fragments to assemble")
	}

	out, err := os.Create(outputFile) // #nosec G304 -- path comes from our own config
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	ok := false
	defer func() {
		if !ok {
			_ = out.Close()
			_ = os.Remove(outputFile)
		}
	}()

	for i, fragment := range fragments {
		if fragment.Index != i {
			return fmt.Errorf("fragment order broken: index %d at position %d", fragment.Index, i)
		}
		if _, err := out.Write(fragment.Audio); err != nil {
			return fmt.Errorf("failed to write fragment %d: %w", i, err)
		}
	}

	if err := out.Close(); err != nil {
		return fmt.Errorf("failed to close output file: %w", err)
	}
	ok = true
	return nil
}
