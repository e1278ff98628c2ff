package speech

import "strings"

// Chunk is one synthesis request payload: an ordered run of utterances whose
// rendered SSML stays within the request byte ceiling. Chunk boundaries
// always align with utterance boundaries.
type Chunk struct {
	Index      int
	Utterances []string
}

// SSML renders the chunk as an explicit-utterance SSML document
func (c Chunk) SSML() string {
	return renderSSML(c.Utterances)
}

// BuildChunks greedily packs utterances into chunks whose rendered SSML fits
// maxBytes. Utterance order is preserved exactly and chunk indices are
// 0-based and contiguous.
func BuildChunks(utterances []string, maxBytes int) []Chunk {
	var chunks []Chunk
	var cur []string

	flush := func() {
		if len(cur) > 0 {
			chunks = append(chunks, Chunk{Index: len(chunks), Utterances: cur})
			cur = nil
		}
	}

	for _, u := range utterances {
		if len(renderSSML([]string{u})) > maxBytes {
			// should not happen once the segmenter enforced the length
			// ceiling, but an oversized utterance is word-split rather
			// than dropped or sent as an invalid request
			flush()
			for _, part := range splitByWords(u, maxBytes) {
				chunks = append(chunks, Chunk{Index: len(chunks), Utterances: []string{part}})
			}
			continue
		}

		candidate := make([]string, 0, len(cur)+1)
		candidate = append(candidate, cur...)
		candidate = append(candidate, u)
		if len(renderSSML(candidate)) > maxBytes {
			flush()
		}
		cur = append(cur, u)
	}
	flush()

	return chunks
}

// splitByWords breaks an oversized utterance at word boundaries into pieces
// that each fit maxBytes when rendered as a single-utterance request. A
// single word longer than the ceiling is cut at rune boundaries as the very
// last resort.
func splitByWords(u string, maxBytes int) []string {
	var parts []string
	var cur string

	fits := func(s string) bool {
		return len(renderSSML([]string{s})) <= maxBytes
	}

	for _, word := range strings.Fields(u) {
		for !fits(word) {
			runes := []rune(word)
			cutAt := len(runes) / 2
			for !fits(string(runes[:cutAt])) && cutAt > 1 {
				cutAt /= 2
			}
			if cur != "" {
				parts = append(parts, cur)
				cur = ""
			}
			parts = append(parts, string(runes[:cutAt]))
			word = string(runes[cutAt:])
		}

		candidate := word
		if cur != "" {
			candidate = cur + " " + word
		}
		if fits(candidate) {
			cur = candidate
			continue
		}
		parts = append(parts, cur)
		cur = word
	}
	if cur != "" {
		parts = append(parts, cur)
	}
	return parts
}
