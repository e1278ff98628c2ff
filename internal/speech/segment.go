package speech

import (
	"strings"
	"unicode/utf8"
)

// breakPolicy returns the rune index right after a preferred break point
// within maxLen runes, or -1 when the policy finds no acceptable break
type breakPolicy func(runes []rune, maxLen int) int

// ordered from most to least natural break point; each is tried in turn
// before falling back to a forced break
var breakPolicies = []breakPolicy{
	breakAfter(".!?"),
	breakAfter(";:"),
	breakAfter("—–-"),
	breakAfter(","),
	breakAfter(" "),
}

// breakAfter builds a policy that breaks right after the last occurrence of
// any rune in set within maxLen. A break closer than a quarter of maxLen to
// the start is rejected so the leading fragment is never pathologically short.
func breakAfter(set string) breakPolicy {
	return func(runes []rune, maxLen int) int {
		minBreak := maxLen / 4
		for i := maxLen - 1; i >= minBreak; i-- {
			if strings.ContainsRune(set, runes[i]) {
				return i + 1
			}
		}
		return -1
	}
}

// Segment breaks normalized text into utterances no longer than maxLen runes,
// preserving reading order. Pure function of its input.
func Segment(text string, maxLen int) []string {
	var utterances []string
	for _, unit := range splitSentences(text) {
		for _, piece := range breakLong(unit, maxLen) {
			if u := closeUtterance(piece, maxLen); u != "" {
				utterances = append(utterances, u)
			}
		}
	}
	return utterances
}

// splitSentences splits text on sentence-ending punctuation and hard
// newlines, keeping terminators attached to their sentence
func splitSentences(text string) []string {
	var units []string
	var cur strings.Builder

	flush := func() {
		if s := strings.TrimSpace(cur.String()); s != "" {
			units = append(units, s)
		}
		cur.Reset()
	}

	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if r == '\n' {
			flush()
			continue
		}
		cur.WriteRune(r)
		if isTerminator(r) {
			// consume runs of terminators ("..." or "?!")
			for i+1 < len(runes) && isTerminator(runes[i+1]) {
				i++
				cur.WriteRune(runes[i])
			}
			flush()
		}
	}
	flush()
	return units
}

func isTerminator(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}

// breakLong recursively splits a unit that exceeds maxLen, trying the break
// policies in preference order. When no policy qualifies it force-breaks at
// the last space before the ceiling, or at the ceiling itself when the text
// has no spaces at all.
func breakLong(unit string, maxLen int) []string {
	runes := []rune(unit)
	if len(runes) <= maxLen {
		return []string{unit}
	}

	cut := -1
	for _, policy := range breakPolicies {
		if idx := policy(runes, maxLen); idx > 0 {
			cut = idx
			break
		}
	}
	if cut <= 0 {
		// leave room for the period closeUtterance appends
		cut = maxLen - 1
		for i := maxLen - 1; i > 0; i-- {
			if runes[i] == ' ' {
				cut = i
				break
			}
		}
	}

	head := strings.TrimSpace(string(runes[:cut]))
	rest := strings.TrimSpace(string(runes[cut:]))

	out := []string{head}
	if rest != "" {
		out = append(out, breakLong(rest, maxLen)...)
	}
	return out
}

// closeUtterance makes a fragment read as a complete sentence for the
// synthesizer: trailing comma, semicolon or colon is dropped and a period
// appended unless the fragment already ends with terminal punctuation
func closeUtterance(s string, maxLen int) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if r, _ := utf8.DecodeLastRuneInString(s); isTerminator(r) {
		return s
	}
	s = strings.TrimRight(s, ",;: ")
	if s == "" {
		return ""
	}
	// appending the period must not push the utterance over the ceiling
	if runes := []rune(s); len(runes) >= maxLen {
		s = strings.TrimRight(string(runes[:maxLen-1]), " ,;:")
	}
	return s + "."
}
