package content

import "unicode/utf8"

// average English reading speed is about 140-160 words per minute, at about
// five characters per word
const (
	avgCharsPerWord   = 5.0
	avgWordsPerMinute = 150.0
)

// EstimateDuration estimates the spoken duration of text in seconds
func EstimateDuration(text string) float64 {
	// count characters excluding whitespace
	charCount := 0
	for _, char := range text {
		if char != ' ' && char != '\n' && char != '\t' && char != '\r' {
			charCount++
		}
	}

	estimatedWords := float64(charCount) / avgCharsPerWord
	return estimatedWords / avgWordsPerMinute * 60.0
}

// Truncate shortens a string to maxLength runes and adds "..." if truncated
func Truncate(s string, maxLength int) string {
	if utf8.RuneCountInString(s) <= maxLength {
		return s
	}
	runes := []rune(s)
	return string(runes[:maxLength]) + "..."
}
