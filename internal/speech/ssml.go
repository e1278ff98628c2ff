package speech

import "strings"

// the five predefined XML entities; SSML has no others
var ssmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

// renderSSML wraps utterances in an explicit-utterance SSML document, one
// <s> element per utterance, so boundaries never depend on the service's own
// sentence inference
func renderSSML(utterances []string) string {
	var b strings.Builder
	b.WriteString("<speak>")
	for _, u := range utterances {
		b.WriteString("<s>")
		b.WriteString(ssmlEscaper.Replace(u))
		b.WriteString("</s>")
	}
	b.WriteString("</speak>")
	return b.String()
}
