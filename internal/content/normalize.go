package content

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
)

// markdown constructs removed before synthesis; order matters, fences and
// images go before inline code and links
var (
	codeFenceRe  = regexp.MustCompile("(?s)```.*?```")
	imageRe      = regexp.MustCompile(`!\[[^\]]*\]\([^)]*\)`)
	linkRe       = regexp.MustCompile(`\[([^\]]*)\]\([^)]*\)`)
	inlineCodeRe = regexp.MustCompile("`([^`]*)`")
	headingRe    = regexp.MustCompile(`(?m)^#{1,6}[ \t]*`)
	emphasisRe   = regexp.MustCompile(`(\*{1,3}|_{1,3})([^*_\n]+)(\*{1,3}|_{1,3})`)
	hruleRe      = regexp.MustCompile(`(?m)^[ \t]*[-*_]{3,}[ \t]*$`)
	bulletRe     = regexp.MustCompile(`(?m)^[ \t]*[-*+][ \t]+`)
	htmlTagRe    = regexp.MustCompile(`<[a-zA-Z][^>]*>`)

	spaceRunRe = regexp.MustCompile(`[ \t\r\f]+`)
	blankRunRe = regexp.MustCompile(`\n[ \t]*\n+`)
)

// how much of the input stripping may destroy before it is rolled back and
// the markup is read out as literal text instead
const maxStrippedLoss = 0.6

// Normalize strips markup and formatting noise from prose, leaving
// whitespace-collapsed text with sentence punctuation intact. It never fails
// on malformed input: when stripping would destroy most of the content the
// raw text is kept and only whitespace is collapsed.
func Normalize(text string) string {
	stripped := text
	if looksLikeHTML(stripped) {
		stripped = stripHTML(stripped)
	}
	stripped = stripMarkdown(stripped)
	result := collapseWhitespace(stripped)

	if float64(contentRunes(result)) < float64(contentRunes(text))*(1-maxStrippedLoss) {
		return collapseWhitespace(text)
	}
	return result
}

func looksLikeHTML(s string) bool {
	return htmlTagRe.MatchString(s)
}

// stripHTML extracts readable text from an HTML document, block elements
// becoming separate lines so sentences don't run together
func stripHTML(s string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return s
	}

	doc.Find("script, style, noscript").Remove()

	var b strings.Builder
	blocks := doc.Find("p, li, h1, h2, h3, h4, h5, h6, td")
	if blocks.Length() == 0 {
		return doc.Text()
	}
	blocks.Each(func(_ int, sel *goquery.Selection) {
		if t := strings.TrimSpace(sel.Text()); t != "" {
			b.WriteString(t)
			b.WriteString("\n")
		}
	})
	return b.String()
}

func stripMarkdown(s string) string {
	s = codeFenceRe.ReplaceAllString(s, "")
	s = imageRe.ReplaceAllString(s, "")
	s = linkRe.ReplaceAllString(s, "$1")
	s = inlineCodeRe.ReplaceAllString(s, "$1")
	s = headingRe.ReplaceAllString(s, "")
	s = emphasisRe.ReplaceAllString(s, "$2")
	s = hruleRe.ReplaceAllString(s, "")
	s = bulletRe.ReplaceAllString(s, "")
	return s
}

// collapseWhitespace reduces runs of horizontal whitespace to single spaces
// and blank-line runs to single newlines, trimming every line
func collapseWhitespace(s string) string {
	s = spaceRunRe.ReplaceAllString(s, " ")
	s = blankRunRe.ReplaceAllString(s, "\n")

	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}

func contentRunes(s string) int {
	n := 0
	for _, r := range s {
		if !unicode.IsSpace(r) {
			n++
		}
	}
	return n
}
