package listings

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var multiBlank = regexp.MustCompile(`\n{3,}`)

// cleanDescription strips HTML markup from a job description and normalizes
// whitespace, preserving paragraph breaks. Plain-text input passes through
// with only whitespace normalization.
func cleanDescription(raw string) string {
	text := raw
	if strings.Contains(raw, "<") && strings.Contains(raw, ">") {
		doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
		if err == nil {
			// Turn block boundaries into newlines before flattening.
			doc.Find("br").Each(func(_ int, s *goquery.Selection) {
				s.ReplaceWithHtml("\n")
			})
			doc.Find("p, li, div, h1, h2, h3, h4").Each(func(_ int, s *goquery.Selection) {
				s.AppendHtml("\n")
			})
			text = doc.Text()
		}
	}

	text = strings.ReplaceAll(text, "\r\n", "\n")
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.Join(strings.Fields(line), " ")
	}
	text = strings.Join(lines, "\n")
	text = multiBlank.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}
