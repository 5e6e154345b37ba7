package news

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// SummaryLength is the rune budget for derived summaries, sized for meta descriptions.
const SummaryLength = 160

// DeriveSummary turns an HTML body into plain text with collapsed whitespace,
// truncated to max runes with a trailing ellipsis.
func DeriveSummary(body string, max int) string {
	text := body
	if doc, err := goquery.NewDocumentFromReader(strings.NewReader(body)); err == nil {
		doc.Find("script, style, noscript").Remove()
		text = doc.Text()
	}
	text = strings.Join(strings.Fields(text), " ")

	runes := []rune(text)
	if max <= 0 || len(runes) <= max {
		return text
	}
	return strings.TrimSpace(string(runes[:max-1])) + "…"
}
