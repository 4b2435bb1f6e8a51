package analyzer

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/grassmudhorses/vader-go/lexicon"
	"github.com/grassmudhorses/vader-go/sentitext"
)

// Polarity scores a comment with the VADER lexicon and returns the
// compound polarity in [-1, 1]. Empty text scores zero.
func Polarity(text string) float64 {
	if strings.TrimSpace(text) == "" {
		return 0
	}
	parsed := sentitext.Parse(text, lexicon.DefaultLexicon)
	return sentitext.PolarityScore(parsed).Compound
}

// PlainText strips the HTML markup the upstream API embeds in comment
// bodies. Unparseable input is returned as-is.
func PlainText(htmlText string) string {
	if !strings.Contains(htmlText, "<") {
		return strings.TrimSpace(htmlText)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlText))
	if err != nil {
		return strings.TrimSpace(htmlText)
	}
	return strings.TrimSpace(doc.Text())
}
