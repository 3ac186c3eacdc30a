package textproc

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var nonLetter = regexp.MustCompile(`[^a-zA-Z' ]+`)

// Clean normalizes a raw comment body for classification: markup is
// stripped, possessive "'s" suffixes dropped, everything outside letters,
// apostrophes and spaces removed, and the result lowercased. A glued
// protocol token ("httpexamplecom...") gets a space inserted after "http"
// so a pasted URL does not become one giant pseudo-word.
func Clean(raw string) string {
	text := stripMarkup(raw)
	// Stripping markup from markup-free text can eat nearly everything;
	// a suspiciously short residue means we keep the original.
	if len(text) < 10 {
		text = raw
	}

	text = strings.ReplaceAll(text, "'s", "")
	text = nonLetter.ReplaceAllString(text, "")
	text = strings.ReplaceAll(text, "http", "http ")

	return strings.ToLower(text)
}

func stripMarkup(raw string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		return raw
	}
	doc.Find("script, style").Each(func(i int, s *goquery.Selection) {
		s.Remove()
	})
	return strings.TrimSpace(doc.Text())
}
