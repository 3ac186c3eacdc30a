package textproc

import (
	"sort"
	"strings"

	prose "github.com/jdkato/prose/v2"
)

// Tokenize splits cleaned text into tokens. Tagging, entity extraction and
// sentence segmentation are disabled; only the tokenizer runs.
func Tokenize(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	doc, err := prose.NewDocument(text,
		prose.WithTagging(false),
		prose.WithExtraction(false),
		prose.WithSegmentation(false),
	)
	if err != nil {
		return strings.Fields(text)
	}

	tokens := make([]string, 0, len(doc.Tokens()))
	for _, tok := range doc.Tokens() {
		if tok.Text != "" {
			tokens = append(tokens, tok.Text)
		}
	}
	return tokens
}

// WordStats returns the mean and median token length. Both are zero for an
// empty token list.
func WordStats(tokens []string) (mean, median float64) {
	if len(tokens) == 0 {
		return 0, 0
	}

	lengths := make([]int, len(tokens))
	total := 0
	for i, tok := range tokens {
		lengths[i] = len(tok)
		total += len(tok)
	}
	sort.Ints(lengths)

	mean = float64(total) / float64(len(lengths))
	mid := len(lengths) / 2
	if len(lengths)%2 == 1 {
		median = float64(lengths[mid])
	} else {
		median = float64(lengths[mid-1]+lengths[mid]) / 2
	}
	return mean, median
}
