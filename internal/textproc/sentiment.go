package textproc

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/spoclab/spoc-pipeline/pkg/logger"
)

// Lexicon counts positive and negative sentiment words in comment text
// using two static word lists. Matching is case-insensitive and
// whole-token; a token in neither list is simply uncounted.
type Lexicon struct {
	positive map[string]struct{}
	negative map[string]struct{}
}

func NewLexicon(positive, negative []string) *Lexicon {
	lex := &Lexicon{
		positive: make(map[string]struct{}, len(positive)),
		negative: make(map[string]struct{}, len(negative)),
	}
	for _, word := range positive {
		if word = strings.ToLower(strings.TrimSpace(word)); word != "" {
			lex.positive[word] = struct{}{}
		}
	}
	for _, word := range negative {
		if word = strings.ToLower(strings.TrimSpace(word)); word != "" {
			lex.negative[word] = struct{}{}
		}
	}
	return lex
}

// LoadLexicon reads newline-delimited positive and negative word lists.
func LoadLexicon(positivePath, negativePath string) (*Lexicon, error) {
	positive, err := readWordList(positivePath)
	if err != nil {
		return nil, fmt.Errorf("failed to load positive word list: %w", err)
	}
	negative, err := readWordList(negativePath)
	if err != nil {
		return nil, fmt.Errorf("failed to load negative word list: %w", err)
	}

	logger.Info("Loaded sentiment lexicon",
		zap.Int("positive_words", len(positive)),
		zap.Int("negative_words", len(negative)),
	)

	return NewLexicon(positive, negative), nil
}

// Count returns the number of positive words, negative words, and total
// words in the text. A word matching both lists counts as positive, never
// negative.
func (l *Lexicon) Count(text string) (numPositive, numNegative, numWords int) {
	words := strings.Fields(strings.ToLower(text))
	for _, word := range words {
		if _, ok := l.positive[word]; ok {
			numPositive++
		} else if _, ok := l.negative[word]; ok {
			numNegative++
		}
	}
	return numPositive, numNegative, len(words)
}

func readWordList(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return strings.Split(string(data), "\n"), nil
}
