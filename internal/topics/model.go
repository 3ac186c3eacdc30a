package topics

import (
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/spoclab/spoc-pipeline/pkg/logger"
)

// Model is the topic classifier contract the enrichment engine depends on.
// Fit trains once on the full corpus of cleaned, tokenized comments before
// any prediction happens; implementations are swappable.
type Model interface {
	Fit(corpus [][]string) error
	PredictTopic(tokens []string) string
	Distribution(tokens []string) []float64
	NumTopics() int
	TopicNames() []string
}

// TermModel is the default implementation: each topic is seeded by one of
// the most frequent distinctive corpus terms, and a document's affinity to
// a topic is the co-occurrence weight of its tokens with that seed. Topic
// names are derived from the topic's top two terms, mirroring the
// automatic naming the analysis historically used.
type TermModel struct {
	numTopics int
	fitted    bool
	names     []string
	weights   []map[string]float64
}

func NewTermModel(numTopics int) *TermModel {
	return &TermModel{numTopics: numTopics}
}

func (m *TermModel) NumTopics() int { return m.numTopics }

func (m *TermModel) TopicNames() []string { return m.names }

// Fit builds the per-topic term weights. Stop words and terms appearing
// only once in the corpus are removed from the training texts; prediction
// input is not filtered.
func (m *TermModel) Fit(corpus [][]string) error {
	if m.numTopics < 1 {
		return fmt.Errorf("topic model needs at least one topic, got %d", m.numTopics)
	}
	if len(corpus) == 0 {
		return fmt.Errorf("topic model cannot be fitted on an empty corpus")
	}

	frequency := make(map[string]int)
	for _, doc := range corpus {
		for _, term := range doc {
			frequency[term]++
		}
	}

	texts := make([][]string, 0, len(corpus))
	for _, doc := range corpus {
		kept := make([]string, 0, len(doc))
		for _, term := range doc {
			if frequency[term] <= 1 {
				continue
			}
			if _, stop := stopWords[term]; stop {
				continue
			}
			kept = append(kept, term)
		}
		texts = append(texts, kept)
	}

	seeds := m.pickSeeds(texts)
	if len(seeds) == 0 {
		return fmt.Errorf("topic model found no usable terms in %d documents", len(corpus))
	}

	m.weights = make([]map[string]float64, m.numTopics)
	for i := range m.weights {
		m.weights[i] = make(map[string]float64)
	}

	// Co-occurrence within a document ties a term to each seed present in
	// that document.
	for _, doc := range texts {
		present := make(map[string]struct{}, len(doc))
		for _, term := range doc {
			present[term] = struct{}{}
		}
		for topic, seed := range seeds {
			if _, ok := present[seed]; !ok {
				continue
			}
			for term := range present {
				m.weights[topic][term]++
			}
		}
	}

	for topic := range m.weights {
		total := 0.0
		for _, w := range m.weights[topic] {
			total += w
		}
		if total > 0 {
			for term := range m.weights[topic] {
				m.weights[topic][term] /= total
			}
		}
	}

	m.names = make([]string, m.numTopics)
	for topic := range m.names {
		m.names[topic] = m.topicName(topic, seeds)
	}
	m.fitted = true

	logger.Info("Fitted topic model",
		zap.Int("documents", len(corpus)),
		zap.Int("topics", m.numTopics),
		zap.Strings("topic_names", m.names),
	)

	return nil
}

// Distribution returns a dense score vector over all topics, normalized to
// sum to one when any token matches. An unfitted model or unmatched
// document yields all zeros.
func (m *TermModel) Distribution(tokens []string) []float64 {
	scores := make([]float64, m.numTopics)
	if !m.fitted {
		return scores
	}

	total := 0.0
	for topic := range m.weights {
		for _, term := range tokens {
			scores[topic] += m.weights[topic][term]
		}
		total += scores[topic]
	}
	if total > 0 {
		for i := range scores {
			scores[i] /= total
		}
	}
	return scores
}

// PredictTopic returns the name of the highest-scoring topic.
func (m *TermModel) PredictTopic(tokens []string) string {
	if !m.fitted {
		return ""
	}
	scores := m.Distribution(tokens)
	best := 0
	for i, score := range scores {
		if score > scores[best] {
			best = i
		}
	}
	return m.names[best]
}

// pickSeeds selects the numTopics most frequent surviving terms,
// tie-broken alphabetically for determinism.
func (m *TermModel) pickSeeds(texts [][]string) []string {
	frequency := make(map[string]int)
	for _, doc := range texts {
		for _, term := range doc {
			frequency[term]++
		}
	}

	terms := make([]string, 0, len(frequency))
	for term := range frequency {
		terms = append(terms, term)
	}
	sort.Slice(terms, func(i, j int) bool {
		if frequency[terms[i]] != frequency[terms[j]] {
			return frequency[terms[i]] > frequency[terms[j]]
		}
		return terms[i] < terms[j]
	})

	if len(terms) > m.numTopics {
		terms = terms[:m.numTopics]
	}
	return terms
}

// topicName joins the topic's top two weighted terms into a label.
func (m *TermModel) topicName(topic int, seeds []string) string {
	if topic >= len(seeds) {
		return fmt.Sprintf("topic%d", topic)
	}
	seed := seeds[topic]

	second := ""
	bestWeight := 0.0
	for term, weight := range m.weights[topic] {
		if term == seed {
			continue
		}
		if weight > bestWeight || (weight == bestWeight && (second == "" || term < second)) {
			second = term
			bestWeight = weight
		}
	}
	if second == "" {
		return seed
	}
	return seed + second
}
