package topics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func corpus() [][]string {
	return [][]string{
		{"homework", "grading", "homework", "deadline"},
		{"homework", "grading", "question"},
		{"lecture", "video", "audio"},
		{"lecture", "video", "slides"},
		{"exam", "practice", "lecture"},
		{"exam", "practice", "deadline"},
	}
}

func TestFitAndPredict(t *testing.T) {
	model := NewTermModel(3)
	require.NoError(t, model.Fit(corpus()))

	require.Len(t, model.TopicNames(), 3)
	for _, name := range model.TopicNames() {
		assert.NotEmpty(t, name)
	}

	topic := model.PredictTopic([]string{"homework", "grading"})
	assert.Contains(t, model.TopicNames(), topic)
}

func TestDistributionIsDenseAndNormalized(t *testing.T) {
	model := NewTermModel(3)
	require.NoError(t, model.Fit(corpus()))

	dist := model.Distribution([]string{"lecture", "video"})
	require.Len(t, dist, 3)

	sum := 0.0
	for _, score := range dist {
		assert.GreaterOrEqual(t, score, 0.0)
		sum += score
	}
	assert.InDelta(t, 1.0, sum, 1e-9)
}

func TestDistributionUnmatchedTokensAllZero(t *testing.T) {
	model := NewTermModel(3)
	require.NoError(t, model.Fit(corpus()))

	dist := model.Distribution([]string{"zzzz"})
	require.Len(t, dist, 3)
	for _, score := range dist {
		assert.Zero(t, score)
	}
}

func TestFitIsDeterministic(t *testing.T) {
	a := NewTermModel(3)
	b := NewTermModel(3)
	require.NoError(t, a.Fit(corpus()))
	require.NoError(t, b.Fit(corpus()))

	assert.Equal(t, a.TopicNames(), b.TopicNames())
	assert.Equal(t, a.Distribution([]string{"exam", "practice"}), b.Distribution([]string{"exam", "practice"}))
}

func TestFitRemovesStopWordsAndSingletons(t *testing.T) {
	model := NewTermModel(2)
	err := model.Fit([][]string{
		{"the", "a", "onlyonce"},
		{"the", "is"},
	})
	// Every term is a stop word or a singleton, so there is nothing to
	// seed topics with.
	assert.Error(t, err)
}

func TestFitEmptyCorpusError(t *testing.T) {
	model := NewTermModel(3)
	assert.Error(t, model.Fit(nil))
}

func TestUnfittedModelIsInert(t *testing.T) {
	model := NewTermModel(3)
	assert.Equal(t, "", model.PredictTopic([]string{"lecture"}))
	assert.Equal(t, []float64{0, 0, 0}, model.Distribution([]string{"lecture"}))
}
