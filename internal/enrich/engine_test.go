package enrich

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spoclab/spoc-pipeline/internal/ingest"
	"github.com/spoclab/spoc-pipeline/internal/roster"
	"github.com/spoclab/spoc-pipeline/internal/temporal"
	"github.com/spoclab/spoc-pipeline/internal/textproc"
)

type stubModel struct {
	topic string
}

func (m *stubModel) Fit(corpus [][]string) error { return nil }

func (m *stubModel) PredictTopic(tokens []string) string { return m.topic }

func (m *stubModel) Distribution(tokens []string) []float64 {
	return []float64{0.75, 0.25}
}

func (m *stubModel) NumTopics() int { return 2 }

func (m *stubModel) TopicNames() []string { return []string{m.topic, "other"} }

func day(value string) time.Time {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return t
}

func testEngine(t *testing.T) (*Engine, *roster.Store) {
	t.Helper()

	rows := []ingest.RosterRow{
		{StudentID: "1", VotingCond: roster.VoteGroupUp, PromptingCond: roster.PromptNeutral, NumPrompts: 1},
		{StudentID: "2", VotingCond: roster.VoteGroupNone, NumPrompts: 0},
	}
	store := roster.Build(rows, roster.NewPolicy([]string{"1", "2"}, nil))

	cal := temporal.NewCalendar(map[string]time.Time{
		"lec1": day("2015-02-01"),
	})
	lexicon := textproc.NewLexicon([]string{"great"}, []string{"awful"})

	engine := New(store, cal, &stubModel{topic: "gradinghomework"}, lexicon, Config{
		FirstDay:         day("2015-01-01"),
		LastDay:          day("2015-05-05"),
		ProximityWeeks:   3,
		PromptWindowDays: 3,
	})
	return engine, store
}

func comment(author, lecture, ts, body string) ingest.CommentRow {
	return ingest.CommentRow{
		PostID:    "p1",
		AuthorID:  author,
		LectureID: lecture,
		Timestamp: ts,
		Body:      body,
		Upvotes:   "0",
		Downvotes: "0",
	}
}

func TestUnknownAuthorDropsRowWithoutCounters(t *testing.T) {
	engine, store := testEngine(t)

	_, ok := engine.EnrichComment(comment("999", "lec1", "2015-02-05 10:00:00", "this is great"))

	assert.False(t, ok)
	for _, s := range store.Students() {
		assert.Equal(t, roster.Counts{}, s.Counts)
	}
}

func TestMalformedTimestampDropsRow(t *testing.T) {
	engine, store := testEngine(t)

	_, ok := engine.EnrichComment(comment("1", "lec1", "0000-00-00 00:00:00", "this is great"))

	assert.False(t, ok)
	student, _ := store.Get("1")
	assert.Equal(t, roster.Counts{}, student.Counts)
}

func TestPreExperimentCommentCounted(t *testing.T) {
	engine, store := testEngine(t)

	_, ok := engine.EnrichComment(comment("1", "lec1", "2014-12-20 10:00:00", "early bird"))

	assert.False(t, ok)
	student, _ := store.Get("1")
	assert.Equal(t, 1, student.Counts.PreExperimentComments)
	assert.Zero(t, student.Counts.PunctualComments)
}

func TestPostExperimentCommentSkippedWithoutCounter(t *testing.T) {
	engine, store := testEngine(t)

	_, ok := engine.EnrichComment(comment("1", "lec1", "2015-06-01 10:00:00", "too late"))

	assert.False(t, ok)
	student, _ := store.Get("1")
	assert.Zero(t, student.Counts.PreExperimentComments)
	assert.Zero(t, student.Counts.LateComments)
}

func TestCommentPredatingLectureIsLate(t *testing.T) {
	// Posted day 2015-02-01, comment ten days earlier, threshold three
	// weeks: the proximity gate rejects it and the late counter moves by
	// exactly one.
	engine, store := testEngine(t)

	enriched, ok := engine.EnrichComment(comment("1", "lec1", "2015-01-22 10:00:00", "am i early"))

	assert.False(t, ok)
	assert.Nil(t, enriched)
	student, _ := store.Get("1")
	assert.Equal(t, 1, student.Counts.LateComments)
	assert.Equal(t, 1, engine.CramComments())
}

func TestCramCommentIsLate(t *testing.T) {
	engine, store := testEngine(t)

	_, ok := engine.EnrichComment(comment("1", "lec1", "2015-04-01 10:00:00", "cramming now"))

	assert.False(t, ok)
	student, _ := store.Get("1")
	assert.Equal(t, 1, student.Counts.LateComments)
}

func TestUnknownLectureIsLate(t *testing.T) {
	engine, store := testEngine(t)

	_, ok := engine.EnrichComment(comment("1", "lec99", "2015-02-05 10:00:00", "where is this"))

	assert.False(t, ok)
	student, _ := store.Get("1")
	assert.Equal(t, 1, student.Counts.LateComments)
}

func TestFullPassClassifiesAndCounts(t *testing.T) {
	engine, store := testEngine(t)

	body := "this is great and great"
	enriched, ok := engine.EnrichComment(comment("1", "lec1", "2015-02-05 10:00:00", body))

	require.True(t, ok)
	require.NotNil(t, enriched)

	assert.Equal(t, "gradinghomework", enriched.Topic)
	assert.Equal(t, []float64{0.75, 0.25}, enriched.Distribution)
	assert.Equal(t, 2, enriched.PositiveWords)
	assert.Equal(t, 0, enriched.NegativeWords)
	assert.Equal(t, 5, enriched.TotalWords)
	assert.False(t, enriched.HelpRequest)
	assert.True(t, enriched.LectureDayOffsetOK)
	assert.Equal(t, 4, enriched.LectureDayOffset)

	// No first-prompt date recorded, so every prompt relation is "no data".
	assert.Equal(t, temporal.RelationNone, enriched.PromptRelation)
	assert.Equal(t, temporal.RelationNone, enriched.PromptRelationWeek)
	assert.Equal(t, temporal.RelationNone, enriched.PromptRelation3Day)

	student, _ := store.Get("1")
	assert.Equal(t, 1, student.Counts.PunctualComments)
	assert.Equal(t, 2, student.Counts.PositiveWords)
	assert.Equal(t, 5, student.Counts.CommentWords)
	assert.Equal(t, len(body), student.Counts.CommentChars)
	assert.Zero(t, student.Counts.HelpRequests)
	assert.Zero(t, student.Counts.CommentsAfterPrompt)
}

func TestHelpRequestCounted(t *testing.T) {
	engine, store := testEngine(t)

	enriched, ok := engine.EnrichComment(comment("1", "lec1", "2015-02-05 10:00:00", "can someone help me with this?"))

	require.True(t, ok)
	assert.True(t, enriched.HelpRequest)
	student, _ := store.Get("1")
	assert.Equal(t, 1, student.Counts.HelpRequests)
}

func TestPromptRelativeFlags(t *testing.T) {
	engine, store := testEngine(t)
	store.SetFirstPromptDate("1", day("2015-02-10"))

	enriched, ok := engine.EnrichComment(comment("1", "lec1", "2015-02-12 10:00:00", "after my nudge"))

	require.True(t, ok)
	assert.Equal(t, temporal.RelationAfter, enriched.PromptRelation)
	assert.Equal(t, temporal.RelationAfter, enriched.PromptRelationWeek)
	assert.Equal(t, temporal.RelationAfter, enriched.PromptRelation3Day)

	student, _ := store.Get("1")
	assert.Equal(t, 1, student.Counts.CommentsAfterPrompt)
	assert.Equal(t, 1, student.Counts.CommentsAfterPromptWeek)
	assert.Equal(t, 1, student.Counts.CommentsAfterPrompt3Day)

	// A comment far before the prompt is before overall, but out of both
	// windows.
	enriched, ok = engine.EnrichComment(comment("1", "lec1", "2015-02-01 10:00:00", "long before"))
	require.True(t, ok)
	assert.Equal(t, temporal.RelationBefore, enriched.PromptRelation)
	assert.Equal(t, temporal.RelationOutOfWindow, enriched.PromptRelationWeek)
	assert.Equal(t, temporal.RelationOutOfWindow, enriched.PromptRelation3Day)

	student, _ = store.Get("1")
	assert.Equal(t, 1, student.Counts.CommentsBeforePrompt)
	assert.Zero(t, student.Counts.CommentsBeforePromptWeek)
	assert.Zero(t, student.Counts.CommentsBeforePrompt3Day)
}

func TestSwitchDayGatesPunctualCounterOnly(t *testing.T) {
	engine, store := testEngine(t)
	engine.cfg.SwitchDay = day("2015-03-01")

	enriched, ok := engine.EnrichComment(comment("1", "lec1", "2015-02-05 10:00:00", "first half great"))

	// Row is still enriched and emitted; only the punctual total is held
	// back.
	require.True(t, ok)
	require.NotNil(t, enriched)
	student, _ := store.Get("1")
	assert.Zero(t, student.Counts.PunctualComments)
	assert.Equal(t, 1, student.Counts.PositiveWords)
}

func TestBuildCorpusFiltersEligibility(t *testing.T) {
	engine, _ := testEngine(t)

	corpus := engine.BuildCorpus([]ingest.CommentRow{
		comment("1", "lec1", "2015-02-05 10:00:00", "a perfectly normal comment"),
		comment("999", "lec1", "2015-02-05 10:00:00", "not consenting text"),
		comment("2", "lec1", "2015-02-05 10:00:00", ""),
	})

	require.Len(t, corpus, 1)
	assert.Contains(t, corpus[0], "comment")
}

func TestEnrichAllKeepsFileOrder(t *testing.T) {
	engine, _ := testEngine(t)

	out := engine.EnrichAll([]ingest.CommentRow{
		comment("1", "lec1", "2015-02-05 10:00:00", "first"),
		comment("999", "lec1", "2015-02-05 10:00:00", "dropped"),
		comment("2", "lec1", "2015-02-06 10:00:00", "second"),
	})

	require.Len(t, out, 2)
	assert.Equal(t, "1", out[0].Row.AuthorID)
	assert.Equal(t, "2", out[1].Row.AuthorID)
}
