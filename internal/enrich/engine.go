package enrich

import (
	"time"

	"go.uber.org/zap"

	"github.com/spoclab/spoc-pipeline/internal/ingest"
	"github.com/spoclab/spoc-pipeline/internal/metrics"
	"github.com/spoclab/spoc-pipeline/internal/roster"
	"github.com/spoclab/spoc-pipeline/internal/temporal"
	"github.com/spoclab/spoc-pipeline/internal/textproc"
	"github.com/spoclab/spoc-pipeline/internal/topics"
	"github.com/spoclab/spoc-pipeline/pkg/logger"
)

const week = 7 * 24 * time.Hour

// Config carries the temporal policy knobs for one run.
type Config struct {
	FirstDay time.Time
	LastDay  time.Time
	// SwitchDay optionally restricts which comments count toward the
	// punctual-comment totals (e.g. "second half of course only"). Zero
	// means no restriction. It does not change which rows are emitted.
	SwitchDay        time.Time
	ProximityWeeks   int
	PromptWindowDays int
}

// EnrichedComment is one comment that survived every gate, with its
// derived classification fields and the owning student's record for the
// output snapshot.
type EnrichedComment struct {
	Row  ingest.CommentRow
	Date time.Time

	Cleaned      string
	Topic        string
	Distribution []float64
	HelpRequest  bool

	PositiveWords int
	NegativeWords int
	TotalWords    int
	MeanWordLen   float64
	MedianWordLen float64

	PromptRelation     temporal.Relation
	PromptRelationWeek temporal.Relation
	PromptRelation3Day temporal.Relation

	LectureDayOffset   int
	LectureDayOffsetOK bool

	Student *roster.StudentRecord
}

// Engine runs the per-comment gate sequence and accumulates per-student
// counters in the roster store. It must not be used for classification
// until FitModel has run (two-pass contract).
type Engine struct {
	store   *roster.Store
	cal     *temporal.Calendar
	model   topics.Model
	lexicon *textproc.Lexicon
	cfg     Config

	cramComments int
}

func New(store *roster.Store, cal *temporal.Calendar, model topics.Model, lexicon *textproc.Lexicon, cfg Config) *Engine {
	return &Engine{
		store:   store,
		cal:     cal,
		model:   model,
		lexicon: lexicon,
		cfg:     cfg,
	}
}

// BuildCorpus is pass one: the cleaned, tokenized bodies of every
// consenting, non-empty comment. Non-consenting authors never reach the
// model, not even as training text.
func (e *Engine) BuildCorpus(rows []ingest.CommentRow) [][]string {
	corpus := make([][]string, 0, len(rows))
	for _, row := range rows {
		if row.Body == "" {
			continue
		}
		if _, ok := e.store.Get(row.AuthorID); !ok {
			continue
		}
		tokens := textproc.Tokenize(textproc.Clean(row.Body))
		if len(tokens) > 0 {
			corpus = append(corpus, tokens)
		}
	}
	return corpus
}

func (e *Engine) FitModel(corpus [][]string) error {
	return e.model.Fit(corpus)
}

// EnrichAll runs pass two over every comment row, in file order.
func (e *Engine) EnrichAll(rows []ingest.CommentRow) []*EnrichedComment {
	out := make([]*EnrichedComment, 0, len(rows))
	for _, row := range rows {
		if enriched, ok := e.EnrichComment(row); ok {
			out = append(out, enriched)
		}
	}
	return out
}

// EnrichComment applies the gate sequence to one comment. Order matters
// and the first failing gate wins: eligibility, timestamp, experiment
// window, lecture proximity. Only a comment passing all of them is
// classified, counted, and emitted.
func (e *Engine) EnrichComment(row ingest.CommentRow) (*EnrichedComment, bool) {
	student, ok := e.store.Get(row.AuthorID)
	if !ok {
		logger.Warn("Comment author not in roster",
			zap.String("post_id", row.PostID),
			zap.String("author_id", row.AuthorID),
		)
		metrics.CommentsSkipped.WithLabelValues("unknown_author").Inc()
		return nil, false
	}

	ts, err := ingest.ParseTimestamp(row.Timestamp)
	if err != nil {
		logger.Warn("Comment has malformed timestamp",
			zap.String("post_id", row.PostID),
			zap.String("timestamp", row.Timestamp),
			zap.Error(err),
		)
		metrics.CommentsSkipped.WithLabelValues("bad_timestamp").Inc()
		return nil, false
	}

	during, err := temporal.DuringExperiment(ts, e.cfg.FirstDay, e.cfg.LastDay)
	if err != nil {
		logger.Error("Experiment window misconfigured", zap.Error(err))
		metrics.CommentsSkipped.WithLabelValues("bad_window").Inc()
		return nil, false
	}
	if !during {
		if ts.Before(e.cfg.FirstDay) {
			e.store.Increment(row.AuthorID, roster.CounterPreExperimentComments, 1)
		}
		metrics.CommentsSkipped.WithLabelValues("outside_experiment").Inc()
		return nil, false
	}

	if !temporal.NearPosted(ts, row.LectureID, e.cal, e.cfg.ProximityWeeks) {
		e.store.Increment(row.AuthorID, roster.CounterLateComments, 1)
		e.cramComments++
		metrics.CommentsSkipped.WithLabelValues("lecture_proximity").Inc()
		return nil, false
	}

	cleaned := textproc.Clean(row.Body)
	tokens := textproc.Tokenize(cleaned)
	numPositive, numNegative, numWords := e.lexicon.Count(cleaned)
	mean, median := textproc.WordStats(tokens)

	enriched := &EnrichedComment{
		Row:           row,
		Date:          ts,
		Cleaned:       cleaned,
		Topic:         e.model.PredictTopic(tokens),
		Distribution:  e.model.Distribution(tokens),
		HelpRequest:   textproc.IsHelpRequest(row.Body),
		PositiveWords: numPositive,
		NegativeWords: numNegative,
		TotalWords:    numWords,
		MeanWordLen:   mean,
		MedianWordLen: median,
		Student:       student,
	}
	enriched.LectureDayOffset, enriched.LectureDayOffsetOK = temporal.DaysAfter(ts, row.LectureID, e.cal)

	if e.cfg.SwitchDay.IsZero() || !ts.Before(e.cfg.SwitchDay) {
		e.store.Increment(row.AuthorID, roster.CounterPunctualComments, 1)
	}
	if enriched.HelpRequest {
		e.store.Increment(row.AuthorID, roster.CounterHelpRequests, 1)
	}
	e.store.Increment(row.AuthorID, roster.CounterPositiveWords, numPositive)
	e.store.Increment(row.AuthorID, roster.CounterNegativeWords, numNegative)
	e.store.Increment(row.AuthorID, roster.CounterCommentWords, numWords)
	e.store.Increment(row.AuthorID, roster.CounterCommentChars, len(row.Body))

	e.applyPromptRelations(enriched, student, ts)

	metrics.CommentsProcessed.Inc()
	return enriched, true
}

// applyPromptRelations computes the prompt-relative flags and counters.
// Each flag independently stays "no data" when the student never received
// a prompt.
func (e *Engine) applyPromptRelations(enriched *EnrichedComment, student *roster.StudentRecord, ts time.Time) {
	if !student.HasFirstPrompt() {
		return
	}
	ref := student.FirstPromptDate

	if ts.Before(ref) {
		enriched.PromptRelation = temporal.RelationBefore
		e.store.Increment(student.StudentID, roster.CounterCommentsBeforePrompt, 1)
	} else {
		enriched.PromptRelation = temporal.RelationAfter
		e.store.Increment(student.StudentID, roster.CounterCommentsAfterPrompt, 1)
	}

	enriched.PromptRelationWeek = temporal.Relative(ts, ref, week)
	switch enriched.PromptRelationWeek {
	case temporal.RelationBefore:
		e.store.Increment(student.StudentID, roster.CounterCommentsBeforePromptWeek, 1)
	case temporal.RelationAfter:
		e.store.Increment(student.StudentID, roster.CounterCommentsAfterPromptWeek, 1)
	}

	window := time.Duration(e.cfg.PromptWindowDays) * 24 * time.Hour
	enriched.PromptRelation3Day = temporal.Relative(ts, ref, window)
	switch enriched.PromptRelation3Day {
	case temporal.RelationBefore:
		e.store.Increment(student.StudentID, roster.CounterCommentsBeforePrompt3Day, 1)
	case temporal.RelationAfter:
		e.store.Increment(student.StudentID, roster.CounterCommentsAfterPrompt3Day, 1)
	}
}

// CramComments reports how many comments the lecture-proximity gate
// rejected, for the end-of-run summary.
func (e *Engine) CramComments() int {
	return e.cramComments
}
