package temporal

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/spoclab/spoc-pipeline/pkg/logger"
)

// Relation classifies a date against a reference date and window. Every
// date falls into exactly one of After, Before, or OutOfWindow; None is
// reserved for "no reference date available".
type Relation string

const (
	RelationNone        Relation = ""
	RelationAfter       Relation = "AFTER"
	RelationBefore      Relation = "BEFORE"
	RelationOutOfWindow Relation = "OUT_OF_WINDOW"
)

// DuringExperiment reports whether date falls inside the inclusive
// experiment bounds. Zero bounds are a configuration error, not a default.
func DuringExperiment(date, first, last time.Time) (bool, error) {
	if first.IsZero() || last.IsZero() {
		return false, fmt.Errorf("experiment bounds are not set")
	}
	return !date.Before(first) && !date.After(last), nil
}

// NearPosted reports whether date falls within weeks of the lecture's
// posted date. Unknown lectures cannot be validated and are out of window.
// A comment predating its own lecture is a data anomaly: logged, and out of
// window.
func NearPosted(date time.Time, lectureID string, cal *Calendar, weeks int) bool {
	posted, ok := cal.Posted(lectureID)
	if !ok {
		return false
	}
	if date.Before(posted) {
		logger.Warn("Comment predates its lecture",
			zap.String("lecture_id", lectureID),
			zap.Time("posted", posted),
			zap.Time("comment", date),
		)
		return false
	}
	return !date.After(posted.AddDate(0, 0, 7*weeks))
}

// DaysAfter returns the signed day offset of date from the lecture's posted
// date. ok is false when the lecture is unknown.
func DaysAfter(date time.Time, lectureID string, cal *Calendar) (int, bool) {
	posted, ok := cal.Posted(lectureID)
	if !ok {
		return 0, false
	}
	return int(date.Sub(posted).Hours() / 24), true
}

// Relative classifies date against ref:
//
//	After:  ref <= date <= ref+window
//	Before: ref-window <= date < ref
//
// and OutOfWindow otherwise.
func Relative(date, ref time.Time, window time.Duration) Relation {
	if !date.Before(ref) {
		if !date.After(ref.Add(window)) {
			return RelationAfter
		}
		return RelationOutOfWindow
	}
	if !date.Before(ref.Add(-window)) {
		return RelationBefore
	}
	return RelationOutOfWindow
}
