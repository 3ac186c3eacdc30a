package temporal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(value string) time.Time {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return t
}

func TestDuringExperiment(t *testing.T) {
	first := day("2015-01-01")
	last := day("2015-05-05")

	during, err := DuringExperiment(day("2015-03-01"), first, last)
	require.NoError(t, err)
	assert.True(t, during)

	// Bounds are inclusive.
	during, err = DuringExperiment(first, first, last)
	require.NoError(t, err)
	assert.True(t, during)
	during, err = DuringExperiment(last, first, last)
	require.NoError(t, err)
	assert.True(t, during)

	during, err = DuringExperiment(day("2014-12-31"), first, last)
	require.NoError(t, err)
	assert.False(t, during)
	during, err = DuringExperiment(day("2015-05-06"), first, last)
	require.NoError(t, err)
	assert.False(t, during)
}

func TestDuringExperimentZeroBoundsError(t *testing.T) {
	_, err := DuringExperiment(day("2015-03-01"), time.Time{}, day("2015-05-05"))
	assert.Error(t, err)
	_, err = DuringExperiment(day("2015-03-01"), day("2015-01-01"), time.Time{})
	assert.Error(t, err)
}

func TestNearPosted(t *testing.T) {
	cal := NewCalendar(map[string]time.Time{"lec1": day("2015-02-01")})

	assert.True(t, NearPosted(day("2015-02-01"), "lec1", cal, 3))
	assert.True(t, NearPosted(day("2015-02-22"), "lec1", cal, 3))
	assert.False(t, NearPosted(day("2015-02-23"), "lec1", cal, 3))

	// Unknown lectures cannot be validated.
	assert.False(t, NearPosted(day("2015-02-01"), "missing", cal, 3))

	// Comment predating its lecture is an anomaly, never valid.
	assert.False(t, NearPosted(day("2015-01-22"), "lec1", cal, 3))
}

func TestDaysAfter(t *testing.T) {
	cal := NewCalendar(map[string]time.Time{"lec1": day("2015-02-01")})

	offset, ok := DaysAfter(day("2015-02-11"), "lec1", cal)
	require.True(t, ok)
	assert.Equal(t, 10, offset)

	offset, ok = DaysAfter(day("2015-01-30"), "lec1", cal)
	require.True(t, ok)
	assert.Equal(t, -2, offset)

	_, ok = DaysAfter(day("2015-02-11"), "missing", cal)
	assert.False(t, ok)
}

func TestRelativeClassification(t *testing.T) {
	ref := day("2015-03-01")
	window := 7 * 24 * time.Hour

	assert.Equal(t, RelationAfter, Relative(ref, ref, window))
	assert.Equal(t, RelationAfter, Relative(day("2015-03-08"), ref, window))
	assert.Equal(t, RelationOutOfWindow, Relative(day("2015-03-09"), ref, window))
	assert.Equal(t, RelationBefore, Relative(day("2015-02-25"), ref, window))
	assert.Equal(t, RelationBefore, Relative(day("2015-02-22"), ref, window))
	assert.Equal(t, RelationOutOfWindow, Relative(day("2015-02-21"), ref, window))
}

func TestRelativePartitionsAllDates(t *testing.T) {
	// Every date falls into exactly one bucket: sweep hour by hour across
	// a range much wider than the window.
	ref := day("2015-03-01")
	window := 3 * 24 * time.Hour

	counts := map[Relation]int{}
	for d := ref.Add(-10 * 24 * time.Hour); d.Before(ref.Add(10 * 24 * time.Hour)); d = d.Add(time.Hour) {
		rel := Relative(d, ref, window)
		switch rel {
		case RelationAfter, RelationBefore, RelationOutOfWindow:
			counts[rel]++
		default:
			t.Fatalf("date %v classified as %q", d, rel)
		}
	}

	assert.NotZero(t, counts[RelationAfter])
	assert.NotZero(t, counts[RelationBefore])
	assert.NotZero(t, counts[RelationOutOfWindow])
}
