package roster

import (
	"strings"
	"time"

	"github.com/spoclab/spoc-pipeline/internal/ingest"
)

// Voting condition values as written in the roster export, and the derived
// cohort labels computed from them.
const (
	VoteGroupNone = "NOVOTE_GROUP"
	VoteGroupUp   = "UPVOTE_GROUP"
	VoteGroupBoth = "UPDOWNVOTE_GROUP"

	AnyVoteYes = "VOTE"
	AnyVoteNo  = "NOVOTE"

	NegVoteBoth  = "VOTE_BOTH"
	NegVoteOther = "OTHER"
)

// Prompting condition values.
const (
	PromptPositive = "POSITIVE"
	PromptNeutral  = "NEUTRAL"
	PromptNone     = "NO_PROMPT"
)

// StudentRecord is one enrolled, consenting student. Static fields are set
// at construction and never change; Counts and FirstPromptDate are the only
// mutable state, owned by the Store.
type StudentRecord struct {
	StudentID string

	NumComments  string
	NumUpvotes   string
	NumDownvotes string
	NumPrompts   int

	VotingCond    string // display form, group suffix stripped
	VotingCondRaw string
	AnyVoteCond   string
	NegVoteCond   string
	PromptingCond string

	Assignments     []string
	AssignmentLates []string
	TotalLate       string
	Exams           []string
	MidGrade        string
	Exercises       []string

	FirstPromptDate time.Time

	Counts Counts
}

// newStudentRecord builds a record from a roster row, computing the derived
// voting cohort fields and validating the prompting condition.
func newStudentRecord(row ingest.RosterRow) *StudentRecord {
	s := &StudentRecord{
		StudentID:       row.StudentID,
		NumComments:     row.NumComments,
		NumUpvotes:      row.NumUpvotes,
		NumDownvotes:    row.NumDownvotes,
		NumPrompts:      row.NumPrompts,
		VotingCondRaw:   row.VotingCond,
		PromptingCond:   row.PromptingCond,
		Assignments:     row.Assignments,
		AssignmentLates: row.AssignmentLates,
		TotalLate:       row.TotalLate,
		Exams:           row.Exams,
		MidGrade:        row.MidGrade,
		Exercises:       row.Exercises,
	}

	switch row.VotingCond {
	case VoteGroupNone:
		s.AnyVoteCond = AnyVoteNo
		s.NegVoteCond = NegVoteOther
	case VoteGroupUp:
		s.AnyVoteCond = AnyVoteYes
		s.NegVoteCond = NegVoteOther
	case VoteGroupBoth:
		s.AnyVoteCond = AnyVoteYes
		s.NegVoteCond = NegVoteBoth
	default:
		// Malformed voting condition downgrades to an empty cohort,
		// never an error.
		s.AnyVoteCond = ""
		s.NegVoteCond = ""
	}

	switch s.PromptingCond {
	case PromptPositive, PromptNeutral, PromptNone:
	default:
		s.PromptingCond = ""
	}
	// A student cannot be in a prompting condition without having received
	// at least one prompt.
	if s.NumPrompts < 1 {
		s.PromptingCond = PromptNone
	}

	// "_GROUP" suffix is dropped for display.
	s.VotingCond = strings.Split(row.VotingCond, "_")[0]

	return s
}

// HasFirstPrompt reports whether a first-prompt date has been recorded.
func (s *StudentRecord) HasFirstPrompt() bool {
	return !s.FirstPromptDate.IsZero()
}
