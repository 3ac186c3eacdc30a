package ingest

import (
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/spoclab/spoc-pipeline/pkg/logger"
)

// RosterRow is one student row from the conditions export. Scores stay as
// the raw strings found in the file (blanks included); the roster keeps
// them verbatim for the output tables.
type RosterRow struct {
	StudentID       string
	NumComments     string
	VotingCond      string
	PromptingCond   string
	NumPrompts      int
	NumUpvotes      string
	NumDownvotes    string
	Assignments     []string
	AssignmentLates []string
	TotalLate       string
	Exams           []string
	MidGrade        string
	Exercises       []string
}

// CommentRow is one raw discussion comment. Timestamp stays unparsed here;
// the enrichment engine owns timestamp policy.
type CommentRow struct {
	PostID     string
	AuthorID   string
	LectureID  string
	Timestamp  string
	Body       string
	Edited     string
	EditAuthor string
	Upvotes    string
	Downvotes  string
}

// PromptRow is one engagement prompt with its recipient list split out.
type PromptRow struct {
	PromptID      string
	AuthorID      string
	Recipients    []string
	Message       string
	Encouragement string
	Timestamp     string
}

func ParseRosterRows(table *Table, version SchemaVersion) ([]RosterRow, error) {
	header, err := ResolveHeader(table.File, table.Headers, version.rosterColumns())
	if err != nil {
		return nil, err
	}

	rows := make([]RosterRow, 0, len(table.Records))
	for _, record := range table.Records {
		numPrompts, err := strconv.Atoi(strings.TrimSpace(header.Value(record, ColNumPrompts)))
		if err != nil {
			// Blank or junk prompt counts read as zero, which downstream
			// forces the prompting condition to NO_PROMPT.
			numPrompts = 0
		}

		row := RosterRow{
			StudentID:     strings.TrimSpace(header.Value(record, ColID)),
			NumComments:   header.Value(record, ColNumComments),
			VotingCond:    header.Value(record, ColVoting),
			PromptingCond: header.Value(record, ColPrompting),
			NumPrompts:    numPrompts,
			NumUpvotes:    header.Value(record, ColNumUpvotes),
			NumDownvotes:  header.Value(record, ColNumDownvotes),
			TotalLate:     header.Value(record, ColTotalLate),
			MidGrade:      header.Value(record, ColMidGrade),
		}
		for i := range ColAssignments {
			row.Assignments = append(row.Assignments, header.Value(record, ColAssignments[i]))
			row.AssignmentLates = append(row.AssignmentLates, header.Value(record, ColAssignmentLates[i]))
		}
		for _, col := range version.ExamColumns() {
			row.Exams = append(row.Exams, header.Value(record, col))
		}
		for _, col := range ColExercises {
			row.Exercises = append(row.Exercises, header.Value(record, col))
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func ParseCommentRows(table *Table) ([]CommentRow, error) {
	header, err := ResolveHeader(table.File, table.Headers, commentColumns)
	if err != nil {
		return nil, err
	}

	rows := make([]CommentRow, 0, len(table.Records))
	for _, record := range table.Records {
		rows = append(rows, CommentRow{
			PostID:     strings.TrimSpace(header.Value(record, ColID)),
			AuthorID:   strings.TrimSpace(header.Value(record, ColAuthor)),
			LectureID:  strings.TrimSpace(header.Value(record, ColLecture)),
			Timestamp:  header.Value(record, ColTimestamp),
			Body:       header.Value(record, ColComment),
			Edited:     header.Value(record, ColEdited),
			EditAuthor: header.Value(record, ColEditAuthor),
			Upvotes:    header.Value(record, ColUpvotes),
			Downvotes:  header.Value(record, ColDownvotes),
		})
	}
	return rows, nil
}

func ParsePromptRows(table *Table, recipientSep string) ([]PromptRow, error) {
	header, err := ResolveHeader(table.File, table.Headers, promptColumns)
	if err != nil {
		return nil, err
	}

	rows := make([]PromptRow, 0, len(table.Records))
	for _, record := range table.Records {
		row := PromptRow{
			PromptID:      strings.TrimSpace(header.Value(record, ColID)),
			AuthorID:      strings.TrimSpace(header.Value(record, ColAuthor)),
			Message:       header.Value(record, ColMessage),
			Encouragement: header.Value(record, ColEncouragement),
			Timestamp:     header.Value(record, ColTimestamp),
		}
		raw := header.Value(record, ColRecipients)
		for _, recipient := range strings.Split(raw, recipientSep) {
			recipient = strings.TrimSpace(recipient)
			if recipient != "" {
				row.Recipients = append(row.Recipients, recipient)
			}
		}
		if len(row.Recipients) == 0 {
			logger.Warn("Prompt row has no recipients",
				zap.String("prompt_id", row.PromptID),
			)
		}
		rows = append(rows, row)
	}
	return rows, nil
}
