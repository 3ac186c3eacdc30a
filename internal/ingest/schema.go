package ingest

import (
	"fmt"
	"strings"
)

// Expected column names, written as they appear in the export headers after
// all whitespace has been removed. The platform is not consistent about
// spacing inside header cells, so matching always happens on the stripped
// form.
const (
	ColID           = "id"
	ColVoting       = "Condition"
	ColPrompting    = "EncouragementType"
	ColNumPrompts   = "NumPrompts"
	ColNumComments  = "NumComments"
	ColNumUpvotes   = "NumUpvotes"
	ColNumDownvotes = "NumDownvotes"
	ColTotalLate    = "TotalLate"
	ColExam1        = "Exam1"
	ColExam1Deal    = "Exam1(Deal)"
	ColExam2        = "Exam2"
	ColMidGrade     = "MidGrade"

	ColAuthor     = "author"
	ColLecture    = "lecture"
	ColTimestamp  = "timestamp"
	ColComment    = "comment"
	ColEdited     = "edited"
	ColEditAuthor = "edit_author"
	ColUpvotes    = "upvotes"
	ColDownvotes  = "downvotes"

	ColRecipients    = "recipients"
	ColMessage       = "message"
	ColEncouragement = "encouragement"
)

var (
	ColAssignments     = []string{"Asst1", "Asst2", "Asst3", "Asst4"}
	ColAssignmentLates = []string{"A1Late", "A2Late", "A3Late", "A4Late"}
	ColExercises       = []string{"Exercise1", "Exercise2", "Exercise3", "Exercise4"}
)

// SchemaVersion selects the roster column set for a data vintage. The v1
// export predates the exam make-up ("deal") column.
type SchemaVersion string

const (
	SchemaV1 SchemaVersion = "v1"
	SchemaV2 SchemaVersion = "v2"
)

func ParseSchemaVersion(raw string) (SchemaVersion, error) {
	switch SchemaVersion(raw) {
	case SchemaV1, SchemaV2:
		return SchemaVersion(raw), nil
	default:
		return "", fmt.Errorf("unknown schema version %q", raw)
	}
}

// ExamColumns returns the ordered exam score columns for the vintage.
func (v SchemaVersion) ExamColumns() []string {
	if v == SchemaV1 {
		return []string{ColExam1, ColExam2}
	}
	return []string{ColExam1, ColExam1Deal, ColExam2}
}

func (v SchemaVersion) rosterColumns() []string {
	cols := []string{
		ColID, ColVoting, ColPrompting, ColNumPrompts,
		ColNumComments, ColNumUpvotes, ColNumDownvotes, ColTotalLate, ColMidGrade,
	}
	cols = append(cols, ColAssignments...)
	cols = append(cols, ColAssignmentLates...)
	cols = append(cols, v.ExamColumns()...)
	cols = append(cols, ColExercises...)
	return cols
}

var commentColumns = []string{
	ColID, ColAuthor, ColLecture, ColTimestamp, ColComment,
	ColEdited, ColEditAuthor, ColUpvotes, ColDownvotes,
}

var promptColumns = []string{
	ColID, ColAuthor, ColRecipients, ColMessage, ColEncouragement, ColTimestamp,
}

// Header maps stripped column names to their index in a raw record.
type Header struct {
	index map[string]int
}

// ResolveHeader strips whitespace from each header cell and verifies every
// required column is present. A missing column is fatal for the file.
func ResolveHeader(file string, cells []string, required []string) (*Header, error) {
	index := make(map[string]int, len(cells))
	for i, cell := range cells {
		stripped := strings.ReplaceAll(cell, " ", "")
		if _, ok := index[stripped]; !ok {
			index[stripped] = i
		}
	}
	for _, col := range required {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("%s: missing required column %q", file, col)
		}
	}
	return &Header{index: index}, nil
}

// Value returns the named column from a record, or "" when the record is
// short.
func (h *Header) Value(record []string, col string) string {
	i, ok := h.index[col]
	if !ok || i >= len(record) {
		return ""
	}
	return record[i]
}
