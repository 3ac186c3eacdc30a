package export

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spoclab/spoc-pipeline/internal/enrich"
	"github.com/spoclab/spoc-pipeline/internal/roster"
	"github.com/spoclab/spoc-pipeline/internal/temporal"
)

const dateTimeFormat = "2006-01-02 15:04:05"

// studentStaticHeaders is the constant-field column order shared by the
// roster table and the per-comment student snapshot.
func studentStaticHeaders(numExams int) []string {
	headers := []string{
		"student_id", "num_comments", "voting_cond", "any_vote_cond",
		"neg_vote_cond", "prompting_cond", "num_prompts", "num_upvotes",
		"num_downvotes",
	}
	for i := 1; i <= 4; i++ {
		headers = append(headers, fmt.Sprintf("asst_%d", i), fmt.Sprintf("asst_%d_late", i))
	}
	headers = append(headers, "total_late")
	for i := 1; i <= numExams; i++ {
		headers = append(headers, fmt.Sprintf("exam_%d", i))
	}
	headers = append(headers, "mid_grade")
	for i := 1; i <= 4; i++ {
		headers = append(headers, fmt.Sprintf("exercise_%d", i))
	}
	return append(headers, "first_prompt_date")
}

var studentCountHeaders = []string{
	"punctual_comments", "late_comments", "pre_experiment_comments",
	"help_requests", "positive_words", "negative_words", "comment_words",
	"comment_chars", "comments_before_prompt", "comments_after_prompt",
	"comments_before_prompt_week", "comments_after_prompt_week",
	"comments_before_prompt_3day", "comments_after_prompt_3day",
}

func studentStaticValues(s *roster.StudentRecord) []string {
	values := []string{
		s.StudentID, s.NumComments, s.VotingCond, s.AnyVoteCond,
		s.NegVoteCond, s.PromptingCond, strconv.Itoa(s.NumPrompts),
		s.NumUpvotes, s.NumDownvotes,
	}
	for i := range s.Assignments {
		values = append(values, s.Assignments[i], s.AssignmentLates[i])
	}
	values = append(values, s.TotalLate)
	values = append(values, s.Exams...)
	values = append(values, s.MidGrade)
	values = append(values, s.Exercises...)

	firstPrompt := ""
	if s.HasFirstPrompt() {
		firstPrompt = s.FirstPromptDate.Format(dateTimeFormat)
	}
	return append(values, firstPrompt)
}

func studentCountValues(c roster.Counts) []string {
	return []string{
		strconv.Itoa(c.PunctualComments), strconv.Itoa(c.LateComments),
		strconv.Itoa(c.PreExperimentComments), strconv.Itoa(c.HelpRequests),
		strconv.Itoa(c.PositiveWords), strconv.Itoa(c.NegativeWords),
		strconv.Itoa(c.CommentWords), strconv.Itoa(c.CommentChars),
		strconv.Itoa(c.CommentsBeforePrompt), strconv.Itoa(c.CommentsAfterPrompt),
		strconv.Itoa(c.CommentsBeforePromptWeek), strconv.Itoa(c.CommentsAfterPromptWeek),
		strconv.Itoa(c.CommentsBeforePrompt3Day), strconv.Itoa(c.CommentsAfterPrompt3Day),
	}
}

// RosterDataset renders the enriched roster: one row per eligible student,
// constant columns followed by counter columns.
func RosterDataset(store *roster.Store, numExams int) Dataset {
	data := Dataset{
		Headers: append(studentStaticHeaders(numExams), studentCountHeaders...),
	}
	for _, s := range store.Students() {
		row := append(studentStaticValues(s), studentCountValues(s.Counts)...)
		data.Rows = append(data.Rows, row)
	}
	return data
}

// CommentsDataset renders the enriched comments table: raw columns,
// derived columns, then the owning student's full record snapshot.
func CommentsDataset(comments []*enrich.EnrichedComment, numTopics, numExams int) Dataset {
	headers := []string{
		"post_id", "author_id", "lecture_id", "timestamp", "comment",
		"edited", "edit_author", "upvotes", "downvotes",
		"topic",
	}
	for i := 0; i < numTopics; i++ {
		headers = append(headers, fmt.Sprintf("topic_score_%d", i))
	}
	headers = append(headers,
		"help_request", "positive_words", "negative_words", "total_words",
		"mean_word_len", "median_word_len",
		"prompt_relation", "prompt_relation_week", "prompt_relation_3day",
		"lecture_day_offset",
	)
	headers = append(headers, studentStaticHeaders(numExams)...)

	data := Dataset{Headers: headers}
	for _, c := range comments {
		row := []string{
			c.Row.PostID, c.Row.AuthorID, c.Row.LectureID,
			c.Date.Format(dateTimeFormat), c.Row.Body,
			c.Row.Edited, c.Row.EditAuthor, c.Row.Upvotes, c.Row.Downvotes,
			c.Topic,
		}
		for i := 0; i < numTopics; i++ {
			score := 0.0
			if i < len(c.Distribution) {
				score = c.Distribution[i]
			}
			row = append(row, strconv.FormatFloat(score, 'f', 4, 64))
		}
		row = append(row,
			strconv.FormatBool(c.HelpRequest),
			strconv.Itoa(c.PositiveWords), strconv.Itoa(c.NegativeWords),
			strconv.Itoa(c.TotalWords),
			strconv.FormatFloat(c.MeanWordLen, 'f', 2, 64),
			strconv.FormatFloat(c.MedianWordLen, 'f', 2, 64),
			relationValue(c.PromptRelation),
			relationValue(c.PromptRelationWeek),
			relationValue(c.PromptRelation3Day),
			dayOffsetValue(c.LectureDayOffset, c.LectureDayOffsetOK),
		)
		row = append(row, studentStaticValues(c.Student)...)
		data.Rows = append(data.Rows, row)
	}
	return data
}

// PromptsDataset renders the redacted prompts table: original columns plus
// the consent-redacted recipient list.
func PromptsDataset(results []enrich.PromptResult, recipientSep string) Dataset {
	data := Dataset{
		Headers: []string{
			"prompt_id", "author_id", "recipients", "message",
			"encouragement", "timestamp", "recipients_redacted",
		},
	}
	for _, r := range results {
		data.Rows = append(data.Rows, []string{
			r.Row.PromptID, r.Row.AuthorID,
			strings.Join(r.Row.Recipients, recipientSep),
			r.Row.Message, r.Row.Encouragement, r.Row.Timestamp,
			strings.Join(r.Recipients, recipientSep),
		})
	}
	return data
}

func relationValue(r temporal.Relation) string {
	return string(r)
}

func dayOffsetValue(offset int, ok bool) string {
	if !ok {
		return ""
	}
	return strconv.Itoa(offset)
}
