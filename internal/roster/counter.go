package roster

// Counter identifies one per-student running counter. Counters are an
// explicit enum rather than a string-keyed bag so every mutation site is
// type-checked.
type Counter int

const (
	CounterPunctualComments Counter = iota
	CounterLateComments
	CounterPreExperimentComments
	CounterHelpRequests
	CounterPositiveWords
	CounterNegativeWords
	CounterCommentWords
	CounterCommentChars
	CounterCommentsBeforePrompt
	CounterCommentsAfterPrompt
	CounterCommentsBeforePromptWeek
	CounterCommentsAfterPromptWeek
	CounterCommentsBeforePrompt3Day
	CounterCommentsAfterPrompt3Day
)

func (c Counter) String() string {
	switch c {
	case CounterPunctualComments:
		return "punctual_comments"
	case CounterLateComments:
		return "late_comments"
	case CounterPreExperimentComments:
		return "pre_experiment_comments"
	case CounterHelpRequests:
		return "help_requests"
	case CounterPositiveWords:
		return "positive_words"
	case CounterNegativeWords:
		return "negative_words"
	case CounterCommentWords:
		return "comment_words"
	case CounterCommentChars:
		return "comment_chars"
	case CounterCommentsBeforePrompt:
		return "comments_before_prompt"
	case CounterCommentsAfterPrompt:
		return "comments_after_prompt"
	case CounterCommentsBeforePromptWeek:
		return "comments_before_prompt_week"
	case CounterCommentsAfterPromptWeek:
		return "comments_after_prompt_week"
	case CounterCommentsBeforePrompt3Day:
		return "comments_before_prompt_3day"
	case CounterCommentsAfterPrompt3Day:
		return "comments_after_prompt_3day"
	default:
		return "unknown"
	}
}

// Counts holds every per-student running counter. All start at zero and
// only ever increase within a run.
type Counts struct {
	PunctualComments      int
	LateComments          int
	PreExperimentComments int
	HelpRequests          int
	PositiveWords         int
	NegativeWords         int
	CommentWords          int
	CommentChars          int

	CommentsBeforePrompt     int
	CommentsAfterPrompt      int
	CommentsBeforePromptWeek int
	CommentsAfterPromptWeek  int
	CommentsBeforePrompt3Day int
	CommentsAfterPrompt3Day  int
}

func (c *Counts) add(counter Counter, delta int) {
	switch counter {
	case CounterPunctualComments:
		c.PunctualComments += delta
	case CounterLateComments:
		c.LateComments += delta
	case CounterPreExperimentComments:
		c.PreExperimentComments += delta
	case CounterHelpRequests:
		c.HelpRequests += delta
	case CounterPositiveWords:
		c.PositiveWords += delta
	case CounterNegativeWords:
		c.NegativeWords += delta
	case CounterCommentWords:
		c.CommentWords += delta
	case CounterCommentChars:
		c.CommentChars += delta
	case CounterCommentsBeforePrompt:
		c.CommentsBeforePrompt += delta
	case CounterCommentsAfterPrompt:
		c.CommentsAfterPrompt += delta
	case CounterCommentsBeforePromptWeek:
		c.CommentsBeforePromptWeek += delta
	case CounterCommentsAfterPromptWeek:
		c.CommentsAfterPromptWeek += delta
	case CounterCommentsBeforePrompt3Day:
		c.CommentsBeforePrompt3Day += delta
	case CounterCommentsAfterPrompt3Day:
		c.CommentsAfterPrompt3Day += delta
	}
}
