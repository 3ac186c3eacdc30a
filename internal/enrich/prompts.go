package enrich

import (
	"go.uber.org/zap"

	"github.com/spoclab/spoc-pipeline/internal/ingest"
	"github.com/spoclab/spoc-pipeline/internal/metrics"
	"github.com/spoclab/spoc-pipeline/pkg/logger"
)

// RedactedRecipient replaces a non-consenting recipient id in the emitted
// prompts table.
const RedactedRecipient = "REDACTED"

// PromptResult is one prompt record after consent redaction. Recipients
// is parallel to Row.Recipients with non-consenting ids replaced by the
// sentinel.
type PromptResult struct {
	Row        ingest.PromptRow
	Recipients []string
}

// ProcessPrompts walks prompt records in file order and records each
// consenting recipient's first-prompt date (first-write-wins; the input is
// assumed pre-sorted by timestamp, which is a documented precondition, not
// something enforced here). Records whose author fails the consent check
// are dropped entirely; non-consenting recipients are redacted but the
// record is still emitted for auditability.
func (e *Engine) ProcessPrompts(rows []ingest.PromptRow) []PromptResult {
	out := make([]PromptResult, 0, len(rows))

	for _, row := range rows {
		if _, ok := e.store.Get(row.AuthorID); !ok {
			logger.Warn("Prompt author not in roster, dropping record",
				zap.String("prompt_id", row.PromptID),
				zap.String("author_id", row.AuthorID),
			)
			metrics.PromptsDropped.Inc()
			continue
		}

		ts, err := ingest.ParseTimestamp(row.Timestamp)
		if err != nil {
			logger.Warn("Prompt has malformed timestamp, first-prompt dates not recorded",
				zap.String("prompt_id", row.PromptID),
				zap.String("timestamp", row.Timestamp),
				zap.Error(err),
			)
			metrics.RowWarnings.WithLabelValues("bad_prompt_timestamp").Inc()
		}

		result := PromptResult{Row: row, Recipients: make([]string, 0, len(row.Recipients))}
		for _, recipient := range row.Recipients {
			if _, ok := e.store.Get(recipient); !ok {
				logger.Warn("Prompt recipient not consenting, redacted",
					zap.String("prompt_id", row.PromptID),
					zap.String("recipient_id", recipient),
				)
				metrics.RecipientsRedacted.Inc()
				result.Recipients = append(result.Recipients, RedactedRecipient)
				continue
			}
			if err == nil {
				e.store.SetFirstPromptDate(recipient, ts)
			}
			result.Recipients = append(result.Recipients, recipient)
		}

		metrics.PromptsProcessed.Inc()
		out = append(out, result)
	}

	return out
}
