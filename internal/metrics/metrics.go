package metrics

import (
	"fmt"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

var registry = prometheus.NewRegistry()

var (
	StudentsLoaded = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "spoc_students_loaded_total",
			Help: "Eligible students materialized into the roster store",
		},
	)

	CommentsProcessed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "spoc_comments_processed_total",
			Help: "Comments that passed every gate and were enriched",
		},
	)

	CommentsSkipped = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "spoc_comments_skipped_total",
			Help: "Comments dropped before enrichment, by gate",
		},
		[]string{"reason"},
	)

	PromptsProcessed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "spoc_prompts_processed_total",
			Help: "Prompt records emitted",
		},
	)

	PromptsDropped = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "spoc_prompts_dropped_total",
			Help: "Prompt records dropped for a non-consenting author",
		},
	)

	RecipientsRedacted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "spoc_prompt_recipients_redacted_total",
			Help: "Prompt recipients replaced with the redaction sentinel",
		},
	)

	RowWarnings = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "spoc_row_warnings_total",
			Help: "Row-level recoverable conditions, by kind",
		},
		[]string{"kind"},
	)
)

func init() {
	registry.MustRegister(StudentsLoaded)
	registry.MustRegister(CommentsProcessed)
	registry.MustRegister(CommentsSkipped)
	registry.MustRegister(PromptsProcessed)
	registry.MustRegister(PromptsDropped)
	registry.MustRegister(RecipientsRedacted)
	registry.MustRegister(RowWarnings)
}

// WriteSummary dumps every run counter in the Prometheus text format to a
// flat file next to the other outputs. There is no scrape endpoint; the
// dump is the end-of-run summary.
func WriteSummary(path string) error {
	families, err := registry.Gather()
	if err != nil {
		return fmt.Errorf("failed to gather run metrics: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create summary file: %w", err)
	}
	defer f.Close()

	encoder := expfmt.NewEncoder(f, expfmt.FmtText)
	for _, family := range families {
		if err := encoder.Encode(family); err != nil {
			return fmt.Errorf("failed to encode run metrics: %w", err)
		}
	}
	return nil
}
