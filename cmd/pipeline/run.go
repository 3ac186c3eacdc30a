package main

import (
	"fmt"
	"path/filepath"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spoclab/spoc-pipeline/internal/enrich"
	"github.com/spoclab/spoc-pipeline/internal/export"
	"github.com/spoclab/spoc-pipeline/internal/ingest"
	"github.com/spoclab/spoc-pipeline/internal/metrics"
	"github.com/spoclab/spoc-pipeline/internal/roster"
	"github.com/spoclab/spoc-pipeline/internal/temporal"
	"github.com/spoclab/spoc-pipeline/internal/textproc"
	"github.com/spoclab/spoc-pipeline/internal/topics"
	"github.com/spoclab/spoc-pipeline/pkg/config"
	"github.com/spoclab/spoc-pipeline/pkg/logger"
)

// runPipeline executes the full run. The stage order is a contract:
// roster before prompts, prompts before comments (comment enrichment reads
// first-prompt dates), corpus fit before any classification.
func runPipeline(cfg *config.Config) error {
	runID := uuid.New().String()
	logger.Info("Starting pipeline run", zap.String("run_id", runID))

	first, last, switchDay, err := cfg.Experiment.Window()
	if err != nil {
		return err
	}

	version, err := ingest.ParseSchemaVersion(cfg.Inputs.SchemaVersion)
	if err != nil {
		return err
	}

	delimiter := ','
	if cfg.Inputs.Delimiter != "" {
		delimiter = rune(cfg.Inputs.Delimiter[0])
	}

	calendar, err := temporal.LoadCalendar(cfg.Inputs.CalendarFile)
	if err != nil {
		return err
	}
	lexicon, err := textproc.LoadLexicon(cfg.Lexicon.PositiveFile, cfg.Lexicon.NegativeFile)
	if err != nil {
		return err
	}
	policy, err := roster.LoadPolicy(cfg.Consent.ConsentFile, cfg.Consent.DropStudents)
	if err != nil {
		return err
	}

	rosterTable, err := ingest.ReadTable(cfg.Inputs.RosterFile, delimiter)
	if err != nil {
		return err
	}
	rosterRows, err := ingest.ParseRosterRows(rosterTable, version)
	if err != nil {
		return err
	}
	store := roster.Build(rosterRows, policy)

	engine := enrich.New(store, calendar, topics.NewTermModel(cfg.Topics.NumTopics), lexicon, enrich.Config{
		FirstDay:         first,
		LastDay:          last,
		SwitchDay:        switchDay,
		ProximityWeeks:   cfg.Experiment.ProximityWeeks,
		PromptWindowDays: cfg.Experiment.PromptWindowDays,
	})

	promptTable, err := ingest.ReadTable(cfg.Inputs.PromptsFile, delimiter)
	if err != nil {
		return err
	}
	promptRows, err := ingest.ParsePromptRows(promptTable, cfg.Inputs.RecipientSep)
	if err != nil {
		return err
	}
	prompts := engine.ProcessPrompts(promptRows)

	commentTable, err := ingest.ReadTable(cfg.Inputs.CommentsFile, delimiter)
	if err != nil {
		return err
	}
	commentRows, err := ingest.ParseCommentRows(commentTable)
	if err != nil {
		return err
	}

	corpus := engine.BuildCorpus(commentRows)
	if err := engine.FitModel(corpus); err != nil {
		return fmt.Errorf("failed to fit topic model: %w", err)
	}
	comments := engine.EnrichAll(commentRows)

	numExams := len(version.ExamColumns())
	outputs := []struct {
		file string
		data export.Dataset
	}{
		{cfg.Outputs.RosterFile, export.RosterDataset(store, numExams)},
		{cfg.Outputs.CommentsFile, export.CommentsDataset(comments, cfg.Topics.NumTopics, numExams)},
		{cfg.Outputs.PromptsFile, export.PromptsDataset(prompts, cfg.Inputs.RecipientSep)},
	}
	for _, out := range outputs {
		if err := export.WriteCSV(filepath.Join(cfg.Outputs.Dir, out.file), out.data); err != nil {
			return err
		}
	}

	summaryPath := filepath.Join(cfg.Outputs.Dir, cfg.Outputs.SummaryFile)
	if err := metrics.WriteSummary(summaryPath); err != nil {
		return err
	}

	logger.Info("Pipeline run complete",
		zap.String("run_id", runID),
		zap.Int("students", store.Len()),
		zap.Int("prompts_emitted", len(prompts)),
		zap.Int("comments_enriched", len(comments)),
		zap.Int("cram_comments_skipped", engine.CramComments()),
	)
	return nil
}
