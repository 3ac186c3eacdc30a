package metrics

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteSummary(t *testing.T) {
	CommentsProcessed.Inc()
	CommentsSkipped.WithLabelValues("lecture_proximity").Inc()

	path := filepath.Join(t.TempDir(), "run_summary.prom")
	require.NoError(t, WriteSummary(path))

	content, err := os.ReadFile(path)
	require.NoError(t, err)

	assert.Contains(t, string(content), "spoc_comments_processed_total")
	assert.Contains(t, string(content), `spoc_comments_skipped_total{reason="lecture_proximity"}`)
}

func TestWriteSummaryBadPath(t *testing.T) {
	err := WriteSummary(filepath.Join(t.TempDir(), "missing-dir", "x.prom"))
	assert.Error(t, err)
}
