package temporal

import (
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/spoclab/spoc-pipeline/pkg/logger"
)

// Calendar maps lecture ids to the dates the lectures were posted. It is a
// small hand-maintained file; ids for withdrawn or placeholder lectures are
// deliberately absent.
type Calendar struct {
	posted map[string]time.Time
}

func NewCalendar(posted map[string]time.Time) *Calendar {
	if posted == nil {
		posted = make(map[string]time.Time)
	}
	return &Calendar{posted: posted}
}

// LoadCalendar reads a yaml mapping of lecture id -> posted date
// (YYYY-MM-DD).
func LoadCalendar(path string) (*Calendar, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open calendar file: %w", err)
	}

	var raw map[string]string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse calendar file %s: %w", path, err)
	}

	posted := make(map[string]time.Time, len(raw))
	for id, value := range raw {
		date, err := time.Parse("2006-01-02", value)
		if err != nil {
			return nil, fmt.Errorf("calendar entry %q has invalid date %q: %w", id, value, err)
		}
		posted[id] = date
	}

	logger.Info("Loaded lecture calendar",
		zap.String("file", path),
		zap.Int("lectures", len(posted)),
	)

	return &Calendar{posted: posted}, nil
}

func (c *Calendar) Posted(lectureID string) (time.Time, bool) {
	date, ok := c.posted[lectureID]
	return date, ok
}

func (c *Calendar) Len() int {
	return len(c.posted)
}
