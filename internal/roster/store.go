package roster

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/spoclab/spoc-pipeline/internal/ingest"
	"github.com/spoclab/spoc-pipeline/internal/metrics"
	"github.com/spoclab/spoc-pipeline/pkg/logger"
)

// Policy is the consent gate: a student is eligible iff they are in the
// consenting set and not on the drop list. Dropped ids model known data
// quality problems (duplicate accounts, non-enrolled ids).
type Policy struct {
	consenting map[string]struct{}
	dropped    map[string]struct{}
}

func NewPolicy(consenting, dropped []string) Policy {
	p := Policy{
		consenting: make(map[string]struct{}, len(consenting)),
		dropped:    make(map[string]struct{}, len(dropped)),
	}
	for _, id := range consenting {
		if id = strings.TrimSpace(id); id != "" {
			p.consenting[id] = struct{}{}
		}
	}
	for _, id := range dropped {
		if id = strings.TrimSpace(id); id != "" {
			p.dropped[id] = struct{}{}
		}
	}
	return p
}

// LoadPolicy reads the consenting-student file (one id per line) and pairs
// it with the configured drop list.
func LoadPolicy(consentPath string, dropped []string) (Policy, error) {
	f, err := os.Open(consentPath)
	if err != nil {
		return Policy{}, fmt.Errorf("failed to open consent file: %w", err)
	}
	defer f.Close()

	var consenting []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		consenting = append(consenting, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return Policy{}, fmt.Errorf("failed to read consent file %s: %w", consentPath, err)
	}

	logger.Info("Loaded consent policy",
		zap.Int("consenting", len(consenting)),
		zap.Int("dropped", len(dropped)),
	)

	return NewPolicy(consenting, dropped), nil
}

func (p Policy) Eligible(studentID string) bool {
	if _, ok := p.dropped[studentID]; ok {
		return false
	}
	_, ok := p.consenting[studentID]
	return ok
}

// Store is the single authoritative table of StudentRecords. Built once,
// read and mutated throughout the run, serialized at the end. Insertion
// order is preserved for deterministic output.
type Store struct {
	students map[string]*StudentRecord
	order    []string
}

// Build materializes eligible roster rows into the store. Ineligible rows
// are skipped silently; duplicate ids keep the first row seen.
func Build(rows []ingest.RosterRow, policy Policy) *Store {
	store := &Store{students: make(map[string]*StudentRecord, len(rows))}

	for _, row := range rows {
		if !policy.Eligible(row.StudentID) {
			continue
		}
		if _, exists := store.students[row.StudentID]; exists {
			logger.Warn("Duplicate roster row ignored",
				zap.String("student_id", row.StudentID),
			)
			continue
		}
		store.students[row.StudentID] = newStudentRecord(row)
		store.order = append(store.order, row.StudentID)
	}

	metrics.StudentsLoaded.Add(float64(len(store.order)))
	logger.Info("Built roster store",
		zap.Int("rows", len(rows)),
		zap.Int("students", len(store.order)),
	)

	return store
}

func (s *Store) Get(studentID string) (*StudentRecord, bool) {
	student, ok := s.students[studentID]
	return student, ok
}

func (s *Store) Len() int {
	return len(s.order)
}

// Students returns all records in insertion order.
func (s *Store) Students() []*StudentRecord {
	out := make([]*StudentRecord, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.students[id])
	}
	return out
}

// Increment adds delta to one named counter. Comments from unknown authors
// must not fail the run, so an absent id is a warning and a no-op.
func (s *Store) Increment(studentID string, counter Counter, delta int) {
	student, ok := s.students[studentID]
	if !ok {
		logger.Warn("Counter increment for student not in roster",
			zap.String("student_id", studentID),
			zap.String("counter", counter.String()),
		)
		metrics.RowWarnings.WithLabelValues("unknown_student").Inc()
		return
	}
	student.Counts.add(counter, delta)
}

// SetFirstPromptDate records the first prompt seen for a student.
// First-write-wins: once set, later calls are no-ops, as are calls for
// students not in the store.
func (s *Store) SetFirstPromptDate(studentID string, ts time.Time) {
	student, ok := s.students[studentID]
	if !ok {
		return
	}
	if student.HasFirstPrompt() {
		return
	}
	student.FirstPromptDate = ts
}
