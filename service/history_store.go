package service

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/ludo-technologies/brainscan/domain"
	"github.com/ludo-technologies/brainscan/internal/constants"
)

// HistoryStore persists compact run summaries under the scanned root
type HistoryStore struct {
	logger *zap.Logger
}

// NewHistoryStore creates a history store; a nil logger discards output
func NewHistoryStore(logger *zap.Logger) *HistoryStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HistoryStore{logger: logger}
}

// HistoryPath returns the history file location for root
func HistoryPath(root string) string {
	return filepath.Join(root, constants.HistoryDirName, constants.HistoryFileName)
}

// Exists reports whether root already has a history file
func (s *HistoryStore) Exists(root string) bool {
	info, err := os.Stat(HistoryPath(root))
	return err == nil && info.Mode().IsRegular()
}

// Read loads the history for root. A missing or corrupt file reads as an
// empty history; a file without schema_version reads as version 1.
func (s *HistoryStore) Read(root string) domain.History {
	empty := domain.History{SchemaVersion: domain.HistorySchemaVersion, Runs: []domain.RunHistoryEntry{}}

	path := HistoryPath(root)
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Debug("history unreadable, treating as empty", zap.String("path", path), zap.Error(err))
		}
		return empty
	}

	var h domain.History
	if err := json.Unmarshal(data, &h); err != nil {
		s.logger.Debug("history corrupt, treating as empty", zap.String("path", path), zap.Error(err))
		return empty
	}
	if h.SchemaVersion < domain.HistorySchemaVersion {
		h.SchemaVersion = domain.HistorySchemaVersion
	}
	if h.Runs == nil {
		h.Runs = []domain.RunHistoryEntry{}
	}
	return h
}

// Append projects report into a history entry, appends it, evicts the oldest
// entries beyond the cap and atomically rewrites the file. It returns the
// path written.
func (s *HistoryStore) Append(report *domain.Report) (string, error) {
	h := s.Read(report.Path)
	h.Runs = append(h.Runs, ProjectHistoryEntry(report))
	if excess := len(h.Runs) - domain.MaxHistoryEntries; excess > 0 {
		h.Runs = h.Runs[excess:]
	}
	h.SchemaVersion = max(h.SchemaVersion, domain.HistorySchemaVersion)

	path := HistoryPath(report.Path)
	if err := writeFileAtomic(path, h); err != nil {
		return "", err
	}
	s.logger.Debug("history appended", zap.String("path", path), zap.Int("runs", len(h.Runs)))
	return path, nil
}

// ProjectHistoryEntry reduces a report to its persisted summary
func ProjectHistoryEntry(report *domain.Report) domain.RunHistoryEntry {
	entry := domain.RunHistoryEntry{
		Timestamp:  report.Timestamp.UTC().Format(time.RFC3339),
		Version:    report.Version,
		OverallPct: report.OverallScore(),
		Setup:      report.Setup.NormalizedScore,
		Usage:      report.Usage.NormalizedScore,
		Fluency:    report.Fluency.NormalizedScore,
		Maturity:   report.BrainState.Maturity,
		CEPatterns: make([]domain.PatternScore, 0, len(report.CEPatterns)),
		Checks:     []domain.CheckScore{},
	}

	for _, p := range report.CEPatterns {
		entry.CEPatterns = append(entry.CEPatterns, domain.PatternScore{Name: p.Name, Pct: p.Percentage})
	}
	for _, dim := range report.Dimensions() {
		for _, layer := range dim.Layers {
			for _, c := range layer.Checks {
				entry.Checks = append(entry.Checks, domain.CheckScore{
					Dim:  dim.ID,
					Name: c.Name,
					Pts:  c.Points,
					Max:  c.MaxPoints,
				})
			}
		}
	}
	return entry
}

// ComputeDelta compares two history entries. Entries written by different
// tool versions may have been scored against different catalogs, so the
// result is flagged as not comparable.
func ComputeDelta(from, to domain.RunHistoryEntry) domain.ScoreDelta {
	return domain.ScoreDelta{
		From:       from.Timestamp,
		To:         to.Timestamp,
		Overall:    to.OverallPct - from.OverallPct,
		Setup:      to.Setup - from.Setup,
		Usage:      to.Usage - from.Usage,
		Fluency:    to.Fluency - from.Fluency,
		Comparable: from.Version == to.Version,
	}
}

// ComputeDeltas returns the delta of each run against its predecessor
func ComputeDeltas(h domain.History) []domain.ScoreDelta {
	if len(h.Runs) < 2 {
		return []domain.ScoreDelta{}
	}
	deltas := make([]domain.ScoreDelta, 0, len(h.Runs)-1)
	for i := 1; i < len(h.Runs); i++ {
		deltas = append(deltas, ComputeDelta(h.Runs[i-1], h.Runs[i]))
	}
	return deltas
}

// LimitHistory keeps only the most recent n runs; n <= 0 keeps everything
func LimitHistory(h domain.History, n int) domain.History {
	if n <= 0 || n >= len(h.Runs) {
		return h
	}
	h.Runs = h.Runs[len(h.Runs)-n:]
	return h
}

// writeFileAtomic writes v as indented JSON through a temp file and rename
func writeFileAtomic(path string, v any) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create history directory: %w", err)
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode history: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp history file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(append(data, '\n')); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write history: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write history: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("failed to replace history file: %w", err)
	}
	return nil
}
