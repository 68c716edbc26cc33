package service

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ludo-technologies/brainscan/domain"
)

func sampleReport(root string, ts time.Time, setupPoints int) *domain.Report {
	setup := domain.NewDimension(domain.DimensionSetup, []domain.LayerResult{
		layerWith("setup.instructions", domain.DimensionSetup, check("Instruction file present", setupPoints, 10)),
	})
	usage := domain.NewDimension(domain.DimensionUsage, []domain.LayerResult{
		layerWith("usage.session_log", domain.DimensionUsage, check("Memory volume", 5, 10)),
	})
	fluency := domain.EmptyDimension(domain.DimensionFluency)

	return &domain.Report{
		RunID:      "run",
		Path:       root,
		Timestamp:  ts,
		Mode:       domain.ScanModeFull,
		Version:    "1.2.3",
		Setup:      setup,
		Usage:      usage,
		Fluency:    fluency,
		BrainState: domain.BrainState{Maturity: domain.MaturityBasic},
		CEPatterns: []domain.Pattern{{ID: "compounding-memory", Name: "Compounding Memory", Score: 5, MaxScore: 10, Percentage: 50}},
	}
}

func readRaw(t *testing.T, root string) map[string]any {
	t.Helper()
	data, err := os.ReadFile(HistoryPath(root))
	require.NoError(t, err)
	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	return raw
}

func TestHistoryStore_ReadMissing(t *testing.T) {
	h := NewHistoryStore(nil).Read(t.TempDir())
	assert.Equal(t, domain.HistorySchemaVersion, h.SchemaVersion)
	assert.Empty(t, h.Runs)
	assert.NotNil(t, h.Runs)
}

func TestHistoryStore_ReadCorrupt(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Dir(HistoryPath(root)), 0o755))
	require.NoError(t, os.WriteFile(HistoryPath(root), []byte("{truncated"), 0o644))

	h := NewHistoryStore(nil).Read(root)
	assert.Empty(t, h.Runs)
}

func TestHistoryStore_AppendProjectsReport(t *testing.T) {
	root := t.TempDir()
	store := NewHistoryStore(nil)
	ts := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	path, err := store.Append(sampleReport(root, ts, 8))
	require.NoError(t, err)
	assert.Equal(t, HistoryPath(root), path)

	h := store.Read(root)
	require.Len(t, h.Runs, 1)
	entry := h.Runs[0]
	assert.Equal(t, "2026-03-01T12:00:00Z", entry.Timestamp)
	assert.Equal(t, "1.2.3", entry.Version)
	assert.Equal(t, 80, entry.Setup)
	assert.Equal(t, 50, entry.Usage)
	assert.Equal(t, 0, entry.Fluency)
	assert.Equal(t, 43, entry.OverallPct)
	assert.Equal(t, domain.MaturityBasic, entry.Maturity)
	assert.Equal(t, []domain.PatternScore{{Name: "Compounding Memory", Pct: 50}}, entry.CEPatterns)
	assert.Equal(t, []domain.CheckScore{
		{Dim: domain.DimensionSetup, Name: "Instruction file present", Pts: 8, Max: 10},
		{Dim: domain.DimensionUsage, Name: "Memory volume", Pts: 5, Max: 10},
	}, entry.Checks)
}

func TestHistoryStore_WireFormat(t *testing.T) {
	root := t.TempDir()
	_, err := NewHistoryStore(nil).Append(sampleReport(root, time.Now(), 8))
	require.NoError(t, err)

	raw := readRaw(t, root)
	assert.EqualValues(t, 1, raw["schema_version"])

	runs := raw["runs"].([]any)
	run := runs[0].(map[string]any)
	for _, key := range []string{"timestamp", "version", "overallPct", "setup", "usage", "fluency", "maturity", "cePatterns", "checks"} {
		assert.Containsf(t, run, key, "missing key %s", key)
	}
	pattern := run["cePatterns"].([]any)[0].(map[string]any)
	assert.Contains(t, pattern, "name")
	assert.Contains(t, pattern, "pct")
	chk := run["checks"].([]any)[0].(map[string]any)
	for _, key := range []string{"dim", "name", "pts", "max"} {
		assert.Contains(t, chk, key)
	}
}

func TestHistoryStore_EvictsBeyondCap(t *testing.T) {
	root := t.TempDir()
	store := NewHistoryStore(nil)
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < domain.MaxHistoryEntries+1; i++ {
		_, err := store.Append(sampleReport(root, base.Add(time.Duration(i)*time.Hour), 5))
		require.NoError(t, err, fmt.Sprintf("append %d", i))
	}

	h := store.Read(root)
	require.Len(t, h.Runs, domain.MaxHistoryEntries)
	assert.Equal(t, base.Add(time.Hour).Format(time.RFC3339), h.Runs[0].Timestamp, "oldest entry should be evicted")
	assert.Equal(t, base.Add(20*time.Hour).Format(time.RFC3339), h.Runs[len(h.Runs)-1].Timestamp)
}

func TestHistoryStore_BackfillsSchemaVersion(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Dir(HistoryPath(root)), 0o755))
	legacy := `{"runs":[{"timestamp":"2025-12-01T00:00:00Z","version":"0.9.0","overallPct":20,"setup":30,"usage":10,"fluency":20,"maturity":"minimal","cePatterns":[],"checks":[]}]}`
	require.NoError(t, os.WriteFile(HistoryPath(root), []byte(legacy), 0o644))

	store := NewHistoryStore(nil)
	h := store.Read(root)
	assert.Equal(t, 1, h.SchemaVersion)
	require.Len(t, h.Runs, 1)

	_, err := store.Append(sampleReport(root, time.Now(), 5))
	require.NoError(t, err)

	raw := readRaw(t, root)
	assert.EqualValues(t, 1, raw["schema_version"])
	assert.Len(t, raw["runs"], 2)
}

func TestHistoryStore_NeverDowngradesSchema(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Dir(HistoryPath(root)), 0o755))
	require.NoError(t, os.WriteFile(HistoryPath(root), []byte(`{"schema_version":3,"runs":[]}`), 0o644))

	_, err := NewHistoryStore(nil).Append(sampleReport(root, time.Now(), 5))
	require.NoError(t, err)

	raw := readRaw(t, root)
	assert.EqualValues(t, 3, raw["schema_version"])
}

func TestHistoryStore_LeavesNoTempFiles(t *testing.T) {
	root := t.TempDir()
	_, err := NewHistoryStore(nil).Append(sampleReport(root, time.Now(), 5))
	require.NoError(t, err)

	entries, err := os.ReadDir(filepath.Dir(HistoryPath(root)))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "history.json", entries[0].Name())
}

func TestComputeDeltas(t *testing.T) {
	h := domain.History{Runs: []domain.RunHistoryEntry{
		{Timestamp: "t1", Version: "1.0.0", OverallPct: 30, Setup: 40, Usage: 20, Fluency: 30},
		{Timestamp: "t2", Version: "1.0.0", OverallPct: 45, Setup: 50, Usage: 40, Fluency: 45},
		{Timestamp: "t3", Version: "1.1.0", OverallPct: 40, Setup: 50, Usage: 30, Fluency: 40},
	}}

	deltas := ComputeDeltas(h)
	require.Len(t, deltas, 2)
	assert.Equal(t, domain.ScoreDelta{From: "t1", To: "t2", Overall: 15, Setup: 10, Usage: 20, Fluency: 15, Comparable: true}, deltas[0])
	assert.False(t, deltas[1].Comparable)
	assert.Equal(t, -5, deltas[1].Overall)

	assert.Empty(t, ComputeDeltas(domain.History{}))
}

func TestLimitHistory(t *testing.T) {
	h := domain.History{SchemaVersion: 1, Runs: []domain.RunHistoryEntry{
		{Timestamp: "t1"}, {Timestamp: "t2"}, {Timestamp: "t3"},
	}}

	tests := []struct {
		name  string
		limit int
		want  []string
	}{
		{"zero keeps all", 0, []string{"t1", "t2", "t3"}},
		{"negative keeps all", -1, []string{"t1", "t2", "t3"}},
		{"most recent", 2, []string{"t2", "t3"}},
		{"beyond length", 10, []string{"t1", "t2", "t3"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []string
			for _, r := range LimitHistory(h, tt.limit).Runs {
				got = append(got, r.Timestamp)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}
