package service

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/ludo-technologies/brainscan/domain"
)

func fullReport(t *testing.T) *domain.Report {
	t.Helper()
	r := sampleReport("/work/ws", time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC), 10)
	r.Usage = domain.NewDimension(domain.DimensionUsage, []domain.LayerResult{
		layerWith("usage.session_log", domain.DimensionUsage, check("Memory volume", 10, 10)),
	})
	r.Fluency = domain.NewDimension(domain.DimensionFluency, []domain.LayerResult{
		layerWith("fluency.guardrails", domain.DimensionFluency, check("Deny rules", 3, 5)),
	})
	r.BrainState = domain.BrainState{
		Maturity: domain.MaturityStructured,
		Has:      map[domain.Feature]bool{domain.FeatureClaudeMd: true},
	}
	r.TopFixes = NewFixRanker(map[string]string{"fluency.guardrails": "15 min"}).Rank(5, r.Dimensions()...)
	return r
}

func TestOutputFormatter_TextFullMode(t *testing.T) {
	var buf bytes.Buffer
	f := NewOutputFormatter(false, true)
	require.NoError(t, f.WriteReport(fullReport(t), domain.OutputFormatText, &buf))

	out := buf.String()
	assert.Contains(t, out, "=== brainscan Report ===")
	assert.Contains(t, out, "Brain State: STRUCTURED")
	assert.Contains(t, out, "Overall: 87/100")
	assert.Contains(t, out, "Setup Quality")
	assert.Contains(t, out, "Context Engineering Patterns")
	assert.Contains(t, out, "Top Fixes")
	assert.Contains(t, out, "(~15 min)")
	assert.Contains(t, out, "Deny rules (3/5)")
	assert.NotContains(t, out, "\x1b[", "colour disabled output must not contain escape codes")
}

func TestOutputFormatter_TextEmptyMode(t *testing.T) {
	r := sampleReport("/work/ws", time.Now(), 0)
	r.BrainState = domain.BrainState{Maturity: domain.MaturityEmpty}

	var buf bytes.Buffer
	require.NoError(t, NewOutputFormatter(false, false).WriteReport(r, domain.OutputFormatText, &buf))

	out := buf.String()
	assert.Contains(t, out, "Getting Started")
	assert.NotContains(t, out, "Overall:")
	assert.NotContains(t, out, "Context Engineering Patterns")
}

func TestOutputFormatter_TextGrowthMode(t *testing.T) {
	r := sampleReport("/work/ws", time.Now(), 2)
	r.BrainState = domain.BrainState{Maturity: domain.MaturityStructured}
	require.Less(t, r.OverallScore(), domain.GrowthScoreCeiling)

	var buf bytes.Buffer
	require.NoError(t, NewOutputFormatter(false, false).WriteReport(r, domain.OutputFormatText, &buf))

	out := buf.String()
	assert.Contains(t, out, "Overall:")
	assert.NotContains(t, out, "Context Engineering Patterns")
}

func TestOutputFormatter_TextQuickMode(t *testing.T) {
	r := &domain.Report{
		Path:       "/work/ws",
		Mode:       domain.ScanModeQuick,
		Setup:      domain.EmptyDimension(domain.DimensionSetup),
		Usage:      domain.EmptyDimension(domain.DimensionUsage),
		Fluency:    domain.EmptyDimension(domain.DimensionFluency),
		BrainState: domain.BrainState{Maturity: domain.MaturityBasic},
	}

	var buf bytes.Buffer
	require.NoError(t, NewOutputFormatter(false, false).WriteReport(r, domain.OutputFormatText, &buf))

	out := buf.String()
	assert.Contains(t, out, "Brain State: BASIC")
	assert.Contains(t, out, "Run a full scan")
	assert.NotContains(t, out, "Overall:")
}

func TestOutputFormatter_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewOutputFormatter(true, false).WriteReport(fullReport(t), domain.OutputFormatJSON, &buf))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.EqualValues(t, 87, decoded["overall_score"])
	assert.Equal(t, "full", decoded["report_mode"])
	assert.Contains(t, decoded, "ce_patterns")
	assert.NotContains(t, decoded, "cePatterns")
	assert.Contains(t, decoded, "brain_state")
	assert.Contains(t, decoded, "top_fixes")
	assert.Contains(t, decoded, "setup")
	assert.NotContains(t, buf.String(), "\x1b[")
}

func TestOutputFormatter_YAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewOutputFormatter(false, false).WriteReport(fullReport(t), domain.OutputFormatYAML, &buf))

	var decoded map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, 87, decoded["overall_score"])
	assert.Equal(t, "structured", decoded["brain_state"].(map[string]any)["maturity"])
}

func TestOutputFormatter_HTML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewOutputFormatter(true, false).WriteReport(fullReport(t), domain.OutputFormatHTML, &buf))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "<!DOCTYPE html>"))
	assert.Contains(t, out, "STRUCTURED")
	assert.Contains(t, out, "Overall: 87/100")
	assert.Contains(t, out, "Context Engineering Patterns")
	assert.Contains(t, out, "Top Fixes")
	assert.Contains(t, out, "Deny rules")
	assert.Contains(t, out, "15 min")
	assert.NotContains(t, out, "\x1b[")
}

func TestOutputFormatter_HTMLEmptyMode(t *testing.T) {
	r := sampleReport("/work/<ws>", time.Now(), 0)
	r.BrainState = domain.BrainState{Maturity: domain.MaturityEmpty}

	var buf bytes.Buffer
	require.NoError(t, NewOutputFormatter(false, false).WriteReport(r, domain.OutputFormatHTML, &buf))

	out := buf.String()
	assert.Contains(t, out, "Getting Started")
	assert.Contains(t, out, "/work/&lt;ws&gt;")
	assert.NotContains(t, out, "Overall:")
}

func TestOutputFormatter_UnsupportedFormat(t *testing.T) {
	var buf bytes.Buffer
	err := NewOutputFormatter(false, false).WriteReport(fullReport(t), "xml", &buf)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported output format")
}

func TestOutputFormatter_History(t *testing.T) {
	h := domain.History{SchemaVersion: 1, Runs: []domain.RunHistoryEntry{
		{Timestamp: "2026-01-01T00:00:00Z", Version: "1.0.0", OverallPct: 30, Maturity: domain.MaturityBasic},
		{Timestamp: "2026-01-02T00:00:00Z", Version: "1.1.0", OverallPct: 42, Maturity: domain.MaturityStructured},
	}}

	var text bytes.Buffer
	require.NoError(t, NewOutputFormatter(false, false).WriteHistory(h, domain.OutputFormatText, &text))
	assert.Contains(t, text.String(), "+12")
	assert.Contains(t, text.String(), "(version changed)")

	var js bytes.Buffer
	require.NoError(t, NewOutputFormatter(false, false).WriteHistory(h, domain.OutputFormatJSON, &js))
	var decoded HistoryJSON
	require.NoError(t, json.Unmarshal(js.Bytes(), &decoded))
	require.Len(t, decoded.Deltas, 1)
	assert.Equal(t, 12, decoded.Deltas[0].Overall)

	var empty bytes.Buffer
	require.NoError(t, NewOutputFormatter(false, false).WriteHistory(domain.History{}, domain.OutputFormatText, &empty))
	assert.True(t, strings.Contains(empty.String(), "No runs recorded yet."))
}
