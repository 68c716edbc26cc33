package domain

import (
	"context"
	"time"
)

// ScanMode selects how much of the engine runs
type ScanMode string

const (
	// ScanModeFull runs every layer of every dimension
	ScanModeFull ScanMode = "full"

	// ScanModeQuick runs only the brain state detector
	ScanModeQuick ScanMode = "quick"
)

// ParseScanMode converts user input into a ScanMode
func ParseScanMode(s string) (ScanMode, bool) {
	switch ScanMode(s) {
	case ScanModeFull, "":
		return ScanModeFull, true
	case ScanModeQuick:
		return ScanModeQuick, true
	}
	return "", false
}

// Pattern is a cross-cutting score derived from several layers
type Pattern struct {
	ID         string `json:"id" yaml:"id"`
	Name       string `json:"name" yaml:"name"`
	Score      int    `json:"score" yaml:"score"`
	MaxScore   int    `json:"max_score" yaml:"max_score"`
	Percentage int    `json:"percentage" yaml:"percentage"`
}

// Impact labels how much a fix moves its dimension score
type Impact string

const (
	ImpactHigh   Impact = "high"
	ImpactMedium Impact = "medium"
	ImpactLow    Impact = "low"
)

// Fix is one ranked remediation suggestion
type Fix struct {
	LayerID           string      `json:"layer_id" yaml:"layer_id"`
	Title             string      `json:"title" yaml:"title"`
	Category          DimensionID `json:"category" yaml:"category"`
	Impact            Impact      `json:"impact" yaml:"impact"`
	Description       string      `json:"description" yaml:"description"`
	NormalizedDeficit int         `json:"normalized_deficit" yaml:"normalized_deficit"`
	TimeEstimate      string      `json:"time_estimate,omitempty" yaml:"time_estimate,omitempty"`
}

// Report is the single value handed from the engine to presentation.
// It is assembled once per run and must be treated as read-only.
type Report struct {
	RunID      string     `json:"run_id" yaml:"run_id"`
	Path       string     `json:"path" yaml:"path"`
	Timestamp  time.Time  `json:"timestamp" yaml:"timestamp"`
	Mode       ScanMode   `json:"mode" yaml:"mode"`
	Version    string     `json:"version" yaml:"version"`
	Setup      Dimension  `json:"setup" yaml:"setup"`
	Usage      Dimension  `json:"usage" yaml:"usage"`
	Fluency    Dimension  `json:"fluency" yaml:"fluency"`
	BrainState BrainState `json:"brain_state" yaml:"brain_state"`
	CEPatterns []Pattern  `json:"ce_patterns" yaml:"ce_patterns"`
	TopFixes   []Fix      `json:"top_fixes" yaml:"top_fixes"`
	DurationMs int64      `json:"duration_ms" yaml:"duration_ms"`
}

// Dimensions returns the three dimensions in report order
func (r *Report) Dimensions() []Dimension {
	return []Dimension{r.Setup, r.Usage, r.Fluency}
}

// Dimension returns the dimension with the given ID
func (r *Report) Dimension(id DimensionID) Dimension {
	switch id {
	case DimensionUsage:
		return r.Usage
	case DimensionFluency:
		return r.Fluency
	default:
		return r.Setup
	}
}

// OverallScore is the rounded mean of the three normalized dimension scores.
// Quick reports have no dimension data and score 0.
func (r *Report) OverallScore() int {
	if r.Mode == ScanModeQuick {
		return 0
	}
	sum := r.Setup.NormalizedScore + r.Usage.NormalizedScore + r.Fluency.NormalizedScore
	return RoundHalfUp(float64(sum) / 3)
}

// ReportMode returns the output state for this report
func (r *Report) ReportMode() ReportMode {
	return SelectReportMode(r.BrainState.Maturity, r.OverallScore())
}

// ScanService is the engine entry point exposed to the CLI and MCP server
type ScanService interface {
	Execute(ctx context.Context, root string, mode ScanMode) (*Report, error)
}
