package service

import (
	"fmt"
	"time"

	"github.com/ludo-technologies/brainscan/domain"
	"github.com/ludo-technologies/brainscan/internal/config"
)

// Gate exit codes
const (
	GateExitPass      = 0
	GateExitViolation = 1
	GateExitError     = 2
)

// GateEvaluator compares a full report against the configured minimum scores
type GateEvaluator struct {
	gate config.GateConfig
}

// NewGateEvaluator creates a GateEvaluator; a zero threshold is not enforced
func NewGateEvaluator(gate config.GateConfig) *GateEvaluator {
	return &GateEvaluator{gate: gate}
}

// Evaluate returns the gate verdict for report
func (g *GateEvaluator) Evaluate(report *domain.Report) domain.GateResult {
	summary := domain.GateSummary{
		Setup:    report.Setup.NormalizedScore,
		Usage:    report.Usage.NormalizedScore,
		Fluency:  report.Fluency.NormalizedScore,
		Overall:  report.OverallScore(),
		Maturity: report.BrainState.Maturity,
		TopFixes: report.TopFixes,
	}
	for _, dim := range report.Dimensions() {
		for _, l := range dim.Layers {
			if l.Failed {
				summary.FailedLayers++
			}
		}
	}

	rules := []struct {
		dimension string
		rule      string
		actual    int
		threshold int
	}{
		{string(domain.DimensionSetup), "min-setup", summary.Setup, g.gate.MinSetup},
		{string(domain.DimensionUsage), "min-usage", summary.Usage, g.gate.MinUsage},
		{string(domain.DimensionFluency), "min-fluency", summary.Fluency, g.gate.MinFluency},
		{"overall", "min-overall", summary.Overall, g.gate.MinOverall},
	}

	result := domain.GateResult{
		Passed:      true,
		ExitCode:    GateExitPass,
		Violations:  []domain.GateViolation{},
		Summary:     summary,
		Duration:    report.DurationMs,
		GeneratedAt: report.Timestamp.UTC().Format(time.RFC3339),
		Version:     report.Version,
	}
	for _, r := range rules {
		if r.threshold <= 0 || r.actual >= r.threshold {
			continue
		}
		result.Violations = append(result.Violations, domain.GateViolation{
			Dimension: r.dimension,
			Rule:      r.rule,
			Message:   fmt.Sprintf("%s score %d is below minimum %d", r.dimension, r.actual, r.threshold),
			Actual:    r.actual,
			Threshold: r.threshold,
		})
	}

	if len(result.Violations) > 0 {
		result.Passed = false
		result.ExitCode = GateExitViolation
	}
	return result
}
