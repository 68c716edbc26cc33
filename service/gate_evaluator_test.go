package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ludo-technologies/brainscan/domain"
	"github.com/ludo-technologies/brainscan/internal/config"
)

func TestGateEvaluator_Thresholds(t *testing.T) {
	// setup 80, usage 50, fluency 0, overall 43
	report := sampleReport("/work/ws", time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC), 8)

	tests := []struct {
		name      string
		gate      config.GateConfig
		wantPass  bool
		wantRules []string
	}{
		{"no thresholds", config.GateConfig{}, true, nil},
		{"overall met exactly", config.GateConfig{MinOverall: 43}, true, nil},
		{"overall missed", config.GateConfig{MinOverall: 44}, false, []string{"min-overall"}},
		{"several missed", config.GateConfig{MinSetup: 90, MinUsage: 50, MinFluency: 1}, false, []string{"min-setup", "min-fluency"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := NewGateEvaluator(tt.gate).Evaluate(report)
			assert.Equal(t, tt.wantPass, res.Passed)

			var rules []string
			for _, v := range res.Violations {
				rules = append(rules, v.Rule)
			}
			assert.Equal(t, tt.wantRules, rules)

			if tt.wantPass {
				assert.Equal(t, GateExitPass, res.ExitCode)
			} else {
				assert.Equal(t, GateExitViolation, res.ExitCode)
			}
		})
	}
}

func TestGateEvaluator_Summary(t *testing.T) {
	report := sampleReport("/work/ws", time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC), 8)
	report.Fluency = domain.NewDimension(domain.DimensionFluency, []domain.LayerResult{
		*domain.FailedLayerResult("fluency.guardrails", "Guardrails", domain.DimensionFluency, 10, assert.AnError),
	})

	res := NewGateEvaluator(config.GateConfig{MinOverall: 1}).Evaluate(report)
	require.True(t, res.Passed)
	assert.Equal(t, 80, res.Summary.Setup)
	assert.Equal(t, 50, res.Summary.Usage)
	assert.Equal(t, 1, res.Summary.FailedLayers)
	assert.Equal(t, domain.MaturityBasic, res.Summary.Maturity)
	assert.Equal(t, "2026-03-01T12:00:00Z", res.GeneratedAt)
	assert.Equal(t, "1.2.3", res.Version)
}
