package domain

import "io"

// OutputFormat represents the supported output formats
type OutputFormat string

const (
	OutputFormatText OutputFormat = "text"
	OutputFormatJSON OutputFormat = "json"
	OutputFormatYAML OutputFormat = "yaml"
	OutputFormatHTML OutputFormat = "html"
)

// OutputFormatter renders reports for presentation
type OutputFormatter interface {
	// WriteReport writes a scan report in the given format
	WriteReport(report *Report, format OutputFormat, writer io.Writer) error

	// WriteHistory writes stored runs and their deltas
	WriteHistory(history History, format OutputFormat, writer io.Writer) error
}

// GateResult represents the result of the CI quality gate
type GateResult struct {
	Passed      bool            `json:"passed"`
	ExitCode    int             `json:"exit_code"`
	Violations  []GateViolation `json:"violations"`
	Summary     GateSummary     `json:"summary"`
	Duration    int64           `json:"duration_ms"`
	GeneratedAt string          `json:"generated_at"`
	Version     string          `json:"version"`
}

// GateViolation represents a single threshold violation
type GateViolation struct {
	Dimension string `json:"dimension"`           // setup, usage, fluency, overall
	Rule      string `json:"rule"`                // min-setup, min-overall, etc.
	Message   string `json:"message"`             // Human-readable description
	Actual    int    `json:"actual"`              // Actual score
	Threshold int    `json:"threshold,omitempty"` // Configured minimum
}

// GateSummary provides the scores the gate was evaluated against
type GateSummary struct {
	Setup        int      `json:"setup"`
	Usage        int      `json:"usage"`
	Fluency      int      `json:"fluency"`
	Overall      int      `json:"overall"`
	Maturity     Maturity `json:"maturity"`
	FailedLayers int      `json:"failed_layers"`
	TopFixes     []Fix    `json:"top_fixes,omitempty"`
}
