package domain

import (
	"context"
	"fmt"
)

// CheckStatus is the closed set of outcomes a single check can report
type CheckStatus string

const (
	CheckStatusPass CheckStatus = "pass"
	CheckStatusWarn CheckStatus = "warn"
	CheckStatusFail CheckStatus = "fail"
)

// IsValid reports whether s is one of the known statuses
func (s CheckStatus) IsValid() bool {
	switch s {
	case CheckStatusPass, CheckStatusWarn, CheckStatusFail:
		return true
	}
	return false
}

// CheckResult is the outcome of one named check inside a layer
type CheckResult struct {
	Name      string      `json:"name" yaml:"name"`
	Status    CheckStatus `json:"status" yaml:"status"`
	Points    int         `json:"points" yaml:"points"`
	MaxPoints int         `json:"max_points" yaml:"max_points"`
	Message   string      `json:"message" yaml:"message"`
}

// Deficit returns the points this check left on the table
func (c CheckResult) Deficit() int {
	if c.Points >= c.MaxPoints {
		return 0
	}
	return c.MaxPoints - c.Points
}

// Validate checks the points invariant and the status enum
func (c CheckResult) Validate() error {
	if !c.Status.IsValid() {
		return fmt.Errorf("check %q: unknown status %q", c.Name, c.Status)
	}
	if c.MaxPoints < 0 {
		return fmt.Errorf("check %q: negative max points %d", c.Name, c.MaxPoints)
	}
	if c.Points < 0 || c.Points > c.MaxPoints {
		return fmt.Errorf("check %q: points %d outside [0,%d]", c.Name, c.Points, c.MaxPoints)
	}
	return nil
}

// LayerResult is the scored output of one layer.
//
// ID is stable and unique across the whole catalog; patterns and fix
// estimates are keyed by it. Name is display text only.
type LayerResult struct {
	ID        string        `json:"id" yaml:"id"`
	Name      string        `json:"name" yaml:"name"`
	Dimension DimensionID   `json:"dimension" yaml:"dimension"`
	Points    int           `json:"points" yaml:"points"`
	MaxPoints int           `json:"max_points" yaml:"max_points"`
	Checks    []CheckResult `json:"checks" yaml:"checks"`
	Failed    bool          `json:"failed,omitempty" yaml:"failed,omitempty"`
}

// NewLayerResult builds a layer result whose points are the sum of its checks
func NewLayerResult(id, name string, dim DimensionID, maxPoints int, checks []CheckResult) *LayerResult {
	points := 0
	for _, c := range checks {
		points += c.Points
	}
	return &LayerResult{
		ID:        id,
		Name:      name,
		Dimension: dim,
		Points:    points,
		MaxPoints: maxPoints,
		Checks:    checks,
	}
}

// FailedLayerResult synthesizes the zero-score stand-in for a layer that
// could not be scored. MaxPoints stays at the nominal budget.
func FailedLayerResult(id, name string, dim DimensionID, maxPoints int, cause error) *LayerResult {
	return &LayerResult{
		ID:        id,
		Name:      name,
		Dimension: dim,
		Points:    0,
		MaxPoints: maxPoints,
		Failed:    true,
		Checks: []CheckResult{{
			Name:      name,
			Status:    CheckStatusFail,
			Points:    0,
			MaxPoints: maxPoints,
			Message:   fmt.Sprintf("layer failed: %v", cause),
		}},
	}
}

// Validate checks the shape of a result returned by a layer check
func (l *LayerResult) Validate() error {
	if l == nil {
		return fmt.Errorf("layer returned no result")
	}
	if l.MaxPoints < 0 {
		return fmt.Errorf("layer %q: negative max points %d", l.ID, l.MaxPoints)
	}
	if l.Points < 0 || l.Points > l.MaxPoints {
		return fmt.Errorf("layer %q: points %d outside [0,%d]", l.ID, l.Points, l.MaxPoints)
	}
	sum := 0
	for _, c := range l.Checks {
		if err := c.Validate(); err != nil {
			return fmt.Errorf("layer %q: %w", l.ID, err)
		}
		sum += c.Points
	}
	if sum != l.Points {
		return fmt.Errorf("layer %q: points %d do not match checks total %d", l.ID, l.Points, sum)
	}
	return nil
}

// LayerCheck is the pluggable unit the orchestrator schedules.
// Run must be read-only with respect to the filesystem and may fail.
type LayerCheck interface {
	// ID returns the stable unique layer identifier
	ID() string

	// Name returns the human-readable layer name
	Name() string

	// Dimension returns the dimension this layer contributes to
	Dimension() DimensionID

	// MaxPoints returns the nominal point budget of the layer
	MaxPoints() int

	// Run scores the layer against the workspace rooted at root
	Run(ctx context.Context, root string) (*LayerResult, error)
}
