// Package checks contains the reference catalog of workspace checks.
//
// Every layer is a domain.LayerCheck: a read-only scan of the workspace that
// returns one CheckResult per check. The scoring engine treats them as opaque
// collaborators and never depends on how a check decides its points.
package checks

import (
	"context"

	"github.com/ludo-technologies/brainscan/domain"
)

// checkFunc scores one aspect of the workspace
type checkFunc func(ws *Workspace) domain.CheckResult

// Layer is a named bundle of checks sharing a point budget
type Layer struct {
	id        string
	name      string
	dimension domain.DimensionID
	maxPoints int
	estimate  string
	checks    []checkFunc
	excludes  []string
}

// ID returns the stable layer identifier
func (l *Layer) ID() string { return l.id }

// Name returns the display name
func (l *Layer) Name() string { return l.name }

// Dimension returns the owning dimension
func (l *Layer) Dimension() domain.DimensionID { return l.dimension }

// MaxPoints returns the nominal budget
func (l *Layer) MaxPoints() int { return l.maxPoints }

// TimeEstimate returns the rough effort needed to close this layer's gaps
func (l *Layer) TimeEstimate() string { return l.estimate }

// Run executes the layer's checks in order against root
func (l *Layer) Run(ctx context.Context, root string) (*domain.LayerResult, error) {
	ws := NewWorkspace(root, l.excludes)

	results := make([]domain.CheckResult, 0, len(l.checks))
	budget := 0
	for _, check := range l.checks {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		r := check(ws)
		budget += r.MaxPoints
		results = append(results, r)
	}
	if err := ws.Err(); err != nil {
		return nil, err
	}

	return domain.NewLayerResult(l.id, l.name, l.dimension, budget, results), nil
}

// score builds a CheckResult, deriving the status from the points
func score(name string, points, maxPoints int, message string) domain.CheckResult {
	if points < 0 {
		points = 0
	}
	if points > maxPoints {
		points = maxPoints
	}

	status := domain.CheckStatusWarn
	switch {
	case points == maxPoints:
		status = domain.CheckStatusPass
	case points == 0:
		status = domain.CheckStatusFail
	}

	return domain.CheckResult{
		Name:      name,
		Status:    status,
		Points:    points,
		MaxPoints: maxPoints,
		Message:   message,
	}
}

// tiered returns the points of the first tier whose threshold n reaches
func tiered(n int, tiers ...[2]int) int {
	for _, t := range tiers {
		if n >= t[0] {
			return t[1]
		}
	}
	return 0
}
