package domain

import "math"

// DimensionID identifies one of the three scoring dimensions
type DimensionID string

const (
	DimensionSetup   DimensionID = "setup"
	DimensionUsage   DimensionID = "usage"
	DimensionFluency DimensionID = "fluency"
)

// AllDimensions lists the dimensions in report order
func AllDimensions() []DimensionID {
	return []DimensionID{DimensionSetup, DimensionUsage, DimensionFluency}
}

// DisplayName returns the human-readable dimension name
func (d DimensionID) DisplayName() string {
	switch d {
	case DimensionSetup:
		return "Setup Quality"
	case DimensionUsage:
		return "Usage Activity"
	case DimensionFluency:
		return "AI Fluency"
	default:
		return string(d)
	}
}

// Dimension aggregates the layers of one dimension
type Dimension struct {
	ID              DimensionID   `json:"id" yaml:"id"`
	Name            string        `json:"name" yaml:"name"`
	TotalPoints     int           `json:"total_points" yaml:"total_points"`
	MaxPoints       int           `json:"max_points" yaml:"max_points"`
	Layers          []LayerResult `json:"layers" yaml:"layers"`
	Grade           string        `json:"grade" yaml:"grade"`
	GradeLabel      string        `json:"grade_label" yaml:"grade_label"`
	NormalizedScore int           `json:"normalized_score" yaml:"normalized_score"`
}

// NewDimension sums the given layers and grades the result
func NewDimension(id DimensionID, layers []LayerResult) Dimension {
	if layers == nil {
		layers = []LayerResult{}
	}

	total, budget := 0, 0
	for _, l := range layers {
		total += l.Points
		budget += l.MaxPoints
	}

	score := NormalizeScore(total, budget)
	band := GradeFor(id, score)

	return Dimension{
		ID:              id,
		Name:            id.DisplayName(),
		TotalPoints:     total,
		MaxPoints:       budget,
		Layers:          layers,
		Grade:           band.Grade,
		GradeLabel:      band.Label,
		NormalizedScore: score,
	}
}

// EmptyDimension returns a zero-valued dimension, as carried by quick reports
func EmptyDimension(id DimensionID) Dimension {
	return NewDimension(id, nil)
}

// Layer returns the layer with the given ID
func (d *Dimension) Layer(id string) (LayerResult, bool) {
	for _, l := range d.Layers {
		if l.ID == id {
			return l, true
		}
	}
	return LayerResult{}, false
}

// NormalizeScore maps points onto 0-100 with round-half-up.
// A zero budget yields 0.
func NormalizeScore(points, maxPoints int) int {
	if maxPoints <= 0 {
		return 0
	}
	return clampPercent(RoundHalfUp(float64(points) * 100 / float64(maxPoints)))
}

// RoundHalfUp rounds x to the nearest integer, with .5 rounding up.
// Every percentage in a report goes through it.
func RoundHalfUp(x float64) int {
	return int(math.Floor(x + 0.5))
}

func clampPercent(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
