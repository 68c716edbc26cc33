package service

import (
	"fmt"
	"sort"

	"github.com/ludo-technologies/brainscan/domain"
	"github.com/ludo-technologies/brainscan/internal/checks"
	"github.com/ludo-technologies/brainscan/internal/config"
)

// Impact thresholds on the normalized deficit scale
const (
	HighImpactDeficit   = 10
	MediumImpactDeficit = 4
)

// FixRanker orders unfinished checks by how much they cost their dimension
type FixRanker struct {
	estimates map[string]string
}

// NewFixRanker creates a ranker using estimates keyed by layer ID;
// nil falls back to the reference catalog's estimates
func NewFixRanker(estimates map[string]string) *FixRanker {
	if estimates == nil {
		estimates = checks.TimeEstimates()
	}
	return &FixRanker{estimates: estimates}
}

// Rank collects every non-passing check, scores its deficit on the owning
// dimension's 0-100 scale, and returns the topN largest. Ties keep encounter
// order. topN <= 0 uses the default.
func (r *FixRanker) Rank(topN int, dims ...domain.Dimension) []domain.Fix {
	if topN <= 0 {
		topN = config.DefaultTopFixes
	}

	fixes := make([]domain.Fix, 0)
	for _, dim := range dims {
		for _, layer := range dim.Layers {
			for _, c := range layer.Checks {
				if c.Status == domain.CheckStatusPass {
					continue
				}
				deficit := domain.NormalizeScore(c.Deficit(), dim.MaxPoints)
				fixes = append(fixes, domain.Fix{
					LayerID:           layer.ID,
					Title:             fixTitle(layer, c),
					Category:          dim.ID,
					Impact:            ImpactFor(deficit),
					Description:       c.Message,
					NormalizedDeficit: deficit,
					TimeEstimate:      r.estimates[layer.ID],
				})
			}
		}
	}

	sort.SliceStable(fixes, func(i, j int) bool {
		return fixes[i].NormalizedDeficit > fixes[j].NormalizedDeficit
	})

	if len(fixes) > topN {
		fixes = fixes[:topN]
	}
	return fixes
}

// ImpactFor labels a normalized deficit
func ImpactFor(deficit int) domain.Impact {
	switch {
	case deficit >= HighImpactDeficit:
		return domain.ImpactHigh
	case deficit >= MediumImpactDeficit:
		return domain.ImpactMedium
	default:
		return domain.ImpactLow
	}
}

func fixTitle(layer domain.LayerResult, c domain.CheckResult) string {
	if layer.Failed || c.Name == layer.Name {
		return layer.Name
	}
	return fmt.Sprintf("%s: %s", layer.Name, c.Name)
}
