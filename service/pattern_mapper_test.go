package service

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"github.com/ludo-technologies/brainscan/domain"
	"github.com/ludo-technologies/brainscan/internal/checks"
)

func layerResult(id string, dim domain.DimensionID, points, maxPoints int) domain.LayerResult {
	return *scoredLayer(id, dim, points, maxPoints)
}

func TestPatternMapper_SumsAcrossDimensions(t *testing.T) {
	setup := domain.NewDimension(domain.DimensionSetup, []domain.LayerResult{
		layerResult(checks.LayerMemoryArchitecture, domain.DimensionSetup, 5, 10),
	})
	usage := domain.NewDimension(domain.DimensionUsage, []domain.LayerResult{
		layerResult(checks.LayerSessionLog, domain.DimensionUsage, 8, 10),
	})

	mapper := NewPatternMapper(PatternDefinition{
		ID:     "compounding-memory",
		Name:   "Compounding Memory",
		Layers: []string{checks.LayerMemoryArchitecture, checks.LayerSessionLog, checks.LayerKnowledgeBase},
	})

	got := mapper.Map(setup, usage)
	want := []domain.Pattern{{
		ID:         "compounding-memory",
		Name:       "Compounding Memory",
		Score:      13,
		MaxScore:   20,
		Percentage: 65,
	}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Map() mismatch (-want +got):\n%s", diff)
	}
}

func TestPatternMapper_ExcludesPatternsWithoutBudget(t *testing.T) {
	setup := domain.NewDimension(domain.DimensionSetup, []domain.LayerResult{
		layerResult(checks.LayerInstructions, domain.DimensionSetup, 0, 15),
		layerResult(checks.LayerAgents, domain.DimensionSetup, 0, 0),
	})

	mapper := NewPatternMapper(
		PatternDefinition{ID: "context", Name: "Context", Layers: []string{checks.LayerInstructions}},
		PatternDefinition{ID: "absent", Name: "Absent", Layers: []string{"setup.nonexistent"}},
		PatternDefinition{ID: "zero", Name: "Zero", Layers: []string{checks.LayerAgents}},
	)

	got := mapper.Map(setup)
	assert.Len(t, got, 1)
	assert.Equal(t, "context", got[0].ID)
	assert.Equal(t, 0, got[0].Percentage)
}

func TestPatternMapper_RoundsHalfUp(t *testing.T) {
	fluency := domain.NewDimension(domain.DimensionFluency, []domain.LayerResult{
		layerResult("fluency.x", domain.DimensionFluency, 1, 8),
	})
	mapper := NewPatternMapper(PatternDefinition{ID: "x", Name: "X", Layers: []string{"fluency.x"}})

	// 12.5% rounds up
	got := mapper.Map(fluency)
	assert.Equal(t, 13, got[0].Percentage)
}

func TestPatternMapper_DefaultTableCoversCatalog(t *testing.T) {
	known := make(map[string]bool)
	for _, l := range checks.Catalog(checks.Options{}) {
		known[l.ID()] = true
	}

	used := make(map[string]bool)
	for _, p := range DefaultPatterns {
		for _, id := range p.Layers {
			assert.Truef(t, known[id], "pattern %s references unknown layer %s", p.ID, id)
			used[id] = true
		}
	}
	for id := range known {
		assert.Truef(t, used[id], "layer %s feeds no pattern", id)
	}
}

func TestPatternMapper_OrderFollowsTable(t *testing.T) {
	var layers []domain.LayerResult
	for _, l := range checks.Catalog(checks.Options{}) {
		layers = append(layers, layerResult(l.ID(), l.Dimension(), 1, l.MaxPoints()))
	}
	dim := domain.NewDimension(domain.DimensionSetup, layers)

	got := NewPatternMapper().Map(dim)
	ids := make([]string, 0, len(got))
	for _, p := range got {
		ids = append(ids, p.ID)
	}

	want := make([]string, 0, len(DefaultPatterns))
	for _, p := range DefaultPatterns {
		want = append(want, p.ID)
	}
	if diff := cmp.Diff(want, ids); diff != "" {
		t.Errorf("pattern order mismatch (-want +got):\n%s", diff)
	}
}
