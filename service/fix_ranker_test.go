package service

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ludo-technologies/brainscan/domain"
)

func check(name string, points, maxPoints int) domain.CheckResult {
	status := domain.CheckStatusWarn
	switch points {
	case maxPoints:
		status = domain.CheckStatusPass
	case 0:
		status = domain.CheckStatusFail
	}
	return domain.CheckResult{Name: name, Status: status, Points: points, MaxPoints: maxPoints, Message: name + " message"}
}

func layerWith(id string, dim domain.DimensionID, checks ...domain.CheckResult) domain.LayerResult {
	budget := 0
	for _, c := range checks {
		budget += c.MaxPoints
	}
	return *domain.NewLayerResult(id, id, dim, budget, checks)
}

func TestFixRanker_NormalizesAgainstDimensionBudget(t *testing.T) {
	// a 10-point setup layer scoring 8 inside a 100-point dimension
	layers := []domain.LayerResult{
		layerWith("setup.a", domain.DimensionSetup, check("present", 5, 5), check("detail", 3, 5)),
		layerWith("setup.filler", domain.DimensionSetup, check("filler", 90, 90)),
	}
	setup := domain.NewDimension(domain.DimensionSetup, layers)
	require.Equal(t, 100, setup.MaxPoints)

	fixes := NewFixRanker(map[string]string{"setup.a": "5 min"}).Rank(5, setup)
	require.Len(t, fixes, 1)
	assert.Equal(t, 2, fixes[0].NormalizedDeficit)
	assert.Equal(t, domain.DimensionSetup, fixes[0].Category)
	assert.Equal(t, domain.ImpactLow, fixes[0].Impact)
	assert.Equal(t, "5 min", fixes[0].TimeEstimate)
	assert.Equal(t, "setup.a: detail", fixes[0].Title)
}

func TestFixRanker_SmallDimensionGapsRankHigher(t *testing.T) {
	small := domain.NewDimension(domain.DimensionUsage, []domain.LayerResult{
		layerWith("usage.small", domain.DimensionUsage, check("gap", 8, 10)),
	})
	big := domain.NewDimension(domain.DimensionSetup, []domain.LayerResult{
		layerWith("setup.big", domain.DimensionSetup, check("gap", 198, 200)),
	})

	fixes := NewFixRanker(map[string]string{}).Rank(5, big, small)
	require.Len(t, fixes, 2)
	assert.Equal(t, "usage.small", fixes[0].LayerID)
	assert.Equal(t, 20, fixes[0].NormalizedDeficit)
	assert.Equal(t, 1, fixes[1].NormalizedDeficit)
}

func TestFixRanker_StableAndTruncated(t *testing.T) {
	var cs []domain.CheckResult
	for _, name := range []string{"a", "b", "c", "d", "e", "f", "g"} {
		cs = append(cs, check(name, 0, 5))
	}
	dim := domain.NewDimension(domain.DimensionFluency, []domain.LayerResult{
		layerWith("fluency.all", domain.DimensionFluency, cs...),
	})

	ranker := NewFixRanker(map[string]string{})
	first := ranker.Rank(5, dim)
	second := ranker.Rank(5, dim)

	require.Len(t, first, 5)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("Rank() not deterministic (-first +second):\n%s", diff)
	}

	titles := make([]string, 0, len(first))
	for _, f := range first {
		titles = append(titles, f.Title)
	}
	want := []string{"fluency.all: a", "fluency.all: b", "fluency.all: c", "fluency.all: d", "fluency.all: e"}
	if diff := cmp.Diff(want, titles); diff != "" {
		t.Errorf("ties should keep encounter order (-want +got):\n%s", diff)
	}
}

func TestFixRanker_SkipsPassingChecksAndBounds(t *testing.T) {
	dim := domain.NewDimension(domain.DimensionSetup, []domain.LayerResult{
		layerWith("setup.ok", domain.DimensionSetup, check("done", 5, 5)),
		layerWith("setup.bad", domain.DimensionSetup, check("missing", 0, 5)),
	})

	fixes := NewFixRanker(nil).Rank(0, dim)
	require.Len(t, fixes, 1)
	assert.Equal(t, "setup.bad", fixes[0].LayerID)
	for _, f := range fixes {
		assert.GreaterOrEqual(t, f.NormalizedDeficit, 0)
		assert.LessOrEqual(t, f.NormalizedDeficit, 100)
	}
	assert.Equal(t, domain.ImpactHigh, fixes[0].Impact)
}

func TestFixRanker_FailedLayerTitle(t *testing.T) {
	failed := *domain.FailedLayerResult("setup.x", "Setup X", domain.DimensionSetup, 10, assert.AnError)
	dim := domain.NewDimension(domain.DimensionSetup, []domain.LayerResult{failed})

	fixes := NewFixRanker(map[string]string{}).Rank(5, dim)
	require.Len(t, fixes, 1)
	assert.Equal(t, "Setup X", fixes[0].Title)
	assert.Equal(t, 100, fixes[0].NormalizedDeficit)
}

func TestImpactFor(t *testing.T) {
	tests := []struct {
		deficit int
		want    domain.Impact
	}{
		{0, domain.ImpactLow},
		{3, domain.ImpactLow},
		{4, domain.ImpactMedium},
		{9, domain.ImpactMedium},
		{10, domain.ImpactHigh},
		{100, domain.ImpactHigh},
	}
	for _, tt := range tests {
		assert.Equalf(t, tt.want, ImpactFor(tt.deficit), "deficit %d", tt.deficit)
	}
}
