package domain

import (
	"errors"
	"testing"
)

func TestNormalizeScore(t *testing.T) {
	tests := []struct {
		points, max, want int
	}{
		{0, 0, 0},
		{5, 0, 0},
		{0, 60, 0},
		{60, 60, 100},
		{1, 3, 33},
		{2, 3, 67},
		{1, 8, 13},  // 12.5 rounds up
		{1, 200, 1}, // 0.5 rounds up
		{70, 60, 100},
		{-5, 60, 0},
	}

	for _, tt := range tests {
		if got := NormalizeScore(tt.points, tt.max); got != tt.want {
			t.Errorf("NormalizeScore(%d, %d) = %d, want %d", tt.points, tt.max, got, tt.want)
		}
	}
}

func TestGradeFor_Boundaries(t *testing.T) {
	tests := []struct {
		dim   DimensionID
		score int
		grade string
	}{
		{DimensionSetup, 100, "A"},
		{DimensionSetup, 85, "A"},
		{DimensionSetup, 84, "B"},
		{DimensionSetup, 70, "B"},
		{DimensionSetup, 69, "C"},
		{DimensionSetup, 50, "C"},
		{DimensionSetup, 49, "D"},
		{DimensionSetup, 30, "D"},
		{DimensionSetup, 29, "F"},
		{DimensionSetup, 0, "F"},
		{DimensionUsage, 100, "Thriving"},
		{DimensionUsage, 85, "Thriving"},
		{DimensionUsage, 84, "Active"},
		{DimensionUsage, 70, "Active"},
		{DimensionUsage, 69, "Growing"},
		{DimensionUsage, 50, "Growing"},
		{DimensionUsage, 49, "Emerging"},
		{DimensionUsage, 30, "Emerging"},
		{DimensionUsage, 29, "Dormant"},
		{DimensionUsage, 0, "Dormant"},
		{DimensionFluency, 100, "Expert"},
		{DimensionFluency, 85, "Expert"},
		{DimensionFluency, 84, "Proficient"},
		{DimensionFluency, 70, "Proficient"},
		{DimensionFluency, 69, "Developing"},
		{DimensionFluency, 50, "Developing"},
		{DimensionFluency, 49, "Novice"},
		{DimensionFluency, 30, "Novice"},
		{DimensionFluency, 29, "Beginner"},
		{DimensionFluency, 0, "Beginner"},
	}

	for _, tt := range tests {
		if got := GradeFor(tt.dim, tt.score).Grade; got != tt.grade {
			t.Errorf("GradeFor(%s, %d) = %s, want %s", tt.dim, tt.score, got, tt.grade)
		}
	}
}

func TestNewDimension(t *testing.T) {
	layers := []LayerResult{
		*NewLayerResult("setup.a", "A", DimensionSetup, 15, []CheckResult{
			{Name: "x", Status: CheckStatusPass, Points: 10, MaxPoints: 10},
			{Name: "y", Status: CheckStatusFail, Points: 0, MaxPoints: 5},
		}),
		*FailedLayerResult("setup.b", "B", DimensionSetup, 5, errors.New("boom")),
	}

	d := NewDimension(DimensionSetup, layers)
	if d.TotalPoints != 10 || d.MaxPoints != 20 {
		t.Errorf("Expected 10/20, got %d/%d", d.TotalPoints, d.MaxPoints)
	}
	if d.NormalizedScore != 50 {
		t.Errorf("Expected score 50, got %d", d.NormalizedScore)
	}
	if d.Grade != "C" || d.Name != "Setup Quality" {
		t.Errorf("Unexpected grade/name: %s %s", d.Grade, d.Name)
	}
	if _, ok := d.Layer("setup.b"); !ok {
		t.Error("Layer lookup failed")
	}

	empty := EmptyDimension(DimensionFluency)
	if empty.Layers == nil || empty.NormalizedScore != 0 || empty.MaxPoints != 0 {
		t.Errorf("Unexpected empty dimension: %+v", empty)
	}
}

func TestCheckResult_ValidateAndDeficit(t *testing.T) {
	tests := []struct {
		name    string
		check   CheckResult
		valid   bool
		deficit int
	}{
		{"full", CheckResult{Name: "a", Status: CheckStatusPass, Points: 5, MaxPoints: 5}, true, 0},
		{"partial", CheckResult{Name: "a", Status: CheckStatusWarn, Points: 2, MaxPoints: 5}, true, 3},
		{"zero budget", CheckResult{Name: "a", Status: CheckStatusPass}, true, 0},
		{"over budget", CheckResult{Name: "a", Status: CheckStatusPass, Points: 6, MaxPoints: 5}, false, 0},
		{"negative", CheckResult{Name: "a", Status: CheckStatusFail, Points: -1, MaxPoints: 5}, false, 6},
		{"bad status", CheckResult{Name: "a", Status: "skipped", Points: 0, MaxPoints: 5}, false, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.check.Validate()
			if (err == nil) != tt.valid {
				t.Errorf("Validate() = %v, want valid=%v", err, tt.valid)
			}
			if got := tt.check.Deficit(); got != tt.deficit {
				t.Errorf("Deficit() = %d, want %d", got, tt.deficit)
			}
		})
	}
}

func TestLayerResult_Validate(t *testing.T) {
	ok := NewLayerResult("l", "L", DimensionUsage, 5, []CheckResult{
		{Name: "a", Status: CheckStatusPass, Points: 5, MaxPoints: 5},
	})
	if err := ok.Validate(); err != nil {
		t.Errorf("Expected valid layer, got %v", err)
	}

	mismatch := *ok
	mismatch.Points = 4
	if err := mismatch.Validate(); err == nil {
		t.Error("Expected error when points do not match checks")
	}

	over := *ok
	over.MaxPoints = 3
	if err := over.Validate(); err == nil {
		t.Error("Expected error when points exceed budget")
	}

	var nilLayer *LayerResult
	if err := nilLayer.Validate(); err == nil {
		t.Error("Expected error for nil layer")
	}
}

func TestFailedLayerResult(t *testing.T) {
	l := FailedLayerResult("setup.hooks", "Hooks", DimensionSetup, 10, errors.New("permission denied"))

	if !l.Failed || l.Points != 0 || l.MaxPoints != 10 {
		t.Errorf("Unexpected failed layer: %+v", l)
	}
	if len(l.Checks) != 1 || l.Checks[0].Status != CheckStatusFail || l.Checks[0].MaxPoints != 10 {
		t.Errorf("Expected one failing check carrying the budget, got %+v", l.Checks)
	}
	if err := l.Validate(); err != nil {
		t.Errorf("Failed layer should still be well-formed: %v", err)
	}
}

func TestSelectReportMode(t *testing.T) {
	tests := []struct {
		maturity Maturity
		score    int
		want     ReportMode
	}{
		{MaturityEmpty, 0, ReportModeEmpty},
		{MaturityEmpty, 90, ReportModeEmpty},
		{MaturityMinimal, 90, ReportModeGrowth},
		{MaturityBasic, 60, ReportModeGrowth},
		{MaturityStructured, 39, ReportModeGrowth},
		{MaturityStructured, 40, ReportModeFull},
		{MaturityConfigured, 95, ReportModeFull},
	}

	for _, tt := range tests {
		if got := SelectReportMode(tt.maturity, tt.score); got != tt.want {
			t.Errorf("SelectReportMode(%s, %d) = %s, want %s", tt.maturity, tt.score, got, tt.want)
		}
	}
}

func TestParseScanMode(t *testing.T) {
	tests := []struct {
		in   string
		want ScanMode
		ok   bool
	}{
		{"", ScanModeFull, true},
		{"full", ScanModeFull, true},
		{"quick", ScanModeQuick, true},
		{"deep", "", false},
	}
	for _, tt := range tests {
		got, ok := ParseScanMode(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseScanMode(%q) = %q, %v", tt.in, got, ok)
		}
	}
}

func TestReport_OverallScore(t *testing.T) {
	r := &Report{
		Mode:    ScanModeFull,
		Setup:   Dimension{NormalizedScore: 80},
		Usage:   Dimension{NormalizedScore: 50},
		Fluency: Dimension{NormalizedScore: 1},
	}
	// (80 + 50 + 1) / 3 = 43.67
	if got := r.OverallScore(); got != 44 {
		t.Errorf("OverallScore() = %d, want 44", got)
	}

	r.Mode = ScanModeQuick
	if got := r.OverallScore(); got != 0 {
		t.Errorf("Quick OverallScore() = %d, want 0", got)
	}

	if r.Dimension(DimensionUsage).NormalizedScore != 50 {
		t.Error("Dimension lookup returned the wrong dimension")
	}
}

func TestHistory_Latest(t *testing.T) {
	if _, ok := (History{}).Latest(); ok {
		t.Error("Empty history should have no latest run")
	}
	h := History{Runs: []RunHistoryEntry{{Timestamp: "a"}, {Timestamp: "b"}}}
	latest, ok := h.Latest()
	if !ok || latest.Timestamp != "b" {
		t.Errorf("Expected latest run b, got %+v", latest)
	}
}

func TestBrainState_HasFeature(t *testing.T) {
	s := BrainState{Has: map[Feature]bool{FeatureClaudeMd: true}}
	if !s.HasFeature(FeatureClaudeMd) || s.HasFeature(FeatureHooks) {
		t.Error("HasFeature mismatch")
	}
	if len(AllFeatures()) != 8 {
		t.Errorf("Expected 8 features, got %d", len(AllFeatures()))
	}
}

func TestInvalidPathError(t *testing.T) {
	err := &InvalidPathError{Path: "/nope", Reason: "path does not exist"}

	if err.Error() != "cannot scan /nope: path does not exist" {
		t.Errorf("Unexpected message: %s", err.Error())
	}
	if !errors.Is(err, ErrInvalidRoot) {
		t.Error("InvalidPathError should match ErrInvalidRoot")
	}
}

func TestConfigError(t *testing.T) {
	cause := errors.New("bad yaml")
	err := NewConfigError("failed to load", cause)

	if err.Error() != "failed to load: bad yaml" {
		t.Errorf("Unexpected message: %s", err.Error())
	}
	if !errors.Is(err, cause) {
		t.Error("ConfigError should unwrap to its cause")
	}
	if NewConfigError("plain", nil).Error() != "plain" {
		t.Error("ConfigError without cause should print its message only")
	}
}
