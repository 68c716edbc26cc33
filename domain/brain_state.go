package domain

// Maturity is the workspace tier derived by the brain state detector
type Maturity string

const (
	MaturityEmpty      Maturity = "empty"
	MaturityMinimal    Maturity = "minimal"
	MaturityBasic      Maturity = "basic"
	MaturityStructured Maturity = "structured"
	MaturityConfigured Maturity = "configured"
)

// Feature is one of the fixed workspace paths the detector stats
type Feature string

const (
	FeatureClaudeMd  Feature = "claudeMd"
	FeatureClaudeDir Feature = "claudeDir"
	FeatureMemory    Feature = "memory"
	FeatureSkills    Feature = "skills"
	FeatureHooks     Feature = "hooks"
	FeatureKnowledge Feature = "knowledge"
	FeatureAgents    Feature = "agents"
	FeatureSettings  Feature = "settings"
)

// AllFeatures lists the detector features in display order
func AllFeatures() []Feature {
	return []Feature{
		FeatureClaudeMd,
		FeatureClaudeDir,
		FeatureMemory,
		FeatureSkills,
		FeatureHooks,
		FeatureKnowledge,
		FeatureAgents,
		FeatureSettings,
	}
}

// BrainState is the existence-only classification of a workspace
type BrainState struct {
	Maturity      Maturity         `json:"maturity" yaml:"maturity"`
	Has           map[Feature]bool `json:"has" yaml:"has"`
	IsBuyer       bool             `json:"is_buyer" yaml:"is_buyer"`
	IsReturning   bool             `json:"is_returning" yaml:"is_returning"`
	PreviousScore *int             `json:"previous_score,omitempty" yaml:"previous_score,omitempty"`
}

// HasFeature reports whether the detector found the feature
func (b BrainState) HasFeature(f Feature) bool {
	return b.Has[f]
}
