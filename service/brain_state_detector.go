package service

import (
	"path/filepath"

	"github.com/ludo-technologies/brainscan/domain"
	"github.com/ludo-technologies/brainscan/internal/checks"
	"github.com/ludo-technologies/brainscan/internal/config"
	"github.com/ludo-technologies/brainscan/internal/constants"
)

// DetectorConfig is everything the detector needs besides the root
type DetectorConfig struct {
	MinimalInstructionBytes int64
	IsBuyer                 bool
}

// DetectorConfigFrom extracts detector settings from the loaded config
func DetectorConfigFrom(cfg *config.Config) DetectorConfig {
	if cfg == nil {
		return DetectorConfig{MinimalInstructionBytes: config.DefaultMinimalInstructionBytes}
	}
	return DetectorConfig{
		MinimalInstructionBytes: cfg.Scan.MinimalInstructionBytes,
		IsBuyer:                 cfg.HasAccessToken(),
	}
}

// BrainStateDetector classifies workspace maturity from file presence alone
type BrainStateDetector struct {
	cfg     DetectorConfig
	history *HistoryStore
}

// NewBrainStateDetector creates a detector; history may be nil
func NewBrainStateDetector(cfg DetectorConfig, history *HistoryStore) *BrainStateDetector {
	if cfg.MinimalInstructionBytes <= 0 {
		cfg.MinimalInstructionBytes = config.DefaultMinimalInstructionBytes
	}
	if history == nil {
		history = NewHistoryStore(nil)
	}
	return &BrainStateDetector{cfg: cfg, history: history}
}

// maturityRule is one rung of the ladder
type maturityRule struct {
	maturity domain.Maturity
	matches  func(has map[domain.Feature]bool, instructionBytes int64) bool
}

// maturityLadder is evaluated top-down, first match wins. Configured sits
// above Structured because its condition implies Structured's.
func (d *BrainStateDetector) maturityLadder() []maturityRule {
	return []maturityRule{
		{domain.MaturityEmpty, func(has map[domain.Feature]bool, _ int64) bool {
			return !has[domain.FeatureClaudeMd]
		}},
		{domain.MaturityMinimal, func(has map[domain.Feature]bool, size int64) bool {
			return size < d.cfg.MinimalInstructionBytes && !has[domain.FeatureClaudeDir]
		}},
		{domain.MaturityBasic, func(has map[domain.Feature]bool, _ int64) bool {
			return has[domain.FeatureClaudeDir] && !has[domain.FeatureSkills] && !has[domain.FeatureHooks]
		}},
		{domain.MaturityConfigured, func(has map[domain.Feature]bool, _ int64) bool {
			return has[domain.FeatureSkills] && has[domain.FeatureHooks] &&
				has[domain.FeatureMemory] && has[domain.FeatureKnowledge]
		}},
		{domain.MaturityStructured, func(has map[domain.Feature]bool, _ int64) bool {
			return has[domain.FeatureSkills] || has[domain.FeatureHooks] || has[domain.FeatureMemory]
		}},
	}
}

// Detect classifies root. It only stats paths and never fails: a missing or
// non-directory root is Empty.
func (d *BrainStateDetector) Detect(root string) domain.BrainState {
	state := domain.BrainState{
		Maturity: domain.MaturityEmpty,
		Has:      make(map[domain.Feature]bool, len(domain.AllFeatures())),
		IsBuyer:  d.cfg.IsBuyer,
	}
	for _, f := range domain.AllFeatures() {
		state.Has[f] = false
	}

	ws := checks.NewWorkspace(root, nil)
	if !ws.IsDir() {
		return state
	}

	memory := false
	if _, ok := ws.MemoryDir(); ok {
		memory = true
	}
	state.Has[domain.FeatureClaudeMd] = ws.IsFile(constants.InstructionFile)
	state.Has[domain.FeatureClaudeDir] = ws.IsDir(constants.ConfigDir)
	state.Has[domain.FeatureMemory] = memory
	state.Has[domain.FeatureSkills] = ws.IsDir(constants.ConfigDir, constants.SkillsDir)
	state.Has[domain.FeatureHooks] = ws.IsDir(constants.ConfigDir, constants.HooksDir) ||
		ws.IsFile(constants.ConfigDir, constants.HooksFile)
	state.Has[domain.FeatureKnowledge] = ws.IsDir(constants.KnowledgeDir)
	state.Has[domain.FeatureAgents] = ws.IsDir(filepath.Join(constants.ConfigDir, constants.AgentsDir))
	state.Has[domain.FeatureSettings] = ws.IsFile(constants.ConfigDir, constants.SettingsFile)

	size := ws.FileSize(constants.InstructionFile)
	state.Maturity = domain.MaturityBasic
	for _, rule := range d.maturityLadder() {
		if rule.matches(state.Has, size) {
			state.Maturity = rule.maturity
			break
		}
	}

	if d.history.Exists(root) {
		state.IsReturning = true
		if latest, ok := d.history.Read(root).Latest(); ok {
			prev := latest.OverallPct
			state.PreviousScore = &prev
		}
	}
	return state
}
