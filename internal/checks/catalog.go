package checks

import (
	"github.com/ludo-technologies/brainscan/domain"
)

// Layer IDs. They are part of the persisted history and the pattern table,
// so renaming one is a breaking change.
const (
	LayerInstructions       = "setup.instructions"
	LayerSettings           = "setup.settings"
	LayerSkills             = "setup.skills"
	LayerHooks              = "setup.hooks"
	LayerAgents             = "setup.agents"
	LayerMemoryArchitecture = "setup.memory_architecture"

	LayerSessionLog     = "usage.session_log"
	LayerKnowledgeBase  = "usage.knowledge_base"
	LayerCommands       = "usage.commands"
	LayerRecentActivity = "usage.recent_activity"

	LayerContextEngineering = "fluency.context_engineering"
	LayerDelegation         = "fluency.delegation"
	LayerVerification       = "fluency.verification"
	LayerGuardrails         = "fluency.guardrails"
	LayerAutomation         = "fluency.automation"
)

// Options tunes how layers walk the workspace
type Options struct {
	ExcludePatterns []string
}

// Catalog returns every layer of every dimension
func Catalog(opts Options) []*Layer {
	layers := make([]*Layer, 0, 15)
	layers = append(layers, setupLayers()...)
	layers = append(layers, usageLayers()...)
	layers = append(layers, fluencyLayers()...)

	for _, l := range layers {
		l.excludes = opts.ExcludePatterns
	}
	return layers
}

// LayerChecks returns the catalog as engine-facing checks
func LayerChecks(opts Options) []domain.LayerCheck {
	layers := Catalog(opts)
	out := make([]domain.LayerCheck, 0, len(layers))
	for _, l := range layers {
		out = append(out, l)
	}
	return out
}

// TimeEstimates maps layer IDs to the rough effort of fixing them
func TimeEstimates() map[string]string {
	estimates := make(map[string]string)
	for _, l := range Catalog(Options{}) {
		estimates[l.id] = l.estimate
	}
	return estimates
}
