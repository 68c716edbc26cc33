package service

import (
	"github.com/ludo-technologies/brainscan/domain"
	"github.com/ludo-technologies/brainscan/internal/checks"
)

// PatternDefinition names a cross-cutting pattern and the layers feeding it
type PatternDefinition struct {
	ID     string
	Name   string
	Layers []string
}

// DefaultPatterns is the context-engineering pattern table, keyed by layer ID.
// Output order follows this table.
var DefaultPatterns = []PatternDefinition{
	{
		ID:     "compounding-memory",
		Name:   "Compounding Memory",
		Layers: []string{checks.LayerMemoryArchitecture, checks.LayerSessionLog, checks.LayerKnowledgeBase},
	},
	{
		ID:     "context-engineering",
		Name:   "Context Engineering",
		Layers: []string{checks.LayerInstructions, checks.LayerContextEngineering},
	},
	{
		ID:     "skill-library",
		Name:   "Skill Library",
		Layers: []string{checks.LayerSkills, checks.LayerCommands},
	},
	{
		ID:     "automation",
		Name:   "Automation",
		Layers: []string{checks.LayerHooks, checks.LayerAutomation, checks.LayerCommands},
	},
	{
		ID:     "delegation",
		Name:   "Delegation",
		Layers: []string{checks.LayerAgents, checks.LayerDelegation},
	},
	{
		ID:     "guardrails",
		Name:   "Guardrails",
		Layers: []string{checks.LayerSettings, checks.LayerGuardrails},
	},
	{
		ID:     "feedback-loops",
		Name:   "Feedback Loops",
		Layers: []string{checks.LayerVerification, checks.LayerRecentActivity, checks.LayerSessionLog},
	},
}

// PatternMapper folds layer scores into pattern scores
type PatternMapper struct {
	patterns []PatternDefinition
}

// NewPatternMapper creates a mapper over the given table, or DefaultPatterns
// when none is given
func NewPatternMapper(patterns ...PatternDefinition) *PatternMapper {
	if len(patterns) == 0 {
		patterns = DefaultPatterns
	}
	return &PatternMapper{patterns: patterns}
}

// Map sums the points of every layer assigned to each pattern across all
// dimensions. Patterns whose layers carry no budget are left out.
func (m *PatternMapper) Map(dims ...domain.Dimension) []domain.Pattern {
	byID := make(map[string]domain.LayerResult)
	for _, dim := range dims {
		for _, layer := range dim.Layers {
			byID[layer.ID] = layer
		}
	}

	out := make([]domain.Pattern, 0, len(m.patterns))
	for _, p := range m.patterns {
		points, budget := 0, 0
		for _, id := range p.Layers {
			layer, ok := byID[id]
			if !ok {
				continue
			}
			points += layer.Points
			budget += layer.MaxPoints
		}
		if budget == 0 {
			continue
		}
		out = append(out, domain.Pattern{
			ID:         p.ID,
			Name:       p.Name,
			Score:      points,
			MaxScore:   budget,
			Percentage: domain.NormalizeScore(points, budget),
		})
	}
	return out
}
