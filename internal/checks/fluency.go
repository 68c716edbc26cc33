package checks

import (
	"fmt"
	"path/filepath"
	"regexp"

	"github.com/ludo-technologies/brainscan/domain"
	"github.com/ludo-technologies/brainscan/internal/constants"
)

var (
	importPattern     = regexp.MustCompile(`(?m)(^|\s)@[\w./~-]+\.md\b|\]\([^)\s]+\.md\)`)
	conventionPattern = regexp.MustCompile(`(?im)^#{1,3}\s+.*\b(conventions?|style|architecture|structure)\b`)
	delegationPattern = regexp.MustCompile(`(?i)\b(sub-?agents?|delegate|delegation)\b`)
	verifyPattern     = regexp.MustCompile(`(?i)\b(go test|npm test|pytest|make test|lint(er)?|typecheck|type-check|run the tests)\b`)
	rulePattern       = regexp.MustCompile(`(?im)^\s*[-*]?\s*.*\b(never|do not|don't|must not)\b`)
)

func fluencyLayers() []*Layer {
	return []*Layer{
		{
			id:        LayerContextEngineering,
			name:      "Context Engineering",
			dimension: domain.DimensionFluency,
			maxPoints: 10,
			estimate:  "20 min",
			checks:    []checkFunc{checkContextImports, checkConventionsDocumented},
		},
		{
			id:        LayerDelegation,
			name:      "Delegation",
			dimension: domain.DimensionFluency,
			maxPoints: 5,
			estimate:  "15 min",
			checks:    []checkFunc{checkDelegation},
		},
		{
			id:        LayerVerification,
			name:      "Verification",
			dimension: domain.DimensionFluency,
			maxPoints: 5,
			estimate:  "10 min",
			checks:    []checkFunc{checkVerificationSteps},
		},
		{
			id:        LayerGuardrails,
			name:      "Guardrails",
			dimension: domain.DimensionFluency,
			maxPoints: 10,
			estimate:  "15 min",
			checks:    []checkFunc{checkDenyRules, checkWrittenRules},
		},
		{
			id:        LayerAutomation,
			name:      "Automation",
			dimension: domain.DimensionFluency,
			maxPoints: 5,
			estimate:  "30 min",
			checks:    []checkFunc{checkAutomation},
		},
	}
}

func checkContextImports(ws *Workspace) domain.CheckResult {
	const name = "Context imports"
	n := len(importPattern.FindAllString(ws.ReadText(constants.InstructionFile), -1))
	points := tiered(n, [2]int{3, 5}, [2]int{1, 3})
	return score(name, points, 5, fmt.Sprintf("%d linked context files (3+ recommended)", n))
}

func checkConventionsDocumented(ws *Workspace) domain.CheckResult {
	const name = "Conventions documented"
	if conventionPattern.MatchString(ws.ReadText(constants.InstructionFile)) {
		return score(name, 5, 5, "Conventions section found")
	}
	return score(name, 0, 5, "Add a conventions or architecture section to "+constants.InstructionFile)
}

func checkDelegation(ws *Workspace) domain.CheckResult {
	const name = "Delegation to subagents"
	mentions := delegationPattern.MatchString(ws.ReadText(constants.InstructionFile))
	agents, _ := ws.ListFiles(filepath.Join(constants.ConfigDir, constants.AgentsDir), ".md")

	switch {
	case mentions && len(agents) > 0:
		return score(name, 5, 5, "Instructions delegate to defined subagents")
	case mentions || len(agents) > 0:
		return score(name, 2, 5, "Define subagents and tell the model when to use them")
	default:
		return score(name, 0, 5, "No delegation set up")
	}
}

func checkVerificationSteps(ws *Workspace) domain.CheckResult {
	const name = "Verification steps"
	seen := make(map[string]bool)
	for _, m := range verifyPattern.FindAllString(ws.ReadText(constants.InstructionFile), -1) {
		seen[m] = true
	}
	n := len(seen)
	points := tiered(n, [2]int{2, 5}, [2]int{1, 3})
	return score(name, points, 5, fmt.Sprintf("%d distinct verification commands mentioned", n))
}

func checkDenyRules(ws *Workspace) domain.CheckResult {
	const name = "Deny rules"
	settings, ok := ws.ReadJSON(constants.ConfigDir, constants.SettingsFile)
	if !ok {
		return score(name, 0, 5, "No settings to hold deny rules")
	}
	perms, _ := settings["permissions"].(map[string]any)
	if n := len(asList(perms["deny"])); n > 0 {
		return score(name, 5, 5, fmt.Sprintf("%d deny rules", n))
	}
	return score(name, 0, 5, "Add permissions.deny rules for destructive commands")
}

func checkWrittenRules(ws *Workspace) domain.CheckResult {
	const name = "Written rules"
	n := len(rulePattern.FindAllString(ws.ReadText(constants.InstructionFile), -1))
	points := tiered(n, [2]int{3, 5}, [2]int{1, 2})
	return score(name, points, 5, fmt.Sprintf("%d explicit never/do-not rules", n))
}

func checkAutomation(ws *Workspace) domain.CheckResult {
	const name = "Automation"
	hooks := ws.HooksConfigured()
	commands := len(commandFiles(ws)) > 0

	switch {
	case hooks && commands:
		return score(name, 5, 5, "Hooks and commands automate routine work")
	case hooks || commands:
		return score(name, 2, 5, "Combine hooks with commands")
	default:
		return score(name, 0, 5, "No automation configured")
	}
}
