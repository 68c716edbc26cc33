package checks

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ludo-technologies/brainscan/domain"
	"github.com/ludo-technologies/brainscan/internal/constants"
)

var headingPattern = regexp.MustCompile(`(?m)^#{1,3}\s+\S`)

func setupLayers() []*Layer {
	return []*Layer{
		{
			id:        LayerInstructions,
			name:      "Instruction File",
			dimension: domain.DimensionSetup,
			maxPoints: 15,
			estimate:  "15 min",
			checks:    []checkFunc{checkInstructionPresent, checkInstructionSubstance, checkInstructionStructure},
		},
		{
			id:        LayerSettings,
			name:      "Settings",
			dimension: domain.DimensionSetup,
			maxPoints: 10,
			estimate:  "10 min",
			checks:    []checkFunc{checkSettingsValid, checkPermissionsConfigured},
		},
		{
			id:        LayerSkills,
			name:      "Skills",
			dimension: domain.DimensionSetup,
			maxPoints: 10,
			estimate:  "30 min",
			checks:    []checkFunc{checkSkillsDefined, checkSkillFrontmatter},
		},
		{
			id:        LayerHooks,
			name:      "Hooks",
			dimension: domain.DimensionSetup,
			maxPoints: 10,
			estimate:  "20 min",
			checks:    []checkFunc{checkHooksConfigured, checkHookScriptsExecutable},
		},
		{
			id:        LayerAgents,
			name:      "Subagents",
			dimension: domain.DimensionSetup,
			maxPoints: 5,
			estimate:  "20 min",
			checks:    []checkFunc{checkAgentsDefined},
		},
		{
			id:        LayerMemoryArchitecture,
			name:      "Memory Architecture",
			dimension: domain.DimensionSetup,
			maxPoints: 10,
			estimate:  "15 min",
			checks:    []checkFunc{checkMemoryDirectory, checkMemoryIndex},
		},
	}
}

func checkInstructionPresent(ws *Workspace) domain.CheckResult {
	const name = "Instruction file present"
	if ws.IsFile(constants.InstructionFile) {
		return score(name, 5, 5, constants.InstructionFile+" found")
	}
	return score(name, 0, 5, "Create "+constants.InstructionFile+" at the workspace root")
}

func checkInstructionSubstance(ws *Workspace) domain.CheckResult {
	const name = "Instruction file substance"
	size := ws.FileSize(constants.InstructionFile)
	points := 0
	switch {
	case size >= 1500:
		points = 5
	case size >= 500:
		points = 3
	case size > 0:
		points = 1
	}
	if size < 0 {
		return score(name, 0, 5, "No instruction file to measure")
	}
	return score(name, points, 5, fmt.Sprintf("%d bytes of instructions (1500+ recommended)", size))
}

func checkInstructionStructure(ws *Workspace) domain.CheckResult {
	const name = "Instruction file structure"
	text := ws.ReadText(constants.InstructionFile)
	headings := len(headingPattern.FindAllString(text, -1))
	points := tiered(headings, [2]int{5, 5}, [2]int{2, 3})
	return score(name, points, 5, fmt.Sprintf("%d section headings (5+ recommended)", headings))
}

func checkSettingsValid(ws *Workspace) domain.CheckResult {
	const name = "Settings file valid"
	if !ws.IsFile(constants.ConfigDir, constants.SettingsFile) {
		return score(name, 0, 5, "Add .claude/settings.json")
	}
	if _, ok := ws.ReadJSON(constants.ConfigDir, constants.SettingsFile); !ok {
		return score(name, 0, 5, ".claude/settings.json is not a valid JSON object")
	}
	return score(name, 5, 5, ".claude/settings.json parses")
}

func checkPermissionsConfigured(ws *Workspace) domain.CheckResult {
	const name = "Permissions configured"
	settings, ok := ws.ReadJSON(constants.ConfigDir, constants.SettingsFile)
	if !ok {
		return score(name, 0, 5, "No readable settings to inspect")
	}
	perms, ok := settings["permissions"].(map[string]any)
	if !ok {
		return score(name, 0, 5, "Define a permissions block with allow/deny rules")
	}
	rules := len(asList(perms["allow"])) + len(asList(perms["deny"]))
	if rules == 0 {
		return score(name, 2, 5, "Permissions block is empty")
	}
	return score(name, 5, 5, fmt.Sprintf("%d permission rules", rules))
}

// skillFrontmatter is the YAML header expected at the top of SKILL.md
type skillFrontmatter struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

func skillFiles(ws *Workspace) []FileEntry {
	files, _ := ws.ListFiles(filepath.Join(constants.ConfigDir, constants.SkillsDir), constants.SkillFile)
	return files
}

func checkSkillsDefined(ws *Workspace) domain.CheckResult {
	const name = "Skills defined"
	n := len(skillFiles(ws))
	points := tiered(n, [2]int{3, 5}, [2]int{1, 3})
	if n == 0 {
		return score(name, 0, 5, "Add skills under .claude/skills/<name>/SKILL.md")
	}
	return score(name, points, 5, fmt.Sprintf("%d skills (3+ recommended)", n))
}

func checkSkillFrontmatter(ws *Workspace) domain.CheckResult {
	const name = "Skill frontmatter"
	files := skillFiles(ws)
	if len(files) == 0 {
		return score(name, 0, 5, "No skills to validate")
	}

	valid := 0
	for _, f := range files {
		if _, ok := parseFrontmatter(ws.ReadText(f.RelPath)); ok {
			valid++
		}
	}
	points := domain.RoundHalfUp(float64(valid) * 5 / float64(len(files)))
	return score(name, points, 5, fmt.Sprintf("%d of %d skills declare name and description", valid, len(files)))
}

// parseFrontmatter extracts a YAML header delimited by --- lines
func parseFrontmatter(text string) (skillFrontmatter, bool) {
	var fm skillFrontmatter
	text = strings.TrimLeft(text, "\ufeff")
	if !strings.HasPrefix(text, "---") {
		return fm, false
	}
	rest := strings.TrimPrefix(text, "---")
	end := strings.Index(rest, "\n---")
	if end < 0 {
		return fm, false
	}
	if err := yaml.Unmarshal([]byte(rest[:end]), &fm); err != nil {
		return fm, false
	}
	return fm, strings.TrimSpace(fm.Name) != "" && strings.TrimSpace(fm.Description) != ""
}

func checkHooksConfigured(ws *Workspace) domain.CheckResult {
	const name = "Hooks configured"
	if ws.HooksConfigured() {
		return score(name, 5, 5, "Hooks are configured")
	}
	return score(name, 0, 5, "Configure hooks in .claude/settings.json or .claude/hooks/")
}

func checkHookScriptsExecutable(ws *Workspace) domain.CheckResult {
	const name = "Hook scripts executable"
	files, _ := ws.ListFiles(filepath.Join(constants.ConfigDir, constants.HooksDir), "")
	if len(files) == 0 {
		return score(name, 0, 5, "No hook scripts in .claude/hooks/")
	}
	executable := 0
	for _, f := range files {
		if f.Mode.Perm()&0o111 != 0 {
			executable++
		}
	}
	points := tiered(executable, [2]int{len(files), 5}, [2]int{1, 2})
	return score(name, points, 5, fmt.Sprintf("%d of %d hook scripts are executable", executable, len(files)))
}

func checkAgentsDefined(ws *Workspace) domain.CheckResult {
	const name = "Subagents defined"
	files, _ := ws.ListFiles(filepath.Join(constants.ConfigDir, constants.AgentsDir), ".md")
	n := len(files)
	if n == 0 {
		return score(name, 0, 5, "Define subagents under .claude/agents/")
	}
	return score(name, tiered(n, [2]int{2, 5}, [2]int{1, 3}), 5, fmt.Sprintf("%d subagents", n))
}

func checkMemoryDirectory(ws *Workspace) domain.CheckResult {
	const name = "Memory directory"
	if dir, ok := ws.MemoryDir(); ok {
		return score(name, 5, 5, dir+"/ exists")
	}
	return score(name, 0, 5, "Create a memory/ directory for session notes")
}

func checkMemoryIndex(ws *Workspace) domain.CheckResult {
	const name = "Memory index"
	dir, ok := ws.MemoryDir()
	if !ok {
		return score(name, 0, 5, "No memory directory")
	}
	if ws.IsFile(dir, constants.MemoryIndexFile) {
		return score(name, 5, 5, constants.MemoryIndexFile+" indexes the memory directory")
	}
	return score(name, 0, 5, "Add "+constants.MemoryIndexFile+" to index memory files")
}

func asList(v any) []any {
	list, _ := v.([]any)
	return list
}
