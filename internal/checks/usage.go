package checks

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/ludo-technologies/brainscan/domain"
	"github.com/ludo-technologies/brainscan/internal/constants"
)

const day = 24 * time.Hour

func usageLayers() []*Layer {
	return []*Layer{
		{
			id:        LayerSessionLog,
			name:      "Session Log",
			dimension: domain.DimensionUsage,
			maxPoints: 10,
			estimate:  "5 min/day",
			checks:    []checkFunc{checkMemoryRecency, checkMemoryVolume},
		},
		{
			id:        LayerKnowledgeBase,
			name:      "Knowledge Base",
			dimension: domain.DimensionUsage,
			maxPoints: 10,
			estimate:  "30 min",
			checks:    []checkFunc{checkKnowledgeNotes},
		},
		{
			id:        LayerCommands,
			name:      "Custom Commands",
			dimension: domain.DimensionUsage,
			maxPoints: 10,
			estimate:  "20 min",
			checks:    []checkFunc{checkCommandsDefined, checkCommandLibrary},
		},
		{
			id:        LayerRecentActivity,
			name:      "Recent Activity",
			dimension: domain.DimensionUsage,
			maxPoints: 5,
			estimate:  "10 min",
			checks:    []checkFunc{checkInstructionRecency},
		},
	}
}

func memoryFiles(ws *Workspace) []FileEntry {
	dir, ok := ws.MemoryDir()
	if !ok {
		return nil
	}
	files, _ := ws.ListFiles(dir, ".md")
	return files
}

func checkMemoryRecency(ws *Workspace) domain.CheckResult {
	const name = "Memory updated recently"
	files := memoryFiles(ws)
	if len(files) == 0 {
		return score(name, 0, 5, "No memory notes yet")
	}

	var newest time.Time
	for _, f := range files {
		if f.ModTime.After(newest) {
			newest = f.ModTime
		}
	}
	age := ws.Age(newest)
	points := 0
	switch {
	case age <= 7*day:
		points = 5
	case age <= 30*day:
		points = 2
	}
	return score(name, points, 5, fmt.Sprintf("Last memory update %d days ago", int(age/day)))
}

func checkMemoryVolume(ws *Workspace) domain.CheckResult {
	const name = "Memory volume"
	n := len(memoryFiles(ws))
	points := tiered(n, [2]int{10, 5}, [2]int{3, 3}, [2]int{1, 1})
	return score(name, points, 5, fmt.Sprintf("%d memory notes (10+ recommended)", n))
}

func checkKnowledgeNotes(ws *Workspace) domain.CheckResult {
	const name = "Knowledge notes"
	files, _ := ws.ListFiles(constants.KnowledgeDir, ".md")
	n := len(files)
	if n == 0 {
		return score(name, 0, 10, "Capture reusable knowledge under knowledge/")
	}
	return score(name, min(n*2, 10), 10, fmt.Sprintf("%d knowledge notes (5+ recommended)", n))
}

func commandFiles(ws *Workspace) []FileEntry {
	files, _ := ws.ListFiles(filepath.Join(constants.ConfigDir, constants.CommandsDir), ".md")
	return files
}

func checkCommandsDefined(ws *Workspace) domain.CheckResult {
	const name = "Commands defined"
	if n := len(commandFiles(ws)); n > 0 {
		return score(name, 5, 5, fmt.Sprintf("%d custom commands", n))
	}
	return score(name, 0, 5, "Add slash commands under .claude/commands/")
}

func checkCommandLibrary(ws *Workspace) domain.CheckResult {
	const name = "Command library"
	n := len(commandFiles(ws))
	points := tiered(n, [2]int{5, 5}, [2]int{2, 2})
	return score(name, points, 5, fmt.Sprintf("%d commands (5+ recommended)", n))
}

func checkInstructionRecency(ws *Workspace) domain.CheckResult {
	const name = "Instructions maintained"
	mod, ok := ws.ModTime(constants.InstructionFile)
	if !ok {
		return score(name, 0, 5, "No instruction file")
	}
	age := ws.Age(mod)
	points := 0
	switch {
	case age <= 30*day:
		points = 5
	case age <= 90*day:
		points = 2
	}
	return score(name, points, 5, fmt.Sprintf("%s last edited %d days ago", constants.InstructionFile, int(age/day)))
}
