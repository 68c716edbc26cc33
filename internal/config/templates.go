package config

import (
	"strconv"
	"strings"
)

// WorkspaceType represents the kind of AI workspace being audited
type WorkspaceType string

const (
	WorkspaceTypePersonal WorkspaceType = "personal"
	WorkspaceTypeTeam     WorkspaceType = "team"
	WorkspaceTypeMonorepo WorkspaceType = "monorepo"
)

// Strictness represents how demanding the CI gate is
type Strictness string

const (
	StrictnessRelaxed  Strictness = "relaxed"
	StrictnessStandard Strictness = "standard"
	StrictnessStrict   Strictness = "strict"
)

// WorkspacePreset holds walker settings for a workspace type
type WorkspacePreset struct {
	ExcludePatterns []string
}

// StrictnessPreset holds gate thresholds for a strictness level
type StrictnessPreset struct {
	TopFixes   int
	MinSetup   int
	MinUsage   int
	MinFluency int
	MinOverall int
}

// GetWorkspacePresets returns presets for different workspace types
func GetWorkspacePresets() map[WorkspaceType]WorkspacePreset {
	return map[WorkspaceType]WorkspacePreset{
		WorkspaceTypePersonal: {
			ExcludePatterns: []string{".git/", ".brainscan/"},
		},
		WorkspaceTypeTeam: {
			ExcludePatterns: []string{".git/", ".brainscan/", "node_modules/", "vendor/"},
		},
		WorkspaceTypeMonorepo: {
			ExcludePatterns: []string{
				".git/",
				".brainscan/",
				"node_modules/",
				"vendor/",
				"dist/",
				"build/",
				"**/testdata/",
			},
		},
	}
}

// GetStrictnessPresets returns presets for different strictness levels
func GetStrictnessPresets() map[Strictness]StrictnessPreset {
	return map[Strictness]StrictnessPreset{
		StrictnessRelaxed: {
			TopFixes:   3,
			MinOverall: 30,
		},
		StrictnessStandard: {
			TopFixes:   5,
			MinOverall: 50,
		},
		StrictnessStrict: {
			TopFixes:   10,
			MinSetup:   70,
			MinUsage:   50,
			MinFluency: 50,
			MinOverall: 70,
		},
	}
}

// GetFullConfigTemplate returns the documented config template as YAML
func GetFullConfigTemplate(workspaceType WorkspaceType, strictness Strictness) string {
	preset := GetWorkspacePresets()[workspaceType]
	strict := GetStrictnessPresets()[strictness]

	return `# brainscan configuration
# Workspace type: ` + string(workspaceType) + `, strictness: ` + string(strictness) + `

# ============================================================================
# SCAN
# ============================================================================
scan:
  # Number of ranked fixes shown in a report
  top_fixes: ` + strconv.Itoa(strict.TopFixes) + `

  # An instruction file smaller than this (bytes) with no .claude directory
  # is classified as a minimal workspace
  minimal_instruction_bytes: ` + strconv.Itoa(DefaultMinimalInstructionBytes) + `

  # Layer IDs to skip entirely, e.g. ["usage.recent_activity"]
  disabled_layers: []

  # gitignore-style patterns skipped when counting workspace files
  exclude_patterns:
` + formatYAMLList(preset.ExcludePatterns) + `

# ============================================================================
# PERFORMANCE
# ============================================================================
performance:
  # Maximum layers scanned concurrently (0 = default)
  max_goroutines: ` + strconv.Itoa(DefaultMaxGoroutines) + `

  # Overall scan budget in seconds; the whole scan fails when exceeded
  timeout_seconds: ` + strconv.Itoa(DefaultTimeoutSeconds) + `

# ============================================================================
# HISTORY
# ============================================================================
history:
  # Append each full scan to .brainscan/history.json (last 20 runs kept)
  enabled: true

# ============================================================================
# OUTPUT
# ============================================================================
output:
  # Output format: "text", "json", "yaml"
  format: text

  # Use colors in terminal output (disable for CI logs)
  color: true

  # Print every check instead of layer totals only
  show_details: false

# ============================================================================
# CI GATE (brainscan check)
# ============================================================================
# Minimum normalized scores (0-100); 0 disables a threshold
gate:
  min_setup: ` + strconv.Itoa(strict.MinSetup) + `
  min_usage: ` + strconv.Itoa(strict.MinUsage) + `
  min_fluency: ` + strconv.Itoa(strict.MinFluency) + `
  min_overall: ` + strconv.Itoa(strict.MinOverall) + `
`
}

// GetMinimalConfigTemplate returns a minimal config template
func GetMinimalConfigTemplate() string {
	return `# brainscan configuration (minimal)
scan:
  top_fixes: 5

output:
  format: text

gate:
  min_overall: 50
`
}

// formatYAMLList formats a string slice as an indented YAML block sequence
func formatYAMLList(items []string) string {
	if len(items) == 0 {
		return "    []"
	}

	lines := make([]string, 0, len(items))
	for _, item := range items {
		lines = append(lines, `    - "`+item+`"`)
	}
	return strings.Join(lines, "\n")
}
