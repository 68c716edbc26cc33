package constants

// Tool name and related constants
const (
	// ToolName is the name of this tool
	ToolName = "brainscan"

	// ConfigFileName is the default config file name
	ConfigFileName = "brainscan.yaml"

	// EnvVarPrefix is the prefix for environment variables
	EnvVarPrefix = "BRAINSCAN"
)

// ConfigFileCandidates lists config file names in order of preference
var ConfigFileCandidates = []string{
	"brainscan.yaml",
	"brainscan.yml",
	".brainscan.yaml",
	".brainscan.yml",
	"brainscan.json",
	".brainscan.toml",
}

// Workspace layout the detector and the check catalog look at
const (
	InstructionFile = "CLAUDE.md"
	ConfigDir       = ".claude"
	MemoryDir       = "memory"
	KnowledgeDir    = "knowledge"
	SkillsDir       = "skills"
	CommandsDir     = "commands"
	AgentsDir       = "agents"
	HooksDir        = "hooks"
	HooksFile       = "hooks.json"
	SettingsFile    = "settings.json"
	MemoryIndexFile = "MEMORY.md"
	SkillFile       = "SKILL.md"
	GitignoreFile   = ".gitignore"
)

// Run history location, relative to the scanned root
const (
	HistoryDirName  = ".brainscan"
	HistoryFileName = "history.json"
)

// Output format constants
const (
	OutputFormatText = "text"
	OutputFormatJSON = "json"
	OutputFormatYAML = "yaml"
)
