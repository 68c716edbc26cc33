package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ludo-technologies/brainscan/internal/constants"
	"github.com/spf13/viper"
)

// Default scan settings
const (
	// DefaultTopFixes is how many ranked fixes a report carries
	DefaultTopFixes = 5

	// DefaultMinimalInstructionBytes is the size below which an instruction
	// file without a config directory counts as a minimal workspace
	DefaultMinimalInstructionBytes = 200

	// DefaultMaxGoroutines bounds concurrent layer scans
	DefaultMaxGoroutines = 8

	// DefaultTimeoutSeconds is the overall wall-clock budget for a full scan
	DefaultTimeoutSeconds = 60
)

// Config represents the main configuration structure
type Config struct {
	// Scan holds engine settings
	Scan ScanConfig `json:"scan" mapstructure:"scan" yaml:"scan"`

	// Performance holds concurrency and timeout settings
	Performance PerformanceConfig `json:"performance" mapstructure:"performance" yaml:"performance"`

	// History holds run-history settings
	History HistoryConfig `json:"history" mapstructure:"history" yaml:"history"`

	// Output holds output formatting configuration
	Output OutputConfig `json:"output" mapstructure:"output" yaml:"output"`

	// Gate holds the minimum scores enforced by the check command
	Gate GateConfig `json:"gate" mapstructure:"gate" yaml:"gate"`

	// AccessToken marks the user as a buyer when non-empty. Usually supplied
	// through BRAINSCAN_ACCESS_TOKEN rather than a config file.
	AccessToken string `json:"-" mapstructure:"access_token" yaml:"-"`
}

// ScanConfig holds scoring engine configuration
type ScanConfig struct {
	// TopFixes is the number of ranked fixes to keep
	TopFixes int `json:"top_fixes" mapstructure:"top_fixes" yaml:"top_fixes"`

	// MinimalInstructionBytes is the minimal-maturity size threshold
	MinimalInstructionBytes int64 `json:"minimal_instruction_bytes" mapstructure:"minimal_instruction_bytes" yaml:"minimal_instruction_bytes"`

	// DisabledLayers lists layer IDs to skip entirely
	DisabledLayers []string `json:"disabled_layers" mapstructure:"disabled_layers" yaml:"disabled_layers"`

	// ExcludePatterns are gitignore-style patterns skipped when walking the workspace
	ExcludePatterns []string `json:"exclude_patterns" mapstructure:"exclude_patterns" yaml:"exclude_patterns"`
}

// PerformanceConfig holds concurrency settings
type PerformanceConfig struct {
	// MaxGoroutines bounds how many layers are scanned at once
	MaxGoroutines int `json:"max_goroutines" mapstructure:"max_goroutines" yaml:"max_goroutines"`

	// TimeoutSeconds is the overall scan budget; 0 uses the default
	TimeoutSeconds int `json:"timeout_seconds" mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
}

// HistoryConfig holds run-history configuration
type HistoryConfig struct {
	// Enabled controls whether full scans are appended to the history file
	Enabled bool `json:"enabled" mapstructure:"enabled" yaml:"enabled"`
}

// OutputConfig holds configuration for output formatting
type OutputConfig struct {
	// Format specifies the output format: text, json, yaml, html
	Format string `json:"format" mapstructure:"format" yaml:"format"`

	// Color enables ANSI colours in text output
	Color bool `json:"color" mapstructure:"color" yaml:"color"`

	// ShowDetails prints every check, not only the layer totals
	ShowDetails bool `json:"show_details" mapstructure:"show_details" yaml:"show_details"`
}

// GateConfig holds CI thresholds; 0 disables a threshold
type GateConfig struct {
	MinSetup   int `json:"min_setup" mapstructure:"min_setup" yaml:"min_setup"`
	MinUsage   int `json:"min_usage" mapstructure:"min_usage" yaml:"min_usage"`
	MinFluency int `json:"min_fluency" mapstructure:"min_fluency" yaml:"min_fluency"`
	MinOverall int `json:"min_overall" mapstructure:"min_overall" yaml:"min_overall"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Scan: ScanConfig{
			TopFixes:                DefaultTopFixes,
			MinimalInstructionBytes: DefaultMinimalInstructionBytes,
			DisabledLayers:          []string{},
			ExcludePatterns: []string{
				".git/",
				"node_modules/",
				constants.HistoryDirName + "/",
			},
		},
		Performance: PerformanceConfig{
			MaxGoroutines:  DefaultMaxGoroutines,
			TimeoutSeconds: DefaultTimeoutSeconds,
		},
		History: HistoryConfig{
			Enabled: true,
		},
		Output: OutputConfig{
			Format:      "text",
			Color:       true,
			ShowDetails: false,
		},
		Gate: GateConfig{
			MinOverall: 50,
		},
	}
}

// HasAccessToken reports whether a buyer token was supplied
func (c *Config) HasAccessToken() bool {
	return strings.TrimSpace(c.AccessToken) != ""
}

// IsLayerDisabled reports whether the layer ID was switched off
func (c *Config) IsLayerDisabled(id string) bool {
	for _, disabled := range c.Scan.DisabledLayers {
		if disabled == id {
			return true
		}
	}
	return false
}

// LoadConfig loads configuration from file or returns default config
func LoadConfig(configPath string) (*Config, error) {
	return LoadConfigWithTarget(configPath, "")
}

// LoadConfigWithTarget loads configuration with target path context.
// When configPath is empty a config file is discovered from targetPath upward.
func LoadConfigWithTarget(configPath string, targetPath string) (*Config, error) {
	if configPath == "" {
		configPath = findDefaultConfig(targetPath)
	}
	return loadConfigFromFile(configPath)
}

// newViper creates an isolated viper instance with environment overrides
func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(constants.EnvVarPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Unmarshal only sees keys viper knows about; bind the env-overridable ones
	for _, key := range []string{
		"access_token",
		"scan.top_fixes",
		"scan.minimal_instruction_bytes",
		"performance.max_goroutines",
		"performance.timeout_seconds",
		"history.enabled",
		"output.format",
		"output.color",
	} {
		_ = v.BindEnv(key)
	}
	return v
}

// loadConfigFromFile reads and parses a configuration file.
// An empty path yields defaults plus environment overrides.
func loadConfigFromFile(configPath string) (*Config, error) {
	v := newViper()
	config := DefaultConfig()

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
		}
	}

	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// searchConfigInDirectory searches for configuration files in a specific directory
func searchConfigInDirectory(dir string, candidates []string) string {
	for _, candidate := range candidates {
		path := filepath.Join(dir, candidate)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// findDefaultConfig looks for default configuration files in common locations
// targetPath is the workspace being scanned
func findDefaultConfig(targetPath string) string {
	candidates := constants.ConfigFileCandidates

	if targetPath != "" {
		absPath, err := filepath.Abs(targetPath)
		if err == nil {
			info, err := os.Stat(absPath)
			if err == nil && !info.IsDir() {
				absPath = filepath.Dir(absPath)
			}

			volume := filepath.VolumeName(absPath)
			for dir := absPath; ; dir = filepath.Dir(dir) {
				if config := searchConfigInDirectory(dir, candidates); config != "" {
					return config
				}

				parent := filepath.Dir(dir)
				if parent == dir ||
					dir == volume ||
					(volume != "" && dir == volume+string(filepath.Separator)) {
					break
				}
			}
		}
	}

	// Fallback to current directory
	if config := searchConfigInDirectory(".", candidates); config != "" {
		return config
	}

	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		if config := searchConfigInDirectory(filepath.Join(xdgConfig, constants.ToolName), candidates); config != "" {
			return config
		}
	}

	if home, err := os.UserHomeDir(); err == nil {
		configDir := filepath.Join(home, ".config", constants.ToolName)
		if config := searchConfigInDirectory(configDir, candidates); config != "" {
			return config
		}
	}

	if envConfig := os.Getenv(constants.EnvVarPrefix + "_CONFIG"); envConfig != "" {
		if _, err := os.Stat(envConfig); err == nil {
			return envConfig
		}
	}

	return ""
}

// Validate validates the configuration values
func (c *Config) Validate() error {
	if c.Scan.TopFixes < 1 || c.Scan.TopFixes > 50 {
		return fmt.Errorf("scan.top_fixes must be between 1 and 50, got %d", c.Scan.TopFixes)
	}

	if c.Scan.MinimalInstructionBytes < 0 {
		return fmt.Errorf("scan.minimal_instruction_bytes must be >= 0, got %d", c.Scan.MinimalInstructionBytes)
	}

	if c.Performance.MaxGoroutines < 0 {
		return fmt.Errorf("performance.max_goroutines must be >= 0, got %d", c.Performance.MaxGoroutines)
	}

	if c.Performance.TimeoutSeconds < 0 {
		return fmt.Errorf("performance.timeout_seconds must be >= 0, got %d", c.Performance.TimeoutSeconds)
	}

	for name, v := range map[string]int{
		"gate.min_setup":   c.Gate.MinSetup,
		"gate.min_usage":   c.Gate.MinUsage,
		"gate.min_fluency": c.Gate.MinFluency,
		"gate.min_overall": c.Gate.MinOverall,
	} {
		if v < 0 || v > 100 {
			return fmt.Errorf("%s must be between 0 and 100, got %d", name, v)
		}
	}

	validFormats := map[string]bool{
		"text": true,
		"json": true,
		"yaml": true,
		"html": true,
	}

	if !validFormats[c.Output.Format] {
		return fmt.Errorf("invalid output.format '%s', must be one of: text, json, yaml, html", c.Output.Format)
	}

	return nil
}

// SaveConfig saves configuration to a YAML file
func SaveConfig(config *Config, path string) error {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("scan", config.Scan)
	v.Set("performance", config.Performance)
	v.Set("history", config.History)
	v.Set("output", config.Output)
	v.Set("gate", config.Gate)

	return v.WriteConfig()
}
