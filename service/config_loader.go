package service

import (
	"github.com/ludo-technologies/brainscan/domain"
	"github.com/ludo-technologies/brainscan/internal/config"
)

// ConfigOverrides carries command-line values that take precedence over the
// config file. Zero values leave the file's setting in place.
type ConfigOverrides struct {
	OutputFormat  string
	TopFixes      int
	ShowDetails   bool
	NoColor       bool
	NoHistory     bool
	TimeoutSecs   int
	MinSetup      int
	MinUsage      int
	MinFluency    int
	MinOverall    int
	ExtraExcludes []string
}

// ConfigurationLoaderImpl loads, merges and validates configuration
type ConfigurationLoaderImpl struct{}

// NewConfigurationLoader creates a new configuration loader service
func NewConfigurationLoader() *ConfigurationLoaderImpl {
	return &ConfigurationLoaderImpl{}
}

// Load reads the config at configPath, or discovers one from targetPath when
// configPath is empty, and validates it
func (c *ConfigurationLoaderImpl) Load(configPath, targetPath string) (*config.Config, error) {
	cfg, err := config.LoadConfigWithTarget(configPath, targetPath)
	if err != nil {
		return nil, domain.NewConfigError("failed to load configuration file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, domain.NewConfigError("invalid configuration", err)
	}
	return cfg, nil
}

// Merge applies overrides onto a copy of base and validates the result
func (c *ConfigurationLoaderImpl) Merge(base *config.Config, override ConfigOverrides) (*config.Config, error) {
	merged := *base
	merged.Scan.ExcludePatterns = append([]string{}, base.Scan.ExcludePatterns...)
	merged.Scan.DisabledLayers = append([]string{}, base.Scan.DisabledLayers...)

	if override.OutputFormat != "" {
		merged.Output.Format = override.OutputFormat
	}
	if override.TopFixes > 0 {
		merged.Scan.TopFixes = override.TopFixes
	}
	if override.ShowDetails {
		merged.Output.ShowDetails = true
	}
	if override.NoColor {
		merged.Output.Color = false
	}
	if override.NoHistory {
		merged.History.Enabled = false
	}
	if override.TimeoutSecs > 0 {
		merged.Performance.TimeoutSeconds = override.TimeoutSecs
	}
	if override.MinSetup > 0 {
		merged.Gate.MinSetup = override.MinSetup
	}
	if override.MinUsage > 0 {
		merged.Gate.MinUsage = override.MinUsage
	}
	if override.MinFluency > 0 {
		merged.Gate.MinFluency = override.MinFluency
	}
	if override.MinOverall > 0 {
		merged.Gate.MinOverall = override.MinOverall
	}
	merged.Scan.ExcludePatterns = append(merged.Scan.ExcludePatterns, override.ExtraExcludes...)

	if err := merged.Validate(); err != nil {
		return nil, domain.NewConfigError("invalid options", err)
	}
	return &merged, nil
}
