package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ludo-technologies/brainscan/app"
	"github.com/ludo-technologies/brainscan/domain"
	"github.com/ludo-technologies/brainscan/internal/config"
	"github.com/ludo-technologies/brainscan/service"
)

var (
	scanQuick      bool
	scanFormat     string
	scanJSON       bool
	scanYAML       bool
	scanHTML       bool
	scanOutputPath string
	scanTopFixes   int
	scanNoHistory  bool
	scanConfigPath string
	scanDetails    bool
	scanNoColor    bool
	scanTimeout    int
	scanExcludes   []string
)

func scanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan [path]",
		Short: "Score an AI workspace",
		Long: `Score the workspace rooted at path (default: current directory).

A full scan runs every layer check, prints setup, usage and fluency scores,
context engineering patterns and the top fixes, and appends the run to
.brainscan/history.json. A quick scan only classifies the brain state.

Examples:
  brainscan scan
  brainscan scan ~/notes
  brainscan scan --quick
  brainscan scan --json -o report.json
  brainscan scan --html -o report.html
  brainscan scan --top 10 --details`,
		Args: cobra.MaximumNArgs(1),
		RunE: runScan,
	}

	cmd.Flags().BoolVarP(&scanQuick, "quick", "q", false,
		"Only detect the brain state; skip scoring and history")
	cmd.Flags().StringVarP(&scanFormat, "format", "f", "",
		"Output format: text, json, yaml, html (default from config)")
	cmd.Flags().BoolVar(&scanJSON, "json", false,
		"Output results as JSON (shorthand for --format json)")
	cmd.Flags().BoolVar(&scanYAML, "yaml", false,
		"Output results as YAML (shorthand for --format yaml)")
	cmd.Flags().BoolVar(&scanHTML, "html", false,
		"Write a standalone HTML report (shorthand for --format html)")
	cmd.Flags().StringVarP(&scanOutputPath, "output", "o", "",
		"Write the report to a file instead of stdout")
	cmd.Flags().IntVarP(&scanTopFixes, "top", "n", 0,
		"Number of ranked fixes to show (default from config)")
	cmd.Flags().BoolVar(&scanNoHistory, "no-history", false,
		"Do not append this run to the history file")
	cmd.Flags().StringVarP(&scanConfigPath, "config", "c", "",
		"Path to config file")
	cmd.Flags().BoolVarP(&scanDetails, "details", "d", false,
		"Show every check, not only layer totals")
	cmd.Flags().BoolVar(&scanNoColor, "no-color", false,
		"Disable colored output")
	cmd.Flags().IntVar(&scanTimeout, "timeout", 0,
		"Overall scan budget in seconds (default from config)")
	cmd.Flags().StringSliceVar(&scanExcludes, "exclude", nil,
		"Extra gitignore-style patterns to skip when counting files")

	return cmd
}

func runScan(cmd *cobra.Command, args []string) error {
	target := targetPath(args)

	format := resolveFormat(scanFormat, scanJSON, scanYAML)
	if scanHTML {
		format = string(domain.OutputFormatHTML)
	}

	cfg, err := loadConfig(scanConfigPath, target, service.ConfigOverrides{
		OutputFormat:  format,
		TopFixes:      scanTopFixes,
		ShowDetails:   scanDetails,
		NoColor:       scanNoColor,
		NoHistory:     scanNoHistory,
		TimeoutSecs:   scanTimeout,
		ExtraExcludes: scanExcludes,
	})
	if err != nil {
		return err
	}
	outFormat := domain.OutputFormat(cfg.Output.Format)

	mode := domain.ScanModeFull
	if scanQuick {
		mode = domain.ScanModeQuick
	}

	// Progress only for interactive text output to the terminal
	pm := service.NewProgressManager(outFormat == domain.OutputFormatText && scanOutputPath == "" && !scanQuick)
	defer pm.Close()

	uc, err := app.NewScanUseCaseFromConfig(cfg, logger, pm)
	if err != nil {
		return err
	}

	report, err := uc.Execute(cmd.Context(), target, mode)
	if err != nil {
		return err
	}
	pm.Close()

	useColor := cfg.Output.Color && scanOutputPath == "" && service.IsInteractiveEnvironment()
	formatter := service.NewOutputFormatter(useColor, cfg.Output.ShowDetails)

	return writeOutput(cmd.OutOrStdout(), scanOutputPath, func(w io.Writer) error {
		return formatter.WriteReport(report, outFormat, w)
	})
}

// targetPath returns the single positional path or the current directory
func targetPath(args []string) string {
	if len(args) == 0 {
		return "."
	}
	return args[0]
}

// resolveFormat applies the --json/--yaml shorthands over --format
func resolveFormat(format string, asJSON, asYAML bool) string {
	switch {
	case asJSON:
		return string(domain.OutputFormatJSON)
	case asYAML:
		return string(domain.OutputFormatYAML)
	}
	return format
}

// loadConfig discovers the config file from target and applies overrides
func loadConfig(configPath, target string, overrides service.ConfigOverrides) (*config.Config, error) {
	loader := service.NewConfigurationLoader()
	base, err := loader.Load(configPath, target)
	if err != nil {
		return nil, err
	}
	cfg, err := loader.Merge(base, overrides)
	if err != nil {
		return nil, err
	}
	logger.Debug("configuration loaded",
		zap.String("format", cfg.Output.Format),
		zap.Int("top_fixes", cfg.Scan.TopFixes),
		zap.Bool("history", cfg.History.Enabled))
	return cfg, nil
}

// writeOutput sends rendered output to path, or to stdout when path is empty
func writeOutput(stdout io.Writer, path string, render func(io.Writer) error) error {
	if path == "" {
		return render(stdout)
	}

	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			return fmt.Errorf("directory does not exist: %s", dir)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := render(f); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}

	displayPath := path
	if abs, err := filepath.Abs(path); err == nil {
		displayPath = abs
	}
	fmt.Fprintf(os.Stderr, "Report written to %s\n", displayPath)
	return nil
}
