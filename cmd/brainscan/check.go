package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/ludo-technologies/brainscan/app"
	"github.com/ludo-technologies/brainscan/domain"
	"github.com/ludo-technologies/brainscan/service"
)

// CheckExitError is a custom error type for check command exit codes
type CheckExitError struct {
	Code    int
	Message string
}

func (e *CheckExitError) Error() string {
	return e.Message
}

var (
	checkMinSetup   int
	checkMinUsage   int
	checkMinFluency int
	checkMinOverall int
	checkJSON       bool
	checkSummary    bool
	checkRecord     bool
	checkConfigPath string
)

func checkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [path]",
		Short: "Fail CI when workspace scores fall below thresholds",
		Long: `Run a full scan and compare the scores against minimum thresholds.

Thresholds come from the gate section of the config file; flags override
them. A threshold of 0 is not enforced.

Exit codes:
  0 - All thresholds met
  1 - One or more thresholds violated
  2 - Scan error (invalid path, bad config, scan timeout)

Examples:
  brainscan check
  brainscan check --min-overall 70
  brainscan check --min-setup 80 --min-fluency 50 --json
  brainscan check --summary --verbose`,
		Args:          cobra.MaximumNArgs(1),
		RunE:          runCheck,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.Flags().IntVar(&checkMinSetup, "min-setup", 0,
		"Minimum setup score (0-100)")
	cmd.Flags().IntVar(&checkMinUsage, "min-usage", 0,
		"Minimum usage score (0-100)")
	cmd.Flags().IntVar(&checkMinFluency, "min-fluency", 0,
		"Minimum fluency score (0-100)")
	cmd.Flags().IntVar(&checkMinOverall, "min-overall", 0,
		"Minimum overall score (0-100)")
	cmd.Flags().BoolVar(&checkJSON, "json", false,
		"Output results as JSON")
	cmd.Flags().BoolVarP(&checkSummary, "summary", "s", false,
		"Show scores and top fixes")
	cmd.Flags().BoolVar(&checkRecord, "record", false,
		"Append this run to the history file")
	cmd.Flags().StringVarP(&checkConfigPath, "config", "c", "",
		"Path to config file")

	return cmd
}

func runCheck(cmd *cobra.Command, args []string) error {
	target := targetPath(args)

	cfg, err := loadConfig(checkConfigPath, target, service.ConfigOverrides{
		MinSetup:   checkMinSetup,
		MinUsage:   checkMinUsage,
		MinFluency: checkMinFluency,
		MinOverall: checkMinOverall,
		NoHistory:  !checkRecord,
	})
	if err != nil {
		return &CheckExitError{Code: service.GateExitError, Message: err.Error()}
	}

	uc, err := app.NewScanUseCaseFromConfig(cfg, logger, nil)
	if err != nil {
		return &CheckExitError{Code: service.GateExitError, Message: err.Error()}
	}

	report, err := uc.Execute(cmd.Context(), target, domain.ScanModeFull)
	if err != nil {
		return &CheckExitError{Code: service.GateExitError, Message: err.Error()}
	}

	result := service.NewGateEvaluator(cfg.Gate).Evaluate(report)

	out := cmd.OutOrStdout()
	if checkJSON {
		if err := service.WriteJSON(out, result); err != nil {
			return &CheckExitError{Code: service.GateExitError, Message: fmt.Sprintf("failed to encode JSON: %v", err)}
		}
	} else {
		outputCheckText(out, result)
	}

	if !result.Passed {
		return &CheckExitError{Code: result.ExitCode}
	}
	return nil
}

func outputCheckText(w io.Writer, result domain.GateResult) {
	if result.Passed {
		fmt.Fprintln(w, "PASS: All score thresholds met")
	} else {
		fmt.Fprintln(w, "FAIL: Score threshold(s) violated")
		fmt.Fprintf(w, "  Violations: %d\n", len(result.Violations))
		for _, v := range result.Violations {
			fmt.Fprintf(w, "  [ERROR] %s: %s\n", v.Rule, v.Message)
		}
	}

	if !checkSummary {
		return
	}

	s := result.Summary
	fmt.Fprintf(w, "\nSummary:\n")
	fmt.Fprintf(w, "  Brain state: %s\n", s.Maturity)
	fmt.Fprintf(w, "  Setup: %d  Usage: %d  Fluency: %d  Overall: %d\n", s.Setup, s.Usage, s.Fluency, s.Overall)
	if s.FailedLayers > 0 {
		fmt.Fprintf(w, "  Failed layers: %d\n", s.FailedLayers)
	}
	for i, fix := range s.TopFixes {
		fmt.Fprintf(w, "  %d. %s [%s]\n", i+1, fix.Title, fix.Impact)
	}
	fmt.Fprintf(w, "  Duration: %dms\n", result.Duration)
}
