package main

import (
	"github.com/spf13/cobra"

	"github.com/ludo-technologies/brainscan/app"
	"github.com/ludo-technologies/brainscan/domain"
	"github.com/ludo-technologies/brainscan/service"
)

var (
	historyJSON  bool
	historyYAML  bool
	historyLimit int
)

func historyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history [path]",
		Short: "Show recorded scan runs and score changes",
		Long: `Show the full-scan runs recorded in .brainscan/history.json together with
the score change between consecutive runs. Runs recorded by a different
brainscan version are marked because their catalogs may differ.

Examples:
  brainscan history
  brainscan history --limit 5
  brainscan history --json`,
		Args: cobra.MaximumNArgs(1),
		RunE: runHistory,
	}

	cmd.Flags().BoolVar(&historyJSON, "json", false, "Output history as JSON")
	cmd.Flags().BoolVar(&historyYAML, "yaml", false, "Output history as YAML")
	cmd.Flags().IntVarP(&historyLimit, "limit", "n", 0, "Only show the most recent N runs")

	return cmd
}

func runHistory(cmd *cobra.Command, args []string) error {
	root, err := app.NewFileHelper().ResolveRoot(targetPath(args))
	if err != nil {
		return err
	}

	format := domain.OutputFormat(resolveFormat(string(domain.OutputFormatText), historyJSON, historyYAML))
	h := service.LimitHistory(service.NewHistoryStore(logger).Read(root), historyLimit)

	useColor := format == domain.OutputFormatText && service.IsInteractiveEnvironment()
	return service.NewOutputFormatter(useColor, false).WriteHistory(h, format, cmd.OutOrStdout())
}
