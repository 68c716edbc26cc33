package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ludo-technologies/brainscan/internal/mcpserver"
	"github.com/ludo-technologies/brainscan/service"
)

func serveCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run brainscan as an MCP server over stdio",
		Long: `Run brainscan as a Model Context Protocol server on stdin/stdout so an AI
assistant can audit its own workspace.

Tools: brainscan_scan, brainscan_quick, brainscan_history.

Example .mcp.json entry:
  {"mcpServers": {"brainscan": {"command": "brainscan", "args": ["serve"]}}}`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath, "", service.ConfigOverrides{})
			if err != nil {
				return err
			}
			logger.Debug("starting MCP server", zap.String("transport", "stdio"))
			return mcpserver.Serve(cfg, logger)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to config file")
	return cmd
}
