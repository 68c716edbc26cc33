// Package mcpserver exposes the scoring engine as MCP tools over stdio.
//
// Each tool is a struct holding its dependencies, with Definition returning
// the mcp.Tool schema and Handle serving calls. Tool failures are reported as
// error results rather than protocol errors so the calling agent can read them.
package mcpserver

import (
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/ludo-technologies/brainscan/internal/config"
	"github.com/ludo-technologies/brainscan/internal/constants"
	"github.com/ludo-technologies/brainscan/internal/version"
)

// New creates the MCP server with every brainscan tool registered
func New(cfg *config.Config, logger *zap.Logger) *server.MCPServer {
	if logger == nil {
		logger = zap.NewNop()
	}

	s := server.NewMCPServer(
		constants.ToolName,
		version.GetVersion(),
		server.WithToolCapabilities(false),
		server.WithRecovery(),
		server.WithInstructions(instructions),
	)

	scan := NewScanTool(cfg, logger)
	s.AddTool(scan.Definition(), scan.Handle)

	quick := NewQuickTool(cfg, logger)
	s.AddTool(quick.Definition(), quick.Handle)

	history := NewHistoryTool(logger)
	s.AddTool(history.Definition(), history.Handle)

	return s
}

// Serve runs the server on stdin/stdout until the client disconnects
func Serve(cfg *config.Config, logger *zap.Logger) error {
	return server.ServeStdio(New(cfg, logger))
}

const instructions = `brainscan audits an AI-assistant workspace (CLAUDE.md, .claude/, memory/, knowledge/).

Use brainscan_quick for a cheap maturity check, brainscan_scan for full
setup/usage/fluency scores with ranked fixes, and brainscan_history to see how
scores moved across previous full scans.`
