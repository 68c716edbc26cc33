package mcpserver

import (
	"bytes"
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"go.uber.org/zap"

	"github.com/ludo-technologies/brainscan/app"
	"github.com/ludo-technologies/brainscan/domain"
	"github.com/ludo-technologies/brainscan/internal/config"
	"github.com/ludo-technologies/brainscan/service"
)

// ScanTool handles the brainscan_scan MCP tool.
type ScanTool struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewScanTool creates a ScanTool
func NewScanTool(cfg *config.Config, logger *zap.Logger) *ScanTool {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScanTool{cfg: cfg, logger: logger}
}

// Definition returns the MCP tool definition for brainscan_scan.
func (t *ScanTool) Definition() mcp.Tool {
	return mcp.NewTool("brainscan_scan",
		mcp.WithDescription(
			"Run a full workspace audit: setup, usage and fluency scores, brain state, "+
				"context engineering patterns and the top ranked fixes. Records the run in history.",
		),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Absolute path of the workspace root to scan"),
		),
		mcp.WithNumber("top",
			mcp.Description("Number of ranked fixes to return (default from config)"),
		),
		mcp.WithString("format",
			mcp.Description("Result encoding: json (default) or text"),
			mcp.Enum("json", "text"),
		),
	)
}

// Handle processes the brainscan_scan tool call.
func (t *ScanTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return runScan(ctx, t.cfg, t.logger, req, domain.ScanModeFull)
}

// QuickTool handles the brainscan_quick MCP tool.
type QuickTool struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewQuickTool creates a QuickTool
func NewQuickTool(cfg *config.Config, logger *zap.Logger) *QuickTool {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &QuickTool{cfg: cfg, logger: logger}
}

// Definition returns the MCP tool definition for brainscan_quick.
func (t *QuickTool) Definition() mcp.Tool {
	return mcp.NewTool("brainscan_quick",
		mcp.WithDescription(
			"Classify workspace maturity from file presence only. No scores, no history write.",
		),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Absolute path of the workspace root to inspect"),
		),
		mcp.WithString("format",
			mcp.Description("Result encoding: json (default) or text"),
			mcp.Enum("json", "text"),
		),
	)
}

// Handle processes the brainscan_quick tool call.
func (t *QuickTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return runScan(ctx, t.cfg, t.logger, req, domain.ScanModeQuick)
}

func runScan(ctx context.Context, cfg *config.Config, logger *zap.Logger, req mcp.CallToolRequest, mode domain.ScanMode) (*mcp.CallToolResult, error) {
	path := req.GetString("path", "")
	if path == "" {
		return mcp.NewToolResultError("path is required"), nil
	}

	format, err := toolFormat(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	effective, err := service.NewConfigurationLoader().Merge(cfg, service.ConfigOverrides{
		TopFixes: intArg(req, "top", 0),
		NoColor:  true,
	})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	uc, err := app.NewScanUseCaseFromConfig(effective, logger, nil)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to build scanner: %v", err)), nil
	}

	report, err := uc.Execute(ctx, path, mode)
	if err != nil {
		logger.Debug("mcp scan failed", zap.String("path", path), zap.Error(err))
		return mcp.NewToolResultError(err.Error()), nil
	}

	var buf bytes.Buffer
	if err := service.NewOutputFormatter(false, true).WriteReport(report, format, &buf); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to render report: %v", err)), nil
	}
	return mcp.NewToolResultText(buf.String()), nil
}

// HistoryTool handles the brainscan_history MCP tool.
type HistoryTool struct {
	store *service.HistoryStore
}

// NewHistoryTool creates a HistoryTool
func NewHistoryTool(logger *zap.Logger) *HistoryTool {
	return &HistoryTool{store: service.NewHistoryStore(logger)}
}

// Definition returns the MCP tool definition for brainscan_history.
func (t *HistoryTool) Definition() mcp.Tool {
	return mcp.NewTool("brainscan_history",
		mcp.WithDescription(
			"Show recorded full-scan runs for a workspace with score deltas between consecutive runs.",
		),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Absolute path of the workspace root"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Only return the most recent N runs (default all)"),
		),
		mcp.WithString("format",
			mcp.Description("Result encoding: json (default) or text"),
			mcp.Enum("json", "text"),
		),
	)
}

// Handle processes the brainscan_history tool call.
func (t *HistoryTool) Handle(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path := req.GetString("path", "")
	if path == "" {
		return mcp.NewToolResultError("path is required"), nil
	}
	format, err := toolFormat(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	root, err := app.NewFileHelper().ResolveRoot(path)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	h := service.LimitHistory(t.store.Read(root), intArg(req, "limit", 0))

	var buf bytes.Buffer
	if err := service.NewOutputFormatter(false, false).WriteHistory(h, format, &buf); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to render history: %v", err)), nil
	}
	return mcp.NewToolResultText(buf.String()), nil
}

func toolFormat(req mcp.CallToolRequest) (domain.OutputFormat, error) {
	switch f := req.GetString("format", "json"); f {
	case "json", "":
		return domain.OutputFormatJSON, nil
	case "text":
		return domain.OutputFormatText, nil
	default:
		return "", fmt.Errorf("unsupported format %q", f)
	}
}

// intArg extracts an integer argument; JSON numbers arrive as float64
func intArg(req mcp.CallToolRequest, key string, defaultVal int) int {
	v, ok := req.GetArguments()[key].(float64)
	if !ok {
		return defaultVal
	}
	return int(v)
}
