package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/gantryio/gantry/internal/report"
	"github.com/gantryio/gantry/internal/runner"
)

// StatusTool handles the gantry_status MCP tool. It reads the persisted
// results of the most recent sync without running any checks.
type StatusTool struct {
	runner *runner.Runner
}

// NewStatusTool creates a StatusTool.
func NewStatusTool(r *runner.Runner) *StatusTool {
	return &StatusTool{runner: r}
}

// Definition returns the MCP tool definition for registration.
func (t *StatusTool) Definition() mcp.Tool {
	return mcp.NewTool("gantry_status",
		mcp.WithDescription(
			"Report the completion state persisted by the most recent sync without "+
				"recomputing anything. Use gantry_sync to refresh first.",
		),
		mcp.WithString("project_root",
			mcp.Required(),
			mcp.Description("Absolute path of the managed project's root."),
		),
	)
}

// Handle returns the persisted completion report.
func (t *StatusTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	root := req.GetString("project_root", "")
	if root == "" {
		return mcp.NewToolResultError("'project_root' is required"), nil
	}

	p, err := t.runner.Status(ctx, root)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	out, err := report.Build(p).JSON()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(out), nil
}
