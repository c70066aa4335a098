// Package tools implements the MCP tool handlers exposing the sync engine
// to AI coding tools.
//
// Each tool is a struct that receives its dependencies and returns a
// handler compatible with mcp-go's CallToolRequest signature. Tools stay
// thin: project wiring lives in the runner, result shaping in report.
package tools

import (
	"context"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/gantryio/gantry/internal/report"
	"github.com/gantryio/gantry/internal/runner"
)

// SyncTool handles the gantry_sync MCP tool.
type SyncTool struct {
	runner *runner.Runner
}

// NewSyncTool creates a SyncTool.
func NewSyncTool(r *runner.Runner) *SyncTool {
	return &SyncTool{runner: r}
}

// Definition returns the MCP tool definition for registration.
func (t *SyncTool) Definition() mcp.Tool {
	return mcp.NewTool("gantry_sync",
		mcp.WithDescription(
			"Run a requirement synchronization pass for the project. Refreshes every "+
				"component's file and test status, recomputes requirements for affected "+
				"components, and returns the full completion report as JSON.",
		),
		mcp.WithString("project_root",
			mcp.Required(),
			mcp.Description("Absolute path of the managed project's root (the directory containing gantry.yaml)."),
		),
		mcp.WithBoolean("force",
			mcp.Description("Clear and recompute every requirement instead of only the affected set."),
		),
		mcp.WithString("changed",
			mcp.Description("Comma-separated component names or ids known to have changed. "+
				"Optional — omit to rely on status-derived changes only."),
		),
	)
}

// Handle runs the sync and returns the completion report.
func (t *SyncTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	root := req.GetString("project_root", "")
	if root == "" {
		return mcp.NewToolResultError("'project_root' is required"), nil
	}
	force := req.GetBool("force", false)

	var changed []string
	if raw := req.GetString("changed", ""); raw != "" {
		for _, ref := range strings.Split(raw, ",") {
			if ref = strings.TrimSpace(ref); ref != "" {
				changed = append(changed, ref)
			}
		}
	}

	p, err := t.runner.Sync(ctx, root, force, changed)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	out, err := report.Build(p).JSON()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(out), nil
}
