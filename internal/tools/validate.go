package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/gantryio/gantry/internal/report"
	"github.com/gantryio/gantry/internal/runner"
)

// ValidateTool handles the gantry_validate MCP tool: dependency graph
// legality, reporting every cycle found.
type ValidateTool struct {
	runner *runner.Runner
}

// NewValidateTool creates a ValidateTool.
func NewValidateTool(r *runner.Runner) *ValidateTool {
	return &ValidateTool{runner: r}
}

// Definition returns the MCP tool definition for registration.
func (t *ValidateTool) Definition() mcp.Tool {
	return mcp.NewTool("gantry_validate",
		mcp.WithDescription(
			"Validate the project's dependency graph. Reports every dependency cycle "+
				"— not just the first — so all offending edges can be fixed at once.",
		),
		mcp.WithString("project_root",
			mcp.Required(),
			mcp.Description("Absolute path of the managed project's root."),
		),
	)
}

// Handle returns the cycle report.
func (t *ValidateTool) Handle(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	root := req.GetString("project_root", "")
	if root == "" {
		return mcp.NewToolResultError("'project_root' is required"), nil
	}

	p, cycles, err := t.runner.Validate(root)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	out, err := report.BuildCycles(p, cycles).JSON()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(out), nil
}
