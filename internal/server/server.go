// Package server wires the MCP surface and creates the server instance.
//
// This is the composition root: it creates concrete implementations and
// injects them into the tools that depend on them. No engine logic lives
// here — only wiring.
package server

import (
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/gantryio/gantry/internal/runner"
	"github.com/gantryio/gantry/internal/tools"
)

// Version is set at build time via ldflags.
var Version = "dev"

// New creates and configures the MCP server with all tools registered.
//
// The returned cleanup function flushes the logger and must be called on
// shutdown (typically via defer). It is always non-nil.
func New() (*server.MCPServer, func(), error) {
	// MCP runs over stdio; all logging must stay on stderr.
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	logger, err := cfg.Build()
	if err != nil {
		return nil, func() {}, err
	}
	cleanup := func() { _ = logger.Sync() }

	s := server.NewMCPServer(
		"gantry",
		Version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(serverInstructions()),
	)

	run := runner.New(logger)

	syncTool := tools.NewSyncTool(run)
	s.AddTool(syncTool.Definition(), syncTool.Handle)

	statusTool := tools.NewStatusTool(run)
	s.AddTool(statusTool.Definition(), statusTool.Handle)

	validateTool := tools.NewValidateTool(run)
	s.AddTool(validateTool.Definition(), validateTool.Handle)

	return s, cleanup, nil
}

// serverInstructions is the usage guidance handed to MCP clients.
func serverInstructions() string {
	return `Gantry tracks whether the components of a designed system are complete:
specification present and valid, implementation and tests present, tests
passing, dependencies satisfied, descendant components complete.

Workflow:
1. gantry_validate — check the dependency graph before relying on
   dependency requirements; cycles make them meaningless.
2. gantry_sync — run after editing project files. Pass changed component
   names to keep the pass incremental, or force=true after changing the
   requirement catalogue.
3. gantry_status — cheap read of the last sync's results.

All tools take project_root: the directory containing gantry.yaml.`
}
