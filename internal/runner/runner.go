// Package runner wires the engine to a concrete project on disk: it loads
// the definition, opens the requirement store, gathers the file listing
// and test report, and invokes the sync. Both the CLI and the MCP tools
// drive syncs through this package so their semantics cannot drift.
package runner

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/gantryio/gantry/internal/docval"
	"github.com/gantryio/gantry/internal/engine"
	"github.com/gantryio/gantry/internal/environ"
	"github.com/gantryio/gantry/internal/graph"
	"github.com/gantryio/gantry/internal/project"
	"github.com/gantryio/gantry/internal/registry"
	"github.com/gantryio/gantry/internal/store"
)

// CatalogueFile is the optional per-project requirement catalogue
// override under the gantry data directory.
const CatalogueFile = "catalogue.yaml"

// TestReportFile is the per-project test report under the gantry data
// directory.
const TestReportFile = "test-report.json"

// Runner executes engine operations against a project root.
type Runner struct {
	logger *zap.Logger
	docs   *docval.Validator
}

// New creates a runner. The logger must be non-nil.
func New(logger *zap.Logger) *Runner {
	return &Runner{
		logger: logger,
		docs:   docval.NewValidator(),
	}
}

// registryFor returns the project's catalogue: the override file when
// present, the built-in catalogue otherwise.
func registryFor(root string) (*registry.Registry, error) {
	path := filepath.Join(project.DataDir(root), CatalogueFile)
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return registry.Default(), nil
		}
		return nil, fmt.Errorf("checking catalogue override: %w", err)
	}
	return registry.LoadCatalogue(path)
}

// Sync runs one synchronization pass for the project at root and returns
// the project with populated, ordered requirement lists. changed holds
// component names or ids known to have changed; it is ignored in force
// mode.
func (r *Runner) Sync(ctx context.Context, root string, force bool, changed []string) (*project.Project, error) {
	p, err := project.Load(root)
	if err != nil {
		return nil, err
	}

	reg, err := registryFor(root)
	if err != nil {
		return nil, err
	}

	st, err := store.Open(filepath.Join(project.DataDir(root), store.DefaultFilename))
	if err != nil {
		return nil, err
	}
	defer st.Close()

	// Prior results seed the incremental pass: unaffected components keep
	// what the last pass persisted.
	persisted, err := st.ListForProject(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	for _, c := range p.Components {
		c.Requirements = persisted[c.ID]
	}

	files, err := project.ListFiles(root)
	if err != nil {
		return nil, err
	}

	testRun, err := project.LoadTestReport(filepath.Join(project.DataDir(root), TestReportFile))
	if err != nil {
		return nil, err
	}

	changedIDs, err := resolveChanged(p, changed)
	if err != nil {
		return nil, err
	}

	syncer := engine.New(reg, st, p.Layout, r.docs, environ.NewLocal(root), r.logger)
	if _, err := syncer.Sync(ctx, engine.Input{
		ProjectID:    p.ID,
		Components:   p.Components,
		Dependencies: p.Dependencies,
		Changed:      changedIDs,
		Files:        files,
		TestResults:  testRun,
	}, engine.Options{Force: force, Persist: true}); err != nil {
		return nil, err
	}

	return p, nil
}

// Status loads the project and attaches the persisted requirement lists
// without running any checks.
func (r *Runner) Status(ctx context.Context, root string) (*project.Project, error) {
	p, err := project.Load(root)
	if err != nil {
		return nil, err
	}

	reg, err := registryFor(root)
	if err != nil {
		return nil, err
	}

	st, err := store.Open(filepath.Join(project.DataDir(root), store.DefaultFilename))
	if err != nil {
		return nil, err
	}
	defer st.Close()

	persisted, err := st.ListForProject(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	for _, c := range p.Components {
		c.Requirements = persisted[c.ID]
		reg.SortRequirements(c.Type, c.Requirements)
	}
	return p, nil
}

// Validate loads the project and reports every dependency cycle.
func (r *Runner) Validate(root string) (*project.Project, []graph.Cycle, error) {
	p, err := project.Load(root)
	if err != nil {
		return nil, nil, err
	}
	cycles := engine.Validate(p.Components, p.Dependencies)
	return p, cycles, nil
}

// resolveChanged maps component names or ids to ids, rejecting names that
// match nothing — a misspelled component would otherwise silently shrink
// the affected set.
func resolveChanged(p *project.Project, changed []string) ([]string, error) {
	ids := make([]string, 0, len(changed))
	byID := graph.NewArena(p.Components)
	for _, ref := range changed {
		if _, ok := byID[ref]; ok {
			ids = append(ids, ref)
			continue
		}
		if c, ok := p.ComponentByName(ref); ok {
			ids = append(ids, c.ID)
			continue
		}
		return nil, fmt.Errorf("unknown component %q", ref)
	}
	return ids, nil
}
