package engine

import (
	"path/filepath"

	"github.com/gantryio/gantry/internal/graph"
	"github.com/gantryio/gantry/internal/layout"
	"github.com/gantryio/gantry/internal/model"
)

// refreshStatus recomputes every component's derived status from the raw
// file listing and test results. This runs for all components on every
// pass, affected or not.
func (s *Syncer) refreshStatus(in Input) {
	files := make(map[string]bool, len(in.Files))
	for _, f := range in.Files {
		files[filepath.ToSlash(f)] = true
	}

	failing := make(map[string]bool)
	if in.TestResults != nil {
		for _, f := range in.TestResults.Failures {
			failing[filepath.ToSlash(f.File)] = true
		}
	}

	for _, c := range in.Components {
		testPath := s.layout.Path(c, layout.KindTest)
		status := &model.Status{
			SpecExists:   files[s.layout.Path(c, layout.KindSpecification)],
			CodeExists:   files[s.layout.Path(c, layout.KindCode)],
			TestExists:   files[testPath],
			ReviewExists: files[s.layout.Path(c, layout.KindReview)],
			TestStatus:   model.TestNotRun,
		}

		if status.TestExists && in.TestResults != nil {
			if failing[testPath] || failing[s.layout.Path(c, layout.KindCode)] {
				status.TestStatus = model.TestFailing
			} else {
				status.TestStatus = model.TestPassing
			}
		}
		c.Status = status
	}
}

// Validate attaches the dependency graph and reports every dependency
// cycle. Cycles make the graph illegal for dependency checks; this is the
// separate validation operation surfaced by the CLI and MCP tools.
func Validate(components []*model.Component, edges []model.Dependency) []graph.Cycle {
	graph.AttachDependencies(components, edges)
	return graph.DetectCycles(components)
}
