package checker

import (
	"context"
	"fmt"
	"strings"

	"github.com/gantryio/gantry/internal/model"
	"github.com/gantryio/gantry/internal/registry"
)

// checkDependencies aggregates the already-computed requirement results of
// the component's direct dependencies. It never recurses into checkers:
// transitive correctness comes from the orchestrator's ordering barrier,
// which persists all local results before any relational check runs.
//
// The score is the fraction of direct dependencies whose own requirements
// are all satisfied, so thresholds below 1.0 can accept partially ready
// dependency sets.
func (d *Dispatcher) checkDependencies(_ context.Context, _ registry.Definition, comp *model.Component) (float64, map[string]any) {
	deps := comp.Dependencies
	if deps == nil {
		return unsatisfied("dependencies not loaded", nil)
	}
	if len(deps) == 0 {
		return 1, map[string]any{
			DetailStatus: "No dependencies",
			DetailCount:  0,
		}
	}

	var blocked []string
	for _, dep := range deps {
		if !dep.AllRequirementsSatisfied() {
			blocked = append(blocked, dep.Name)
		}
	}

	if len(blocked) == 0 {
		return 1, map[string]any{
			DetailStatus: "All dependencies satisfied",
			DetailCount:  len(deps),
		}
	}

	score := float64(len(deps)-len(blocked)) / float64(len(deps))
	_, details := unsatisfied(
		fmt.Sprintf("Unsatisfied dependencies: %s", strings.Join(blocked, ", ")),
		map[string]any{
			DetailCount: len(deps),
			"blocked":   blocked,
		},
	)
	return score, details
}
