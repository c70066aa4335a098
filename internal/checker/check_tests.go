package checker

import (
	"context"

	"github.com/gantryio/gantry/internal/model"
	"github.com/gantryio/gantry/internal/registry"
)

// checkTestStatus inspects the component's derived status. Only an
// existing test file with a passing most-recent run satisfies; a missing
// file and an unexecuted run are distinct failures.
func (d *Dispatcher) checkTestStatus(_ context.Context, _ registry.Definition, comp *model.Component) (float64, map[string]any) {
	status := comp.Status
	if status == nil {
		return unsatisfied("component status unavailable", nil)
	}
	if !status.TestExists {
		return unsatisfied("Test file missing", nil)
	}

	switch status.TestStatus {
	case model.TestPassing:
		return 1, map[string]any{DetailStatus: "Tests passing"}
	case model.TestFailing:
		return unsatisfied("Tests failing", nil)
	case model.TestNotRun:
		return unsatisfied("Tests have not been run", nil)
	default:
		return unsatisfied("unrecognized test status "+string(status.TestStatus), nil)
	}
}
