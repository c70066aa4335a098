// Package checker implements the closed set of requirement checkers and the
// dispatcher that routes a requirement definition to its variant.
//
// Checkers are opaque predicates over a single component. They never mutate
// the component, never return errors: every failure mode — missing file,
// unreadable content, unloaded association — folds into an unsatisfied
// result with a human-readable reason under the "reason" detail key.
// Unknown checker kinds are rejected when definitions are constructed, so
// dispatch is total over a valid registry.
package checker

import (
	"context"

	"go.uber.org/zap"

	"github.com/gantryio/gantry/internal/docval"
	"github.com/gantryio/gantry/internal/environ"
	"github.com/gantryio/gantry/internal/layout"
	"github.com/gantryio/gantry/internal/model"
	"github.com/gantryio/gantry/internal/registry"
)

// Detail keys shared by all checkers. "status" carries the success
// description, "reason" the failure description.
const (
	DetailStatus = "status"
	DetailReason = "reason"
	DetailPath   = "path"
	DetailCount  = "count"
)

// Result is one checker evaluation outcome. Satisfied is derived by the
// dispatcher from the score and the definition threshold; checkers only
// produce the score and details.
type Result struct {
	Satisfied bool
	Score     float64
	Details   map[string]any
}

// checkFunc evaluates one definition against one component and returns a
// score in [0, 1] plus diagnostic details.
type checkFunc func(ctx context.Context, def registry.Definition, comp *model.Component) (float64, map[string]any)

// Dispatcher routes definitions to checker variants and stamps results
// into Requirement instances.
type Dispatcher struct {
	env    environ.Environment
	layout *layout.Resolver
	docs   *docval.Validator
	logger *zap.Logger
	byKind map[model.CheckerKind]checkFunc
}

// NewDispatcher wires the checkers to their collaborators. The logger must
// be non-nil; pass zap.NewNop() when logging is unwanted.
func NewDispatcher(env environ.Environment, res *layout.Resolver, docs *docval.Validator, logger *zap.Logger) *Dispatcher {
	d := &Dispatcher{
		env:    env,
		layout: res,
		docs:   docs,
		logger: logger,
	}
	d.byKind = map[model.CheckerKind]checkFunc{
		model.CheckerFileExistence:    d.checkFileExistence,
		model.CheckerDocumentValidity: d.checkDocumentValidity,
		model.CheckerTestStatus:       d.checkTestStatus,
		model.CheckerDependencies:     d.checkDependencies,
		model.CheckerHierarchy:        d.checkHierarchy,
	}
	return d
}

// Check evaluates one definition against one component and returns the
// fresh Requirement instance. The satisfied flag is score >= threshold.
func (d *Dispatcher) Check(ctx context.Context, def registry.Definition, comp *model.Component) model.Requirement {
	fn, ok := d.byKind[def.Checker]

	var score float64
	var details map[string]any
	if !ok {
		// Unreachable with a validated registry; kept as a defensive
		// unsatisfied result rather than a panic.
		d.logger.Error("unknown checker kind at dispatch",
			zap.String("checker", string(def.Checker)),
			zap.String("requirement", def.Name),
			zap.String("component", comp.Name),
		)
		details = map[string]any{DetailReason: "unknown checker " + string(def.Checker)}
	} else {
		score, details = fn(ctx, def, comp)
	}

	return model.Requirement{
		ComponentID: comp.ID,
		Name:        def.Name,
		Category:    def.Category,
		Checker:     def.Checker,
		Description: def.Description,
		Score:       score,
		Satisfied:   score >= def.Threshold,
		Details:     details,
		CheckedAt:   timeNow().UTC(),
	}
}

// unsatisfied builds a zero-score detail map with a reason.
func unsatisfied(reason string, extra map[string]any) (float64, map[string]any) {
	details := map[string]any{DetailReason: reason}
	for k, v := range extra {
		details[k] = v
	}
	return 0, details
}
