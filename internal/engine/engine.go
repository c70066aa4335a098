// Package engine implements the incremental requirement synchronization
// pass: status refresh, affected-set expansion, the local checker pass,
// graph and tree attachment, the relational checker pass, and the final
// merge into per-component ordered requirement lists.
//
// The pass is synchronous and single-flight per invocation. The one hard
// ordering rule is the local-before-relational barrier: relational checks
// read other components' already-computed satisfied flags instead of
// recursing into checkers, so every local result for the affected set must
// be in place before the first relational check runs.
package engine

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/gantryio/gantry/internal/checker"
	"github.com/gantryio/gantry/internal/docval"
	"github.com/gantryio/gantry/internal/environ"
	"github.com/gantryio/gantry/internal/graph"
	"github.com/gantryio/gantry/internal/layout"
	"github.com/gantryio/gantry/internal/model"
	"github.com/gantryio/gantry/internal/registry"
)

// RequirementStore is the persistence collaborator for requirement rows.
// Abstracted for testability; the SQLite implementation lives in
// internal/store.
type RequirementStore interface {
	Create(ctx context.Context, projectID string, r model.Requirement) error
	ClearForComponent(ctx context.Context, projectID, componentID string) error
	ClearByNames(ctx context.Context, projectID string, componentIDs, names []string) error
}

// TestFailure is one failing test from the most recent run, attributed to
// a project-relative source file.
type TestFailure struct {
	File string `json:"file"`
	Name string `json:"name"`
}

// TestRun holds the outcome of the most recent test run. A nil *TestRun
// on the input means no run has happened and every component's test
// status is not_run.
type TestRun struct {
	Failures []TestFailure `json:"failures"`
}

// Input carries everything one synchronization invocation needs.
type Input struct {
	ProjectID    string
	Components   []*model.Component
	Dependencies []model.Dependency
	Changed      []string // component ids known to have changed
	Files        []string // flat listing of the project's source tree
	TestResults  *TestRun
}

// Options selects the orchestrator mode.
type Options struct {
	// Force clears and recomputes every requirement for every component
	// instead of only the affected set.
	Force bool
	// Persist writes clears and creates through the requirement store.
	// When false the pass only updates the in-memory collection.
	Persist bool
}

// Syncer is the two-pass sync orchestrator.
type Syncer struct {
	registry *registry.Registry
	store    RequirementStore
	layout   *layout.Resolver
	docs     *docval.Validator
	reader   environ.Environment // fallback reader behind the file snapshot
	logger   *zap.Logger
}

// New wires a Syncer. reader may be nil when document content is not
// available (document-validity checks then fail soft, as unsatisfied).
func New(reg *registry.Registry, st RequirementStore, res *layout.Resolver, docs *docval.Validator, reader environ.Environment, logger *zap.Logger) *Syncer {
	return &Syncer{
		registry: reg,
		store:    st,
		layout:   res,
		docs:     docs,
		reader:   reader,
		logger:   logger,
	}
}

// Sync runs one synchronization pass and returns the input collection with
// every component's requirement list populated and ordered.
//
// The error return covers only caller contract violations (empty project
// id); per-component and per-requirement failures are logged and folded
// per the engine's failure semantics, never aborting the pass.
func (s *Syncer) Sync(ctx context.Context, in Input, opts Options) ([]*model.Component, error) {
	if in.ProjectID == "" {
		return nil, fmt.Errorf("engine: project id is required")
	}

	// Every pass gets an id so its log lines correlate.
	logger := s.logger.With(
		zap.String("pass", uuid.NewString()),
		zap.String("project", in.ProjectID),
	)

	env := environ.NewSnapshot(in.Files, s.reader)
	dispatch := checker.NewDispatcher(env, s.layout, s.docs, logger)

	// (1) Refresh every component's derived status unconditionally —
	// cheap and side-effect free, affected or not.
	s.refreshStatus(in)

	// (2) Dependency graph only; the tree waits until local results exist.
	if skipped := graph.AttachDependencies(in.Components, in.Dependencies); len(skipped) > 0 {
		logger.Warn("dependency edges reference unknown components", zap.Int("skipped", len(skipped)))
	}

	// (3) Affected set.
	var affected map[string]bool
	if opts.Force {
		affected = make(map[string]bool, len(in.Components))
		for _, c := range in.Components {
			affected[c.ID] = true
		}
	} else {
		affected = AffectedSet(in.Components, in.Changed)
	}

	// (4) Local pass: clear-then-recreate for affected components; keep
	// unaffected components' persisted local results untouched.
	for _, c := range in.Components {
		if affected[c.ID] {
			s.runLocal(ctx, logger, dispatch, in.ProjectID, c, opts)
			continue
		}
		c.Requirements = localOnly(c.Requirements)
	}

	// (5) Hierarchy tree, now that local results are in place.
	if orphans := graph.AttachHierarchy(in.Components); len(orphans) > 0 {
		logger.Warn("components reference unknown parents, treating as roots", zap.Strings("components", orphans))
	}

	// (6) Relational pass for every component, cheap relative to local
	// checks and always dependent on potentially-changed neighbors.
	s.runRelational(ctx, logger, dispatch, in, opts)

	// (7) Order each merged list by the catalogue's declared order.
	for _, c := range in.Components {
		s.registry.SortRequirements(c.Type, c.Requirements)
	}

	return in.Components, nil
}

// runLocal clears and recomputes one component's local requirements.
func (s *Syncer) runLocal(ctx context.Context, logger *zap.Logger, dispatch *checker.Dispatcher, projectID string, c *model.Component, opts Options) {
	if opts.Persist {
		if err := s.store.ClearForComponent(ctx, projectID, c.ID); err != nil {
			logger.Error("clearing requirements failed",
				zap.String("component", c.Name),
				zap.Error(err),
			)
		}
	}

	defs := s.registry.LocalFor(c.Type)
	reqs := make([]model.Requirement, 0, len(defs))
	for _, def := range defs {
		req := dispatch.Check(ctx, def, c)
		if opts.Persist {
			if err := s.store.Create(ctx, projectID, req); err != nil {
				// Dropped from the result list; siblings continue.
				logger.Error("persisting requirement failed",
					zap.String("component", c.Name),
					zap.String("requirement", req.Name),
					zap.Error(err),
				)
				continue
			}
		}
		reqs = append(reqs, req)
	}
	c.Requirements = reqs
}

// runRelational clears all relational requirements project-wide, then
// recomputes them for every component. Dependency checks run in
// topological order over the dependency graph and hierarchy checks run
// bottom-up over the forest, so each check observes fully-computed
// neighbor results. Each result is appended to its component as soon as
// it is computed, making it visible to later checks in the same pass.
func (s *Syncer) runRelational(ctx context.Context, logger *zap.Logger, dispatch *checker.Dispatcher, in Input, opts Options) {
	if opts.Persist {
		ids := make([]string, len(in.Components))
		for i, c := range in.Components {
			ids[i] = c.ID
		}
		if err := s.store.ClearByNames(ctx, in.ProjectID, ids, s.registry.RelationalNames()); err != nil {
			logger.Error("clearing relational requirements failed", zap.Error(err))
		}
	}

	check := func(c *model.Component, category model.ArtifactCategory) {
		for _, def := range s.registry.RelationalFor(c.Type) {
			if def.Category != category {
				continue
			}
			req := dispatch.Check(ctx, def, c)
			if opts.Persist {
				if err := s.store.Create(ctx, in.ProjectID, req); err != nil {
					logger.Error("persisting requirement failed",
						zap.String("component", c.Name),
						zap.String("requirement", req.Name),
						zap.Error(err),
					)
					continue
				}
			}
			c.Requirements = append(c.Requirements, req)
		}
	}

	for _, c := range dependencyOrder(in.Components) {
		check(c, model.CategoryDependencies)
	}
	for _, c := range bottomUp(in.Components) {
		check(c, model.CategoryHierarchy)
	}
}

// localOnly strips relational-category requirements from a persisted list,
// keeping the local results an unaffected component carries into the merge.
func localOnly(reqs []model.Requirement) []model.Requirement {
	out := make([]model.Requirement, 0, len(reqs))
	for _, r := range reqs {
		if !r.Category.Relational() {
			out = append(out, r)
		}
	}
	return out
}

// dependencyOrder returns components so that every component's
// dependencies appear before it (Kahn's algorithm). Components trapped in
// a cycle — illegal, caught by the separate graph validation — are
// appended last in input order so the pass still terminates.
func dependencyOrder(components []*model.Component) []*model.Component {
	indegree := make(map[string]int, len(components))
	for _, c := range components {
		indegree[c.ID] = len(c.Dependencies)
	}

	var queue []*model.Component
	for _, c := range components {
		if indegree[c.ID] == 0 {
			queue = append(queue, c)
		}
	}

	ordered := make([]*model.Component, 0, len(components))
	placed := make(map[string]bool, len(components))
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		ordered = append(ordered, c)
		placed[c.ID] = true
		for _, dependent := range c.Dependents {
			indegree[dependent.ID]--
			if indegree[dependent.ID] == 0 {
				queue = append(queue, dependent)
			}
		}
	}

	for _, c := range components {
		if !placed[c.ID] {
			ordered = append(ordered, c)
		}
	}
	return ordered
}

// bottomUp returns components deepest-first across the ownership forest,
// so every component's descendants appear before it.
func bottomUp(components []*model.Component) []*model.Component {
	ordered := make([]*model.Component, 0, len(components))
	var visit func(c *model.Component)
	visit = func(c *model.Component) {
		for _, child := range c.Children {
			visit(child)
		}
		ordered = append(ordered, c)
	}
	for _, root := range graph.Roots(components) {
		visit(root)
	}
	return ordered
}
