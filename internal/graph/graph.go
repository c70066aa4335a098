// Package graph materializes the two overlay structures on a project's
// component collection: the directed dependency graph and the ownership
// forest. Builders resolve identifier references through an arena (a map
// from id to component) and attach direct references; they create no new
// entities.
package graph

import "github.com/gantryio/gantry/internal/model"

// Arena indexes a component collection by identifier.
type Arena map[string]*model.Component

// NewArena builds the id index for a component collection.
func NewArena(components []*model.Component) Arena {
	a := make(Arena, len(components))
	for _, c := range components {
		a[c.ID] = c
	}
	return a
}

// AttachDependencies resolves every dependency edge and attaches the
// Dependencies and Dependents slices on each component. Every component
// ends up with loaded (possibly empty) slices. Edges whose endpoints are
// missing from the collection are skipped and returned so the caller can
// log the contract violation; they never abort the build.
func AttachDependencies(components []*model.Component, edges []model.Dependency) []model.Dependency {
	arena := NewArena(components)

	for _, c := range components {
		c.Dependencies = []*model.Component{}
		c.Dependents = []*model.Component{}
	}

	var skipped []model.Dependency
	for _, e := range edges {
		src, okSrc := arena[e.SourceID]
		tgt, okTgt := arena[e.TargetID]
		if !okSrc || !okTgt {
			skipped = append(skipped, e)
			continue
		}
		src.Dependencies = append(src.Dependencies, tgt)
		tgt.Dependents = append(tgt.Dependents, src)
	}
	return skipped
}

// AttachHierarchy resolves ParentID back-references and attaches the
// Parent pointer and Children slices. Components whose ParentID resolves
// to nothing are returned as orphans; they are treated as roots.
func AttachHierarchy(components []*model.Component) []string {
	arena := NewArena(components)

	for _, c := range components {
		c.Children = []*model.Component{}
		c.Parent = nil
	}

	var orphans []string
	for _, c := range components {
		if !c.HasParent() {
			continue
		}
		parent, ok := arena[c.ParentID]
		if !ok {
			orphans = append(orphans, c.ID)
			continue
		}
		c.Parent = parent
		parent.Children = append(parent.Children, c)
	}
	return orphans
}

// Roots returns the components with no resolved parent, in input order.
// AttachHierarchy must have run first.
func Roots(components []*model.Component) []*model.Component {
	var roots []*model.Component
	for _, c := range components {
		if c.Parent == nil {
			roots = append(roots, c)
		}
	}
	return roots
}
