package engine

import "github.com/gantryio/gantry/internal/model"

// AffectedSet expands the directly-changed component ids to every
// component whose requirements may have become stale. A component is
// affected when it is itself changed, depends on an affected component,
// is the parent of an affected component, or is a child of an affected
// component.
//
// The expansion iterates until no growth — a transitive closure, not a
// single reduction pass — so a chain C2 → C1 → C0 with only C0 changed
// still marks C2 regardless of evaluation order. AttachDependencies must
// have run; the hierarchy conditions use ParentID directly so the tree
// need not be attached yet.
func AffectedSet(components []*model.Component, changed []string) map[string]bool {
	affected := make(map[string]bool, len(changed))
	for _, id := range changed {
		affected[id] = true
	}

	for {
		grew := false
		for _, c := range components {
			if affected[c.ID] {
				continue
			}
			if dependsOnAffected(c, affected) || touchesAffectedInTree(c, components, affected) {
				affected[c.ID] = true
				grew = true
			}
		}
		if !grew {
			return affected
		}
	}
}

// dependsOnAffected reports whether any direct dependency is affected.
func dependsOnAffected(c *model.Component, affected map[string]bool) bool {
	for _, dep := range c.Dependencies {
		if affected[dep.ID] {
			return true
		}
	}
	return false
}

// touchesAffectedInTree reports whether the component's parent or any of
// its direct children is affected, resolved through ParentID so it works
// before the tree builder has run.
func touchesAffectedInTree(c *model.Component, components []*model.Component, affected map[string]bool) bool {
	if c.HasParent() && affected[c.ParentID] {
		return true
	}
	for _, other := range components {
		if other.ParentID == c.ID && affected[other.ID] {
			return true
		}
	}
	return false
}
