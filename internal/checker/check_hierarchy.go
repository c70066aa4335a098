package checker

import (
	"context"
	"fmt"
	"strings"

	"github.com/gantryio/gantry/internal/model"
	"github.com/gantryio/gantry/internal/registry"
)

// checkHierarchy recurses through the component's entire descendant
// subtree. With a target requirement configured (children_designs,
// children_implementations, children_tests) every descendant must have
// that requirement satisfied; without one (children_complete) every
// descendant must have all of its own requirements satisfied.
//
// An empty subtree is vacuously satisfied. The score is the fraction of
// descendants that pass.
func (d *Dispatcher) checkHierarchy(_ context.Context, def registry.Definition, comp *model.Component) (float64, map[string]any) {
	if comp.Children == nil {
		return unsatisfied("children not loaded", nil)
	}

	target := def.Config[registry.ConfigTarget]

	var total int
	var failing []string
	walk(comp, func(desc *model.Component) {
		total++
		if !descendantPasses(desc, target) {
			failing = append(failing, desc.Name)
		}
	})

	if total == 0 {
		return 1, map[string]any{DetailStatus: "No descendant components", DetailCount: 0}
	}
	if len(failing) == 0 {
		return 1, map[string]any{
			DetailStatus: "All descendants satisfied",
			DetailCount:  total,
		}
	}

	var reason string
	if target == "" {
		reason = fmt.Sprintf("Incomplete components: %s", strings.Join(failing, ", "))
	} else {
		reason = fmt.Sprintf("%s unsatisfied for: %s", target, strings.Join(failing, ", "))
	}
	score := float64(total-len(failing)) / float64(total)
	_, details := unsatisfied(reason, map[string]any{
		DetailCount: total,
		"failing":   failing,
	})
	return score, details
}

// descendantPasses applies the variant predicate to one descendant.
func descendantPasses(c *model.Component, target string) bool {
	if target == "" {
		return c.AllRequirementsSatisfied()
	}
	req, ok := c.RequirementByName(target)
	return ok && req.Satisfied
}

// walk visits every descendant of root in depth-first order, excluding
// root itself. The ownership forest is acyclic by construction, so no
// visited set is needed.
func walk(root *model.Component, visit func(*model.Component)) {
	for _, child := range root.Children {
		visit(child)
		walk(child, visit)
	}
}
