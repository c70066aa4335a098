package graph

import "github.com/gantryio/gantry/internal/model"

// Cycle is one dependency cycle, listed in edge order: each component
// depends on the next, and the last depends on the first.
type Cycle []*model.Component

// color marks DFS progress for cycle detection.
type color int

const (
	unvisited color = iota
	inProgress
	done
)

// DetectCycles walks the attached dependency graph depth-first and returns
// every distinct cycle found — one per back edge — not merely the first.
// The presentation layer reports all offending edges, so partial detection
// is not acceptable. AttachDependencies must have run first.
func DetectCycles(components []*model.Component) []Cycle {
	colors := make(map[string]color, len(components))
	var path []*model.Component
	var cycles []Cycle

	var visit func(c *model.Component)
	visit = func(c *model.Component) {
		colors[c.ID] = inProgress
		path = append(path, c)

		for _, dep := range c.Dependencies {
			switch colors[dep.ID] {
			case unvisited:
				visit(dep)
			case inProgress:
				// Back edge: the cycle is the path segment from the
				// first occurrence of dep to the current component.
				for i, p := range path {
					if p.ID == dep.ID {
						cycle := make(Cycle, len(path)-i)
						copy(cycle, path[i:])
						cycles = append(cycles, cycle)
						break
					}
				}
			}
		}

		path = path[:len(path)-1]
		colors[c.ID] = done
	}

	for _, c := range components {
		if colors[c.ID] == unvisited {
			visit(c)
		}
	}
	return cycles
}
