// Package registry holds the requirement definition catalogue: the ordered
// list of requirement templates that apply to each component type.
//
// Definitions are immutable templates, never persisted per component. All
// validation happens at construction time — a registry that builds without
// error can be dispatched against without further checks, which is what lets
// the checker dispatch stay a closed total function over its kinds.
package registry

import (
	"fmt"
	"sort"

	"github.com/go-playground/validator/v10"

	"github.com/gantryio/gantry/internal/model"
)

// validate is the package-level struct validator, shared across
// definition construction.
var validate = validator.New(validator.WithRequiredStructEnabled())

// Definition is the immutable template describing what one requirement
// checks and how. Threshold is the minimum score for the derived
// satisfied flag; checkers producing binary results score 0 or 1.
type Definition struct {
	Name        string                 `validate:"required" yaml:"name"`
	Checker     model.CheckerKind      `validate:"required" yaml:"checker"`
	Category    model.ArtifactCategory `validate:"required" yaml:"category"`
	Description string                 `yaml:"description"`
	Threshold   float64                `validate:"gte=0,lte=1" yaml:"threshold"`
	Config      map[string]string      `yaml:"config"`
}

// defaultThreshold is applied when a definition omits its threshold.
const defaultThreshold = 1.0

// NewDefinition validates a definition and applies defaults. A zero
// threshold means "unset" and defaults to 1.0; an explicit zero threshold
// is not representable, which matches the source catalogue (no requirement
// is satisfied for free).
func NewDefinition(d Definition) (Definition, error) {
	if d.Threshold == 0 {
		d.Threshold = defaultThreshold
	}
	if err := validate.Struct(d); err != nil {
		return Definition{}, fmt.Errorf("requirement definition %q: %w", d.Name, err)
	}
	if err := model.ValidateCheckerKind(d.Checker); err != nil {
		return Definition{}, fmt.Errorf("requirement definition %q: %w", d.Name, err)
	}
	if err := model.ValidateCategory(d.Category); err != nil {
		return Definition{}, fmt.Errorf("requirement definition %q: %w", d.Name, err)
	}
	return d, nil
}

// Relational reports whether the definition's check needs other
// components' already-computed results.
func (d Definition) Relational() bool {
	return d.Category.Relational()
}

// --- Registry ---

// Registry maps each component type to its ordered definition list.
type Registry struct {
	catalogue map[model.ComponentType][]Definition
}

// New builds a registry from a catalogue, validating every definition.
// Catalogue order is preserved: it is the display order for each type's
// requirement list.
func New(catalogue map[model.ComponentType][]Definition) (*Registry, error) {
	built := make(map[model.ComponentType][]Definition, len(catalogue))
	for t, defs := range catalogue {
		if err := model.ValidateComponentType(t); err != nil {
			return nil, err
		}
		seen := make(map[string]bool, len(defs))
		out := make([]Definition, 0, len(defs))
		for _, d := range defs {
			valid, err := NewDefinition(d)
			if err != nil {
				return nil, fmt.Errorf("catalogue for type %q: %w", t, err)
			}
			if seen[valid.Name] {
				return nil, fmt.Errorf("catalogue for type %q: duplicate requirement name %q", t, valid.Name)
			}
			seen[valid.Name] = true
			out = append(out, valid)
		}
		built[t] = out
	}
	return &Registry{catalogue: built}, nil
}

// --- Filters ---

type filter struct {
	include map[string]bool
	exclude map[string]bool
}

// FilterOption narrows the definition list returned by DefinitionsFor.
type FilterOption func(*filter)

// Include keeps only the named definitions, preserving catalogue order.
func Include(names ...string) FilterOption {
	return func(f *filter) {
		f.include = make(map[string]bool, len(names))
		for _, n := range names {
			f.include[n] = true
		}
	}
}

// Exclude drops the named definitions, preserving catalogue order.
func Exclude(names ...string) FilterOption {
	return func(f *filter) {
		f.exclude = make(map[string]bool, len(names))
		for _, n := range names {
			f.exclude[n] = true
		}
	}
}

// DefinitionsFor returns the ordered definitions applying to a component
// type, optionally filtered. The returned slice is a copy; callers may
// not mutate the catalogue through it.
func (r *Registry) DefinitionsFor(t model.ComponentType, opts ...FilterOption) []Definition {
	var f filter
	for _, opt := range opts {
		opt(&f)
	}

	defs := r.catalogue[t]
	out := make([]Definition, 0, len(defs))
	for _, d := range defs {
		if f.include != nil && !f.include[d.Name] {
			continue
		}
		if f.exclude != nil && f.exclude[d.Name] {
			continue
		}
		out = append(out, d)
	}
	return out
}

// LocalFor returns the definitions resolvable from the component's own
// files and status alone.
func (r *Registry) LocalFor(t model.ComponentType) []Definition {
	defs := r.DefinitionsFor(t)
	out := defs[:0:0]
	for _, d := range defs {
		if !d.Relational() {
			out = append(out, d)
		}
	}
	return out
}

// RelationalFor returns the definitions that read other components'
// already-computed results (dependency and hierarchy categories).
func (r *Registry) RelationalFor(t model.ComponentType) []Definition {
	defs := r.DefinitionsFor(t)
	out := defs[:0:0]
	for _, d := range defs {
		if d.Relational() {
			out = append(out, d)
		}
	}
	return out
}

// RelationalNames returns every relational requirement name across all
// component types, sorted for determinism. The orchestrator clears these
// project-wide before the relational pass.
func (r *Registry) RelationalNames() []string {
	set := make(map[string]bool)
	for _, defs := range r.catalogue {
		for _, d := range defs {
			if d.Relational() {
				set[d.Name] = true
			}
		}
	}
	names := make([]string, 0, len(set))
	for n := range set {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// SortRequirements orders a component's merged requirement list by the
// catalogue's declared order for its type. Names missing from the
// catalogue sort last, keeping their relative order.
func (r *Registry) SortRequirements(t model.ComponentType, reqs []model.Requirement) {
	order := make(map[string]int, len(r.catalogue[t]))
	for i, d := range r.catalogue[t] {
		order[d.Name] = i
	}
	unknown := len(order)
	rank := func(name string) int {
		if i, ok := order[name]; ok {
			return i
		}
		return unknown
	}
	sort.SliceStable(reqs, func(i, j int) bool {
		return rank(reqs[i].Name) < rank(reqs[j].Name)
	})
}
