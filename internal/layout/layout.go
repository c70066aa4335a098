// Package layout resolves the expected file path for each of a component's
// artifacts. Conventions are placeholder patterns configured per project,
// with optional per-component-type overrides, so the engine never hardcodes
// a managed project's directory shape.
package layout

import (
	"strings"

	"github.com/gantryio/gantry/internal/model"
)

// --- Artifact kind enum ---

// Kind names one of the four artifact files a component is expected to have.
type Kind string

const (
	KindSpecification Kind = "specification"
	KindCode          Kind = "code"
	KindTest          Kind = "test"
	KindReview        Kind = "review"
)

// Kinds lists all artifact kinds in resolution order.
func Kinds() []Kind {
	return []Kind{KindSpecification, KindCode, KindTest, KindReview}
}

// --- Conventions ---

// Conventions holds one path pattern per artifact kind. Patterns are
// relative to the managed project root and may use the placeholders
// {module} (the component's module name), {name} (its display name) and
// {type} (its component type).
type Conventions struct {
	Specification string `yaml:"specification"`
	Code          string `yaml:"code"`
	Test          string `yaml:"test"`
	Review        string `yaml:"review"`
}

// DefaultConventions returns the built-in path conventions.
func DefaultConventions() Conventions {
	return Conventions{
		Specification: "docs/design/{module}.md",
		Code:          "internal/{module}.go",
		Test:          "internal/{module}_test.go",
		Review:        "docs/reviews/{module}.md",
	}
}

// pattern returns the convention for a kind.
func (c Conventions) pattern(k Kind) string {
	switch k {
	case KindSpecification:
		return c.Specification
	case KindCode:
		return c.Code
	case KindTest:
		return c.Test
	case KindReview:
		return c.Review
	}
	return ""
}

// merged overlays non-empty fields of o on top of c.
func (c Conventions) merged(o Conventions) Conventions {
	if o.Specification != "" {
		c.Specification = o.Specification
	}
	if o.Code != "" {
		c.Code = o.Code
	}
	if o.Test != "" {
		c.Test = o.Test
	}
	if o.Review != "" {
		c.Review = o.Review
	}
	return c
}

// --- Resolver ---

// Resolver maps components to expected artifact paths.
type Resolver struct {
	base    Conventions
	perType map[model.ComponentType]Conventions
}

// NewResolver builds a resolver from base conventions and per-type
// overrides. Empty base fields fall back to the defaults; empty override
// fields fall back to the base.
func NewResolver(base Conventions, perType map[model.ComponentType]Conventions) *Resolver {
	return &Resolver{
		base:    DefaultConventions().merged(base),
		perType: perType,
	}
}

// Path returns the expected project-relative path of the given artifact for
// a component.
func (r *Resolver) Path(c *model.Component, k Kind) string {
	conv := r.base
	if o, ok := r.perType[c.Type]; ok {
		conv = conv.merged(o)
	}

	p := conv.pattern(k)
	p = strings.ReplaceAll(p, "{module}", c.ModuleName)
	p = strings.ReplaceAll(p, "{name}", c.Name)
	p = strings.ReplaceAll(p, "{type}", string(c.Type))
	return p
}

// Match finds the component (and artifact kind) a project-relative path
// belongs to, or ok=false when the path maps to no component's artifact.
// Used to translate file events back into changed component ids.
func (r *Resolver) Match(components []*model.Component, path string) (*model.Component, Kind, bool) {
	for _, c := range components {
		for _, k := range Kinds() {
			if r.Path(c, k) == path {
				return c, k, true
			}
		}
	}
	return nil, "", false
}
