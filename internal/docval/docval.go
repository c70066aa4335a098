// Package docval validates specification documents against the document
// schema registered for a component type. A schema is a list of markdown
// sections the document must contain; richer per-project schemas can be
// registered over the defaults.
package docval

import (
	"fmt"
	"strings"

	"github.com/gantryio/gantry/internal/model"
)

// DocType is a registered document schema.
type DocType struct {
	Name             string   `yaml:"name"`
	RequiredSections []string `yaml:"required_sections"`
}

// Validator checks raw document text against registered schemas.
type Validator struct {
	types  map[string]DocType
	byComp map[model.ComponentType]string
}

// NewValidator returns a validator carrying the built-in document schemas.
// Contexts and coordinators use the container schema, which additionally
// demands an entity-ownership section; every other type uses the unit schema.
func NewValidator() *Validator {
	v := &Validator{
		types:  make(map[string]DocType),
		byComp: make(map[model.ComponentType]string),
	}

	v.Register(DocType{
		Name:             "unit",
		RequiredSections: []string{"## Purpose", "## Public API"},
	})
	v.Register(DocType{
		Name:             "container",
		RequiredSections: []string{"## Purpose", "## Entity Ownership", "## Public API"},
	})

	for _, t := range model.ComponentTypeValues() {
		v.byComp[model.ComponentType(t)] = "unit"
	}
	v.byComp[model.TypeContext] = "container"
	v.byComp[model.TypeCoordinator] = "container"

	return v
}

// Register adds or replaces a document schema.
func (v *Validator) Register(dt DocType) {
	v.types[dt.Name] = dt
}

// Bind associates a component type with a registered document schema name.
func (v *Validator) Bind(t model.ComponentType, docType string) {
	v.byComp[t] = docType
}

// DocTypeFor returns the schema name registered for a component type.
func (v *Validator) DocTypeFor(t model.ComponentType) string {
	return v.byComp[t]
}

// Validate checks content against the named schema. It returns whether the
// document is valid and, when it is not, a human-readable description of
// what is wrong.
func (v *Validator) Validate(content, docType string) (bool, string) {
	dt, ok := v.types[docType]
	if !ok {
		return false, fmt.Sprintf("no document schema registered as %q", docType)
	}

	if strings.TrimSpace(content) == "" {
		return false, "document is empty"
	}

	var missing []string
	for _, section := range dt.RequiredSections {
		if !hasSection(content, section) {
			missing = append(missing, section)
		}
	}
	if len(missing) > 0 {
		return false, fmt.Sprintf("missing required sections: %s", strings.Join(missing, ", "))
	}
	return true, ""
}

// hasSection reports whether a markdown heading line matching the section
// prefix exists in the document.
func hasSection(content, section string) bool {
	for _, line := range strings.Split(content, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), section) {
			return true
		}
	}
	return false
}
