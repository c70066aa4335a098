// Package model defines the core data types for the requirement
// synchronization engine: components, dependency edges, component status,
// and persisted requirement results.
//
// Components form two overlay structures at once: a directed dependency
// graph (Dependency edges) and an ownership forest (ParentID back-references).
// Both are stored as identifiers and materialized into direct references by
// the graph builders before checkers run. A nil association slice means
// "not loaded" and is treated defensively by every consumer.
package model

import (
	"fmt"
	"strings"
)

// --- Component type enum ---

// ComponentType categorizes a component within the designed system's
// architecture. The vocabulary is closed: unknown types are rejected at
// project load time, not discovered at sync time.
type ComponentType string

const (
	TypeContext     ComponentType = "context"
	TypeCoordinator ComponentType = "coordinator"
	TypeSchema      ComponentType = "schema"
	TypeModule      ComponentType = "module"
	TypeController  ComponentType = "controller"
	TypeLiveView    ComponentType = "liveview"
	TypeCLI         ComponentType = "cli"
	TypeWorker      ComponentType = "worker"
	TypeRepository  ComponentType = "repository"
	TypeChannel     ComponentType = "channel"
	TypeTask        ComponentType = "task"
)

// validComponentTypes is the set of allowed component types.
var validComponentTypes = map[ComponentType]bool{
	TypeContext:     true,
	TypeCoordinator: true,
	TypeSchema:      true,
	TypeModule:      true,
	TypeController:  true,
	TypeLiveView:    true,
	TypeCLI:         true,
	TypeWorker:      true,
	TypeRepository:  true,
	TypeChannel:     true,
	TypeTask:        true,
}

// ComponentTypeValues returns the allowed component types in a stable order.
func ComponentTypeValues() []string {
	return []string{
		string(TypeContext), string(TypeCoordinator), string(TypeSchema),
		string(TypeModule), string(TypeController), string(TypeLiveView),
		string(TypeCLI), string(TypeWorker), string(TypeRepository),
		string(TypeChannel), string(TypeTask),
	}
}

// ValidateComponentType returns an error if the type is not recognized.
func ValidateComponentType(t ComponentType) error {
	if !validComponentTypes[t] {
		return fmt.Errorf("invalid component type %q: must be one of: %s",
			t, strings.Join(ComponentTypeValues(), ", "))
	}
	return nil
}

// --- Core data structures ---

// Component is a named unit of the designed system. Identity and the
// ParentID back-reference are persisted in project configuration; the
// association slices are attached in memory by the graph and tree builders
// and are never persisted.
type Component struct {
	ID          string        `json:"id"`
	ProjectID   string        `json:"project_id"`
	Name        string        `json:"name"`
	ModuleName  string        `json:"module_name"` // unique within the owning project
	Type        ComponentType `json:"type"`
	ParentID    string        `json:"parent_id,omitempty"` // empty means root
	Description string        `json:"description,omitempty"`

	// Attached associations. nil means not loaded — checkers must treat
	// nil as "unavailable", never panic on it. An empty non-nil slice
	// means loaded-and-empty.
	Dependencies []*Component `json:"-"`
	Dependents   []*Component `json:"-"`
	Children     []*Component `json:"-"`
	Parent       *Component   `json:"-"`

	// Status is the derived file/test cache, refreshed every sync.
	Status *Status `json:"status,omitempty"`

	// Requirements is the ordered result list populated by the sync
	// orchestrator, sorted by the registry's declared order.
	Requirements []Requirement `json:"requirements,omitempty"`
}

// HasParent reports whether the component is owned by another component.
func (c *Component) HasParent() bool {
	return c.ParentID != ""
}

// AllRequirementsSatisfied reports whether every requirement on the
// component is satisfied. A component with no computed requirements is
// vacuously satisfied.
func (c *Component) AllRequirementsSatisfied() bool {
	for _, r := range c.Requirements {
		if !r.Satisfied {
			return false
		}
	}
	return true
}

// RequirementByName returns the named requirement and whether it exists.
func (c *Component) RequirementByName(name string) (Requirement, bool) {
	for _, r := range c.Requirements {
		if r.Name == name {
			return r, true
		}
	}
	return Requirement{}, false
}

// Dependency is a directed edge: the source component depends on the
// target component. At most one edge may exist per ordered pair.
type Dependency struct {
	SourceID string `json:"source_id"`
	TargetID string `json:"target_id"`
}
