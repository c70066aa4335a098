package model

import (
	"fmt"
	"time"
)

// --- Artifact category enum ---

// ArtifactCategory classifies what a requirement pertains to. Categories
// also split checks into local (resolvable from the component's own files)
// and relational (needing other components' already-computed results).
type ArtifactCategory string

const (
	CategorySpecification ArtifactCategory = "specification"
	CategoryReview        ArtifactCategory = "review"
	CategoryCode          ArtifactCategory = "code"
	CategoryTests         ArtifactCategory = "tests"
	CategoryDependencies  ArtifactCategory = "dependencies"
	CategoryHierarchy     ArtifactCategory = "hierarchy"
)

// validCategories is the set of allowed artifact categories.
var validCategories = map[ArtifactCategory]bool{
	CategorySpecification: true,
	CategoryReview:        true,
	CategoryCode:          true,
	CategoryTests:         true,
	CategoryDependencies:  true,
	CategoryHierarchy:     true,
}

// ValidateCategory returns an error if the category is not recognized.
func ValidateCategory(c ArtifactCategory) error {
	if !validCategories[c] {
		return fmt.Errorf("invalid artifact category %q: must be one of: "+
			"specification, review, code, tests, dependencies, hierarchy", c)
	}
	return nil
}

// Relational reports whether the category requires other components'
// already-computed requirement results. Relational checks run strictly
// after all local checks have been persisted.
func (c ArtifactCategory) Relational() bool {
	return c == CategoryDependencies || c == CategoryHierarchy
}

// --- Checker kind enum ---

// CheckerKind identifies which checker variant evaluates a requirement.
// The set is closed: definitions referencing an unknown kind are rejected
// when the definition is constructed, never at dispatch time.
type CheckerKind string

const (
	CheckerFileExistence    CheckerKind = "file_existence"
	CheckerDocumentValidity CheckerKind = "document_validity"
	CheckerTestStatus       CheckerKind = "test_status"
	CheckerDependencies     CheckerKind = "dependencies"
	CheckerHierarchy        CheckerKind = "hierarchy"
)

// validCheckerKinds is the set of allowed checker kinds.
var validCheckerKinds = map[CheckerKind]bool{
	CheckerFileExistence:    true,
	CheckerDocumentValidity: true,
	CheckerTestStatus:       true,
	CheckerDependencies:     true,
	CheckerHierarchy:        true,
}

// ValidateCheckerKind returns an error if the kind is not recognized.
func ValidateCheckerKind(k CheckerKind) error {
	if !validCheckerKinds[k] {
		return fmt.Errorf("unknown checker %q: must be one of: file_existence, "+
			"document_validity, test_status, dependencies, hierarchy", k)
	}
	return nil
}

// --- Requirement instance ---

// Requirement is the persisted result of checking one condition for one
// component. Instances are never partially updated: a sync pass that
// recomputes a requirement deletes the old row and creates a fresh one,
// so no stale instance survives a definition change.
type Requirement struct {
	ComponentID string           `json:"component_id"`
	Name        string           `json:"name"`
	Category    ArtifactCategory `json:"category"`
	Checker     CheckerKind      `json:"checker"`
	Description string           `json:"description,omitempty"`
	Score       float64          `json:"score"`
	Satisfied   bool             `json:"satisfied"`
	Details     map[string]any   `json:"details,omitempty"`
	CheckedAt   time.Time        `json:"checked_at"`
}
