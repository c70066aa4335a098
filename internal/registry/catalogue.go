package registry

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gantryio/gantry/internal/model"
)

// Well-known requirement names. Checkers and the hierarchy variants refer
// to these; projects overriding the catalogue may add their own names.
const (
	ReqSpecFile               = "spec_file"
	ReqSpecValid              = "spec_valid"
	ReqImplementationFile     = "implementation_file"
	ReqTestFile               = "test_file"
	ReqTestsPassing           = "tests_passing"
	ReqReviewFile             = "review_file"
	ReqDependenciesSatisfied  = "dependencies_satisfied"
	ReqChildrenDesigns        = "children_designs"
	ReqChildrenImplementation = "children_implementations"
	ReqChildrenTests          = "children_tests"
	ReqChildrenComplete       = "children_complete"
)

// ConfigTarget is the hierarchy-checker config key naming the descendant
// requirement to aggregate. An absent target means "all requirements"
// (the children_complete variant).
const ConfigTarget = "target"

// unitDefinitions is the base catalogue shared by every non-container
// component type.
func unitDefinitions() []Definition {
	return []Definition{
		{
			Name:        ReqSpecFile,
			Checker:     model.CheckerFileExistence,
			Category:    model.CategorySpecification,
			Description: "Specification document exists",
		},
		{
			Name:        ReqSpecValid,
			Checker:     model.CheckerDocumentValidity,
			Category:    model.CategorySpecification,
			Description: "Specification document matches its registered schema",
		},
		{
			Name:        ReqImplementationFile,
			Checker:     model.CheckerFileExistence,
			Category:    model.CategoryCode,
			Description: "Implementation file exists",
		},
		{
			Name:        ReqTestFile,
			Checker:     model.CheckerFileExistence,
			Category:    model.CategoryTests,
			Description: "Test file exists",
		},
		{
			Name:        ReqTestsPassing,
			Checker:     model.CheckerTestStatus,
			Category:    model.CategoryTests,
			Description: "Most recent test run passed",
		},
		{
			Name:        ReqDependenciesSatisfied,
			Checker:     model.CheckerDependencies,
			Category:    model.CategoryDependencies,
			Description: "All direct dependencies have every requirement satisfied",
		},
	}
}

// containerDefinitions extends the base catalogue with the recursive
// hierarchy requirements carried by component types that own children.
func containerDefinitions() []Definition {
	return append(unitDefinitions(),
		Definition{
			Name:        ReqChildrenDesigns,
			Checker:     model.CheckerHierarchy,
			Category:    model.CategoryHierarchy,
			Description: "Every descendant has a valid specification",
			Config:      map[string]string{ConfigTarget: ReqSpecValid},
		},
		Definition{
			Name:        ReqChildrenImplementation,
			Checker:     model.CheckerHierarchy,
			Category:    model.CategoryHierarchy,
			Description: "Every descendant has an implementation file",
			Config:      map[string]string{ConfigTarget: ReqImplementationFile},
		},
		Definition{
			Name:        ReqChildrenTests,
			Checker:     model.CheckerHierarchy,
			Category:    model.CategoryHierarchy,
			Description: "Every descendant has a test file",
			Config:      map[string]string{ConfigTarget: ReqTestFile},
		},
		Definition{
			Name:        ReqChildrenComplete,
			Checker:     model.CheckerHierarchy,
			Category:    model.CategoryHierarchy,
			Description: "Every descendant has all of its own requirements satisfied",
		},
	)
}

// Default returns the built-in catalogue. Contexts and coordinators carry
// the hierarchy requirements; every other type carries the base set.
// The built-in catalogue always validates — a failure here is a
// programming error, hence the panic.
func Default() *Registry {
	catalogue := map[model.ComponentType][]Definition{
		model.TypeContext:     containerDefinitions(),
		model.TypeCoordinator: containerDefinitions(),
		model.TypeSchema:      unitDefinitions(),
		model.TypeModule:      unitDefinitions(),
		model.TypeController:  unitDefinitions(),
		model.TypeLiveView:    unitDefinitions(),
		model.TypeCLI:         unitDefinitions(),
		model.TypeWorker:      unitDefinitions(),
		model.TypeRepository:  unitDefinitions(),
		model.TypeChannel:     unitDefinitions(),
		model.TypeTask:        unitDefinitions(),
	}
	r, err := New(catalogue)
	if err != nil {
		panic(fmt.Sprintf("registry: built-in catalogue invalid: %v", err))
	}
	return r
}

// LoadCatalogue reads a YAML catalogue override. The file maps component
// type names to definition lists; types absent from the file fall back to
// the built-in catalogue.
func LoadCatalogue(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalogue: %w", err)
	}

	var raw map[model.ComponentType][]Definition
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing catalogue %s: %w", path, err)
	}

	catalogue := make(map[model.ComponentType][]Definition)
	for t, defs := range Default().catalogue {
		catalogue[t] = defs
	}
	for t, defs := range raw {
		catalogue[t] = defs
	}
	return New(catalogue)
}
