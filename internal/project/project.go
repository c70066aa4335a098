// Package project loads a managed project's definition from its
// gantry.yaml: the component catalogue, the ownership forest, the
// dependency edges, and the layout conventions. This is the source of the
// in-memory component collection the engine synchronizes.
package project

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/gantryio/gantry/internal/layout"
	"github.com/gantryio/gantry/internal/model"
)

const (
	// ConfigFile is the project definition filename at the project root.
	ConfigFile = "gantry.yaml"
	// DataDirName is the gantry-owned directory under the project root.
	DataDirName = ".gantry"
)

// validate is the package-level struct validator for project files.
var validate = validator.New(validator.WithRequiredStructEnabled())

// --- YAML schema ---

type componentSpec struct {
	ID          string   `yaml:"id"`
	Name        string   `yaml:"name" validate:"required"`
	Module      string   `yaml:"module" validate:"required"`
	Type        string   `yaml:"type" validate:"required"`
	Parent      string   `yaml:"parent"`
	DependsOn   []string `yaml:"depends_on"`
	Description string   `yaml:"description"`
}

type layoutSpec struct {
	Base  layout.Conventions            `yaml:"base"`
	Types map[string]layout.Conventions `yaml:"types"`
}

type fileSpec struct {
	Project    string          `yaml:"project" validate:"required"`
	Layout     layoutSpec      `yaml:"layout"`
	Components []componentSpec `yaml:"components" validate:"required,min=1,dive"`
}

// --- Project ---

// Project is a loaded project definition.
type Project struct {
	ID           string
	Root         string
	Components   []*model.Component
	Dependencies []model.Dependency
	Layout       *layout.Resolver
}

// ConfigPath returns the absolute path of the project definition file.
func ConfigPath(root string) string {
	return filepath.Join(root, ConfigFile)
}

// DataDir returns the gantry data directory for a project root.
func DataDir(root string) string {
	return filepath.Join(root, DataDirName)
}

// Load reads and validates the project definition at root.
//
// Components may omit an explicit id; the module name — already required
// to be unique within the project — is used as the stable identifier, so
// requirement rows keyed by component id survive reloads.
func Load(root string) (*Project, error) {
	data, err := os.ReadFile(ConfigPath(root))
	if err != nil {
		return nil, fmt.Errorf("reading project definition: %w", err)
	}

	var spec fileSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", ConfigFile, err)
	}
	if err := validate.Struct(spec); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", ConfigFile, err)
	}

	byName := make(map[string]*model.Component, len(spec.Components))
	components := make([]*model.Component, 0, len(spec.Components))
	for _, cs := range spec.Components {
		t := model.ComponentType(cs.Type)
		if err := model.ValidateComponentType(t); err != nil {
			return nil, fmt.Errorf("component %q: %w", cs.Name, err)
		}

		id := cs.ID
		if id == "" {
			id = cs.Module
		}

		c := &model.Component{
			ID:          id,
			ProjectID:   spec.Project,
			Name:        cs.Name,
			ModuleName:  cs.Module,
			Type:        t,
			Description: cs.Description,
		}

		if _, dup := byName[cs.Name]; dup {
			return nil, fmt.Errorf("duplicate component name %q", cs.Name)
		}
		byName[cs.Name] = c
		components = append(components, c)
	}

	seenModules := make(map[string]bool, len(components))
	for _, c := range components {
		if seenModules[c.ModuleName] {
			return nil, fmt.Errorf("duplicate module name %q", c.ModuleName)
		}
		seenModules[c.ModuleName] = true
	}

	// Second pass: resolve parent and dependency references by name.
	var deps []model.Dependency
	seenEdges := make(map[[2]string]bool)
	for i, cs := range spec.Components {
		c := components[i]

		if cs.Parent != "" {
			parent, ok := byName[cs.Parent]
			if !ok {
				return nil, fmt.Errorf("component %q: unknown parent %q", cs.Name, cs.Parent)
			}
			if parent == c {
				return nil, fmt.Errorf("component %q cannot be its own parent", cs.Name)
			}
			c.ParentID = parent.ID
		}

		for _, depName := range cs.DependsOn {
			target, ok := byName[depName]
			if !ok {
				return nil, fmt.Errorf("component %q: unknown dependency %q", cs.Name, depName)
			}
			edge := [2]string{c.ID, target.ID}
			if seenEdges[edge] {
				return nil, fmt.Errorf("component %q: duplicate dependency on %q", cs.Name, depName)
			}
			seenEdges[edge] = true
			deps = append(deps, model.Dependency{SourceID: c.ID, TargetID: target.ID})
		}
	}

	perType := make(map[model.ComponentType]layout.Conventions, len(spec.Layout.Types))
	for name, conv := range spec.Layout.Types {
		t := model.ComponentType(name)
		if err := model.ValidateComponentType(t); err != nil {
			return nil, fmt.Errorf("layout override: %w", err)
		}
		perType[t] = conv
	}

	return &Project{
		ID:           spec.Project,
		Root:         root,
		Components:   components,
		Dependencies: deps,
		Layout:       layout.NewResolver(spec.Layout.Base, perType),
	}, nil
}

// ComponentByName returns the component with the given display name.
func (p *Project) ComponentByName(name string) (*model.Component, bool) {
	for _, c := range p.Components {
		if c.Name == name {
			return c, true
		}
	}
	return nil, false
}

// skipDirs are directories never scanned for project files.
var skipDirs = map[string]bool{
	".git":         true,
	DataDirName:    true,
	"node_modules": true,
	"vendor":       true,
	"_build":       true,
	"deps":         true,
}

// SkippedDir reports whether a directory name is excluded from project
// scans and watches.
func SkippedDir(name string) bool {
	return skipDirs[name]
}

// ListFiles walks the project tree and returns every regular file as a
// slash-separated path relative to root — the flat listing handed to a
// sync invocation.
func ListFiles(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if skipDirs[d.Name()] && path != root {
				return filepath.SkipDir
			}
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("listing project files: %w", err)
	}
	return files, nil
}
