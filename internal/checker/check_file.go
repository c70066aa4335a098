package checker

import (
	"context"
	"fmt"

	"github.com/gantryio/gantry/internal/layout"
	"github.com/gantryio/gantry/internal/model"
	"github.com/gantryio/gantry/internal/registry"
)

// artifactKindFor maps a definition's artifact category to the file the
// file-existence checker should resolve.
func artifactKindFor(category model.ArtifactCategory) layout.Kind {
	switch category {
	case model.CategoryCode:
		return layout.KindCode
	case model.CategoryTests:
		return layout.KindTest
	case model.CategoryReview:
		return layout.KindReview
	default:
		return layout.KindSpecification
	}
}

// checkFileExistence resolves the expected artifact path for the
// requirement's category and asks the environment whether it exists.
func (d *Dispatcher) checkFileExistence(ctx context.Context, def registry.Definition, comp *model.Component) (float64, map[string]any) {
	path := d.layout.Path(comp, artifactKindFor(def.Category))

	exists, err := d.env.FileExists(ctx, path)
	if err != nil {
		return unsatisfied(fmt.Sprintf("cannot check %s: %v", path, err), map[string]any{DetailPath: path})
	}
	if !exists {
		return unsatisfied("File missing", map[string]any{DetailPath: path})
	}
	return 1, map[string]any{DetailStatus: "File exists", DetailPath: path}
}
