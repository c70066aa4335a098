package checker

import (
	"context"
	"fmt"

	"github.com/gantryio/gantry/internal/layout"
	"github.com/gantryio/gantry/internal/model"
	"github.com/gantryio/gantry/internal/registry"
)

// checkDocumentValidity reads the component's specification file and
// validates its content against the document schema registered for the
// component's type.
func (d *Dispatcher) checkDocumentValidity(ctx context.Context, _ registry.Definition, comp *model.Component) (float64, map[string]any) {
	path := d.layout.Path(comp, layout.KindSpecification)
	docType := d.docs.DocTypeFor(comp.Type)

	content, err := d.env.ReadFile(ctx, path)
	if err != nil {
		return unsatisfied(fmt.Sprintf("cannot read specification: %v", err), map[string]any{
			DetailPath: path,
		})
	}

	valid, desc := d.docs.Validate(string(content), docType)
	if !valid {
		return unsatisfied(desc, map[string]any{
			DetailPath: path,
			"doc_type":  docType,
		})
	}
	return 1, map[string]any{
		DetailStatus: "Document valid",
		DetailPath:   path,
		"doc_type":   docType,
	}
}
