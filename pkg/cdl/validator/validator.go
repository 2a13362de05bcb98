package validator

import (
	"canvas-hq/loom/pkg/cdl/ast"
	cdlErrors "canvas-hq/loom/pkg/cdl/errors"
)

// Validator runs the structural and graph validators in order and merges
// their findings into one list.
type Validator struct {
	structural *StructuralValidator
	graph      *GraphValidator
}

// NewValidator creates a validator with both sub-validators wired.
func NewValidator() *Validator {
	return &Validator{
		structural: NewStructuralValidator(),
		graph:      NewGraphValidator(),
	}
}

// ValidateStructure checks document-level invariants only. Graph checks
// are separate because the fast loading path never parses the diagram.
func (v *Validator) ValidateStructure(doc *ast.Document) error {
	return v.structural.Validate(doc)
}

// ValidateGraph checks the flow graph against the document's section set.
// A document without a flow passes trivially.
func (v *Validator) ValidateGraph(doc *ast.Document) error {
	if doc.Flow == nil || doc.Flow.Graph == nil {
		return nil
	}
	return v.graph.Validate(doc.Flow.Graph, doc.Flow.Refs, doc.SectionIDs())
}

// Validate runs structural validation and then, if the structure holds,
// graph validation. Structural failures abort: graph targets cannot be
// checked meaningfully against a section set that is itself broken.
func (v *Validator) Validate(doc *ast.Document) error {
	if err := v.ValidateStructure(doc); err != nil {
		return err
	}
	return v.ValidateGraph(doc)
}

// CollectAll runs both validators unconditionally and returns the merged
// list, including warnings. Used by lint tooling that wants a full report
// even when the structure is broken.
func (v *Validator) CollectAll(doc *ast.Document) *cdlErrors.ErrorList {
	merged := cdlErrors.NewErrorList()

	if err := v.ValidateStructure(doc); err != nil {
		if list, ok := err.(*cdlErrors.ErrorList); ok {
			merged.Errors = append(merged.Errors, list.Errors...)
		}
	}
	if err := v.ValidateGraph(doc); err != nil {
		if list, ok := err.(*cdlErrors.ErrorList); ok {
			merged.Errors = append(merged.Errors, list.Errors...)
		}
	}

	return merged
}
