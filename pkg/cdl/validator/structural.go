package validator

import (
	"fmt"
	"time"

	"canvas-hq/loom/pkg/cdl/ast"
	cdlErrors "canvas-hq/loom/pkg/cdl/errors"
)

// timestampLayouts are the accepted forms for the metadata creation
// timestamp. RFC 3339 is canonical; a bare date is accepted because
// existing documents use both forms.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02",
}

// StructuralValidator enforces document-level invariants: required metadata
// fields, section type membership, identifier uniqueness, and content
// presence. Section flatness is guaranteed by the tree shape (the parser
// rejects nesting before a Section can be built), so it needs no re-check
// here.
type StructuralValidator struct {
	errors *cdlErrors.ErrorList
}

// NewStructuralValidator creates a new structural validator.
func NewStructuralValidator() *StructuralValidator {
	return &StructuralValidator{
		errors: cdlErrors.NewErrorList(),
	}
}

// Validate performs structural validation on a document.
// Rules are independent and all collected, never short-circuited, so a
// caller sees every problem in one pass.
func (v *StructuralValidator) Validate(doc *ast.Document) error {
	v.errors = cdlErrors.NewErrorList()

	v.validateMetadata(doc)
	v.validateSections(doc)

	return v.errors.ToError()
}

// validateMetadata checks that every required metadata field is present and
// that the creation timestamp is syntactically valid.
func (v *StructuralValidator) validateMetadata(doc *ast.Document) {
	if doc.Meta == nil {
		v.errors.AddViolationWithSuggestion(
			cdlErrors.ErrorTypeStructural,
			cdlErrors.KindMissingField,
			"Required element <meta> is missing",
			doc.Location,
			cdlErrors.SuggestMissingElement("meta", ""),
		)
		return
	}

	meta := doc.Meta

	required := []struct {
		name  string
		value string
	}{
		{"title", meta.Title},
		{"author", meta.Author},
		{"created", meta.Created},
		{"description", meta.Description},
	}
	for _, field := range required {
		if field.value == "" {
			v.errors.AddViolationWithSuggestion(
				cdlErrors.ErrorTypeStructural,
				cdlErrors.KindMissingField,
				fmt.Sprintf("Required meta element <%s> is missing or empty", field.name),
				meta.Location,
				cdlErrors.SuggestMissingElement(field.name, ""),
			)
		}
	}

	if meta.App.Name == "" {
		v.errors.AddViolationWithSuggestion(
			cdlErrors.ErrorTypeStructural,
			cdlErrors.KindMissingField,
			"App element must have a 'name' attribute",
			meta.Location,
			cdlErrors.SuggestMissingAttribute("app", "name", "loom"),
		)
	}
	if meta.App.Version == "" {
		v.errors.AddViolationWithSuggestion(
			cdlErrors.ErrorTypeStructural,
			cdlErrors.KindMissingField,
			"App element must have a 'version' attribute",
			meta.Location,
			cdlErrors.SuggestMissingAttribute("app", "version", "0.1.0"),
		)
	}

	if len(meta.Tags) == 0 {
		v.errors.AddViolationWithSuggestion(
			cdlErrors.ErrorTypeStructural,
			cdlErrors.KindMissingField,
			"Required meta element <tags> is missing or empty",
			meta.Location,
			cdlErrors.SuggestMissingElement("tags", ""),
		)
	}

	if meta.Created != "" && !validTimestamp(meta.Created) {
		v.errors.AddViolationWithSuggestion(
			cdlErrors.ErrorTypeStructural,
			cdlErrors.KindInvalidTimestamp,
			fmt.Sprintf("Creation timestamp %q is not a valid date-time", meta.Created),
			meta.Location,
			"Use RFC 3339, e.g. 2026-08-23T10:00:00Z",
		)
	}
}

// validateSections checks section type membership, identifier uniqueness,
// and content presence across the whole section list.
func (v *StructuralValidator) validateSections(doc *ast.Document) {
	seen := make(map[string]*ast.Section)

	validTypes := make([]string, 0, len(ast.SectionTypes()))
	for _, t := range ast.SectionTypes() {
		validTypes = append(validTypes, string(t))
	}

	for _, section := range doc.Sections {
		if section.ID == "" {
			v.errors.AddViolationWithSuggestion(
				cdlErrors.ErrorTypeStructural,
				cdlErrors.KindMissingField,
				"Section must have an 'id' attribute",
				section.Location,
				cdlErrors.SuggestMissingAttribute("section", "id", "intent-1"),
			)
		}

		if section.Type == "" {
			v.errors.AddViolationWithSuggestion(
				cdlErrors.ErrorTypeStructural,
				cdlErrors.KindMissingField,
				fmt.Sprintf("Section %q must have a 'type' attribute", section.ID),
				section.Location,
				cdlErrors.SuggestMissingAttribute("section", "type", "intent"),
			)
		} else if !section.Type.IsValid() {
			v.errors.AddViolationWithSuggestion(
				cdlErrors.ErrorTypeStructural,
				cdlErrors.KindInvalidEnumValue,
				fmt.Sprintf("Section %q has invalid type %q", section.ID, section.Type),
				section.Location,
				cdlErrors.SuggestSectionType(string(section.Type), validTypes),
			)
		}

		if !section.HasContent {
			v.errors.AddViolationWithSuggestion(
				cdlErrors.ErrorTypeStructural,
				cdlErrors.KindMissingField,
				fmt.Sprintf("Section %q must have a <content> element", section.ID),
				section.Location,
				"An empty <content></content> element is permitted",
			)
		}

		if section.ID == "" {
			continue
		}
		if first, dup := seen[section.ID]; dup {
			// The first duplicate occurrence is reported with both locations.
			v.errors.AddViolationWithSuggestion(
				cdlErrors.ErrorTypeStructural,
				cdlErrors.KindDuplicateID,
				fmt.Sprintf("Duplicate section ID %q (first declared at %s)", section.ID, first.Location),
				section.Location,
				"Section IDs must be unique across the document",
			)
			continue
		}
		seen[section.ID] = section
	}
}

// validTimestamp reports whether s parses under an accepted layout.
func validTimestamp(s string) bool {
	for _, layout := range timestampLayouts {
		if _, err := time.Parse(layout, s); err == nil {
			return true
		}
	}
	return false
}
