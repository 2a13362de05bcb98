package errors

import (
	"fmt"
	"strings"

	"canvas-hq/loom/pkg/cdl/ast"
)

// ErrorType categorizes the stage at which a problem was detected.
type ErrorType string

const (
	ErrorTypeSyntax     ErrorType = "syntax"     // Malformed XML, cannot continue parsing
	ErrorTypeStructural ErrorType = "structural" // Document-shape violation (missing/invalid/nested)
	ErrorTypeGraph      ErrorType = "graph"      // Diagram grammar or graph invariant violation
	ErrorTypeIO         ErrorType = "io"         // File access error
)

// Kind names the specific violation within a type. Validators tag every
// violation with a kind so callers can react programmatically.
type Kind string

const (
	KindMissingField     Kind = "missing-field"
	KindDuplicateID      Kind = "duplicate-id"
	KindInvalidEnumValue Kind = "invalid-enum-value"
	KindNestedSection    Kind = "nested-section"
	KindInvalidTimestamp Kind = "invalid-timestamp"
	KindDanglingRef      Kind = "dangling-reference"
	KindDuplicateNodeID  Kind = "duplicate-node-id"
	KindSelfReference    Kind = "self-reference"
)

// Severity distinguishes hard violations from warning-class issues.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Error represents a rich error with location, context, and suggestions.
type Error struct {
	Type       ErrorType    // Stage of detection
	Kind       Kind         // Specific violation ("" for syntax/io errors)
	Severity   Severity     // Error or warning ("" means error)
	Message    string       // Human-readable message naming the offending construct
	Location   ast.Location // Source location (file, line, column)
	Context    string       // Surrounding lines of the document
	Suggestion string       // Suggested fix (optional)
}

// IsWarning returns true for warning-class violations.
func (e *Error) IsWarning() bool {
	return e.Severity == SeverityWarning
}

// Error implements the error interface.
// It returns a formatted message with location and context.
func (e *Error) Error() string {
	var sb strings.Builder

	label := string(e.Type)
	if e.Kind != "" {
		label = fmt.Sprintf("%s/%s", e.Type, e.Kind)
	}
	sb.WriteString(fmt.Sprintf("[%s] %s\n", label, e.Message))

	if e.Location.IsValid() {
		sb.WriteString(fmt.Sprintf("  --> %s\n", e.Location.String()))
	}

	if e.Context != "" {
		sb.WriteString("  |\n")
		sb.WriteString(e.Context)
		sb.WriteString("  |\n")
	}

	if e.Suggestion != "" {
		sb.WriteString(fmt.Sprintf("  = suggestion: %s\n", e.Suggestion))
	}

	return sb.String()
}

// ErrorList accumulates violations so a single pass surfaces every problem
// instead of failing on the first.
type ErrorList struct {
	Errors []*Error
}

// NewErrorList creates a new empty error list.
func NewErrorList() *ErrorList {
	return &ErrorList{
		Errors: make([]*Error, 0),
	}
}

// Add appends an error to the list.
func (el *ErrorList) Add(err *Error) {
	el.Errors = append(el.Errors, err)
}

// AddViolation creates and adds a violation with the given type and kind.
func (el *ErrorList) AddViolation(errType ErrorType, kind Kind, message string, location ast.Location) {
	el.Add(&Error{
		Type:     errType,
		Kind:     kind,
		Severity: SeverityError,
		Message:  message,
		Location: location,
	})
}

// AddWarning creates and adds a warning-class violation.
func (el *ErrorList) AddWarning(errType ErrorType, kind Kind, message string, location ast.Location) {
	el.Add(&Error{
		Type:     errType,
		Kind:     kind,
		Severity: SeverityWarning,
		Message:  message,
		Location: location,
	})
}

// AddViolationWithSuggestion creates and adds a violation with a suggested fix.
func (el *ErrorList) AddViolationWithSuggestion(errType ErrorType, kind Kind, message string, location ast.Location, suggestion string) {
	el.Add(&Error{
		Type:       errType,
		Kind:       kind,
		Severity:   SeverityError,
		Message:    message,
		Location:   location,
		Suggestion: suggestion,
	})
}

// HasErrors returns true if the list contains any entries, warnings included.
func (el *ErrorList) HasErrors() bool {
	return len(el.Errors) > 0
}

// HasHardErrors returns true if the list contains at least one non-warning entry.
func (el *ErrorList) HasHardErrors() bool {
	for _, err := range el.Errors {
		if !err.IsWarning() {
			return true
		}
	}
	return false
}

// Count returns the number of entries in the list.
func (el *ErrorList) Count() int {
	return len(el.Errors)
}

// Warnings returns the warning-class entries.
func (el *ErrorList) Warnings() []*Error {
	var result []*Error
	for _, err := range el.Errors {
		if err.IsWarning() {
			result = append(result, err)
		}
	}
	return result
}

// Error implements the error interface.
// It returns all entries formatted as a single string.
func (el *ErrorList) Error() string {
	if !el.HasErrors() {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d problem(s):\n\n", el.Count()))

	for i, err := range el.Errors {
		sb.WriteString(fmt.Sprintf("Problem %d:\n", i+1))
		sb.WriteString(err.Error())
		sb.WriteString("\n")
	}

	return sb.String()
}

// ToError returns nil if the list is empty, otherwise the list itself.
func (el *ErrorList) ToError() error {
	if !el.HasErrors() {
		return nil
	}
	return el
}

// ByType returns all entries of the given type.
func (el *ErrorList) ByType(errType ErrorType) []*Error {
	var result []*Error
	for _, err := range el.Errors {
		if err.Type == errType {
			result = append(result, err)
		}
	}
	return result
}

// ByKind returns all entries of the given kind.
func (el *ErrorList) ByKind(kind Kind) []*Error {
	var result []*Error
	for _, err := range el.Errors {
		if err.Kind == kind {
			result = append(result, err)
		}
	}
	return result
}

// HasErrorType returns true if the list contains at least one entry of the given type.
func (el *ErrorList) HasErrorType(errType ErrorType) bool {
	for _, err := range el.Errors {
		if err.Type == errType {
			return true
		}
	}
	return false
}

// HasKind returns true if the list contains at least one entry of the given kind.
func (el *ErrorList) HasKind(kind Kind) bool {
	for _, err := range el.Errors {
		if err.Kind == kind {
			return true
		}
	}
	return false
}
