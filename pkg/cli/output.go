package cli

import (
	"encoding/json"
	"fmt"
	"io"

	cdlErrors "canvas-hq/loom/pkg/cdl/errors"
)

// OutputFormat represents the output format for command results.
type OutputFormat string

const (
	// FormatText is plain text output (default).
	FormatText OutputFormat = "text"
	// FormatJSON is JSON output.
	FormatJSON OutputFormat = "json"
)

// Formatter formats command output.
type Formatter interface {
	Format(data interface{}) ([]byte, error)
	FormatTo(w io.Writer, data interface{}) error
}

// TextFormatter formats output as plain text.
type TextFormatter struct{}

// Format converts data to text format.
func (f *TextFormatter) Format(data interface{}) ([]byte, error) {
	return []byte(fmt.Sprintf("%v\n", data)), nil
}

// FormatTo writes data to writer in text format.
func (f *TextFormatter) FormatTo(w io.Writer, data interface{}) error {
	_, err := fmt.Fprintf(w, "%v\n", data)
	return err
}

// JSONFormatter formats output as JSON.
type JSONFormatter struct {
	Indent bool
}

// Format converts data to JSON format.
func (f *JSONFormatter) Format(data interface{}) ([]byte, error) {
	if f.Indent {
		return json.MarshalIndent(data, "", "  ")
	}
	return json.Marshal(data)
}

// FormatTo writes data to writer in JSON format.
func (f *JSONFormatter) FormatTo(w io.Writer, data interface{}) error {
	encoder := json.NewEncoder(w)
	if f.Indent {
		encoder.SetIndent("", "  ")
	}
	return encoder.Encode(data)
}

// NewFormatter creates a new formatter for the specified format.
func NewFormatter(format OutputFormat) Formatter {
	switch format {
	case FormatJSON:
		return &JSONFormatter{Indent: true}
	default:
		return &TextFormatter{}
	}
}

// Finding is the JSON shape of one diagnostic.
type Finding struct {
	Type       string `json:"type"`
	Kind       string `json:"kind,omitempty"`
	Severity   string `json:"severity"`
	Message    string `json:"message"`
	Location   string `json:"location,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`
}

// FindingsReport is the JSON shape of a lint run.
type FindingsReport struct {
	Document string    `json:"document"`
	Errors   int       `json:"errors"`
	Warnings int       `json:"warnings"`
	Findings []Finding `json:"findings"`
}

// NewFindingsReport converts a diagnostic list for one document.
func NewFindingsReport(document string, list *cdlErrors.ErrorList) *FindingsReport {
	report := &FindingsReport{
		Document: document,
		Findings: make([]Finding, 0, list.Count()),
	}
	for _, e := range list.Errors {
		severity := string(e.Severity)
		if severity == "" {
			severity = string(cdlErrors.SeverityError)
		}
		if e.IsWarning() {
			report.Warnings++
		} else {
			report.Errors++
		}

		finding := Finding{
			Type:       string(e.Type),
			Kind:       string(e.Kind),
			Severity:   severity,
			Message:    e.Message,
			Suggestion: e.Suggestion,
		}
		if e.Location.IsValid() {
			finding.Location = e.Location.String()
		}
		report.Findings = append(report.Findings, finding)
	}
	return report
}

// RenderFindings writes human-readable diagnostics, one block per finding,
// followed by a summary line.
func RenderFindings(w io.Writer, report *FindingsReport, list *cdlErrors.ErrorList) error {
	for _, e := range list.Errors {
		if _, err := fmt.Fprintln(w, e.Error()); err != nil {
			return err
		}
	}

	summary := fmt.Sprintf("%s: %d error(s), %d warning(s)",
		report.Document, report.Errors, report.Warnings)
	if report.Errors == 0 && report.Warnings == 0 {
		summary = fmt.Sprintf("%s: ok", report.Document)
	}
	_, err := fmt.Fprintln(w, summary)
	return err
}
