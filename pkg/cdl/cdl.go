package cdl

import (
	"canvas-hq/loom/pkg/cdl/ast"
	cdlErrors "canvas-hq/loom/pkg/cdl/errors"
	"canvas-hq/loom/pkg/cdl/mermaid"
	"canvas-hq/loom/pkg/cdl/parser"
	"canvas-hq/loom/pkg/cdl/resolver"
	"canvas-hq/loom/pkg/cdl/validator"
)

// Loader assembles documents from source text: parse, validate, resolve
// variables, and derive the flow graph. It is safe for concurrent use.
type Loader struct {
	parser    *parser.Parser
	validator *validator.Validator
	strict    bool
}

// Option configures a Loader.
type Option func(*Loader)

// WithStrict promotes warning-class findings to load failures.
func WithStrict(strict bool) Option {
	return func(l *Loader) {
		l.strict = strict
	}
}

// WithMaxFileSize caps the input size the loader will read.
func WithMaxFileSize(size int64) Option {
	return func(l *Loader) {
		l.parser.WithMaxFileSize(size)
	}
}

// NewLoader creates a loader with default configuration.
func NewLoader(opts ...Option) *Loader {
	l := &Loader{
		parser:    parser.NewParser(),
		validator: validator.NewValidator(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Result is a successfully assembled document together with the
// warning-class findings that did not block the load.
type Result struct {
	Document *ast.Document
	Warnings []*cdlErrors.Error
}

// LoadDocument runs the full pipeline on a file: parse, structural
// validation, variable resolution, diagram parsing, graph validation.
//
// Structural failures abort before resolution so downstream consumers never
// see a half-valid tree. Graph warnings are reported on the Result; they
// fail the load only in strict mode.
func (l *Loader) LoadDocument(path string) (*Result, error) {
	doc, err := l.parser.Parse(path)
	if err != nil {
		return nil, err
	}
	return l.assemble(doc)
}

// LoadDocumentBytes runs the full pipeline on in-memory document text.
// The source path is used for error locations only.
func (l *Loader) LoadDocumentBytes(data []byte, sourcePath string) (*Result, error) {
	doc, err := l.parser.ParseBytes(data, sourcePath)
	if err != nil {
		return nil, err
	}
	return l.assemble(doc)
}

// LoadSections is the fast loading path: parse, structural validation, and
// variable resolution, but no diagram parsing. Callers that only render
// section content avoid the graph cost entirely.
func (l *Loader) LoadSections(path string) (*ast.Document, error) {
	doc, err := l.parser.Parse(path)
	if err != nil {
		return nil, err
	}

	if err := l.validator.ValidateStructure(doc); err != nil {
		return nil, err
	}

	resolver.ResolveSections(doc.Sections, resolver.BuildMap(doc.Variables))
	return doc, nil
}

// LoadFlow is the slow loading path: parse the document, derive the flow
// graph, and validate it against the section set. Returns nil without error
// when the document has no flow.
func (l *Loader) LoadFlow(path string) (*ast.Flow, error) {
	doc, err := l.parser.Parse(path)
	if err != nil {
		return nil, err
	}
	if doc.Flow == nil {
		return nil, nil
	}

	if err := mermaid.Enrich(doc.Flow); err != nil {
		return nil, err
	}
	if err := l.checkGraph(doc); err != nil {
		return nil, err
	}
	return doc.Flow, nil
}

// LoadMetadata parses a file and returns only its metadata block. Used for
// workspace listings where the section and flow cost is wasted.
func (l *Loader) LoadMetadata(path string) (*ast.Metadata, error) {
	doc, err := l.parser.Parse(path)
	if err != nil {
		return nil, err
	}
	return doc.Meta, nil
}

// assemble runs the post-parse stages on a tree in pipeline order.
func (l *Loader) assemble(doc *ast.Document) (*Result, error) {
	if err := l.validator.ValidateStructure(doc); err != nil {
		return nil, err
	}

	resolver.ResolveSections(doc.Sections, resolver.BuildMap(doc.Variables))

	result := &Result{Document: doc}

	if doc.Flow != nil {
		if err := mermaid.Enrich(doc.Flow); err != nil {
			return nil, err
		}
		if err := l.checkGraph(doc); err != nil {
			return nil, err
		}
		if list := l.graphWarnings(doc); len(list) > 0 {
			result.Warnings = list
		}
	}

	return result, nil
}

// checkGraph runs graph validation and decides whether its findings block
// the load. Hard violations always do; warnings only in strict mode.
func (l *Loader) checkGraph(doc *ast.Document) error {
	err := l.validator.ValidateGraph(doc)
	if err == nil {
		return nil
	}

	list, ok := err.(*cdlErrors.ErrorList)
	if !ok {
		return err
	}
	if list.HasHardErrors() || l.strict {
		return list
	}
	return nil
}

// graphWarnings re-collects the warning-class graph findings for reporting.
func (l *Loader) graphWarnings(doc *ast.Document) []*cdlErrors.Error {
	err := l.validator.ValidateGraph(doc)
	if err == nil {
		return nil
	}
	if list, ok := err.(*cdlErrors.ErrorList); ok {
		return list.Warnings()
	}
	return nil
}

// Lint parses and validates without resolving or enriching, returning the
// full merged finding list. A syntax or IO failure is returned as the error
// since no tree exists to lint.
func (l *Loader) Lint(path string) (*cdlErrors.ErrorList, error) {
	doc, err := l.parser.Parse(path)
	if err != nil {
		return nil, err
	}

	if doc.Flow != nil {
		if err := mermaid.Enrich(doc.Flow); err != nil {
			list := cdlErrors.NewErrorList()
			if graphErr, ok := err.(*cdlErrors.Error); ok {
				list.Add(graphErr)
			} else {
				list.AddViolation(cdlErrors.ErrorTypeGraph, "", err.Error(), doc.Flow.Location)
			}
			merged := l.validator.CollectAll(doc)
			merged.Errors = append(merged.Errors, list.Errors...)
			return merged, nil
		}
	}

	return l.validator.CollectAll(doc), nil
}

// LoadDocument loads a document with a default loader.
func LoadDocument(path string) (*Result, error) {
	return NewLoader().LoadDocument(path)
}

// LoadSections loads only the resolved sections with a default loader.
func LoadSections(path string) (*ast.Document, error) {
	return NewLoader().LoadSections(path)
}

// LoadFlow loads only the flow graph with a default loader.
func LoadFlow(path string) (*ast.Flow, error) {
	return NewLoader().LoadFlow(path)
}
