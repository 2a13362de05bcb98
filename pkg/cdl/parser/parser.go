package parser

import (
	"fmt"
	"os"

	"canvas-hq/loom/pkg/cdl/ast"
	cdlErrors "canvas-hq/loom/pkg/cdl/errors"
)

// Parser parses CDL document text into typed document trees.
// It handles XML tokenizing, tree construction, and the parse-time structural
// rules (single root, required containers, flat sections).
type Parser struct {
	maxFileSize int64 // Maximum input size in bytes (default: 10MB)
}

// NewParser creates a new parser with default configuration.
func NewParser() *Parser {
	return &Parser{
		maxFileSize: 10 * 1024 * 1024, // 10MB
	}
}

// WithMaxFileSize sets the maximum input size limit.
func (p *Parser) WithMaxFileSize(size int64) *Parser {
	p.maxFileSize = size
	return p
}

// Parse parses a document file at the given path and returns the tree.
// It returns an error if the file cannot be read, the XML is malformed,
// or a parse-time structural rule is broken.
func (p *Parser) Parse(path string) (*ast.Document, error) {
	fileInfo, err := os.Stat(path)
	if err != nil {
		return nil, &cdlErrors.Error{
			Type:    cdlErrors.ErrorTypeIO,
			Message: fmt.Sprintf("Failed to access file: %v", err),
			Location: ast.Location{
				File: path,
			},
		}
	}

	if fileInfo.Size() > p.maxFileSize {
		return nil, &cdlErrors.Error{
			Type:    cdlErrors.ErrorTypeIO,
			Message: fmt.Sprintf("File size %d exceeds maximum %d bytes", fileInfo.Size(), p.maxFileSize),
			Location: ast.Location{
				File: path,
			},
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &cdlErrors.Error{
			Type:    cdlErrors.ErrorTypeIO,
			Message: fmt.Sprintf("Failed to read file: %v", err),
			Location: ast.Location{
				File: path,
			},
		}
	}

	doc, err := parseDocument(data, path)
	if err != nil {
		if parseErr, ok := err.(*cdlErrors.Error); ok {
			return nil, cdlErrors.AddContextToError(parseErr)
		}
		return nil, err
	}

	return doc, nil
}

// ParseBytes parses document text from a byte slice.
// This is useful for testing or parsing documents from memory.
func (p *Parser) ParseBytes(data []byte, sourcePath string) (*ast.Document, error) {
	if int64(len(data)) > p.maxFileSize {
		return nil, &cdlErrors.Error{
			Type:    cdlErrors.ErrorTypeIO,
			Message: fmt.Sprintf("Data size %d exceeds maximum %d bytes", len(data), p.maxFileSize),
			Location: ast.Location{
				File: sourcePath,
			},
		}
	}

	return parseDocument(data, sourcePath)
}
