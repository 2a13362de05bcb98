package parser

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"canvas-hq/loom/pkg/cdl/ast"
	cdlErrors "canvas-hq/loom/pkg/cdl/errors"
)

// docBuilder walks the XML token stream and constructs the document tree.
// The decoder's input offset is mapped back to line/column through a
// precomputed line index so every entity carries an exact source location.
type docBuilder struct {
	dec   *xml.Decoder
	src   string
	index *lineIndex
}

// parseDocument tokenizes the input and builds the document tree.
// The grammar requires exactly one <context version="..."> root containing
// <meta>, <variables>, and <sections> (the <flow> container is optional).
func parseDocument(data []byte, sourcePath string) (*ast.Document, error) {
	b := &docBuilder{
		dec:   xml.NewDecoder(bytes.NewReader(data)),
		src:   sourcePath,
		index: newLineIndex(data),
	}

	root, loc, err := b.findRoot()
	if err != nil {
		return nil, err
	}

	doc := &ast.Document{
		SourceFile: sourcePath,
		Location:   loc,
	}

	for _, attr := range root.Attr {
		if attr.Name.Local == "version" {
			doc.Version = attr.Value
		}
	}
	if doc.Version == "" {
		return nil, &cdlErrors.Error{
			Type:       cdlErrors.ErrorTypeStructural,
			Kind:       cdlErrors.KindMissingField,
			Message:    "Root <context> element must have a 'version' attribute",
			Location:   loc,
			Suggestion: cdlErrors.SuggestMissingAttribute("context", "version", "1.0"),
		}
	}

	var sawMeta, sawVariables, sawSections bool
	var rootClosed bool

	for {
		tok, tokLoc, err := b.next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, b.syntaxError(err, tokLoc)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			// The decoder's token stream is lenient about sibling roots;
			// a second <context> (or anything else) after the closing tag
			// is a fatal error here.
			if rootClosed {
				return nil, &cdlErrors.Error{
					Type:     cdlErrors.ErrorTypeSyntax,
					Message:  fmt.Sprintf("Unexpected <%s> after closing </context>: a document has exactly one root container", t.Name.Local),
					Location: tokLoc,
				}
			}
			switch t.Name.Local {
			case "meta":
				sawMeta = true
				meta, err := b.parseMeta(tokLoc)
				if err != nil {
					return nil, err
				}
				doc.Meta = meta
			case "variables":
				sawVariables = true
				vars, err := b.parseVariables()
				if err != nil {
					return nil, err
				}
				doc.Variables = vars
			case "sections":
				sawSections = true
				sections, err := b.parseSections()
				if err != nil {
					return nil, err
				}
				doc.Sections = sections
			case "flow":
				flow, err := b.parseFlow(t, tokLoc)
				if err != nil {
					return nil, err
				}
				doc.Flow = flow
			default:
				// Unknown containers are skipped, not errors
				if err := b.dec.Skip(); err != nil {
					return nil, b.syntaxError(err, tokLoc)
				}
			}
		case xml.EndElement:
			if t.Name.Local == "context" {
				rootClosed = true
			}
		}
	}

	for _, missing := range []struct {
		seen bool
		name string
	}{
		{sawMeta, "meta"},
		{sawVariables, "variables"},
		{sawSections, "sections"},
	} {
		if !missing.seen {
			return nil, &cdlErrors.Error{
				Type:       cdlErrors.ErrorTypeStructural,
				Kind:       cdlErrors.KindMissingField,
				Message:    fmt.Sprintf("Required element <%s> is missing", missing.name),
				Location:   loc,
				Suggestion: cdlErrors.SuggestMissingElement(missing.name, ""),
			}
		}
	}

	return doc, nil
}

// findRoot scans to the root element and checks that it is <context>.
func (b *docBuilder) findRoot() (xml.StartElement, ast.Location, error) {
	for {
		tok, loc, err := b.next()
		if err == io.EOF {
			return xml.StartElement{}, loc, &cdlErrors.Error{
				Type:     cdlErrors.ErrorTypeSyntax,
				Message:  "Document is empty: no root element found",
				Location: ast.Location{File: b.src, Line: 1, Column: 1},
			}
		}
		if err != nil {
			return xml.StartElement{}, loc, b.syntaxError(err, loc)
		}

		if start, ok := tok.(xml.StartElement); ok {
			if start.Name.Local != "context" {
				return xml.StartElement{}, loc, &cdlErrors.Error{
					Type:     cdlErrors.ErrorTypeSyntax,
					Message:  fmt.Sprintf("Root element must be <context>, found <%s>", start.Name.Local),
					Location: loc,
				}
			}
			return start, loc, nil
		}
	}
}

// parseMeta parses the <meta> container.
func (b *docBuilder) parseMeta(loc ast.Location) (*ast.Metadata, error) {
	meta := &ast.Metadata{Location: loc}

	for {
		tok, tokLoc, err := b.next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, b.syntaxError(err, tokLoc)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "title":
				meta.Title, err = b.readText()
			case "author":
				meta.Author, err = b.readText()
			case "created":
				meta.Created, err = b.readText()
			case "description":
				meta.Description, err = b.readText()
			case "app":
				for _, attr := range t.Attr {
					switch attr.Name.Local {
					case "name":
						meta.App.Name = attr.Value
					case "version":
						meta.App.Version = attr.Value
					}
				}
				err = b.dec.Skip()
			case "tags":
				var raw string
				raw, err = b.readText()
				if raw != "" {
					for _, tag := range strings.Split(raw, ",") {
						meta.Tags = append(meta.Tags, strings.TrimSpace(tag))
					}
				}
			default:
				err = b.dec.Skip()
			}
			if err != nil {
				return nil, b.syntaxError(err, tokLoc)
			}
		case xml.EndElement:
			if t.Name.Local == "meta" {
				return meta, nil
			}
		}
	}

	return meta, nil
}

// parseVariables parses the <variables> container into the variable list.
func (b *docBuilder) parseVariables() ([]*ast.Variable, error) {
	variables := make([]*ast.Variable, 0)

	for {
		tok, tokLoc, err := b.next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, b.syntaxError(err, tokLoc)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local != "var" {
				if err := b.dec.Skip(); err != nil {
					return nil, b.syntaxError(err, tokLoc)
				}
				continue
			}

			v := &ast.Variable{Location: tokLoc}
			for _, attr := range t.Attr {
				if attr.Name.Local == "name" {
					v.Name = attr.Value
				}
			}

			v.Value, err = b.readText()
			if err != nil {
				return nil, b.syntaxError(err, tokLoc)
			}
			variables = append(variables, v)
		case xml.EndElement:
			if t.Name.Local == "variables" {
				return variables, nil
			}
		}
	}

	return variables, nil
}

// parseSections parses the <sections> container into the flat section list.
func (b *docBuilder) parseSections() ([]*ast.Section, error) {
	sections := make([]*ast.Section, 0)

	for {
		tok, tokLoc, err := b.next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, b.syntaxError(err, tokLoc)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local != "section" {
				if err := b.dec.Skip(); err != nil {
					return nil, b.syntaxError(err, tokLoc)
				}
				continue
			}

			section, err := b.parseSection(t, tokLoc)
			if err != nil {
				return nil, err
			}
			sections = append(sections, section)
		case xml.EndElement:
			if t.Name.Local == "sections" {
				return sections, nil
			}
		}
	}

	return sections, nil
}

// parseSection parses a single <section> element. A nested <section> is a
// fatal parse error: every downstream consumer assumes a one-level list, so
// the parser fails fast instead of silently flattening.
func (b *docBuilder) parseSection(start xml.StartElement, loc ast.Location) (*ast.Section, error) {
	section := &ast.Section{Location: loc}

	for _, attr := range start.Attr {
		switch attr.Name.Local {
		case "id":
			section.ID = attr.Value
		case "type":
			section.Type = ast.SectionType(attr.Value)
		case "refTarget":
			section.RefTarget = attr.Value
		}
	}

	for {
		tok, tokLoc, err := b.next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, b.syntaxError(err, tokLoc)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "content":
				// Content blocks are read verbatim: whitespace and
				// formatting preserved, no re-indentation.
				section.Content, err = b.readVerbatim()
				if err != nil {
					return nil, b.syntaxError(err, tokLoc)
				}
				section.HasContent = true
			case "section":
				return nil, &cdlErrors.Error{
					Type:       cdlErrors.ErrorTypeStructural,
					Kind:       cdlErrors.KindNestedSection,
					Message:    fmt.Sprintf("Section %q contains a nested section; sections must be direct children of <sections>", section.ID),
					Location:   tokLoc,
					Suggestion: "Move the inner section up to the top-level <sections> list",
				}
			default:
				if err := b.dec.Skip(); err != nil {
					return nil, b.syntaxError(err, tokLoc)
				}
			}
		case xml.EndElement:
			if t.Name.Local == "section" {
				return section, nil
			}
		}
	}

	return section, nil
}

// parseFlow parses the optional <flow> container. The diagram text is kept
// verbatim; the flowchart grammar parser derives the graph later.
func (b *docBuilder) parseFlow(start xml.StartElement, loc ast.Location) (*ast.Flow, error) {
	flow := &ast.Flow{Location: loc}

	for _, attr := range start.Attr {
		switch attr.Name.Local {
		case "id":
			flow.ID = attr.Value
		case "version":
			flow.Version = attr.Value
		}
	}

	for {
		tok, tokLoc, err := b.next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, b.syntaxError(err, tokLoc)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "title":
				flow.Title, err = b.readText()
			case "diagram":
				flow.Source, err = b.readVerbatim()
			default:
				err = b.dec.Skip()
			}
			if err != nil {
				return nil, b.syntaxError(err, tokLoc)
			}
		case xml.EndElement:
			if t.Name.Local == "flow" {
				return flow, nil
			}
		}
	}

	return flow, nil
}

// readText reads the character data of the current element, trimmed.
// Used for scalar metadata fields where surrounding whitespace is noise.
func (b *docBuilder) readText() (string, error) {
	text, err := b.readVerbatim()
	return strings.TrimSpace(text), err
}

// readVerbatim reads the character data of the current element exactly as
// authored (CDATA included), stopping at the closing tag.
func (b *docBuilder) readVerbatim() (string, error) {
	var sb strings.Builder
	depth := 0

	for {
		tok, err := b.dec.Token()
		if err == io.EOF {
			return sb.String(), nil
		}
		if err != nil {
			return "", err
		}

		switch t := tok.(type) {
		case xml.CharData:
			if depth == 0 {
				sb.Write(t)
			}
		case xml.StartElement:
			depth++
		case xml.EndElement:
			if depth == 0 {
				return sb.String(), nil
			}
			depth--
		}
	}
}

// next returns the next token along with the location of its first byte.
func (b *docBuilder) next() (xml.Token, ast.Location, error) {
	start := b.dec.InputOffset()
	tok, err := b.dec.Token()
	line, col := b.index.locate(start)
	return tok, ast.Location{File: b.src, Line: line, Column: col}, err
}

// syntaxError wraps a decoder error as a fatal syntax error.
func (b *docBuilder) syntaxError(err error, loc ast.Location) error {
	if loc.Line == 0 {
		loc = ast.Location{File: b.src, Line: 1, Column: 1}
	}
	return &cdlErrors.Error{
		Type:       cdlErrors.ErrorTypeSyntax,
		Message:    fmt.Sprintf("XML parsing failed: %v", err),
		Location:   loc,
		Suggestion: "Check the document markup (matching tags, quoting, CDATA fences)",
	}
}

// lineIndex maps byte offsets in the input to 1-based line/column pairs.
type lineIndex struct {
	starts []int64 // Byte offset of the first byte of each line
}

func newLineIndex(data []byte) *lineIndex {
	starts := []int64{0}
	for i, c := range data {
		if c == '\n' {
			starts = append(starts, int64(i)+1)
		}
	}
	return &lineIndex{starts: starts}
}

// locate returns the 1-based line and column for a byte offset.
func (li *lineIndex) locate(offset int64) (line, col int) {
	// Binary search for the last line start <= offset
	lo, hi := 0, len(li.starts)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if li.starts[mid] <= offset {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return lo + 1, int(offset-li.starts[lo]) + 1
}
