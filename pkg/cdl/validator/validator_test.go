package validator

import (
	"strings"
	"testing"

	"canvas-hq/loom/pkg/cdl/ast"
	cdlErrors "canvas-hq/loom/pkg/cdl/errors"
	"canvas-hq/loom/pkg/cdl/mermaid"
	"canvas-hq/loom/pkg/cdl/parser"
)

func parseFixture(t *testing.T, name string) *ast.Document {
	t.Helper()
	doc, err := parser.NewParser().Parse("../../../internal/cdl/testdata/" + name)
	if err != nil {
		t.Fatalf("Parse(%s) failed: %v", name, err)
	}
	return doc
}

func asList(t *testing.T, err error) *cdlErrors.ErrorList {
	t.Helper()
	if err == nil {
		t.Fatal("validation passed, want violations")
	}
	list, ok := err.(*cdlErrors.ErrorList)
	if !ok {
		t.Fatalf("error type = %T, want *errors.ErrorList", err)
	}
	return list
}

func TestStructural_ValidDocument(t *testing.T) {
	doc := parseFixture(t, "valid/simple.cdx")
	if err := NewStructuralValidator().Validate(doc); err != nil {
		t.Errorf("Validate() failed on a valid document: %v", err)
	}
}

func TestStructural_BareDateAccepted(t *testing.T) {
	doc := parseFixture(t, "valid/no-flow.cdx")
	if err := NewStructuralValidator().Validate(doc); err != nil {
		t.Errorf("Validate() rejected a bare-date created field: %v", err)
	}
}

func TestStructural_InvalidSectionType(t *testing.T) {
	doc := parseFixture(t, "invalid/bad-type.cdx")
	list := asList(t, NewStructuralValidator().Validate(doc))

	hits := list.ByKind(cdlErrors.KindInvalidEnumValue)
	if len(hits) != 1 {
		t.Fatalf("invalid-enum-value count = %d, want 1", len(hits))
	}
	if !strings.Contains(hits[0].Suggestion, "intent") {
		t.Errorf("suggestion = %q, want a hint toward 'intent'", hits[0].Suggestion)
	}
	if hits[0].Location.Line == 0 {
		t.Error("violation has no source line")
	}
}

func TestStructural_DuplicateSectionID(t *testing.T) {
	doc := parseFixture(t, "invalid/duplicate-id.cdx")
	list := asList(t, NewStructuralValidator().Validate(doc))

	hits := list.ByKind(cdlErrors.KindDuplicateID)
	if len(hits) != 1 {
		t.Fatalf("duplicate-id count = %d, want 1", len(hits))
	}
	// The report names the first declaration's location.
	if !strings.Contains(hits[0].Message, "first declared at") {
		t.Errorf("message = %q", hits[0].Message)
	}
}

func TestStructural_InvalidTimestamp(t *testing.T) {
	doc := parseFixture(t, "invalid/bad-timestamp.cdx")
	list := asList(t, NewStructuralValidator().Validate(doc))

	if !list.HasKind(cdlErrors.KindInvalidTimestamp) {
		t.Errorf("missing invalid-timestamp violation in:\n%v", list)
	}
}

func TestStructural_MissingMetaFields(t *testing.T) {
	doc := &ast.Document{
		Version: "1.0",
		Meta: &ast.Metadata{
			Title: "only a title",
		},
		Sections: []*ast.Section{
			{ID: "intent-1", Type: ast.SectionIntent, HasContent: true},
		},
	}

	list := asList(t, NewStructuralValidator().Validate(doc))

	// author, created, description, app name, app version, tags
	if got := len(list.ByKind(cdlErrors.KindMissingField)); got != 6 {
		t.Errorf("missing-field count = %d, want 6:\n%v", got, list)
	}
}

func TestStructural_NilMeta(t *testing.T) {
	doc := &ast.Document{Version: "1.0"}
	list := asList(t, NewStructuralValidator().Validate(doc))
	if !list.HasKind(cdlErrors.KindMissingField) {
		t.Error("nil metadata produced no missing-field violation")
	}
}

func TestStructural_MissingContent(t *testing.T) {
	doc := &ast.Document{
		Version: "1.0",
		Meta:    validMeta(),
		Sections: []*ast.Section{
			{ID: "intent-1", Type: ast.SectionIntent}, // no content element
		},
	}

	list := asList(t, NewStructuralValidator().Validate(doc))
	if got := len(list.ByKind(cdlErrors.KindMissingField)); got != 1 {
		t.Errorf("missing-field count = %d, want 1:\n%v", got, list)
	}
}

func TestStructural_EmptyContentAllowed(t *testing.T) {
	doc := &ast.Document{
		Version: "1.0",
		Meta:    validMeta(),
		Sections: []*ast.Section{
			{ID: "intent-1", Type: ast.SectionIntent, Content: "", HasContent: true},
		},
	}

	if err := NewStructuralValidator().Validate(doc); err != nil {
		t.Errorf("Validate() rejected an empty content element: %v", err)
	}
}

func validMeta() *ast.Metadata {
	return &ast.Metadata{
		Title:       "t",
		Author:      "a",
		Created:     "2026-08-01",
		App:         ast.AppInfo{Name: "loom", Version: "0.1.0"},
		Tags:        []string{"x"},
		Description: "d",
	}
}

func TestGraph_DanglingReference(t *testing.T) {
	doc := parseFixture(t, "invalid/dangling-ref.cdx")
	if err := mermaid.Enrich(doc.Flow); err != nil {
		t.Fatalf("Enrich() failed: %v", err)
	}

	err := NewGraphValidator().Validate(doc.Flow.Graph, doc.Flow.Refs, doc.SectionIDs())
	list := asList(t, err)

	// Exactly one violation for the one dangling binding.
	hits := list.ByKind(cdlErrors.KindDanglingRef)
	if len(hits) != 1 {
		t.Fatalf("dangling-reference count = %d, want 1:\n%v", len(hits), list)
	}
	if !strings.Contains(hits[0].Message, "ghost-section") {
		t.Errorf("message = %q", hits[0].Message)
	}
}

func TestGraph_SelfLoopIsWarning(t *testing.T) {
	graph := &ast.Graph{
		Nodes: []*ast.Node{{ID: "A", Shape: ast.ShapeRectangle, Line: 2}},
		Edges: []*ast.Edge{{From: "A", To: "A", Line: 3}},
	}

	err := NewGraphValidator().Validate(graph, nil, nil)
	list := asList(t, err)

	if list.HasHardErrors() {
		t.Errorf("self-loop produced a hard error:\n%v", list)
	}
	if got := len(list.Warnings()); got != 1 {
		t.Errorf("warning count = %d, want 1", got)
	}
	if !list.HasKind(cdlErrors.KindSelfReference) {
		t.Error("missing self-reference warning")
	}
}

func TestGraph_DuplicateNodeID(t *testing.T) {
	graph := &ast.Graph{
		Nodes: []*ast.Node{
			{ID: "A", Line: 2},
			{ID: "A", Line: 5},
		},
	}

	err := NewGraphValidator().Validate(graph, nil, nil)
	list := asList(t, err)
	if !list.HasKind(cdlErrors.KindDuplicateNodeID) {
		t.Errorf("missing duplicate-node-id violation:\n%v", list)
	}
}

func TestGraph_ValidGraphPasses(t *testing.T) {
	doc := parseFixture(t, "valid/simple.cdx")
	if err := mermaid.Enrich(doc.Flow); err != nil {
		t.Fatalf("Enrich() failed: %v", err)
	}
	if err := NewGraphValidator().Validate(doc.Flow.Graph, doc.Flow.Refs, doc.SectionIDs()); err != nil {
		t.Errorf("Validate() failed on a valid graph: %v", err)
	}
}

func TestValidator_Orchestration(t *testing.T) {
	v := NewValidator()

	doc := parseFixture(t, "valid/simple.cdx")
	if err := mermaid.Enrich(doc.Flow); err != nil {
		t.Fatalf("Enrich() failed: %v", err)
	}
	if err := v.Validate(doc); err != nil {
		t.Errorf("Validate() failed on a valid document: %v", err)
	}

	// Structural failures abort before graph validation.
	bad := parseFixture(t, "invalid/bad-type.cdx")
	list := asList(t, v.Validate(bad))
	if list.HasErrorType(cdlErrors.ErrorTypeGraph) {
		t.Error("graph findings reported despite structural failure")
	}
}

func TestAnalyzeReachability(t *testing.T) {
	graph := &ast.Graph{
		Nodes: []*ast.Node{
			{ID: "A"}, {ID: "B"}, {ID: "C"}, {ID: "island"},
		},
		Edges: []*ast.Edge{
			{From: "A", To: "B"},
			{From: "B", To: "C"},
		},
	}

	r := AnalyzeReachability(graph)
	if r.Entry != "A" {
		t.Errorf("Entry = %q, want A", r.Entry)
	}
	if len(r.Reachable) != 3 {
		t.Errorf("Reachable = %v, want 3 nodes", r.Reachable)
	}
	if len(r.Isolated) != 1 || r.Isolated[0] != "island" {
		t.Errorf("Isolated = %v, want [island]", r.Isolated)
	}

	empty := AnalyzeReachability(&ast.Graph{})
	if empty.Entry != "" || len(empty.Reachable) != 0 {
		t.Errorf("empty graph report = %+v", empty)
	}
}
