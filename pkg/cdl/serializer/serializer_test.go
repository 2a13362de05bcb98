package serializer

import (
	"strings"
	"testing"

	"canvas-hq/loom/pkg/cdl/ast"
	"canvas-hq/loom/pkg/cdl/parser"
)

func testDocument() *ast.Document {
	return &ast.Document{
		Version: "1.0",
		Meta: &ast.Metadata{
			Title:       "Test Document",
			Author:      "Test Author",
			Created:     "2026-08-20",
			App:         ast.AppInfo{Name: "loom", Version: "0.1.0"},
			Tags:        []string{"test", "doc"},
			Description: "A test document",
		},
		Variables: []*ast.Variable{
			{Name: "userName", Value: "Jordan"},
		},
		Sections: []*ast.Section{
			{
				ID:         "intent-1",
				Type:       ast.SectionIntent,
				Content:    "# Intent\nThis is test content",
				HasContent: true,
			},
		},
	}
}

func TestSerialize_BasicDocument(t *testing.T) {
	xml, err := Serialize(testDocument())
	if err != nil {
		t.Fatalf("Serialize() failed: %v", err)
	}

	for _, want := range []string{
		`<context version="1.0">`,
		"<title>Test Document</title>",
		"<author>Test Author</author>",
		`<var name="userName">Jordan</var>`,
		`<section id="intent-1" type="intent">`,
		"CDATA",
		"<tags>test, doc</tags>",
	} {
		if !strings.Contains(xml, want) {
			t.Errorf("output missing %q:\n%s", want, xml)
		}
	}
}

func TestSerialize_WithFlow(t *testing.T) {
	doc := testDocument()
	doc.Flow = &ast.Flow{
		ID:      "flow-1",
		Version: "1.0",
		Title:   "Test Flow",
		Source:  "flowchart TD\n  A --> B",
	}

	xml, err := Serialize(doc)
	if err != nil {
		t.Fatalf("Serialize() failed: %v", err)
	}

	if !strings.Contains(xml, `<flow id="flow-1" version="1.0">`) {
		t.Errorf("output missing flow element:\n%s", xml)
	}
	if !strings.Contains(xml, "<title>Test Flow</title>") {
		t.Errorf("output missing flow title:\n%s", xml)
	}
	if !strings.Contains(xml, "A --> B") {
		t.Errorf("output missing diagram body:\n%s", xml)
	}
}

func TestSerialize_RefTarget(t *testing.T) {
	doc := testDocument()
	doc.Sections[0].RefTarget = "other-doc"

	xml, err := Serialize(doc)
	if err != nil {
		t.Fatalf("Serialize() failed: %v", err)
	}
	if !strings.Contains(xml, `refTarget="other-doc"`) {
		t.Errorf("output missing refTarget attribute:\n%s", xml)
	}
}

func TestSerialize_Nil(t *testing.T) {
	if _, err := Serialize(nil); err == nil {
		t.Error("Serialize(nil) succeeded")
	}
}

func TestSerialize_RoundTrip(t *testing.T) {
	doc := testDocument()
	doc.Flow = &ast.Flow{
		ID:      "flow-1",
		Version: "1.0",
		Title:   "Round Trip",
		Source:  "flowchart TD\n  A[Start] --> B[End]",
	}

	xml, err := Serialize(doc)
	if err != nil {
		t.Fatalf("Serialize() failed: %v", err)
	}

	parsed, err := parser.NewParser().ParseBytes([]byte(xml), "roundtrip.cdx")
	if err != nil {
		t.Fatalf("re-parsing serialized output failed: %v", err)
	}

	if parsed.Meta.Title != doc.Meta.Title {
		t.Errorf("Title = %q, want %q", parsed.Meta.Title, doc.Meta.Title)
	}
	if len(parsed.Meta.Tags) != 2 {
		t.Errorf("Tags = %v", parsed.Meta.Tags)
	}
	if v := parsed.GetVariable("userName"); v == nil || v.Value != "Jordan" {
		t.Errorf("variable userName = %v", v)
	}
	s := parsed.GetSection("intent-1")
	if s == nil {
		t.Fatal("section intent-1 missing after round trip")
	}
	// Content must survive byte-exact: no trimming, no added padding.
	if s.Content != doc.Sections[0].Content {
		t.Errorf("content = %q, want %q", s.Content, doc.Sections[0].Content)
	}
	if parsed.Flow == nil {
		t.Fatal("flow missing after round trip")
	}
	if parsed.Flow.Source != doc.Flow.Source {
		t.Errorf("flow source = %q, want %q", parsed.Flow.Source, doc.Flow.Source)
	}
}

func TestSerialize_ContentByteExact(t *testing.T) {
	for _, content := range []string{
		"Goal: Ship v1",
		"  leading and trailing  ",
		"\nnewline padded\n",
		"",
	} {
		doc := testDocument()
		doc.Sections[0].Content = content

		xml, err := Serialize(doc)
		if err != nil {
			t.Fatalf("Serialize() failed: %v", err)
		}
		parsed, err := parser.NewParser().ParseBytes([]byte(xml), "exact.cdx")
		if err != nil {
			t.Fatalf("re-parsing failed: %v", err)
		}
		if got := parsed.GetSection("intent-1").Content; got != content {
			t.Errorf("round-tripped content = %q, want %q", got, content)
		}
	}
}

func TestSerialize_ContentWithSeparators(t *testing.T) {
	doc := testDocument()
	doc.Sections[0].Content = "First block\n---\nSecond block"

	xml, err := Serialize(doc)
	if err != nil {
		t.Fatalf("Serialize() failed: %v", err)
	}
	for _, want := range []string{"First block", "---", "Second block"} {
		if !strings.Contains(xml, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestSerialize_CDATATerminatorEscaped(t *testing.T) {
	doc := testDocument()
	doc.Sections[0].Content = "literal ]]> inside"

	xml, err := Serialize(doc)
	if err != nil {
		t.Fatalf("Serialize() failed: %v", err)
	}

	parsed, err := parser.NewParser().ParseBytes([]byte(xml), "cdata.cdx")
	if err != nil {
		t.Fatalf("re-parsing failed: %v", err)
	}
	got := parsed.GetSection("intent-1").Content
	if !strings.Contains(got, "literal ]]> inside") {
		t.Errorf("content = %q, want the CDATA terminator preserved", got)
	}
}

func TestScaffold(t *testing.T) {
	doc := Scaffold(ScaffoldOptions{Title: "My Project", Author: "Sam", WithFlow: true})

	if doc.Meta.Title != "My Project" || doc.Meta.Author != "Sam" {
		t.Errorf("meta = %+v", doc.Meta)
	}
	if doc.SectionCount() != len(ast.SectionTypes()) {
		t.Errorf("SectionCount() = %d, want one per type", doc.SectionCount())
	}
	if doc.Flow == nil || !strings.HasPrefix(doc.Flow.ID, "flow-") {
		t.Errorf("flow = %+v", doc.Flow)
	}

	// Two scaffolds never share a flow ID.
	other := Scaffold(ScaffoldOptions{Title: "My Project", WithFlow: true})
	if other.Flow.ID == doc.Flow.ID {
		t.Error("scaffolded flow IDs collided")
	}
}

func TestScaffold_Defaults(t *testing.T) {
	doc := Scaffold(ScaffoldOptions{})
	if doc.Meta.Title != "Untitled Document" {
		t.Errorf("Title = %q", doc.Meta.Title)
	}
	if doc.Flow != nil {
		t.Error("flow scaffolded without WithFlow")
	}
}

func TestScaffold_SerializesValid(t *testing.T) {
	doc := Scaffold(ScaffoldOptions{Title: "Valid Check", Author: "QA", WithFlow: true})

	xml, err := Serialize(doc)
	if err != nil {
		t.Fatalf("Serialize() failed: %v", err)
	}
	if _, err := parser.NewParser().ParseBytes([]byte(xml), "scaffold.cdx"); err != nil {
		t.Errorf("scaffold does not re-parse: %v", err)
	}
}
