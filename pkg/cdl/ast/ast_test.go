package ast

import "testing"

func TestSectionType_IsValid(t *testing.T) {
	tests := []struct {
		typ   SectionType
		valid bool
	}{
		{SectionIntent, true},
		{SectionEvaluation, true},
		{SectionProcess, true},
		{SectionAlternatives, true},
		{SectionType("intnet"), false},
		{SectionType(""), false},
		{SectionType("INTENT"), false},
	}

	for _, tt := range tests {
		if got := tt.typ.IsValid(); got != tt.valid {
			t.Errorf("SectionType(%q).IsValid() = %v, want %v", tt.typ, got, tt.valid)
		}
	}
}

func TestNodeShape_IsValid(t *testing.T) {
	for _, shape := range []NodeShape{
		ShapeRectangle, ShapeRounded, ShapeStadium, ShapeSubroutine,
		ShapeCylinder, ShapeCircle, ShapeAsymmetric, ShapeRhombus,
		ShapeHexagon, ShapeParallelogram, ShapeTrapezoid,
	} {
		if !shape.IsValid() {
			t.Errorf("NodeShape(%q).IsValid() = false, want true", shape)
		}
	}
	if NodeShape("triangle").IsValid() {
		t.Error("NodeShape(\"triangle\").IsValid() = true, want false")
	}
}

func TestLocation_String(t *testing.T) {
	loc := Location{File: "doc.cdx", Line: 12, Column: 5}
	if got := loc.String(); got != "doc.cdx:12:5" {
		t.Errorf("Location.String() = %q, want %q", got, "doc.cdx:12:5")
	}
	if (Location{}).IsValid() {
		t.Error("zero Location reported valid")
	}
}

func TestDocument_Helpers(t *testing.T) {
	doc := &Document{
		Variables: []*Variable{
			{Name: "goal", Value: "Ship v1"},
		},
		Sections: []*Section{
			{ID: "intent-1", Type: SectionIntent},
			{ID: "eval-1", Type: SectionEvaluation},
		},
	}

	if v := doc.GetVariable("goal"); v == nil || v.Value != "Ship v1" {
		t.Errorf("GetVariable(goal) = %v, want Ship v1", v)
	}
	if doc.GetVariable("missing") != nil {
		t.Error("GetVariable(missing) returned a variable")
	}
	if !doc.HasVariable("goal") || doc.HasVariable("missing") {
		t.Error("HasVariable gave wrong answers")
	}

	if s := doc.GetSection("eval-1"); s == nil || s.Type != SectionEvaluation {
		t.Errorf("GetSection(eval-1) = %v", s)
	}
	if got := doc.SectionIDs(); len(got) != 2 || got[0] != "intent-1" || got[1] != "eval-1" {
		t.Errorf("SectionIDs() = %v", got)
	}
	if doc.SectionCount() != 2 {
		t.Errorf("SectionCount() = %d, want 2", doc.SectionCount())
	}
	if doc.HasFlow() {
		t.Error("HasFlow() = true for a document without a flow")
	}
}

func TestGraph_Helpers(t *testing.T) {
	g := &Graph{
		Nodes: []*Node{
			{ID: "A", Shape: ShapeRectangle},
			{ID: "B", Shape: ShapeRhombus},
		},
		Edges: []*Edge{
			{From: "A", To: "B"},
		},
	}

	if n := g.GetNode("B"); n == nil || n.Shape != ShapeRhombus {
		t.Errorf("GetNode(B) = %v", n)
	}
	if g.GetNode("Z") != nil {
		t.Error("GetNode(Z) returned a node")
	}
	if !g.HasNode("A") || g.HasNode("Z") {
		t.Error("HasNode gave wrong answers")
	}
	if g.NodeCount() != 2 || g.EdgeCount() != 1 {
		t.Errorf("counts = (%d, %d), want (2, 1)", g.NodeCount(), g.EdgeCount())
	}
}
