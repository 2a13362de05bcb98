package validator

import (
	"fmt"

	"canvas-hq/loom/pkg/cdl/ast"
	cdlErrors "canvas-hq/loom/pkg/cdl/errors"
)

// GraphValidator enforces graph-level invariants: node identifier
// uniqueness, click-binding targets that exist in the section set, and
// self-loop detection. Self-loops are warning-class since a node pointing
// at itself renders fine and only suggests an authoring mistake.
type GraphValidator struct {
	errors *cdlErrors.ErrorList
}

// NewGraphValidator creates a new graph validator.
func NewGraphValidator() *GraphValidator {
	return &GraphValidator{
		errors: cdlErrors.NewErrorList(),
	}
}

// Validate checks the graph and its click bindings against the set of
// section IDs declared in the document. All violations are collected.
func (v *GraphValidator) Validate(graph *ast.Graph, refs []*ast.NodeReference, sectionIDs []string) error {
	v.errors = cdlErrors.NewErrorList()

	if graph != nil {
		v.validateNodeIDs(graph)
		v.validateSelfLoops(graph)
	}
	v.validateRefs(refs, sectionIDs)

	return v.errors.ToError()
}

// validateNodeIDs reports node identifiers declared more than once.
// The parser's first-wins rule makes duplicates unrepresentable in a graph
// it built itself, so this guards graphs assembled by other means.
func (v *GraphValidator) validateNodeIDs(graph *ast.Graph) {
	seen := make(map[string]*ast.Node)
	for _, node := range graph.Nodes {
		if first, dup := seen[node.ID]; dup {
			v.errors.AddViolationWithSuggestion(
				cdlErrors.ErrorTypeGraph,
				cdlErrors.KindDuplicateNodeID,
				fmt.Sprintf("Duplicate node ID %q (first declared on line %d)", node.ID, first.Line),
				ast.Location{Line: node.Line},
				"Node IDs must be unique within a diagram",
			)
			continue
		}
		seen[node.ID] = node
	}
}

// validateSelfLoops reports edges whose endpoints are the same node.
func (v *GraphValidator) validateSelfLoops(graph *ast.Graph) {
	for _, edge := range graph.Edges {
		if edge.From == edge.To {
			v.errors.AddWarning(
				cdlErrors.ErrorTypeGraph,
				cdlErrors.KindSelfReference,
				fmt.Sprintf("Node %q has an edge to itself", edge.From),
				ast.Location{Line: edge.Line},
			)
		}
	}
}

// validateRefs reports click bindings whose section target does not exist.
// Each dangling binding produces exactly one violation.
func (v *GraphValidator) validateRefs(refs []*ast.NodeReference, sectionIDs []string) {
	known := make(map[string]bool, len(sectionIDs))
	for _, id := range sectionIDs {
		known[id] = true
	}

	for _, ref := range refs {
		if ref.SectionID == "" || known[ref.SectionID] {
			continue
		}
		v.errors.AddViolationWithSuggestion(
			cdlErrors.ErrorTypeGraph,
			cdlErrors.KindDanglingRef,
			fmt.Sprintf("Node %q references section %q, which does not exist", ref.NodeID, ref.SectionID),
			ast.Location{Line: ref.Line},
			suggestSectionID(ref.SectionID, sectionIDs),
		)
	}
}

// suggestSectionID offers the closest declared section ID, if any is close.
func suggestSectionID(target string, sectionIDs []string) string {
	if s := cdlErrors.SuggestClosest(target, sectionIDs); s != "" {
		return s
	}
	return "Declare the section or remove the click binding"
}

// Reachability describes which nodes a walk from the entry node can reach.
// It is advisory output for tooling, never a validation failure: diagrams
// with deliberately disconnected fragments are legal.
type Reachability struct {
	Entry     string   // ID of the entry node ("" for an empty graph)
	Reachable []string // Node IDs reachable from the entry, entry included
	Isolated  []string // Node IDs not reachable from the entry
}

// AnalyzeReachability walks the graph from its first declared node along
// edge direction and partitions the node set into reachable and isolated.
func AnalyzeReachability(graph *ast.Graph) *Reachability {
	r := &Reachability{}
	if graph == nil || len(graph.Nodes) == 0 {
		return r
	}
	r.Entry = graph.Nodes[0].ID

	adj := make(map[string][]string)
	for _, e := range graph.Edges {
		adj[e.From] = append(adj[e.From], e.To)
	}

	visited := map[string]bool{r.Entry: true}
	queue := []string{r.Entry}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, next := range adj[cur] {
			if !visited[next] {
				visited[next] = true
				queue = append(queue, next)
			}
		}
	}

	for _, node := range graph.Nodes {
		if visited[node.ID] {
			r.Reachable = append(r.Reachable, node.ID)
		} else {
			r.Isolated = append(r.Isolated, node.ID)
		}
	}
	return r
}
