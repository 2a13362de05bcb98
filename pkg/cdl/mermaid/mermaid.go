package mermaid

import (
	"fmt"
	"regexp"
	"strings"

	"canvas-hq/loom/pkg/cdl/ast"
	cdlErrors "canvas-hq/loom/pkg/cdl/errors"
)

var (
	// fenceRe extracts the flowchart body from a markdown ```mermaid fence.
	fenceRe = regexp.MustCompile("(?s)```mermaid[ \t]*\n(.*?)\n[ \t]*```")

	// directionRe matches the direction declaration line. Direction is always
	// rendered top-down and is not retained in the model.
	directionRe = regexp.MustCompile(`^(?:flowchart|graph)\s+\w+\s*$`)

	// clickRe matches click-binding lines: click ID "action" "optional tooltip"
	clickRe = regexp.MustCompile(`^click\s+(\w+)\s+"([^"]*)"(?:\s+"([^"]*)")?\s*$`)

	// labeledEdgeRe matches edges with a label: A -->|label| B
	labeledEdgeRe = regexp.MustCompile(`(\w+)[^-]*-->\s*\|([^|]+)\|\s*(\w+)`)

	// simpleEdgeRe matches plain edges: A --> B (node definitions inline allowed)
	simpleEdgeRe = regexp.MustCompile(`(\w+)[^-]*-->\s*(\w+)`)

	// nodeIDRe finds candidate node identifiers within a line.
	nodeIDRe = regexp.MustCompile(`\w+`)
)

// shapePattern binds a shape kind to the regexp recognizing its delimiter
// pair at the start of a string. Order matters: compound delimiters must be
// tried before the single-character delimiters they contain.
type shapePattern struct {
	shape ast.NodeShape
	re    *regexp.Regexp
}

var shapePatterns = []shapePattern{
	{ast.ShapeStadium, regexp.MustCompile(`^\(\[([^\]]+)\]\)`)},
	{ast.ShapeSubroutine, regexp.MustCompile(`^\[\[([^\]]+)\]\]`)},
	{ast.ShapeCylinder, regexp.MustCompile(`^\[\(([^)]+)\)\]`)},
	{ast.ShapeCircle, regexp.MustCompile(`^\(\(([^)]+)\)\)`)},
	{ast.ShapeHexagon, regexp.MustCompile(`^\{\{([^}]+)\}\}`)},
	{ast.ShapeParallelogram, regexp.MustCompile(`^\[/([^/\\]+)/\]`)},
	{ast.ShapeTrapezoid, regexp.MustCompile(`^\[/([^/\\]+)\\\]`)},
	{ast.ShapeRectangle, regexp.MustCompile(`^\[([^\]]+)\]`)},
	{ast.ShapeRounded, regexp.MustCompile(`^\(([^)]+)\)`)},
	{ast.ShapeRhombus, regexp.MustCompile(`^\{([^}]+)\}`)},
	{ast.ShapeAsymmetric, regexp.MustCompile(`^>([^\]]+)\]`)},
}

// Extract returns the flowchart body from raw diagram text.
// If the text carries a markdown ```mermaid fence, the fenced body is
// returned; otherwise the text is assumed to be pure flowchart code.
func Extract(content string) string {
	if m := fenceRe.FindStringSubmatch(content); m != nil {
		return m[1]
	}
	return content
}

// Parse converts flowchart text into a graph plus its click bindings.
//
// The grammar is line-oriented and deliberately permissive: the diagram text
// is user-authored free text, so unrecognized lines (styles, class
// definitions, comments) are skipped rather than rejected. Node, edge, and
// click lines may be interleaved in any order. The only hard failure is a
// malformed click binding, since silently dropping a navigation binding
// would corrupt the node-reference model.
func Parse(source string) (*ast.Graph, []*ast.NodeReference, error) {
	code := Extract(source)

	graph := &ast.Graph{
		Nodes: make([]*ast.Node, 0),
		Edges: make([]*ast.Edge, 0),
	}
	refs := make([]*ast.NodeReference, 0)
	declared := make(map[string]bool)

	for i, rawLine := range strings.Split(code, "\n") {
		lineNum := i + 1
		line := strings.TrimSpace(rawLine)

		if line == "" || directionRe.MatchString(line) {
			continue
		}

		if strings.HasPrefix(line, "click ") || line == "click" {
			m := clickRe.FindStringSubmatch(line)
			if m == nil {
				return nil, nil, &cdlErrors.Error{
					Type:     cdlErrors.ErrorTypeGraph,
					Message:  fmt.Sprintf("Malformed click binding on line %d: %q", lineNum, line),
					Location: ast.Location{Line: lineNum},
					Suggestion: `Use: click ID "#section-id" "optional tooltip"`,
				}
			}
			action := m[2]
			refs = append(refs, &ast.NodeReference{
				NodeID:    m[1],
				SectionID: strings.TrimLeft(action, "#"),
				Action:    action,
				Tooltip:   m[3],
				Line:      lineNum,
			})
			continue
		}

		parseNodeDefs(line, lineNum, graph, declared)
		parseEdge(line, lineNum, graph)
	}

	// Edges may reference identifiers that were never declared as nodes.
	// Those endpoints are auto-created as bare nodes with an empty label so
	// the graph stays closed under its own edge set.
	for _, edge := range graph.Edges {
		for _, id := range []string{edge.From, edge.To} {
			if !declared[id] {
				declared[id] = true
				graph.Nodes = append(graph.Nodes, &ast.Node{
					ID:    id,
					Shape: ast.ShapeRectangle,
					Line:  edge.Line,
				})
			}
		}
	}

	return graph, refs, nil
}

// parseNodeDefs extracts every node definition occurrence from a line.
// A node ID may be re-declared on later lines; the first declaration wins
// for label and shape, and bare references never redefine.
func parseNodeDefs(line string, lineNum int, graph *ast.Graph, declared map[string]bool) {
	for _, idx := range nodeIDRe.FindAllStringIndex(line, -1) {
		id := line[idx[0]:idx[1]]
		rest := line[idx[1]:]

		for _, sp := range shapePatterns {
			m := sp.re.FindStringSubmatch(rest)
			if m == nil {
				continue
			}
			if !declared[id] {
				declared[id] = true
				graph.Nodes = append(graph.Nodes, &ast.Node{
					ID:    id,
					Label: m[1],
					Shape: sp.shape,
					Line:  lineNum,
				})
			}
			break
		}
	}
}

// parseEdge extracts at most one edge from a line, labeled form first.
func parseEdge(line string, lineNum int, graph *ast.Graph) {
	if !strings.Contains(line, "-->") {
		return
	}

	if strings.Contains(line, "-->|") {
		if m := labeledEdgeRe.FindStringSubmatch(line); m != nil {
			graph.Edges = append(graph.Edges, &ast.Edge{
				From:  m[1],
				To:    m[3],
				Label: strings.TrimSpace(m[2]),
				Line:  lineNum,
			})
		}
		return
	}

	if m := simpleEdgeRe.FindStringSubmatch(line); m != nil {
		graph.Edges = append(graph.Edges, &ast.Edge{
			From: m[1],
			To:   m[2],
			Line: lineNum,
		})
	}
}

// Enrich parses the flow's raw diagram text and attaches the derived graph
// and click bindings, linking each bound node to its section identifier.
func Enrich(flow *ast.Flow) error {
	graph, refs, err := Parse(flow.Source)
	if err != nil {
		return err
	}

	flow.Graph = graph
	flow.Refs = refs

	for _, ref := range refs {
		if node := graph.GetNode(ref.NodeID); node != nil {
			node.SectionID = ref.SectionID
		}
	}

	return nil
}
