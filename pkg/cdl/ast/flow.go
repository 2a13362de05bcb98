package ast

// NodeShape is the closed enumeration of diagram node shapes. Each shape
// corresponds to a distinct delimiter pair in the flowchart grammar.
type NodeShape string

const (
	ShapeRectangle     NodeShape = "rectangle"     // ID[label]
	ShapeRounded       NodeShape = "rounded"       // ID(label)
	ShapeStadium       NodeShape = "stadium"       // ID([label])
	ShapeSubroutine    NodeShape = "subroutine"    // ID[[label]]
	ShapeCylinder      NodeShape = "cylinder"      // ID[(label)]
	ShapeCircle        NodeShape = "circle"        // ID((label))
	ShapeAsymmetric    NodeShape = "asymmetric"    // ID>label]
	ShapeRhombus       NodeShape = "rhombus"       // ID{label}
	ShapeHexagon       NodeShape = "hexagon"       // ID{{label}}
	ShapeParallelogram NodeShape = "parallelogram" // ID[/label/]
	ShapeTrapezoid     NodeShape = "trapezoid"     // ID[/label\]
)

// IsValid returns true if the shape is a member of the closed enumeration.
func (s NodeShape) IsValid() bool {
	switch s {
	case ShapeRectangle, ShapeRounded, ShapeStadium, ShapeSubroutine,
		ShapeCylinder, ShapeCircle, ShapeAsymmetric, ShapeRhombus,
		ShapeHexagon, ShapeParallelogram, ShapeTrapezoid:
		return true
	}
	return false
}

// Flow is the document's optional diagram block: identity attributes, the raw
// flowchart text, and the Graph derived from it by the grammar parser.
type Flow struct {
	ID       string           // Flow identifier
	Version  string           // Flow version attribute
	Title    string           // Optional title ("" if absent)
	Source   string           // Raw flowchart text, verbatim
	Graph    *Graph           // Derived graph (nil until the grammar parser runs)
	Refs     []*NodeReference // Click bindings derived from the flowchart text
	Location Location         // Source location of the flow element
}

// Graph is the node/edge model derived from the flowchart text.
type Graph struct {
	Nodes []*Node // Declaration order, first declaration wins
	Edges []*Edge // Declaration order
}

// Node is a single diagram node.
type Node struct {
	ID        string    // Identifier, unique within the graph
	Label     string    // Display label (empty for auto-created endpoints)
	Shape     NodeShape // Shape kind
	SectionID string    // Linked section identifier ("" if unbound)
	Line      int       // 1-based line in the flowchart text
}

// Edge is a directed connection between two nodes.
type Edge struct {
	From  string // Source node identifier
	To    string // Target node identifier
	Label string // Optional edge label ("" if absent)
	Line  int    // 1-based line in the flowchart text
}

// NodeReference binds a diagram node to a section identifier for navigation.
// The target section must exist in the document; the graph validator enforces
// this, not the grammar parser, which has no visibility into sections.
type NodeReference struct {
	NodeID    string // Diagram node identifier
	SectionID string // Target section identifier (leading '#' stripped)
	Action    string // Raw navigation action string (e.g., "#intent-1")
	Tooltip   string // Optional tooltip ("" if absent)
	Line      int    // 1-based line in the flowchart text
}

// GetNode returns the node with the given identifier, or nil if not found.
func (g *Graph) GetNode(id string) *Node {
	for _, n := range g.Nodes {
		if n.ID == id {
			return n
		}
	}
	return nil
}

// HasNode returns true if the graph contains a node with the given identifier.
func (g *Graph) HasNode(id string) bool {
	return g.GetNode(id) != nil
}

// NodeCount returns the number of nodes in the graph.
func (g *Graph) NodeCount() int {
	return len(g.Nodes)
}

// EdgeCount returns the number of edges in the graph.
func (g *Graph) EdgeCount() int {
	return len(g.Edges)
}
