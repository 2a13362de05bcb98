// Package ast provides the typed document tree for parsed CDL context
// documents.
//
// The tree represents the parsed structure of a document: metadata, variable
// definitions, the ordered flat section list, and the optional flow diagram
// with its derived graph. All nodes preserve source location information for
// precise error reporting.
//
// # Core Types
//
// Document: root node owning metadata, variables, sections, and the flow
//
// Section: flat content section with a closed type enumeration
//
// Flow: diagram block with raw flowchart text and the derived Graph
//
// Graph, Node, Edge, NodeReference: the node/edge model and click bindings
//
// Location: source location (file, line, column)
//
// # Immutability
//
// Tree nodes are treated as immutable after assembly. The parser builds the
// tree once, the resolver produces resolved section content during assembly,
// and validators inspect the result without modification. Edits produce a
// new Document via re-parse, never partial patches.
package ast
