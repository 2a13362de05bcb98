// Package mermaid parses flowchart diagram text into graphs.
//
// The supported grammar is the flowchart subset documents actually use:
// node definitions in eleven delimiter shapes, plain and labeled edges, and
// click bindings that link nodes to sections. Anything else on a line is
// skipped, not rejected.
package mermaid
