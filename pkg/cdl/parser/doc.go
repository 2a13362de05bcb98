// Package parser turns CDL source text into document trees.
//
// The parser is a streaming XML tokenizer walk that enforces the rules only
// it can enforce cheaply: a single <context> root with a version attribute,
// the required container elements, and flat (non-nested) sections. Every
// node in the resulting tree carries its source location so later stages
// can point at the offending line.
package parser
