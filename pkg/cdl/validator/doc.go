// Package validator checks parsed documents against the rules the parser
// does not enforce: required metadata, section type membership, identifier
// uniqueness, and the consistency of the flow graph with the section set.
//
// Validators accumulate: a single run reports every violation it can find
// rather than stopping at the first. Hard violations and warnings travel in
// the same list, distinguished by severity.
package validator
