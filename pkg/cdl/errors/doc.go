// Package errors provides rich error types for CDL parsing and validation.
//
// Errors carry a type (stage of detection), a kind (the specific violation),
// a severity, a source location, optional surrounding source context, and an
// optional suggested fix.
//
// The ErrorList type accumulates violations so validators can report every
// problem in a document in a single pass. Parse errors are fatal-fast and
// returned as a single *Error; validation errors are returned as an
// *ErrorList.
//
// Error format:
//
//	[structural/duplicate-id] Duplicate section ID "intent-1"
//	  --> docs/plan.cdx:24:5
//	  |
//	  -> 24 |     <section id="intent-1" type="evaluation">
//	  |
//	  = suggestion: Section IDs must be unique across the document
package errors
