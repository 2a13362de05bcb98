// Loom is a command-line toolkit for CDL context documents.
//
// It parses, validates, and assembles .cdx documents: XML sections with
// variable interpolation plus an embedded flowchart whose nodes can link
// back to sections.
//
// Usage:
//
//	# Validate a document and print every finding
//	loom lint plans/release.cdx
//
//	# Print resolved section content
//	loom sections plans/release.cdx
//
//	# Inspect the flow graph
//	loom flow plans/release.cdx --format json
//
//	# Scaffold a new document
//	loom new plans/next.cdx --title "Next Release" --with-flow
//
//	# Watch a workspace, keeping the assembly cache warm
//	loom watch --config loom.yaml
package main

func main() {
	Execute()
}
