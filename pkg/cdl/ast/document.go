package ast

// Document is the root node for a parsed CDL context document.
// It owns exactly one Metadata, the variable definitions, the ordered flat
// section list, and at most one Flow. Documents are assembled once per parse
// and must be treated as immutable afterwards; edits go through re-parse,
// never in-place patches.
type Document struct {
	Version   string      // Root container version attribute (e.g., "1.0")
	Meta      *Metadata   // Document metadata (required)
	Variables []*Variable // Variable definitions in declaration order
	Sections  []*Section  // Sections in authored order (render order)
	Flow      *Flow       // Optional flow diagram

	// Source tracking
	SourceFile string   // Path to the document file
	Location   Location // Location of the root container
}

// Metadata holds the document metadata block. All fields are required;
// absence is a structural violation.
type Metadata struct {
	Title       string   // Document title
	Author      string   // Document author
	Created     string   // Creation timestamp (RFC 3339 or YYYY-MM-DD)
	App         AppInfo  // Authoring application identity
	Tags        []string // Free-text tags
	Description string   // Human-readable description
	Location    Location // Source location of the meta block
}

// AppInfo identifies the application that authored the document.
type AppInfo struct {
	Name    string // Application name
	Version string // Application version
}

// Variable is a named substitution value. Variables are created during
// structural parsing, read by the resolver, and never mutated afterwards.
type Variable struct {
	Name     string   // Substitution key (unique across the document)
	Value    string   // Replacement text
	Location Location // Source location
}

// GetVariable returns the variable with the given name, or nil if not found.
func (d *Document) GetVariable(name string) *Variable {
	for _, v := range d.Variables {
		if v.Name == name {
			return v
		}
	}
	return nil
}

// HasVariable returns true if the document defines a variable with the given name.
func (d *Document) HasVariable(name string) bool {
	return d.GetVariable(name) != nil
}

// GetSection returns the section with the given identifier, or nil if not found.
func (d *Document) GetSection(id string) *Section {
	for _, s := range d.Sections {
		if s.ID == id {
			return s
		}
	}
	return nil
}

// SectionIDs returns the identifiers of all sections in authored order.
func (d *Document) SectionIDs() []string {
	ids := make([]string, 0, len(d.Sections))
	for _, s := range d.Sections {
		ids = append(ids, s.ID)
	}
	return ids
}

// SectionCount returns the number of sections in the document.
func (d *Document) SectionCount() int {
	return len(d.Sections)
}

// HasFlow returns true if the document carries a flow diagram.
func (d *Document) HasFlow() bool {
	return d.Flow != nil
}
