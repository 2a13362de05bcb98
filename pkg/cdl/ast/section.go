package ast

// SectionType is the closed enumeration of section kinds. Modeled as a typed
// string so switches over it can be checked for exhaustiveness and unknown
// values never degrade silently to a default.
type SectionType string

const (
	SectionIntent       SectionType = "intent"
	SectionEvaluation   SectionType = "evaluation"
	SectionProcess      SectionType = "process"
	SectionAlternatives SectionType = "alternatives"
)

// SectionTypes lists every valid section type in declaration order.
func SectionTypes() []SectionType {
	return []SectionType{
		SectionIntent,
		SectionEvaluation,
		SectionProcess,
		SectionAlternatives,
	}
}

// IsValid returns true if the section type is a member of the closed enumeration.
func (t SectionType) IsValid() bool {
	switch t {
	case SectionIntent, SectionEvaluation, SectionProcess, SectionAlternatives:
		return true
	}
	return false
}

// Section is a single flat content section. Sections never nest: the parser
// rejects nesting before a Section is built, so the tree shape itself makes
// a nested section unrepresentable and no later pass re-checks it.
type Section struct {
	ID        string      // Identifier, globally unique within the document
	Type      SectionType // Section kind
	Content   string      // Raw content pre-resolution, plain text post-resolution
	RefTarget string      // Optional free-form reference target ("" if absent)

	// HasContent distinguishes an empty content block from a missing one.
	// An empty string is permitted; an absent content element is a violation.
	HasContent bool

	Location Location // Source location of the section element
}
