package resolver

import (
	"regexp"

	"canvas-hq/loom/pkg/cdl/ast"
)

// placeholderRe matches ${identifier} placeholders. Identifiers follow the
// usual rule: a letter or underscore followed by letters, digits, or
// underscores.
var placeholderRe = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// BuildMap converts the document's variable list into a lookup map.
// Later definitions of the same name override earlier ones.
func BuildMap(variables []*ast.Variable) map[string]string {
	m := make(map[string]string, len(variables))
	for _, v := range variables {
		m[v.Name] = v.Value
	}
	return m
}

// Resolve substitutes ${name} placeholders in text with values from the
// variable map. Resolution is a single left-to-right pass: a variable's
// value is never re-scanned for placeholders, which rules out substitution
// cycles by construction. A placeholder with no matching variable is left
// verbatim so that partially specified documents remain renderable.
func Resolve(text string, variables map[string]string) string {
	return placeholderRe.ReplaceAllStringFunc(text, func(match string) string {
		name := match[2 : len(match)-1] // Strip "${" and "}"
		if value, ok := variables[name]; ok {
			return value
		}
		return match
	})
}

// ResolveSections applies Resolve to every section's content in place.
// This runs once during assembly, before the document is frozen; order of
// application across sections is irrelevant since sections never reference
// each other's resolved text.
func ResolveSections(sections []*ast.Section, variables map[string]string) {
	for _, s := range sections {
		s.Content = Resolve(s.Content, variables)
	}
}
