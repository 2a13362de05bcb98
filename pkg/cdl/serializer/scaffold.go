package serializer

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"canvas-hq/loom/pkg/cdl/ast"
)

// ScaffoldOptions control document scaffolding. Zero values fall back to
// placeholder text so a bare `loom new` still produces a valid document.
type ScaffoldOptions struct {
	Title    string
	Author   string
	AppName  string
	Version  string
	WithFlow bool
}

// Scaffold builds a minimal valid document: full metadata, one variable,
// one section per type, and optionally a starter flow. The flow ID carries
// a fresh UUID so scaffolds merged into a shared workspace never collide.
func Scaffold(opts ScaffoldOptions) *ast.Document {
	if opts.Title == "" {
		opts.Title = "Untitled Document"
	}
	if opts.Author == "" {
		opts.Author = "unknown"
	}
	if opts.AppName == "" {
		opts.AppName = "loom"
	}
	if opts.Version == "" {
		opts.Version = "0.1.0"
	}

	doc := &ast.Document{
		Version: "1.0",
		Meta: &ast.Metadata{
			Title:   opts.Title,
			Author:  opts.Author,
			Created: time.Now().UTC().Format(time.RFC3339),
			App: ast.AppInfo{
				Name:    opts.AppName,
				Version: opts.Version,
			},
			Tags:        []string{"draft"},
			Description: fmt.Sprintf("Context document for %s", opts.Title),
		},
		Variables: []*ast.Variable{
			{Name: "project", Value: opts.Title},
		},
	}

	for _, t := range ast.SectionTypes() {
		doc.Sections = append(doc.Sections, &ast.Section{
			ID:         fmt.Sprintf("%s-1", t),
			Type:       t,
			Content:    fmt.Sprintf("# %s\n\nDescribe the %s of ${project} here.", t, t),
			HasContent: true,
		})
	}

	if opts.WithFlow {
		doc.Flow = &ast.Flow{
			ID:      fmt.Sprintf("flow-%s", uuid.NewString()),
			Version: "1.0",
			Title:   fmt.Sprintf("%s Flow", opts.Title),
			Source: "flowchart TD\n" +
				"  A[Intent] --> B{Evaluate}\n" +
				"  B -->|yes| C[Process]\n" +
				"  B -->|no| D[Alternatives]\n" +
				"  click A \"#intent-1\" \"Why we are doing this\"\n" +
				"  click C \"#process-1\" \"How we do it\"\n",
		}
	}

	return doc
}
