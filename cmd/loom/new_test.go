package main

import (
	"os"
	"path/filepath"
	"testing"

	"canvas-hq/loom/pkg/cdl"
)

func resetNewFlags() {
	newFlags.title = ""
	newFlags.author = ""
	newFlags.withFlow = false
	newFlags.force = false
}

func TestNewScaffoldsValidDocument(t *testing.T) {
	resetNewFlags()
	newFlags.title = "Scaffolded"
	newFlags.author = "QA"
	newFlags.withFlow = true

	path := filepath.Join(t.TempDir(), "plans", "next.cdx")
	if err := scaffoldDocument(nil, []string{path}); err != nil {
		t.Fatalf("scaffoldDocument() error = %v", err)
	}

	// The scaffold must survive the full pipeline.
	result, err := cdl.LoadDocument(path)
	if err != nil {
		t.Fatalf("scaffolded document failed to load: %v", err)
	}
	if result.Document.Meta.Title != "Scaffolded" {
		t.Errorf("Title = %q", result.Document.Meta.Title)
	}
	if result.Document.Flow == nil {
		t.Error("scaffold with --with-flow has no flow")
	}
}

func TestNewRefusesOverwrite(t *testing.T) {
	resetNewFlags()

	path := filepath.Join(t.TempDir(), "doc.cdx")
	if err := os.WriteFile(path, []byte("existing"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := scaffoldDocument(nil, []string{path}); err == nil {
		t.Error("scaffoldDocument() overwrote an existing file without --force")
	}

	newFlags.force = true
	if err := scaffoldDocument(nil, []string{path}); err != nil {
		t.Errorf("scaffoldDocument() with --force error = %v", err)
	}
}
