package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"canvas-hq/loom/pkg/cdl/serializer"
	"canvas-hq/loom/pkg/cli"
)

var newFlags struct {
	title    string
	author   string
	withFlow bool
	force    bool
}

var newCmd = &cobra.Command{
	Use:   "new <file>",
	Short: "Scaffold a new context document",
	Long: `Create a new valid context document with full metadata, one section of
each type, and optionally a starter flowchart.

Examples:
  loom new plans/next.cdx --title "Next Release" --author dana
  loom new plans/next.cdx --with-flow`,
	Args: cobra.ExactArgs(1),
	RunE: scaffoldDocument,
}

func init() {
	rootCmd.AddCommand(newCmd)

	newCmd.Flags().StringVar(&newFlags.title, "title", "", "document title")
	newCmd.Flags().StringVar(&newFlags.author, "author", "", "document author")
	newCmd.Flags().BoolVar(&newFlags.withFlow, "with-flow", false, "include a starter flowchart")
	newCmd.Flags().BoolVar(&newFlags.force, "force", false, "overwrite an existing file")
}

func scaffoldDocument(cmd *cobra.Command, args []string) error {
	path := args[0]

	if !newFlags.force {
		if _, err := os.Stat(path); err == nil {
			return cli.NewDocumentError("new", path,
				fmt.Errorf("already exists (use --force to overwrite)"))
		}
	}

	doc := serializer.Scaffold(serializer.ScaffoldOptions{
		Title:    newFlags.title,
		Author:   newFlags.author,
		Version:  Version,
		WithFlow: newFlags.withFlow,
	})

	data, err := serializer.Serialize(doc)
	if err != nil {
		return cli.NewCommandError("new", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return cli.NewDocumentError("new", path, err)
		}
	}
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		return cli.NewDocumentError("new", path, err)
	}

	fmt.Printf("✓ Created %s\n", path)
	return nil
}
