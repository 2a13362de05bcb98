package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"canvas-hq/loom/pkg/cdl/parser"
	"canvas-hq/loom/pkg/cdl/serializer"
	"canvas-hq/loom/pkg/cli"
)

var fmtFlags struct {
	write bool
	check bool
}

var fmtCmd = &cobra.Command{
	Use:   "fmt <files...>",
	Short: "Reformat context documents to canonical form",
	Long: `Parse each document and re-render it canonically: two-space
indentation, metadata elements in fixed order, content wrapped in CDATA.
Variable placeholders are preserved unresolved.

By default the formatted document is printed to stdout. With --write the
file is rewritten in place; with --check nothing is written and the
command fails if any file is not already canonical.

Examples:
  loom fmt plans/next.cdx
  loom fmt --write plans/*.cdx
  loom fmt --check plans/*.cdx`,
	Args: cobra.MinimumNArgs(1),
	RunE: formatDocuments,
}

func init() {
	rootCmd.AddCommand(fmtCmd)

	fmtCmd.Flags().BoolVarP(&fmtFlags.write, "write", "w", false, "rewrite files in place")
	fmtCmd.Flags().BoolVar(&fmtFlags.check, "check", false, "fail if any file is not canonical")
}

func formatDocuments(cmd *cobra.Command, args []string) error {
	p := parser.NewParser()
	var dirty []string

	for _, path := range args {
		data, err := os.ReadFile(path)
		if err != nil {
			return cli.NewDocumentError("fmt", path, err)
		}

		doc, err := p.ParseBytes(data, path)
		if err != nil {
			return cli.NewDocumentError("fmt", path, err)
		}

		formatted, err := serializer.Serialize(doc)
		if err != nil {
			return cli.NewDocumentError("fmt", path, err)
		}

		changed := formatted != string(data)
		switch {
		case fmtFlags.check:
			if changed {
				fmt.Println(path)
				dirty = append(dirty, path)
			}
		case fmtFlags.write:
			if changed {
				if err := os.WriteFile(path, []byte(formatted), 0o644); err != nil {
					return cli.NewDocumentError("fmt", path, err)
				}
				fmt.Printf("✓ Formatted %s\n", path)
			}
		default:
			fmt.Print(formatted)
		}
	}

	if len(dirty) > 0 {
		return cli.NewCommandError("fmt",
			fmt.Errorf("%d file(s) not canonical: %s", len(dirty), strings.Join(dirty, ", ")))
	}
	return nil
}
