package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"canvas-hq/loom/pkg/cli"
)

var sectionsFlags struct {
	format string
	typ    string
}

var sectionsCmd = &cobra.Command{
	Use:   "sections <file>",
	Short: "Print resolved section content",
	Long: `Print a document's sections with variables resolved.

This is the fast loading path: the flowchart is never parsed, so large
diagrams cost nothing when only the prose is needed.

Examples:
  # Print all sections
  loom sections plans/release.cdx

  # Only the process sections
  loom sections plans/release.cdx --type process

  # JSON output
  loom sections plans/release.cdx --format json`,
	Args: cobra.ExactArgs(1),
	RunE: showSections,
}

func init() {
	rootCmd.AddCommand(sectionsCmd)

	sectionsCmd.Flags().StringVar(&sectionsFlags.format, "format", "text", "output format: text, json")
	sectionsCmd.Flags().StringVarP(&sectionsFlags.typ, "type", "t", "", "only sections of this type")
}

// sectionOutput is the JSON shape of one section.
type sectionOutput struct {
	ID        string `json:"id"`
	Type      string `json:"type"`
	RefTarget string `json:"ref_target,omitempty"`
	Content   string `json:"content"`
}

func showSections(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	doc, err := newLoader(cfg).LoadSections(args[0])
	if err != nil {
		return cli.NewCommandError("sections", err)
	}

	out := make([]sectionOutput, 0, len(doc.Sections))
	for _, s := range doc.Sections {
		if sectionsFlags.typ != "" && string(s.Type) != sectionsFlags.typ {
			continue
		}
		out = append(out, sectionOutput{
			ID:        s.ID,
			Type:      string(s.Type),
			RefTarget: s.RefTarget,
			Content:   s.Content,
		})
	}

	if sectionsFlags.format == "json" {
		return cli.NewFormatter(cli.FormatJSON).FormatTo(os.Stdout, out)
	}

	for i, s := range out {
		if i > 0 {
			fmt.Println("---")
		}
		fmt.Printf("[%s] %s\n", s.Type, s.ID)
		if s.RefTarget != "" {
			fmt.Printf("ref: %s\n", s.RefTarget)
		}
		fmt.Println(s.Content)
	}
	return nil
}
