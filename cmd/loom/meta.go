package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"canvas-hq/loom/pkg/cli"
)

var metaFlags struct {
	format string
}

var metaCmd = &cobra.Command{
	Use:   "meta <file>",
	Short: "Print document metadata",
	Long: `Parse a document and print only its metadata block. Sections and the
flowchart are never processed, making this the cheapest way to list a
workspace.

Examples:
  loom meta plans/release.cdx
  loom meta plans/release.cdx --format json`,
	Args: cobra.ExactArgs(1),
	RunE: showMeta,
}

func init() {
	rootCmd.AddCommand(metaCmd)

	metaCmd.Flags().StringVar(&metaFlags.format, "format", "text", "output format: text, json")
}

// metaOutput is the JSON shape of a metadata block.
type metaOutput struct {
	Title       string   `json:"title"`
	Author      string   `json:"author"`
	Created     string   `json:"created"`
	App         string   `json:"app"`
	Tags        []string `json:"tags,omitempty"`
	Description string   `json:"description"`
}

func showMeta(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	meta, err := newLoader(cfg).LoadMetadata(args[0])
	if err != nil {
		return cli.NewCommandError("meta", err)
	}
	if meta == nil {
		return cli.NewCommandError("meta", fmt.Errorf("document has no metadata block"))
	}

	out := metaOutput{
		Title:       meta.Title,
		Author:      meta.Author,
		Created:     meta.Created,
		App:         fmt.Sprintf("%s %s", meta.App.Name, meta.App.Version),
		Tags:        meta.Tags,
		Description: meta.Description,
	}

	if metaFlags.format == "json" {
		return cli.NewFormatter(cli.FormatJSON).FormatTo(os.Stdout, out)
	}

	fmt.Printf("Title:       %s\n", out.Title)
	fmt.Printf("Author:      %s\n", out.Author)
	fmt.Printf("Created:     %s\n", out.Created)
	fmt.Printf("App:         %s\n", out.App)
	if len(out.Tags) > 0 {
		fmt.Printf("Tags:        %s\n", strings.Join(out.Tags, ", "))
	}
	fmt.Printf("Description: %s\n", out.Description)
	return nil
}
