package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"canvas-hq/loom/pkg/cli"
)

var flowFlags struct {
	format string
}

var flowCmd = &cobra.Command{
	Use:   "flow <file>",
	Short: "Inspect a document's flow graph",
	Long: `Parse a document's flowchart and print the derived graph: nodes with
their shapes, edges, and click bindings to sections.

Examples:
  loom flow plans/release.cdx
  loom flow plans/release.cdx --format json`,
	Args: cobra.ExactArgs(1),
	RunE: showFlow,
}

func init() {
	rootCmd.AddCommand(flowCmd)

	flowCmd.Flags().StringVar(&flowFlags.format, "format", "text", "output format: text, json")
}

// flowOutput is the JSON shape of a derived flow graph.
type flowOutput struct {
	ID    string       `json:"id"`
	Title string       `json:"title,omitempty"`
	Nodes []nodeOutput `json:"nodes"`
	Edges []edgeOutput `json:"edges"`
	Refs  []refOutput  `json:"refs,omitempty"`
}

type nodeOutput struct {
	ID      string `json:"id"`
	Label   string `json:"label,omitempty"`
	Shape   string `json:"shape"`
	Section string `json:"section,omitempty"`
}

type edgeOutput struct {
	From  string `json:"from"`
	To    string `json:"to"`
	Label string `json:"label,omitempty"`
}

type refOutput struct {
	Node    string `json:"node"`
	Section string `json:"section"`
	Tooltip string `json:"tooltip,omitempty"`
}

func showFlow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	flow, err := newLoader(cfg).LoadFlow(args[0])
	if err != nil {
		return cli.NewCommandError("flow", err)
	}
	if flow == nil {
		fmt.Println("document has no flow")
		return nil
	}

	out := flowOutput{
		ID:    flow.ID,
		Title: flow.Title,
		Nodes: make([]nodeOutput, 0, len(flow.Graph.Nodes)),
		Edges: make([]edgeOutput, 0, len(flow.Graph.Edges)),
		Refs:  make([]refOutput, 0, len(flow.Refs)),
	}
	for _, n := range flow.Graph.Nodes {
		out.Nodes = append(out.Nodes, nodeOutput{
			ID:      n.ID,
			Label:   n.Label,
			Shape:   string(n.Shape),
			Section: n.SectionID,
		})
	}
	for _, e := range flow.Graph.Edges {
		out.Edges = append(out.Edges, edgeOutput{From: e.From, To: e.To, Label: e.Label})
	}
	for _, r := range flow.Refs {
		out.Refs = append(out.Refs, refOutput{Node: r.NodeID, Section: r.SectionID, Tooltip: r.Tooltip})
	}

	if flowFlags.format == "json" {
		return cli.NewFormatter(cli.FormatJSON).FormatTo(os.Stdout, out)
	}

	if out.Title != "" {
		fmt.Printf("%s (%s)\n", out.Title, out.ID)
	} else {
		fmt.Println(out.ID)
	}
	fmt.Printf("\nNodes (%d):\n", len(out.Nodes))
	for _, n := range out.Nodes {
		line := fmt.Sprintf("  %s [%s]", n.ID, n.Shape)
		if n.Label != "" {
			line += fmt.Sprintf(" %q", n.Label)
		}
		if n.Section != "" {
			line += fmt.Sprintf(" -> #%s", n.Section)
		}
		fmt.Println(line)
	}
	fmt.Printf("\nEdges (%d):\n", len(out.Edges))
	for _, e := range out.Edges {
		if e.Label != "" {
			fmt.Printf("  %s -> %s (%s)\n", e.From, e.To, e.Label)
		} else {
			fmt.Printf("  %s -> %s\n", e.From, e.To)
		}
	}
	return nil
}
