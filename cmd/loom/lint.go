package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	cdlErrors "canvas-hq/loom/pkg/cdl/errors"
	"canvas-hq/loom/pkg/cli"
)

var lintFlags struct {
	dir    string
	strict bool
	format string
}

var lintCmd = &cobra.Command{
	Use:   "lint [files...]",
	Short: "Validate context documents",
	Long: `Validate CDL documents and report every finding in one pass.

The lint command parses each document and runs the full validation set:
  - XML well-formedness and document shape
  - Metadata completeness and timestamp format
  - Section types and duplicate IDs
  - Flowchart grammar, node references, and self-links

Examples:
  # Lint a single document
  loom lint plans/release.cdx

  # Lint every document in a directory
  loom lint --dir plans/

  # Strict mode (warnings as errors)
  loom lint plans/release.cdx --strict

  # JSON output for CI/CD
  loom lint plans/release.cdx --format json`,
	RunE: lintDocuments,
}

func init() {
	rootCmd.AddCommand(lintCmd)

	lintCmd.Flags().StringVarP(&lintFlags.dir, "dir", "d", "", "directory of documents to lint")
	lintCmd.Flags().BoolVar(&lintFlags.strict, "strict", false, "treat warnings as errors")
	lintCmd.Flags().StringVar(&lintFlags.format, "format", "text", "output format: text, json")
}

func lintDocuments(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	files := append([]string{}, args...)
	if lintFlags.dir != "" {
		found, err := collectDocuments(lintFlags.dir, cfg.Workspace.Extensions)
		if err != nil {
			return fmt.Errorf("failed to list documents: %w", err)
		}
		files = append(files, found...)
	}
	if len(files) == 0 {
		return fmt.Errorf("no documents specified: pass files or --dir")
	}

	loader := newLoader(cfg)

	// Directory sweeps can cover hundreds of documents; show a progress
	// bar on stderr so formatted output stays clean.
	var progress cli.ProgressReporter
	if lintFlags.dir != "" && lintFlags.format != "json" {
		progress = cli.NewProgressReporter(nil)
		progress.Start(int64(len(files)))
	}

	totalErrors := 0
	totalWarnings := 0
	reports := make([]*cli.FindingsReport, 0, len(files))
	lists := make([]*cdlErrors.ErrorList, 0, len(files))

	for i, file := range files {
		list, err := loader.Lint(file)
		if err != nil {
			// Syntax and IO failures still produce a report entry.
			list = cdlErrors.NewErrorList()
			if e, ok := err.(*cdlErrors.Error); ok {
				list.Add(e)
			} else if el, ok := err.(*cdlErrors.ErrorList); ok {
				list = el
			} else {
				list.Add(&cdlErrors.Error{
					Type:     cdlErrors.ErrorTypeIO,
					Severity: cdlErrors.SeverityError,
					Message:  err.Error(),
				})
			}
		}

		report := cli.NewFindingsReport(file, list)
		totalErrors += report.Errors
		totalWarnings += report.Warnings
		reports = append(reports, report)
		lists = append(lists, list)

		if progress != nil {
			progress.Update(int64(i + 1))
		}
	}
	if progress != nil {
		progress.Finish()
	}

	if lintFlags.format == "json" {
		formatter := cli.NewFormatter(cli.FormatJSON)
		if err := formatter.FormatTo(os.Stdout, reports); err != nil {
			return err
		}
	} else {
		for i, report := range reports {
			if err := cli.RenderFindings(os.Stdout, report, lists[i]); err != nil {
				return err
			}
		}
		fmt.Printf("\nSummary: %d document(s), %d error(s), %d warning(s)\n",
			len(files), totalErrors, totalWarnings)
	}

	if totalErrors > 0 {
		return cli.NewCommandError("lint", fmt.Errorf("validation failed"))
	}
	if (lintFlags.strict || cfg.Loader.Strict) && totalWarnings > 0 {
		return cli.NewCommandError("lint", fmt.Errorf("warnings present in strict mode"))
	}
	return nil
}

// collectDocuments lists documents under dir matching the workspace
// extensions.
func collectDocuments(dir string, extensions []string) ([]string, error) {
	var files []string
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			if strings.HasPrefix(filepath.Base(path), ".") && path != dir {
				return filepath.SkipDir
			}
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		for _, want := range extensions {
			if ext == strings.ToLower(want) {
				files = append(files, path)
				break
			}
		}
		return nil
	})
	return files, err
}
