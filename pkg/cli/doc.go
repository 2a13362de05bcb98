/*
Package cli provides command-line interface utilities for the loom command.

Output Formatting:

Command results render as text or JSON:

	formatter := cli.NewFormatter(cli.FormatJSON)
	if err := formatter.FormatTo(os.Stdout, data); err != nil {
		return err
	}

Lint findings have a dedicated shape; NewFindingsReport converts a
diagnostic list and RenderFindings prints the human-readable form.

Progress Reporting:

For workspace-wide operations, use the progress reporter:

	progress := cli.NewProgressReporter(os.Stderr)
	progress.Start(totalDocs)
	for i, doc := range docs {
		// Lint doc
		progress.Update(int64(i + 1))
	}
	progress.Finish()

Signal Handling:

For graceful shutdown on SIGINT/SIGTERM:

	ctx, stop := cli.SetupSignalHandler()
	defer stop()
*/
package cli
