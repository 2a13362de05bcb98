// Package logging provides structured logging built on log/slog.
//
// Loggers support JSON and text output, configurable levels, and
// context-aware fields: a context carrying the document path, operation
// name, or workspace directory gets those fields attached to every line
// logged through the *Context methods.
//
//	logger, _ := logging.New(logging.Config{Level: "info", Format: "text"})
//	ctx := logging.WithDocument(ctx, "plans/release.cdx")
//	logger.InfoContext(ctx, "document loaded", "sections", 4)
package logging
