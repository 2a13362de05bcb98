package logging

import (
	"context"
)

// Context keys for common log fields.
type contextKey string

const (
	// DocumentKey is the context key for the document path being processed.
	DocumentKey contextKey = "document"

	// OperationKey is the context key for the pipeline operation name.
	OperationKey contextKey = "operation"

	// WorkspaceKey is the context key for the workspace directory.
	WorkspaceKey contextKey = "workspace"
)

// WithDocument adds a document path to the context.
func WithDocument(ctx context.Context, path string) context.Context {
	return context.WithValue(ctx, DocumentKey, path)
}

// GetDocument retrieves the document path from the context.
func GetDocument(ctx context.Context) string {
	if path, ok := ctx.Value(DocumentKey).(string); ok {
		return path
	}
	return ""
}

// WithOperation adds an operation name to the context.
func WithOperation(ctx context.Context, op string) context.Context {
	return context.WithValue(ctx, OperationKey, op)
}

// GetOperation retrieves the operation name from the context.
func GetOperation(ctx context.Context) string {
	if op, ok := ctx.Value(OperationKey).(string); ok {
		return op
	}
	return ""
}

// WithWorkspace adds a workspace directory to the context.
func WithWorkspace(ctx context.Context, dir string) context.Context {
	return context.WithValue(ctx, WorkspaceKey, dir)
}

// GetWorkspace retrieves the workspace directory from the context.
func GetWorkspace(ctx context.Context) string {
	if dir, ok := ctx.Value(WorkspaceKey).(string); ok {
		return dir
	}
	return ""
}

// extractContextFields extracts common fields from context for logging.
// Returns a slice of key-value pairs suitable for logger.With().
func extractContextFields(ctx context.Context) []any {
	var fields []any

	if doc := GetDocument(ctx); doc != "" {
		fields = append(fields, "document", doc)
	}
	if op := GetOperation(ctx); op != "" {
		fields = append(fields, "operation", op)
	}
	if ws := GetWorkspace(ctx); ws != "" {
		fields = append(fields, "workspace", ws)
	}

	return fields
}
