package cli

import "fmt"

// ConfigError reports an invalid or missing configuration value, named by
// its YAML path (e.g. "workspace.root").
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config error in %s: %s", e.Field, e.Message)
}

// CommandError wraps a failure from a loom command. Document carries the
// path of the document being processed when the failure is tied to a
// single file; it is empty for command-level failures.
type CommandError struct {
	Command  string
	Document string
	Err      error
}

func (e *CommandError) Error() string {
	if e.Document != "" {
		return fmt.Sprintf("loom %s: %s: %v", e.Command, e.Document, e.Err)
	}
	return fmt.Sprintf("loom %s: %v", e.Command, e.Err)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// NewConfigError creates a new ConfigError.
func NewConfigError(field, message string) *ConfigError {
	return &ConfigError{
		Field:   field,
		Message: message,
	}
}

// NewCommandError creates a CommandError with no document attribution.
func NewCommandError(command string, err error) *CommandError {
	return &CommandError{
		Command: command,
		Err:     err,
	}
}

// NewDocumentError creates a CommandError attributed to one document.
func NewDocumentError(command, document string, err error) *CommandError {
	return &CommandError{
		Command:  command,
		Document: document,
		Err:      err,
	}
}
