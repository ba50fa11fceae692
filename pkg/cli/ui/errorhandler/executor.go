package errorhandler

import (
	"bytes"
	"strings"

	"github.com/spf13/cobra"
)

// Executor runs the root command and turns failures into a *CommandError with cobra's
// stderr folded into the message and a remediation hint for known chat failures.
type Executor struct {
	normalizer Normalizer
}

// NewExecutor constructs an Executor.
func NewExecutor() *Executor {
	return &Executor{normalizer: Normalizer{}}
}

// Execute runs the provided command while intercepting cobra's error stream.
// It returns nil on success, or a *CommandError that keeps the original error in its chain.
func (e *Executor) Execute(cmd *cobra.Command) error {
	if cmd == nil {
		return nil
	}

	var errBuf bytes.Buffer

	originalErrWriter := cmd.ErrOrStderr()

	cmd.SetErr(&errBuf)
	defer cmd.SetErr(originalErrWriter)

	err := cmd.Execute()
	if err == nil {
		return nil
	}

	return &CommandError{
		message: e.normalizer.Normalize(errBuf.String()),
		hint:    e.normalizer.Hint(err),
		cause:   err,
	}
}

// CommandError is a failed command with its normalized stderr and an optional hint.
type CommandError struct {
	message string
	hint    string
	cause   error
}

// Error implements the error interface.
func (e *CommandError) Error() string {
	switch {
	case e == nil:
		return ""
	case e.cause == nil:
		return e.message
	case e.message != "":
		if strings.Contains(e.message, e.cause.Error()) {
			return e.message
		}

		return e.message + ": " + e.cause.Error()
	default:
		return e.cause.Error()
	}
}

// Hint returns the remediation for the failure, or an empty string.
func (e *CommandError) Hint() string {
	if e == nil {
		return ""
	}

	return e.hint
}

// Unwrap exposes the underlying cause for errors.Is/errors.As consumers.
func (e *CommandError) Unwrap() error {
	if e == nil {
		return nil
	}

	return e.cause
}

// Normalizer cleans up cobra's error output and maps chat failures to hints.
type Normalizer struct{}

// Normalize trims whitespace, removes the "Error:" prefix and drops the blank lines cobra
// puts between the error and its usage hint.
func (Normalizer) Normalize(raw string) string {
	lines := strings.Split(strings.TrimSpace(raw), "\n")
	kept := make([]string, 0, len(lines))

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if len(kept) == 0 {
			line = strings.TrimPrefix(line, "Error: ")
		}

		kept = append(kept, line)
	}

	return strings.Join(kept, "\n")
}
