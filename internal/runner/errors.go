package runner

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyArgv guards against a Descriptor with no command to run.
var ErrEmptyArgv = errors.New("runner: descriptor has an empty argv")

// ToolError is the ToolError taxonomy class from spec section 7: the
// Runner reported a non-zero exit, wrapped with the operation
// descriptor so callers can log or retry with the original command
// visible.
type ToolError struct {
	Argv     []string
	ExitCode int
	Stderr   string
}

func newToolError(argv []string, exitCode int, stderr []byte) *ToolError {
	return &ToolError{Argv: append([]string(nil), argv...), ExitCode: exitCode, Stderr: string(stderr)}
}

func (e *ToolError) Error() string {
	msg := fmt.Sprintf("runner: %s exited %d", strings.Join(e.Argv, " "), e.ExitCode)
	if e.Stderr != "" {
		msg += ": " + strings.TrimSpace(e.Stderr)
	}
	return msg
}
