package git

import (
	"errors"
	"fmt"
	"strings"
)

// ErrExecutionFailure is the only failure kind: git wrote to stderr or exited
// non-zero. Use errors.Is to check for it.
var ErrExecutionFailure = errors.New("git execution failed")

// ExecutionError carries the raw output of a failed git invocation.
type ExecutionError struct {
	Args     []string
	Stderr   string
	ExitCode int
}

func (e *ExecutionError) Error() string {
	cmd := "git " + strings.Join(e.Args, " ")
	if e.Stderr != "" {
		return fmt.Sprintf("%s: %s", cmd, e.Stderr)
	}
	return fmt.Sprintf("%s: exit status %d", cmd, e.ExitCode)
}

// Is returns true if the target error is ErrExecutionFailure
func (e *ExecutionError) Is(target error) bool {
	return target == ErrExecutionFailure
}
