// Package git runs the git executable and parses its porcelain output.
package git

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"time"
)

// Result is the captured outcome of one git invocation.
type Result struct {
	Args     []string
	Stdout   string
	Stderr   string
	ExitCode int
}

// Failed reports whether git wrote to its error stream or exited non-zero.
func (r Result) Failed() bool {
	return r.ExitCode != 0 || strings.TrimSpace(r.Stderr) != ""
}

// Message returns the trimmed error stream. When git failed with an empty
// error stream it falls back to stdout, where git explains merge conflicts
// and empty commits, then to the exit status.
func (r Result) Message() string {
	if msg := r.detail(); msg != "" {
		return msg
	}
	if r.ExitCode != 0 {
		return (&ExecutionError{Args: r.Args, ExitCode: r.ExitCode}).Error()
	}
	return ""
}

func (r Result) detail() string {
	if msg := strings.TrimSpace(r.Stderr); msg != "" {
		return msg
	}
	if r.ExitCode != 0 {
		return strings.TrimSpace(r.Stdout)
	}
	return ""
}

// Err returns an *ExecutionError for a failed result and nil otherwise.
func (r Result) Err() error {
	if !r.Failed() {
		return nil
	}
	return &ExecutionError{
		Args:     r.Args,
		Stderr:   r.detail(),
		ExitCode: r.ExitCode,
	}
}

// Runner executes git with an argument vector. Implementations never return
// an error; failures are reported through the Result.
type Runner interface {
	Run(ctx context.Context, args ...string) Result
}

// ExecRunner runs the real git binary as a subprocess.
type ExecRunner struct {
	binary     string
	workingDir string
	logger     *slog.Logger
}

// NewExecRunner creates a runner for binary (usually "git") in workingDir.
func NewExecRunner(binary, workingDir string, logger *slog.Logger) *ExecRunner {
	if binary == "" {
		binary = "git"
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ExecRunner{binary: binary, workingDir: workingDir, logger: logger}
}

// WorkingDir returns the directory git is run in.
func (r *ExecRunner) WorkingDir() string {
	return r.workingDir
}

// Run executes git to completion. No timeout is applied; ctx only cancels the
// process when the program shuts down.
func (r *ExecRunner) Run(ctx context.Context, args ...string) Result {
	if ctx == nil {
		ctx = context.Background()
	}

	start := time.Now()
	cmd := exec.CommandContext(ctx, r.binary, args...)
	if r.workingDir != "" {
		cmd.Dir = r.workingDir
	}
	// The terminal belongs to the panel; credential prompts would hang it.
	cmd.Env = append(os.Environ(), "GIT_TERMINAL_PROMPT=0")

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	res := Result{Args: args}
	err := cmd.Run()
	res.Stdout = stdout.String()
	res.Stderr = stderr.String()

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			res.ExitCode = exitErr.ExitCode()
		} else {
			// git never started; the spawn error is the only explanation.
			res.ExitCode = -1
			if strings.TrimSpace(res.Stderr) == "" {
				res.Stderr = err.Error()
			}
		}
	}

	// Failures are reported by the caller that decides what they mean.
	r.logger.Debug("git",
		slog.String("args", strings.Join(args, " ")),
		slog.Int("exit", res.ExitCode),
		slog.Duration("took", time.Since(start)),
	)

	return res
}
