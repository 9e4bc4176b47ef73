// Package gittest provides a scripted git.Runner for tests.
package gittest

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/autogit/autogit/internal/git"
)

// FakeRunner records every invocation and replays scripted results.
// Lookup order: queued results for the exact argv, then Respond, then an
// empty successful Result.
type FakeRunner struct {
	mu      sync.Mutex
	calls   [][]string
	queued  map[string][]git.Result
	Respond func(args []string) git.Result
}

func NewFakeRunner() *FakeRunner {
	return &FakeRunner{queued: make(map[string][]git.Result)}
}

// On queues res for the next invocation whose argv joins to args.
func (f *FakeRunner) On(args string, res git.Result) *FakeRunner {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queued[args] = append(f.queued[args], res)
	return f
}

// Stdout queues a successful result with the given output.
func (f *FakeRunner) Stdout(args, stdout string) *FakeRunner {
	return f.On(args, git.Result{Stdout: stdout})
}

// Fail queues a failed result with the given error stream.
func (f *FakeRunner) Fail(args, stderr string) *FakeRunner {
	return f.On(args, git.Result{Stderr: stderr, ExitCode: 1})
}

func (f *FakeRunner) Run(_ context.Context, args ...string) git.Result {
	f.mu.Lock()
	f.calls = append(f.calls, slices.Clone(args))
	key := strings.Join(args, " ")
	var res git.Result
	found := false
	if q := f.queued[key]; len(q) > 0 {
		res, f.queued[key] = q[0], q[1:]
		found = true
	}
	respond := f.Respond
	f.mu.Unlock()

	if !found && respond != nil {
		res = respond(args)
	}
	res.Args = args
	return res
}

// Calls returns every argv seen so far.
func (f *FakeRunner) Calls() [][]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.calls)
}

// Called reports whether git was invoked with exactly args.
func (f *FakeRunner) Called(args ...string) bool {
	for _, c := range f.Calls() {
		if slices.Equal(c, args) {
			return true
		}
	}
	return false
}

// Reset forgets recorded calls.
func (f *FakeRunner) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = nil
}

// Mutations returns recorded calls that are not one of the read-only queries
// used to draw a panel.
func (f *FakeRunner) Mutations() [][]string {
	var out [][]string
	for _, c := range f.Calls() {
		if !IsQuery(c) {
			out = append(out, c)
		}
	}
	return out
}

// IsQuery reports whether args is one of the panel refresh queries.
func IsQuery(args []string) bool {
	switch strings.Join(args, " ") {
	case "status --short", "diff --name-only --cached", "rev-parse --abbrev-ref HEAD", "branch -a":
		return true
	}
	return false
}
