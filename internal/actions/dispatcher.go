// Package actions holds the command tables of the status and branch panels:
// each key maps to a handler that issues one git invocation and reports a
// notice for the panel.
package actions

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/autogit/autogit/internal/git"
	"github.com/autogit/autogit/internal/panel"
)

// Dispatcher builds panel snapshots and command tables on top of a git
// client. It implements panel.Provider.
type Dispatcher struct {
	git    *git.Client
	logger *slog.Logger
}

func New(client *git.Client, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{git: client, logger: logger}
}

// Snapshot runs the queries a panel of kind is drawn from.
func (d *Dispatcher) Snapshot(ctx context.Context, kind panel.Kind) (panel.Snapshot, error) {
	var snap panel.Snapshot

	switch kind {
	case panel.KindStatus:
		unstaged, err := d.git.UnstagedFiles(ctx)
		if err != nil {
			return snap, fmt.Errorf("failed to get status: %w", err)
		}
		staged, err := d.git.StagedFiles(ctx)
		if err != nil {
			return snap, fmt.Errorf("failed to get staged files: %w", err)
		}
		snap.Files = append(unstaged, staged...)
	case panel.KindBranch:
		branches, err := d.git.Branches(ctx)
		if err != nil {
			return snap, fmt.Errorf("failed to get branches: %w", err)
		}
		snap.Branches = branches
	default:
		return snap, fmt.Errorf("unknown panel %v", kind)
	}

	snap.Branch = d.currentBranch(ctx)
	return snap, nil
}

// currentBranch tolerates an unborn HEAD, where rev-parse fails, by showing
// an empty name.
func (d *Dispatcher) currentBranch(ctx context.Context) string {
	branch, err := d.git.CurrentBranch(ctx)
	if err != nil {
		d.logger.Warn("current branch unavailable", slog.Any("error", err))
		return ""
	}
	return branch
}

// Bindings returns the command table of a panel kind.
func (d *Dispatcher) Bindings(kind panel.Kind) []panel.Binding {
	if kind == panel.KindBranch {
		return d.branchBindings()
	}
	return d.statusBindings()
}

// common bindings shared by both panels.
func commonBindings(other string) []panel.Binding {
	return []panel.Binding{
		{Key: "1", Help: other, Handler: func(context.Context, panel.Target, string) panel.Outcome {
			return panel.Outcome{Next: panel.SwitchPanel}
		}},
		{Key: "q", Help: "exit", Handler: func(context.Context, panel.Target, string) panel.Outcome {
			return panel.Outcome{Next: panel.Close}
		}},
		{Key: "r", Help: "refresh", Handler: func(context.Context, panel.Target, string) panel.Outcome {
			return panel.Outcome{Refresh: true}
		}},
	}
}

// report turns a git result into the outcome of a mutating action: git's
// own explanation on failure, success otherwise. The panel is always refreshed.
func (d *Dispatcher) report(res git.Result, success string) panel.Outcome {
	if res.Failed() {
		d.logger.Info("action failed", slog.Any("args", res.Args), slog.String("message", res.Message()))
		return panel.Outcome{Notice: res.Message(), Refresh: true}
	}
	d.logger.Debug("action succeeded", slog.Any("args", res.Args))
	return panel.Outcome{Notice: success, Refresh: true}
}

func invalid() panel.Outcome {
	return panel.Outcome{Notice: panel.InvalidSelect}
}
