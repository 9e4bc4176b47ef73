package actions

import (
	"context"
	"strings"

	"github.com/autogit/autogit/internal/panel"
)

func (d *Dispatcher) branchBindings() []panel.Binding {
	return append(commonBindings("git status"),
		panel.Binding{Key: "i", Help: "switch", Select: true, Handler: d.switchBranch},
		panel.Binding{Key: "m", Help: "merge", Select: true, Handler: d.merge},
		panel.Binding{Key: "d", Help: "delete branch", Select: true, Handler: d.deleteBranch},
		panel.Binding{Key: "a", Help: "make branch", Prompt: "Enter branch name: ", Handler: d.makeBranch},
	)
}

// switchBranch checks out the selected local branch. Remote-tracking entries
// are rejected.
func (d *Dispatcher) switchBranch(ctx context.Context, target panel.Target, _ string) panel.Outcome {
	if target.Branch == nil || target.Branch.IsRemote() {
		return invalid()
	}
	return d.report(d.git.Switch(ctx, target.Branch.Name), "Switched to branch "+target.Branch.Name)
}

// merge merges the selected local branch into the current one.
func (d *Dispatcher) merge(ctx context.Context, target panel.Target, _ string) panel.Outcome {
	if target.Branch == nil || target.Branch.IsRemote() {
		return invalid()
	}
	return d.report(d.git.Merge(ctx, target.Branch.Name), "Branch was merged")
}

// deleteBranch force-deletes a local branch, or deletes a remote-tracking
// entry's branch on its remote.
func (d *Dispatcher) deleteBranch(ctx context.Context, target panel.Target, _ string) panel.Outcome {
	if target.Branch == nil {
		return invalid()
	}
	b := target.Branch
	if b.IsRemote() {
		res := d.git.DeleteRemoteBranch(ctx, b.Remote, b.Name)
		return d.report(res, deletedNotice(res.Stdout, "Deleted "+b.RefName()))
	}
	res := d.git.DeleteBranch(ctx, b.Name)
	return d.report(res, deletedNotice(res.Stdout, "Deleted branch "+b.Name))
}

func (d *Dispatcher) makeBranch(ctx context.Context, _ panel.Target, name string) panel.Outcome {
	return d.report(d.git.CreateBranch(ctx, name), "Branch was created")
}

func deletedNotice(stdout, fallback string) string {
	if msg := strings.TrimSpace(stdout); msg != "" {
		return msg
	}
	return fallback
}
