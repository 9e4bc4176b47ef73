package actions

import (
	"context"
	"strings"

	"github.com/autogit/autogit/internal/models"
	"github.com/autogit/autogit/internal/panel"
)

func (d *Dispatcher) statusBindings() []panel.Binding {
	return append(commonBindings("branches"),
		panel.Binding{Key: "a", Help: "add / restore from staging", Select: true, Handler: d.modify},
		panel.Binding{Key: "c", Help: "commit", Prompt: "Enter commit message: ", Multiline: true, Handler: d.commit},
		panel.Binding{Key: "p", Help: "push", Handler: d.push},
		panel.Binding{Key: "u", Help: "pull", Handler: d.pull},
	)
}

// modify stages the selected unstaged file, or unstages the selected staged
// file. On a section header it applies to every file.
func (d *Dispatcher) modify(ctx context.Context, target panel.Target, _ string) panel.Outcome {
	if target.Header {
		switch target.Section {
		case panel.SectionUntracked:
			return d.report(d.git.AddAll(ctx), "Added all files")
		case panel.SectionStaged:
			return d.report(d.git.UnstageAll(ctx), "Restored all files from staging")
		}
		return invalid()
	}

	if target.File == nil {
		return invalid()
	}

	file := target.File
	if file.Kind == models.FileStaged {
		return d.report(d.git.Unstage(ctx, file.Path), "Restored "+file.Path+" from staging")
	}
	return d.report(d.git.Add(ctx, file.Path), "Added "+file.Path)
}

// commit records the index with the prompted message. Empty messages are
// passed through to git.
func (d *Dispatcher) commit(ctx context.Context, _ panel.Target, message string) panel.Outcome {
	return d.report(d.git.Commit(ctx, message), "Committed with message: "+message)
}

// push pushes the current branch and sets its upstream.
func (d *Dispatcher) push(ctx context.Context, _ panel.Target, _ string) panel.Outcome {
	branch, err := d.git.CurrentBranch(ctx)
	if err != nil {
		return panel.Outcome{Notice: err.Error(), Refresh: true}
	}
	return d.report(d.git.Push(ctx, branch), "Pushed changes")
}

func (d *Dispatcher) pull(ctx context.Context, _ panel.Target, _ string) panel.Outcome {
	res := d.git.Pull(ctx)
	return d.report(res, strings.TrimSpace(res.Stdout))
}
