package ui

import (
	"context"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/autogit/autogit/internal/actions"
	"github.com/autogit/autogit/internal/git"
	"github.com/autogit/autogit/internal/git/gittest"
	"github.com/autogit/autogit/internal/panel"
)

func TestMain(m *testing.M) {
	lipgloss.SetColorProfile(termenv.Ascii)
	os.Exit(m.Run())
}

type worktree struct {
	untracked []string
	staged    []string
}

func (w *worktree) respond(args []string) git.Result {
	switch strings.Join(args, " ") {
	case "status --short":
		var b strings.Builder
		for _, f := range w.untracked {
			b.WriteString("?? " + f + "\n")
		}
		return git.Result{Stdout: b.String()}
	case "diff --name-only --cached":
		var b strings.Builder
		for _, f := range w.staged {
			b.WriteString(f + "\n")
		}
		return git.Result{Stdout: b.String()}
	case "rev-parse --abbrev-ref HEAD":
		return git.Result{Stdout: "main\n"}
	case "branch -a":
		return git.Result{Stdout: "* main\n  dev\n  remotes/origin/dev\n"}
	}
	if len(args) == 2 && args[0] == "add" {
		if i := slices.Index(w.untracked, args[1]); i >= 0 {
			w.untracked = slices.Delete(w.untracked, i, i+1)
			w.staged = append(w.staged, args[1])
		}
	}
	return git.Result{}
}

func newTestModel(t *testing.T, kind panel.Kind) (Model, *gittest.FakeRunner) {
	t.Helper()
	wt := &worktree{untracked: []string{"foo.txt", "bar.txt"}}
	runner := gittest.NewFakeRunner()
	runner.Respond = wt.respond

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	machine := panel.NewMachine(actions.New(git.NewClient(runner, "origin"), logger), logger)
	m := NewModel(context.Background(), machine, Options{Kind: kind, Width: 60, Logger: logger})

	m, _ = settle(t, m, m.Init())
	require.NotNil(t, m.Machine().Panel())
	runner.Reset()
	return m, runner
}

// settle runs cmd and everything it leads to, feeding the model's own
// messages back into Update. Other messages are returned. Commands still
// pending after a short wait, like cursor blinks, are dropped.
func settle(t *testing.T, model tea.Model, cmd tea.Cmd) (Model, []tea.Msg) {
	t.Helper()
	var other []tea.Msg
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		msg, ok := runCmd(c)
		if !ok {
			continue
		}
		switch msg := msg.(type) {
		case tea.BatchMsg:
			queue = append(queue, msg...)
		case panelLoadedMsg, actionDoneMsg, promptSubmitMsg, promptCancelMsg:
			var next tea.Cmd
			model, next = model.Update(msg)
			queue = append(queue, next)
		default:
			other = append(other, msg)
		}
	}
	return model.(Model), other
}

func runCmd(c tea.Cmd) (tea.Msg, bool) {
	done := make(chan tea.Msg, 1)
	go func() { done <- c() }()
	select {
	case msg := <-done:
		return msg, true
	case <-time.After(100 * time.Millisecond):
		return nil, false
	}
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case "ctrl+d":
		return tea.KeyMsg{Type: tea.KeyCtrlD}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// press sends one key and settles whatever it starts.
func press(t *testing.T, m Model, s string) (Model, []tea.Msg) {
	t.Helper()
	next, cmd := m.Update(keyMsg(s))
	return settle(t, next, cmd)
}

func lineAtCursor(m Model) string {
	line, _ := m.Machine().Panel().Buffer().Line(m.Cursor())
	return line
}

func hasQuit(msgs []tea.Msg) bool {
	for _, msg := range msgs {
		if _, ok := msg.(tea.QuitMsg); ok {
			return true
		}
	}
	return false
}

func TestInitOpensStatusPanel(t *testing.T) {
	m, _ := newTestModel(t, panel.KindStatus)

	assert.False(t, m.Busy())
	assert.Equal(t, panel.StateStatus, m.Machine().State())
	assert.Equal(t, "?? foo.txt", lineAtCursor(m), "cursor starts on the first entry")
}

func TestInitOpensBranchPanel(t *testing.T) {
	m, _ := newTestModel(t, panel.KindBranch)

	assert.Equal(t, panel.StateBranch, m.Machine().State())
	assert.Equal(t, "* main", lineAtCursor(m))
}

func TestCursorMovement(t *testing.T) {
	m, runner := newTestModel(t, panel.KindStatus)
	last := m.Machine().Panel().Buffer().Len() - 1

	m, _ = press(t, m, "j")
	assert.Equal(t, "?? bar.txt", lineAtCursor(m))
	m, _ = press(t, m, "k")
	assert.Equal(t, "?? foo.txt", lineAtCursor(m))

	m, _ = press(t, m, "g")
	assert.Equal(t, 0, m.Cursor())
	m, _ = press(t, m, "up")
	assert.Equal(t, 0, m.Cursor(), "clamped at the top")

	m, _ = press(t, m, "G")
	assert.Equal(t, last, m.Cursor())
	m, _ = press(t, m, "down")
	assert.Equal(t, last, m.Cursor(), "clamped at the bottom")

	assert.Empty(t, runner.Calls())
}

func TestStageFileUnderCursor(t *testing.T) {
	m, runner := newTestModel(t, panel.KindStatus)

	next, cmd := m.Update(keyMsg("a"))
	m = next.(Model)
	assert.True(t, m.Busy())

	// Keys are ignored while the action runs.
	ignored, ignoredCmd := m.Update(keyMsg("a"))
	assert.Nil(t, ignoredCmd)
	assert.True(t, ignored.(Model).Busy())

	m, _ = settle(t, m, cmd)
	assert.False(t, m.Busy())
	assert.Equal(t, [][]string{{"add", "foo.txt"}}, runner.Mutations())
	assert.Equal(t, "Added foo.txt", m.Machine().Notice())
	assert.Contains(t, m.Machine().Panel().Lines(), "foo.txt")
	assert.NotContains(t, m.Machine().Panel().Lines(), "?? foo.txt")
}

func TestInvalidSelectRunsNothing(t *testing.T) {
	m, runner := newTestModel(t, panel.KindStatus)

	m, _ = press(t, m, "g")
	m, _ = press(t, m, "a")

	assert.Equal(t, panel.InvalidSelect, m.Machine().Notice())
	assert.False(t, m.Busy())
	assert.Empty(t, runner.Calls())
}

func TestUnboundKeyIsIgnored(t *testing.T) {
	m, runner := newTestModel(t, panel.KindStatus)

	m, msgs := press(t, m, "z")
	assert.Empty(t, msgs)
	assert.Empty(t, m.Machine().Notice())
	assert.Empty(t, runner.Calls())
}

func TestCommitPrompt(t *testing.T) {
	m, runner := newTestModel(t, panel.KindStatus)

	m, _ = press(t, m, "c")
	require.NotNil(t, m.prompt)
	assert.Contains(t, m.View(), "Enter commit message: ")

	m, _ = press(t, m, "fix typo")
	m, _ = press(t, m, "ctrl+d")

	assert.Nil(t, m.prompt)
	assert.Equal(t, [][]string{{"commit", "-m", "fix typo"}}, runner.Mutations())
	assert.Equal(t, "Committed with message: fix typo", m.Machine().Notice())
}

func TestCommitMessageIsNotRewritten(t *testing.T) {
	m, runner := newTestModel(t, panel.KindStatus)

	m, _ = press(t, m, "c")
	m, _ = press(t, m, "  padded ")
	m, _ = press(t, m, "ctrl+d")

	assert.Equal(t, [][]string{{"commit", "-m", "  padded "}}, runner.Mutations())
}

func TestEmptyCommitMessageIsSubmitted(t *testing.T) {
	m, runner := newTestModel(t, panel.KindStatus)

	m, _ = press(t, m, "c")
	m, _ = press(t, m, "ctrl+d")

	assert.Equal(t, [][]string{{"commit", "-m", ""}}, runner.Mutations())
}

func TestEscCancelsPrompt(t *testing.T) {
	m, runner := newTestModel(t, panel.KindStatus)

	m, _ = press(t, m, "c")
	m, _ = press(t, m, "esc")

	assert.Nil(t, m.prompt)
	assert.False(t, m.Busy())
	assert.Empty(t, runner.Calls())
}

func TestMakeBranchPrompt(t *testing.T) {
	m, runner := newTestModel(t, panel.KindBranch)

	m, _ = press(t, m, "a")
	require.NotNil(t, m.prompt)
	m, _ = press(t, m, "feature")
	m, _ = press(t, m, "enter")

	assert.Equal(t, [][]string{{"branch", "feature"}}, runner.Mutations())
	assert.Equal(t, "Branch was created", m.Machine().Notice())
}

func TestSwitchPanelResetsCursor(t *testing.T) {
	m, _ := newTestModel(t, panel.KindStatus)

	m, _ = press(t, m, "1")
	assert.Equal(t, panel.StateBranch, m.Machine().State())
	assert.Equal(t, "* main", lineAtCursor(m))

	m, _ = press(t, m, "1")
	assert.Equal(t, panel.StateStatus, m.Machine().State())
	assert.Equal(t, "?? foo.txt", lineAtCursor(m))
}

func TestQuitKeyClosesPanel(t *testing.T) {
	m, runner := newTestModel(t, panel.KindStatus)

	m, msgs := press(t, m, "q")
	assert.Equal(t, panel.StateClosed, m.Machine().State())
	assert.True(t, hasQuit(msgs))
	assert.Empty(t, runner.Calls())
}

func TestCtrlCQuits(t *testing.T) {
	m, _ := newTestModel(t, panel.KindStatus)

	m, _ = press(t, m, "c")
	m, msgs := press(t, m, "ctrl+c")
	assert.True(t, hasQuit(msgs), "quits even with a prompt open")
	assert.Equal(t, panel.StateClosed, m.Machine().State())
}

func TestViewDrawsWindow(t *testing.T) {
	m, _ := newTestModel(t, panel.KindStatus)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = next.(Model)
	m.Machine().Notify("Pushed changes")

	view := m.View()
	assert.Contains(t, view, "╭")
	assert.Contains(t, view, "Untracked files")
	assert.Contains(t, view, "?? foo.txt")
	assert.Contains(t, view, "Current branch = main")
	assert.Contains(t, view, "Pushed changes")
}

func TestViewportFollowsCursor(t *testing.T) {
	m, _ := newTestModel(t, panel.KindStatus)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 10})
	m = next.(Model)

	m, _ = press(t, m, "g")
	assert.Contains(t, m.View(), "help")

	m, _ = press(t, m, "G")
	last := m.Machine().Panel().Lines()[m.Cursor()]
	assert.Contains(t, m.View(), last)
	assert.NotContains(t, m.View(), "help")
}
