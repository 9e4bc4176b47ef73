// Package ui hosts the panels in a bubbletea program: it draws the live
// panel in a framed window, moves the line cursor, asks for prompt input and
// runs actions off the update loop.
package ui

import (
	"context"
	"errors"
	"log/slog"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/autogit/autogit/internal/panel"
)

// panelLoadedMsg carries the queries for a panel being opened.
type panelLoadedMsg struct {
	completion panel.Completion
}

// actionDoneMsg carries the outcome of an action and the follow-up refresh.
type actionDoneMsg struct {
	completion panel.Completion
}

// Options configures the host.
type Options struct {
	// Kind is the panel opened on start.
	Kind panel.Kind
	// Width is the window width in columns.
	Width  int
	Logger *slog.Logger
}

type Model struct {
	ctx     context.Context
	machine *panel.Machine
	logger  *slog.Logger
	keys    keyMap
	start   panel.Kind

	cursor   int
	viewport viewport.Model
	spinner  spinner.Model
	// busy is set while an action or load runs; action keys are ignored.
	busy    bool
	prompt  *Prompt
	pending panel.Invocation

	winWidth int
	width    int
	height   int
}

func NewModel(ctx context.Context, machine *panel.Machine, opts Options) Model {
	if ctx == nil {
		ctx = context.Background()
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Width <= 0 {
		opts.Width = 100
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = titleStyle

	return Model{
		ctx:      ctx,
		machine:  machine,
		logger:   opts.Logger,
		keys:     defaultKeyMap(),
		start:    opts.Kind,
		viewport: viewport.New(opts.Width, 0),
		spinner:  s,
		busy:     true,
		winWidth: opts.Width,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.load(m.start), m.spinner.Tick)
}

func (m Model) load(kind panel.Kind) tea.Cmd {
	machine, ctx := m.machine, m.ctx
	return func() tea.Msg {
		return panelLoadedMsg{machine.Load(ctx, kind)}
	}
}

// run executes inv in a command so git never blocks the update loop.
func (m Model) run(inv panel.Invocation, input string) tea.Cmd {
	machine, ctx := m.machine, m.ctx
	return func() tea.Msg {
		return actionDoneMsg{machine.Execute(ctx, inv, input)}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.syncViewport()
		return m, nil

	case panelLoadedMsg:
		m.busy = false
		m.machine.Apply(msg.completion)
		if p := m.machine.Panel(); p != nil {
			m.cursor = p.InitialCursor()
		}
		m.syncViewport()
		return m, nil

	case actionDoneMsg:
		m.busy = false
		var before panel.Kind
		if p := m.machine.Panel(); p != nil {
			before = p.Kind()
		}
		m.machine.Apply(msg.completion)

		p := m.machine.Panel()
		if p == nil {
			return m, tea.Quit
		}
		if p.Kind() != before {
			m.cursor = p.InitialCursor()
		}
		m.clampCursor()
		m.syncViewport()
		return m, nil

	case promptSubmitMsg:
		m.prompt = nil
		m.busy = true
		return m, tea.Batch(m.run(m.pending, msg.value), m.spinner.Tick)

	case promptCancelMsg:
		m.prompt = nil
		m.pending = panel.Invocation{}
		m.syncViewport()
		return m, nil

	case spinner.TickMsg:
		if !m.busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.prompt != nil {
		var cmd tea.Cmd
		m.prompt, cmd = m.prompt.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		m.machine.Close()
		return m, tea.Quit
	}

	if m.prompt != nil {
		var cmd tea.Cmd
		m.prompt, cmd = m.prompt.Update(msg)
		return m, cmd
	}

	p := m.machine.Panel()
	if m.busy || p == nil {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Up):
		m.cursor--
	case key.Matches(msg, m.keys.Down):
		m.cursor++
	case key.Matches(msg, m.keys.Top):
		m.cursor = 0
	case key.Matches(msg, m.keys.Bottom):
		m.cursor = p.Buffer().Len() - 1
	default:
		return m.dispatch(msg.String())
	}
	m.clampCursor()
	m.syncViewport()
	return m, nil
}

// dispatch resolves k against the live panel and starts the action or its
// prompt.
func (m Model) dispatch(k string) (tea.Model, tea.Cmd) {
	inv, err := m.machine.Prepare(k, m.cursor)
	switch {
	case errors.Is(err, panel.ErrUnbound):
		return m, nil
	case errors.Is(err, panel.ErrInvalidSelect):
		m.machine.Notify(panel.InvalidSelect)
		return m, nil
	case err != nil:
		m.logger.Error("key dispatch failed", slog.String("key", k), slog.Any("error", err))
		return m, nil
	}

	m.logger.Debug("action", slog.String("panel", inv.Kind.String()), slog.String("key", k), slog.Int("line", m.cursor))

	if inv.Binding.Prompt != "" {
		m.pending = inv
		m.prompt = NewPrompt(inv.Binding.Prompt, inv.Binding.Multiline, m.innerWidth())
		m.syncViewport()
		return m, m.prompt.Init()
	}

	m.busy = true
	return m, tea.Batch(m.run(inv, ""), m.spinner.Tick)
}

func (m *Model) clampCursor() {
	p := m.machine.Panel()
	if p == nil {
		m.cursor = 0
		return
	}
	m.cursor = min(m.cursor, p.Buffer().Len()-1)
	m.cursor = max(m.cursor, 0)
}

// Cursor returns the zero-based line under the cursor.
func (m Model) Cursor() int {
	return m.cursor
}

// Busy reports whether an action is in flight.
func (m Model) Busy() bool {
	return m.busy
}

// Machine returns the panel state machine driven by the model.
func (m Model) Machine() *panel.Machine {
	return m.machine
}
