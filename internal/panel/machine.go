package panel

import (
	"context"
	"errors"
	"log/slog"
)

// State is the state of the panel machine.
type State int

const (
	StateClosed State = iota
	StateStatus
	StateBranch
)

func (s State) String() string {
	switch s {
	case StateStatus:
		return "status"
	case StateBranch:
		return "branch"
	default:
		return "closed"
	}
}

// Provider supplies panel content and command tables.
type Provider interface {
	Snapshot(ctx context.Context, kind Kind) (Snapshot, error)
	Bindings(kind Kind) []Binding
}

// Invocation is a key press resolved against the live panel, ready to run.
type Invocation struct {
	Kind    Kind
	Binding Binding
	Target  Target
}

// Completion is the result of running an invocation or loading a panel,
// waiting to be applied to the machine.
type Completion struct {
	Kind     Kind
	Outcome  Outcome
	Snapshot Snapshot
	Loaded   bool
	Err      error
}

// Machine holds at most one live panel and moves between the Closed, Status
// and Branch states.
//
// Load and Execute only read the provider and may run off the UI goroutine.
// Every other method mutates the machine and must be called from one
// goroutine.
type Machine struct {
	provider Provider
	logger   *slog.Logger
	panel    *Panel
	notice   string
}

func NewMachine(provider Provider, logger *slog.Logger) *Machine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Machine{provider: provider, logger: logger}
}

func (m *Machine) State() State {
	if m.panel == nil {
		return StateClosed
	}
	if m.panel.Kind() == KindBranch {
		return StateBranch
	}
	return StateStatus
}

// Panel returns the live panel, nil when closed.
func (m *Machine) Panel() *Panel {
	return m.panel
}

// Notice returns the transient message of the last action.
func (m *Machine) Notice() string {
	return m.notice
}

func (m *Machine) Notify(msg string) {
	m.notice = msg
}

// Open loads kind and makes it the live panel, replacing any open one.
func (m *Machine) Open(ctx context.Context, kind Kind) error {
	c := m.Load(ctx, kind)
	m.Apply(c)
	return c.Err
}

// Close destroys the live panel.
func (m *Machine) Close() {
	if m.panel != nil {
		m.logger.Debug("panel closed", slog.String("panel", m.panel.Kind().String()))
	}
	m.panel = nil
}

// Load queries git for a panel of kind without touching the machine.
func (m *Machine) Load(ctx context.Context, kind Kind) Completion {
	snap, err := m.provider.Snapshot(ctx, kind)
	return Completion{
		Kind:     kind,
		Outcome:  Outcome{Next: SwitchPanel},
		Snapshot: snap,
		Loaded:   err == nil,
		Err:      err,
	}
}

// Prepare resolves key against the live panel. It returns ErrUnbound for keys
// without a binding and ErrInvalidSelect when the binding needs a target and
// line does not resolve to one.
func (m *Machine) Prepare(key string, line int) (Invocation, error) {
	if m.panel == nil {
		return Invocation{}, ErrUnbound
	}
	b, ok := m.panel.Binding(key)
	if !ok {
		return Invocation{}, ErrUnbound
	}
	inv := Invocation{Kind: m.panel.Kind(), Binding: b}
	if b.Select {
		target, err := m.panel.Resolve(line)
		if err != nil {
			return Invocation{}, err
		}
		inv.Target = target
	}
	return inv, nil
}

// Execute runs the handler and the queries for whatever panel is shown next.
func (m *Machine) Execute(ctx context.Context, inv Invocation, input string) Completion {
	out := inv.Binding.Handler(ctx, inv.Target, input)
	c := Completion{Kind: inv.Kind, Outcome: out}

	switch out.Next {
	case Close:
		return c
	case SwitchPanel:
		c.Kind = inv.Kind.Other()
	case Stay:
		if !out.Refresh {
			return c
		}
	}

	c.Snapshot, c.Err = m.provider.Snapshot(ctx, c.Kind)
	c.Loaded = c.Err == nil
	return c
}

// Apply performs the transition and refresh described by c.
func (m *Machine) Apply(c Completion) {
	m.notice = c.Outcome.Notice

	switch c.Outcome.Next {
	case Close:
		m.Close()
		return
	case SwitchPanel:
		m.panel = New(c.Kind, m.provider.Bindings(c.Kind))
		m.logger.Debug("panel opened", slog.String("panel", c.Kind.String()))
	}

	if c.Err != nil {
		m.logger.Error("panel refresh failed", slog.String("panel", c.Kind.String()), slog.Any("error", c.Err))
		if m.notice == "" {
			m.notice = c.Err.Error()
		}
		return
	}
	if !c.Loaded || m.panel == nil {
		return
	}
	if err := m.panel.Refresh(c.Snapshot); err != nil {
		m.logger.Error("panel rewrite failed", slog.Any("error", err))
	}
}

// Dispatch handles a key press synchronously: resolve, run, apply. Invalid
// selections set the InvalidSelect notice and run nothing.
func (m *Machine) Dispatch(ctx context.Context, key string, line int, input string) error {
	inv, err := m.Prepare(key, line)
	if errors.Is(err, ErrInvalidSelect) {
		m.notice = InvalidSelect
		return err
	}
	if err != nil {
		return err
	}
	m.Apply(m.Execute(ctx, inv, input))
	return nil
}
