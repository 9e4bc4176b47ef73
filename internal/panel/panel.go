// Package panel holds the status and branch panels: their templates, their
// line buffers, their command tables and the state machine switching between
// them.
package panel

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/autogit/autogit/internal/models"
)

// InvalidSelect is the notice shown when the cursor is not on an entry the
// pressed key can act on.
const InvalidSelect = "Invalid select"

var (
	// ErrInvalidSelect indicates the cursor line does not resolve to a target.
	ErrInvalidSelect = errors.New("invalid select")
	// ErrUnbound indicates the key has no binding in the active panel.
	ErrUnbound = errors.New("key not bound")
)

// Kind identifies one of the two panels.
type Kind int

const (
	KindStatus Kind = iota
	KindBranch
)

func (k Kind) String() string {
	switch k {
	case KindStatus:
		return "status"
	case KindBranch:
		return "branch"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Other returns the panel reached with the panel-switch key.
func (k Kind) Other() Kind {
	if k == KindStatus {
		return KindBranch
	}
	return KindStatus
}

// Snapshot is the result of the git queries a panel is drawn from.
type Snapshot struct {
	Branch   string
	Files    []models.FileEntry
	Branches []models.Branch
}

// Section is the part of a panel a line belongs to.
type Section int

const (
	SectionNone Section = iota
	SectionUntracked
	SectionStaged
	SectionLocal
	SectionRemote
)

// Target is what the cursor line resolved to. Exactly one of Header, File
// or Branch is set.
type Target struct {
	Line    int
	Section Section
	Header  bool
	File    *models.FileEntry
	Branch  *models.Branch
}

// Transition is the state change requested by an action.
type Transition int

const (
	Stay Transition = iota
	SwitchPanel
	Close
)

// Outcome is what an action reports back to the state machine.
type Outcome struct {
	Notice  string
	Next    Transition
	Refresh bool
}

// Handler performs one action. input is the prompt answer for bindings that
// prompt, empty otherwise.
type Handler func(ctx context.Context, target Target, input string) Outcome

// Binding is one entry of a panel's command table.
type Binding struct {
	Key  string
	Help string
	// Prompt, when set, is asked before the handler runs.
	Prompt    string
	Multiline bool
	// Select makes the binding resolve the cursor line first.
	Select  bool
	Handler Handler
}

type row struct {
	section    Section
	header     bool
	index      int
	decoration int
}

// Panel is one live view: its template, its buffer and its command table.
type Panel struct {
	kind            Kind
	template        string
	firstSelectable int
	buf             *Buffer
	snapshot        Snapshot
	untracked       []models.FileEntry
	staged          []models.FileEntry
	local           []models.Branch
	remote          []models.Branch
	rows            map[int]row
	bindings        map[string]Binding
}

// New builds an empty panel of kind with its command table installed.
func New(kind Kind, bindings []Binding) *Panel {
	p := &Panel{
		kind:     kind,
		template: Template(kind),
		buf:      NewBuffer(),
		bindings: make(map[string]Binding, len(bindings)),
	}
	for _, b := range bindings {
		p.bindings[b.Key] = b
	}
	// Draw the empty frame so offsets are known before the first load.
	_ = p.Refresh(Snapshot{})
	return p
}

func (p *Panel) Kind() Kind {
	return p.kind
}

func (p *Panel) Template() string {
	return p.template
}

// FirstSelectable is the zero-based first line a selection may target.
func (p *Panel) FirstSelectable() int {
	return p.firstSelectable
}

func (p *Panel) Buffer() *Buffer {
	return p.buf
}

func (p *Panel) Lines() []string {
	return p.buf.Lines()
}

func (p *Panel) Snapshot() Snapshot {
	return p.snapshot
}

// Binding looks up key in the panel's command table.
func (p *Panel) Binding(key string) (Binding, bool) {
	b, ok := p.bindings[key]
	return b, ok
}

// Bindings returns the command table sorted by key.
func (p *Panel) Bindings() []Binding {
	out := make([]Binding, 0, len(p.bindings))
	for _, b := range p.bindings {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// InitialCursor is the line the cursor is placed on when the panel opens:
// the first entry line.
func (p *Panel) InitialCursor() int {
	if p.kind == KindStatus {
		return p.firstSelectable + 1
	}
	return p.firstSelectable
}

// Refresh redraws the whole panel from snap inside the buffer's
// read-only lift window.
func (p *Panel) Refresh(snap Snapshot) error {
	p.snapshot = snap
	p.split(snap)

	var listA, listB []string
	switch p.kind {
	case KindStatus:
		listA = fileLines(p.untracked)
		listB = fileLines(p.staged)
	case KindBranch:
		listA = branchLines(p.local)
		listB = branchLines(p.remote)
	}

	lines := Format(p.kind, snap.Branch, listA, listB)
	if err := p.buf.Rewrite(lines); err != nil {
		return err
	}
	p.index(lines)
	return nil
}

func (p *Panel) split(snap Snapshot) {
	p.untracked, p.staged, p.local, p.remote = nil, nil, nil, nil
	for _, f := range snap.Files {
		if f.Kind == models.FileStaged {
			p.staged = append(p.staged, f)
		} else {
			p.untracked = append(p.untracked, f)
		}
	}
	for _, b := range snap.Branches {
		if b.IsRemote() {
			p.remote = append(p.remote, b)
		} else {
			p.local = append(p.local, b)
		}
	}
}

// index maps line numbers to the entries drawn on them.
func (p *Panel) index(lines []string) {
	p.rows = make(map[int]row)
	branchLine := indexOf(lines, 0, func(l string) bool { return strings.HasPrefix(l, currentBranchPrefix) })

	switch p.kind {
	case KindStatus:
		hdrA := indexOf(lines, branchLine+1, func(l string) bool { return l == HeaderUntracked })
		p.firstSelectable = hdrA
		p.rows[hdrA] = row{section: SectionUntracked, header: true}
		for i := range p.untracked {
			p.rows[hdrA+1+i] = row{section: SectionUntracked, index: i, decoration: 3}
		}
		hdrB := indexOf(lines, hdrA+1+len(p.untracked), func(l string) bool { return l == HeaderStaging })
		if hdrB < 0 {
			return
		}
		p.rows[hdrB] = row{section: SectionStaged, header: true}
		for i := range p.staged {
			p.rows[hdrB+1+i] = row{section: SectionStaged, index: i}
		}
	case KindBranch:
		hdr := indexOf(lines, branchLine+1, func(l string) bool { return l == HeaderBranches })
		p.firstSelectable = hdr + 1
		for i := range p.local {
			p.rows[hdr+1+i] = row{section: SectionLocal, index: i, decoration: 2}
		}
		// An empty first list still occupies its slot line.
		start := hdr + 1 + max(len(p.local), 1)
		for i := range p.remote {
			p.rows[start+i] = row{section: SectionRemote, index: i, decoration: 2}
		}
	}
}

// Resolve maps the zero-based cursor line onto a live entry. Lines above
// the first selectable line, blank lines and lines whose text no longer
// matches the entry they were drawn for yield ErrInvalidSelect.
func (p *Panel) Resolve(line int) (Target, error) {
	if line < p.firstSelectable {
		return Target{}, ErrInvalidSelect
	}
	text, ok := p.buf.Line(line)
	if !ok {
		return Target{}, ErrInvalidSelect
	}
	r, ok := p.rows[line]
	if !ok {
		return Target{}, ErrInvalidSelect
	}

	target := Target{Line: line, Section: r.section, Header: r.header}
	if r.header {
		return target, nil
	}
	if len(text) < r.decoration {
		return Target{}, ErrInvalidSelect
	}
	text = text[r.decoration:]

	switch r.section {
	case SectionUntracked:
		f := p.untracked[r.index]
		if text != f.Raw {
			return Target{}, ErrInvalidSelect
		}
		target.File = &f
	case SectionStaged:
		f := p.staged[r.index]
		if text != f.Raw {
			return Target{}, ErrInvalidSelect
		}
		target.File = &f
	case SectionLocal:
		b := p.local[r.index]
		if text != b.RefName() {
			return Target{}, ErrInvalidSelect
		}
		target.Branch = &b
	case SectionRemote:
		b := p.remote[r.index]
		if text != b.RefName() {
			return Target{}, ErrInvalidSelect
		}
		target.Branch = &b
	default:
		return Target{}, ErrInvalidSelect
	}
	return target, nil
}

func fileLines(files []models.FileEntry) []string {
	lines := make([]string, len(files))
	for i, f := range files {
		lines[i] = f.Display()
	}
	return lines
}

func branchLines(branches []models.Branch) []string {
	lines := make([]string, len(branches))
	for i, b := range branches {
		lines[i] = b.Display()
	}
	return lines
}

func indexOf(lines []string, from int, match func(string) bool) int {
	for i := max(from, 0); i < len(lines); i++ {
		if match(lines[i]) {
			return i
		}
	}
	return -1
}
