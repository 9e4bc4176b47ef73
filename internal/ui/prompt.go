package ui

import (
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type promptSubmitMsg struct {
	value string
}

type promptCancelMsg struct{}

// Prompt asks for the input of a binding. Single-line prompts submit on
// enter, multi-line ones on ctrl+d. Esc cancels both. The answer is not
// validated: an empty value is submitted as is.
type Prompt struct {
	label     string
	multiline bool
	input     textinput.Model
	area      textarea.Model
}

func NewPrompt(label string, multiline bool, width int) *Prompt {
	p := &Prompt{label: label, multiline: multiline}
	if multiline {
		ta := textarea.New()
		ta.Placeholder = "Commit message..."
		ta.ShowLineNumbers = false
		ta.CharLimit = 0
		ta.SetWidth(max(width, 20))
		ta.SetHeight(5)
		ta.Focus()
		p.area = ta
		return p
	}

	ti := textinput.New()
	ti.Placeholder = "feature/my-branch"
	ti.CharLimit = 0
	ti.Width = max(width-len(label)-2, 10)
	ti.Focus()
	p.input = ti
	return p
}

func (p *Prompt) Init() tea.Cmd {
	if p.multiline {
		return textarea.Blink
	}
	return textinput.Blink
}

func (p *Prompt) Update(msg tea.Msg) (*Prompt, tea.Cmd) {
	var cmd tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "esc":
			return p, func() tea.Msg { return promptCancelMsg{} }
		case "enter":
			if !p.multiline {
				value := p.input.Value()
				return p, func() tea.Msg { return promptSubmitMsg{value: value} }
			}
		case "ctrl+d":
			if p.multiline {
				value := p.area.Value()
				return p, func() tea.Msg { return promptSubmitMsg{value: value} }
			}
		}
	}

	if p.multiline {
		p.area, cmd = p.area.Update(msg)
	} else {
		p.input, cmd = p.input.Update(msg)
	}
	return p, cmd
}

func (p *Prompt) View() string {
	if p.multiline {
		return promptStyle.Render(p.label) + "\n" +
			p.area.View() + "\n" +
			helpStyle.Render("ctrl+d: submit • esc: cancel")
	}
	return promptStyle.Render(p.label) + p.input.View() + "\n" +
		helpStyle.Render("enter: submit • esc: cancel")
}
