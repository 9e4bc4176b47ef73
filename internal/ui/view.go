package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/autogit/autogit/internal/panel"
)

// frame is the border plus horizontal padding of windowStyle.
const frame = 4

// innerWidth is the text width inside the window.
func (m Model) innerWidth() int {
	w := m.winWidth
	if m.width > 0 {
		w = min(w, m.width-2)
	}
	return max(w-frame, 20)
}

// footerLines is the height of what is drawn below the panel lines.
func (m Model) footerLines() int {
	if m.prompt != nil {
		return lipgloss.Height(m.prompt.View()) + 1
	}
	return 2
}

// syncViewport sizes the viewport to the terminal and scrolls it so the
// cursor line stays visible.
func (m *Model) syncViewport() {
	p := m.machine.Panel()
	if p == nil {
		return
	}

	m.viewport.Width = m.innerWidth()
	lines := p.Buffer().Len()
	if m.height > 0 {
		m.viewport.Height = max(min(lines, m.height-2-m.footerLines()), 1)
	} else {
		m.viewport.Height = lines
	}
	m.viewport.SetContent(m.renderLines(p))

	switch {
	case m.cursor < m.viewport.YOffset:
		m.viewport.SetYOffset(m.cursor)
	case m.cursor >= m.viewport.YOffset+m.viewport.Height:
		m.viewport.SetYOffset(m.cursor - m.viewport.Height + 1)
	}
}

func (m Model) renderLines(p *panel.Panel) string {
	width := m.innerWidth()
	lines := p.Lines()
	out := make([]string, len(lines))
	for i, line := range lines {
		style := lineStyle(line)
		if i == m.cursor {
			style = style.Inherit(selectedStyle).Width(width)
		}
		out[i] = style.Render(line)
	}
	return strings.Join(out, "\n")
}

// lineStyle colours the fixed lines of the templates.
func lineStyle(line string) lipgloss.Style {
	switch {
	case line == "help":
		return titleStyle
	case line == panel.HeaderUntracked, line == panel.HeaderStaging, line == panel.HeaderBranches:
		return headerStyle
	case strings.HasPrefix(line, "Current branch = "), strings.HasPrefix(line, "* "):
		return currentStyle
	}
	return lipgloss.NewStyle()
}

func (m Model) footer() string {
	divider := dividerStyle.Render(strings.Repeat("─", m.innerWidth()))
	if m.prompt != nil {
		return divider + "\n" + m.prompt.View()
	}
	if m.busy {
		return divider + "\n" + m.spinner.View() + helpStyle.Render(" running git...")
	}
	return divider + "\n" + noticeStyle.Render(m.machine.Notice())
}

func (m Model) View() string {
	if m.machine.Panel() == nil {
		if m.busy {
			return m.spinner.View() + " loading..."
		}
		return ""
	}

	body := lipgloss.JoinVertical(lipgloss.Left, m.viewport.View(), m.footer())
	window := windowStyle.Width(m.innerWidth() + frame - 2).Render(body)

	if m.width == 0 || m.height == 0 {
		return window
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, window)
}
