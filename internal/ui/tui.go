package ui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"vidembed/internal/dialog"
)

var (
	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 2)

	titleStyle   = lipgloss.NewStyle().Bold(true)
	hintStyle    = lipgloss.NewStyle().Faint(true)
	contextStyle = lipgloss.NewStyle().Faint(true).Italic(true)
	helpStyle    = lipgloss.NewStyle().Faint(true)

	buttonStyle = lipgloss.NewStyle().
			Padding(0, 2).
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("62"))

	disabledButtonStyle = lipgloss.NewStyle().
				Padding(0, 2).
				Foreground(lipgloss.Color("245")).
				Background(lipgloss.Color("236"))
)

// refreshMsg tells the model that widget state changed outside Update.
type refreshMsg struct{}

// Program returns a bubbletea program that displays and drives the current
// dialog. Widget changes made from other goroutines trigger a redraw.
func (s *Screen) Program(opts ...tea.ProgramOption) (*tea.Program, error) {
	d := s.Current()
	if d == nil {
		return nil, errors.New("no dialog rendered")
	}

	p := tea.NewProgram(newModel(d, s.context), opts...)

	s.mu.Lock()
	s.notify = func() { go p.Send(refreshMsg{}) }
	s.mu.Unlock()
	return p, nil
}

type model struct {
	d       *Dialog
	ti      textinput.Model
	version uint64
	context string
}

func newModel(d *Dialog, context string) model {
	ti := textinput.New()
	ti.Placeholder = "https://"
	ti.Prompt = "> "
	ti.CharLimit = 2048
	ti.Width = 56

	m := model{d: d, ti: ti, context: context}
	m.sync()
	return m
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+c":
			m.d.hide()
			return m, tea.Quit
		case "esc":
			m.d.hide()
		case "enter":
			if m.d.Visible() {
				m.d.input.press(dialog.KeyEnter)
			}
		default:
			if !m.d.Visible() {
				break
			}
			// Touch mode skips autofocus; the first key focuses the field.
			if !m.d.input.Focused() {
				m.d.input.Focus()
				cmds = append(cmds, m.sync())
			}
			var cmd tea.Cmd
			m.ti, cmd = m.ti.Update(msg)
			cmds = append(cmds, cmd)
			if v := m.ti.Value(); v != m.d.input.Value() {
				m.d.input.edit(v)
			}
		}
	} else {
		var cmd tea.Cmd
		m.ti, cmd = m.ti.Update(msg)
		cmds = append(cmds, cmd)
	}

	cmds = append(cmds, m.sync())
	return m, tea.Batch(cmds...)
}

// sync copies programmatic widget changes into the text input.
func (m *model) sync() tea.Cmd {
	value, version, focused := m.d.input.snapshot()
	if version != m.version {
		m.version = version
		m.ti.SetValue(value)
		m.ti.CursorEnd()
	}
	if focused && !m.ti.Focused() {
		return m.ti.Focus()
	}
	return nil
}

func (m model) View() string {
	if !m.d.Visible() {
		return ""
	}
	l := m.d.Layout()

	label := l.Label
	if l.Hint != "" {
		label += " " + hintStyle.Render(l.Hint)
	}

	btn := disabledButtonStyle
	if m.d.button.Enabled() {
		btn = buttonStyle
	}

	box := boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(l.Title),
		"",
		label,
		m.ti.View(),
		"",
		btn.Render(l.Submit),
	))

	var b strings.Builder
	if !l.InBody && m.context != "" {
		b.WriteString(contextStyle.Render(m.context))
		b.WriteString("\n")
	}
	b.WriteString(box)
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("enter: insert • esc: cancel"))
	b.WriteString("\n")
	return b.String()
}
