// Package form is the task entry form: a title input and a description
// textarea that emit a Submitted message once both hold text.
package form

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/idilsaglam/tasks/internal/model"
	"github.com/idilsaglam/tasks/internal/ui"
)

// Submission is the payload of a successful submit.
type Submission struct {
	Title       string
	Description string
}

// SubmittedMsg is sent when the form is submitted with valid input.
type SubmittedMsg struct{ Submission }

// CancelledMsg is sent when the form is dismissed.
type CancelledMsg struct{}

type field int

const (
	fieldTitle field = iota
	fieldDescription
)

// KeyMap holds the form's own bindings; everything else goes to the
// focused input.
type KeyMap struct {
	Next   key.Binding
	Prev   key.Binding
	Submit key.Binding
	Cancel key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Next:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
		Prev:   key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev field")),
		Submit: key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
		Cancel: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	}
}

// Model is a Bubble Tea component. Like the bubbles inputs it is a value;
// Update returns the new copy.
type Model struct {
	Keys KeyMap

	title textinput.Model
	desc  textarea.Model
	focus field
	width int
}

func New() Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Task title..."
	ti.CharLimit = 200

	ta := textarea.New()
	ta.Placeholder = "Task description..."
	ta.ShowLineNumbers = false
	ta.CharLimit = 2000
	ta.SetHeight(4)

	m := Model{Keys: DefaultKeyMap(), title: ti, desc: ta}
	m.SetWidth(50)
	return m
}

// SetWidth sets the width of both inputs.
func (m *Model) SetWidth(w int) {
	m.width = max(w, 20)
	m.title.Width = m.width - len(m.title.Prompt) - 1
	m.desc.SetWidth(m.width)
}

// Focus resets the form and focuses the title.
func (m Model) Focus() (Model, tea.Cmd) {
	m.Reset()
	return m, m.title.Focus()
}

// Reset clears both fields and moves focus back to the title.
func (m *Model) Reset() {
	m.title.Reset()
	m.desc.Reset()
	m.desc.Blur()
	m.focus = fieldTitle
}

// Values returns the raw field contents.
func (m Model) Values() (title, description string) {
	return m.title.Value(), m.desc.Value()
}

// SetValues fills both fields.
func (m *Model) SetValues(title, description string) {
	m.title.SetValue(title)
	m.desc.SetValue(description)
}

// Submit validates the fields. Blank input is a no-op that keeps the form
// as it is. Valid input is trimmed and returned, and the fields are cleared.
func (m *Model) Submit() (Submission, bool) {
	title, desc := m.Values()
	if model.ValidateInput(title, desc) != nil {
		return Submission{}, false
	}
	m.Reset()
	return Submission{Title: strings.TrimSpace(title), Description: strings.TrimSpace(desc)}, true
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.Keys.Cancel):
			m.Reset()
			return m, func() tea.Msg { return CancelledMsg{} }
		case key.Matches(msg, m.Keys.Submit):
			sub, ok := m.Submit()
			if !ok {
				return m, nil
			}
			return m, func() tea.Msg { return SubmittedMsg{sub} }
		case key.Matches(msg, m.Keys.Next), key.Matches(msg, m.Keys.Prev):
			return m.switchFocus()
		case msg.Type == tea.KeyEnter && m.focus == fieldTitle:
			return m.switchFocus()
		}
	}

	var cmd tea.Cmd
	if m.focus == fieldTitle {
		m.title, cmd = m.title.Update(msg)
	} else {
		m.desc, cmd = m.desc.Update(msg)
	}
	return m, cmd
}

func (m Model) switchFocus() (Model, tea.Cmd) {
	if m.focus == fieldTitle {
		m.focus = fieldDescription
		m.title.Blur()
		return m, m.desc.Focus()
	}
	m.focus = fieldTitle
	m.desc.Blur()
	return m, m.title.Focus()
}

func (m Model) View() string {
	t := ui.Current()
	label := func(s string, f field) string {
		if m.focus == f {
			return t.Accent.Render(s)
		}
		return t.Muted.Render(s)
	}
	help := t.Help.Render("tab switch field • ctrl+s save • esc cancel")

	return lipgloss.JoinVertical(lipgloss.Left,
		t.Title.Render("New task"),
		"",
		label("Title", fieldTitle),
		m.title.View(),
		"",
		label("Description", fieldDescription),
		m.desc.View(),
		"",
		help,
	)
}
