// Package tui is the interactive task list: a Bubble Tea program that renders
// the derived view of an app.App and turns key presses into app actions.
package tui

import (
	"errors"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/rs/zerolog"

	"github.com/idilsaglam/tasks/internal/app"
	"github.com/idilsaglam/tasks/internal/form"
	"github.com/idilsaglam/tasks/internal/ui"
	"github.com/idilsaglam/tasks/internal/view"
)

type mode int

const (
	modeList mode = iota
	modeSearch
	modeForm
	modeConfirm
)

// Options tune the TUI.
type Options struct {
	ConfirmDelete bool // ask before deleting a task
	Logger        zerolog.Logger
}

// Model is the root Bubble Tea model.
type Model struct {
	app    *app.App
	opts   Options
	logger zerolog.Logger

	keys   KeyMap
	help   help.Model
	search textinput.Model
	form   form.Model

	confirm   *huh.Form
	confirmID string

	mode   mode
	cursor int // row on the current page
	width  int
	height int
}

// New builds the model around a.
func New(a *app.App, opts Options) Model {
	search := textinput.New()
	search.Prompt = "/ "
	search.Placeholder = "Search tasks..."
	search.CharLimit = 200

	w, h := ui.TermSize()
	m := Model{
		app:    a,
		opts:   opts,
		logger: opts.Logger,
		keys:   DefaultKeyMap(),
		help:   help.New(),
		search: search,
		form:   form.New(),
	}
	m.resize(w, h)
	return m
}

// Run starts the program on the alternate screen and blocks until it quits.
func Run(a *app.App, opts Options) error {
	p := tea.NewProgram(New(a, opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m Model) Init() tea.Cmd { return nil }

func (m *Model) resize(w, h int) {
	m.width, m.height = w, h
	m.help.Width = w - 4
	m.search.Width = max(w-10, 10)
	m.form.SetWidth(min(w-8, 72))
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case form.SubmittedMsg:
		if _, err := m.app.Add(msg.Title, msg.Description); err != nil {
			m.logger.Warn().Err(err).Msg("create task")
			return m, nil
		}
		m.mode = modeList
		m.cursor = 0
		return m, nil

	case form.CancelledMsg:
		m.mode = modeList
		return m, nil
	}

	switch m.mode {
	case modeSearch:
		return m.updateSearch(msg)
	case modeForm:
		var cmd tea.Cmd
		m.form, cmd = m.form.Update(msg)
		return m, cmd
	case modeConfirm:
		return m.updateConfirm(msg)
	}
	return m.updateList(msg)
}

func (m Model) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(km, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(km, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(km, m.keys.Down):
		if m.cursor < len(m.app.View().Tasks)-1 {
			m.cursor++
		}

	case key.Matches(km, m.keys.Toggle):
		if id, ok := m.selectedID(); ok {
			if _, err := m.app.Toggle(id); err != nil {
				m.logger.Error().Err(err).Str("id", id).Msg("toggle task")
			}
		}
	case key.Matches(km, m.keys.Delete):
		id, ok := m.selectedID()
		if !ok {
			break
		}
		if m.opts.ConfirmDelete {
			return m.openConfirm(id)
		}
		m.deleteTask(id)

	case key.Matches(km, m.keys.Search):
		m.mode = modeSearch
		return m, m.search.Focus()
	case key.Matches(km, m.keys.Filter):
		m.setFilter(m.app.Filter().Next())
	case key.Matches(km, m.keys.FilterAll):
		m.setFilter(view.FilterAll)
	case key.Matches(km, m.keys.FilterPending):
		m.setFilter(view.FilterPending)
	case key.Matches(km, m.keys.FilterCompleted):
		m.setFilter(view.FilterCompleted)

	case key.Matches(km, m.keys.PrevPage):
		m.app.PrevPage()
		m.cursor = 0
	case key.Matches(km, m.keys.NextPage):
		m.app.NextPage()
		m.cursor = 0
	case key.Matches(km, m.keys.FirstPage):
		m.app.FirstPage()
		m.cursor = 0
	case key.Matches(km, m.keys.LastPage):
		m.app.LastPage()
		m.cursor = 0

	case key.Matches(km, m.keys.New):
		m.mode = modeForm
		var cmd tea.Cmd
		m.form, cmd = m.form.Focus()
		return m, cmd

	case key.Matches(km, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}

	m.clampCursor()
	return m, nil
}

func (m Model) updateSearch(msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch km.Type {
		case tea.KeyEnter:
			m.search.Blur()
			m.mode = modeList
			return m, nil
		case tea.KeyEsc:
			m.search.Reset()
			m.search.Blur()
			m.setQuery("")
			m.mode = modeList
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if q := m.search.Value(); q != m.app.Query() {
		m.setQuery(q)
	}
	return m, cmd
}

func (m Model) openConfirm(id string) (tea.Model, tea.Cmd) {
	t, _ := m.app.Get(id)
	m.confirm = huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Key("confirm").
			Title("Delete task?").
			Description(t.Title).
			Affirmative("Delete").
			Negative("Cancel"),
	)).WithShowHelp(false).WithWidth(min(m.width-8, 60))
	m.confirmID = id
	m.mode = modeConfirm
	return m, m.confirm.Init()
}

func (m Model) updateConfirm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok && km.Type == tea.KeyEsc {
		m.closeConfirm()
		return m, nil
	}

	fm, cmd := m.confirm.Update(msg)
	if f, ok := fm.(*huh.Form); ok {
		m.confirm = f
	}

	switch m.confirm.State {
	case huh.StateCompleted:
		if m.confirm.GetBool("confirm") {
			m.deleteTask(m.confirmID)
		}
		m.closeConfirm()
		return m, nil
	case huh.StateAborted:
		m.closeConfirm()
		return m, nil
	}
	return m, cmd
}

func (m *Model) closeConfirm() {
	m.confirm = nil
	m.confirmID = ""
	m.mode = modeList
}

func (m *Model) deleteTask(id string) {
	if err := m.app.Delete(id); err != nil && !errors.Is(err, app.ErrNotFound) {
		m.logger.Error().Err(err).Str("id", id).Msg("delete task")
	}
	m.clampCursor()
}

func (m *Model) setFilter(f view.Filter) {
	m.app.SetFilter(f)
	m.cursor = 0
}

func (m *Model) setQuery(q string) {
	m.app.SetQuery(q)
	m.cursor = 0
}

func (m *Model) clampCursor() {
	n := len(m.app.View().Tasks)
	m.cursor = max(0, min(m.cursor, n-1))
}

func (m Model) selectedID() (string, bool) {
	tasks := m.app.View().Tasks
	if m.cursor < 0 || m.cursor >= len(tasks) {
		return "", false
	}
	return tasks[m.cursor].ID, true
}
