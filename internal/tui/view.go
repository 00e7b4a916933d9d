package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/idilsaglam/tasks/internal/model"
	"github.com/idilsaglam/tasks/internal/pagination"
	"github.com/idilsaglam/tasks/internal/ui"
	"github.com/idilsaglam/tasks/internal/view"
)

var filterLabels = map[view.Filter]string{
	view.FilterAll:       "All",
	view.FilterPending:   "Pending",
	view.FilterCompleted: "Completed",
}

func (m Model) View() string {
	switch m.mode {
	case modeForm:
		return ui.Panel(m.form.View())
	case modeConfirm:
		if m.confirm != nil {
			return ui.Panel(m.confirm.View())
		}
	}

	res := m.app.View()
	sections := []string{
		m.headerView(),
		m.searchView(),
		m.filterView(),
		"",
	}
	if res.Empty() {
		sections = append(sections, ui.Current().Muted.Render("No tasks found"))
	} else {
		sections = append(sections, m.tableView(res.Tasks))
		sections = append(sections, "", m.footerView(res))
	}
	sections = append(sections, "", m.help.View(m.keys))

	return ui.Panel(strings.Join(sections, "\n"))
}

func (m Model) headerView() string {
	t := ui.Current()
	done, total := m.app.Counts()
	return fmt.Sprintf("%s   %s %d  %s %d  %s",
		t.Title.Render("Tasks"),
		t.Success.Render("✔"), done,
		t.Pending.Render("•"), total-done,
		t.Muted.Render(ui.ProgressBar(done, total, 20)),
	)
}

func (m Model) searchView() string {
	if m.mode == modeSearch || m.app.Query() != "" {
		return m.search.View()
	}
	return ui.Current().Muted.Render("/ search tasks")
}

func (m Model) filterView() string {
	t := ui.Current()
	tabs := make([]string, 0, len(view.Filters))
	for _, f := range view.Filters {
		style := t.InactiveTab
		if f == m.app.Filter() {
			style = t.ActiveTab
		}
		tabs = append(tabs, style.Render(filterLabels[f]))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

// columns splits the inner width between title, description and status.
func (m Model) columns() (title, desc, status int) {
	inner := max(m.width-6, 40)
	status = 11
	title = (inner - status - 4) * 2 / 5
	desc = inner - status - 4 - title
	return title, desc, status
}

func cell(s string, w int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	return lipgloss.NewStyle().Width(w).Render(ansi.Truncate(s, w, "…"))
}

func (m Model) tableView(tasks []model.Task) string {
	t := ui.Current()
	tw, dw, sw := m.columns()

	header := "  " + t.Title.Render(cell("Title", tw)) + " " +
		t.Title.Render(cell("Description", dw)) + " " +
		t.Title.Render(cell("Status", sw))

	lines := []string{header}
	for i, task := range tasks {
		lines = append(lines, m.rowView(task, i == m.cursor, tw, dw, sw))
	}
	return strings.Join(lines, "\n")
}

func (m Model) rowView(task model.Task, selected bool, tw, dw, sw int) string {
	t := ui.Current()

	box := t.Muted.Render(t.BoxUnchecked)
	title := cell(task.Title, tw-len([]rune(t.BoxUnchecked))-1)
	status := t.Pending.Render(cell(task.Status.String(), sw))
	if task.Done() {
		box = t.Success.Render(t.BoxChecked)
		title = t.Done.Render(title)
		status = t.Success.Render(cell(task.Status.String(), sw))
	}

	prefix := "  "
	if selected {
		prefix = t.Selected.Render(">") + " "
	}
	return prefix + box + " " + title + " " + t.Muted.Render(cell(task.Description, dw)) + " " + status
}

func (m Model) footerView(res view.Result) string {
	t := ui.Current()
	showing := t.Muted.Render(fmt.Sprintf("Showing %d of %d tasks", len(res.Tasks), res.Matched))
	return showing + "   " + Pager(m.app.Page(), max(res.TotalPages, 1))
}

// Pager renders the page buttons with prev/next greyed out at the ends.
func Pager(current, total int) string {
	t := ui.Current()

	prev := t.Accent.Render("‹ prev")
	if !pagination.HasPrev(current) {
		prev = t.Muted.Render("‹ prev")
	}
	next := t.Accent.Render("next ›")
	if !pagination.HasNext(current, total) {
		next = t.Muted.Render("next ›")
	}

	parts := []string{prev}
	for _, it := range pagination.Window(current, total) {
		switch {
		case it.IsEllipsis():
			parts = append(parts, t.Muted.Render(it.String()))
		case it.Page == current:
			parts = append(parts, t.ActiveTab.Render(it.String()))
		default:
			parts = append(parts, it.String())
		}
	}
	parts = append(parts, next)
	return strings.Join(parts, " ")
}
