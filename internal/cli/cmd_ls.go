package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/urfave/cli/v3"

	"github.com/idilsaglam/tasks/internal/model"
	"github.com/idilsaglam/tasks/internal/tui"
	"github.com/idilsaglam/tasks/internal/ui"
	"github.com/idilsaglam/tasks/internal/view"
)

// LsCmd prints one page of the derived view.
type LsCmd struct {
	flags *Flags

	query  string
	status string
	page   int
	group  bool
}

func NewLsCmd(flags *Flags) *LsCmd {
	return &LsCmd{flags: flags}
}

// Register adds the ls command to the application.
func (cmd *LsCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "ls",
		Aliases:   []string{"list"},
		Usage:     "Print a page of tasks",
		UsageText: "tasks ls [--query <text>] [--status <all|pending|completed>] [--page <n>]",
		Description: `Prints the tasks matching the query and status filter, one page
(8 tasks) at a time, followed by the pager.

Examples:
  tasks --seed tasks.json ls
  tasks --seed tasks.json ls --status pending --page 2
  tasks --seed tasks.json ls -q report`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "query",
				Aliases:     []string{"q"},
				Usage:       "case-insensitive text to find in title or description",
				Destination: &cmd.query,
			},
			&cli.StringFlag{
				Name:        "status",
				Aliases:     []string{"s"},
				Usage:       "status filter (all, pending, completed)",
				Value:       string(view.FilterAll),
				Destination: &cmd.status,
			},
			&cli.IntFlag{
				Name:        "page",
				Aliases:     []string{"p"},
				Usage:       "page number, clamped to the available pages",
				Value:       1,
				Destination: &cmd.page,
			},
			&cli.BoolFlag{
				Name:        "group",
				Usage:       "group the page by pending/completed",
				Destination: &cmd.group,
			},
		},
		Action: cmd.run,
	})
	return app
}

func (cmd *LsCmd) run(ctx context.Context, c *cli.Command) error {
	filter, err := view.ParseFilter(cmd.status)
	if err != nil {
		return err
	}

	a := cmd.flags.App
	a.SetFilter(filter)
	a.SetQuery(cmd.query)
	a.SetPage(cmd.page)

	t := ui.Current()
	done, total := a.Counts()
	lines := []string{
		fmt.Sprintf("%s  %s %d  %s %d  %s %d",
			t.Title.Render("Tasks"),
			t.Success.Render("✔"), done,
			t.Pending.Render("•"), total-done,
			t.Accent.Render("Total"), total,
		),
		t.Muted.Render(ui.ProgressBar(done, total, 28)),
		"",
	}

	res := a.View()
	switch {
	case res.Empty():
		lines = append(lines, t.Muted.Render("No tasks found"))
	case cmd.group:
		lines = append(lines, groupLines(res.Tasks)...)
	default:
		lines = append(lines, renderTable(res.Tasks))
	}

	if !res.Empty() {
		lines = append(lines, "",
			t.Muted.Render(fmt.Sprintf("Showing %d of %d tasks", len(res.Tasks), res.Matched))+"   "+
				tui.Pager(a.Page(), max(res.TotalPages, 1)))
	}

	fmt.Fprintln(ui.Stdout, ui.Panel(strings.Join(lines, "\n")))
	if a.Page() != cmd.page {
		ui.Info(fmt.Sprintf("page %d is out of range, showing page %d", cmd.page, a.Page()))
	}
	return nil
}

func renderTable(tasks []model.Task) string {
	t := ui.Current()
	rows := make([][]string, 0, len(tasks))
	for _, task := range tasks {
		box := t.BoxUnchecked
		if task.Done() {
			box = t.BoxChecked
		}
		rows = append(rows, []string{task.ID, box + " " + task.Title, task.Description, task.Status.String()})
	}

	return table.New().
		Border(t.Border).
		BorderStyle(lipgloss.NewStyle().Foreground(t.BorderColor)).
		Headers("ID", "TITLE", "DESCRIPTION", "STATUS").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return t.Title.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		}).
		Render()
}

func groupLines(tasks []model.Task) []string {
	t := ui.Current()
	var pending, completed []string
	for _, task := range tasks {
		if task.Done() {
			completed = append(completed, fmt.Sprintf("  %s %s", t.Success.Render(t.BoxChecked), t.Done.Render(task.Title)))
		} else {
			pending = append(pending, fmt.Sprintf("  %s %s", t.Muted.Render(t.BoxUnchecked), task.Title))
		}
	}

	var lines []string
	if len(pending) > 0 {
		lines = append(lines, t.Pending.Render("Pending"))
		lines = append(lines, pending...)
	}
	if len(completed) > 0 {
		if len(lines) > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, t.Success.Render("Completed"))
		lines = append(lines, completed...)
	}
	return lines
}
