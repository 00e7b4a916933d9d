package tui

import (
	"fmt"
	"reflect"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/tasks/internal/app"
	"github.com/idilsaglam/tasks/internal/form"
	"github.com/idilsaglam/tasks/internal/model"
	"github.com/idilsaglam/tasks/internal/store/memstore"
	"github.com/idilsaglam/tasks/internal/view"
)

func newTestApp(t *testing.T, n int) *app.App {
	t.Helper()
	tick := time.UnixMilli(1700000000000)
	store := memstore.New(memstore.WithClock(func() time.Time {
		tick = tick.Add(time.Millisecond)
		return tick
	}))
	a := app.New(store, zerolog.Nop())
	for i := range n {
		_, err := a.Add(fmt.Sprintf("Task %d", i), fmt.Sprintf("details %d", i))
		require.NoError(t, err)
	}
	return a
}

func newTestModel(t *testing.T, n int, opts Options) (Model, *app.App) {
	t.Helper()
	a := newTestApp(t, n)
	m := New(a, opts)
	m = send(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	return m, a
}

func send(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	out, ok := next.(Model)
	require.True(t, ok)
	return out
}

// sendAll delivers msg, then runs every returned command and feeds its
// messages back until none are left. Commands that block (ticks) are dropped.
func sendAll(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	queue := []tea.Msg{msg}
	for steps := 0; len(queue) > 0; steps++ {
		require.Less(t, steps, 100, "command chain did not settle")
		next, cmd := m.Update(queue[0])
		queue = queue[1:]
		out, ok := next.(Model)
		require.True(t, ok)
		m = out
		queue = append(queue, runCmd(cmd)...)
	}
	return m
}

func runCmd(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()

	var msg tea.Msg
	select {
	case msg = <-done:
	case <-time.After(50 * time.Millisecond):
		return nil
	}

	if msg == nil {
		return nil
	}
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, runCmd(c)...)
		}
		return out
	}
	// tea.Sequence yields an unexported []tea.Cmd.
	if v := reflect.ValueOf(msg); v.Kind() == reflect.Slice && v.Type().Elem() == reflect.TypeOf(tea.Cmd(nil)) {
		var out []tea.Msg
		for i := range v.Len() {
			out = append(out, runCmd(v.Index(i).Interface().(tea.Cmd))...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func typeText(t *testing.T, m Model, s string) Model {
	t.Helper()
	for _, r := range s {
		m = send(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func TestToggleSelectedRow(t *testing.T) {
	m, a := newTestModel(t, 3, Options{})

	m = send(t, m, runes("j"))
	m = send(t, m, tea.KeyMsg{Type: tea.KeySpace})

	tasks := a.Tasks()
	assert.Equal(t, model.StatusPending, tasks[0].Status)
	assert.Equal(t, model.StatusCompleted, tasks[1].Status)

	m = send(t, m, runes("x"))
	assert.Equal(t, model.StatusPending, a.Tasks()[1].Status)
	assert.Equal(t, 1, m.cursor)
}

func TestCursorStaysOnPage(t *testing.T) {
	m, _ := newTestModel(t, 3, Options{})

	for range 5 {
		m = send(t, m, runes("j"))
	}
	assert.Equal(t, 2, m.cursor)

	for range 5 {
		m = send(t, m, runes("k"))
	}
	assert.Equal(t, 0, m.cursor)
}

func TestDeleteOnlyRowOfLastPageMovesBack(t *testing.T) {
	m, a := newTestModel(t, 9, Options{})

	m = send(t, m, runes("l"))
	require.Equal(t, 2, a.Page())
	require.Len(t, a.View().Tasks, 1)

	m = send(t, m, runes("d"))
	assert.Equal(t, 1, a.Page())
	assert.Len(t, a.Tasks(), 8)
	assert.Equal(t, 0, m.cursor)
}

func TestDeleteLastRowClampsCursor(t *testing.T) {
	m, a := newTestModel(t, 3, Options{})

	m = send(t, m, runes("j"))
	m = send(t, m, runes("j"))
	m = send(t, m, runes("d"))

	assert.Len(t, a.Tasks(), 2)
	assert.Equal(t, 1, m.cursor)
}

func TestPageKeys(t *testing.T) {
	m, a := newTestModel(t, 30, Options{}) // 4 pages

	m = send(t, m, runes("h"))
	assert.Equal(t, 1, a.Page())

	m = send(t, m, runes("G"))
	assert.Equal(t, 4, a.Page())

	m = send(t, m, runes("l"))
	assert.Equal(t, 4, a.Page())

	m = send(t, m, runes("["))
	assert.Equal(t, 3, a.Page())

	_ = send(t, m, runes("g"))
	assert.Equal(t, 1, a.Page())
}

func TestFilterKeysResetPage(t *testing.T) {
	m, a := newTestModel(t, 30, Options{})

	m = send(t, m, runes("l"))
	require.Equal(t, 2, a.Page())

	m = send(t, m, runes("2"))
	assert.Equal(t, view.FilterPending, a.Filter())
	assert.Equal(t, 1, a.Page())

	m = send(t, m, runes("f"))
	assert.Equal(t, view.FilterCompleted, a.Filter())
	assert.True(t, a.View().Empty())

	_ = send(t, m, runes("1"))
	assert.Equal(t, view.FilterAll, a.Filter())
}

func TestSearch(t *testing.T) {
	m, a := newTestModel(t, 30, Options{})
	m = send(t, m, runes("l"))

	m = send(t, m, runes("/"))
	m = typeText(t, m, "TASK 2")

	assert.Equal(t, "TASK 2", a.Query())
	assert.Equal(t, 1, a.Page())
	// Task 2, Task 20..29
	assert.Equal(t, 11, a.View().Matched)

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, modeList, m.mode)
	assert.Equal(t, "TASK 2", a.Query())

	m = send(t, m, runes("/"))
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, modeList, m.mode)
	assert.Empty(t, a.Query())
}

func TestSearchKeysDoNotTriggerActions(t *testing.T) {
	m, a := newTestModel(t, 2, Options{})

	m = send(t, m, runes("/"))
	_ = typeText(t, m, "dq")

	assert.Len(t, a.Tasks(), 2)
	assert.Equal(t, "dq", a.Query())
}

func TestFormCreatesTask(t *testing.T) {
	m, a := newTestModel(t, 9, Options{})
	m = send(t, m, runes("l"))

	m = send(t, m, runes("n"))
	require.Equal(t, modeForm, m.mode)

	m = typeText(t, m, "Fresh task")
	m = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m = typeText(t, m, "with details")

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	m = next.(Model)
	require.NotNil(t, cmd)
	msg := cmd()
	require.IsType(t, form.SubmittedMsg{}, msg)

	m = send(t, m, msg)
	assert.Equal(t, modeList, m.mode)
	assert.Equal(t, 1, a.Page())
	require.Len(t, a.Tasks(), 10)
	assert.Equal(t, "Fresh task", a.Tasks()[0].Title)
	assert.Equal(t, model.StatusPending, a.Tasks()[0].Status)
}

func TestFormBlankSubmitIsNoOp(t *testing.T) {
	m, a := newTestModel(t, 2, Options{})

	m = send(t, m, runes("n"))
	m = typeText(t, m, "title only")

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	m = next.(Model)
	assert.Nil(t, cmd)
	assert.Equal(t, modeForm, m.mode)
	assert.Len(t, a.Tasks(), 2)
}

func TestFormCancel(t *testing.T) {
	m, a := newTestModel(t, 2, Options{})

	m = send(t, m, runes("n"))
	m = typeText(t, m, "draft")

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = next.(Model)
	require.NotNil(t, cmd)
	m = send(t, m, cmd())

	assert.Equal(t, modeList, m.mode)
	assert.Len(t, a.Tasks(), 2)

	m = send(t, m, runes("n"))
	title, desc := m.form.Values()
	assert.Empty(t, title)
	assert.Empty(t, desc)
}

func TestConfirmDelete(t *testing.T) {
	m, a := newTestModel(t, 2, Options{ConfirmDelete: true})

	m = send(t, m, runes("d"))
	assert.Equal(t, modeConfirm, m.mode)
	assert.Len(t, a.Tasks(), 2)
	assert.Contains(t, ansi.Strip(m.View()), "Delete task?")

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, modeList, m.mode)
	assert.Len(t, a.Tasks(), 2)
}

func TestConfirmDelete_Accept(t *testing.T) {
	tests := []struct {
		name string
		keys []tea.KeyMsg
	}{
		{"y", []tea.KeyMsg{runes("y")}},
		{"left then enter", []tea.KeyMsg{{Type: tea.KeyLeft}, {Type: tea.KeyEnter}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// 9 tasks: page 2 holds only "Task 0".
			m, a := newTestModel(t, 9, Options{ConfirmDelete: true})
			m = send(t, m, runes("l"))
			require.Equal(t, 2, a.Page())

			m = sendAll(t, m, runes("d"))
			require.Equal(t, modeConfirm, m.mode)
			for _, k := range tt.keys {
				m = sendAll(t, m, k)
			}

			assert.Equal(t, modeList, m.mode)
			assert.Nil(t, m.confirm)
			assert.Len(t, a.Tasks(), 8)
			for _, task := range a.Tasks() {
				assert.NotEqual(t, "Task 0", task.Title)
			}
			assert.Equal(t, 1, a.Page())
			assert.Equal(t, 0, m.cursor)
		})
	}
}

func TestConfirmDelete_EnterKeepsTask(t *testing.T) {
	m, a := newTestModel(t, 2, Options{ConfirmDelete: true})

	m = sendAll(t, m, runes("d"))
	require.Equal(t, modeConfirm, m.mode)
	m = sendAll(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, modeList, m.mode)
	assert.Len(t, a.Tasks(), 2)
}

func TestQuit(t *testing.T) {
	m, _ := newTestModel(t, 1, Options{})

	_, cmd := m.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestView(t *testing.T) {
	m, _ := newTestModel(t, 9, Options{})

	out := ansi.Strip(m.View())
	assert.Contains(t, out, "Tasks")
	assert.Contains(t, out, "Task 8")
	assert.Contains(t, out, "details 8")
	assert.NotContains(t, out, "Task 0")
	assert.Contains(t, out, "Showing 8 of 9 tasks")
	assert.Contains(t, out, "Pending")
	assert.Contains(t, out, "Completed")
}

func TestView_Empty(t *testing.T) {
	m, _ := newTestModel(t, 0, Options{})

	out := ansi.Strip(m.View())
	assert.Contains(t, out, "No tasks found")
	assert.NotContains(t, out, "Showing")
}

func TestPager(t *testing.T) {
	out := ansi.Strip(Pager(5, 10))
	assert.Contains(t, out, "‹ prev")
	assert.Contains(t, out, "next ›")
	assert.Contains(t, out, "1 ...")
	assert.Contains(t, out, "4")
	assert.Contains(t, out, "... 10")

	assert.Equal(t, ansi.Strip(Pager(1, 1)), "‹ prev  1  next ›")
}
