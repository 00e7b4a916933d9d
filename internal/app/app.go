// Package app is the root state container of the task list. It owns the
// collection together with the search query, status filter and current page,
// and every user action goes through it.
package app

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/idilsaglam/tasks/internal/model"
	"github.com/idilsaglam/tasks/internal/pagination"
	"github.com/idilsaglam/tasks/internal/store/memstore"
	"github.com/idilsaglam/tasks/internal/view"
)

var (
	ErrInvalidTask = errors.New("invalid task")
	ErrNotFound    = memstore.ErrNotFound
)

// App is not safe for concurrent use. The TUI drives it from its update loop.
type App struct {
	store  *memstore.Store
	logger zerolog.Logger

	query  string
	filter view.Filter
	page   int
}

// New wraps store. Pass zerolog.Nop() when logs are not wanted.
func New(store *memstore.Store, logger zerolog.Logger) *App {
	return &App{
		store:  store,
		logger: logger,
		filter: view.FilterAll,
		page:   1,
	}
}

func (a *App) Query() string       { return a.query }
func (a *App) Filter() view.Filter { return a.filter }
func (a *App) Page() int           { return a.page }
func (a *App) Tasks() []model.Task { return a.store.All() }

func (a *App) Get(id string) (model.Task, bool) {
	return a.store.Get(id)
}

// Counts returns completed and total task counts for the whole collection.
func (a *App) Counts() (completed, total int) {
	for _, t := range a.store.All() {
		if t.Done() {
			completed++
		}
		total++
	}
	return completed, total
}

// View computes the page currently on display.
func (a *App) View() view.Result {
	return view.Compute(a.store.All(), a.params())
}

// Pager returns the page buttons for the current view. A view with no
// matches still shows a single page.
func (a *App) Pager() []pagination.Item {
	return pagination.Window(a.page, a.totalPages())
}

// HasPrev and HasNext report whether the pager's boundary buttons are enabled.
func (a *App) HasPrev() bool { return pagination.HasPrev(a.page) }
func (a *App) HasNext() bool { return pagination.HasNext(a.page, a.totalPages()) }

// SetQuery changes the search text and goes back to the first page.
func (a *App) SetQuery(q string) {
	a.query = q
	a.page = 1
	a.logger.Debug().Str("query", q).Msg("query changed")
}

// SetFilter changes the status filter and goes back to the first page.
func (a *App) SetFilter(f view.Filter) {
	a.filter = f
	a.page = 1
	a.logger.Debug().Str("filter", string(f)).Msg("filter changed")
}

// SetPage moves to page p, clamped to the valid range.
func (a *App) SetPage(p int) {
	a.page = max(1, min(p, a.totalPages()))
	a.logger.Debug().Int("page", a.page).Msg("page changed")
}

func (a *App) NextPage() {
	if a.HasNext() {
		a.SetPage(a.page + 1)
	}
}

func (a *App) PrevPage() {
	if a.HasPrev() {
		a.SetPage(a.page - 1)
	}
}

func (a *App) FirstPage() { a.SetPage(1) }
func (a *App) LastPage()  { a.SetPage(a.totalPages()) }

// Add creates a pending task at the top of the list and returns to the first
// page. Blank title or description leaves everything unchanged and returns
// ErrInvalidTask.
func (a *App) Add(title, description string) (model.Task, error) {
	if err := model.ValidateInput(title, description); err != nil {
		return model.Task{}, fmt.Errorf("%w: %w", ErrInvalidTask, err)
	}
	t := a.store.Create(strings.TrimSpace(title), strings.TrimSpace(description))
	a.page = 1
	a.logger.Debug().Str("id", t.ID).Msg("task created")
	return t, nil
}

// Toggle flips the status of task id.
func (a *App) Toggle(id string) (model.Task, error) {
	t, err := a.store.Toggle(id)
	if err != nil {
		return model.Task{}, err
	}
	a.correctPage()
	a.logger.Debug().Str("id", id).Str("status", t.Status.String()).Msg("task toggled")
	return t, nil
}

// Delete removes task id. When that empties the current page the view moves
// back to the new last page, never below the first.
func (a *App) Delete(id string) error {
	if _, err := a.store.Delete(id); err != nil {
		return err
	}
	a.correctPage()
	a.logger.Debug().Str("id", id).Int("page", a.page).Msg("task deleted")
	return nil
}

func (a *App) correctPage() {
	if pages := view.TotalPages(len(view.Match(a.store.All(), a.query, a.filter))); a.page > pages {
		a.page = max(1, pages)
	}
}

func (a *App) totalPages() int {
	return max(1, a.View().TotalPages)
}

func (a *App) params() view.Params {
	return view.Params{Query: a.query, Filter: a.filter, Page: a.page}
}
