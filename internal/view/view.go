// Package view computes the derived view of the task list: the search and
// status filter applied to the collection, then sliced to one page.
package view

import (
	"errors"
	"fmt"
	"strings"

	"github.com/idilsaglam/tasks/internal/model"
)

// PageSize is the number of tasks shown on one page.
const PageSize = 8

// Filter restricts the view to tasks of one status.
type Filter string

const (
	FilterAll       Filter = "all"
	FilterPending   Filter = "pending"
	FilterCompleted Filter = "completed"
)

// Filters lists the filters in display order.
var Filters = []Filter{FilterAll, FilterPending, FilterCompleted}

var ErrUnknownFilter = errors.New("unknown status filter")

// ParseFilter accepts all, pending or completed in any case.
func ParseFilter(s string) (Filter, error) {
	switch f := Filter(strings.ToLower(strings.TrimSpace(s))); f {
	case FilterAll, FilterPending, FilterCompleted:
		return f, nil
	case "":
		return FilterAll, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFilter, s)
}

// Next cycles all -> pending -> completed -> all.
func (f Filter) Next() Filter {
	for i, v := range Filters {
		if v == f {
			return Filters[(i+1)%len(Filters)]
		}
	}
	return FilterAll
}

// Allows reports whether a task with status s passes the filter.
func (f Filter) Allows(s model.Status) bool {
	switch f {
	case FilterPending:
		return s == model.StatusPending
	case FilterCompleted:
		return s == model.StatusCompleted
	default:
		return true
	}
}

// Params are the inputs of the derived view besides the collection.
type Params struct {
	Query  string
	Filter Filter
	Page   int
}

// Result is one computed page of the view.
type Result struct {
	Tasks      []model.Task // tasks on the requested page
	Matched    int          // tasks matching query and filter, across all pages
	TotalPages int          // zero when nothing matches
	Page       int
}

// Empty reports whether nothing matched.
func (r Result) Empty() bool { return r.Matched == 0 }

// Matches reports whether the query is contained, ignoring case, in the
// title or the description. An empty query matches everything.
func Matches(t model.Task, query string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(t.Title), q) ||
		strings.Contains(strings.ToLower(t.Description), q)
}

// Match returns the tasks passing both the query and the filter, in order.
func Match(tasks []model.Task, query string, f Filter) []model.Task {
	out := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		if f.Allows(t.Status) && Matches(t, query) {
			out = append(out, t)
		}
	}
	return out
}

// TotalPages is ceil(n / PageSize).
func TotalPages(n int) int {
	return (n + PageSize - 1) / PageSize
}

// Compute applies the params to tasks. A page past the end yields no tasks;
// callers keep the page in range.
func Compute(tasks []model.Task, p Params) Result {
	matched := Match(tasks, p.Query, p.Filter)
	page := p.Page
	if page < 1 {
		page = 1
	}

	start := (page - 1) * PageSize
	end := min(start+PageSize, len(matched))
	var slice []model.Task
	if start < len(matched) {
		slice = matched[start:end]
	}

	return Result{
		Tasks:      slice,
		Matched:    len(matched),
		TotalPages: TotalPages(len(matched)),
		Page:       page,
	}
}
