// Package pagination computes which page buttons a pager shows.
package pagination

import "strconv"

// maxButtons is the number of page buttons shown before an ellipsis kicks in.
const maxButtons = 5

// Item is one pager slot: a page number, or an ellipsis when Page is zero.
type Item struct {
	Page int
}

// Ellipsis is the non-selectable gap marker.
var Ellipsis = Item{}

func (i Item) IsEllipsis() bool { return i.Page == 0 }

func (i Item) String() string {
	if i.IsEllipsis() {
		return "..."
	}
	return strconv.Itoa(i.Page)
}

func pages(from, to int) []Item {
	out := make([]Item, 0, to-from+1)
	for p := from; p <= to; p++ {
		out = append(out, Item{Page: p})
	}
	return out
}

// Window returns the page buttons for the current page out of total pages.
//
//	total <= 5            1 2 3 4 5
//	near the start        1 2 3 4 5 ... N
//	near the end          1 ... N-4 N-3 N-2 N-1 N
//	in the middle         1 ... c-1 c c+1 ... N
func Window(current, total int) []Item {
	if total <= maxButtons {
		return pages(1, total)
	}

	if current <= 3 {
		return append(pages(1, maxButtons), Ellipsis, Item{Page: total})
	}

	if current >= total-2 {
		return append([]Item{{Page: 1}, Ellipsis}, pages(total-maxButtons+1, total)...)
	}

	return []Item{
		{Page: 1},
		Ellipsis,
		{Page: current - 1},
		{Page: current},
		{Page: current + 1},
		Ellipsis,
		{Page: total},
	}
}

// HasPrev reports whether the previous button is enabled.
func HasPrev(current int) bool { return current > 1 }

// HasNext reports whether the next button is enabled.
func HasNext(current, total int) bool { return current < total }
