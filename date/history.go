package date

import (
	"slices"
	"sort"
)

// History is a series of values keyed by day, kept sorted with one value per
// day.
type History[T any] struct {
	points []point[T]
}

type point[T any] struct {
	on Date
	v  T
}

func (h *History[T]) Len() int { return len(h.points) }

// at returns the number of points dated on or before day.
func (h *History[T]) at(day Date) int {
	return sort.Search(len(h.points), func(i int) bool { return h.points[i].on.After(day) })
}

// Append sets the value of day, replacing the previous one if any.
func (h *History[T]) Append(on Date, v T) *History[T] {
	n := h.at(on)
	if n > 0 && h.points[n-1].on == on {
		h.points[n-1].v = v
		return h
	}
	h.points = slices.Insert(h.points, n, point[T]{on, v})
	return h
}

// Get returns the value of day exactly.
func (h *History[T]) Get(day Date) (v T, ok bool) {
	if n := h.at(day); n > 0 && h.points[n-1].on == day {
		return h.points[n-1].v, true
	}
	return v, false
}

// Latest returns the last day and its value, or zero values when empty.
func (h *History[T]) Latest() (day Date, v T) {
	if len(h.points) == 0 {
		return day, v
	}
	p := h.points[len(h.points)-1]
	return p.on, p.v
}
