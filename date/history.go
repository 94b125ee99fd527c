package date

import (
	"iter"
	"slices"
)

// History stores a chronological series of values, each associated with a specific month.
// It ensures that months are unique and the series is always sorted.
type History[T any] struct {
	months []Month
	values []T
}

// Latest returns the latest month and value in the history.
// If the history is empty, it returns zero value.
func (h *History[T]) Latest() (on Month, value T) {
	last := len(h.months) - 1
	if last < 0 {
		return Month{}, *new(T) // return zero value of T
	}
	return h.months[last], h.values[last]
}

// Len returns the number of items in the history.
func (h *History[T]) Len() int { return len(h.months) }

// search returns the position of 'on' and whether it is already present.
func (h *History[T]) search(on Month) (int, bool) {
	return slices.BinarySearchFunc(h.months, on, Month.Compare)
}

// Append adds a point to the history.
//
// Existing value at that month is overwritten.
func (h *History[T]) Append(on Month, q T) *History[T] {
	i, found := h.search(on)
	if found {
		// give higher priority to the last data
		h.values[i] = q
		return h
	}
	h.months = slices.Insert(h.months, i, on)
	h.values = slices.Insert(h.values, i, q)
	return h
}

// Update applies f to the value stored at 'on' (zero value if absent) and stores the result.
func (h *History[T]) Update(on Month, f func(T) T) *History[T] {
	i, found := h.search(on)
	if found {
		h.values[i] = f(h.values[i])
		return h
	}
	h.months = slices.Insert(h.months, i, on)
	h.values = slices.Insert(h.values, i, f(*new(T)))
	return h
}

// Values returns an iterator over all month/value pairs in the history, in chronological order.
func (h *History[T]) Values() iter.Seq2[Month, T] {
	return func(yield func(Month, T) bool) {
		for i, on := range h.months {
			if !yield(on, h.values[i]) {
				return
			}
		}
	}
}

// Months returns a copy of the months in chronological order.
func (h *History[T]) Months() []Month { return slices.Clone(h.months) }

// Slice returns a copy of the values in chronological order.
func (h *History[T]) Slice() []T { return slices.Clone(h.values) }

// Tail returns a new history holding the last n points (all of them if n >= Len).
func (h *History[T]) Tail(n int) *History[T] {
	start := max(len(h.months)-n, 0)
	return &History[T]{
		months: slices.Clone(h.months[start:]),
		values: slices.Clone(h.values[start:]),
	}
}

// Filter returns a new history with the points for which keep returns true.
func (h *History[T]) Filter(keep func(Month, T) bool) *History[T] {
	res := new(History[T])
	for i, on := range h.months {
		if keep(on, h.values[i]) {
			res.months = append(res.months, on)
			res.values = append(res.values, h.values[i])
		}
	}
	return res
}

// Get returns the value at 'on' and true or zero value and false.
func (h *History[T]) Get(on Month) (T, bool) {
	if i, found := h.search(on); found {
		return h.values[i], true
	}
	var value T
	return value, false
}

