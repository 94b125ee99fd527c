package date

import "iter"

// Range represents a range of months, boundaries included.
type Range struct{ From, To Month }

// Trailing returns the n months window ending on 'on' (included).
func Trailing(on Month, n int) Range {
	return Range{From: on.Add(1 - n), To: on}
}

// Months iterates over every month of the range in order.
func (r Range) Months() iter.Seq[Month] {
	return func(yield func(Month) bool) {
		for m := r.From; !m.After(r.To); m = m.Next() {
			if !yield(m) {
				return
			}
		}
	}
}
