package date

import (
	"slices"
	"testing"
)

func TestAppend(t *testing.T) {
	h := new(History[string])
	m1, v1 := New(2025, 07), "25 Jul"
	m2, v2 := New(2024, 07), "24 Jul"

	// appending two values in reverse order keeps the history sorted.
	if h.Len() != 0 {
		t.Errorf("History.Len() = %v want 0", h.Len())
	}
	h.Append(m1, v1)
	if h.Len() != 1 {
		t.Errorf("Append(m1, v1).Len() = %v want 1", h.Len())
	}
	h.Append(m2, v2)
	if h.Len() != 2 {
		t.Errorf("Append(m2, v2).Len() = %v want 2", h.Len())
	}
	if h.months[1] != m1 || h.months[0] != m2 {
		t.Errorf("history months = %v want [%v %v]", h.months, m2, m1)
	}
	if h.values[1] != v1 || h.values[0] != v2 {
		t.Errorf("history values = %v want [%v %v]", h.values, v2, v1)
	}

	// overwrite
	h.Append(m1, "again")
	if got, _ := h.Get(m1); got != "again" || h.Len() != 2 {
		t.Errorf("Append(existing) = %q (len %d) want \"again\" (len 2)", got, h.Len())
	}
}

func TestUpdate(t *testing.T) {
	h := new(History[float64])
	add := func(x float64) func(float64) float64 { return func(v float64) float64 { return v + x } }
	h.Update(New(2025, 1), add(10)).Update(New(2025, 1), add(5)).Update(New(2024, 12), add(1))

	if got, _ := h.Get(New(2025, 1)); got != 15 {
		t.Errorf("Get(2025-01) = %v want 15", got)
	}
	if on, v := h.Latest(); on != New(2025, 1) || v != 15 {
		t.Errorf("Latest() = %v, %v want 2025-01, 15", on, v)
	}
}

func TestTailAndFilter(t *testing.T) {
	h := new(History[float64])
	for i := 1; i <= 5; i++ {
		h.Append(New(2025, 0).Add(i), float64(i))
	}
	if got := h.Tail(3).Slice(); !slices.Equal(got, []float64{3, 4, 5}) {
		t.Errorf("Tail(3) = %v want [3 4 5]", got)
	}
	if got := h.Tail(10).Len(); got != 5 {
		t.Errorf("Tail(10).Len() = %v want 5", got)
	}
	even := h.Filter(func(_ Month, v float64) bool { return int(v)%2 == 0 })
	if got := even.Slice(); !slices.Equal(got, []float64{2, 4}) {
		t.Errorf("Filter(even) = %v want [2 4]", got)
	}
}

