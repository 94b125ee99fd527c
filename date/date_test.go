package date

import (
	"encoding/json"
	"slices"
	"testing"
	"time"
)

func TestNewNormalizes(t *testing.T) {
	testCases := []struct {
		name string
		in   Month
		want string
	}{
		{"regular", New(2025, time.July), "2025-07"},
		{"overflow", New(2024, 13), "2025-01"},
		{"underflow", New(2025, 0), "2024-12"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.in.String(); got != tc.want {
				t.Errorf("String() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestParse(t *testing.T) {
	testCases := []struct {
		in      string
		want    Month
		wantErr bool
	}{
		{"2025-07", New(2025, time.July), false},
		{"2025-7", New(2025, time.July), false},
		{"2025-07-31", New(2025, time.July), false},
		{"July 2025", Month{}, true},
		{"", Month{}, true},
	}
	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := Parse(tc.in)
			if (err != nil) != tc.wantErr {
				t.Fatalf("Parse(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
			}
			if got != tc.want {
				t.Errorf("Parse(%q) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestArithmetic(t *testing.T) {
	m := New(2024, time.November)
	if got, want := m.Add(3), New(2025, time.February); got != want {
		t.Errorf("Add(3) = %v, want %v", got, want)
	}
	if got, want := m.Add(-11), New(2023, time.December); got != want {
		t.Errorf("Add(-11) = %v, want %v", got, want)
	}
	if got := New(2026, time.January).Sub(m); got != 14 {
		t.Errorf("Sub() = %d, want 14", got)
	}
	if !m.Before(m.Next()) || !m.Next().After(m) {
		t.Errorf("Before/After are inconsistent around %v", m)
	}
}

func TestLexicographicOrder(t *testing.T) {
	// zero padded months sort the same as strings and as months.
	months := []Month{New(2025, 10), New(2025, 2), New(2024, 12)}
	strs := []string{}
	for _, m := range months {
		strs = append(strs, m.String())
	}
	slices.SortFunc(months, Month.Compare)
	slices.Sort(strs)
	for i := range months {
		if months[i].String() != strs[i] {
			t.Errorf("sorted[%d] = %v, want %v", i, months[i], strs[i])
		}
	}
}

func TestHorizon(t *testing.T) {
	got := Horizon(New(2025, time.November), 3)
	want := []Month{New(2025, 12), New(2026, 1), New(2026, 2)}
	if !slices.Equal(got, want) {
		t.Errorf("Horizon() = %v, want %v", got, want)
	}
	if got := Horizon(New(2025, 1), 360); len(got) != 360 || got[359] != New(2055, 1) {
		t.Errorf("Horizon(360) last = %v, want 2055-01", got[len(got)-1])
	}
}

func TestJSON(t *testing.T) {
	m := New(2025, time.March)
	b, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(b) != `"2025-03"` {
		t.Errorf("Marshal() = %s, want \"2025-03\"", b)
	}
	var got Month
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if got != m {
		t.Errorf("Unmarshal() = %v, want %v", got, m)
	}
}

func TestIterate(t *testing.T) {
	a := new(History[float64])
	a.Append(New(2025, 1), 1).Append(New(2025, 3), 3)
	b := new(History[float64])
	b.Append(New(2025, 2), 2).Append(New(2025, 3), 3).Append(New(2025, 5), 5)

	var got []Month
	for m := range Iterate(a, b) {
		got = append(got, m)
	}
	want := []Month{New(2025, 1), New(2025, 2), New(2025, 3), New(2025, 5)}
	if !slices.Equal(got, want) {
		t.Errorf("Iterate() = %v, want %v", got, want)
	}
}

func TestRange(t *testing.T) {
	r := Trailing(New(2025, time.March), 12)
	if r.From != New(2024, time.April) {
		t.Errorf("Trailing().From = %v, want 2024-04", r.From)
	}
	var got []Month
	for m := range r.Months() {
		got = append(got, m)
	}
	if len(got) != 12 || got[0] != New(2024, time.April) || got[11] != New(2025, time.March) {
		t.Errorf("Months() = %v, want 2024-04 to 2025-03", got)
	}
	empty := Range{From: New(2025, 2), To: New(2025, 1)}
	for m := range empty.Months() {
		t.Errorf("Months() of an empty range yielded %v", m)
	}
}
