// Package date provides the calendar month key used as the time axis of every
// series, and a chronological series type keyed by it.
package date

import (
	"encoding/json"
	"fmt"
	"iter"
	"time"
)

const readMonthFormat = "2006-1" // Permissive read format (allows single-digit month).

// MonthFormat is the format used to represent months as strings.
const MonthFormat = "2006-01" // write format

// Month represents a calendar year-month.
//
// The zero value is not a valid month, use IsZero to test for it.
type Month struct {
	y int
	m time.Month
}

// New returns a normalized Month for the given year and month.
// Out of range months are normalized, New(2024, 13) is 2025-01.
func New(year int, month time.Month) Month {
	t := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return Month{t.Year(), t.Month()}
}

// Of returns the month containing t.
func Of(t time.Time) Month { return New(t.Year(), t.Month()) }

// Year returns the calendar year.
func (m Month) Year() int { return m.y }

// Calendar returns the month of the year, in 1..12.
func (m Month) Calendar() time.Month { return m.m }

// IsZero reports whether m is the zero Month.
func (m Month) IsZero() bool { return m.y == 0 && m.m == 0 }

// index is the number of months since year 0.
func (m Month) index() int { return m.y*12 + int(m.m) - 1 }

// Add returns the month n months after m (n can be negative).
func (m Month) Add(n int) Month { return New(m.y, m.m+time.Month(n)) }

// Next returns the month following m.
func (m Month) Next() Month { return m.Add(1) }

// Sub returns the number of months from x to m.
func (m Month) Sub(x Month) int { return m.index() - x.index() }

// Before reports whether m is before x.
func (m Month) Before(x Month) bool { return m.index() < x.index() }

// After reports whether m is after x.
func (m Month) After(x Month) bool { return m.index() > x.index() }

// Equal reports whether m and x are the same month.
func (m Month) Equal(x Month) bool { return m == x }

// Compare returns -1, 0 or +1 like cmp.Compare.
func (m Month) Compare(x Month) int {
	switch {
	case m.Before(x):
		return -1
	case m.After(x):
		return 1
	}
	return 0
}

// String formats the month as "2006-01".
func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.y, int(m.m))
}

// Parse parses a Month from a string. It is lenient and accepts "2025-7" as well
// as full dates like "2025-07-31" (the day is ignored).
func Parse(str string) (Month, error) {
	if len(str) > len(MonthFormat) {
		if on, err := time.Parse("2006-01-02", str); err == nil {
			return Of(on), nil
		}
	}
	on, err := time.Parse(readMonthFormat, str)
	if err != nil {
		return Month{}, fmt.Errorf("invalid month %q want format %q: %w", str, MonthFormat, err)
	}
	return Of(on), nil
}

// MustParse is like Parse but panics on error.
func MustParse(str string) Month {
	m, err := Parse(str)
	if err != nil {
		panic(err.Error())
	}
	return m
}

// UnmarshalJSON implements the json specific way to unmarshall a month from a json string.
func (m *Month) UnmarshalJSON(bytes []byte) error {
	var str string
	if err := json.Unmarshal(bytes, &str); err != nil {
		return err
	}
	v, err := Parse(str)
	if err != nil {
		return err
	}
	*m = v
	return nil
}

func (m Month) MarshalJSON() ([]byte, error) {
	str := m.String()
	return json.Marshal(&str)
}

// UnmarshalCSV lets csv decoders read a Month column.
func (m *Month) UnmarshalCSV(str string) error {
	v, err := Parse(str)
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// MarshalCSV lets csv encoders write a Month column.
func (m Month) MarshalCSV() (string, error) { return m.String(), nil }

// check that a Month pointer is a valid json marshall/unmarshaller type.
var _ json.Marshaler = (*Month)(nil)
var _ json.Unmarshaler = (*Month)(nil)

// Horizon returns the n consecutive months starting after last.
func Horizon(last Month, n int) []Month {
	months := make([]Month, 0, max(n, 0))
	for i := 1; i <= n; i++ {
		months = append(months, last.Add(i))
	}
	return months
}

// iterate returns an iterator over all unique, sorted months from multiple sorted series.
func iterate(series ...[]Month) iter.Seq[Month] {
	return func(yield func(Month) bool) {
		indexes := make([]int, len(series))
		for {
			var m Month
			found := false
			for i, index := range indexes {
				if index < len(series[i]) {
					if on := series[i][index]; !found || on.Before(m) {
						m, found = on, true
					}
				}
			}
			if !found {
				// All series have been consumed, exit.
				return
			}
			// consume every head equal to the min
			for i, index := range indexes {
				if index < len(series[i]) && series[i][index] == m {
					indexes[i]++
				}
			}
			if !yield(m) {
				return
			}
		}
	}
}

// Iterate returns an iterator over all unique, sorted months from multiple History objects.
func Iterate[T any](histories ...*History[T]) iter.Seq[Month] {
	months := make([][]Month, 0, len(histories))
	for _, h := range histories {
		months = append(months, h.months)
	}
	return iterate(months...)
}
