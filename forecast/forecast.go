// Package forecast extrapolates one monthly series into future values.
//
// Each Forecaster implements a policy for a kind of series: salary with
// bonuses, decaying balances, flat pensions, other incomes and expenses.
// Forecasters are pure, they only read the history and may record the
// parameters they derived in a Diagnostics.
package forecast

import (
	"slices"
	"strings"

	"github.com/etnz/fiplan/date"
	"github.com/markcheno/go-talib"
)

// Forecaster projects a monthly history into values for the future months.
//
// The returned slice is aligned with future. Forecasters never fail, an
// empty or degenerate history yields documented fallback values.
type Forecaster interface {
	Forecast(item string, history *date.History[float64], future []date.Month, diag *Diagnostics) []float64
}

// Category is the kind of income series, it selects the forecaster.
type Category int

const (
	OtherCategory Category = iota
	SalaryCategory
	DecayingCategory
	FixedCategory
)

func (c Category) String() string {
	switch c {
	case SalaryCategory:
		return "salary"
	case DecayingCategory:
		return "decaying"
	case FixedCategory:
		return "fixed"
	default:
		return "other"
	}
}

// Keywords lists, per category, the substrings that identify an income account.
type Keywords struct {
	Salary   []string
	Decaying []string
	Fixed    []string
}

// Classify returns the category of an income account whose id or name contains a keyword.
//
// Decaying keywords are tested first, then fixed, then salary.
func (k Keywords) Classify(id, name string) Category {
	id, name = strings.ToLower(id), strings.ToLower(name)
	match := func(words []string) bool {
		return slices.ContainsFunc(words, func(w string) bool {
			w = strings.ToLower(w)
			return w != "" && (strings.Contains(id, w) || strings.Contains(name, w))
		})
	}
	switch {
	case match(k.Decaying):
		return DecayingCategory
	case match(k.Fixed):
		return FixedCategory
	case match(k.Salary):
		return SalaryCategory
	}
	return OtherCategory
}

// constant returns n copies of v.
func constant(v float64, n int) []float64 {
	res := make([]float64, n)
	for i := range res {
		res[i] = v
	}
	return res
}

// mean is the arithmetic mean, 0 for an empty slice.
func mean(values []float64) float64 {
	n := len(values)
	if n == 0 {
		return 0
	}
	return talib.Sma(values, n)[n-1]
}

// stddev is the population standard deviation, 0 for fewer than 2 values.
// The variance is computed in a single pass and variances below 1e-14 read as 0.
func stddev(values []float64) float64 {
	n := len(values)
	if n < 2 {
		return 0
	}
	return talib.StdDev(values, n, 1)[n-1]
}

// median is the middle value, the mean of the two middle values for an even count, 0 for an empty slice.
func median(values []float64) float64 {
	n := len(values)
	if n == 0 {
		return 0
	}
	sorted := slices.Clone(values)
	slices.Sort(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// positive returns the values strictly greater than 0.
func positive(values []float64) []float64 {
	var res []float64
	for _, v := range values {
		if v > 0 {
			res = append(res, v)
		}
	}
	return res
}

// tail returns the last n values (all of them if there are fewer).
func tail(values []float64, n int) []float64 { return values[max(len(values)-n, 0):] }
