package forecast

import (
	"math"

	"github.com/etnz/fiplan/date"
)

const expenseCategory = "Expense"

// Expense type labels reported in diagnostics.
const (
	FixedExpense      = "Fixed"
	VariableExpense   = "Variable"
	AdjustmentExpense = "Adjustment"
)

// Expense forecasts a spending series according to its variability.
type Expense struct {
	Threshold  float64 // coefficient of variation below which the expense is fixed, 0.3 when 0
	Adjustment bool    // forecast the median of the last 3 months whatever the variability
}

// CV is the coefficient of variation of values: population std / |mean|, 0 when the mean is 0.
// Values whose variance is below 1e-14 have a CV of 0.
func CV(values []float64) float64 {
	m := mean(values)
	if m == 0 {
		return 0
	}
	return stddev(values) / math.Abs(m)
}

// Forecast classifies the series as fixed (CV < threshold) or variable.
//
// Fixed expenses forecast the mean of the last 12 months. Variable expenses
// forecast the last value of the same calendar month scaled by the trend
// ratio, the last 3 months mean over the same 3 months a year before.
func (x Expense) Forecast(item string, history *date.History[float64], future []date.Month, diag *Diagnostics) []float64 {
	values := history.Slice()
	cv := CV(values)
	diag.Add(expenseCategory, item, "cv", cv, "ratio", "Coefficient of Variation (std/mean)")

	if x.Adjustment {
		diag.AddText(expenseCategory, item, "type", AdjustmentExpense, "type", "Expense type classification")
		return constant(median(tail(values, 3)), len(future))
	}

	threshold := x.Threshold
	if threshold == 0 {
		threshold = 0.3
	}
	if cv < threshold {
		diag.AddText(expenseCategory, item, "type", FixedExpense, "type", "Expense type classification")
		return constant(mean(tail(values, 12)), len(future))
	}

	recent := mean(tail(values, 3))
	trend := TrendRatio(values)
	diag.AddText(expenseCategory, item, "type", VariableExpense, "type", "Expense type classification")
	diag.Add(expenseCategory, item, "trend_ratio", trend, "ratio", "Trend ratio (Recent 3m / Last Year 3m)")

	res := make([]float64, len(future))
	for i, m := range future {
		same := history.Filter(func(on date.Month, _ float64) bool { return on.Calendar() == m.Calendar() })
		if same.Len() > 0 {
			_, v := same.Latest()
			res[i] = v * trend
			continue
		}
		res[i] = recent * trend
	}
	return res
}

// TrendRatio is the mean of the last 3 values over the mean of the 3 values 12 to 15 values back.
//
// With fewer than 15 values, or a zero reference, the reference falls back
// to the recent mean, or 1 when that is 0 too.
func TrendRatio(values []float64) float64 {
	recent := mean(tail(values, 3))
	reference := recent
	if n := len(values); n >= 15 {
		reference = mean(values[n-15 : n-12])
	}
	if reference == 0 {
		reference = recent
	}
	if reference == 0 {
		reference = 1
	}
	return recent / reference
}
