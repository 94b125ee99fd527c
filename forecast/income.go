package forecast

import (
	"math"
	"slices"
	"time"

	"github.com/etnz/fiplan/date"
)

const incomeCategory = "Income"

// Salary forecasts a recurring paycheck with bonuses on some calendar months.
type Salary struct {
	BonusMonths []int // calendar months paying a bonus, 6 and 12 when empty
}

func (s Salary) isBonus(m time.Month) bool {
	bonus := s.BonusMonths
	if len(bonus) == 0 {
		bonus = []int{6, 12}
	}
	return slices.Contains(bonus, int(m))
}

// Forecast returns 0 everywhere for a dormant account (nothing earned over the last 6 months).
//
// Otherwise regular months are the median of the non zero regular months of
// the last 12, and bonus months the average of the last two non zero values
// of the same calendar month (4 regular months when there is none). Both grow
// yearly by the ratio of this year's regular average to last year's.
func (s Salary) Forecast(item string, history *date.History[float64], future []date.Month, diag *Diagnostics) []float64 {
	values := history.Slice()
	recent := tail(values, 6)
	if sum(recent) == 0 {
		diag.Add(incomeCategory, item, "active", 0, "boolean", "Account is active (recent income > 0)")
		return constant(0, len(future))
	}

	regular := history.Tail(12).Filter(func(m date.Month, _ float64) bool { return !s.isBonus(m.Calendar()) }).Slice()
	base := median(positive(regular))
	if len(positive(regular)) == 0 {
		base = median(positive(recent))
	}

	growth := s.annualGrowth(history)

	bonuses := make(map[time.Month]float64)
	bonusOf := func(m time.Month) float64 {
		if b, ok := bonuses[m]; ok {
			return b
		}
		same := history.Filter(func(on date.Month, _ float64) bool { return on.Calendar() == m }).Slice()
		b := mean(positive(tail(same, 2)))
		if b == 0 {
			b = base * 4
		}
		bonuses[m] = b
		return b
	}

	res := make([]float64, len(future))
	var lastBonus float64
	for i, m := range future {
		factor := math.Pow(1+growth, float64(m.Year()-future[0].Year()+1))
		if s.isBonus(m.Calendar()) {
			lastBonus = bonusOf(m.Calendar())
			res[i] = lastBonus * factor
			continue
		}
		res[i] = base * factor
	}

	diag.Add(incomeCategory, item, "active", 1, "boolean", "Account is active (recent income > 0)")
	diag.Add(incomeCategory, item, "annual_growth", growth, "rate", "Annual growth rate based on year-over-year regular income")
	diag.AddAmount(incomeCategory, item, "regular_base", base, "amount", "Base monthly income (median of recent regular months)")
	diag.AddAmount(incomeCategory, item, "bonus_avg", lastBonus, "amount", "Average bonus amount")
	return res
}

// annualGrowth compares the regular months average of the last calendar year of history to the year before.
func (s Salary) annualGrowth(history *date.History[float64]) float64 {
	last, _ := history.Latest()
	average := func(year int) (float64, bool) {
		v := history.Filter(func(m date.Month, _ float64) bool {
			return m.Year() == year && !s.isBonus(m.Calendar())
		}).Slice()
		return mean(v), len(v) > 0
	}
	current, hasCurrent := average(last.Year())
	previous, hasPrevious := average(last.Year() - 1)
	if !hasCurrent || !hasPrevious || previous <= 0 {
		return 0
	}
	return current/previous - 1
}

// Decaying forecasts a balance that keeps shrinking by its average monthly decrease.
type Decaying struct {
	Default float64 // decrease rate used when history never decreased, 0.5 when 0
}

// Forecast chains next = max(0, prev × (1 - rate)) from the last historical value.
func (d Decaying) Forecast(item string, history *date.History[float64], future []date.Month, diag *Diagnostics) []float64 {
	values := history.Slice()
	var decreases []float64
	for i := 1; i < len(values); i++ {
		if values[i-1] <= 0 {
			continue
		}
		if rate := (values[i-1] - values[i]) / values[i-1]; rate > 0 {
			decreases = append(decreases, rate)
		}
	}
	rate := mean(decreases)
	if len(decreases) == 0 {
		rate = d.Default
		if rate == 0 {
			rate = 0.5
		}
	}

	res := make([]float64, len(future))
	_, prev := history.Latest()
	for i := range res {
		prev = max(0, prev*(1-rate))
		res[i] = prev
	}
	diag.Add(incomeCategory, item, "decrease_rate", rate, "rate", "Average monthly decrease rate")
	return res
}

// Fixed forecasts the last historical value forever.
type Fixed struct{}

func (Fixed) Forecast(item string, history *date.History[float64], future []date.Month, diag *Diagnostics) []float64 {
	_, last := history.Latest()
	diag.AddText(incomeCategory, item, "method", "last_value", "method", "Last historical value carried forward")
	return constant(last, len(future))
}

// Other forecasts the mean of the last 3 months.
type Other struct{}

func (Other) Forecast(item string, history *date.History[float64], future []date.Month, diag *Diagnostics) []float64 {
	avg := mean(tail(history.Slice(), 3))
	diag.AddText(incomeCategory, item, "method", "mean_3m", "method", "Mean of the last 3 months")
	return constant(avg, len(future))
}

func sum(values []float64) float64 {
	var s float64
	for _, v := range values {
		s += v
	}
	return s
}
