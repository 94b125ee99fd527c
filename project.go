package fiplan

import (
	"fmt"
	"math"
	"strings"

	"github.com/etnz/fiplan/date"
	"github.com/etnz/fiplan/forecast"
	"go.uber.org/zap"
)

// Projection is the history extended by the forecast.
type Projection struct {
	History    *Table              `json:"-"`
	Combined   *Table              `json:"combined"`
	Parameters []forecast.Parameter `json:"parameters"`
	GeoReturn  float64             `json:"geo_return"`
	Start      date.Month          `json:"start"` // first forecast month
}

// Forecast returns the forecast rows of the combined table.
func (p *Projection) Forecast() []Row {
	for i, r := range p.Combined.Rows {
		if r.Forecast {
			return p.Combined.Rows[i:]
		}
	}
	return nil
}

// Project forecasts every income and expense item, rolls the balance sheet
// forward and recomputes the metrics over history and forecast together.
//
// The history table is not modified.
func (e *Engine) Project(history *Table) (*Projection, error) {
	last, ok := history.Last()
	if !ok {
		return nil, ErrNoHistory
	}
	if err := history.Check(); err != nil {
		return nil, fmt.Errorf("cannot project: %w", err)
	}
	future := date.Horizon(last.Month, e.opts.Horizon)
	if len(future) == 0 {
		return nil, fmt.Errorf("cannot project: invalid horizon %d", e.opts.Horizon)
	}
	diag := new(forecast.Diagnostics)

	geo := e.geoReturn(history)
	diag.Add("Asset", "Risk Assets", "geo_return", geo, "monthly_rate", "Geometric Mean Return used for compounding")

	fc := &Table{
		IncomeItems:  history.IncomeItems,
		ExpenseItems: history.ExpenseItems,
		AccountItems: history.AccountItems,
		ClassItems:   history.ClassItems,
	}
	for _, m := range future {
		row := fc.newRow(m)
		row.Forecast = true
		row.HasBalance = true
		fc.Rows = append(fc.Rows, row)
	}

	keywords := forecast.Keywords(e.opts.Categories)
	for _, id := range history.IncomeItems {
		f := e.incomeForecaster(keywords.Classify(id, e.master.AccountName(id)))
		values := f.Forecast(e.master.AccountName(id), history.Series(func(r Row) float64 { return r.Incomes[id] }), future, diag)
		for i, v := range values {
			fc.Rows[i].Incomes[id] = v
			fc.Rows[i].AfterTaxIncome += v
		}
	}
	for _, id := range history.ExpenseItems {
		f := forecast.Expense{Threshold: e.opts.ExpenseCVThreshold, Adjustment: e.isAdjustment(id)}
		values := f.Forecast(e.master.MethodName(id), history.Series(func(r Row) float64 { return r.Expenses[id] }), future, diag)
		for i, v := range values {
			fc.Rows[i].Expenses[id] = v
			fc.Rows[i].Expenditure += v
		}
	}

	flows := make([]Flow, len(fc.Rows))
	for i := range fc.Rows {
		r := &fc.Rows[i]
		r.NetSavings = r.AfterTaxIncome - r.Expenditure
		flows[i] = Flow{Month: r.Month, NetSavings: r.NetSavings, Pension: make(map[string]float64)}
		for _, id := range fc.IncomeItems {
			if acc, ok := e.master.Account(id); ok && acc.Bucket() == PensionBucket {
				flows[i].Pension[id] = r.Incomes[id]
			}
		}
	}

	states := e.RollForward(startState(history), flows, geo)
	fc.AccountItems = union(fc.AccountItems, sortedKeys(states, func(s State) map[string]float64 { return s.Accounts }))
	fc.ClassItems = union(fc.ClassItems, sortedKeys(states, func(s State) map[string]float64 { return s.Classes }))
	for i, s := range states {
		r := &fc.Rows[i]
		r.LiquidAssets, r.RiskAssets, r.PensionAssets = s.Liquid, s.Risk, s.Pension
		r.TotalFinancialAssets = s.Total()
		r.InvestmentGainLoss = s.Gain
		r.Accounts, r.Classes = s.Accounts, s.Classes
	}

	combined := UnifiedMetrics(history.Concat(fc), geo, e.opts)
	e.logger.Info("projection",
		zap.Stringer("start", future[0]),
		zap.Int("months", len(future)),
		zap.Float64("geo_return", geo),
		zap.Int("parameters", len(diag.Parameters)),
	)
	return &Projection{
		History:    history,
		Combined:   combined,
		Parameters: diag.Parameters,
		GeoReturn:  geo,
		Start:      future[0],
	}, nil
}

// geoReturn is the geometric mean of the monthly returns of the last 12 history rows with metrics.
// It falls back to the default monthly return when there is none or the mean is 0.
func (e *Engine) geoReturn(history *Table) float64 {
	var logSum float64
	var n int
	for i := len(history.Rows) - 1; i >= 0 && n < 12; i-- {
		r := history.Rows[i]
		if !r.HasMetrics {
			continue
		}
		logSum += math.Log1p(max(r.MonthlyReturn, minReturn))
		n++
	}
	if n == 0 {
		return e.opts.defaultMonthlyReturn()
	}
	geo := math.Expm1(logSum / float64(n))
	if geo == 0 {
		return e.opts.defaultMonthlyReturn()
	}
	return geo
}

func (e *Engine) incomeForecaster(c forecast.Category) forecast.Forecaster {
	switch c {
	case forecast.SalaryCategory:
		return forecast.Salary{BonusMonths: e.opts.BonusMonths}
	case forecast.DecayingCategory:
		return forecast.Decaying{Default: e.opts.DefaultDecay}
	case forecast.FixedCategory:
		return forecast.Fixed{}
	default:
		return forecast.Other{}
	}
}

// isAdjustment reports whether a payment method is the adjustment entry.
func (e *Engine) isAdjustment(id string) bool {
	key := strings.ToLower(e.opts.AdjustmentMethod)
	if key == "" {
		return false
	}
	return strings.ToLower(id) == key || strings.Contains(strings.ToLower(e.master.MethodName(id)), key)
}

// startState is the position of the last history row with a balance sheet.
func startState(history *Table) State {
	for i := len(history.Rows) - 1; i >= 0; i-- {
		r := history.Rows[i]
		if r.HasBalance {
			return State{
				Month:    r.Month,
				Liquid:   r.LiquidAssets,
				Risk:     r.RiskAssets,
				Pension:  r.PensionAssets,
				Classes:  r.Classes,
				Accounts: r.Accounts,
			}
		}
	}
	return State{}
}

func sortedKeys(states []State, m func(State) map[string]float64) []string {
	var keys []string
	for _, s := range states {
		for k := range m(s) {
			keys = append(keys, k)
		}
	}
	return union(keys)
}
