package fiplan

import "math"

// UnifiedMetrics recomputes every derived column over the rows of t, history and forecast alike.
//
// It returns a new table and leaves t untouched; running it again on its own
// output yields the same table. Ratios over trailing windows use the last 12
// or 48 rows, or fewer at the start of the table. geo is the monthly return
// assumed for the benchmark on rows without history metrics.
func UnifiedMetrics(t *Table, geo float64, opts Options) *Table {
	res := t.Clone()
	rows := res.Rows
	n := len(rows)

	// balance sheet
	for i := range rows {
		r := &rows[i]
		r.TotalFinancialAssets = r.LiquidAssets + r.RiskAssets + r.PensionAssets
		r.InvestmentGainLoss = 0
		if i > 0 && r.HasBalance && rows[i-1].HasBalance {
			r.InvestmentGainLoss = r.TotalFinancialAssets - rows[i-1].TotalFinancialAssets - r.NetSavings
		}
	}

	column := func(f func(Row) float64) []float64 {
		v := make([]float64, n)
		for i, r := range rows {
			v[i] = f(r)
		}
		return v
	}
	savings12 := rollingSum(column(func(r Row) float64 { return r.NetSavings }), 12)
	income12 := rollingSum(column(func(r Row) float64 { return r.AfterTaxIncome }), 12)
	gain12 := rollingSum(column(func(r Row) float64 { return r.InvestmentGainLoss }), 12)
	gain48 := rollingSum(column(func(r Row) float64 { return r.InvestmentGainLoss }), 48)
	expense12 := rollingSum(column(func(r Row) float64 { return r.Expenditure }), 12)
	expense48 := rollingSum(column(func(r Row) float64 { return r.Expenditure }), 48)

	// log(1 + monthly return), the first row has no previous risk assets.
	logReturns := make([]float64, n)
	for i := 1; i < n; i++ {
		var raw float64
		if prev := rows[i-1].RiskAssets; prev > 0 {
			raw = rows[i].InvestmentGainLoss / prev
		}
		logReturns[i] = math.Log1p(max(raw, minReturn))
	}
	logMean12 := rollingMean(logReturns, 12)

	for i := range rows {
		r := &rows[i]
		r.SavingsRate = ratio(savings12[i], income12[i])
		r.RiskAssetRatio = ratio(r.RiskAssets, r.TotalFinancialAssets)
		r.MonthlyReturn = math.Expm1(logMean12[i])
		if !r.HasMetrics {
			r.BenchmarkReturn = geo
		}
		r.MonthlyAlpha = r.MonthlyReturn - r.BenchmarkReturn
		if math.Abs(r.MonthlyAlpha) <= opts.AlphaNoiseFloor {
			r.MonthlyAlpha = 0
		}
		r.FIRatio12m = ratio(gain12[i], expense12[i])
		r.FIRatio48m = ratio(gain48[i], expense48[i])
		r.FIRatioNext12m = ratio(r.RiskAssets*opts.AnnualReturn, expense12[i])
	}
	return res
}

// minReturn is the lowest monthly return accepted in log space, a total loss would be -Inf.
const minReturn = -0.9999

// rollingSum returns, for each index, the sum of the window of n values ending there.
// Windows are shorter at the start of the series.
func rollingSum(values []float64, n int) []float64 {
	res := make([]float64, len(values))
	for i := range values {
		var sum float64
		for _, v := range values[max(i+1-n, 0) : i+1] {
			sum += v
		}
		res[i] = sum
	}
	return res
}

// rollingMean is like rollingSum divided by the window length.
func rollingMean(values []float64, n int) []float64 {
	res := rollingSum(values, n)
	for i := range res {
		res[i] /= float64(min(i+1, n))
	}
	return res
}
