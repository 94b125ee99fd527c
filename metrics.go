package fiplan

import (
	"github.com/etnz/fiplan/date"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// FinancialMetrics are the monthly ratios derived from the statements.
type FinancialMetrics struct {
	Month           date.Month `json:"month"`
	SavingsRate     float64    `json:"savings_rate"`
	RiskAssetRatio  float64    `json:"risk_asset_ratio"`
	MonthlyReturn   float64    `json:"monthly_return"`
	MonthlyAlpha    float64    `json:"monthly_alpha"`
	BenchmarkReturn float64    `json:"benchmark_return"`
	FIRatio12m      float64    `json:"fi_ratio_12m"`
	FIRatio48m      float64    `json:"fi_ratio_48m"`
	FIRatioNext12m  float64    `json:"fi_ratio_next_12m"`
}

// ratio returns a/b, or 0 when b is 0.
func ratio(a, b float64) float64 {
	if b == 0 {
		return 0
	}
	return a / b
}

// Metrics derives the ratios for every month having both a cash flow and a balance sheet.
//
// The previous balance sheet and market snapshots only move forward on months
// where they existed, so a gap in one series does not reset the reference of
// the other. Trailing windows walk back by calendar month, missing months count as 0.
func (e *Engine) Metrics(cashflows []CashFlowStatement, sheets []BalanceSheet, markets []Market) []FinancialMetrics {
	var cfs date.History[CashFlowStatement]
	for _, cf := range cashflows {
		cfs.Append(cf.Month, cf)
	}
	var bss date.History[BalanceSheet]
	for _, bs := range sheets {
		bss.Append(bs.Month, bs)
	}
	var mks date.History[Market]
	for _, m := range markets {
		mks.Append(m.Month, m)
	}

	// trailing sums the gain and the expenditure over the n months ending on 'on'.
	trailing := func(on date.Month, n int) (gain, expense float64) {
		var g, x decimal.Decimal
		for m := range date.Trailing(on, n).Months() {
			if bs, ok := bss.Get(m); ok {
				g = g.Add(bs.InvestmentGainLoss)
			}
			if cf, ok := cfs.Get(m); ok {
				x = x.Add(cf.Expenditure)
			}
		}
		return g.InexactFloat64(), x.InexactFloat64()
	}

	var metrics []FinancialMetrics
	var prevBS *BalanceSheet
	var prevMarket *Market
	for month, bs := range bss.Values() {
		cf, ok := cfs.Get(month)
		if !ok {
			continue
		}
		market, hasMarket := mks.Get(month)

		fm := FinancialMetrics{
			Month:          month,
			SavingsRate:    ratio(cf.NetSavings.InexactFloat64(), cf.AfterTaxIncome.InexactFloat64()),
			RiskAssetRatio: ratio(bs.RiskAssets.InexactFloat64(), bs.TotalFinancialAssets.InexactFloat64()),
		}
		if prevBS != nil && prevBS.RiskAssets.IsPositive() {
			fm.MonthlyReturn = bs.InvestmentGainLoss.InexactFloat64() / prevBS.RiskAssets.InexactFloat64()
		}
		if hasMarket && prevMarket != nil {
			if prev := prevMarket.benchmarkLocal(); prev > 0 {
				fm.BenchmarkReturn = market.benchmarkLocal()/prev - 1
				fm.MonthlyAlpha = fm.MonthlyReturn - fm.BenchmarkReturn
			}
		}

		gain12, expense12 := trailing(month, 12)
		gain48, expense48 := trailing(month, 48)
		fm.FIRatio12m = ratio(gain12, expense12)
		fm.FIRatio48m = ratio(gain48, expense48)
		fm.FIRatioNext12m = ratio(bs.RiskAssets.InexactFloat64()*e.opts.AnnualReturn, expense12)
		metrics = append(metrics, fm)

		prevBS = &bs
		if hasMarket {
			prevMarket = &market
		}
	}
	e.logger.Debug("metrics", zap.Int("months", len(metrics)))
	return metrics
}
