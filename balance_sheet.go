package fiplan

import (
	"github.com/etnz/fiplan/date"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// BalanceSheet is the end of month position, in local currency units.
type BalanceSheet struct {
	Month                date.Month      `json:"month"`
	LiquidAssets         decimal.Decimal `json:"liquid_assets"`
	RiskAssets           decimal.Decimal `json:"risk_assets"`
	PensionAssets        decimal.Decimal `json:"pension_assets"`
	TotalFinancialAssets decimal.Decimal `json:"total_financial_assets"`
	InvestmentGainLoss   decimal.Decimal `json:"investment_gain_loss"`
}

// gainLoss is the part of the change in total assets not explained by savings.
func gainLoss(total, prevTotal, netSavings decimal.Decimal) decimal.Decimal {
	return total.Sub(prevTotal).Sub(netSavings)
}

// convert returns the balance of an asset row in local currency.
func convert(a Asset, acc Account, market *Market) decimal.Decimal {
	rate := market.rate(acc.Currency)
	if rate == 1 {
		return a.Balance
	}
	return a.Balance.Mul(decimal.NewFromFloat(rate))
}

// BalanceSheet classifies every asset row into the liquid, risk or pension bucket.
//
// Months are the months with asset rows, in increasing order. Balances in USD
// and EUR are converted with the rate of the same month, or kept as is when
// the market row is missing. Buckets are truncated to whole currency units and
// the total is always their sum. The investment gain or loss of the first
// month is 0, other months use the cash flow net savings of the same month (0 if absent).
func (e *Engine) BalanceSheet(assets []Asset, markets []Market, cashflows []CashFlowStatement) []BalanceSheet {
	var byMonth date.History[[]Asset]
	for _, a := range assets {
		byMonth.Update(a.Month, func(rows []Asset) []Asset { return append(rows, a) })
	}
	marketByMonth := indexMarkets(markets)
	savings := make(map[date.Month]decimal.Decimal, len(cashflows))
	for _, cf := range cashflows {
		savings[cf.Month] = cf.NetSavings
	}

	var sheets []BalanceSheet
	var prevTotal decimal.Decimal
	for month, rows := range byMonth.Values() {
		market := marketByMonth[month]
		var buckets [3]decimal.Decimal
		for _, a := range rows {
			acc, ok := e.master.Account(a.Account)
			if !ok {
				e.logger.Warn("asset row skipped: unknown account",
					zap.Stringer("month", month),
					zap.String("account", a.Account),
					zap.String("class", a.Class),
				)
				continue
			}
			b := acc.Bucket()
			buckets[b] = buckets[b].Add(convert(a, acc, market))
		}

		bs := BalanceSheet{
			Month:         month,
			LiquidAssets:  buckets[Liquid].Truncate(0),
			RiskAssets:    buckets[Risk].Truncate(0),
			PensionAssets: buckets[PensionBucket].Truncate(0),
		}
		bs.TotalFinancialAssets = bs.LiquidAssets.Add(bs.RiskAssets).Add(bs.PensionAssets)
		if len(sheets) > 0 {
			bs.InvestmentGainLoss = gainLoss(bs.TotalFinancialAssets, prevTotal, savings[month])
		}
		sheets = append(sheets, bs)
		prevTotal = bs.TotalFinancialAssets
	}
	e.logger.Debug("balance sheet", zap.Int("months", len(sheets)))
	return sheets
}

// indexMarkets maps each month to its market row.
func indexMarkets(markets []Market) map[date.Month]*Market {
	index := make(map[date.Month]*Market, len(markets))
	for i := range markets {
		index[markets[i].Month] = &markets[i]
	}
	return index
}
