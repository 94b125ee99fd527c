package fiplan

import (
	"math"
	"testing"

	"github.com/etnz/fiplan/date"
	"github.com/shopspring/decimal"
	"go.uber.org/zap/zaptest"
)

// d is a helper for test to create a decimal from a float const.
func d(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

// mon is a helper for test to parse a month const.
func mon(s string) date.Month { return date.MustParse(s) }

// near reports whether a and b are equal up to a relative 1e-9.
func near(a, b float64) bool {
	return math.Abs(a-b) <= 1e-9*math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
}

// testMaster is a small household: a bank, two brokers (one in USD), a pension and a EUR fintech.
func testMaster() *Master {
	return NewMaster(
		[]Account{
			{ID: "bank", Name: "Yucho Bank", Type: Bank, Currency: JPY},
			{ID: "sbi_sec", Name: "SBI Securities", Type: Securities, Currency: JPY, Risk: true},
			{ID: "rakuten", Name: "Rakuten Securities", Type: Securities, Currency: JPY, Risk: true},
			{ID: "us_broker", Name: "US Broker", Type: Securities, Currency: USD, Risk: true},
			{ID: "kosei_nenkin", Name: "Employees' Pension", Type: Pension, Currency: JPY, Risk: true},
			{ID: "wise", Name: "Wise", Type: Fintech, Currency: EUR},
		},
		[]AssetClass{
			{ID: "cash", Name: "Cash"},
			{ID: "fund", Name: "Mutual funds"},
			{ID: "stock_us", Name: "US stocks"},
			{ID: "pension", Name: "Pension"},
		},
		[]PaymentMethod{
			{ID: "card", Name: "Credit card", SettlementAccount: "bank"},
			{ID: "adjustment", Name: "Adjustment"},
		},
	)
}

// testEngine returns an engine over testMaster with the default options.
func testEngine(t *testing.T) *Engine {
	t.Helper()
	return NewEngine(testMaster(), DefaultOptions(), zaptest.NewLogger(t))
}
