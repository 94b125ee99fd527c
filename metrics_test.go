package fiplan

import (
	"testing"

	"github.com/etnz/fiplan/date"
)

func TestMetrics(t *testing.T) {
	e := testEngine(t)
	cashflows := []CashFlowStatement{
		{Month: mon("2024-01"), AfterTaxIncome: d(500000), Expenditure: d(400000), NetSavings: d(100000)},
		{Month: mon("2024-02"), AfterTaxIncome: d(500000), Expenditure: d(300000), NetSavings: d(200000)},
	}
	sheets := []BalanceSheet{
		{Month: mon("2024-01"), RiskAssets: d(2000000), TotalFinancialAssets: d(3000000)},
		{Month: mon("2024-02"), RiskAssets: d(2100000), TotalFinancialAssets: d(3300000), InvestmentGainLoss: d(100000)},
	}
	markets := []Market{
		{Month: mon("2024-01"), USDJPY: 100, Benchmark: 5000},
		{Month: mon("2024-02"), USDJPY: 100, Benchmark: 5100},
	}

	got := e.Metrics(cashflows, sheets, markets)
	want := []FinancialMetrics{
		{
			Month:          mon("2024-01"),
			SavingsRate:    0.2,
			RiskAssetRatio: 2.0 / 3,
			FIRatio12m:     0,
			FIRatio48m:     0,
			FIRatioNext12m: 0.25, // 2,000,000 x 5% / 400,000
		},
		{
			Month:           mon("2024-02"),
			SavingsRate:     0.4,
			RiskAssetRatio:  2.1 / 3.3,
			MonthlyReturn:   0.05,
			BenchmarkReturn: 0.02,
			MonthlyAlpha:    0.03,
			FIRatio12m:      1.0 / 7,
			FIRatio48m:      1.0 / 7,
			FIRatioNext12m:  0.15,
		},
	}
	if len(got) != len(want) {
		t.Fatalf("len(Metrics()) = %d, want %d", len(got), len(want))
	}
	for i := range want {
		checkMetrics(t, got[i], want[i])
	}
}

func checkMetrics(t *testing.T, got, want FinancialMetrics) {
	t.Helper()
	fields := []struct {
		name      string
		got, want float64
	}{
		{"SavingsRate", got.SavingsRate, want.SavingsRate},
		{"RiskAssetRatio", got.RiskAssetRatio, want.RiskAssetRatio},
		{"MonthlyReturn", got.MonthlyReturn, want.MonthlyReturn},
		{"MonthlyAlpha", got.MonthlyAlpha, want.MonthlyAlpha},
		{"BenchmarkReturn", got.BenchmarkReturn, want.BenchmarkReturn},
		{"FIRatio12m", got.FIRatio12m, want.FIRatio12m},
		{"FIRatio48m", got.FIRatio48m, want.FIRatio48m},
		{"FIRatioNext12m", got.FIRatioNext12m, want.FIRatioNext12m},
	}
	if got.Month != want.Month {
		t.Errorf("Month = %v, want %v", got.Month, want.Month)
	}
	for _, f := range fields {
		if !near(f.got, f.want) {
			t.Errorf("%v: %s = %v, want %v", want.Month, f.name, f.got, f.want)
		}
	}
}

func TestMetricsZeroDenominators(t *testing.T) {
	e := testEngine(t)
	var cashflows []CashFlowStatement
	var sheets []BalanceSheet
	for i := 0; i < 14; i++ {
		m := mon("2024-01").Add(i)
		cashflows = append(cashflows, CashFlowStatement{Month: m})
		sheets = append(sheets, BalanceSheet{Month: m, InvestmentGainLoss: d(1000)})
	}
	for _, fm := range e.Metrics(cashflows, sheets, nil) {
		if fm.FIRatio12m != 0 || fm.FIRatio48m != 0 || fm.FIRatioNext12m != 0 {
			t.Errorf("%v: FI ratios = %v %v %v, want 0", fm.Month, fm.FIRatio12m, fm.FIRatio48m, fm.FIRatioNext12m)
		}
		if fm.SavingsRate != 0 || fm.RiskAssetRatio != 0 || fm.MonthlyReturn != 0 {
			t.Errorf("%v: ratios = %v %v %v, want 0", fm.Month, fm.SavingsRate, fm.RiskAssetRatio, fm.MonthlyReturn)
		}
	}
}

func TestMetricsCarry(t *testing.T) {
	e := testEngine(t)
	months := []date.Month{mon("2024-01"), mon("2024-02"), mon("2024-03")}
	var cashflows []CashFlowStatement
	var sheets []BalanceSheet
	for _, m := range months {
		cashflows = append(cashflows, CashFlowStatement{Month: m, AfterTaxIncome: d(1), Expenditure: d(1)})
		sheets = append(sheets, BalanceSheet{Month: m, RiskAssets: d(100), TotalFinancialAssets: d(100)})
	}
	// February has no market row: March compares to January.
	markets := []Market{
		{Month: mon("2024-01"), USDJPY: 100, Benchmark: 100},
		{Month: mon("2024-03"), USDJPY: 110, Benchmark: 100},
	}

	got := e.Metrics(cashflows, sheets, markets)
	if got[1].BenchmarkReturn != 0 {
		t.Errorf("February BenchmarkReturn = %v, want 0", got[1].BenchmarkReturn)
	}
	if !near(got[2].BenchmarkReturn, 0.1) {
		t.Errorf("March BenchmarkReturn = %v, want 0.1", got[2].BenchmarkReturn)
	}
}

func TestMetricsTrailingWindow(t *testing.T) {
	e := testEngine(t)
	// 2023-01 is 13 months before 2024-02: outside the 12 months window.
	cashflows := []CashFlowStatement{
		{Month: mon("2023-01"), Expenditure: d(1000)},
		{Month: mon("2024-01"), Expenditure: d(100)},
		{Month: mon("2024-02"), Expenditure: d(100)},
	}
	sheets := []BalanceSheet{
		{Month: mon("2023-01"), InvestmentGainLoss: d(0)},
		{Month: mon("2024-01"), InvestmentGainLoss: d(50)},
		{Month: mon("2024-02"), InvestmentGainLoss: d(50)},
	}
	got := e.Metrics(cashflows, sheets, nil)
	if fm := got[2]; !near(fm.FIRatio12m, 0.5) {
		t.Errorf("FIRatio12m = %v, want 0.5", fm.FIRatio12m)
	}
	if fm := got[2]; !near(fm.FIRatio48m, 100.0/1200) {
		t.Errorf("FIRatio48m = %v, want %v", fm.FIRatio48m, 100.0/1200)
	}
}
