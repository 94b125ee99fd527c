package fiplan

import (
	"fmt"
	"maps"
	"slices"

	"github.com/etnz/fiplan/date"
)

// Row is one month of the normalized table: per item amounts followed by the statements.
//
// Amounts are floats in local currency units. Per item maps are dense, every
// item of the table has an entry (0 when there was no row).
type Row struct {
	Month    date.Month         `json:"month"`
	Forecast bool               `json:"forecast"`
	Incomes  map[string]float64 `json:"incomes"`  // by account id
	Expenses map[string]float64 `json:"expenses"` // by payment method id
	Accounts map[string]float64 `json:"accounts"` // balance by account id
	Classes  map[string]float64 `json:"classes"`  // balance by asset class id

	AfterTaxIncome float64 `json:"after_tax_income"`
	Expenditure    float64 `json:"expenditure"`
	NetSavings     float64 `json:"net_savings"`

	HasBalance           bool    `json:"-"`
	LiquidAssets         float64 `json:"liquid_assets"`
	RiskAssets           float64 `json:"risk_assets"`
	PensionAssets        float64 `json:"pension_assets"`
	TotalFinancialAssets float64 `json:"total_financial_assets"`
	InvestmentGainLoss   float64 `json:"investment_gain_loss"`

	HasMetrics      bool    `json:"-"`
	SavingsRate     float64 `json:"savings_rate"`
	RiskAssetRatio  float64 `json:"risk_asset_ratio"`
	MonthlyReturn   float64 `json:"monthly_return"`
	MonthlyAlpha    float64 `json:"monthly_alpha"`
	BenchmarkReturn float64 `json:"benchmark_return"`
	FIRatio12m      float64 `json:"fi_ratio_12m"`
	FIRatio48m      float64 `json:"fi_ratio_48m"`
	FIRatioNext12m  float64 `json:"fi_ratio_next_12m"`
}

// newRow returns an empty row with dense maps for the table items.
func (t *Table) newRow(month date.Month) Row {
	zeros := func(items []string) map[string]float64 {
		m := make(map[string]float64, len(items))
		for _, id := range items {
			m[id] = 0
		}
		return m
	}
	return Row{
		Month:    month,
		Incomes:  zeros(t.IncomeItems),
		Expenses: zeros(t.ExpenseItems),
		Accounts: zeros(t.AccountItems),
		Classes:  zeros(t.ClassItems),
	}
}

// clone returns a deep copy of r.
func (r Row) clone() Row {
	r.Incomes = maps.Clone(r.Incomes)
	r.Expenses = maps.Clone(r.Expenses)
	r.Accounts = maps.Clone(r.Accounts)
	r.Classes = maps.Clone(r.Classes)
	return r
}

// Table is a month indexed series of rows sharing the same items.
type Table struct {
	IncomeItems  []string `json:"income_items"`
	ExpenseItems []string `json:"expense_items"`
	AccountItems []string `json:"account_items"`
	ClassItems   []string `json:"class_items"`
	Rows         []Row    `json:"rows"`
}

// NewTable joins the ledger rows and the statements into one row per month.
//
// Months are the union of the income, expense and asset months. Items are
// the ids found in the ledger plus every id known by the master, so that
// columns do not depend on which months were recorded. Balances are converted
// to local currency like the balance sheet does.
func NewTable(l *Ledger, master *Master, st *Statements) *Table {
	t := &Table{
		IncomeItems:  union(ids(l.Incomes, func(r Income) string { return r.Account }), accountIDs(master)),
		ExpenseItems: union(ids(l.Expenses, func(r Expense) string { return r.Method }), master.Methods()),
		AccountItems: union(ids(l.Assets, func(r Asset) string { return r.Account }), accountIDs(master)),
		ClassItems:   union(ids(l.Assets, func(r Asset) string { return r.Class }), master.Classes()),
	}
	markets := indexMarkets(l.Markets)

	months := l.Months()
	index := make(map[date.Month]int, len(months))
	for i, m := range months {
		index[m] = i
		t.Rows = append(t.Rows, t.newRow(m))
	}

	for _, r := range l.Incomes {
		t.Rows[index[r.Month]].Incomes[r.Account] += r.Amount.InexactFloat64()
	}
	for _, r := range l.Expenses {
		t.Rows[index[r.Month]].Expenses[r.Method] += r.Amount.InexactFloat64()
	}
	for _, r := range l.Assets {
		balance := r.Balance
		if acc, ok := master.Account(r.Account); ok {
			balance = convert(r, acc, markets[r.Month])
		}
		row := &t.Rows[index[r.Month]]
		row.Accounts[r.Account] += balance.InexactFloat64()
		row.Classes[r.Class] += balance.InexactFloat64()
	}

	if st == nil {
		return t
	}
	for _, cf := range st.CashFlows {
		if i, ok := index[cf.Month]; ok {
			row := &t.Rows[i]
			row.AfterTaxIncome = cf.AfterTaxIncome.InexactFloat64()
			row.Expenditure = cf.Expenditure.InexactFloat64()
			row.NetSavings = cf.NetSavings.InexactFloat64()
		}
	}
	for _, bs := range st.BalanceSheets {
		if i, ok := index[bs.Month]; ok {
			row := &t.Rows[i]
			row.HasBalance = true
			row.LiquidAssets = bs.LiquidAssets.InexactFloat64()
			row.RiskAssets = bs.RiskAssets.InexactFloat64()
			row.PensionAssets = bs.PensionAssets.InexactFloat64()
			row.TotalFinancialAssets = bs.TotalFinancialAssets.InexactFloat64()
			row.InvestmentGainLoss = bs.InvestmentGainLoss.InexactFloat64()
		}
	}
	for _, fm := range st.Metrics {
		if i, ok := index[fm.Month]; ok {
			row := &t.Rows[i]
			row.HasMetrics = true
			row.SavingsRate = fm.SavingsRate
			row.RiskAssetRatio = fm.RiskAssetRatio
			row.MonthlyReturn = fm.MonthlyReturn
			row.MonthlyAlpha = fm.MonthlyAlpha
			row.BenchmarkReturn = fm.BenchmarkReturn
			row.FIRatio12m = fm.FIRatio12m
			row.FIRatio48m = fm.FIRatio48m
			row.FIRatioNext12m = fm.FIRatioNext12m
		}
	}
	return t
}

// Check returns ErrUnordered if the months are not strictly increasing.
func (t *Table) Check() error {
	for i := 1; i < len(t.Rows); i++ {
		if !t.Rows[i-1].Month.Before(t.Rows[i].Month) {
			return fmt.Errorf("%s after %s: %w", t.Rows[i].Month, t.Rows[i-1].Month, ErrUnordered)
		}
	}
	return nil
}

// Last returns the last row of the table.
func (t *Table) Last() (Row, bool) {
	if len(t.Rows) == 0 {
		return Row{}, false
	}
	return t.Rows[len(t.Rows)-1], true
}

// Series extracts one column of the table.
func (t *Table) Series(column func(Row) float64) *date.History[float64] {
	h := new(date.History[float64])
	for _, r := range t.Rows {
		h.Append(r.Month, column(r))
	}
	return h
}

// Concat returns a new table with the rows of t followed by the rows of u.
// Items of u missing from t are added as 0 to the rows of t, and conversely.
func (t *Table) Concat(u *Table) *Table {
	res := &Table{
		IncomeItems:  union(t.IncomeItems, u.IncomeItems),
		ExpenseItems: union(t.ExpenseItems, u.ExpenseItems),
		AccountItems: union(t.AccountItems, u.AccountItems),
		ClassItems:   union(t.ClassItems, u.ClassItems),
	}
	for _, rows := range [][]Row{t.Rows, u.Rows} {
		for _, r := range rows {
			n := res.newRow(r.Month)
			maps.Copy(n.Incomes, r.Incomes)
			maps.Copy(n.Expenses, r.Expenses)
			maps.Copy(n.Accounts, r.Accounts)
			maps.Copy(n.Classes, r.Classes)
			r.Incomes, r.Expenses, r.Accounts, r.Classes = n.Incomes, n.Expenses, n.Accounts, n.Classes
			res.Rows = append(res.Rows, r)
		}
	}
	return res
}

// Clone returns a deep copy of the table.
func (t *Table) Clone() *Table {
	res := &Table{
		IncomeItems:  slices.Clone(t.IncomeItems),
		ExpenseItems: slices.Clone(t.ExpenseItems),
		AccountItems: slices.Clone(t.AccountItems),
		ClassItems:   slices.Clone(t.ClassItems),
		Rows:         make([]Row, 0, len(t.Rows)),
	}
	for _, r := range t.Rows {
		res.Rows = append(res.Rows, r.clone())
	}
	return res
}

func accountIDs(m *Master) []string {
	accounts := m.Accounts()
	res := make([]string, 0, len(accounts))
	for _, a := range accounts {
		res = append(res, a.ID)
	}
	return res
}

// union merges sorted id lists into a sorted list without duplicates.
func union(lists ...[]string) []string {
	var res []string
	for _, l := range lists {
		res = append(res, l...)
	}
	slices.Sort(res)
	return slices.Compact(res)
}
