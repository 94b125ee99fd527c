package fiplan

// Statements are the history statements of a ledger.
type Statements struct {
	CashFlows     []CashFlowStatement `json:"cashflow"`
	BalanceSheets []BalanceSheet      `json:"balance_sheet"`
	Metrics       []FinancialMetrics  `json:"metrics"`
}

// Statements runs the three statement calculators over the ledger, in dependency order.
func (e *Engine) Statements(l *Ledger) *Statements {
	cf := e.CashFlow(l.Incomes, l.Expenses)
	bs := e.BalanceSheet(l.Assets, l.Markets, cf)
	return &Statements{
		CashFlows:     cf,
		BalanceSheets: bs,
		Metrics:       e.Metrics(cf, bs, l.Markets),
	}
}
