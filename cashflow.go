package fiplan

import (
	"github.com/etnz/fiplan/date"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CashFlowStatement is the monthly income statement.
type CashFlowStatement struct {
	Month          date.Month      `json:"month"`
	AfterTaxIncome decimal.Decimal `json:"after_tax_income"`
	Expenditure    decimal.Decimal `json:"expenditure"`
	NetSavings     decimal.Decimal `json:"net_savings"`
}

// CashFlow sums incomes and expenses per month.
//
// Only months with at least one income or expense row are returned, in
// increasing order. A missing month means "no data", not zero.
func (e *Engine) CashFlow(incomes []Income, expenses []Expense) []CashFlowStatement {
	var income, expense date.History[decimal.Decimal]
	for _, inc := range incomes {
		income.Update(inc.Month, inc.Amount.Add)
	}
	for _, exp := range expenses {
		expense.Update(exp.Month, exp.Amount.Add)
	}

	var statements []CashFlowStatement
	for month := range date.Iterate(&income, &expense) {
		in, _ := income.Get(month)
		out, _ := expense.Get(month)
		statements = append(statements, CashFlowStatement{
			Month:          month,
			AfterTaxIncome: in,
			Expenditure:    out,
			NetSavings:     in.Sub(out),
		})
	}
	e.logger.Debug("cash flow", zap.Int("months", len(statements)))
	return statements
}
