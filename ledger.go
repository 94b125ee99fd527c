package fiplan

import (
	"slices"

	"github.com/etnz/fiplan/date"
)

// Ledger holds the raw monthly rows of a run.
//
// In a Ledger rows are always in chronological order.
type Ledger struct {
	Incomes  []Income
	Expenses []Expense
	Assets   []Asset
	Markets  []Market
}

// NewLedger creates a ledger with the given rows, sorted by month.
func NewLedger(incomes []Income, expenses []Expense, assets []Asset, markets []Market) *Ledger {
	l := &Ledger{Incomes: incomes, Expenses: expenses, Assets: assets, Markets: markets}
	l.stableSort()
	return l
}

// stableSort sorts every series by month, keeping the input order within a month.
func (l *Ledger) stableSort() {
	slices.SortStableFunc(l.Incomes, func(a, b Income) int { return a.Month.Compare(b.Month) })
	slices.SortStableFunc(l.Expenses, func(a, b Expense) int { return a.Month.Compare(b.Month) })
	slices.SortStableFunc(l.Assets, func(a, b Asset) int { return a.Month.Compare(b.Month) })
	slices.SortStableFunc(l.Markets, func(a, b Market) int { return a.Month.Compare(b.Month) })
}

// Months returns the sorted union of the months with an income, expense or asset row.
// Market rows do not create months.
func (l *Ledger) Months() []date.Month {
	var months []date.Month
	for _, r := range l.Incomes {
		months = append(months, r.Month)
	}
	for _, r := range l.Expenses {
		months = append(months, r.Month)
	}
	for _, r := range l.Assets {
		months = append(months, r.Month)
	}
	slices.SortFunc(months, date.Month.Compare)
	return slices.Compact(months)
}

// IsEmpty reports whether the ledger has no income, expense or asset row.
func (l *Ledger) IsEmpty() bool {
	return len(l.Incomes) == 0 && len(l.Expenses) == 0 && len(l.Assets) == 0
}

// ids returns the sorted unique ids extracted from rows.
func ids[T any](rows []T, id func(T) string) []string {
	res := make([]string, 0, len(rows))
	for _, r := range rows {
		res = append(res, id(r))
	}
	slices.Sort(res)
	return slices.Compact(res)
}
