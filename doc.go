// Package fiplan derives monthly statements from a personal finance ledger
// and projects them 30 years ahead.
//
// The core functionalities include:
//   - Statements: monthly cash flow, balance sheet (liquid, risk and pension
//     buckets) and ratios like the savings rate or the FI ratios.
//   - Normalized table: one row per month with every income, expense, account
//     and asset class as a column, the common shape of history and forecast.
//   - Projection: every income and expense item is forecast by a policy of
//     package forecast, the balance sheet is rolled forward under a simple
//     investment policy, and all derived columns are recomputed over history
//     and forecast together so that both sides agree at the seam.
//   - Persistence: CSV decoding of the ledger and master tables, CSV encoding
//     of the reports.
//
// Computations are pure batch functions of an Engine, they never fail on
// numeric edge cases: divisions by zero yield 0 and short histories use
// documented fallbacks.
package fiplan
