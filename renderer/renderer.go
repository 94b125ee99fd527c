// Package renderer formats statements, projections and forecast parameters as markdown.
package renderer

import (
	"github.com/etnz/fiplan"
)

// Options holds configuration for rendering a report.
type Options struct {
	Currency string // reporting currency, JPY if empty
	Last     int    // only render the last n months of history, all if 0
}

func (o Options) currency() string {
	if o.Currency == "" {
		return string(fiplan.JPY)
	}
	return o.Currency
}

// money formats a float amount in the reporting currency.
func (o Options) money(v float64) string { return fiplan.M(v, o.currency()).String() }

// signed formats a float amount with its sign, "-" for 0.
func (o Options) signed(v float64) string { return fiplan.M(v, o.currency()).SignedString() }

// percent formats a ratio (0.05) as "5.00%".
func percent(r float64) string { return fiplan.Ratio(r).String() }

// signedPercent formats a ratio with its sign, "-" for 0.
func signedPercent(r float64) string { return fiplan.Ratio(r).SignedString() }

// tail returns the last n elements of s, or s if n is 0 or larger than s.
func tail[T any](s []T, n int) []T {
	if n <= 0 || n >= len(s) {
		return s
	}
	return s[len(s)-n:]
}
