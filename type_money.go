package fiplan

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Money is an amount in a currency, used to display statements and projections.
type Money struct {
	value decimal.Decimal // as major unit value
	cur   string
}

// M returns value as Money in currency.
func M[T float64 | int64 | decimal.Decimal](value T, currency string) Money {
	switch v := any(value).(type) {
	case decimal.Decimal:
		return Money{value: v, cur: currency}
	case float64:
		return Money{value: decimal.NewFromFloat(v), cur: currency}
	case int64:
		return Money{value: decimal.NewFromInt(v), cur: currency}
	}
	panic("unreachable")
}

// currency returns the money's currency
func (m Money) currency() money.Currency {
	// to get a never nil currency I need to call the Money constructor
	return *money.New(0, m.cur).Currency()
}

// String formats the amount rounded to the currency's minor unit, "¥1,234,567" for JPY.
func (m Money) String() string {
	cur := m.currency()
	dec := m.value.Shift(int32(cur.Fraction)).Round(0)
	return cur.Formatter().Format(dec.IntPart())
}

// SignedString returns the string representation of the money value with a sign.
// 0 is represented as a "-"
func (m Money) SignedString() string {
	if m.value.Round(int32(m.currency().Fraction)).IsZero() {
		return "-"
	}
	if m.value.IsPositive() {
		return "+" + m.String()
	}
	return m.String()
}

func (m Money) Currency() string { return m.cur }
func (m Money) IsZero() bool     { return m.value.IsZero() }
