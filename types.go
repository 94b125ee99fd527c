package fiplan

import (
	"fmt"
	"strings"

	"github.com/etnz/fiplan/date"
	"github.com/shopspring/decimal"
)

// Income is an after-tax amount received on an account during a month.
// Several rows can exist for the same month and account, they are summed.
type Income struct {
	Month   date.Month
	Account string
	Amount  decimal.Decimal
}

// Expense is an amount spent with a payment method during a month.
// Amounts can be negative for adjustments.
type Expense struct {
	Month  date.Month
	Method string
	Amount decimal.Decimal
}

// Asset is the balance, in the account's own currency, held on an account for an asset class at the end of a month.
type Asset struct {
	Month   date.Month
	Account string
	Class   string
	Balance decimal.Decimal
}

// Market holds the monthly exchange rates and the benchmark index level.
type Market struct {
	Month     date.Month
	USDJPY    float64
	EURJPY    float64
	Benchmark float64 // index level, quoted in USD
}

// rate returns the conversion rate to local currency for c.
func (m *Market) rate(c Currency) float64 {
	if m == nil {
		return 1
	}
	switch c {
	case USD:
		return m.USDJPY
	case EUR:
		return m.EURJPY
	}
	return 1
}

// benchmarkLocal is the benchmark level converted to local currency.
func (m *Market) benchmarkLocal() float64 { return m.Benchmark * m.USDJPY }

// AccountType classifies accounts.
type AccountType string

const (
	Bank       AccountType = "bank"
	Securities AccountType = "securities"
	Crypto     AccountType = "crypto"
	Pension    AccountType = "pension"
	Fintech    AccountType = "fintech"
)

// ParseAccountType parses an account type, case insensitive.
func ParseAccountType(s string) (AccountType, error) {
	t := AccountType(strings.ToLower(strings.TrimSpace(s)))
	switch t {
	case Bank, Securities, Crypto, Pension, Fintech:
		return t, nil
	}
	return "", fmt.Errorf("unknown account type %q", s)
}

// Currency of an account.
type Currency string

const (
	JPY   Currency = "JPY" // local currency
	USD   Currency = "USD"
	EUR   Currency = "EUR"
	Multi Currency = "multi"
)

// ParseCurrency parses an account currency.
func ParseCurrency(s string) (Currency, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "JPY":
		return JPY, nil
	case "USD":
		return USD, nil
	case "EUR":
		return EUR, nil
	case "MULTI":
		return Multi, nil
	}
	return "", fmt.Errorf("unknown currency %q", s)
}

// Account is a master record describing where money is held.
type Account struct {
	ID       string
	Name     string
	Type     AccountType
	Currency Currency
	Risk     bool
}

// Bucket of the balance sheet an account's balances belong to.
type Bucket int

const (
	Liquid Bucket = iota
	Risk
	PensionBucket
)

func (b Bucket) String() string {
	switch b {
	case Liquid:
		return "liquid"
	case Risk:
		return "risk"
	case PensionBucket:
		return "pension"
	default:
		panic(fmt.Sprintf("unknown bucket %d", b))
	}
}

// Bucket returns the balance sheet bucket: pension first, then risk, else liquid.
func (a Account) Bucket() Bucket {
	switch {
	case a.Type == Pension:
		return PensionBucket
	case a.Risk:
		return Risk
	default:
		return Liquid
	}
}

// AssetClass is a master record for a kind of holding (cash, fund, stock...).
type AssetClass struct {
	ID   string
	Name string
}

// PaymentMethod is a master record for a way of spending.
type PaymentMethod struct {
	ID                string
	Name              string
	SettlementAccount string // optional
}
