package fiplan

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/etnz/fiplan/date"
	"github.com/etnz/fiplan/forecast"
	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"
)

// This file contains the CSV codecs of the ledger, the master tables and the reports.
//
// Every file has a header line naming its columns, the column order does not
// matter on read and unknown columns are ignored. To parse a file we use a
// dedicated local struct with csv tag annotations, then convert it to the
// domain type.

// decodeCSV reads every record of r. An empty file decodes as no record.
func decodeCSV[T any](r io.Reader) ([]T, error) {
	var records []T
	if err := gocsv.Unmarshal(r, &records); err != nil {
		if errors.Is(err, gocsv.ErrEmptyCSVFile) {
			return nil, nil
		}
		return nil, err
	}
	return records, nil
}

// DecodeIncomes reads income rows: month,account_id,amount.
func DecodeIncomes(r io.Reader) ([]Income, error) {
	type jincome struct {
		Month   date.Month      `csv:"month"`
		Account string          `csv:"account_id"`
		Amount  decimal.Decimal `csv:"amount"`
	}
	records, err := decodeCSV[jincome](r)
	if err != nil {
		return nil, err
	}
	res := make([]Income, 0, len(records))
	for _, j := range records {
		res = append(res, Income{Month: j.Month, Account: j.Account, Amount: j.Amount})
	}
	return res, nil
}

// DecodeExpenses reads expense rows: month,method_id,amount.
func DecodeExpenses(r io.Reader) ([]Expense, error) {
	type jexpense struct {
		Month  date.Month      `csv:"month"`
		Method string          `csv:"method_id"`
		Amount decimal.Decimal `csv:"amount"`
	}
	records, err := decodeCSV[jexpense](r)
	if err != nil {
		return nil, err
	}
	res := make([]Expense, 0, len(records))
	for _, j := range records {
		res = append(res, Expense{Month: j.Month, Method: j.Method, Amount: j.Amount})
	}
	return res, nil
}

// DecodeAssets reads asset rows: month,account_id,asset_class,balance.
func DecodeAssets(r io.Reader) ([]Asset, error) {
	type jasset struct {
		Month   date.Month      `csv:"month"`
		Account string          `csv:"account_id"`
		Class   string          `csv:"asset_class"`
		Balance decimal.Decimal `csv:"balance"`
	}
	records, err := decodeCSV[jasset](r)
	if err != nil {
		return nil, err
	}
	res := make([]Asset, 0, len(records))
	for _, j := range records {
		res = append(res, Asset{Month: j.Month, Account: j.Account, Class: j.Class, Balance: j.Balance})
	}
	return res, nil
}

// DecodeMarkets reads market rows: month,usd_jpy,eur_jpy,sp500.
func DecodeMarkets(r io.Reader) ([]Market, error) {
	type jmarket struct {
		Month  date.Month `csv:"month"`
		USDJPY float64    `csv:"usd_jpy"`
		EURJPY float64    `csv:"eur_jpy"`
		SP500  float64    `csv:"sp500"`
	}
	records, err := decodeCSV[jmarket](r)
	if err != nil {
		return nil, err
	}
	res := make([]Market, 0, len(records))
	for _, j := range records {
		res = append(res, Market{Month: j.Month, USDJPY: j.USDJPY, EURJPY: j.EURJPY, Benchmark: j.SP500})
	}
	return res, nil
}

// DecodeAccounts reads account_id,name,type,currency,risk.
func DecodeAccounts(r io.Reader) ([]Account, error) {
	type jaccount struct {
		ID       string `csv:"account_id"`
		Name     string `csv:"name"`
		Type     string `csv:"type"`
		Currency string `csv:"currency"`
		Risk     int    `csv:"risk"`
	}
	records, err := decodeCSV[jaccount](r)
	if err != nil {
		return nil, err
	}
	res := make([]Account, 0, len(records))
	for _, j := range records {
		typ, err := ParseAccountType(j.Type)
		if err != nil {
			return nil, fmt.Errorf("account %q: %w", j.ID, err)
		}
		cur := JPY
		if j.Currency != "" {
			if cur, err = ParseCurrency(j.Currency); err != nil {
				return nil, fmt.Errorf("account %q: %w", j.ID, err)
			}
		}
		res = append(res, Account{ID: j.ID, Name: j.Name, Type: typ, Currency: cur, Risk: j.Risk != 0})
	}
	return res, nil
}

// DecodeClasses reads class_id,name.
func DecodeClasses(r io.Reader) ([]AssetClass, error) {
	type jclass struct {
		ID   string `csv:"class_id"`
		Name string `csv:"name"`
	}
	records, err := decodeCSV[jclass](r)
	if err != nil {
		return nil, err
	}
	res := make([]AssetClass, 0, len(records))
	for _, j := range records {
		res = append(res, AssetClass{ID: j.ID, Name: j.Name})
	}
	return res, nil
}

// DecodeMethods reads method_id,name,settlement_account.
func DecodeMethods(r io.Reader) ([]PaymentMethod, error) {
	type jmethod struct {
		ID                string `csv:"method_id"`
		Name              string `csv:"name"`
		SettlementAccount string `csv:"settlement_account"`
	}
	records, err := decodeCSV[jmethod](r)
	if err != nil {
		return nil, err
	}
	res := make([]PaymentMethod, 0, len(records))
	for _, j := range records {
		res = append(res, PaymentMethod{ID: j.ID, Name: j.Name, SettlementAccount: j.SettlementAccount})
	}
	return res, nil
}

// EncodeCashFlows writes month,after_tax_income,expenditure,net_savings.
func EncodeCashFlows(w io.Writer, statements []CashFlowStatement) error {
	type jcashflow struct {
		Month          date.Month `csv:"month"`
		AfterTaxIncome string     `csv:"after_tax_income"`
		Expenditure    string     `csv:"expenditure"`
		NetSavings     string     `csv:"net_savings"`
	}
	records := make([]jcashflow, 0, len(statements))
	for _, s := range statements {
		records = append(records, jcashflow{s.Month, s.AfterTaxIncome.String(), s.Expenditure.String(), s.NetSavings.String()})
	}
	return gocsv.Marshal(records, w)
}

// EncodeBalanceSheets writes the balance sheet columns.
func EncodeBalanceSheets(w io.Writer, sheets []BalanceSheet) error {
	type jbalance struct {
		Month                date.Month `csv:"month"`
		LiquidAssets         string     `csv:"liquid_assets"`
		RiskAssets           string     `csv:"risk_assets"`
		PensionAssets        string     `csv:"pension_assets"`
		TotalFinancialAssets string     `csv:"total_financial_assets"`
		InvestmentGainLoss   string     `csv:"investment_gain_loss"`
	}
	records := make([]jbalance, 0, len(sheets))
	for _, s := range sheets {
		records = append(records, jbalance{
			s.Month,
			s.LiquidAssets.String(),
			s.RiskAssets.String(),
			s.PensionAssets.String(),
			s.TotalFinancialAssets.String(),
			s.InvestmentGainLoss.String(),
		})
	}
	return gocsv.Marshal(records, w)
}

// EncodeMetrics writes the metrics columns.
func EncodeMetrics(w io.Writer, metrics []FinancialMetrics) error {
	type jmetrics struct {
		Month           date.Month `csv:"month"`
		SavingsRate     float64    `csv:"savings_rate"`
		RiskAssetRatio  float64    `csv:"risk_asset_ratio"`
		MonthlyReturn   float64    `csv:"monthly_return"`
		MonthlyAlpha    float64    `csv:"monthly_alpha"`
		BenchmarkReturn float64    `csv:"benchmark_return"`
		FIRatio12m      float64    `csv:"fi_ratio_12m"`
		FIRatio48m      float64    `csv:"fi_ratio_48m"`
		FIRatioNext12m  float64    `csv:"fi_ratio_next_12m"`
	}
	records := make([]jmetrics, 0, len(metrics))
	for _, m := range metrics {
		records = append(records, jmetrics(m))
	}
	return gocsv.Marshal(records, w)
}

// EncodeParameters writes category,item,parameter,value,unit,description.
func EncodeParameters(w io.Writer, params []forecast.Parameter) error {
	return gocsv.Marshal(params, w)
}

// statementColumns are the columns following the per item columns of a table.
var statementColumns = []struct {
	name  string
	value func(Row) float64
}{
	{"after_tax_income", func(r Row) float64 { return r.AfterTaxIncome }},
	{"expenditure", func(r Row) float64 { return r.Expenditure }},
	{"net_savings", func(r Row) float64 { return r.NetSavings }},
	{"liquid_assets", func(r Row) float64 { return r.LiquidAssets }},
	{"risk_assets", func(r Row) float64 { return r.RiskAssets }},
	{"pension_assets", func(r Row) float64 { return r.PensionAssets }},
	{"total_financial_assets", func(r Row) float64 { return r.TotalFinancialAssets }},
	{"investment_gain_loss", func(r Row) float64 { return r.InvestmentGainLoss }},
	{"savings_rate", func(r Row) float64 { return r.SavingsRate }},
	{"risk_asset_ratio", func(r Row) float64 { return r.RiskAssetRatio }},
	{"monthly_return", func(r Row) float64 { return r.MonthlyReturn }},
	{"monthly_alpha", func(r Row) float64 { return r.MonthlyAlpha }},
	{"benchmark_return", func(r Row) float64 { return r.BenchmarkReturn }},
	{"fi_ratio_12m", func(r Row) float64 { return r.FIRatio12m }},
	{"fi_ratio_48m", func(r Row) float64 { return r.FIRatio48m }},
	{"fi_ratio_next_12m", func(r Row) float64 { return r.FIRatioNext12m }},
}

// EncodeTable writes one line per row: month, the per item columns then the statement columns.
//
// Per item columns are named income_<id>, expense_<id>, asset_<id> and
// class_<id>, they are rounded to the nearest 1000. Other columns are
// rounded to 4 significant digits.
func EncodeTable(w io.Writer, t *Table) error {
	header := []string{"month"}
	type group struct {
		prefix string
		items  []string
		values func(Row) map[string]float64
	}
	groups := []group{
		{"income_", t.IncomeItems, func(r Row) map[string]float64 { return r.Incomes }},
		{"expense_", t.ExpenseItems, func(r Row) map[string]float64 { return r.Expenses }},
		{"asset_", t.AccountItems, func(r Row) map[string]float64 { return r.Accounts }},
		{"class_", t.ClassItems, func(r Row) map[string]float64 { return r.Classes }},
	}
	for _, g := range groups {
		for _, id := range g.items {
			header = append(header, g.prefix+id)
		}
	}
	for _, c := range statementColumns {
		header = append(header, c.name)
	}

	cw := gocsv.DefaultCSVWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, r := range t.Rows {
		line := make([]string, 0, len(header))
		line = append(line, r.Month.String())
		for _, g := range groups {
			values := g.values(r)
			for _, id := range g.items {
				line = append(line, formatFloat(roundThousand(values[id])))
			}
		}
		for _, c := range statementColumns {
			line = append(line, formatFloat(roundSignificant(c.value(r), 4)))
		}
		if err := cw.Write(line); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// roundThousand rounds to the nearest multiple of 1000.
func roundThousand(v float64) float64 { return math.Round(v/1000) * 1000 }

// roundSignificant rounds to n significant digits, 0 stays 0.
func roundSignificant(v float64, n int) float64 {
	if v == 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	r, _ := strconv.ParseFloat(strconv.FormatFloat(v, 'g', n, 64), 64)
	return r
}

func formatFloat(v float64) string {
	if v == 0 {
		return "0" // no negative zero
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
