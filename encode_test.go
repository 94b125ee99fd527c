package fiplan

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDecodeIncomes(t *testing.T) {
	input := `month,account_id,amount,memo
2024-01,bank,300000,salary
2024-2,bank,-1500.5,
`
	got, err := DecodeIncomes(strings.NewReader(input))
	if err != nil {
		t.Fatalf("DecodeIncomes() unexpected error: %v", err)
	}
	want := []Income{
		{Month: mon("2024-01"), Account: "bank", Amount: d(300000)},
		{Month: mon("2024-02"), Account: "bank", Amount: d(-1500.5)},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("DecodeIncomes() mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeExactAmounts(t *testing.T) {
	got, err := DecodeAssets(strings.NewReader("month,account_id,asset_class,balance\n2024-01,bank,cash,1234567890.123456789\n"))
	if err != nil {
		t.Fatalf("DecodeAssets() unexpected error: %v", err)
	}
	if want := "1234567890.123456789"; len(got) != 1 || got[0].Balance.String() != want {
		t.Errorf("DecodeAssets() = %v, want a balance of %s", got, want)
	}
	if _, err := DecodeExpenses(strings.NewReader("month,method_id,amount\n2024-01,card,12k\n")); err == nil {
		t.Errorf("DecodeExpenses() with an invalid amount: expected an error")
	}
}

func TestDecodeEmpty(t *testing.T) {
	got, err := DecodeExpenses(strings.NewReader(""))
	if err != nil {
		t.Fatalf("DecodeExpenses() unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("DecodeExpenses() = %v, want no row", got)
	}
}

func TestDecodeErrors(t *testing.T) {
	if _, err := DecodeAssets(strings.NewReader("month,account_id,asset_class,balance\n2024-13,bank,cash,1\n")); err == nil {
		t.Errorf("DecodeAssets() with an invalid month: expected an error")
	}
	if _, err := DecodeAccounts(strings.NewReader("account_id,name,type,currency,risk\nx,X,casino,JPY,0\n")); err == nil {
		t.Errorf("DecodeAccounts() with an unknown type: expected an error")
	}
	if _, err := DecodeAccounts(strings.NewReader("account_id,name,type,currency,risk\nx,X,bank,GBP,0\n")); err == nil {
		t.Errorf("DecodeAccounts() with an unknown currency: expected an error")
	}
}

func TestDecodeAccounts(t *testing.T) {
	input := `account_id,name,type,currency,risk
bank,Yucho Bank,Bank,,0
us_broker,US Broker,securities,usd,1
`
	got, err := DecodeAccounts(strings.NewReader(input))
	if err != nil {
		t.Fatalf("DecodeAccounts() unexpected error: %v", err)
	}
	want := []Account{
		{ID: "bank", Name: "Yucho Bank", Type: Bank, Currency: JPY},
		{ID: "us_broker", Name: "US Broker", Type: Securities, Currency: USD, Risk: true},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("DecodeAccounts() mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeMarkets(t *testing.T) {
	got, err := DecodeMarkets(strings.NewReader("month,usd_jpy,eur_jpy,sp500\n2024-01,148.5,160.2,4845.65\n"))
	if err != nil {
		t.Fatalf("DecodeMarkets() unexpected error: %v", err)
	}
	want := []Market{{Month: mon("2024-01"), USDJPY: 148.5, EURJPY: 160.2, Benchmark: 4845.65}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("DecodeMarkets() mismatch (-want +got):\n%s", diff)
	}
}

func TestEncodeTable(t *testing.T) {
	tab := &Table{
		IncomeItems: []string{"bank"},
		Rows: []Row{{
			Month:          mon("2024-01"),
			Incomes:        map[string]float64{"bank": 123456},
			AfterTaxIncome: 123456,
			NetSavings:     -1234.56,
			SavingsRate:    0.123456,
		}},
	}
	var buf bytes.Buffer
	if err := EncodeTable(&buf, tab); err != nil {
		t.Fatalf("EncodeTable() unexpected error: %v", err)
	}
	want := "month,income_bank,after_tax_income,expenditure,net_savings,liquid_assets,risk_assets,pension_assets,total_financial_assets,investment_gain_loss," +
		"savings_rate,risk_asset_ratio,monthly_return,monthly_alpha,benchmark_return,fi_ratio_12m,fi_ratio_48m,fi_ratio_next_12m\n" +
		"2024-01,123000,123500,0,-1235,0,0,0,0,0,0.1235,0,0,0,0,0,0,0\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("EncodeTable() mismatch (-want +got):\n%s", diff)
	}
}

func TestRoundSignificant(t *testing.T) {
	testCases := []struct {
		v    float64
		want float64
	}{
		{0, 0},
		{1234567, 1235000},
		{0.000123456, 0.0001235},
		{-0.5, -0.5},
	}
	for _, tc := range testCases {
		if got := roundSignificant(tc.v, 4); got != tc.want {
			t.Errorf("roundSignificant(%v, 4) = %v, want %v", tc.v, got, tc.want)
		}
	}
}

// writeFile is a helper for test to create a file and its parent directories.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadAndSave(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, AccountsFile), "account_id,name,type,currency,risk\nbank,Yucho Bank,bank,JPY,0\nsbi_sec,SBI,securities,JPY,1\n")
	writeFile(t, filepath.Join(dir, MethodsFile), "method_id,name,settlement_account\ncard,Card,bank\n")
	writeFile(t, filepath.Join(dir, IncomeFile), "month,account_id,amount\n2024-01,bank,300000\n2024-02,bank,300000\n")
	writeFile(t, filepath.Join(dir, ExpenseFile), "month,method_id,amount\n2024-01,card,200000\n2024-02,card,200000\n")
	writeFile(t, filepath.Join(dir, AssetsFile), "month,account_id,asset_class,balance\n2024-01,bank,cash,100000\n2024-01,sbi_sec,fund,1000000\n2024-02,bank,cash,100000\n2024-02,sbi_sec,fund,1150000\n")
	// no market file, no asset class file.

	master, err := LoadMaster(dir)
	if err != nil {
		t.Fatalf("LoadMaster() unexpected error: %v", err)
	}
	if got := len(master.Accounts()); got != 2 {
		t.Errorf("len(Accounts()) = %d, want 2", got)
	}
	l, err := LoadLedger(dir)
	if err != nil {
		t.Fatalf("LoadLedger() unexpected error: %v", err)
	}
	if l.IsEmpty() || len(l.Markets) != 0 {
		t.Errorf("LoadLedger() = %d incomes, %d markets, want some incomes and no market", len(l.Incomes), len(l.Markets))
	}

	e := NewEngine(master, DefaultOptions(), nil)
	report, err := e.Run(l)
	if err != nil {
		t.Fatalf("Run() unexpected error: %v", err)
	}
	out := filepath.Join(dir, "data", "output")
	if err := SaveReport(out, report); err != nil {
		t.Fatalf("SaveReport() unexpected error: %v", err)
	}

	lines := map[string]int{
		"cashflow.csv":      3,
		"balance_sheet.csv": 3,
		"metrics.csv":       3,
		"normalized.csv":    3,
		"forecast.csv":      3 + 360,
	}
	for name, want := range lines {
		content, err := os.ReadFile(filepath.Join(out, name))
		if err != nil {
			t.Errorf("%s: %v", name, err)
			continue
		}
		if got := strings.Count(string(content), "\n"); got != want {
			t.Errorf("%s has %d lines, want %d", name, got, want)
		}
	}
	if _, err := os.Stat(filepath.Join(out, "forecast_parameters.csv")); err != nil {
		t.Errorf("forecast_parameters.csv: %v", err)
	}
}

func TestLoadLedgerMissing(t *testing.T) {
	l, err := LoadLedger(t.TempDir())
	if err != nil {
		t.Fatalf("LoadLedger() unexpected error: %v", err)
	}
	if !l.IsEmpty() {
		t.Errorf("LoadLedger() on an empty directory is not empty")
	}
}
