package fiplan

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// Input files, relative to the data directory.
var (
	IncomeFile   = filepath.Join("data", "input", "income.csv")
	ExpenseFile  = filepath.Join("data", "input", "expense.csv")
	AssetsFile   = filepath.Join("data", "input", "assets.csv")
	MarketFile   = filepath.Join("data", "input", "market.csv")
	AccountsFile = filepath.Join("master", "accounts.csv")
	ClassesFile  = filepath.Join("master", "asset_classes.csv")
	MethodsFile  = filepath.Join("master", "payment_methods.csv")
)

// decodeFile opens path and decodes it with decode. A missing file decodes as no row.
func decodeFile[T any](path string, decode func(io.Reader) ([]T, error)) ([]T, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not open %q: %w", path, err)
	}
	defer f.Close()

	rows, err := decode(f)
	if err != nil {
		return nil, fmt.Errorf("could not decode %q: %w", path, err)
	}
	return rows, nil
}

// LoadLedger reads the income, expense, assets and market files found in dir.
func LoadLedger(dir string) (*Ledger, error) {
	incomes, err := decodeFile(filepath.Join(dir, IncomeFile), DecodeIncomes)
	if err != nil {
		return nil, err
	}
	expenses, err := decodeFile(filepath.Join(dir, ExpenseFile), DecodeExpenses)
	if err != nil {
		return nil, err
	}
	assets, err := decodeFile(filepath.Join(dir, AssetsFile), DecodeAssets)
	if err != nil {
		return nil, err
	}
	markets, err := decodeFile(filepath.Join(dir, MarketFile), DecodeMarkets)
	if err != nil {
		return nil, err
	}
	return NewLedger(incomes, expenses, assets, markets), nil
}

// LoadMaster reads the master tables found in dir.
func LoadMaster(dir string) (*Master, error) {
	accounts, err := decodeFile(filepath.Join(dir, AccountsFile), DecodeAccounts)
	if err != nil {
		return nil, err
	}
	classes, err := decodeFile(filepath.Join(dir, ClassesFile), DecodeClasses)
	if err != nil {
		return nil, err
	}
	methods, err := decodeFile(filepath.Join(dir, MethodsFile), DecodeMethods)
	if err != nil {
		return nil, err
	}
	return NewMaster(accounts, classes, methods), nil
}

// encodeFile creates path and writes it with encode.
func encodeFile(path string, encode func(io.Writer) error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("could not create directory for %q: %w", path, err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error opening %q for writing: %w", path, err)
	}
	if err := encode(f); err != nil {
		f.Close()
		return fmt.Errorf("could not write %q: %w", path, err)
	}
	return f.Close()
}

// SaveReport writes the report files in dir: cashflow.csv, balance_sheet.csv,
// metrics.csv, normalized.csv and, when there is a projection, forecast.csv
// and forecast_parameters.csv.
func SaveReport(dir string, r *Report) error {
	type output struct {
		name   string
		encode func(io.Writer) error
	}
	files := []output{
		{"cashflow.csv", func(w io.Writer) error { return EncodeCashFlows(w, r.Statements.CashFlows) }},
		{"balance_sheet.csv", func(w io.Writer) error { return EncodeBalanceSheets(w, r.Statements.BalanceSheets) }},
		{"metrics.csv", func(w io.Writer) error { return EncodeMetrics(w, r.Statements.Metrics) }},
		{"normalized.csv", func(w io.Writer) error { return EncodeTable(w, r.History) }},
	}
	if r.Projection != nil {
		files = append(files,
			output{"forecast.csv", func(w io.Writer) error { return EncodeTable(w, r.Projection.Combined) }},
			output{"forecast_parameters.csv", func(w io.Writer) error { return EncodeParameters(w, r.Projection.Parameters) }},
		)
	}
	for _, f := range files {
		if err := encodeFile(filepath.Join(dir, f.name), f.encode); err != nil {
			return err
		}
	}
	return nil
}
