package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/fiplan"
	md "github.com/nao1215/markdown"
)

// StatementsMarkdown renders the history cash flow, balance sheet and metrics tables.
func StatementsMarkdown(st *fiplan.Statements, opts Options) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Statements")
	if len(st.CashFlows) == 0 && len(st.BalanceSheets) == 0 {
		doc.PlainText("No history.")
		return doc.String()
	}

	doc.H2("Cash Flow")
	cf := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight, md.AlignRight, md.AlignRight},
		Header:    []string{"Month", "After-tax Income", "Expenditure", "Net Savings"},
		Rows:      [][]string{},
	}
	for _, s := range tail(st.CashFlows, opts.Last) {
		cf.Rows = append(cf.Rows, []string{
			s.Month.String(),
			fiplan.M(s.AfterTaxIncome, opts.currency()).String(),
			fiplan.M(s.Expenditure, opts.currency()).String(),
			fiplan.M(s.NetSavings, opts.currency()).SignedString(),
		})
	}
	doc.Table(cf)

	doc.H2("Balance Sheet")
	bs := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight, md.AlignRight, md.AlignRight, md.AlignRight, md.AlignRight},
		Header:    []string{"Month", "Liquid", "Risk", "Pension", "Total", "Gain/Loss"},
		Rows:      [][]string{},
	}
	for _, s := range tail(st.BalanceSheets, opts.Last) {
		bs.Rows = append(bs.Rows, []string{
			s.Month.String(),
			fiplan.M(s.LiquidAssets, opts.currency()).String(),
			fiplan.M(s.RiskAssets, opts.currency()).String(),
			fiplan.M(s.PensionAssets, opts.currency()).String(),
			md.Bold(fiplan.M(s.TotalFinancialAssets, opts.currency()).String()),
			fiplan.M(s.InvestmentGainLoss, opts.currency()).SignedString(),
		})
	}
	doc.Table(bs)

	if len(st.Metrics) == 0 {
		return doc.String()
	}
	doc.H2("Metrics")
	mt := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight, md.AlignRight, md.AlignRight, md.AlignRight, md.AlignRight, md.AlignRight, md.AlignRight, md.AlignRight},
		Header:    []string{"Month", "Savings Rate", "Risk Ratio", "Return", "Benchmark", "Alpha", "FI 12m", "FI 48m", "FI Next 12m"},
		Rows:      [][]string{},
	}
	for _, m := range tail(st.Metrics, opts.Last) {
		mt.Rows = append(mt.Rows, []string{
			m.Month.String(),
			percent(m.SavingsRate),
			percent(m.RiskAssetRatio),
			signedPercent(m.MonthlyReturn),
			signedPercent(m.BenchmarkReturn),
			signedPercent(m.MonthlyAlpha),
			fmt.Sprintf("%.2f", m.FIRatio12m),
			fmt.Sprintf("%.2f", m.FIRatio48m),
			fmt.Sprintf("%.2f", m.FIRatioNext12m),
		})
	}
	doc.Table(mt)

	return doc.String()
}
