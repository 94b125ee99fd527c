package renderer

import (
	"bytes"
	"fmt"
	"math"

	"github.com/etnz/fiplan"
	md "github.com/nao1215/markdown"
)

// Year aggregates the forecast rows of one calendar year.
type Year struct {
	Year        int
	Months      int
	Income      float64 // sums over the year
	Expenditure float64
	NetSavings  float64
	Gain        float64
	End         fiplan.Row // last row of the year
}

// Years groups forecast rows by calendar year, in order.
func Years(rows []fiplan.Row) []Year {
	var years []Year
	for _, r := range rows {
		if len(years) == 0 || years[len(years)-1].Year != r.Month.Year() {
			years = append(years, Year{Year: r.Month.Year()})
		}
		y := &years[len(years)-1]
		y.Months++
		y.Income += r.AfterTaxIncome
		y.Expenditure += r.Expenditure
		y.NetSavings += r.NetSavings
		y.Gain += r.InvestmentGainLoss
		y.End = r
	}
	return years
}

// milestones lists notable forecast months: when investment gains first
// cover a year of spending and when liquid assets first run out.
func milestones(rows []fiplan.Row, opts Options) []string {
	var res []string
	for _, r := range rows {
		if r.FIRatio12m >= 1 {
			res = append(res, fmt.Sprintf("%s: trailing investment gains cover expenditure (FI ratio %.2f)", r.Month, r.FIRatio12m))
			break
		}
	}
	for _, r := range rows {
		if r.FIRatioNext12m >= 1 {
			res = append(res, fmt.Sprintf("%s: expected yield of risk assets covers expenditure (FI ratio %.2f)", r.Month, r.FIRatioNext12m))
			break
		}
	}
	for _, r := range rows {
		if r.LiquidAssets < 0 {
			res = append(res, fmt.Sprintf("%s: liquid assets run out (%s)", r.Month, opts.money(r.LiquidAssets)))
			break
		}
	}
	return res
}

// ProjectionMarkdown renders the forecast summarized by calendar year.
func ProjectionMarkdown(p *fiplan.Projection, opts Options) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	rows := p.Forecast()
	doc.H1(fmt.Sprintf("Projection from %s", p.Start))
	annual := math.Pow(1+p.GeoReturn, 12) - 1
	doc.PlainText(fmt.Sprintf("Risk assets compound at %s a month (%s a year) over %d months.",
		percent(p.GeoReturn), percent(annual), len(rows)))

	if len(rows) == 0 {
		return doc.String()
	}

	doc.H2("Yearly Summary")
	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight, md.AlignRight, md.AlignRight, md.AlignRight, md.AlignRight, md.AlignRight, md.AlignRight},
		Header:    []string{"Year", "Income", "Expenditure", "Net Savings", "Gain", "Total Assets", "Risk Ratio", "FI 12m"},
		Rows:      [][]string{},
	}
	for _, y := range Years(rows) {
		table.Rows = append(table.Rows, []string{
			fmt.Sprint(y.Year),
			opts.money(y.Income),
			opts.money(y.Expenditure),
			opts.signed(y.NetSavings),
			opts.signed(y.Gain),
			md.Bold(opts.money(y.End.TotalFinancialAssets)),
			percent(y.End.RiskAssetRatio),
			fmt.Sprintf("%.2f", y.End.FIRatio12m),
		})
	}
	doc.Table(table)

	if ms := milestones(rows, opts); len(ms) > 0 {
		doc.H2("Milestones")
		doc.BulletList(ms...)
	}

	return doc.String()
}
