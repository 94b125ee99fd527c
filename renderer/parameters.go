package renderer

import (
	"bytes"

	"github.com/etnz/fiplan/forecast"
	md "github.com/nao1215/markdown"
)

// ParametersMarkdown renders the forecast parameters, one section per category.
func ParametersMarkdown(params []forecast.Parameter) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Forecast Parameters")
	if len(params) == 0 {
		doc.PlainText("No parameter.")
		return doc.String()
	}

	var categories []string
	byCategory := make(map[string][]forecast.Parameter)
	for _, p := range params {
		if _, ok := byCategory[p.Category]; !ok {
			categories = append(categories, p.Category)
		}
		byCategory[p.Category] = append(byCategory[p.Category], p)
	}

	for _, c := range categories {
		doc.H2(c)
		table := md.TableSet{
			Alignment: []md.TableAlignment{md.AlignLeft, md.AlignLeft, md.AlignRight, md.AlignLeft, md.AlignLeft},
			Header:    []string{"Item", "Parameter", "Value", "Unit", "Description"},
			Rows:      [][]string{},
		}
		for _, p := range byCategory[c] {
			table.Rows = append(table.Rows, []string{p.Item, p.Parameter, p.Value, p.Unit, p.Description})
		}
		doc.Table(table)
	}
	return doc.String()
}
