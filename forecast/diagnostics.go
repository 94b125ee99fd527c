package forecast

import (
	"math"
	"strconv"
)

// Parameter documents one value derived by a forecaster.
type Parameter struct {
	Category    string `csv:"category" json:"category"`
	Item        string `csv:"item" json:"item"`
	Parameter   string `csv:"parameter" json:"parameter"`
	Value       string `csv:"value" json:"value"`
	Unit        string `csv:"unit" json:"unit"`
	Description string `csv:"description" json:"description"`
}

// Diagnostics collects forecaster parameters. A nil *Diagnostics discards them.
type Diagnostics struct {
	Parameters []Parameter
}

func (d *Diagnostics) add(category, item, parameter, value, unit, description string) {
	if d == nil {
		return
	}
	d.Parameters = append(d.Parameters, Parameter{
		Category:    category,
		Item:        item,
		Parameter:   parameter,
		Value:       value,
		Unit:        unit,
		Description: description,
	})
}

// Add records a rate or ratio rounded to 6 decimals.
func (d *Diagnostics) Add(category, item, parameter string, value float64, unit, description string) {
	value = math.Round(value*1e6) / 1e6
	d.add(category, item, parameter, strconv.FormatFloat(value, 'f', -1, 64), unit, description)
}

// AddAmount records a currency amount truncated to whole units.
func (d *Diagnostics) AddAmount(category, item, parameter string, value float64, unit, description string) {
	d.add(category, item, parameter, strconv.FormatInt(int64(value), 10), unit, description)
}

// AddText records a textual parameter.
func (d *Diagnostics) AddText(category, item, parameter, value, unit, description string) {
	d.add(category, item, parameter, value, unit, description)
}

// Find returns the value of a recorded parameter.
func (d *Diagnostics) Find(item, parameter string) (string, bool) {
	if d == nil {
		return "", false
	}
	for _, p := range d.Parameters {
		if p.Item == item && p.Parameter == parameter {
			return p.Value, true
		}
	}
	return "", false
}
