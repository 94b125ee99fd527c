package fiplan

import "fmt"

// Percent is a ratio expressed in percent, 5 is 5%.
type Percent float64

// Ratio converts a ratio (0.05) to a Percent (5%).
func Ratio(r float64) Percent { return Percent(r * 100) }

func (p Percent) String() string {
	return fmt.Sprintf("%.2f%%", float64(p))
}

func (p Percent) SignedString() string {
	res := fmt.Sprintf("%+.2f%%", float64(p))
	if res == "+0.00%" || res == "-0.00%" {
		return "-"
	}
	return res
}
