package fiplan

import (
	"encoding/json"
	"fmt"

	"github.com/PaesslerAG/jsonpath"
)

// Query evaluates a JSONPath expression over the JSON form of the report,
// like "$.projection.combined.rows[-1:].total_financial_assets".
func (r *Report) Query(path string) (any, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("could not marshal report: %w", err)
	}
	var jobj any
	if err := json.Unmarshal(data, &jobj); err != nil {
		return nil, fmt.Errorf("could not unmarshal report: %w", err)
	}
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return nil, fmt.Errorf("error evaluating %q: %w", path, err)
	}
	return jval, nil
}
