package output

import (
	"encoding/json"
	"fmt"

	"github.com/GiuseppeDM98/net-worth-tracker-sub003/internal/scenario"
	"github.com/GiuseppeDM98/net-worth-tracker-sub003/internal/simulation"
)

// JSONFormatter marshals results for machine consumption.
type JSONFormatter struct {
	Pretty bool
}

type jsonRun struct {
	Parameters simulation.Parameters `json:"parameters"`
	Results    *simulation.Results   `json:"results"`
}

// FormatResults marshals the parameters alongside the results so a run is
// self-describing.
func (jf *JSONFormatter) FormatResults(params simulation.Parameters, results *simulation.Results) (string, error) {
	return jf.marshal(jsonRun{Parameters: params, Results: results})
}

// FormatComparison marshals the full comparison set.
func (jf *JSONFormatter) FormatComparison(set *scenario.ComparisonSet) (string, error) {
	return jf.marshal(set)
}

func (jf *JSONFormatter) marshal(v any) (string, error) {
	var data []byte
	var err error
	if jf.Pretty {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}
	if err != nil {
		return "", fmt.Errorf("failed to marshal results: %w", err)
	}
	return string(data) + "\n", nil
}
