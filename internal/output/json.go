package output

import (
	"encoding/json"

	"github.com/rgehrsitz/famcalc/internal/domain"
)

// JSONFormatter renders the summary as JSON.
type JSONFormatter struct {
	Pretty bool
}

func (JSONFormatter) Name() string { return "json" }

func (f JSONFormatter) Format(s domain.Summary) ([]byte, error) {
	if f.Pretty {
		data, err := json.MarshalIndent(s, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	}
	return json.Marshal(s)
}
