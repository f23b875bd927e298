// internal/output/json.go
package output

import "encoding/json"

// JSONFormatter outputs a Report as JSON.
type JSONFormatter struct{}

// NewJSONFormatter creates a new JSONFormatter.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// Format marshals the Report as indented JSON.
func (f *JSONFormatter) Format(report *Report) ([]byte, error) {
	return json.MarshalIndent(report, "", "  ")
}

// MapFormatter outputs only the name to diagram object, keys in extraction
// order.
type MapFormatter struct{}

// NewMapFormatter creates a new MapFormatter.
func NewMapFormatter() *MapFormatter {
	return &MapFormatter{}
}

// Format marshals the report's diagrams as an ordered JSON object.
func (f *MapFormatter) Format(report *Report) ([]byte, error) {
	data, err := json.MarshalIndent(report.DiagramMap(), "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}
