package output

import (
	"encoding/json"
	"io"
	"math"

	"github.com/vegasq/mochadb/model"
)

// JSONFormatter outputs records as JSON Lines format
type JSONFormatter struct {
	writer io.Writer
}

// NewJSONFormatter creates a new JSON Lines formatter
func NewJSONFormatter(w io.Writer) *JSONFormatter {
	return &JSONFormatter{writer: w}
}

// SetOutput sets the output writer
func (j *JSONFormatter) SetOutput(w io.Writer) {
	j.writer = w
}

// Format writes one JSON object per row, keyed by column name
func (j *JSONFormatter) Format(rec Records) error {
	encoder := json.NewEncoder(j.writer)
	for _, row := range rec.Rows {
		obj := make(map[string]any, len(rec.Columns))
		for i, col := range rec.Columns {
			var v any
			if i < len(row) {
				v = jsonValue(row[i])
			}
			obj[col] = v
		}
		if err := encoder.Encode(obj); err != nil {
			return err
		}
	}
	return nil
}

// jsonValue keeps numbers and booleans native. Kinds without an exact JSON
// representation are written as their canonical text.
func jsonValue(v any) any {
	switch val := v.(type) {
	case model.Cell:
		switch val.Kind() {
		case model.Boolean:
			return val.Value()
		case model.Decimal, model.BigInteger, model.DateTime, model.Char, model.String, model.Unique:
			return val.Text()
		}
		if f, ok := val.Value().(float64); ok && (math.IsNaN(f) || math.IsInf(f, 0)) {
			return val.Text()
		}
		if val.Kind().IsNumeric() {
			return val.Value()
		}
		return val.Text()
	case model.DataKind:
		return val.String()
	}
	return v
}
