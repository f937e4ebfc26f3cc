package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/vegasq/mochadb/errors"
	"github.com/vegasq/mochadb/model"
)

// CSVFormatter outputs records as CSV with a header row
type CSVFormatter struct {
	writer io.Writer
}

// NewCSVFormatter creates a new CSV formatter
func NewCSVFormatter(w io.Writer) *CSVFormatter {
	return &CSVFormatter{writer: w}
}

// SetOutput sets the output writer
func (c *CSVFormatter) SetOutput(w io.Writer) {
	c.writer = w
}

// Format writes records as CSV. Records without columns write nothing.
func (c *CSVFormatter) Format(rec Records) error {
	if len(rec.Columns) == 0 {
		return nil
	}

	csvWriter := csv.NewWriter(c.writer)
	if err := csvWriter.Write(rec.Columns); err != nil {
		return errors.Wrap(err, "write CSV header")
	}

	for _, row := range rec.Rows {
		record := make([]string, len(rec.Columns))
		for i := range record {
			if i < len(row) {
				record[i] = sanitizeCSV(formatValue(row[i]))
			}
		}
		if err := csvWriter.Write(record); err != nil {
			return errors.Wrap(err, "write CSV row")
		}
	}

	csvWriter.Flush()
	if err := csvWriter.Error(); err != nil {
		return errors.Wrap(err, "failed to flush CSV writer")
	}
	return nil
}

// sanitizeCSV prefixes text that spreadsheet applications would evaluate
// as a formula.
func sanitizeCSV(val string) string {
	if len(val) == 0 {
		return val
	}
	switch val[0] {
	case '=', '+', '-', '@', '\t', '\r', '\n', '|':
		// Plain negative numbers are data, not formulas
		if val[0] == '-' && isNumber(val) {
			return val
		}
		return "'" + strings.ReplaceAll(val, "'", "''")
	}
	return val
}

func isNumber(s string) bool {
	_, err := model.Coerce(model.Decimal, s)
	return err == nil && s != ""
}

// formatValue converts a value to its display text
func formatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case model.Cell:
		return val.Text()
	case string:
		return val
	case fmt.Stringer:
		return val.String()
	}
	if s := model.Format(model.String, v); s != "" {
		return s
	}
	return fmt.Sprint(v)
}
