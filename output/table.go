package output

import (
	"io"

	"github.com/olekukonko/tablewriter"
)

// TableFormatter outputs records as an aligned text table
type TableFormatter struct {
	writer io.Writer
}

// NewTableFormatter creates a new text table formatter
func NewTableFormatter(w io.Writer) *TableFormatter {
	return &TableFormatter{writer: w}
}

// SetOutput sets the output writer
func (t *TableFormatter) SetOutput(w io.Writer) {
	t.writer = w
}

// Format renders records with a header row. Records without columns write
// nothing.
func (t *TableFormatter) Format(rec Records) error {
	if len(rec.Columns) == 0 {
		return nil
	}

	table := tablewriter.NewWriter(t.writer)
	table.SetHeader(rec.Columns)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)

	for _, row := range rec.Rows {
		line := make([]string, len(rec.Columns))
		for i := range line {
			if i < len(row) {
				line[i] = formatValue(row[i])
			}
		}
		table.Append(line)
	}
	table.Render()
	return nil
}
