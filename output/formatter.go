package output

import (
	"io"
	"strings"

	"github.com/vegasq/mochadb/errors"
)

// Formatter defines the interface for output formatters.
//
// Implementers must provide Format to write records in the target format
// and SetOutput to change the output destination.
type Formatter interface {
	// Format writes records in the formatter's specific format
	Format(rec Records) error

	// SetOutput changes the output writer
	SetOutput(w io.Writer)
}

// Format names accepted by New
const (
	FormatJSONL = "jsonl"
	FormatCSV   = "csv"
	FormatTable = "table"
)

// New returns the formatter registered under name. "json" is accepted as
// an alias of "jsonl".
func New(name string, w io.Writer) (Formatter, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case FormatJSONL, "json":
		return NewJSONFormatter(w), nil
	case FormatCSV:
		return NewCSVFormatter(w), nil
	case FormatTable, "":
		return NewTableFormatter(w), nil
	}
	return nil, errors.WithHint(
		errors.Newf("unknown output format %q", name),
		"use jsonl, csv or table")
}
