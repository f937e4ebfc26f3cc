// Package output renders query and command results.
//
// Results are first converted to Records, a list of column names and row
// values, with FromValue or FromTable. A Formatter then writes the records:
//
//   - JSON Lines: one JSON object per row (suitable for streaming)
//   - CSV: header row followed by data rows
//   - Table: an aligned text table for terminals
//
// # Basic Usage
//
//	f, err := output.New("csv", os.Stdout)
//	if err != nil {
//	    return err
//	}
//	if err := f.Format(output.FromTable(t)); err != nil {
//	    return err
//	}
//
// # Type Handling
//
// Table cells keep their kind. JSON writes integers, floats and booleans
// natively and everything else (decimals, dates, text) as canonical text.
// CSV and table output always use the canonical text. CSV values that a
// spreadsheet would treat as a formula are prefixed with a single quote;
// negative numbers are left alone.
package output
