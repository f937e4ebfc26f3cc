package reader

import (
	"encoding/json"
	"fmt"
	"math/big"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/shopspring/decimal"

	"github.com/vegasq/mochadb/errors"
	"github.com/vegasq/mochadb/model"
)

// FileColumn holds the source path of rows read through a glob pattern
const FileColumn = "_file"

// fieldColumn maps one parquet leaf field to a table column
type fieldColumn struct {
	path  []string
	name  string
	kind  model.DataKind
	field parquet.Field
	list  bool
}

// ReadTable imports the files a path or glob pattern names as a table.
//
// Leaf fields of the first file's schema become columns in schema order;
// nested fields are named with '_' between path segments. Repeated fields
// are stored as JSON text. Rows read through a glob pattern carry an extra
// FileColumn column.
func ReadTable(pattern, name string) (*model.Table, error) {
	paths, err := ExpandPattern(pattern)
	if err != nil {
		return nil, err
	}

	first, err := NewReader(paths[0])
	if err != nil {
		return nil, err
	}
	fields := columnsOf(first.Schema())
	_ = first.Close()

	if len(fields) == 0 {
		return nil, errors.Wrapf(errors.ErrNotProcessable, "%s has no columns", paths[0])
	}

	columns := make([]*model.Column, 0, len(fields)+1)
	for _, f := range fields {
		c, err := model.NewColumn(f.name, f.kind)
		if err != nil {
			return nil, errors.Wrapf(err, "parquet field %s", strings.Join(f.path, "."))
		}
		columns = append(columns, c)
	}
	glob := IsGlob(pattern)
	if glob {
		columns = append(columns, model.NewResultColumn(FileColumn, model.String))
	}

	t, err := model.NewTable(name, columns...)
	if err != nil {
		return nil, err
	}

	for _, path := range paths {
		rows, err := readFile(path)
		if err != nil {
			return nil, err
		}
		for i, row := range rows {
			values := make([]any, 0, len(columns))
			for _, f := range fields {
				v, err := cellValue(f, lookup(row, f.path))
				if err != nil {
					return nil, errors.Wrapf(err, "%s row %d column %s", path, i, f.name)
				}
				values = append(values, v)
			}
			if glob {
				values = append(values, path)
			}
			if err := t.AppendRow(values...); err != nil {
				return nil, errors.Wrapf(err, "%s row %d", path, i)
			}
		}
	}
	return t, nil
}

// columnsOf flattens a schema into leaf columns with sanitized, unique
// names.
func columnsOf(schema *parquet.Schema) []fieldColumn {
	var out []fieldColumn
	seen := map[string]int{}

	var walk func(f parquet.Field, path []string, repeated bool)
	walk = func(f parquet.Field, path []string, repeated bool) {
		path = append(path[:len(path):len(path)], f.Name())
		repeated = repeated || f.Repeated() || isCollection(f)

		if children := f.Fields(); len(children) > 0 && !repeated {
			for _, child := range children {
				walk(child, path, repeated)
			}
			return
		}

		name := sanitizeName(strings.Join(path, "_"))
		if n := seen[name]; n > 0 {
			seen[name] = n + 1
			name = name + "_" + strconv.Itoa(n+1)
		} else {
			seen[name] = 1
		}

		kind := model.String
		if !repeated {
			kind = kindOf(f)
		}
		out = append(out, fieldColumn{path: path, name: name, kind: kind, field: f, list: repeated})
	}

	for _, f := range schema.Fields() {
		walk(f, nil, false)
	}
	return out
}

var invalidNameChars = regexp.MustCompile(`[^A-Za-z0-9_\x{80}-\x{10FFFF}]+`)

// sanitizeName turns a parquet field path into a valid column name
func sanitizeName(s string) string {
	s = invalidNameChars.ReplaceAllString(s, "_")
	if s == "" || model.IsReserved(s) {
		s = "_" + s
	}
	return s
}

// kindOf maps a leaf field to the closest column kind
func kindOf(f parquet.Field) model.DataKind {
	switch fieldType(f) {
	case "BOOLEAN":
		return model.Boolean
	case "INT32":
		return model.Int32
	case "INT64":
		return model.Int64
	case "FLOAT32":
		return model.Float
	case "FLOAT64":
		return model.Double
	case "DECIMAL":
		return model.Decimal
	case "DATE", "TIMESTAMP":
		return model.DateTime
	}
	return model.String
}

// lookup resolves a field path in a row read as nested maps
func lookup(row map[string]any, path []string) any {
	var cur any = row
	for _, seg := range path {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		cur = m[seg]
	}
	return cur
}

// cellValue converts a parquet value to the Go representation of the
// column kind.
func cellValue(f fieldColumn, v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	if f.list {
		b, err := json.Marshal(v)
		if err != nil {
			return nil, errors.Wrapf(errors.ErrNotProcessable, "encode repeated value: %v", err)
		}
		return string(b), nil
	}

	switch f.kind {
	case model.String:
		switch val := v.(type) {
		case string:
			return val, nil
		case []byte:
			return string(val), nil
		}
		return fmt.Sprint(v), nil
	case model.DateTime:
		return timeValue(f.field, v)
	case model.Decimal:
		return decimalValue(f.field, v)
	}
	return v, nil
}

// isCollection reports whether f is a LIST or MAP group
func isCollection(f parquet.Field) bool {
	lt := strings.ToUpper(logicalType(f))
	return strings.HasPrefix(lt, "LIST") || strings.HasPrefix(lt, "MAP")
}

func logicalType(f parquet.Field) string {
	if f.Type() == nil || f.Type().LogicalType() == nil {
		return ""
	}
	return f.Type().LogicalType().String()
}

func timeValue(f parquet.Field, v any) (any, error) {
	switch val := v.(type) {
	case time.Time:
		return val.UTC(), nil
	case int32:
		// DATE counts days since the Unix epoch
		return time.Unix(int64(val)*86400, 0).UTC(), nil
	case int64:
		lt := strings.ToUpper(logicalType(f))
		switch {
		case strings.Contains(lt, "MILLIS"):
			return time.UnixMilli(val).UTC(), nil
		case strings.Contains(lt, "MICROS"):
			return time.UnixMicro(val).UTC(), nil
		}
		return time.Unix(0, val).UTC(), nil
	}
	return nil, errors.Wrapf(errors.ErrTypeMismatch, "%T is not a timestamp", v)
}

var decimalScale = regexp.MustCompile(`(?i)scale\s*[=:]?\s*(\d+)|DECIMAL\(\s*\d+\s*,\s*(\d+)\s*\)`)

// scaleOf reads the scale from a DECIMAL logical type
func scaleOf(f parquet.Field) int32 {
	m := decimalScale.FindStringSubmatch(logicalType(f))
	if m == nil {
		return 0
	}
	digits := m[1]
	if digits == "" {
		digits = m[2]
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0
	}
	return int32(n)
}

func decimalValue(f parquet.Field, v any) (any, error) {
	exp := -scaleOf(f)
	switch val := v.(type) {
	case int32:
		return decimal.New(int64(val), exp), nil
	case int64:
		return decimal.New(val, exp), nil
	case []byte:
		return decimal.NewFromBigInt(twosComplement(val), exp), nil
	case string:
		return decimal.NewFromBigInt(twosComplement([]byte(val)), exp), nil
	case float64:
		return decimal.NewFromFloat(val), nil
	}
	return nil, errors.Wrapf(errors.ErrTypeMismatch, "%T is not a decimal", v)
}

// twosComplement decodes a big-endian two's complement integer
func twosComplement(b []byte) *big.Int {
	n := new(big.Int).SetBytes(b)
	if len(b) > 0 && b[0]&0x80 != 0 {
		n.Sub(n, new(big.Int).Lsh(big.NewInt(1), uint(len(b)*8)))
	}
	return n
}
