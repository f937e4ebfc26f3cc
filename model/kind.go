package model

import (
	"math/big"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/vegasq/mochadb/errors"
)

// DataKind is the declared type of a column. Every cell in a column holds a
// value of the column's kind.
type DataKind int

const (
	String DataKind = iota
	Char
	Boolean
	Byte
	SByte
	Int16
	Int32
	Int64
	UInt16
	UInt32
	UInt64
	Float
	Double
	Decimal
	DateTime
	BigInteger
	// Unique is a String kind whose non-empty values may not repeat.
	Unique
	// AutoInt is an Int64 kind whose values are assigned on append.
	AutoInt
)

var kindNames = [...]string{
	String:     "String",
	Char:       "Char",
	Boolean:    "Boolean",
	Byte:       "Byte",
	SByte:      "SByte",
	Int16:      "Int16",
	Int32:      "Int32",
	Int64:      "Int64",
	UInt16:     "UInt16",
	UInt32:     "UInt32",
	UInt64:     "UInt64",
	Float:      "Float",
	Double:     "Double",
	Decimal:    "Decimal",
	DateTime:   "DateTime",
	BigInteger: "BigInteger",
	Unique:     "Unique",
	AutoInt:    "AutoInt",
}

// String returns the kind name as stored in the database.
func (k DataKind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "DataKind(" + strconv.Itoa(int(k)) + ")"
	}
	return kindNames[k]
}

// Valid reports whether k is one of the declared kinds.
func (k DataKind) Valid() bool {
	return k >= 0 && int(k) < len(kindNames)
}

// IsNumeric reports whether values of k are numbers.
func (k DataKind) IsNumeric() bool {
	switch k {
	case Byte, SByte, Int16, Int32, Int64, UInt16, UInt32, UInt64,
		Float, Double, Decimal, BigInteger, AutoInt:
		return true
	}
	return false
}

// ParseKind resolves a kind name case-insensitively. Common aliases such as
// "int", "long" and "bool" are accepted.
func ParseKind(name string) (DataKind, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for i, n := range kindNames {
		if strings.ToLower(n) == key {
			return DataKind(i), nil
		}
	}
	switch key {
	case "int", "integer":
		return Int32, nil
	case "long":
		return Int64, nil
	case "short":
		return Int16, nil
	case "uint":
		return UInt32, nil
	case "ulong":
		return UInt64, nil
	case "ushort":
		return UInt16, nil
	case "bool":
		return Boolean, nil
	case "single":
		return Float, nil
	case "date", "timestamp":
		return DateTime, nil
	}
	return String, errors.Wrapf(errors.ErrTypeMismatch, "unknown data kind %q", name)
}

// dateLayouts are tried in order when coercing DateTime text.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
	"01/02/2006 15:04:05",
	"01/02/2006",
}

// Coerce parses text into the Go value representing kind. Empty text is
// accepted by the String, Unique, Char and numeric kinds and yields the
// kind's zero value, so columns can be padded with "" safely.
func Coerce(kind DataKind, text string) (any, error) {
	v, err := coerce(kind, text)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrTypeMismatch, "value %q is not %s", text, kind)
	}
	return v, nil
}

// TryCoerce is Coerce returning the zero value of kind when text does not parse.
func TryCoerce(kind DataKind, text string) any {
	v, err := coerce(kind, text)
	if err != nil {
		return Zero(kind)
	}
	return v
}

func coerce(kind DataKind, text string) (any, error) {
	switch kind {
	case String, Unique:
		return text, nil
	case Char:
		if text == "" {
			return rune(0), nil
		}
		if utf8.RuneCountInString(text) != 1 {
			return nil, errors.New("char needs exactly one character")
		}
		r, _ := utf8.DecodeRuneInString(text)
		return r, nil
	case Boolean:
		if text == "" {
			return false, nil
		}
		return strconv.ParseBool(strings.TrimSpace(text))
	case DateTime:
		if text == "" {
			return time.Time{}, nil
		}
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, strings.TrimSpace(text)); err == nil {
				return t, nil
			}
		}
		return nil, errors.New("unrecognised time layout")
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return Zero(kind), nil
	}
	switch kind {
	case Byte:
		n, err := strconv.ParseUint(text, 10, 8)
		return uint8(n), err
	case SByte:
		n, err := strconv.ParseInt(text, 10, 8)
		return int8(n), err
	case Int16:
		n, err := strconv.ParseInt(text, 10, 16)
		return int16(n), err
	case Int32:
		n, err := strconv.ParseInt(text, 10, 32)
		return int32(n), err
	case Int64, AutoInt:
		return strconv.ParseInt(text, 10, 64)
	case UInt16:
		n, err := strconv.ParseUint(text, 10, 16)
		return uint16(n), err
	case UInt32:
		n, err := strconv.ParseUint(text, 10, 32)
		return uint32(n), err
	case UInt64:
		return strconv.ParseUint(text, 10, 64)
	case Float:
		n, err := strconv.ParseFloat(text, 32)
		return float32(n), err
	case Double:
		return strconv.ParseFloat(text, 64)
	case Decimal:
		return decimal.NewFromString(text)
	case BigInteger:
		n, ok := new(big.Int).SetString(text, 10)
		if !ok {
			return nil, errors.New("invalid integer")
		}
		return n, nil
	}
	return nil, errors.Newf("unknown kind %d", int(kind))
}

// Zero returns the zero value of kind.
func Zero(kind DataKind) any {
	switch kind {
	case Char:
		return rune(0)
	case Boolean:
		return false
	case Byte:
		return uint8(0)
	case SByte:
		return int8(0)
	case Int16:
		return int16(0)
	case Int32:
		return int32(0)
	case Int64, AutoInt:
		return int64(0)
	case UInt16:
		return uint16(0)
	case UInt32:
		return uint32(0)
	case UInt64:
		return uint64(0)
	case Float:
		return float32(0)
	case Double:
		return float64(0)
	case Decimal:
		return decimal.Zero
	case DateTime:
		return time.Time{}
	case BigInteger:
		return new(big.Int)
	}
	return ""
}

// Format renders a value of kind as canonical text. Coerce(kind,
// Format(kind, v)) yields v again for every value Coerce produced.
func Format(kind DataKind, v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case rune:
		if kind == Char {
			if val == 0 {
				return ""
			}
			return string(val)
		}
		return strconv.FormatInt(int64(val), 10)
	case bool:
		return strconv.FormatBool(val)
	case uint8:
		return strconv.FormatUint(uint64(val), 10)
	case int8:
		return strconv.FormatInt(int64(val), 10)
	case int16:
		return strconv.FormatInt(int64(val), 10)
	case int64:
		return strconv.FormatInt(val, 10)
	case int:
		return strconv.Itoa(val)
	case uint16:
		return strconv.FormatUint(uint64(val), 10)
	case uint32:
		return strconv.FormatUint(uint64(val), 10)
	case uint64:
		return strconv.FormatUint(val, 10)
	case float32:
		return strconv.FormatFloat(float64(val), 'g', -1, 32)
	case float64:
		return strconv.FormatFloat(val, 'g', -1, 64)
	case decimal.Decimal:
		return val.String()
	case time.Time:
		if val.IsZero() {
			return ""
		}
		return val.Format(time.RFC3339Nano)
	case *big.Int:
		return val.String()
	}
	return ""
}

// IsType reports whether v is acceptable for kind: either a Go value of the
// kind's representation or text that Coerce accepts.
func IsType(kind DataKind, v any) bool {
	if s, ok := v.(string); ok {
		_, err := coerce(kind, s)
		return err == nil
	}
	_, err := normalize(kind, v)
	return err == nil
}

// normalize converts v to the representation of kind. Strings are parsed;
// other Go values must already have the right representation, with the
// exception of plain ints which are range-checked into the integer kinds.
func normalize(kind DataKind, v any) (any, error) {
	if v == nil {
		return Zero(kind), nil
	}
	if s, ok := v.(string); ok {
		return Coerce(kind, s)
	}
	mismatch := errors.Wrapf(errors.ErrTypeMismatch, "%T value %v is not %s", v, v, kind)
	switch kind {
	case String, Unique:
		return nil, mismatch
	case Char:
		if r, ok := v.(rune); ok {
			return r, nil
		}
	case Boolean:
		if b, ok := v.(bool); ok {
			return b, nil
		}
	case Float:
		switch n := v.(type) {
		case float32:
			return n, nil
		case float64:
			return float32(n), nil
		}
	case Double:
		switch n := v.(type) {
		case float64:
			return n, nil
		case float32:
			return float64(n), nil
		}
	case Decimal:
		switch n := v.(type) {
		case decimal.Decimal:
			return n, nil
		case float64:
			return decimal.NewFromFloat(n), nil
		}
		if i, ok := asInt64(v); ok {
			return decimal.NewFromInt(i), nil
		}
	case DateTime:
		if t, ok := v.(time.Time); ok {
			return t, nil
		}
	case BigInteger:
		if b, ok := v.(*big.Int); ok {
			return new(big.Int).Set(b), nil
		}
		if i, ok := asInt64(v); ok {
			return big.NewInt(i), nil
		}
	default:
		if i, ok := asInt64(v); ok {
			out, err := coerce(kind, strconv.FormatInt(i, 10))
			if err == nil {
				return out, nil
			}
		}
		if u, ok := v.(uint64); ok {
			out, err := coerce(kind, strconv.FormatUint(u, 10))
			if err == nil {
				return out, nil
			}
		}
	}
	return nil, mismatch
}

func asInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint8:
		return int64(n), true
	case uint16:
		return int64(n), true
	case uint32:
		return int64(n), true
	}
	return 0, false
}
