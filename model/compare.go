package model

import (
	"math/big"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// CompareValues orders two values of kind: numerically for numeric kinds,
// chronologically for DateTime, false before true for Boolean and
// lexically otherwise. It returns -1, 0 or 1.
func CompareValues(kind DataKind, a, b any) int {
	switch kind {
	case Boolean:
		ab, _ := a.(bool)
		bb, _ := b.(bool)
		switch {
		case ab == bb:
			return 0
		case !ab:
			return -1
		default:
			return 1
		}
	case DateTime:
		at, _ := a.(time.Time)
		bt, _ := b.(time.Time)
		return at.Compare(bt)
	case Char:
		ar, _ := a.(rune)
		br, _ := b.(rune)
		return cmpInt(int64(ar), int64(br))
	case String, Unique:
		return strings.Compare(Format(kind, a), Format(kind, b))
	}
	if kind.IsNumeric() {
		ad, aok := ToDecimal(a)
		bd, bok := ToDecimal(b)
		if aok && bok {
			return ad.Cmp(bd)
		}
	}
	return strings.Compare(Format(kind, a), Format(kind, b))
}

// ToDecimal converts a numeric value to a decimal.Decimal. Strings are
// parsed; non-numeric values report false.
func ToDecimal(v any) (decimal.Decimal, bool) {
	switch n := v.(type) {
	case decimal.Decimal:
		return n, true
	case float32:
		return decimal.NewFromFloat32(n), true
	case float64:
		return decimal.NewFromFloat(n), true
	case uint64:
		return decimal.NewFromBigInt(new(big.Int).SetUint64(n), 0), true
	case *big.Int:
		return decimal.NewFromBigInt(n, 0), true
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(n))
		return d, err == nil
	}
	if i, ok := asInt64(v); ok {
		return decimal.NewFromInt(i), true
	}
	return decimal.Zero, false
}

func cmpInt(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
