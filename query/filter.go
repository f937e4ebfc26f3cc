package query

import (
	"slices"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/vegasq/mochadb/errors"
	"github.com/vegasq/mochadb/model"
)

// ApplyFilter keeps the rows of t that pass every term and writes them
// back into t's columns.
func ApplyFilter(t *model.Table, terms []Term) error {
	cols := make([]int, len(terms))
	for i, term := range terms {
		idx, err := term.Column.resolve(t)
		if err != nil {
			return errors.Wrapf(err, "MUST %s", term.Func)
		}
		cols[i] = idx
	}

	var kept []model.Row
	for _, row := range t.Rows() {
		pass := true
		for i, term := range terms {
			ok, err := term.Pass(row.Cell(cols[i]))
			if err != nil {
				return errors.Wrapf(err, "row %d", row.Index())
			}
			if !ok {
				pass = false
				break
			}
		}
		if pass {
			kept = append(kept, row)
		}
	}
	return t.SetRows(kept)
}

// Pass evaluates the term against one cell. Numeric functions fail with
// ErrNotProcessable when the cell does not hold a number.
func (t Term) Pass(cell model.Cell) (bool, error) {
	switch t.Func {
	case FuncStartsWith:
		return strings.HasPrefix(cell.Text(), t.Text), nil
	case FuncEndsWith:
		return strings.HasSuffix(cell.Text(), t.Text), nil
	}

	v, err := cellDecimal(cell)
	if err != nil {
		return false, errors.Wrapf(err, "%s", t.Func)
	}
	switch t.Func {
	case FuncEqual:
		return v.Equal(t.Num[0]), nil
	case FuncNotEqual:
		return !v.Equal(t.Num[0]), nil
	case FuncBigger:
		// Inclusive.
		return v.GreaterThanOrEqual(t.Num[0]), nil
	case FuncLower:
		return v.LessThanOrEqual(t.Num[0]), nil
	case FuncBetween:
		return v.GreaterThanOrEqual(t.Num[0]) && v.LessThanOrEqual(t.Num[1]), nil
	}
	return false, errors.Wrapf(errors.ErrNotProcessable, "unsupported function %d", int(t.Func))
}

func cellDecimal(cell model.Cell) (decimal.Decimal, error) {
	switch cell.Kind() {
	case model.Boolean, model.Char, model.DateTime:
	default:
		if d, ok := model.ToDecimal(cell.Value()); ok {
			return d, nil
		}
	}
	d, err := decimal.NewFromString(strings.TrimSpace(cell.Text()))
	if err != nil {
		return decimal.Zero, errors.Wrapf(errors.ErrNotProcessable, "%q is not a number", cell.Text())
	}
	return d, nil
}

// ApplyOrderBy sorts the rows of t by one column with a stable sort.
// Descending order is the reverse of the ascending result.
func ApplyOrderBy(t *model.Table, spec *SortSpec) error {
	idx, err := spec.Column.resolve(t)
	if err != nil {
		return errors.Wrap(err, "ORDERBY")
	}
	col, err := t.ColumnAt(idx)
	if err != nil {
		return err
	}
	kind := col.Kind()

	rows := t.Rows()
	sort.SliceStable(rows, func(i, j int) bool {
		return model.CompareValues(kind, rows[i].Cell(idx).Value(), rows[j].Cell(idx).Value()) < 0
	})
	if spec.Desc {
		slices.Reverse(rows)
	}
	return t.SetRows(rows)
}
