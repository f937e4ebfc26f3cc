package output

import (
	"fmt"
	"sort"

	"github.com/vegasq/mochadb/database"
	"github.com/vegasq/mochadb/model"
)

// Records is a tabular view of a result. Row values are model.Cell when
// they come from a table and plain Go values otherwise.
type Records struct {
	Columns []string
	Rows    [][]any
}

// ValueColumn names the single column of scalar results
const ValueColumn = "Value"

// FromTable returns the rows of t under its column names.
func FromTable(t *model.Table) Records {
	rec := Records{Columns: t.ColumnNames()}
	for _, row := range t.Rows() {
		rec.Rows = append(rec.Rows, cellsOf(row))
	}
	return rec
}

// FromValue converts any query or command result into records. Entities
// render as one row per entity; a stack renders one row per item.
func FromValue(v any) Records {
	switch val := v.(type) {
	case nil:
		return Records{}
	case Records:
		return val
	case *model.Table:
		return FromTable(val)
	case []*model.Table:
		rec := Records{Columns: []string{"Name", "Description", "Columns", "Rows"}}
		for _, t := range val {
			rec.Rows = append(rec.Rows, []any{t.Name, t.Description, t.ColumnCount(), t.RowCount()})
		}
		return rec
	case *model.Column:
		return columnRecords(val)
	case []*model.Column:
		rec := Records{Columns: []string{"Name", "DataType", "Description", "Datas"}}
		for _, c := range val {
			rec.Rows = append(rec.Rows, []any{c.Name, c.Kind(), c.Description, c.Len()})
		}
		return rec
	case *database.TableColumn:
		rec := Records{Columns: []string{"Table", "Column", "DataType", "Datas"}}
		rec.Rows = [][]any{{val.Table, val.Column.Name, val.Column.Kind(), val.Column.Len()}}
		return rec
	case model.Row:
		return Records{Columns: val.Names(), Rows: [][]any{cellsOf(val)}}
	case []model.Row:
		rec := Records{}
		for i, row := range val {
			if i == 0 {
				rec.Columns = row.Names()
			}
			rec.Rows = append(rec.Rows, cellsOf(row))
		}
		return rec
	case *model.Sector:
		return sectorRecords([]*model.Sector{val})
	case []*model.Sector:
		return sectorRecords(val)
	case *model.Stack:
		rec := Records{Columns: []string{"Path", "Value", "Description"}}
		val.Walk(func(path string, it *model.StackItem) {
			rec.Rows = append(rec.Rows, []any{path, it.Value, it.Description})
		})
		return rec
	case []*model.Stack:
		rec := Records{Columns: []string{"Name", "Description", "Items"}}
		for _, s := range val {
			n := 0
			s.Walk(func(string, *model.StackItem) { n++ })
			rec.Rows = append(rec.Rows, []any{s.Name, s.Description, n})
		}
		return rec
	case *model.StackItem:
		rec := Records{Columns: []string{"Name", "Value", "Description", "Items"}}
		rec.Rows = [][]any{{val.Name, val.Value, val.Description, len(val.Items)}}
		return rec
	case []model.Cell:
		rec := Records{Columns: []string{ValueColumn}}
		for _, c := range val {
			rec.Rows = append(rec.Rows, []any{c})
		}
		return rec
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		row := make([]any, len(keys))
		for i, k := range keys {
			row[i] = val[k]
		}
		return Records{Columns: keys, Rows: [][]any{row}}
	case model.DataKind:
		return Records{Columns: []string{ValueColumn}, Rows: [][]any{{val.String()}}}
	case fmt.Stringer, string, bool, int, int32, int64, float64:
		return Records{Columns: []string{ValueColumn}, Rows: [][]any{{val}}}
	}
	return Records{Columns: []string{ValueColumn}, Rows: [][]any{{fmt.Sprint(v)}}}
}

func cellsOf(row model.Row) []any {
	cells := row.Cells()
	out := make([]any, len(cells))
	for i, c := range cells {
		out[i] = c
	}
	return out
}

func columnRecords(c *model.Column) Records {
	rec := Records{Columns: []string{c.Name}}
	for i := 0; i < c.Len(); i++ {
		cell, err := c.Cell(i)
		if err != nil {
			break
		}
		rec.Rows = append(rec.Rows, []any{cell})
	}
	return rec
}

func sectorRecords(sectors []*model.Sector) Records {
	rec := Records{Columns: []string{"Name", "Data", "Description"}}
	for _, s := range sectors {
		rec.Rows = append(rec.Rows, []any{s.Name, s.Data, s.Description})
	}
	return rec
}
