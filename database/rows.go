package database

import (
	"github.com/vegasq/mochadb/errors"
	"github.com/vegasq/mochadb/model"
	"github.com/vegasq/mochadb/store"
)

// AddRow appends one value per column. AutoInt columns ignore their value.
func (db *Database) AddRow(table string, values ...any) error {
	return db.editTable("AddRow", table, func(t *model.Table) error {
		return t.AppendRow(values...)
	})
}

// RemoveRow deletes row index from every column.
func (db *Database) RemoveRow(table string, index int) error {
	return db.editTable("RemoveRow", table, func(t *model.Table) error {
		return t.RemoveRow(index)
	})
}

// GetRow returns row index. Cells missing from short columns read as the
// column's zero value.
func (db *Database) GetRow(table string, index int) (model.Row, error) {
	t, err := db.GetTable(table)
	if err != nil {
		return model.Row{}, err
	}
	return t.Row(index)
}

// GetRows returns every row of a table.
func (db *Database) GetRows(table string) ([]model.Row, error) {
	t, err := db.GetTable(table)
	if err != nil {
		return nil, err
	}
	return t.Rows(), nil
}

// RowCount returns the number of rows of a table.
func (db *Database) RowCount(table string) (int, error) {
	t, err := db.GetTable(table)
	if err != nil {
		return 0, err
	}
	return t.RowCount(), nil
}

// AddData appends a value to one column. Reads pad the other columns with
// their zero value, and the next edit of the table stores that padding.
func (db *Database) AddData(table, column string, value any) error {
	return db.editTable("AddData", table, func(t *model.Table) error {
		c, err := t.Column(column)
		if err != nil {
			return err
		}
		return c.Append(value)
	})
}

// UpdateData replaces the value at index of a column. AutoInt columns
// cannot be written.
func (db *Database) UpdateData(table, column string, index int, value any) error {
	return db.editTable("UpdateData", table, func(t *model.Table) error {
		c, err := t.Column(column)
		if err != nil {
			return err
		}
		return c.Set(index, value)
	})
}

// GetData returns the cell at index of a column.
func (db *Database) GetData(table, column string, index int) (model.Cell, error) {
	c, err := db.GetColumn(table, column)
	if err != nil {
		return model.Cell{}, err
	}
	return c.Cell(index)
}

// GetDatas returns every cell of a column.
func (db *Database) GetDatas(table, column string) ([]model.Cell, error) {
	c, err := db.GetColumn(table, column)
	if err != nil {
		return nil, err
	}
	return columnCells(c), nil
}

// TableDatas returns the cells of every column of a table, column by column.
func (db *Database) TableDatas(table string) ([]model.Cell, error) {
	t, err := db.GetTable(table)
	if err != nil {
		return nil, err
	}
	var out []model.Cell
	for _, c := range t.Columns() {
		out = append(out, columnCells(c)...)
	}
	return out, nil
}

// AllDatas returns the cells of every table, table by table.
func (db *Database) AllDatas() ([]model.Cell, error) {
	names, err := db.TableNames()
	if err != nil {
		return nil, err
	}
	var out []model.Cell
	for _, name := range names {
		cells, err := db.TableDatas(name)
		if err != nil {
			return nil, err
		}
		out = append(out, cells...)
	}
	return out, nil
}

// DataCount returns the number of cells stored in a column.
func (db *Database) DataCount(table, column string) (int, error) {
	n, err := db.columnNode(table, column)
	if err != nil {
		return 0, err
	}
	return len(n.ChildrenNamed(dataNode)), nil
}

// DataIndex returns the first index holding value, or -1.
func (db *Database) DataIndex(table, column string, value any) (int, error) {
	c, err := db.GetColumn(table, column)
	if err != nil {
		return -1, err
	}
	return c.IndexOf(value), nil
}

// ExistsData reports whether a column holds value.
func (db *Database) ExistsData(table, column string, value any) (bool, error) {
	i, err := db.DataIndex(table, column, value)
	if err != nil {
		return false, err
	}
	return i >= 0, nil
}

// RemoveItem removes an entity returned by a query: a table, sector, stack
// or a column of a stored table.
func (db *Database) RemoveItem(item any) error {
	switch v := item.(type) {
	case *model.Table:
		return db.RemoveTable(v.Name)
	case *model.Sector:
		return db.RemoveSector(v.Name)
	case *model.Stack:
		return db.RemoveStack(v.Name)
	case *TableColumn:
		return db.RemoveColumn(v.Table, v.Column.Name)
	}
	return errors.Wrapf(errors.ErrNotProcessable, "cannot remove %T", item)
}

// TableColumn is a column together with the stored table it belongs to.
type TableColumn struct {
	Table  string
	Column *model.Column
}

// Path returns the document path of the column.
func (tc *TableColumn) Path() string {
	return store.JoinPath(store.TablesNode, tc.Table, tc.Column.Name)
}

func columnCells(c *model.Column) []model.Cell {
	out := make([]model.Cell, 0, c.Len())
	for i := 0; i < c.Len(); i++ {
		cell, _ := c.Cell(i)
		out = append(out, cell)
	}
	return out
}
