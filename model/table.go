package model

import (
	"github.com/vegasq/mochadb/errors"
)

// Table is a named, ordered set of columns. Rows are not stored: row i is
// the i-th cell of every column.
type Table struct {
	Name        string
	Description string
	columns     []*Column
}

// NewTable creates a table with the given columns. Column names must be
// unique within the table.
func NewTable(name string, columns ...*Column) (*Table, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}
	t := &Table{Name: name}
	for _, c := range columns {
		if err := t.AddColumn(c); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// NewResultTable creates a table for query results. Result names are not
// persisted, so they skip identifier validation.
func NewResultTable(name string, columns ...*Column) *Table {
	t := &Table{Name: name, columns: append([]*Column(nil), columns...)}
	t.align()
	return t
}

// Columns returns the table's columns in order. The slice is a copy; the
// columns are shared.
func (t *Table) Columns() []*Column {
	out := make([]*Column, len(t.columns))
	copy(out, t.columns)
	return out
}

// ColumnCount returns the number of columns.
func (t *Table) ColumnCount() int { return len(t.columns) }

// ColumnNames returns the column names in order.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.columns))
	for i, c := range t.columns {
		names[i] = c.Name
	}
	return names
}

// ColumnIndex returns the position of the named column, or -1.
func (t *Table) ColumnIndex(name string) int {
	for i, c := range t.columns {
		if c.Name == name {
			return i
		}
	}
	return -1
}

// Column returns the named column.
func (t *Table) Column(name string) (*Column, error) {
	if i := t.ColumnIndex(name); i >= 0 {
		return t.columns[i], nil
	}
	return nil, errors.Wrapf(errors.ErrNotFound, "table %q has no column %q", t.Name, name)
}

// ColumnAt returns the column at position i.
func (t *Table) ColumnAt(i int) (*Column, error) {
	if i < 0 || i >= len(t.columns) {
		return nil, errors.Wrapf(errors.ErrNotFound, "table %q has no column index %d", t.Name, i)
	}
	return t.columns[i], nil
}

// AddColumn appends a column, padding it with zero values (or AutoInt
// numbers) up to the current row count.
func (t *Table) AddColumn(c *Column) error {
	if c == nil {
		return errors.Wrap(errors.ErrTypeMismatch, "nil column")
	}
	if t.ColumnIndex(c.Name) >= 0 {
		return errors.Wrapf(errors.ErrAlreadyExists, "table %q already has column %q", t.Name, c.Name)
	}
	c.pad(t.RowCount())
	t.columns = append(t.columns, c)
	return nil
}

// RemoveColumn deletes the named column.
func (t *Table) RemoveColumn(name string) error {
	i := t.ColumnIndex(name)
	if i < 0 {
		return errors.Wrapf(errors.ErrNotFound, "table %q has no column %q", t.Name, name)
	}
	t.columns = append(t.columns[:i], t.columns[i+1:]...)
	return nil
}

// RenameColumn renames a column, keeping names unique.
func (t *Table) RenameColumn(oldName, newName string) error {
	c, err := t.Column(oldName)
	if err != nil {
		return err
	}
	if oldName == newName {
		return nil
	}
	if err := ValidateName(newName); err != nil {
		return err
	}
	if t.ColumnIndex(newName) >= 0 {
		return errors.Wrapf(errors.ErrAlreadyExists, "table %q already has column %q", t.Name, newName)
	}
	c.Name = newName
	return nil
}

// RowCount returns the length of the longest column.
func (t *Table) RowCount() int {
	n := 0
	for _, c := range t.columns {
		if c.Len() > n {
			n = c.Len()
		}
	}
	return n
}

// Row returns a view of row i.
func (t *Table) Row(i int) (Row, error) {
	if i < 0 || i >= t.RowCount() {
		return Row{}, errors.Wrapf(errors.ErrNotFound, "table %q has no row %d", t.Name, i)
	}
	return Row{src: t, index: i}, nil
}

// Rows returns a view of every row. The views read through to the columns,
// so they must be consumed before the table is modified.
func (t *Table) Rows() []Row {
	n := t.RowCount()
	rows := make([]Row, n)
	for i := range rows {
		rows[i] = Row{src: t, index: i}
	}
	return rows
}

// AppendRow appends one value per column. Values are validated against
// every column before any column is modified.
func (t *Table) AppendRow(values ...any) error {
	if len(values) != len(t.columns) {
		return errors.Wrapf(errors.ErrConstraint, "table %q has %d columns, got %d values", t.Name, len(t.columns), len(values))
	}
	normalized := make([]any, len(values))
	for i, c := range t.columns {
		if c.kind == AutoInt {
			continue
		}
		val, err := normalize(c.kind, values[i])
		if err != nil {
			return errors.Wrapf(err, "column %q", c.Name)
		}
		if err := c.checkUnique(val, -1); err != nil {
			return err
		}
		normalized[i] = val
	}
	t.align()
	for i, c := range t.columns {
		if c.kind == AutoInt {
			c.appendRaw(c.NextAutoInt())
			continue
		}
		c.appendRaw(normalized[i])
	}
	return nil
}

// RemoveRow deletes row i from every column.
func (t *Table) RemoveRow(i int) error {
	if i < 0 || i >= t.RowCount() {
		return errors.Wrapf(errors.ErrNotFound, "table %q has no row %d", t.Name, i)
	}
	for _, c := range t.columns {
		if i < c.Len() {
			_ = c.RemoveAt(i)
		}
	}
	return nil
}

// SetRows replaces the table's contents with rows. It is the single point
// where row-level results are written back into the columns. Every row must
// have exactly one cell per column; the rows may come from this table or
// from any table with a compatible shape.
func (t *Table) SetRows(rows []Row) error {
	snapshot := make([][]any, len(rows))
	for r, row := range rows {
		if row.Len() != len(t.columns) {
			return errors.Wrapf(errors.ErrConstraint, "row %d has %d cells, table %q has %d columns", r, row.Len(), t.Name, len(t.columns))
		}
		vals := make([]any, len(t.columns))
		for j, c := range t.columns {
			cell := row.Cell(j)
			if cell.kind == c.kind {
				vals[j] = cell.Value()
			} else {
				vals[j] = TryCoerce(c.kind, cell.Text())
			}
		}
		snapshot[r] = vals
	}
	for _, c := range t.columns {
		c.Clear()
	}
	for _, vals := range snapshot {
		for j, c := range t.columns {
			c.appendRaw(vals[j])
		}
	}
	return nil
}

// Clear removes every row, keeping the columns.
func (t *Table) Clear() {
	for _, c := range t.columns {
		c.Clear()
	}
}

// Clone returns a deep copy of the table.
func (t *Table) Clone() *Table {
	out := &Table{Name: t.Name, Description: t.Description}
	for _, c := range t.columns {
		out.columns = append(out.columns, c.Clone())
	}
	return out
}

// align pads short columns so every column has RowCount cells.
func (t *Table) align() {
	n := t.RowCount()
	for _, c := range t.columns {
		c.pad(n)
	}
}
