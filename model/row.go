package model

// Row is a non-owning view of one position across a table's columns.
// Missing cells in short columns read as the column kind's zero value.
type Row struct {
	src   *Table
	index int
}

// Index returns the row's position in its table.
func (r Row) Index() int { return r.index }

// Len returns the number of cells, which is the table's column count.
func (r Row) Len() int {
	if r.src == nil {
		return 0
	}
	return len(r.src.columns)
}

// Cell returns the cell in column j. Out of range columns yield an empty
// String cell.
func (r Row) Cell(j int) Cell {
	if r.src == nil || j < 0 || j >= len(r.src.columns) {
		return Cell{}
	}
	c := r.src.columns[j]
	v := c.Value(r.index)
	if v == nil {
		v = Zero(c.kind)
	}
	return Cell{kind: c.kind, value: v}
}

// Cells returns a snapshot of every cell in the row.
func (r Row) Cells() []Cell {
	out := make([]Cell, r.Len())
	for j := range out {
		out[j] = r.Cell(j)
	}
	return out
}

// Values returns the Go value of every cell in the row.
func (r Row) Values() []any {
	out := make([]any, r.Len())
	for j := range out {
		out[j] = r.Cell(j).Value()
	}
	return out
}

// Texts returns the canonical text of every cell in the row.
func (r Row) Texts() []string {
	out := make([]string, r.Len())
	for j := range out {
		out[j] = r.Cell(j).Text()
	}
	return out
}

// Map returns the row keyed by column name.
func (r Row) Map() map[string]any {
	out := make(map[string]any, r.Len())
	if r.src == nil {
		return out
	}
	for j, c := range r.src.columns {
		out[c.Name] = r.Cell(j).Value()
	}
	return out
}

// Names returns the column names of the row's table.
func (r Row) Names() []string {
	if r.src == nil {
		return nil
	}
	return r.src.ColumnNames()
}
