package model

// Cell is a typed value. The zero Cell is an empty String.
type Cell struct {
	kind  DataKind
	value any
}

// NewCell builds a cell of kind from v. Strings are coerced; other values
// must already have the kind's Go representation.
func NewCell(kind DataKind, v any) (Cell, error) {
	val, err := normalize(kind, v)
	if err != nil {
		return Cell{}, err
	}
	return Cell{kind: kind, value: val}, nil
}

// TextCell builds a String cell.
func TextCell(s string) Cell {
	return Cell{kind: String, value: s}
}

// Kind returns the cell's declared kind.
func (c Cell) Kind() DataKind { return c.kind }

// Value returns the cell's Go value. A zero Cell returns "".
func (c Cell) Value() any {
	if c.value == nil {
		return Zero(c.kind)
	}
	return c.value
}

// Text returns the canonical text of the value.
func (c Cell) Text() string { return Format(c.kind, c.value) }

// String implements fmt.Stringer.
func (c Cell) String() string { return c.Text() }

// IsEmpty reports whether the cell's text is empty.
func (c Cell) IsEmpty() bool { return c.Text() == "" }

// Set replaces the value, keeping the kind. It fails with a type mismatch
// when v does not satisfy the kind.
func (c *Cell) Set(v any) error {
	val, err := normalize(c.kind, v)
	if err != nil {
		return err
	}
	c.value = val
	return nil
}

// Compare orders c against o by c's kind.
func (c Cell) Compare(o Cell) int {
	return CompareValues(c.kind, c.Value(), o.Value())
}

// Equal reports whether both cells hold the same kind and text.
func (c Cell) Equal(o Cell) bool {
	return c.kind == o.kind && c.Text() == o.Text()
}
