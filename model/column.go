package model

import (
	"github.com/vegasq/mochadb/errors"
)

// Column is a named, typed sequence of cells. AutoInt columns number their
// cells on append; Unique columns reject non-empty duplicates.
type Column struct {
	Name        string
	Description string
	kind        DataKind
	values      []any
}

// NewColumn creates an empty column after validating its name.
func NewColumn(name string, kind DataKind) (*Column, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}
	if !kind.Valid() {
		return nil, errors.Wrapf(errors.ErrTypeMismatch, "invalid data kind %d", int(kind))
	}
	return &Column{Name: name, kind: kind}, nil
}

// NewResultColumn creates a column without validating its name. Result
// tables built by queries and columns loaded from storage use it.
func NewResultColumn(name string, kind DataKind) *Column {
	return &Column{Name: name, kind: kind}
}

// MustColumn is NewColumn that panics on error, for static schemas.
func MustColumn(name string, kind DataKind) *Column {
	c, err := NewColumn(name, kind)
	if err != nil {
		panic(err)
	}
	return c
}

// Kind returns the column's data kind.
func (c *Column) Kind() DataKind { return c.kind }

// Len returns the number of cells.
func (c *Column) Len() int { return len(c.values) }

// Cell returns the cell at index i.
func (c *Column) Cell(i int) (Cell, error) {
	if i < 0 || i >= len(c.values) {
		return Cell{}, errors.Wrapf(errors.ErrNotFound, "column %q has no index %d", c.Name, i)
	}
	return Cell{kind: c.kind, value: c.values[i]}, nil
}

// Value returns the Go value at index i, or nil when out of range.
func (c *Column) Value(i int) any {
	if i < 0 || i >= len(c.values) {
		return nil
	}
	return c.values[i]
}

// Text returns the canonical text at index i, or "" when out of range.
func (c *Column) Text(i int) string {
	return Format(c.kind, c.Value(i))
}

// Values returns a copy of the column's values.
func (c *Column) Values() []any {
	out := make([]any, len(c.values))
	copy(out, c.values)
	return out
}

// Texts returns the canonical text of every cell.
func (c *Column) Texts() []string {
	out := make([]string, len(c.values))
	for i, v := range c.values {
		out[i] = Format(c.kind, v)
	}
	return out
}

// NextAutoInt returns the value the next append to an AutoInt column gets.
func (c *Column) NextAutoInt() int64 {
	if len(c.values) == 0 {
		return 1
	}
	last, ok := c.values[len(c.values)-1].(int64)
	if !ok {
		if d, ok := ToDecimal(c.values[len(c.values)-1]); ok {
			return d.IntPart() + 1
		}
		return 1
	}
	return last + 1
}

// Append adds a value. For AutoInt columns v is ignored and the next
// sequence number is stored instead.
func (c *Column) Append(v any) error {
	if c.kind == AutoInt {
		c.values = append(c.values, c.NextAutoInt())
		return nil
	}
	val, err := normalize(c.kind, v)
	if err != nil {
		return errors.Wrapf(err, "column %q", c.Name)
	}
	if err := c.checkUnique(val, -1); err != nil {
		return err
	}
	c.values = append(c.values, val)
	return nil
}

// Set replaces the value at index i. AutoInt cells cannot be written.
func (c *Column) Set(i int, v any) error {
	if c.kind == AutoInt {
		return errors.Wrapf(errors.ErrConstraint, "column %q is AutoInt and cannot be written", c.Name)
	}
	if i < 0 || i >= len(c.values) {
		return errors.Wrapf(errors.ErrNotFound, "column %q has no index %d", c.Name, i)
	}
	val, err := normalize(c.kind, v)
	if err != nil {
		return errors.Wrapf(err, "column %q", c.Name)
	}
	if err := c.checkUnique(val, i); err != nil {
		return err
	}
	c.values[i] = val
	return nil
}

// RemoveAt deletes the cell at index i.
func (c *Column) RemoveAt(i int) error {
	if i < 0 || i >= len(c.values) {
		return errors.Wrapf(errors.ErrNotFound, "column %q has no index %d", c.Name, i)
	}
	c.values = append(c.values[:i], c.values[i+1:]...)
	return nil
}

// Clear removes every cell.
func (c *Column) Clear() {
	c.values = nil
}

// IndexOf returns the first index holding a value whose text equals v's
// text after coercion, or -1.
func (c *Column) IndexOf(v any) int {
	val, err := normalize(c.kind, v)
	if err != nil {
		return -1
	}
	want := Format(c.kind, val)
	for i, have := range c.values {
		if Format(c.kind, have) == want {
			return i
		}
	}
	return -1
}

// Contains reports whether v is stored in the column.
func (c *Column) Contains(v any) bool {
	return c.IndexOf(v) >= 0
}

// SetKind changes the column's kind. Existing values are re-coerced to the
// new kind, falling back to its zero value when they do not convert.
// Switching to AutoInt leaves existing values untouched; numbering
// continues from the last cell.
func (c *Column) SetKind(kind DataKind) error {
	if !kind.Valid() {
		return errors.Wrapf(errors.ErrTypeMismatch, "invalid data kind %d", int(kind))
	}
	if kind == c.kind {
		return nil
	}
	old := c.kind
	c.kind = kind
	if kind == AutoInt {
		return nil
	}
	for i, v := range c.values {
		c.values[i] = TryCoerce(kind, Format(old, v))
	}
	return nil
}

// Clone returns a deep copy of the column's cell sequence and metadata.
func (c *Column) Clone() *Column {
	return &Column{
		Name:        c.Name,
		Description: c.Description,
		kind:        c.kind,
		values:      c.Values(),
	}
}

// AppendStored appends persisted text without AutoInt numbering or
// uniqueness checks. Text that does not parse becomes the kind's zero value.
func (c *Column) AppendStored(text string) {
	c.values = append(c.values, TryCoerce(c.kind, text))
}

// appendRaw stores an already normalized value without constraint checks.
// Used when rebuilding columns from rows of the same table.
func (c *Column) appendRaw(v any) {
	c.values = append(c.values, v)
}

// pad extends the column with zero values up to n cells.
func (c *Column) pad(n int) {
	for len(c.values) < n {
		if c.kind == AutoInt {
			c.values = append(c.values, c.NextAutoInt())
			continue
		}
		c.values = append(c.values, Zero(c.kind))
	}
}

func (c *Column) checkUnique(val any, skip int) error {
	if c.kind != Unique {
		return nil
	}
	text := Format(c.kind, val)
	if text == "" {
		return nil
	}
	for i, have := range c.values {
		if i != skip && Format(c.kind, have) == text {
			return errors.Wrapf(errors.ErrUnique, "column %q already holds %q", c.Name, text)
		}
	}
	return nil
}
