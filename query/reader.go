package query

// Reader is a forward-only cursor over query results. Items are tables,
// sectors, stacks or table columns depending on the query. A Reader is
// single-pass and not safe for concurrent use.
type Reader struct {
	items []any
	pos   int
}

// NewReader returns a reader positioned before the first item.
func NewReader(items []any) *Reader {
	return &Reader{items: items, pos: -1}
}

// Read advances to the next item and reports whether there was one.
func (r *Reader) Read() bool {
	if r.pos+1 >= len(r.items) {
		return false
	}
	r.pos++
	return true
}

// Value returns the current item, or nil before the first Read.
func (r *Reader) Value() any {
	if r.pos < 0 || r.pos >= len(r.items) {
		return nil
	}
	return r.items[r.pos]
}

// Position returns the zero-based index of the current item, -1 before
// the first Read.
func (r *Reader) Position() int { return r.pos }

// Count returns the total number of items.
func (r *Reader) Count() int { return len(r.items) }
