// Package model defines the typed data model of a mochadb database.
//
// A Table is an ordered set of Columns. Every Column has a DataKind and a
// sequence of values of that kind; rows are never stored, they are views
// (Row) over the i-th value of every column. Two kinds carry behaviour on
// top of their representation:
//
//   - AutoInt columns ignore appended payloads and number their cells
//     1, 2, 3, ... continuing from the last cell. Writing a cell directly
//     is a constraint violation.
//   - Unique columns reject a non-empty value that is already present.
//     Empty values may repeat.
//
// Text is converted to kind values with Coerce, and back with Format:
//
//	v, err := model.Coerce(model.Int32, "42")   // int32(42)
//	s := model.Format(model.Int32, v)           // "42"
//
// Row-level transforms (filtering, ordering, grouping) work on the slice
// returned by Table.Rows and write the result back with Table.SetRows,
// which is the only place rows are distributed back into columns.
//
// Sectors (named text blobs) and Stacks (named item trees) share the same
// naming rules as tables and columns: see ValidateName.
package model
