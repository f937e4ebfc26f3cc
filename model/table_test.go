package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vegasq/mochadb/errors"
)

func newPersons(t *testing.T) *Table {
	t.Helper()
	tbl, err := NewTable("Persons",
		MustColumn("ID", AutoInt),
		MustColumn("Name", String),
		MustColumn("Age", Int32),
	)
	require.NoError(t, err)
	require.NoError(t, tbl.AppendRow(nil, "Ann", 30))
	require.NoError(t, tbl.AppendRow(nil, "Bob", "25"))
	require.NoError(t, tbl.AppendRow(nil, "Cid", int32(41)))
	return tbl
}

func TestReservedTableName(t *testing.T) {
	_, err := NewTable("Sectors")
	require.Error(t, err)
	assert.True(t, errors.IsConstraint(err))
}

func TestAppendRowIsAllOrNothing(t *testing.T) {
	tbl := newPersons(t)

	err := tbl.AppendRow(nil, "Dan", "not a number")
	require.Error(t, err)
	assert.True(t, errors.IsTypeMismatch(err))
	assert.Equal(t, 3, tbl.RowCount())
	for _, c := range tbl.Columns() {
		assert.Equal(t, 3, c.Len(), c.Name)
	}

	err = tbl.AppendRow("Dan")
	assert.True(t, errors.IsConstraint(err))
}

func TestRowsAreViews(t *testing.T) {
	tbl := newPersons(t)
	rows := tbl.Rows()
	require.Len(t, rows, 3)

	assert.Equal(t, []string{"2", "Bob", "25"}, rows[1].Texts())
	assert.Equal(t, map[string]any{"ID": int64(1), "Name": "Ann", "Age": int32(30)}, rows[0].Map())

	name, err := tbl.Column("Name")
	require.NoError(t, err)
	require.NoError(t, name.Set(1, "Bea"))
	assert.Equal(t, "Bea", rows[1].Cell(1).Text())
}

func TestRowColumnRoundTrip(t *testing.T) {
	tbl := newPersons(t)
	before := make([][]any, tbl.ColumnCount())
	for i, c := range tbl.Columns() {
		before[i] = c.Values()
	}

	require.NoError(t, tbl.SetRows(tbl.Rows()))

	for i, c := range tbl.Columns() {
		assert.Equal(t, before[i], c.Values(), c.Name)
	}
}

func TestSetRowsReorders(t *testing.T) {
	tbl := newPersons(t)
	rows := tbl.Rows()

	require.NoError(t, tbl.SetRows([]Row{rows[2], rows[0]}))

	assert.Equal(t, 2, tbl.RowCount())
	name, _ := tbl.Column("Name")
	id, _ := tbl.Column("ID")
	assert.Equal(t, []string{"Cid", "Ann"}, name.Texts())
	assert.Equal(t, []any{int64(3), int64(1)}, id.Values(), "AutoInt values travel with their rows")
}

func TestSetRowsFromOtherTable(t *testing.T) {
	src := NewResultTable("src", MustColumn("A", String), MustColumn("B", String))
	require.NoError(t, src.AppendRow("x", "7"))

	dst := NewResultTable("dst", MustColumn("A", String), MustColumn("B", Int32))
	require.NoError(t, dst.SetRows(src.Rows()))
	b, _ := dst.Column("B")
	assert.Equal(t, []any{int32(7)}, b.Values())

	narrow := NewResultTable("narrow", MustColumn("A", String))
	err := narrow.SetRows(src.Rows())
	assert.True(t, errors.IsConstraint(err))
}

func TestAddColumnPads(t *testing.T) {
	tbl := newPersons(t)

	require.NoError(t, tbl.AddColumn(MustColumn("City", String)))
	require.NoError(t, tbl.AddColumn(MustColumn("Seq", AutoInt)))

	city, _ := tbl.Column("City")
	seq, _ := tbl.Column("Seq")
	assert.Equal(t, []string{"", "", ""}, city.Texts())
	assert.Equal(t, []any{int64(1), int64(2), int64(3)}, seq.Values())

	err := tbl.AddColumn(MustColumn("City", String))
	assert.True(t, errors.IsAlreadyExists(err))
}

func TestRenameAndRemoveColumn(t *testing.T) {
	tbl := newPersons(t)

	require.NoError(t, tbl.RenameColumn("Name", "FullName"))
	assert.Equal(t, []string{"ID", "FullName", "Age"}, tbl.ColumnNames())
	assert.True(t, errors.IsAlreadyExists(tbl.RenameColumn("FullName", "Age")))
	assert.True(t, errors.IsConstraint(tbl.RenameColumn("Age", "Tables")))

	require.NoError(t, tbl.RemoveColumn("ID"))
	assert.Equal(t, []string{"FullName", "Age"}, tbl.ColumnNames())
	assert.True(t, errors.IsNotFound(tbl.RemoveColumn("ID")))
}

func TestRemoveRow(t *testing.T) {
	tbl := newPersons(t)
	require.NoError(t, tbl.RemoveRow(0))

	row, err := tbl.Row(0)
	require.NoError(t, err)
	assert.Equal(t, []string{"2", "Bob", "25"}, row.Texts())
	assert.True(t, errors.IsNotFound(tbl.RemoveRow(9)))
}

func TestCloneIsDeep(t *testing.T) {
	tbl := newPersons(t)
	cp := tbl.Clone()
	require.NoError(t, cp.RemoveRow(0))
	assert.Equal(t, 3, tbl.RowCount())
	assert.Equal(t, 2, cp.RowCount())
}

func TestStackItems(t *testing.T) {
	s, err := NewStack("Config", "")
	require.NoError(t, err)

	server, _ := NewStackItem("server", "", "")
	port, _ := NewStackItem("port", "8080", "listen port")
	require.NoError(t, s.AddItem("", server))
	require.NoError(t, s.AddItem("server", port))
	assert.True(t, errors.IsAlreadyExists(s.AddItem("server", &StackItem{Name: "port"})))

	got, err := s.Item("server/port")
	require.NoError(t, err)
	assert.Equal(t, "8080", got.Value)

	require.NoError(t, s.RenameItem("server/port", "listen"))
	_, err = s.Item("server/port")
	assert.True(t, errors.IsNotFound(err))

	var paths []string
	s.Walk(func(path string, _ *StackItem) { paths = append(paths, path) })
	assert.Equal(t, []string{"server", "server/listen"}, paths)

	require.NoError(t, s.RemoveItem("server"))
	assert.Empty(t, s.Items)
}
