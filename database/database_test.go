package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/vegasq/mochadb/errors"
	"github.com/vegasq/mochadb/model"
	"github.com/vegasq/mochadb/store/filestore"
	"github.com/vegasq/mochadb/store/memstore"
)

func openTest(t *testing.T) (*Database, *memstore.Store, *[]Change) {
	t.Helper()
	backend := memstore.New()
	var changes []Change
	db, err := Open(backend, Options{
		Logger:   zaptest.NewLogger(t).Sugar(),
		Observer: ObserverFunc(func(c Change) { changes = append(changes, c) }),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, backend, &changes
}

func seedPersons(t *testing.T, db *Database) {
	t.Helper()
	tbl, err := model.NewTable("Persons",
		model.MustColumn("ID", model.AutoInt),
		model.MustColumn("Name", model.String),
		model.MustColumn("Age", model.Int32),
	)
	require.NoError(t, err)
	require.NoError(t, db.AddTable(tbl))
	require.NoError(t, db.AddRow("Persons", nil, "Ann", 30))
	require.NoError(t, db.AddRow("Persons", nil, "Bob", 25))
}

func TestWriteThroughAndObserver(t *testing.T) {
	db, backend, changes := openTest(t)

	require.NoError(t, db.CreateTable("Persons"))
	require.NoError(t, db.SetTableDescription("Persons", "people"))

	assert.Equal(t, 2, backend.Saves())
	require.Len(t, *changes, 2)
	assert.Equal(t, Change{Op: "CreateTable", Target: "Tables/Persons"}, (*changes)[0])
	assert.Equal(t, "SetTableDescription", (*changes)[1].Op)

	saved := backend.Snapshot().Child("Tables").Child("Persons")
	require.NotNil(t, saved)
	assert.Equal(t, "people", saved.Attr("Description"))
}

func TestClosedDatabase(t *testing.T) {
	db, _, _ := openTest(t)
	require.NoError(t, db.Close())

	_, err := db.GetTables()
	assert.True(t, errors.IsConnection(err))
	assert.True(t, errors.IsConnection(db.CreateTable("X")))
	assert.False(t, db.IsConnected())
}

func TestPasswordGate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "locked.mochadb")
	db, err := Open(filestore.New(path, "k"), Options{Logger: zaptest.NewLogger(t).Sugar()})
	require.NoError(t, err)
	require.NoError(t, db.SetPassword("hunter2"))
	require.NoError(t, db.Close())

	_, err = Open(filestore.New(path, "k"), Options{Logger: zaptest.NewLogger(t).Sugar()})
	assert.True(t, errors.IsConnection(err))

	db, err = Open(filestore.New(path, "k"), Options{Password: "hunter2", Logger: zaptest.NewLogger(t).Sugar()})
	require.NoError(t, err)
	pw, err := db.Password()
	require.NoError(t, err)
	assert.Equal(t, "hunter2", pw)
	require.NoError(t, db.Close())
}

func TestTables(t *testing.T) {
	db, _, _ := openTest(t)
	seedPersons(t, db)

	err := db.CreateTable("Persons")
	assert.True(t, errors.IsAlreadyExists(err))
	assert.True(t, errors.IsConstraint(err))
	assert.True(t, errors.IsConstraint(db.CreateTable("Sectors")))
	assert.True(t, errors.IsConstraint(db.CreateTable("bad:name")))

	tbl, err := db.GetTable("Persons")
	require.NoError(t, err)
	assert.Equal(t, []string{"ID", "Name", "Age"}, tbl.ColumnNames())
	assert.Equal(t, 2, tbl.RowCount())

	require.NoError(t, db.RenameTable("Persons", "People"))
	ok, _ := db.ExistsTable("Persons")
	assert.False(t, ok)
	n, _ := db.TableCount()
	assert.Equal(t, 1, n)

	require.NoError(t, db.RemoveTable("People"))
	_, err = db.GetTable("People")
	assert.True(t, errors.IsNotFound(err))
}

func TestRowsAndData(t *testing.T) {
	db, _, _ := openTest(t)
	seedPersons(t, db)

	row, err := db.GetRow("Persons", 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"2", "Bob", "25"}, row.Texts())

	err = db.AddRow("Persons", nil, "Cid", "old")
	assert.True(t, errors.IsTypeMismatch(err))
	count, _ := db.RowCount("Persons")
	assert.Equal(t, 2, count, "failed row is not written")

	require.NoError(t, db.UpdateData("Persons", "Name", 0, "Ana"))
	cell, err := db.GetData("Persons", "Name", 0)
	require.NoError(t, err)
	assert.Equal(t, "Ana", cell.Text())

	assert.True(t, errors.IsConstraint(db.UpdateData("Persons", "ID", 0, 10)))
	assert.True(t, errors.IsNotFound(db.UpdateData("Persons", "Name", 9, "x")))

	require.NoError(t, db.AddRow("Persons", "99", "Dan", 40))
	id, _ := db.GetData("Persons", "ID", 2)
	assert.Equal(t, int64(3), id.Value(), "AutoInt ignores the supplied value")

	exists, err := db.ExistsData("Persons", "Name", "Dan")
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, db.RemoveRow("Persons", 0))
	datas, err := db.GetDatas("Persons", "Name")
	require.NoError(t, err)
	require.Len(t, datas, 2)
	assert.Equal(t, "Bob", datas[0].Text())
}

func TestAddDataPadsOnRead(t *testing.T) {
	db, _, _ := openTest(t)
	seedPersons(t, db)

	require.NoError(t, db.AddData("Persons", "Name", "Eve"))
	n, _ := db.DataCount("Persons", "Name")
	assert.Equal(t, 3, n)
	n, _ = db.DataCount("Persons", "Age")
	assert.Equal(t, 2, n)

	row, err := db.GetRow("Persons", 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"3", "Eve", "0"}, row.Texts())
}

func TestColumns(t *testing.T) {
	db, _, _ := openTest(t)
	seedPersons(t, db)

	require.NoError(t, db.AddColumn("Persons", model.MustColumn("City", model.String)))
	city, err := db.GetColumn("Persons", "City")
	require.NoError(t, err)
	assert.Equal(t, 2, city.Len(), "new column is padded to the row count")

	require.NoError(t, db.CreateColumn("Persons", "Nick"))
	assert.True(t, errors.IsAlreadyExists(db.CreateColumn("Persons", "Nick")))
	require.NoError(t, db.RenameColumn("Persons", "Nick", "Alias"))
	ok, _ := db.ExistsColumn("Persons", "Alias")
	assert.True(t, ok)
	ok, _ = db.ExistsColumn("Nope", "Alias")
	assert.False(t, ok)

	require.NoError(t, db.SetColumnKind("Persons", "Age", model.String))
	kind, _ := db.ColumnKind("Persons", "Age")
	assert.Equal(t, model.String, kind)

	next, err := db.AutoIntState("Persons", "ID")
	require.NoError(t, err)
	assert.Equal(t, int64(3), next)

	require.NoError(t, db.SetColumnDescription("Persons", "Alias", "nickname"))
	desc, _ := db.ColumnDescription("Persons", "Alias")
	assert.Equal(t, "nickname", desc)

	first, _ := db.FirstColumnName("Persons")
	assert.Equal(t, "ID", first)

	require.NoError(t, db.RemoveColumn("Persons", "Alias"))
	n, _ := db.ColumnCount("Persons")
	assert.Equal(t, 4, n)

	require.NoError(t, db.ResetTable("Persons"))
	n, _ = db.ColumnCount("Persons")
	assert.Equal(t, 0, n)
}

func TestSectors(t *testing.T) {
	db, _, _ := openTest(t)

	s, err := model.NewSector("Motd", "hello", "greeting")
	require.NoError(t, err)
	require.NoError(t, db.AddSector(s))
	assert.True(t, errors.IsAlreadyExists(db.AddSector(s)))

	require.NoError(t, db.SetSectorData("Motd", "hi"))
	data, _ := db.SectorData("Motd")
	assert.Equal(t, "hi", data)

	require.NoError(t, db.RenameSector("Motd", "Banner"))
	got, err := db.GetSector("Banner")
	require.NoError(t, err)
	assert.Equal(t, &model.Sector{Name: "Banner", Data: "hi", Description: "greeting"}, got)

	require.NoError(t, db.ClearSectors())
	n, _ := db.SectorCount()
	assert.Equal(t, 0, n)
	assert.True(t, errors.IsNotFound(db.RemoveSector("Banner")))
}

func TestStacks(t *testing.T) {
	db, _, _ := openTest(t)
	require.NoError(t, db.CreateStack("Config"))

	require.NoError(t, db.AddStackItem("Config", "", &model.StackItem{Name: "server"}))
	require.NoError(t, db.AddStackItem("Config", "server", &model.StackItem{Name: "port", Value: "80"}))
	assert.True(t, errors.IsNotFound(db.AddStackItem("Config", "missing", &model.StackItem{Name: "x"})))

	require.NoError(t, db.SetStackItemValue("Config", "server/port", "8080"))
	v, err := db.StackItemValue("Config", "server/port")
	require.NoError(t, err)
	assert.Equal(t, "8080", v)

	require.NoError(t, db.SetStackItemDescription("Config", "server/port", "listen port"))
	d, _ := db.StackItemDescription("Config", "server/port")
	assert.Equal(t, "listen port", d)

	require.NoError(t, db.RenameStackItem("Config", "server/port", "listen"))
	ok, _ := db.ExistsStackItem("Config", "server/listen")
	assert.True(t, ok)

	stack, err := db.GetStack("Config")
	require.NoError(t, err)
	item, err := stack.Item("server/listen")
	require.NoError(t, err)
	assert.Equal(t, "8080", item.Value)

	require.NoError(t, db.RemoveStackItem("Config", "server/listen"))
	ok, _ = db.ExistsStackItem("Config", "server/listen")
	assert.False(t, ok)

	require.NoError(t, db.RenameStack("Config", "Settings"))
	require.NoError(t, db.ClearStacks())
	n, _ := db.StackCount()
	assert.Equal(t, 0, n)
}

func TestResetAndDescription(t *testing.T) {
	db, _, _ := openTest(t)
	seedPersons(t, db)
	require.NoError(t, db.SetDescription("demo"))
	d, _ := db.Description()
	assert.Equal(t, "demo", d)

	require.NoError(t, db.ResetTables())
	n, _ := db.ColumnCount("Persons")
	assert.Equal(t, 0, n)

	require.NoError(t, db.Reset())
	n, _ = db.TableCount()
	assert.Equal(t, 0, n)
	d, _ = db.Description()
	assert.Equal(t, "", d)
}

func TestRemoveItem(t *testing.T) {
	db, _, _ := openTest(t)
	seedPersons(t, db)
	require.NoError(t, db.CreateStack("S"))

	tbl, _ := db.GetTable("Persons")
	age, _ := tbl.Column("Age")
	require.NoError(t, db.RemoveItem(&TableColumn{Table: "Persons", Column: age}))
	n, _ := db.ColumnCount("Persons")
	assert.Equal(t, 2, n)

	stack, _ := db.GetStack("S")
	require.NoError(t, db.RemoveItem(stack))
	require.NoError(t, db.RemoveItem(tbl))
	assert.True(t, errors.IsNotProcessable(db.RemoveItem("scalar")))
}

func TestPartialFailureKeepsCompletedSteps(t *testing.T) {
	db, backend, _ := openTest(t)
	require.NoError(t, db.CreateTable("T"))
	require.NoError(t, db.CreateColumn("T", "A"))
	err := db.CreateColumn("T", "A")
	require.Error(t, err)

	// The first column stays persisted; there is no rollback.
	assert.NotNil(t, backend.Snapshot().Child("Tables").Child("T").Child("A"))
}
