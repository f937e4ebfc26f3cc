package mochaq

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/vegasq/mochadb/database"
	"github.com/vegasq/mochadb/errors"
	"github.com/vegasq/mochadb/model"
	"github.com/vegasq/mochadb/store/memstore"
)

func newTestRunner(t *testing.T) (*Runner, *database.Database) {
	t.Helper()
	log := zaptest.NewLogger(t).Sugar()
	db, err := database.Open(memstore.New(), database.Options{Logger: log})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewRunner(db, log), db
}

func runAll(t *testing.T, r *Runner, cmds ...string) {
	t.Helper()
	for _, c := range cmds {
		require.NoError(t, r.Run(c), c)
	}
}

func texts(cells []model.Cell) []string {
	out := make([]string, len(cells))
	for i, c := range cells {
		out[i] = c.Text()
	}
	return out
}

func TestRunnerTables(t *testing.T) {
	r, db := newTestRunner(t)
	runAll(t, r,
		"CREATETABLE:Persons",
		"CREATECOLUMN:Persons:Name",
		"CREATECOLUMN:Persons:Age",
		"SETCOLUMNDATATYPE:Persons:Age:Int32",
		"ADDDATA:Persons:Name:Ann",
		"ADDDATA:Persons:Age:30",
		"ADDDATA:Persons:Name:Bob",
		"ADDDATA:Persons:Age:25",
		"SETTABLEDESCRIPTION:Persons:people",
	)

	v, err := r.GetRun("TABLECOUNT")
	require.NoError(t, err)
	assert.Equal(t, 1, v)

	v, err = r.GetRun("GETTABLEDESCRIPTION:Persons")
	require.NoError(t, err)
	assert.Equal(t, "people", v)

	v, err = r.GetRun("GETFIRSTCOLUMN_NAME:Persons")
	require.NoError(t, err)
	assert.Equal(t, "Name", v)

	v, err = r.GetRun("GETCOLUMNDATATYPE:Persons:Age")
	require.NoError(t, err)
	assert.Equal(t, model.Int32, v)

	v, err = r.GetRun("ROWCOUNT:Persons")
	require.NoError(t, err)
	assert.Equal(t, 2, v)

	v, err = r.GetRun("GETDATA:Persons:Age:1")
	require.NoError(t, err)
	assert.Equal(t, int32(25), v.(model.Cell).Value())

	runAll(t, r, "RENAMETABLE:Persons:People")
	exists, err := db.ExistsTable("People")
	require.NoError(t, err)
	assert.True(t, exists)

	v, err = r.GetRun("EXISTSTABLE:Persons")
	require.NoError(t, err)
	assert.Equal(t, false, v)
}

func TestRunnerData(t *testing.T) {
	r, _ := newTestRunner(t)
	runAll(t, r,
		"CREATETABLE:Notes",
		"CREATECOLUMN:Notes:Text",
		"ADDDATA:Notes:Text:a",
		"ADDDATA:Notes:Text:b",
		"ADDDATA:Notes:Text:c",
		"UPDATEFIRSTDATA:Notes:Text:first",
		"UPDATELASTDATA:Notes:Text:last",
		"UPDATEDATA:Notes:Text:1:middle",
	)

	v, err := r.GetRun("GETDATAS:Notes:Text")
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "middle", "last"}, texts(v.([]model.Cell)))

	// With only the table given, DATACOUNT counts the first column.
	v, err = r.GetRun("DATACOUNT:Notes")
	require.NoError(t, err)
	assert.Equal(t, 3, v)

	v, err = r.GetRun("EXISTSDATA:Notes:Text:middle")
	require.NoError(t, err)
	assert.Equal(t, true, v)

	runAll(t, r, "CREATETABLE:Tags", "CREATECOLUMN:Tags:Tag", "ADDDATA:Tags:Tag:x")

	v, err = r.GetRun("GETDATAS:Tags")
	require.NoError(t, err)
	assert.Equal(t, []string{"x"}, texts(v.([]model.Cell)))

	v, err = r.GetRun("GETDATAS")
	require.NoError(t, err)
	assert.Len(t, v.([]model.Cell), 4)

	runAll(t, r, "REMOVEROW:Notes:0")
	v, err = r.GetRun("GETDATAS:Notes:Text")
	require.NoError(t, err)
	assert.Equal(t, []string{"middle", "last"}, texts(v.([]model.Cell)))

	err = r.Run("UPDATEDATA:Notes:Text:9:x")
	assert.True(t, errors.IsNotFound(err), "unexpected error: %v", err)
}

func TestRunnerSectorsAndStacks(t *testing.T) {
	r, _ := newTestRunner(t)
	runAll(t, r,
		"ADDSECTOR:Motd:hello:greeting",
		"SETSECTORDATA:Motd:hi",
		"RENAMESECTOR:Motd:Banner",
		"CREATESTACK:Config",
		"SETSTACKDESCRIPTION:Config:app settings",
		"CREATESTACKITEM:Config:server:",
		"CREATESTACKITEM:Config:port:server",
		"SETSTACKITEMVALUE:Config:server/port:8080",
		"SETSTACKITEMDESCRIPTION:Config:server/port:listen port",
	)

	v, err := r.GetRun("GETSECTORDATA:Banner")
	require.NoError(t, err)
	assert.Equal(t, "hi", v)

	v, err = r.GetRun("GETSECTORDESCRIPTION:Banner")
	require.NoError(t, err)
	assert.Equal(t, "greeting", v)

	v, err = r.GetRun("EXISTSSECTOR:Motd")
	require.NoError(t, err)
	assert.Equal(t, false, v)

	v, err = r.GetRun("GETSTACKDESCRIPTION:Config")
	require.NoError(t, err)
	assert.Equal(t, "app settings", v)

	v, err = r.GetRun("GETSTACKITEMVALUE:Config:server/port")
	require.NoError(t, err)
	assert.Equal(t, "8080", v)

	v, err = r.GetRun("GETSTACKITEMDESCRIPTION:Config:server/port")
	require.NoError(t, err)
	assert.Equal(t, "listen port", v)

	runAll(t, r, "RENAMESTACKITEM:Config:server/port:listen")
	v, err = r.GetRun("EXISTSSTACKITEM:Config:server/listen")
	require.NoError(t, err)
	assert.Equal(t, true, v)

	runAll(t, r, "REMOVESTACKITEM:Config:server", "RENAMESTACK:Config:Settings")
	v, err = r.GetRun("EXISTSSTACKITEM:Settings:server")
	require.NoError(t, err)
	assert.Equal(t, false, v)

	runAll(t, r, "CLEARSECTORS", "CLEARSTACKS")
	v, err = r.GetRun("SECTORCOUNT")
	require.NoError(t, err)
	assert.Equal(t, 0, v)
	v, err = r.GetRun("STACKCOUNT")
	require.NoError(t, err)
	assert.Equal(t, 0, v)
}

func TestRunnerMocha(t *testing.T) {
	r, _ := newTestRunner(t)
	runAll(t, r, "SETPASSWORD:pw", "SETDESCRIPTION:demo", "CREATETABLE:T")

	v, err := r.GetRun("GETPASSWORD")
	require.NoError(t, err)
	assert.Equal(t, "pw", v)

	runAll(t, r, "RESETMOCHA")
	v, err = r.GetRun("GETDESCRIPTION")
	require.NoError(t, err)
	assert.Equal(t, "", v)
	v, err = r.GetRun("TABLECOUNT")
	require.NoError(t, err)
	assert.Equal(t, 0, v)
}

func TestRunnerCreateMocha(t *testing.T) {
	r, _ := newTestRunner(t)

	err := r.Run("CREATEMOCHA:other.mochadb")
	assert.True(t, errors.IsNotProcessable(err), "unexpected error: %v", err)

	var created string
	r.Create = func(path string) error {
		created = path
		return nil
	}
	require.NoError(t, r.Run("CREATEMOCHA:other.mochadb"))
	assert.Equal(t, "other.mochadb", created)

	require.NoError(t, r.Run("CREATEMOCHA:backups:other.mochadb"))
	assert.Equal(t, filepath.Join("backups", "other.mochadb"), created)
}

func TestRunnerDispatchErrors(t *testing.T) {
	r, _ := newTestRunner(t)

	err := r.Run("GETTABLES")
	assert.True(t, errors.IsInvalidQuery(err), "Run with a query: %v", err)

	_, err = r.GetRun("CREATETABLE:T")
	assert.True(t, errors.IsInvalidQuery(err), "GetRun with a mutation: %v", err)

	_, err = r.GetRun("GETTABLE:Missing")
	assert.True(t, errors.IsNotFound(err), "missing table: %v", err)

	err = r.Run("CREATETABLE:T:BREAKQUERY")
	require.NoError(t, err)
	v, err := r.GetRun("TABLECOUNT")
	require.NoError(t, err)
	assert.Equal(t, 0, v)

	v, err = r.GetRun("GETTABLES:BREAKQUERY")
	require.NoError(t, err)
	assert.Nil(t, v)

	require.NoError(t, r.Run("ADDSECTOR:Note:breakquery:lower case is data"))
	v, err = r.GetRun("GETSECTORDATA:Note")
	require.NoError(t, err)
	assert.Equal(t, "breakquery", v)
}
