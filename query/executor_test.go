package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vegasq/mochadb/database"
	"github.com/vegasq/mochadb/errors"
	"github.com/vegasq/mochadb/model"
)

func rowsOf(tbl *model.Table) [][]string {
	var out [][]string
	for _, row := range tbl.Rows() {
		out = append(out, row.Texts())
	}
	return out
}

func names(t *testing.T, r *Reader) []string {
	t.Helper()
	var out []string
	for r.Read() {
		switch v := r.Value().(type) {
		case *model.Table:
			out = append(out, v.Name)
		case *model.Sector:
			out = append(out, v.Name)
		case *model.Stack:
			out = append(out, v.Name)
		case *database.TableColumn:
			out = append(out, v.Path())
		default:
			t.Fatalf("unexpected item %T", v)
		}
	}
	return out
}

func TestExecuteScalarTable_Use(t *testing.T) {
	db := newTestDB(t)
	cmd := newTestCommand(t, db)

	tests := []struct {
		name     string
		query    string
		wantCols []string
		wantRows [][]string
	}{
		{
			name:     "column references",
			query:    "USE Persons.Name, Persons.Age RETURN",
			wantCols: []string{"Name", "Age"},
			wantRows: [][]string{{"Ann", "30"}, {"Bob", "25"}, {"Cid", "41"}, {"Dan", "25"}, {"Eve", "19"}},
		},
		{
			name:     "columns from table with alias",
			query:    "USE Name AS Who, City FROM Persons MUST STARTW(Who, 'C') END RETURN",
			wantCols: []string{"Who", "City"},
			wantRows: [][]string{{"Cid", "Oslo"}},
		},
		{
			name:     "filter then order",
			query:    "USE * FROM Persons MUST BIGGER(Age, 25) END ORDERBY DESC Age RETURN",
			wantCols: []string{"ID", "Name", "Age", "City"},
			// DESC reverses the stable ascending order, so ties flip too.
			wantRows: [][]string{{"3", "Cid", "41", "Oslo"}, {"1", "Ann", "30", "Oslo"}, {"4", "Dan", "25", "Paris"}, {"2", "Bob", "25", "Rome"}},
		},
		{
			name:     "group then order",
			query:    "USE City FROM Persons GROUPBY 0 ORDERBY DESC 1 RETURN",
			wantCols: []string{"Datas", "Count"},
			wantRows: [][]string{{"Rome", "2"}, {"Oslo", "2"}, {"Paris", "1"}},
		},
		{
			name:     "text predicates",
			query:    "USE Name FROM Persons MUST STARTW(0, 'E') AND ENDW(Name, \"e\") END RETURN",
			wantCols: []string{"Name"},
			wantRows: [][]string{{"Eve"}},
		},
		{
			name:     "columns of two tables are padded",
			query:    "USE Orders.Person, Persons.Name RETURN",
			wantCols: []string{"Person", "Name"},
			wantRows: [][]string{{"Ann", "Ann"}, {"Bob", "Bob"}, {"", "Cid"}, {"", "Dan"}, {"", "Eve"}},
		},
		{
			name:     "sectors",
			query:    "@SECTORS USE * RETURN",
			wantCols: []string{"Name", "Data", "Description"},
			wantRows: [][]string{{"Motd", "hello", "greeting"}, {"Version", "1.2", "release"}},
		},
		{
			name:     "sector fields",
			query:    "@SECTORS USE data, Description FROM Version RETURN",
			wantCols: []string{"Data", "Description"},
			wantRows: [][]string{{"1.2", "release"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tbl, err := cmd.ExecuteScalarTable(tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.wantCols, tbl.ColumnNames())
			assert.Equal(t, tt.wantRows, rowsOf(tbl))
		})
	}
}

func TestUseRejectsDuplicateColumns(t *testing.T) {
	db := newTestDB(t)
	cmd := newTestCommand(t, db)

	dup, err := model.NewTable("Dup", model.MustColumn("Name", model.String))
	require.NoError(t, err)
	require.NoError(t, db.AddTable(dup))

	for _, q := range []string{
		"USE Persons, Dup MUST STARTW(Name, z) END RETURN",
		"USE Persons.Name, Persons.Name RETURN",
		"USE Name, City AS Name FROM Persons RETURN",
		"@SECTORS USE Data, data FROM Motd RETURN",
	} {
		t.Run(q, func(t *testing.T) {
			_, err := cmd.ExecuteScalarTable(q)
			require.Error(t, err)
			assert.True(t, errors.IsAlreadyExists(err), "got %v", err)
		})
	}

	tbl, err := cmd.ExecuteScalarTable("USE Persons.Name, Dup.Name AS Other RETURN")
	require.NoError(t, err)
	assert.Equal(t, []string{"Name", "Other"}, tbl.ColumnNames())
}

func TestUseKeywordSpellings(t *testing.T) {
	db := newTestDB(t)
	cmd := newTestCommand(t, db)

	words, err := model.NewTable("Words",
		model.MustColumn("End", model.String),
		model.MustColumn("Must", model.String),
	)
	require.NoError(t, err)
	require.NoError(t, db.AddTable(words))
	require.NoError(t, db.AddRow("Words", nil, "the end", "must"))
	require.NoError(t, db.AddRow("Words", nil, "begin", "may"))

	tests := []struct {
		query    string
		wantCols []string
		wantRows [][]string
	}{
		{"USE End FROM Words RETURN", []string{"End"}, [][]string{{"the end"}, {"begin"}}},
		{"USE End FROM Words MUST ENDW(End, end) END RETURN", []string{"End"}, [][]string{{"the end"}}},
		{"USE * FROM Words MUST STARTW(Must, must) END RETURN", []string{"End", "Must"}, [][]string{{"the end", "must"}}},
		{"USE Words.Must RETURN", []string{"Must"}, [][]string{{"must"}, {"may"}}},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			tbl, err := cmd.ExecuteScalarTable(tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.wantCols, tbl.ColumnNames())
			assert.Equal(t, tt.wantRows, rowsOf(tbl))
		})
	}
}

func TestUseDoesNotModifyStorage(t *testing.T) {
	db := newTestDB(t)
	cmd := newTestCommand(t, db)

	_, err := cmd.ExecuteScalarTable("USE * FROM Persons MUST EQUAL(Age, 99) END RETURN")
	require.NoError(t, err)

	n, err := db.RowCount("Persons")
	require.NoError(t, err)
	assert.Equal(t, len(persons), n)
}

func TestExecuteReader_Select(t *testing.T) {
	db := newTestDB(t)
	cmd := newTestCommand(t, db)

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{name: "all tables", query: "SELECT * RETURN", want: []string{"Persons", "Orders"}},
		{name: "pattern", query: "@TABLES SELECT P.* RETURN", want: []string{"Persons"}},
		{name: "anchored", query: "SELECT Person RETURN", want: nil},
		{name: "sectors", query: "@SECTORS SELECT Motd, V.* RETURN", want: []string{"Motd", "Version"}},
		{name: "stacks", query: "@STACKS SELECT * RETURN", want: []string{"Config", "Cache"}},
		{name: "tags in order", query: "@STACKS @TABLES SELECT C.*, Orders RETURN", want: []string{"Config", "Cache", "Orders"}},
		{name: "columns", query: "SELECT Name, A.* FROM Persons RETURN", want: []string{"Tables/Persons/Name", "Tables/Persons/Age"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := cmd.ExecuteReader(tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.want, names(t, r))
		})
	}
}

func TestReader(t *testing.T) {
	db := newTestDB(t)
	cmd := newTestCommand(t, db)

	r, err := cmd.ExecuteReader("SELECT Nothing RETURN")
	require.NoError(t, err)
	assert.Equal(t, 0, r.Count())
	assert.False(t, r.Read())
	assert.Equal(t, -1, r.Position())
	assert.Nil(t, r.Value())

	r, err = cmd.ExecuteReader("@SECTORS @STACKS SELECT * RETURN")
	require.NoError(t, err)
	require.Equal(t, 4, r.Count())
	for i := 0; i < 4; i++ {
		require.True(t, r.Read())
		assert.Equal(t, i, r.Position())
		assert.NotNil(t, r.Value())
	}
	assert.False(t, r.Read())
	assert.False(t, r.Read())
}

func TestExecuteCommand_Remove(t *testing.T) {
	db := newTestDB(t)
	cmd := newTestCommand(t, db)

	n, err := cmd.ExecuteCommand("SELECT Ord.* REMOVE")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	ok, _ := db.ExistsTable("Orders")
	assert.False(t, ok)

	n, err = cmd.ExecuteCommand("SELECT City, Age FROM Persons REMOVE")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	cols, _ := db.ColumnCount("Persons")
	assert.Equal(t, 2, cols)

	n, err = cmd.ExecuteCommand("@SECTORS @STACKS SELECT Motd, Cache REMOVE")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	sectors, _ := db.SectorCount()
	stacks, _ := db.StackCount()
	assert.Equal(t, 1, sectors)
	assert.Equal(t, 1, stacks)
}

func TestExecute_Dispatch(t *testing.T) {
	db := newTestDB(t)
	cmd := newTestCommand(t, db)

	r, err := cmd.Execute("@SECTORS SELECT Version REMOVE")
	require.NoError(t, err)
	assert.Equal(t, []string{"Version"}, names(t, r))

	r, err = cmd.Execute("@SECTORS SELECT * RETURN")
	require.NoError(t, err)
	assert.Equal(t, []string{"Motd"}, names(t, r))
}

func TestExecute_Errors(t *testing.T) {
	db := newTestDB(t)
	cmd := newTestCommand(t, db)

	_, err := cmd.ExecuteReader("SELECT * REMOVE")
	assert.True(t, errors.IsGrammar(err))

	_, err = cmd.ExecuteCommand("SELECT * RETURN")
	assert.True(t, errors.IsGrammar(err))

	_, err = cmd.ExecuteScalarTable("@SECTORS SELECT Motd RETURN")
	assert.True(t, errors.IsNotProcessable(err))

	_, err = cmd.ExecuteScalarTable("USE Missing RETURN")
	assert.True(t, errors.IsNotFound(err))

	_, err = cmd.ExecuteScalarTable("USE Persons.Missing RETURN")
	assert.True(t, errors.IsNotFound(err))

	_, err = cmd.ExecuteScalarTable("@SECTORS USE Size FROM Motd RETURN")
	assert.True(t, errors.IsNotFound(err))

	_, err = cmd.ExecuteScalarTable("USE * FROM Persons MUST BIGGER(Name, 1) END RETURN")
	assert.True(t, errors.IsNotProcessable(err))

	_, err = cmd.ExecuteScalarTable("USE * FROM Persons MUST EQUAL(9, 1) END RETURN")
	assert.True(t, errors.IsNotFound(err))

	require.NoError(t, db.Close())
	_, err = cmd.ExecuteReader("SELECT * RETURN")
	assert.True(t, errors.IsConnection(err))
}

func TestExecuteScalar(t *testing.T) {
	db := newTestDB(t)
	cmd := newTestCommand(t, db)

	v, err := cmd.ExecuteScalar("@STACKS SELECT Config RETURN")
	require.NoError(t, err)
	stack, ok := v.(*model.Stack)
	require.True(t, ok)
	assert.Equal(t, "port", stack.Items[0].Name)

	v, err = cmd.ExecuteScalar("SELECT Nothing RETURN")
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestPlanCache(t *testing.T) {
	db := newTestDB(t)
	cmd := newTestCommand(t, db)

	p1, err := cmd.Prepare("SELECT * RETURN")
	require.NoError(t, err)
	p2, err := cmd.Prepare("SELECT * RETURN")
	require.NoError(t, err)
	assert.Same(t, p1, p2)

	uncached, err := NewCommand(db, Options{CacheSize: -1})
	require.NoError(t, err)
	p3, err := uncached.Prepare("SELECT * RETURN")
	require.NoError(t, err)
	assert.NotSame(t, p1, p3)
}
