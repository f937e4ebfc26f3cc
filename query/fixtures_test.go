package query

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/vegasq/mochadb/database"
	"github.com/vegasq/mochadb/model"
	"github.com/vegasq/mochadb/store/memstore"
)

// PersonRow is one row of the Persons fixture table
type PersonRow struct {
	Name string
	Age  int32
	City string
}

var persons = []PersonRow{
	{"Ann", 30, "Oslo"},
	{"Bob", 25, "Rome"},
	{"Cid", 41, "Oslo"},
	{"Dan", 25, "Paris"},
	{"Eve", 19, "Rome"},
}

// newTestDB returns an in-memory database holding:
//
//	Persons(ID AutoInt, Name String, Age Int32, City String)
//	Orders(OrderID AutoInt, Amount Decimal, Person String)
//	sectors Motd and Version, stacks Config and Cache
func newTestDB(t *testing.T) *database.Database {
	t.Helper()
	db, err := database.Open(memstore.New(), database.Options{Logger: zaptest.NewLogger(t).Sugar()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	tbl, err := model.NewTable("Persons",
		model.MustColumn("ID", model.AutoInt),
		model.MustColumn("Name", model.String),
		model.MustColumn("Age", model.Int32),
		model.MustColumn("City", model.String),
	)
	require.NoError(t, err)
	require.NoError(t, db.AddTable(tbl))
	for _, p := range persons {
		require.NoError(t, db.AddRow("Persons", nil, p.Name, p.Age, p.City))
	}

	orders, err := model.NewTable("Orders",
		model.MustColumn("OrderID", model.AutoInt),
		model.MustColumn("Amount", model.Decimal),
		model.MustColumn("Person", model.String),
	)
	require.NoError(t, err)
	require.NoError(t, db.AddTable(orders))
	require.NoError(t, db.AddRow("Orders", nil, "12.50", "Ann"))
	require.NoError(t, db.AddRow("Orders", nil, "7", "Bob"))

	for _, s := range [][3]string{{"Motd", "hello", "greeting"}, {"Version", "1.2", "release"}} {
		sec, err := model.NewSector(s[0], s[1], s[2])
		require.NoError(t, err)
		require.NoError(t, db.AddSector(sec))
	}

	require.NoError(t, db.CreateStack("Config"))
	require.NoError(t, db.AddStackItem("Config", "", &model.StackItem{Name: "port", Value: "8080"}))
	require.NoError(t, db.CreateStack("Cache"))
	return db
}

func newTestCommand(t *testing.T, cat Catalog) *Command {
	t.Helper()
	cmd, err := NewCommand(cat, Options{Logger: zaptest.NewLogger(t).Sugar()})
	require.NoError(t, err)
	return cmd
}

// newColumnTable builds an unnamed-schema table from parallel columns of
// text values.
func newColumnTable(t *testing.T, kind model.DataKind, columns ...[]string) *model.Table {
	t.Helper()
	var cols []*model.Column
	for i, values := range columns {
		c := model.NewResultColumn(string(rune('A'+i)), kind)
		for _, v := range values {
			require.NoError(t, c.Append(v))
		}
		cols = append(cols, c)
	}
	return model.NewResultTable("T", cols...)
}

func columnTexts(t *testing.T, tbl *model.Table, i int) []string {
	t.Helper()
	c, err := tbl.ColumnAt(i)
	require.NoError(t, err)
	return c.Texts()
}
