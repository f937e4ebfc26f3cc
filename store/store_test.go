package store_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vegasq/mochadb/errors"
	"github.com/vegasq/mochadb/store"
	"github.com/vegasq/mochadb/store/memstore"
)

func TestOpenCreatesEmptyTree(t *testing.T) {
	doc, err := store.Open(memstore.New())
	require.NoError(t, err)

	for _, path := range []string{"Root/Password", "Root/Description", "Sectors", "Stacks", "Tables", "FileSystem"} {
		assert.True(t, doc.Exists(path), path)
	}
	assert.False(t, doc.Exists("Tables/Persons"))
}

func TestGetNode(t *testing.T) {
	doc, err := store.Open(memstore.New())
	require.NoError(t, err)

	tables, err := doc.GetNode("Tables")
	require.NoError(t, err)
	persons := tables.Add(store.NewNode("Persons", ""))
	persons.SetAttr("Description", "people")

	got, err := doc.GetNode(store.JoinPath("Tables", "Persons"))
	require.NoError(t, err)
	assert.Equal(t, "people", got.Attr("Description"))

	_, err = doc.GetNode("Tables/Cities")
	assert.True(t, errors.IsNotFound(err))
}

func TestNodeEditing(t *testing.T) {
	n := store.NewNode("Sectors", "")
	require.NoError(t, n.AddUnique(store.NewNode("A", "1")))
	assert.True(t, errors.IsAlreadyExists(n.AddUnique(store.NewNode("A", "2"))))

	require.NoError(t, n.Rename("A", "B"))
	assert.Nil(t, n.Child("A"))
	assert.Equal(t, "1", n.Child("B").Value)
	assert.True(t, errors.IsNotFound(n.Rename("A", "C")))

	n.Add(store.NewNode("Data", "x"))
	n.Add(store.NewNode("Data", "y"))
	assert.Len(t, n.ChildrenNamed("Data"), 2)

	assert.True(t, n.Remove("B"))
	assert.False(t, n.Remove("B"))

	n.SetAttr("k", "v1")
	n.SetAttr("k", "v2")
	assert.Equal(t, []store.Attr{{Name: "k", Value: "v2"}}, n.Attrs)
}

func TestSaveAndReload(t *testing.T) {
	backend := memstore.New()
	doc, err := store.Open(backend)
	require.NoError(t, err)

	sectors, _ := doc.GetNode("Sectors")
	sectors.Add(store.NewNode("Greeting", "hello"))
	require.NoError(t, doc.Save())

	sectors.Add(store.NewNode("Unsaved", ""))
	require.NoError(t, doc.Load())
	assert.True(t, doc.Exists("Sectors/Greeting"))
	assert.False(t, doc.Exists("Sectors/Unsaved"))
	assert.Equal(t, 1, backend.Saves())
}

func TestValidateRejectsForeignTree(t *testing.T) {
	err := store.Validate(store.NewNode("html", ""))
	assert.True(t, errors.IsConnection(err))

	tree := store.NewTree()
	tree.Remove(store.FileSystemNode)
	require.NoError(t, store.Validate(tree))
	assert.NotNil(t, tree.Child(store.FileSystemNode))
}

func TestCodecRoundTrip(t *testing.T) {
	tree := store.NewTree()
	tables := tree.Child(store.TablesNode)
	col := tables.Add(store.NewNode("Persons", "")).Add(store.NewNode("Name", ""))
	col.SetAttr("DataType", "String")
	col.Add(store.NewNode("Data", "Ann"))

	data, err := store.Marshal(tree)
	require.NoError(t, err)
	back, err := store.Unmarshal(data)
	require.NoError(t, err)
	assert.Equal(t, tree, back)
}
