package database

import (
	"github.com/vegasq/mochadb/errors"
	"github.com/vegasq/mochadb/model"
	"github.com/vegasq/mochadb/store"
)

func (db *Database) tableNode(name string) (*store.Node, error) {
	if err := db.check(); err != nil {
		return nil, err
	}
	n := db.container(store.TablesNode).Child(name)
	if n == nil {
		return nil, errors.Wrapf(errors.ErrNotFound, "table %q", name)
	}
	return n, nil
}

// editTable loads a table, applies edit to the model and writes the result
// back. The model enforces column invariants; nothing is written when edit
// fails.
func (db *Database) editTable(op, name string, edit func(*model.Table) error) error {
	n, err := db.tableNode(name)
	if err != nil {
		return err
	}
	t := tableFromNode(n)
	if err := edit(t); err != nil {
		return err
	}
	writeTable(n, t)
	return db.commit(op, store.JoinPath(store.TablesNode, name))
}

// AddTable stores a table with its columns and data.
func (db *Database) AddTable(t *model.Table) error {
	if err := db.check(); err != nil {
		return err
	}
	if err := model.ValidateName(t.Name); err != nil {
		return err
	}
	for _, c := range t.Columns() {
		if err := model.ValidateName(c.Name); err != nil {
			return errors.Wrapf(err, "table %q", t.Name)
		}
	}
	if err := db.container(store.TablesNode).AddUnique(tableToNode(t)); err != nil {
		return errors.Wrapf(err, "table %q", t.Name)
	}
	return db.commit("AddTable", store.JoinPath(store.TablesNode, t.Name))
}

// CreateTable stores a new table without columns.
func (db *Database) CreateTable(name string) error {
	t, err := model.NewTable(name)
	if err != nil {
		return err
	}
	return db.AddTable(t)
}

// RemoveTable deletes a table.
func (db *Database) RemoveTable(name string) error {
	if _, err := db.tableNode(name); err != nil {
		return err
	}
	db.container(store.TablesNode).Remove(name)
	return db.commit("RemoveTable", store.JoinPath(store.TablesNode, name))
}

// RenameTable renames a table.
func (db *Database) RenameTable(name, newName string) error {
	if _, err := db.tableNode(name); err != nil {
		return err
	}
	if err := model.ValidateName(newName); err != nil {
		return err
	}
	if err := db.container(store.TablesNode).Rename(name, newName); err != nil {
		return err
	}
	return db.commit("RenameTable", store.JoinPath(store.TablesNode, newName))
}

// GetTable materialises a table from storage. The result is a copy.
func (db *Database) GetTable(name string) (*model.Table, error) {
	n, err := db.tableNode(name)
	if err != nil {
		return nil, err
	}
	return tableFromNode(n), nil
}

// GetTables materialises every table in storage order.
func (db *Database) GetTables() ([]*model.Table, error) {
	if err := db.check(); err != nil {
		return nil, err
	}
	var out []*model.Table
	for _, n := range db.container(store.TablesNode).Children {
		out = append(out, tableFromNode(n))
	}
	return out, nil
}

// TableNames lists table names in storage order.
func (db *Database) TableNames() ([]string, error) {
	if err := db.check(); err != nil {
		return nil, err
	}
	var out []string
	for _, n := range db.container(store.TablesNode).Children {
		out = append(out, n.Name)
	}
	return out, nil
}

// ExistsTable reports whether a table exists.
func (db *Database) ExistsTable(name string) (bool, error) {
	if err := db.check(); err != nil {
		return false, err
	}
	return db.container(store.TablesNode).Child(name) != nil, nil
}

// TableCount returns the number of tables.
func (db *Database) TableCount() (int, error) {
	if err := db.check(); err != nil {
		return 0, err
	}
	return len(db.container(store.TablesNode).Children), nil
}

// TableDescription returns a table's description.
func (db *Database) TableDescription(name string) (string, error) {
	n, err := db.tableNode(name)
	if err != nil {
		return "", err
	}
	return n.Attr(attrDescription), nil
}

// SetTableDescription replaces a table's description.
func (db *Database) SetTableDescription(name, description string) error {
	n, err := db.tableNode(name)
	if err != nil {
		return err
	}
	n.SetAttr(attrDescription, description)
	return db.commit("SetTableDescription", store.JoinPath(store.TablesNode, name))
}

// ResetTable drops every column of a table, keeping the table itself.
func (db *Database) ResetTable(name string) error {
	n, err := db.tableNode(name)
	if err != nil {
		return err
	}
	n.RemoveAll()
	return db.commit("ResetTable", store.JoinPath(store.TablesNode, name))
}

// ResetTables drops every column of every table.
func (db *Database) ResetTables() error {
	if err := db.check(); err != nil {
		return err
	}
	for _, n := range db.container(store.TablesNode).Children {
		n.RemoveAll()
	}
	return db.commit("ResetTables", store.TablesNode)
}
