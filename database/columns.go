package database

import (
	"github.com/vegasq/mochadb/errors"
	"github.com/vegasq/mochadb/model"
	"github.com/vegasq/mochadb/store"
)

func (db *Database) columnNode(table, column string) (*store.Node, error) {
	tn, err := db.tableNode(table)
	if err != nil {
		return nil, err
	}
	n := tn.Child(column)
	if n == nil {
		return nil, errors.Wrapf(errors.ErrNotFound, "table %q has no column %q", table, column)
	}
	return n, nil
}

// AddColumn adds a column to a table. Existing rows get the column's zero
// value (or the next AutoInt number) in the new column.
func (db *Database) AddColumn(table string, c *model.Column) error {
	if err := model.ValidateName(c.Name); err != nil {
		return err
	}
	return db.editTable("AddColumn", table, func(t *model.Table) error {
		return t.AddColumn(c)
	})
}

// CreateColumn adds an empty String column to a table.
func (db *Database) CreateColumn(table, name string) error {
	c, err := model.NewColumn(name, model.String)
	if err != nil {
		return err
	}
	return db.AddColumn(table, c)
}

// RemoveColumn deletes a column.
func (db *Database) RemoveColumn(table, column string) error {
	return db.editTable("RemoveColumn", table, func(t *model.Table) error {
		return t.RemoveColumn(column)
	})
}

// RenameColumn renames a column.
func (db *Database) RenameColumn(table, column, newName string) error {
	return db.editTable("RenameColumn", table, func(t *model.Table) error {
		return t.RenameColumn(column, newName)
	})
}

// GetColumn returns a copy of a column with its data.
func (db *Database) GetColumn(table, column string) (*model.Column, error) {
	n, err := db.columnNode(table, column)
	if err != nil {
		return nil, err
	}
	return columnFromNode(n), nil
}

// GetColumns returns copies of every column of a table.
func (db *Database) GetColumns(table string) ([]*model.Column, error) {
	t, err := db.GetTable(table)
	if err != nil {
		return nil, err
	}
	return t.Columns(), nil
}

// ExistsColumn reports whether a table has the named column. A missing
// table reports false.
func (db *Database) ExistsColumn(table, column string) (bool, error) {
	_, err := db.columnNode(table, column)
	if errors.IsNotFound(err) {
		return false, nil
	}
	return err == nil, err
}

// ColumnCount returns the number of columns of a table.
func (db *Database) ColumnCount(table string) (int, error) {
	tn, err := db.tableNode(table)
	if err != nil {
		return 0, err
	}
	return len(tn.Children), nil
}

// FirstColumnName returns the name of a table's first column.
func (db *Database) FirstColumnName(table string) (string, error) {
	tn, err := db.tableNode(table)
	if err != nil {
		return "", err
	}
	if len(tn.Children) == 0 {
		return "", errors.Wrapf(errors.ErrNotFound, "table %q has no columns", table)
	}
	return tn.Children[0].Name, nil
}

// ColumnDescription returns a column's description.
func (db *Database) ColumnDescription(table, column string) (string, error) {
	n, err := db.columnNode(table, column)
	if err != nil {
		return "", err
	}
	return n.Attr(attrDescription), nil
}

// SetColumnDescription replaces a column's description.
func (db *Database) SetColumnDescription(table, column, description string) error {
	n, err := db.columnNode(table, column)
	if err != nil {
		return err
	}
	n.SetAttr(attrDescription, description)
	return db.commit("SetColumnDescription", store.JoinPath(store.TablesNode, table, column))
}

// ColumnKind returns a column's data kind.
func (db *Database) ColumnKind(table, column string) (model.DataKind, error) {
	c, err := db.GetColumn(table, column)
	if err != nil {
		return model.String, err
	}
	return c.Kind(), nil
}

// SetColumnKind changes a column's data kind, converting its data.
func (db *Database) SetColumnKind(table, column string, kind model.DataKind) error {
	return db.editTable("SetColumnKind", table, func(t *model.Table) error {
		c, err := t.Column(column)
		if err != nil {
			return err
		}
		return c.SetKind(kind)
	})
}

// AutoIntState returns the value the next append to an AutoInt column
// would store.
func (db *Database) AutoIntState(table, column string) (int64, error) {
	c, err := db.GetColumn(table, column)
	if err != nil {
		return 0, err
	}
	if c.Kind() != model.AutoInt {
		return 0, errors.Wrapf(errors.ErrTypeMismatch, "column %q is %s, not AutoInt", column, c.Kind())
	}
	return c.NextAutoInt(), nil
}
