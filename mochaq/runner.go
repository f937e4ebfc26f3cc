package mochaq

import (
	"go.uber.org/zap"

	"github.com/vegasq/mochadb/database"
	"github.com/vegasq/mochadb/errors"
	"github.com/vegasq/mochadb/logger"
	"github.com/vegasq/mochadb/model"
)

// Runner executes MochaQ commands against a database
type Runner struct {
	db  *database.Database
	log *zap.SugaredLogger

	// Create makes a new database file for CREATEMOCHA. When nil,
	// CREATEMOCHA fails with errors.ErrNotProcessable.
	Create func(path string) error
}

// NewRunner returns a runner bound to db. A nil log selects the global
// logger named "mochaq".
func NewRunner(db *database.Database, log *zap.SugaredLogger) *Runner {
	if log == nil {
		log = logger.Named("mochaq")
	}
	return &Runner{db: db, log: log}
}

// Run parses and executes a mutating command
func (r *Runner) Run(text string) error {
	cmd, err := Parse(text)
	if err != nil {
		return err
	}
	return r.Exec(cmd)
}

// GetRun parses and executes a query command and returns its value
func (r *Runner) GetRun(text string) (any, error) {
	cmd, err := Parse(text)
	if err != nil {
		return nil, err
	}
	return r.Query(cmd)
}

// Exec executes a parsed mutating command
func (r *Runner) Exec(cmd Command) error {
	if _, ok := cmd.(Noop); ok {
		r.log.Debugw("command skipped", "reason", breakQuery)
		return nil
	}
	if cmd.IsQuery() {
		return errors.WithHint(
			errors.Wrapf(errors.ErrInvalidQuery, "%s returns a value", cmd.Verb()),
			"use GetRun for GET, EXISTS and COUNT commands")
	}
	r.log.Debugw("running command", "verb", cmd.Verb())

	switch c := cmd.(type) {
	case MochaCommand:
		return r.execMocha(c)
	case TableCommand:
		return r.execTable(c)
	case ColumnCommand:
		return r.execColumn(c)
	case RowCommand:
		return r.db.RemoveRow(c.Table, c.Index)
	case DataCommand:
		return r.execData(c)
	case SectorCommand:
		return r.execSector(c)
	case StackCommand:
		return r.execStack(c)
	}
	return errors.Wrapf(errors.ErrInvalidQuery, "unsupported command %T", cmd)
}

// Query executes a parsed query command
func (r *Runner) Query(cmd Command) (any, error) {
	if _, ok := cmd.(Noop); ok {
		r.log.Debugw("command skipped", "reason", breakQuery)
		return nil, nil
	}
	if !cmd.IsQuery() {
		return nil, errors.WithHint(
			errors.Wrapf(errors.ErrInvalidQuery, "%s does not return a value", cmd.Verb()),
			"use Run for commands that change the database")
	}
	r.log.Debugw("running query", "verb", cmd.Verb())

	switch c := cmd.(type) {
	case MochaCommand:
		return r.queryMocha(c)
	case TableCommand:
		return r.queryTable(c)
	case ColumnCommand:
		return r.queryColumn(c)
	case RowCommand:
		return r.db.GetRow(c.Table, c.Index)
	case DataCommand:
		return r.queryData(c)
	case SectorCommand:
		return r.querySector(c)
	case StackCommand:
		return r.queryStack(c)
	}
	return nil, errors.Wrapf(errors.ErrInvalidQuery, "unsupported command %T", cmd)
}

func (r *Runner) execMocha(c MochaCommand) error {
	switch c.V {
	case VerbResetMocha:
		return r.db.Reset()
	case VerbSetPassword:
		return r.db.SetPassword(c.Value)
	case VerbSetDescription:
		return r.db.SetDescription(c.Value)
	case VerbCreateMocha:
		if r.Create == nil {
			return errors.Wrap(errors.ErrNotProcessable, "CREATEMOCHA is not available")
		}
		return r.Create(c.Value)
	}
	return unknown(c.V)
}

func (r *Runner) queryMocha(c MochaCommand) (any, error) {
	switch c.V {
	case VerbGetPassword:
		return r.db.Password()
	case VerbGetDescription:
		return r.db.Description()
	}
	return nil, unknown(c.V)
}

func (r *Runner) execTable(c TableCommand) error {
	switch c.V {
	case VerbCreateTable:
		return r.db.CreateTable(c.Table)
	case VerbRemoveTable:
		return r.db.RemoveTable(c.Table)
	case VerbResetTable:
		return r.db.ResetTable(c.Table)
	case VerbResetTables:
		return r.db.ResetTables()
	case VerbClearTables:
		return r.db.ClearTables()
	case VerbRenameTable:
		return r.db.RenameTable(c.Table, c.Value)
	case VerbSetTableDescription:
		return r.db.SetTableDescription(c.Table, c.Value)
	}
	return unknown(c.V)
}

func (r *Runner) queryTable(c TableCommand) (any, error) {
	switch c.V {
	case VerbGetTables:
		return r.db.GetTables()
	case VerbTableCount:
		return r.db.TableCount()
	case VerbGetTable:
		return r.db.GetTable(c.Table)
	case VerbExistsTable:
		return r.db.ExistsTable(c.Table)
	case VerbGetTableDescription:
		return r.db.TableDescription(c.Table)
	case VerbGetColumns:
		return r.db.GetColumns(c.Table)
	case VerbGetFirstColumnName:
		return r.db.FirstColumnName(c.Table)
	case VerbColumnCount:
		return r.db.ColumnCount(c.Table)
	case VerbGetRows:
		return r.db.GetRows(c.Table)
	case VerbRowCount:
		return r.db.RowCount(c.Table)
	}
	return nil, unknown(c.V)
}

func (r *Runner) execColumn(c ColumnCommand) error {
	switch c.V {
	case VerbCreateColumn:
		return r.db.CreateColumn(c.Table, c.Column)
	case VerbRemoveColumn:
		return r.db.RemoveColumn(c.Table, c.Column)
	case VerbRenameColumn:
		return r.db.RenameColumn(c.Table, c.Column, c.Value)
	case VerbSetColumnDescription:
		return r.db.SetColumnDescription(c.Table, c.Column, c.Value)
	case VerbSetColumnDataType:
		return r.db.SetColumnKind(c.Table, c.Column, c.Kind)
	}
	return unknown(c.V)
}

func (r *Runner) queryColumn(c ColumnCommand) (any, error) {
	switch c.V {
	case VerbGetColumn:
		return r.db.GetColumn(c.Table, c.Column)
	case VerbExistsColumn:
		return r.db.ExistsColumn(c.Table, c.Column)
	case VerbGetColumnDescription:
		return r.db.ColumnDescription(c.Table, c.Column)
	case VerbGetColumnDataType:
		kind, err := r.db.ColumnKind(c.Table, c.Column)
		if err != nil {
			return nil, err
		}
		return kind, nil
	}
	return nil, unknown(c.V)
}

func (r *Runner) execData(c DataCommand) error {
	switch c.V {
	case VerbAddData:
		return r.db.AddData(c.Table, c.Column, c.Value)
	case VerbUpdateData:
		return r.db.UpdateData(c.Table, c.Column, c.Index, c.Value)
	case VerbUpdateFirstData:
		return r.db.UpdateData(c.Table, c.Column, 0, c.Value)
	case VerbUpdateLastData:
		n, err := r.db.DataCount(c.Table, c.Column)
		if err != nil {
			return err
		}
		return r.db.UpdateData(c.Table, c.Column, n-1, c.Value)
	}
	return unknown(c.V)
}

func (r *Runner) queryData(c DataCommand) (any, error) {
	switch c.V {
	case VerbGetDatas:
		switch {
		case c.Table == "":
			return r.db.AllDatas()
		case c.Column == "":
			return r.db.TableDatas(c.Table)
		}
		return r.db.GetDatas(c.Table, c.Column)
	case VerbGetData:
		return r.db.GetData(c.Table, c.Column, c.Index)
	case VerbDataCount:
		column := c.Column
		if column == "" {
			first, err := r.db.FirstColumnName(c.Table)
			if err != nil {
				return nil, err
			}
			column = first
		}
		return r.db.DataCount(c.Table, column)
	case VerbExistsData:
		return r.db.ExistsData(c.Table, c.Column, c.Value)
	}
	return nil, unknown(c.V)
}

func (r *Runner) execSector(c SectorCommand) error {
	switch c.V {
	case VerbAddSector:
		s, err := model.NewSector(c.Sector, c.Value, c.Description)
		if err != nil {
			return err
		}
		return r.db.AddSector(s)
	case VerbRemoveSector:
		return r.db.RemoveSector(c.Sector)
	case VerbRenameSector:
		return r.db.RenameSector(c.Sector, c.Value)
	case VerbSetSectorData:
		return r.db.SetSectorData(c.Sector, c.Value)
	case VerbSetSectorDescription:
		return r.db.SetSectorDescription(c.Sector, c.Value)
	case VerbClearSectors:
		return r.db.ClearSectors()
	}
	return unknown(c.V)
}

func (r *Runner) querySector(c SectorCommand) (any, error) {
	switch c.V {
	case VerbGetSectors:
		return r.db.GetSectors()
	case VerbSectorCount:
		return r.db.SectorCount()
	case VerbGetSector:
		return r.db.GetSector(c.Sector)
	case VerbExistsSector:
		return r.db.ExistsSector(c.Sector)
	case VerbGetSectorData:
		return r.db.SectorData(c.Sector)
	case VerbGetSectorDescription:
		return r.db.SectorDescription(c.Sector)
	}
	return nil, unknown(c.V)
}

func (r *Runner) execStack(c StackCommand) error {
	switch c.V {
	case VerbCreateStack:
		return r.db.CreateStack(c.Stack)
	case VerbRemoveStack:
		return r.db.RemoveStack(c.Stack)
	case VerbRenameStack:
		return r.db.RenameStack(c.Stack, c.Name)
	case VerbSetStackDescription:
		return r.db.SetStackDescription(c.Stack, c.Value)
	case VerbClearStacks:
		return r.db.ClearStacks()
	case VerbCreateStackItem:
		item, err := model.NewStackItem(c.Name, "", "")
		if err != nil {
			return err
		}
		return r.db.AddStackItem(c.Stack, c.Path, item)
	case VerbRemoveStackItem:
		return r.db.RemoveStackItem(c.Stack, c.Path)
	case VerbRenameStackItem:
		return r.db.RenameStackItem(c.Stack, c.Path, c.Name)
	case VerbSetStackItemValue:
		return r.db.SetStackItemValue(c.Stack, c.Path, c.Value)
	case VerbSetStackItemDescription:
		return r.db.SetStackItemDescription(c.Stack, c.Path, c.Value)
	}
	return unknown(c.V)
}

func (r *Runner) queryStack(c StackCommand) (any, error) {
	switch c.V {
	case VerbGetStacks:
		return r.db.GetStacks()
	case VerbStackCount:
		return r.db.StackCount()
	case VerbGetStack:
		return r.db.GetStack(c.Stack)
	case VerbExistsStack:
		return r.db.ExistsStack(c.Stack)
	case VerbGetStackDescription:
		return r.db.StackDescription(c.Stack)
	case VerbGetStackItem:
		return r.db.GetStackItem(c.Stack, c.Path)
	case VerbExistsStackItem:
		return r.db.ExistsStackItem(c.Stack, c.Path)
	case VerbGetStackItemValue:
		return r.db.StackItemValue(c.Stack, c.Path)
	case VerbGetStackItemDescription:
		return r.db.StackItemDescription(c.Stack, c.Path)
	}
	return nil, unknown(c.V)
}

func unknown(v Verb) error {
	return errors.Wrapf(errors.ErrInvalidQuery, "unknown command %s", v)
}
