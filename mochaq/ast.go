package mochaq

import "github.com/vegasq/mochadb/model"

// Verb is the upper-cased first segment of a command
type Verb string

// Mutating verbs
const (
	VerbResetMocha              Verb = "RESETMOCHA"
	VerbCreateMocha             Verb = "CREATEMOCHA"
	VerbSetPassword             Verb = "SETPASSWORD"
	VerbSetDescription          Verb = "SETDESCRIPTION"
	VerbResetTables             Verb = "RESETTABLES"
	VerbClearSectors            Verb = "CLEARSECTORS"
	VerbClearStacks             Verb = "CLEARSTACKS"
	VerbClearTables             Verb = "CLEARTABLES"
	VerbCreateTable             Verb = "CREATETABLE"
	VerbRemoveTable             Verb = "REMOVETABLE"
	VerbResetTable              Verb = "RESETTABLE"
	VerbRenameTable             Verb = "RENAMETABLE"
	VerbSetTableDescription     Verb = "SETTABLEDESCRIPTION"
	VerbCreateColumn            Verb = "CREATECOLUMN"
	VerbRemoveColumn            Verb = "REMOVECOLUMN"
	VerbRenameColumn            Verb = "RENAMECOLUMN"
	VerbSetColumnDescription    Verb = "SETCOLUMNDESCRIPTION"
	VerbSetColumnDataType       Verb = "SETCOLUMNDATATYPE"
	VerbRemoveRow               Verb = "REMOVEROW"
	VerbAddData                 Verb = "ADDDATA"
	VerbUpdateData              Verb = "UPDATEDATA"
	VerbUpdateFirstData         Verb = "UPDATEFIRSTDATA"
	VerbUpdateLastData          Verb = "UPDATELASTDATA"
	VerbAddSector               Verb = "ADDSECTOR"
	VerbRemoveSector            Verb = "REMOVESECTOR"
	VerbRenameSector            Verb = "RENAMESECTOR"
	VerbSetSectorData           Verb = "SETSECTORDATA"
	VerbSetSectorDescription    Verb = "SETSECTORDESCRIPTION"
	VerbCreateStack             Verb = "CREATESTACK"
	VerbRemoveStack             Verb = "REMOVESTACK"
	VerbRenameStack             Verb = "RENAMESTACK"
	VerbSetStackDescription     Verb = "SETSTACKDESCRIPTION"
	VerbCreateStackItem         Verb = "CREATESTACKITEM"
	VerbRemoveStackItem         Verb = "REMOVESTACKITEM"
	VerbRenameStackItem         Verb = "RENAMESTACKITEM"
	VerbSetStackItemValue       Verb = "SETSTACKITEMVALUE"
	VerbSetStackItemDescription Verb = "SETSTACKITEMDESCRIPTION"
)

// Query verbs
const (
	VerbGetPassword             Verb = "GETPASSWORD"
	VerbGetDescription          Verb = "GETDESCRIPTION"
	VerbGetTables               Verb = "GETTABLES"
	VerbGetTable                Verb = "GETTABLE"
	VerbTableCount              Verb = "TABLECOUNT"
	VerbExistsTable             Verb = "EXISTSTABLE"
	VerbGetTableDescription     Verb = "GETTABLEDESCRIPTION"
	VerbGetColumns              Verb = "GETCOLUMNS"
	VerbGetColumn               Verb = "GETCOLUMN"
	VerbGetFirstColumnName      Verb = "GETFIRSTCOLUMN_NAME"
	VerbColumnCount             Verb = "COLUMNCOUNT"
	VerbExistsColumn            Verb = "EXISTSCOLUMN"
	VerbGetColumnDescription    Verb = "GETCOLUMNDESCRIPTION"
	VerbGetColumnDataType       Verb = "GETCOLUMNDATATYPE"
	VerbGetRows                 Verb = "GETROWS"
	VerbGetRow                  Verb = "GETROW"
	VerbRowCount                Verb = "ROWCOUNT"
	VerbGetDatas                Verb = "GETDATAS"
	VerbGetData                 Verb = "GETDATA"
	VerbDataCount               Verb = "DATACOUNT"
	VerbExistsData              Verb = "EXISTSDATA"
	VerbGetSectors              Verb = "GETSECTORS"
	VerbGetSector               Verb = "GETSECTOR"
	VerbSectorCount             Verb = "SECTORCOUNT"
	VerbExistsSector            Verb = "EXISTSSECTOR"
	VerbGetSectorData           Verb = "GETSECTORDATA"
	VerbGetSectorDescription    Verb = "GETSECTORDESCRIPTION"
	VerbGetStacks               Verb = "GETSTACKS"
	VerbGetStack                Verb = "GETSTACK"
	VerbStackCount              Verb = "STACKCOUNT"
	VerbExistsStack             Verb = "EXISTSSTACK"
	VerbGetStackDescription     Verb = "GETSTACKDESCRIPTION"
	VerbGetStackItem            Verb = "GETSTACKITEM"
	VerbExistsStackItem         Verb = "EXISTSSTACKITEM"
	VerbGetStackItemValue       Verb = "GETSTACKITEMVALUE"
	VerbGetStackItemDescription Verb = "GETSTACKITEMDESCRIPTION"
)

// breakQuery anywhere in a command turns it into a no-op
const breakQuery = "BREAKQUERY"

// Command is a parsed MochaQ command. The set of implementations is
// closed: Noop, MochaCommand, TableCommand, ColumnCommand, RowCommand,
// DataCommand, SectorCommand and StackCommand.
type Command interface {
	// Verb returns the command verb, or "" for Noop.
	Verb() Verb
	// IsQuery reports whether the command returns a value through GetRun.
	IsQuery() bool
	command()
}

// Noop is a command containing BREAKQUERY
type Noop struct{}

// MochaCommand acts on the database as a whole
type MochaCommand struct {
	V     Verb
	Value string // password, description or path
}

// TableCommand acts on a table or on every table
type TableCommand struct {
	V     Verb
	Table string
	Value string // new name or description
}

// ColumnCommand acts on one column of a table
type ColumnCommand struct {
	V      Verb
	Table  string
	Column string
	Value  string // new name or description
	Kind   model.DataKind
}

// RowCommand acts on one row of a table
type RowCommand struct {
	V     Verb
	Table string
	Index int
}

// DataCommand reads or writes column cells. An empty Column means every
// column (or, with an empty Table, every table).
type DataCommand struct {
	V      Verb
	Table  string
	Column string
	Index  int
	Value  string
}

// SectorCommand acts on a sector or on every sector
type SectorCommand struct {
	V           Verb
	Sector      string
	Value       string // data or new name
	Description string
}

// StackCommand acts on a stack or one of its items
type StackCommand struct {
	V     Verb
	Stack string
	Path  string // item path; parent path for CREATESTACKITEM
	Name  string // item name for CREATESTACKITEM, new name for renames
	Value string // value or description
}

func (Noop) Verb() Verb            { return "" }
func (c MochaCommand) Verb() Verb  { return c.V }
func (c TableCommand) Verb() Verb  { return c.V }
func (c ColumnCommand) Verb() Verb { return c.V }
func (c RowCommand) Verb() Verb    { return c.V }
func (c DataCommand) Verb() Verb   { return c.V }
func (c SectorCommand) Verb() Verb { return c.V }
func (c StackCommand) Verb() Verb  { return c.V }

func (Noop) IsQuery() bool            { return false }
func (c MochaCommand) IsQuery() bool  { return queryVerbs[c.V] }
func (c TableCommand) IsQuery() bool  { return queryVerbs[c.V] }
func (c ColumnCommand) IsQuery() bool { return queryVerbs[c.V] }
func (c RowCommand) IsQuery() bool    { return queryVerbs[c.V] }
func (c DataCommand) IsQuery() bool   { return queryVerbs[c.V] }
func (c SectorCommand) IsQuery() bool { return queryVerbs[c.V] }
func (c StackCommand) IsQuery() bool  { return queryVerbs[c.V] }

func (Noop) command()          {}
func (MochaCommand) command()  {}
func (TableCommand) command()  {}
func (ColumnCommand) command() {}
func (RowCommand) command()    {}
func (DataCommand) command()   {}
func (SectorCommand) command() {}
func (StackCommand) command()  {}

var queryVerbs = map[Verb]bool{
	VerbGetPassword: true, VerbGetDescription: true,
	VerbGetTables: true, VerbGetTable: true, VerbTableCount: true, VerbExistsTable: true, VerbGetTableDescription: true,
	VerbGetColumns: true, VerbGetColumn: true, VerbGetFirstColumnName: true, VerbColumnCount: true,
	VerbExistsColumn: true, VerbGetColumnDescription: true, VerbGetColumnDataType: true,
	VerbGetRows: true, VerbGetRow: true, VerbRowCount: true,
	VerbGetDatas: true, VerbGetData: true, VerbDataCount: true, VerbExistsData: true,
	VerbGetSectors: true, VerbGetSector: true, VerbSectorCount: true, VerbExistsSector: true,
	VerbGetSectorData: true, VerbGetSectorDescription: true,
	VerbGetStacks: true, VerbGetStack: true, VerbStackCount: true, VerbExistsStack: true, VerbGetStackDescription: true,
	VerbGetStackItem: true, VerbExistsStackItem: true, VerbGetStackItemValue: true, VerbGetStackItemDescription: true,
}
