package mochaq

import (
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/vegasq/mochadb/errors"
	"github.com/vegasq/mochadb/model"
)

// signature selects a builder by verb and segment count (verb included)
type signature struct {
	verb  Verb
	arity int
}

type builder func(args []string) (Command, error)

var builders = map[signature]builder{}

func register(v Verb, arity int, b builder) {
	builders[signature{v, arity}] = b
}

// Verbs returns every known verb in sorted order
func Verbs() []Verb {
	var out []Verb
	for sig := range builders {
		if !slices.Contains(out, sig.verb) {
			out = append(out, sig.verb)
		}
	}
	slices.Sort(out)
	return out
}

func mocha(v Verb) builder {
	return func(a []string) (Command, error) {
		c := MochaCommand{V: v}
		if len(a) > 0 {
			c.Value = a[0]
		}
		return c, nil
	}
}

func table(v Verb) builder {
	return func(a []string) (Command, error) {
		c := TableCommand{V: v}
		if len(a) > 0 {
			c.Table = a[0]
		}
		if len(a) > 1 {
			c.Value = a[1]
		}
		return c, nil
	}
}

func column(v Verb) builder {
	return func(a []string) (Command, error) {
		c := ColumnCommand{V: v, Table: a[0], Column: a[1]}
		if len(a) > 2 {
			c.Value = a[2]
		}
		return c, nil
	}
}

func sector(v Verb) builder {
	return func(a []string) (Command, error) {
		c := SectorCommand{V: v}
		if len(a) > 0 {
			c.Sector = a[0]
		}
		if len(a) > 1 {
			c.Value = a[1]
		}
		if len(a) > 2 {
			c.Description = a[2]
		}
		return c, nil
	}
}

func stack(v Verb) builder {
	return func(a []string) (Command, error) {
		c := StackCommand{V: v}
		if len(a) > 0 {
			c.Stack = a[0]
		}
		if len(a) > 1 {
			c.Path = a[1]
		}
		if len(a) > 2 {
			c.Value = a[2]
		}
		return c, nil
	}
}

func data(v Verb, withIndex bool) builder {
	return func(a []string) (Command, error) {
		c := DataCommand{V: v}
		if len(a) > 0 {
			c.Table = a[0]
		}
		if len(a) > 1 {
			c.Column = a[1]
		}
		rest := a[min(len(a), 2):]
		if withIndex && len(rest) > 0 {
			i, err := parseIndex(rest[0])
			if err != nil {
				return nil, err
			}
			c.Index = i
			rest = rest[1:]
		}
		if len(rest) > 0 {
			c.Value = rest[0]
		}
		return c, nil
	}
}

func row(v Verb) builder {
	return func(a []string) (Command, error) {
		i, err := parseIndex(a[1])
		if err != nil {
			return nil, err
		}
		return RowCommand{V: v, Table: a[0], Index: i}, nil
	}
}

func parseIndex(s string) (int, error) {
	i, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, errors.Wrapf(errors.ErrInvalidQuery, "index %q is not an integer", s)
	}
	return i, nil
}

func init() {
	// 1 segment
	register(VerbResetMocha, 1, mocha(VerbResetMocha))
	register(VerbResetTables, 1, table(VerbResetTables))
	register(VerbClearSectors, 1, sector(VerbClearSectors))
	register(VerbClearStacks, 1, stack(VerbClearStacks))
	register(VerbClearTables, 1, table(VerbClearTables))
	register(VerbGetPassword, 1, mocha(VerbGetPassword))
	register(VerbGetDescription, 1, mocha(VerbGetDescription))
	register(VerbGetTables, 1, table(VerbGetTables))
	register(VerbTableCount, 1, table(VerbTableCount))
	register(VerbGetSectors, 1, sector(VerbGetSectors))
	register(VerbSectorCount, 1, sector(VerbSectorCount))
	register(VerbGetStacks, 1, stack(VerbGetStacks))
	register(VerbStackCount, 1, stack(VerbStackCount))
	register(VerbGetDatas, 1, data(VerbGetDatas, false))

	// 2 segments
	register(VerbCreateMocha, 2, mocha(VerbCreateMocha))
	register(VerbSetPassword, 2, mocha(VerbSetPassword))
	register(VerbSetDescription, 2, mocha(VerbSetDescription))
	register(VerbCreateTable, 2, table(VerbCreateTable))
	register(VerbRemoveTable, 2, table(VerbRemoveTable))
	register(VerbResetTable, 2, table(VerbResetTable))
	register(VerbRemoveSector, 2, sector(VerbRemoveSector))
	register(VerbCreateStack, 2, stack(VerbCreateStack))
	register(VerbRemoveStack, 2, stack(VerbRemoveStack))
	register(VerbGetTable, 2, table(VerbGetTable))
	register(VerbExistsTable, 2, table(VerbExistsTable))
	register(VerbGetTableDescription, 2, table(VerbGetTableDescription))
	register(VerbGetColumns, 2, table(VerbGetColumns))
	register(VerbGetFirstColumnName, 2, table(VerbGetFirstColumnName))
	register(VerbColumnCount, 2, table(VerbColumnCount))
	register(VerbGetRows, 2, table(VerbGetRows))
	register(VerbRowCount, 2, table(VerbRowCount))
	register(VerbGetDatas, 2, data(VerbGetDatas, false))
	register(VerbDataCount, 2, data(VerbDataCount, false))
	register(VerbGetSector, 2, sector(VerbGetSector))
	register(VerbExistsSector, 2, sector(VerbExistsSector))
	register(VerbGetSectorData, 2, sector(VerbGetSectorData))
	register(VerbGetSectorDescription, 2, sector(VerbGetSectorDescription))
	register(VerbGetStack, 2, stack(VerbGetStack))
	register(VerbExistsStack, 2, stack(VerbExistsStack))
	register(VerbGetStackDescription, 2, stack(VerbGetStackDescription))

	// 3 segments
	register(VerbRenameTable, 3, table(VerbRenameTable))
	register(VerbSetTableDescription, 3, table(VerbSetTableDescription))
	register(VerbCreateColumn, 3, column(VerbCreateColumn))
	register(VerbRemoveColumn, 3, column(VerbRemoveColumn))
	register(VerbRemoveRow, 3, row(VerbRemoveRow))
	register(VerbSetSectorData, 3, sector(VerbSetSectorData))
	register(VerbSetSectorDescription, 3, sector(VerbSetSectorDescription))
	register(VerbRenameSector, 3, sector(VerbRenameSector))
	register(VerbSetStackDescription, 3, func(a []string) (Command, error) {
		return StackCommand{V: VerbSetStackDescription, Stack: a[0], Value: a[1]}, nil
	})
	register(VerbRenameStack, 3, func(a []string) (Command, error) {
		return StackCommand{V: VerbRenameStack, Stack: a[0], Name: a[1]}, nil
	})
	register(VerbRemoveStackItem, 3, stack(VerbRemoveStackItem))
	register(VerbGetColumn, 3, column(VerbGetColumn))
	register(VerbExistsColumn, 3, column(VerbExistsColumn))
	register(VerbGetColumnDescription, 3, column(VerbGetColumnDescription))
	register(VerbGetColumnDataType, 3, column(VerbGetColumnDataType))
	register(VerbGetRow, 3, row(VerbGetRow))
	register(VerbGetDatas, 3, data(VerbGetDatas, false))
	register(VerbDataCount, 3, data(VerbDataCount, false))
	register(VerbExistsStackItem, 3, stack(VerbExistsStackItem))
	register(VerbGetStackItem, 3, stack(VerbGetStackItem))
	register(VerbGetStackItemValue, 3, stack(VerbGetStackItemValue))
	register(VerbGetStackItemDescription, 3, stack(VerbGetStackItemDescription))

	// 4 segments
	register(VerbRenameColumn, 4, column(VerbRenameColumn))
	register(VerbSetColumnDescription, 4, column(VerbSetColumnDescription))
	register(VerbSetColumnDataType, 4, func(a []string) (Command, error) {
		kind, err := model.ParseKind(a[2])
		if err != nil {
			return nil, err
		}
		return ColumnCommand{V: VerbSetColumnDataType, Table: a[0], Column: a[1], Value: a[2], Kind: kind}, nil
	})
	register(VerbAddData, 4, data(VerbAddData, false))
	register(VerbUpdateFirstData, 4, data(VerbUpdateFirstData, false))
	register(VerbUpdateLastData, 4, data(VerbUpdateLastData, false))
	register(VerbAddSector, 4, sector(VerbAddSector))
	register(VerbCreateStackItem, 4, func(a []string) (Command, error) {
		// CREATESTACKITEM:stack:name:parentPath
		return StackCommand{V: VerbCreateStackItem, Stack: a[0], Name: a[1], Path: a[2]}, nil
	})
	register(VerbRenameStackItem, 4, func(a []string) (Command, error) {
		return StackCommand{V: VerbRenameStackItem, Stack: a[0], Path: a[1], Name: a[2]}, nil
	})
	register(VerbSetStackItemValue, 4, stack(VerbSetStackItemValue))
	register(VerbSetStackItemDescription, 4, stack(VerbSetStackItemDescription))
	register(VerbExistsData, 4, data(VerbExistsData, false))
	register(VerbGetData, 4, data(VerbGetData, true))

	register(VerbCreateMocha, 3, func(a []string) (Command, error) {
		return MochaCommand{V: VerbCreateMocha, Value: filepath.Join(a[0], a[1])}, nil
	})

	// 5 segments
	register(VerbUpdateData, 5, data(VerbUpdateData, true))
}

// Parse turns a colon-delimited command into a Command. Unknown verbs and
// argument counts fail with errors.ErrInvalidQuery.
func Parse(text string) (Command, error) {
	text = strings.TrimSpace(text)
	if strings.Contains(text, breakQuery) {
		return Noop{}, nil
	}
	if text == "" {
		return nil, errors.Wrap(errors.ErrInvalidQuery, "empty command")
	}

	parts := strings.Split(text, ":")
	verb := Verb(strings.ToUpper(strings.TrimSpace(parts[0])))
	b, ok := builders[signature{verb, len(parts)}]
	if !ok {
		return nil, errors.WithHint(
			errors.Wrapf(errors.ErrInvalidQuery, "unknown command %s with %d arguments", verb, len(parts)-1),
			"commands look like VERB:arg1:arg2")
	}
	return b(parts[1:])
}
