package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vegasq/mochadb/database"
	"github.com/vegasq/mochadb/mochaq"
	"github.com/vegasq/mochadb/output"
	"github.com/vegasq/mochadb/query"
	"github.com/vegasq/mochadb/reader"
)

func newCreateCmd(a *app) *cobra.Command {
	var description string
	cmd := &cobra.Command{
		Use:   "create <path>",
		Short: "Create a new database",
		Long: `Create a new database.

The global --password flag protects the new database with a password.

Examples:
  mocha create people.mochadb --description "demo"
  mocha create people.db --backend sqlite --password secret`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.create(args[0], description, a.cfg.Database.Password); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "created %s\n", args[0])
			return nil
		},
	}
	cmd.Flags().StringVar(&description, "description", "", "database description")
	return cmd
}

// withDatabase opens the configured database for the duration of fn
func (a *app) withDatabase(fn func(db *database.Database) error) error {
	db, err := a.open()
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()
	return fn(db)
}

// newCommand returns an MHQL processor bound to db
func (a *app) newCommand(db *database.Database) (*query.Command, error) {
	return query.NewCommand(db, query.Options{
		CacheSize: a.cfg.Query.CacheSize,
		Logger:    a.log.Named("query"),
	})
}

// newRunner returns a MochaQ runner bound to db. CREATEMOCHA creates
// databases with the configured backend.
func (a *app) newRunner(db *database.Database) *mochaq.Runner {
	r := mochaq.NewRunner(db, a.log.Named("mochaq"))
	r.Create = func(path string) error { return a.create(path, "", "") }
	return r
}

// printReader formats every result of an MHQL query
func (a *app) printReader(r *query.Reader) error {
	for r.Read() {
		if err := a.print(r.Value()); err != nil {
			return err
		}
	}
	return nil
}

func newQueryCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "query <mhql>",
		Short: "Run an MHQL query and print its results",
		Long: `Run an MHQL query and print its results.

Queries ending in REMOVE print the removed entities.

Examples:
  mocha query "USE Persons.Name, Persons.Age FROM Persons RETURN"
  mocha query "USE * FROM Persons MUST BIGGER(Age, 18) END ORDERBY Name RETURN" -f csv
  mocha query "@SECTORS SELECT * RETURN"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withDatabase(func(db *database.Database) error {
				c, err := a.newCommand(db)
				if err != nil {
					return err
				}
				r, err := c.Execute(args[0])
				if err != nil {
					return err
				}
				return a.printReader(r)
			})
		},
	}
}

func newExecCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "exec <mhql>",
		Short: "Run an MHQL REMOVE query and print the number of removed entities",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withDatabase(func(db *database.Database) error {
				c, err := a.newCommand(db)
				if err != nil {
					return err
				}
				n, err := c.ExecuteCommand(args[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(a.out, "removed %d\n", n)
				return nil
			})
		},
	}
}

func newRunCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "run <mochaq>",
		Short: "Run a MochaQ command that changes the database",
		Long: `Run a MochaQ command that changes the database.

Examples:
  mocha run "CREATETABLE:Persons"
  mocha run "CREATECOLUMN:Persons:Name"
  mocha run "ADDDATA:Persons:Name:Alice"
  mocha run "ADDSECTOR:Motd:Hello:Message of the day"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withDatabase(func(db *database.Database) error {
				return a.newRunner(db).Run(args[0])
			})
		},
	}
}

func newGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <mochaq>",
		Short: "Run a MochaQ GET, EXISTS or COUNT command and print its value",
		Long: `Run a MochaQ GET, EXISTS or COUNT command and print its value.

Examples:
  mocha get "GETTABLE:Persons"
  mocha get "EXISTSSECTOR:Motd"
  mocha get "DATACOUNT:Persons:Name"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withDatabase(func(db *database.Database) error {
				v, err := a.newRunner(db).GetRun(args[0])
				if err != nil {
					return err
				}
				return a.print(v)
			})
		},
	}
}

func newImportCmd(a *app) *cobra.Command {
	var table string
	cmd := &cobra.Command{
		Use:   "import <file.parquet>",
		Short: "Import Parquet files as a new table",
		Long: `Import Parquet files as a new table.

The argument may be a glob pattern; rows from every matching file are
appended and tagged with their source file in the _file column.

Examples:
  mocha import events.parquet --table Events
  mocha import "logs/*.parquet" --table Logs`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := table
			if name == "" {
				name = tableName(args[0])
			}
			t, err := reader.ReadTable(args[0], name)
			if err != nil {
				return err
			}
			return a.withDatabase(func(db *database.Database) error {
				if err := db.AddTable(t); err != nil {
					return err
				}
				a.log.Infow("parquet imported", "source", args[0], "table", t.Name, "rows", t.RowCount())
				fmt.Fprintf(a.out, "imported %d rows into %s\n", t.RowCount(), t.Name)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&table, "table", "t", "", "table name (default: the file name)")
	return cmd
}

// tableName derives a table name from a file path or glob
func tableName(path string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	base = strings.Map(func(r rune) rune {
		if strings.ContainsRune("*?[]", r) {
			return -1
		}
		return r
	}, base)
	if base == "" {
		return "Imported"
	}
	return base
}

func newSchemaCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "schema <file.parquet>",
		Short: "Show the schema of a Parquet file and the columns an import creates",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			infos, err := reader.ExtractSchemaInfo(args[0])
			if err != nil {
				return err
			}
			rec := output.Records{Columns: []string{
				"Name", "Type", "PhysicalType", "LogicalType", "Repetition", "Column", "Kind",
			}}
			for _, info := range infos {
				rec.Rows = append(rec.Rows, []any{
					info.Name, info.Type, info.PhysicalType, info.LogicalType,
					repetition(info), info.Column, info.Kind,
				})
			}
			return a.print(rec)
		},
	}
}

func repetition(info reader.SchemaInfo) string {
	switch {
	case info.Repeated:
		return "repeated"
	case info.Optional:
		return "optional"
	}
	return "required"
}
