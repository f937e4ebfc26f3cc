package main

import (
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/vegasq/mochadb/config"
	"github.com/vegasq/mochadb/database"
	"github.com/vegasq/mochadb/errors"
	"github.com/vegasq/mochadb/logger"
	"github.com/vegasq/mochadb/output"
	"github.com/vegasq/mochadb/store"
	"github.com/vegasq/mochadb/store/filestore"
	"github.com/vegasq/mochadb/store/memstore"
	"github.com/vegasq/mochadb/store/sqlitestore"
)

// app carries state shared by every subcommand
type app struct {
	configPath string
	cfg        *config.Config
	log        *zap.SugaredLogger
	out        io.Writer
	errOut     io.Writer
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	a := &app{out: out, errOut: errOut, log: logger.Named("cli")}

	root := &cobra.Command{
		Use:   "mocha",
		Short: "mochadb - embedded tabular store with MHQL and MochaQ",
		Long: `mocha - create, query and edit mochadb databases.

A mochadb database holds tables, sectors (named text blobs) and stacks
(trees of items). It is queried with MHQL and edited with MochaQ commands.

Examples:
  mocha create people.mochadb --description "demo"
  mocha run "CREATETABLE:Persons"
  mocha get "TABLECOUNT"
  mocha query "USE * FROM Persons MUST BIGGER(Age, 18) END ORDERBY Name RETURN"
  mocha exec "SELECT Temp.* REMOVE"
  mocha import events.parquet --table Events
  mocha shell`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := config.New(a.configPath)
			if err != nil {
				return err
			}
			bindFlags(cmd, loaded)

			cfg, err := config.FromViper(loaded)
			if err != nil {
				return err
			}
			a.cfg = cfg

			if err := logger.Initialize(cfg.Log.JSON, cfg.Log.Level); err != nil {
				return errors.Wrap(err, "failed to initialize logger")
			}
			a.log = logger.Named("cli")
			return nil
		},
	}
	root.SetOut(out)
	root.SetErr(errOut)

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "config file (default: ./mocha.toml or ~/.mocha/mocha.toml)")
	flags.String("db", "", "database path (database.path)")
	flags.String("backend", "", "storage backend: file, sqlite or memory (database.backend)")
	flags.String("key", "", "encryption secret of the file backend (database.key)")
	flags.String("password", "", "database password (database.password)")
	flags.StringP("format", "f", "", "output format: jsonl, csv or table (output.format)")
	flags.Bool("json-log", false, "write logs as JSON (log.json)")
	flags.String("log-level", "", "log level: debug, info, warn or error (log.level)")

	root.AddCommand(
		newCreateCmd(a),
		newQueryCmd(a),
		newExecCmd(a),
		newRunCmd(a),
		newGetCmd(a),
		newImportCmd(a),
		newSchemaCmd(a),
		newShellCmd(a),
	)
	return root
}

// flagKeys maps persistent flags to configuration keys
var flagKeys = map[string]string{
	"db":        "database.path",
	"backend":   "database.backend",
	"key":       "database.key",
	"password":  "database.password",
	"format":    "output.format",
	"json-log":  "log.json",
	"log-level": "log.level",
}

// bindFlags lets flags given on the command line override the config
func bindFlags(cmd *cobra.Command, v *viper.Viper) {
	for name, key := range flagKeys {
		if f := cmd.Flags().Lookup(name); f != nil && f.Changed {
			_ = v.BindPFlag(key, f)
		}
	}
}

// backend builds the store.Backend cfg selects for path
func backend(cfg config.DatabaseConfig, path string) (store.Backend, error) {
	switch cfg.Backend {
	case config.BackendFile:
		return filestore.New(path, cfg.Key), nil
	case config.BackendSQLite:
		return sqlitestore.Open(path)
	case config.BackendMemory:
		return memstore.New(), nil
	}
	return nil, errors.Newf("unknown database backend %q", cfg.Backend)
}

// open connects to the configured database
func (a *app) open() (*database.Database, error) {
	b, err := backend(a.cfg.Database, a.cfg.Database.Path)
	if err != nil {
		return nil, err
	}
	db, err := database.Open(b, database.Options{
		Password: a.cfg.Database.Password,
		Logger:   logger.Named("database"),
	})
	if err != nil {
		_ = b.Close()
		return nil, err
	}
	return db, nil
}

// create makes a new database at path with the configured backend
func (a *app) create(path, description, password string) error {
	if a.cfg.Database.Backend == config.BackendFile {
		if err := filestore.Create(path, a.cfg.Database.Key); err != nil {
			return err
		}
	}
	b, err := backend(a.cfg.Database, path)
	if err != nil {
		return err
	}
	db, err := database.Open(b, database.Options{Logger: logger.Named("database")})
	if err != nil {
		_ = b.Close()
		return err
	}
	defer func() { _ = db.Close() }()

	if description != "" {
		if err := db.SetDescription(description); err != nil {
			return err
		}
	}
	if password != "" {
		if err := db.SetPassword(password); err != nil {
			return err
		}
	}
	a.log.Infow("database created", "path", path, "backend", a.cfg.Database.Backend)
	return nil
}

// formatter returns the configured output formatter
func (a *app) formatter() (output.Formatter, error) {
	return output.New(a.cfg.Output.Format, a.out)
}

// print renders one result with the configured formatter
func (a *app) print(v any) error {
	f, err := a.formatter()
	if err != nil {
		return err
	}
	return f.Format(output.FromValue(v))
}
