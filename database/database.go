package database

import (
	"go.uber.org/zap"

	"github.com/vegasq/mochadb/errors"
	"github.com/vegasq/mochadb/logger"
	"github.com/vegasq/mochadb/store"
)

// Change describes one committed mutation.
type Change struct {
	// Op is the operation name, e.g. "AddTable" or "UpdateData".
	Op string
	// Target is the document path of the affected entity.
	Target string
}

// Observer is notified after every committed and saved mutation.
type Observer interface {
	Changed(Change)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(Change)

// Changed calls f(c).
func (f ObserverFunc) Changed(c Change) { f(c) }

// Options configures Open.
type Options struct {
	// Password must match the stored database password when one is set.
	Password string
	// Logger defaults to the global logger named "database".
	Logger *zap.SugaredLogger
	// Observer, when set, receives every committed change.
	Observer Observer
}

// Database is a connected mochadb database. Every mutating method saves the
// whole document before returning; a failed save leaves the in-memory tree
// ahead of the persisted copy. A Database is not safe for concurrent use.
type Database struct {
	doc       *store.Document
	log       *zap.SugaredLogger
	observer  Observer
	connected bool
}

// Open loads the document held by backend and connects to it.
func Open(backend store.Backend, opts Options) (*Database, error) {
	log := opts.Logger
	if log == nil {
		log = logger.Named("database")
	}

	doc, err := store.Open(backend)
	if err != nil {
		return nil, err
	}

	stored := passwordOf(doc.Root())
	if stored != "" && stored != opts.Password {
		_ = doc.Close()
		return nil, errors.WithHint(
			errors.Wrap(errors.ErrConnection, "password does not match"),
			"pass the database password with --password or database.password")
	}

	log.Infow("database opened", "backend", backend.Name())
	return &Database{
		doc:       doc,
		log:       log,
		observer:  opts.Observer,
		connected: true,
	}, nil
}

// Close disconnects the database and releases its backend.
func (db *Database) Close() error {
	if !db.connected {
		return nil
	}
	db.connected = false
	db.log.Infow("database closed", "backend", db.doc.Backend().Name())
	return db.doc.Close()
}

// IsConnected reports whether the database accepts operations.
func (db *Database) IsConnected() bool { return db.connected }

// Name identifies the backing store.
func (db *Database) Name() string { return db.doc.Backend().Name() }

// Reload discards unsaved state and reads the document again.
func (db *Database) Reload() error {
	if err := db.check(); err != nil {
		return err
	}
	return db.doc.Load()
}

func (db *Database) check() error {
	if !db.connected {
		return errors.Wrap(errors.ErrConnection, "database is not connected")
	}
	return nil
}

// commit saves the document and notifies the observer.
func (db *Database) commit(op, target string) error {
	if err := db.doc.Save(); err != nil {
		db.log.Errorw("save failed", "op", op, "target", target, "error", err)
		return err
	}
	db.log.Debugw("saved", "op", op, "target", target, "backend", db.doc.Backend().Name())
	if db.observer != nil {
		db.observer.Changed(Change{Op: op, Target: target})
	}
	return nil
}

// container returns one of the top-level container nodes.
func (db *Database) container(name string) *store.Node {
	n := db.doc.Root().Child(name)
	if n == nil {
		n = db.doc.Root().Add(store.NewNode(name, ""))
	}
	return n
}

func passwordOf(root *store.Node) string {
	meta := root.Child(store.RootNode)
	if meta == nil {
		return ""
	}
	if p := meta.Child(store.PasswordNode); p != nil {
		return p.Value
	}
	return ""
}

func (db *Database) metaNode(name string) *store.Node {
	meta := db.container(store.RootNode)
	n := meta.Child(name)
	if n == nil {
		n = meta.Add(store.NewNode(name, ""))
	}
	return n
}

// Password returns the database password.
func (db *Database) Password() (string, error) {
	if err := db.check(); err != nil {
		return "", err
	}
	return db.metaNode(store.PasswordNode).Value, nil
}

// SetPassword replaces the database password.
func (db *Database) SetPassword(password string) error {
	if err := db.check(); err != nil {
		return err
	}
	db.metaNode(store.PasswordNode).Value = password
	return db.commit("SetPassword", store.JoinPath(store.RootNode, store.PasswordNode))
}

// Description returns the database description.
func (db *Database) Description() (string, error) {
	if err := db.check(); err != nil {
		return "", err
	}
	return db.metaNode(store.DescriptionNode).Value, nil
}

// SetDescription replaces the database description.
func (db *Database) SetDescription(description string) error {
	if err := db.check(); err != nil {
		return err
	}
	db.metaNode(store.DescriptionNode).Value = description
	return db.commit("SetDescription", store.JoinPath(store.RootNode, store.DescriptionNode))
}

// Reset empties the database, including its password and description.
func (db *Database) Reset() error {
	if err := db.check(); err != nil {
		return err
	}
	db.doc.Reset()
	return db.commit("Reset", "")
}

// ClearSectors removes every sector.
func (db *Database) ClearSectors() error {
	return db.clearContainer("ClearSectors", store.SectorsNode)
}

// ClearStacks removes every stack.
func (db *Database) ClearStacks() error {
	return db.clearContainer("ClearStacks", store.StacksNode)
}

// ClearTables removes every table.
func (db *Database) ClearTables() error {
	return db.clearContainer("ClearTables", store.TablesNode)
}

func (db *Database) clearContainer(op, name string) error {
	if err := db.check(); err != nil {
		return err
	}
	db.container(name).RemoveAll()
	return db.commit(op, name)
}
