// Package sqlitestore persists a mochadb document in a SQLite database,
// one row per node. Saves replace the whole tree in a single transaction.
package sqlitestore

import (
	"database/sql"
	"encoding/json"

	_ "modernc.org/sqlite"

	"github.com/vegasq/mochadb/errors"
	"github.com/vegasq/mochadb/store"
)

const schema = `
	CREATE TABLE IF NOT EXISTS mocha_nodes (
		id     INTEGER PRIMARY KEY,
		parent INTEGER NOT NULL,
		name   TEXT NOT NULL,
		value  TEXT NOT NULL DEFAULT '',
		attrs  TEXT NOT NULL DEFAULT '[]'
	);
	CREATE INDEX IF NOT EXISTS mocha_nodes_parent ON mocha_nodes(parent);
`

// Store is a SQLite store.Backend.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens or creates the SQLite database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, errors.Wrap(err, "open sqlite store")
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "init sqlite schema")
	}
	return &Store{db: db, path: path}, nil
}

// Name identifies the backend.
func (s *Store) Name() string { return "sqlite:" + s.path }

// Load rebuilds the tree from the node rows. Ids are assigned in pre-order,
// so every parent precedes its children and siblings come back in order.
func (s *Store) Load() (*store.Node, error) {
	rows, err := s.db.Query(`SELECT id, parent, name, value, attrs FROM mocha_nodes ORDER BY id`)
	if err != nil {
		return nil, errors.Wrap(err, "query nodes")
	}
	defer func() { _ = rows.Close() }()

	nodes := make(map[int64]*store.Node)
	var root *store.Node
	for rows.Next() {
		var (
			id, parent  int64
			name, value string
			attrs       string
		)
		if err := rows.Scan(&id, &parent, &name, &value, &attrs); err != nil {
			return nil, errors.Wrap(err, "scan node")
		}
		n := store.NewNode(name, value)
		if err := json.Unmarshal([]byte(attrs), &n.Attrs); err != nil {
			return nil, errors.Wrapf(err, "decode attributes of node %d", id)
		}
		if len(n.Attrs) == 0 {
			n.Attrs = nil
		}
		nodes[id] = n
		if parent == 0 {
			root = n
			continue
		}
		p, ok := nodes[parent]
		if !ok {
			return nil, errors.Newf("node %d references missing parent %d", id, parent)
		}
		p.Add(n)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterate nodes")
	}
	return root, nil
}

// Save replaces every stored node with the tree rooted at root.
func (s *Store) Save(root *store.Node) error {
	tx, err := s.db.Begin()
	if err != nil {
		return errors.Wrap(err, "begin save")
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DELETE FROM mocha_nodes`); err != nil {
		return errors.Wrap(err, "clear nodes")
	}
	stmt, err := tx.Prepare(`INSERT INTO mocha_nodes (id, parent, name, value, attrs) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return errors.Wrap(err, "prepare insert")
	}
	defer func() { _ = stmt.Close() }()

	var next int64
	var insert func(n *store.Node, parent int64) error
	insert = func(n *store.Node, parent int64) error {
		next++
		id := next
		attrs := n.Attrs
		if attrs == nil {
			attrs = []store.Attr{}
		}
		encoded, err := json.Marshal(attrs)
		if err != nil {
			return err
		}
		if _, err := stmt.Exec(id, parent, n.Name, n.Value, string(encoded)); err != nil {
			return errors.Wrapf(err, "insert node %q", n.Name)
		}
		for _, c := range n.Children {
			if err := insert(c, id); err != nil {
				return err
			}
		}
		return nil
	}
	if err := insert(root, 0); err != nil {
		return err
	}
	return tx.Commit()
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	return s.db.Close()
}
