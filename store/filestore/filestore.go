// Package filestore persists a mochadb document as one encrypted file.
//
// The file starts with a magic header followed by the XChaCha20-Poly1305
// sealed JSON encoding of the node tree. The cipher key is derived from a
// secret with scrypt and a random salt stored in the file. Saves write a
// temporary file next to the target and rename it into place.
package filestore

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/vegasq/mochadb/errors"
	"github.com/vegasq/mochadb/store"
)

// Extension is the conventional suffix of database files.
const Extension = ".mochadb"

var magic = []byte("MOCHADB1")

// Store is a file-backed store.Backend.
type Store struct {
	path   string
	secret string
	key    *cipherKey
}

// New returns a backend for the file at path. The file need not exist yet.
func New(path, secret string) *Store {
	return &Store{path: path, secret: secret}
}

// Create writes an empty database to path, failing when the file exists.
func Create(path, secret string) error {
	if _, err := os.Stat(path); err == nil {
		return errors.Wrapf(errors.ErrAlreadyExists, "database file %s", path)
	}
	return New(path, secret).Save(store.NewTree())
}

// Path returns the database file path.
func (s *Store) Path() string { return s.path }

// Name identifies the backend.
func (s *Store) Name() string { return "file:" + s.path }

// Load reads and decrypts the file. A missing file loads as nil.
func (s *Store) Load() (*store.Node, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "failed to read database file")
	}
	if !bytes.HasPrefix(data, magic) {
		return nil, errors.Newf("%s is not a mochadb file", s.path)
	}
	plain, key, err := open(s.secret, s.key, data[len(magic):])
	if err != nil {
		return nil, err
	}
	s.key = key
	return store.Unmarshal(plain)
}

// Save encrypts root and replaces the file atomically.
func (s *Store) Save(root *store.Node) error {
	plain, err := store.Marshal(root)
	if err != nil {
		return err
	}
	if s.key == nil {
		if s.key, err = newKey(s.secret); err != nil {
			return errors.Wrap(err, "derive key")
		}
	}
	sealed, err := s.key.seal(plain)
	if err != nil {
		return errors.Wrap(err, "encrypt document")
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return errors.Wrap(err, "failed to create temp file")
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(magic); err != nil {
		_ = tmp.Close()
		return errors.Wrap(err, "failed to write database file")
	}
	if _, err := tmp.Write(sealed); err != nil {
		_ = tmp.Close()
		return errors.Wrap(err, "failed to write database file")
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return errors.Wrap(err, "failed to sync database file")
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "failed to close database file")
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return errors.Wrap(err, "failed to replace database file")
	}
	return nil
}

// Close is a no-op; the file is only open during Load and Save.
func (s *Store) Close() error { return nil }
