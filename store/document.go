package store

import (
	"strings"

	"github.com/vegasq/mochadb/errors"
)

// Top-level containers of a mochadb document.
const (
	RootName       = "Mocha"
	RootNode       = "Root"
	SectorsNode    = "Sectors"
	StacksNode     = "Stacks"
	TablesNode     = "Tables"
	FileSystemNode = "FileSystem"

	PasswordNode    = "Password"
	DescriptionNode = "Description"
)

// Backend persists a whole document tree. Load returns a nil node when the
// backing store holds no document yet.
type Backend interface {
	Load() (*Node, error)
	Save(root *Node) error
	Close() error
	// Name identifies the backend in logs, e.g. "file:/tmp/x.mochadb".
	Name() string
}

// Document is a node tree bound to the backend that persists it. Paths are
// "/"-delimited node names below the document root, e.g. "Tables/Persons".
type Document struct {
	root    *Node
	backend Backend
}

// NewTree returns an empty mochadb document tree.
func NewTree() *Node {
	root := NewNode(RootName, "")
	meta := root.Add(NewNode(RootNode, ""))
	meta.Add(NewNode(PasswordNode, ""))
	meta.Add(NewNode(DescriptionNode, ""))
	root.Add(NewNode(SectorsNode, ""))
	root.Add(NewNode(StacksNode, ""))
	root.Add(NewNode(TablesNode, ""))
	root.Add(NewNode(FileSystemNode, ""))
	return root
}

// Open loads the document held by backend, creating an empty tree when the
// backend is empty.
func Open(backend Backend) (*Document, error) {
	d := &Document{backend: backend}
	if err := d.Load(); err != nil {
		return nil, err
	}
	return d, nil
}

// Root returns the document root.
func (d *Document) Root() *Node { return d.root }

// Backend returns the backend the document is bound to.
func (d *Document) Backend() Backend { return d.backend }

// GetNode resolves a "/"-delimited path.
func (d *Document) GetNode(path string) (*Node, error) {
	n := d.root
	for _, seg := range splitPath(path) {
		next := n.Child(seg)
		if next == nil {
			return nil, errors.Wrapf(errors.ErrNotFound, "node %q", path)
		}
		n = next
	}
	return n, nil
}

// Exists reports whether path resolves to a node.
func (d *Document) Exists(path string) bool {
	_, err := d.GetNode(path)
	return err == nil
}

// Load replaces the in-memory tree with the persisted one.
func (d *Document) Load() error {
	root, err := d.backend.Load()
	if err != nil {
		return errors.Wrapf(errors.ErrConnection, "load %s: %v", d.backend.Name(), err)
	}
	if root == nil {
		root = NewTree()
	}
	if err := Validate(root); err != nil {
		return err
	}
	d.root = root
	return nil
}

// Save writes the whole tree to the backend.
func (d *Document) Save() error {
	if err := d.backend.Save(d.root); err != nil {
		return errors.Wrapf(err, "save %s", d.backend.Name())
	}
	return nil
}

// Reset replaces the tree with an empty document, keeping nothing.
func (d *Document) Reset() {
	d.root = NewTree()
}

// Close releases the backend.
func (d *Document) Close() error {
	return d.backend.Close()
}

// Validate checks that root has the shape of a mochadb document.
func Validate(root *Node) error {
	if root == nil || root.Name != RootName {
		return errors.Wrap(errors.ErrConnection, "document is not a mochadb database")
	}
	for _, name := range []string{RootNode, SectorsNode, StacksNode, TablesNode} {
		if root.Child(name) == nil {
			return errors.Wrapf(errors.ErrConnection, "document is missing %q", name)
		}
	}
	if root.Child(FileSystemNode) == nil {
		root.Add(NewNode(FileSystemNode, ""))
	}
	return nil
}

// JoinPath joins node names into a document path, skipping empty names.
func JoinPath(segs ...string) string {
	parts := make([]string, 0, len(segs))
	for _, s := range segs {
		if s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, "/")
}

func splitPath(path string) []string {
	var out []string
	for _, seg := range strings.Split(path, "/") {
		if seg != "" {
			out = append(out, seg)
		}
	}
	return out
}
