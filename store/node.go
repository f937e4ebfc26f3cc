package store

import (
	"github.com/vegasq/mochadb/errors"
)

// Attr is a named attribute on a node. Attributes keep insertion order.
type Attr struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Node is one element of the document tree. Sibling names are usually
// unique; column data cells are the exception and share the name "Data".
type Node struct {
	Name     string  `json:"name"`
	Value    string  `json:"value,omitempty"`
	Attrs    []Attr  `json:"attrs,omitempty"`
	Children []*Node `json:"children,omitempty"`
}

// NewNode creates a node with a name and optional text value.
func NewNode(name, value string) *Node {
	return &Node{Name: name, Value: value}
}

// Child returns the first child with the given name, or nil.
func (n *Node) Child(name string) *Node {
	for _, c := range n.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// ChildrenNamed returns every child with the given name.
func (n *Node) ChildrenNamed(name string) []*Node {
	var out []*Node
	for _, c := range n.Children {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

// Add appends child and returns it.
func (n *Node) Add(child *Node) *Node {
	n.Children = append(n.Children, child)
	return child
}

// AddUnique appends child unless a sibling already uses its name.
func (n *Node) AddUnique(child *Node) error {
	if n.Child(child.Name) != nil {
		return errors.Wrapf(errors.ErrAlreadyExists, "%s already has %q", n.Name, child.Name)
	}
	n.Add(child)
	return nil
}

// Remove deletes the first child with the given name and reports whether
// one was found.
func (n *Node) Remove(name string) bool {
	for i, c := range n.Children {
		if c.Name == name {
			n.Children = append(n.Children[:i], n.Children[i+1:]...)
			return true
		}
	}
	return false
}

// RemoveAll deletes every child.
func (n *Node) RemoveAll() {
	n.Children = nil
}

// Rename renames the child oldName, failing when newName is taken.
func (n *Node) Rename(oldName, newName string) error {
	c := n.Child(oldName)
	if c == nil {
		return errors.Wrapf(errors.ErrNotFound, "%s has no %q", n.Name, oldName)
	}
	if oldName == newName {
		return nil
	}
	if n.Child(newName) != nil {
		return errors.Wrapf(errors.ErrAlreadyExists, "%s already has %q", n.Name, newName)
	}
	c.Name = newName
	return nil
}

// Attr returns the value of the named attribute, or "".
func (n *Node) Attr(name string) string {
	v, _ := n.LookupAttr(name)
	return v
}

// LookupAttr returns the named attribute and whether it is set.
func (n *Node) LookupAttr(name string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// SetAttr sets or replaces an attribute.
func (n *Node) SetAttr(name, value string) {
	for i, a := range n.Attrs {
		if a.Name == name {
			n.Attrs[i].Value = value
			return
		}
	}
	n.Attrs = append(n.Attrs, Attr{Name: name, Value: value})
}

// Clone returns a deep copy of the subtree rooted at n.
func (n *Node) Clone() *Node {
	out := &Node{Name: n.Name, Value: n.Value}
	if len(n.Attrs) > 0 {
		out.Attrs = append([]Attr(nil), n.Attrs...)
	}
	for _, c := range n.Children {
		out.Children = append(out.Children, c.Clone())
	}
	return out
}
