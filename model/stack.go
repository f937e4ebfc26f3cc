package model

import (
	"strings"

	"github.com/vegasq/mochadb/errors"
)

// Stack is a named tree of items.
type Stack struct {
	Name        string
	Description string
	Items       []*StackItem
}

// StackItem is one node of a stack. Items are addressed by a
// "/"-delimited path of item names starting below the stack.
type StackItem struct {
	Name        string
	Value       string
	Description string
	Items       []*StackItem
}

// NewStack validates name and returns an empty stack.
func NewStack(name, description string) (*Stack, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}
	return &Stack{Name: name, Description: description}, nil
}

// NewStackItem validates name and returns a leaf item.
func NewStackItem(name, value, description string) (*StackItem, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}
	return &StackItem{Name: name, Value: value, Description: description}, nil
}

// SplitItemPath splits a "/"-delimited item path, dropping empty segments.
func SplitItemPath(path string) []string {
	var out []string
	for _, seg := range strings.Split(path, "/") {
		if seg = strings.TrimSpace(seg); seg != "" {
			out = append(out, seg)
		}
	}
	return out
}

// Item resolves path below the stack.
func (s *Stack) Item(path string) (*StackItem, error) {
	segs := SplitItemPath(path)
	if len(segs) == 0 {
		return nil, errors.Wrapf(errors.ErrNotFound, "stack %q: empty item path", s.Name)
	}
	items := s.Items
	var cur *StackItem
	for _, seg := range segs {
		cur = findItem(items, seg)
		if cur == nil {
			return nil, errors.Wrapf(errors.ErrNotFound, "stack %q has no item %q", s.Name, path)
		}
		items = cur.Items
	}
	return cur, nil
}

// AddItem adds item under the item at parentPath; an empty parentPath adds
// it at the top level. Sibling names must be unique.
func (s *Stack) AddItem(parentPath string, item *StackItem) error {
	siblings := &s.Items
	if len(SplitItemPath(parentPath)) > 0 {
		parent, err := s.Item(parentPath)
		if err != nil {
			return err
		}
		siblings = &parent.Items
	}
	if findItem(*siblings, item.Name) != nil {
		return errors.Wrapf(errors.ErrAlreadyExists, "stack %q already has item %q under %q", s.Name, item.Name, parentPath)
	}
	*siblings = append(*siblings, item)
	return nil
}

// RemoveItem deletes the item at path with its children.
func (s *Stack) RemoveItem(path string) error {
	segs := SplitItemPath(path)
	if len(segs) == 0 {
		return errors.Wrapf(errors.ErrNotFound, "stack %q: empty item path", s.Name)
	}
	siblings := &s.Items
	if len(segs) > 1 {
		parent, err := s.Item(strings.Join(segs[:len(segs)-1], "/"))
		if err != nil {
			return err
		}
		siblings = &parent.Items
	}
	name := segs[len(segs)-1]
	for i, it := range *siblings {
		if it.Name == name {
			*siblings = append((*siblings)[:i], (*siblings)[i+1:]...)
			return nil
		}
	}
	return errors.Wrapf(errors.ErrNotFound, "stack %q has no item %q", s.Name, path)
}

// RenameItem renames the item at path, keeping sibling names unique.
func (s *Stack) RenameItem(path, newName string) error {
	if err := ValidateName(newName); err != nil {
		return err
	}
	item, err := s.Item(path)
	if err != nil {
		return err
	}
	if item.Name == newName {
		return nil
	}
	segs := SplitItemPath(path)
	siblings := s.Items
	if len(segs) > 1 {
		parent, _ := s.Item(strings.Join(segs[:len(segs)-1], "/"))
		siblings = parent.Items
	}
	if findItem(siblings, newName) != nil {
		return errors.Wrapf(errors.ErrAlreadyExists, "stack %q already has item %q", s.Name, newName)
	}
	item.Name = newName
	return nil
}

// Walk visits every item depth-first with its path.
func (s *Stack) Walk(fn func(path string, item *StackItem)) {
	var walk func(prefix string, items []*StackItem)
	walk = func(prefix string, items []*StackItem) {
		for _, it := range items {
			p := it.Name
			if prefix != "" {
				p = prefix + "/" + it.Name
			}
			fn(p, it)
			walk(p, it.Items)
		}
	}
	walk("", s.Items)
}

func findItem(items []*StackItem, name string) *StackItem {
	for _, it := range items {
		if it.Name == name {
			return it
		}
	}
	return nil
}
