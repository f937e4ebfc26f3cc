package database

import (
	"github.com/vegasq/mochadb/errors"
	"github.com/vegasq/mochadb/model"
	"github.com/vegasq/mochadb/store"
)

func (db *Database) stackNode(name string) (*store.Node, error) {
	if err := db.check(); err != nil {
		return nil, err
	}
	n := db.container(store.StacksNode).Child(name)
	if n == nil {
		return nil, errors.Wrapf(errors.ErrNotFound, "stack %q", name)
	}
	return n, nil
}

// itemNode resolves a "/"-delimited item path below a stack node.
func itemNode(stack *store.Node, path string) (*store.Node, error) {
	segs := model.SplitItemPath(path)
	if len(segs) == 0 {
		return nil, errors.Wrapf(errors.ErrNotFound, "stack %q: empty item path", stack.Name)
	}
	n := stack
	for _, seg := range segs {
		if n = n.Child(seg); n == nil {
			return nil, errors.Wrapf(errors.ErrNotFound, "stack %q has no item %q", stack.Name, path)
		}
	}
	return n, nil
}

// AddStack stores a new stack with its items.
func (db *Database) AddStack(s *model.Stack) error {
	if err := db.check(); err != nil {
		return err
	}
	if err := model.ValidateName(s.Name); err != nil {
		return err
	}
	if err := db.container(store.StacksNode).AddUnique(stackToNode(s)); err != nil {
		return errors.Wrapf(err, "stack %q", s.Name)
	}
	return db.commit("AddStack", store.JoinPath(store.StacksNode, s.Name))
}

// CreateStack stores a new empty stack.
func (db *Database) CreateStack(name string) error {
	return db.AddStack(&model.Stack{Name: name})
}

// RemoveStack deletes a stack.
func (db *Database) RemoveStack(name string) error {
	if _, err := db.stackNode(name); err != nil {
		return err
	}
	db.container(store.StacksNode).Remove(name)
	return db.commit("RemoveStack", store.JoinPath(store.StacksNode, name))
}

// RenameStack renames a stack.
func (db *Database) RenameStack(name, newName string) error {
	if _, err := db.stackNode(name); err != nil {
		return err
	}
	if err := model.ValidateName(newName); err != nil {
		return err
	}
	if err := db.container(store.StacksNode).Rename(name, newName); err != nil {
		return err
	}
	return db.commit("RenameStack", store.JoinPath(store.StacksNode, newName))
}

// GetStack returns a copy of a stack and its items.
func (db *Database) GetStack(name string) (*model.Stack, error) {
	n, err := db.stackNode(name)
	if err != nil {
		return nil, err
	}
	return stackFromNode(n), nil
}

// GetStacks returns every stack in storage order.
func (db *Database) GetStacks() ([]*model.Stack, error) {
	if err := db.check(); err != nil {
		return nil, err
	}
	var out []*model.Stack
	for _, n := range db.container(store.StacksNode).Children {
		out = append(out, stackFromNode(n))
	}
	return out, nil
}

// ExistsStack reports whether a stack exists.
func (db *Database) ExistsStack(name string) (bool, error) {
	if err := db.check(); err != nil {
		return false, err
	}
	return db.container(store.StacksNode).Child(name) != nil, nil
}

// StackCount returns the number of stacks.
func (db *Database) StackCount() (int, error) {
	if err := db.check(); err != nil {
		return 0, err
	}
	return len(db.container(store.StacksNode).Children), nil
}

// StackDescription returns a stack's description.
func (db *Database) StackDescription(name string) (string, error) {
	n, err := db.stackNode(name)
	if err != nil {
		return "", err
	}
	return n.Attr(attrDescription), nil
}

// SetStackDescription replaces a stack's description.
func (db *Database) SetStackDescription(name, description string) error {
	n, err := db.stackNode(name)
	if err != nil {
		return err
	}
	n.SetAttr(attrDescription, description)
	return db.commit("SetStackDescription", store.JoinPath(store.StacksNode, name))
}

// AddStackItem adds item under parentPath of a stack. An empty parentPath
// adds a top-level item.
func (db *Database) AddStackItem(stack, parentPath string, item *model.StackItem) error {
	sn, err := db.stackNode(stack)
	if err != nil {
		return err
	}
	if err := model.ValidateName(item.Name); err != nil {
		return err
	}
	parent := sn
	if len(model.SplitItemPath(parentPath)) > 0 {
		if parent, err = itemNode(sn, parentPath); err != nil {
			return err
		}
	}
	if err := parent.AddUnique(itemToNode(item)); err != nil {
		return errors.Wrapf(err, "stack %q", stack)
	}
	return db.commit("AddStackItem", store.JoinPath(store.StacksNode, stack, parentPath, item.Name))
}

// RemoveStackItem deletes the item at path with its children.
func (db *Database) RemoveStackItem(stack, path string) error {
	sn, err := db.stackNode(stack)
	if err != nil {
		return err
	}
	if _, err := itemNode(sn, path); err != nil {
		return err
	}
	segs := model.SplitItemPath(path)
	parent := sn
	if len(segs) > 1 {
		parent, _ = itemNode(sn, store.JoinPath(segs[:len(segs)-1]...))
	}
	parent.Remove(segs[len(segs)-1])
	return db.commit("RemoveStackItem", store.JoinPath(store.StacksNode, stack, path))
}

// RenameStackItem renames the item at path.
func (db *Database) RenameStackItem(stack, path, newName string) error {
	sn, err := db.stackNode(stack)
	if err != nil {
		return err
	}
	if err := model.ValidateName(newName); err != nil {
		return err
	}
	if _, err := itemNode(sn, path); err != nil {
		return err
	}
	segs := model.SplitItemPath(path)
	parent := sn
	if len(segs) > 1 {
		parent, _ = itemNode(sn, store.JoinPath(segs[:len(segs)-1]...))
	}
	if err := parent.Rename(segs[len(segs)-1], newName); err != nil {
		return err
	}
	return db.commit("RenameStackItem", store.JoinPath(store.StacksNode, stack, path))
}

// GetStackItem returns a copy of the item at path.
func (db *Database) GetStackItem(stack, path string) (*model.StackItem, error) {
	sn, err := db.stackNode(stack)
	if err != nil {
		return nil, err
	}
	n, err := itemNode(sn, path)
	if err != nil {
		return nil, err
	}
	return itemFromNode(n), nil
}

// ExistsStackItem reports whether an item exists at path.
func (db *Database) ExistsStackItem(stack, path string) (bool, error) {
	sn, err := db.stackNode(stack)
	if err != nil {
		if errors.IsNotFound(err) {
			return false, nil
		}
		return false, err
	}
	_, err = itemNode(sn, path)
	return err == nil, nil
}

// StackItemValue returns the value of the item at path.
func (db *Database) StackItemValue(stack, path string) (string, error) {
	it, err := db.GetStackItem(stack, path)
	if err != nil {
		return "", err
	}
	return it.Value, nil
}

// SetStackItemValue replaces the value of the item at path.
func (db *Database) SetStackItemValue(stack, path, value string) error {
	return db.editItem("SetStackItemValue", stack, path, func(n *store.Node) { n.Value = value })
}

// StackItemDescription returns the description of the item at path.
func (db *Database) StackItemDescription(stack, path string) (string, error) {
	it, err := db.GetStackItem(stack, path)
	if err != nil {
		return "", err
	}
	return it.Description, nil
}

// SetStackItemDescription replaces the description of the item at path.
func (db *Database) SetStackItemDescription(stack, path, description string) error {
	return db.editItem("SetStackItemDescription", stack, path, func(n *store.Node) {
		n.SetAttr(attrDescription, description)
	})
}

func (db *Database) editItem(op, stack, path string, edit func(*store.Node)) error {
	sn, err := db.stackNode(stack)
	if err != nil {
		return err
	}
	n, err := itemNode(sn, path)
	if err != nil {
		return err
	}
	edit(n)
	return db.commit(op, store.JoinPath(store.StacksNode, stack, path))
}
