package database

import (
	"github.com/vegasq/mochadb/model"
	"github.com/vegasq/mochadb/store"
)

// Node attribute and child names used by the entity layout.
const (
	attrDescription = "Description"
	attrDataType    = "DataType"
	dataNode        = "Data"
)

func sectorFromNode(n *store.Node) *model.Sector {
	return &model.Sector{
		Name:        n.Name,
		Data:        n.Value,
		Description: n.Attr(attrDescription),
	}
}

func sectorToNode(s *model.Sector) *store.Node {
	n := store.NewNode(s.Name, s.Data)
	n.SetAttr(attrDescription, s.Description)
	return n
}

func stackFromNode(n *store.Node) *model.Stack {
	return &model.Stack{
		Name:        n.Name,
		Description: n.Attr(attrDescription),
		Items:       itemsFromNodes(n.Children),
	}
}

func itemsFromNodes(nodes []*store.Node) []*model.StackItem {
	var items []*model.StackItem
	for _, c := range nodes {
		items = append(items, itemFromNode(c))
	}
	return items
}

func itemFromNode(n *store.Node) *model.StackItem {
	return &model.StackItem{
		Name:        n.Name,
		Value:       n.Value,
		Description: n.Attr(attrDescription),
		Items:       itemsFromNodes(n.Children),
	}
}

func stackToNode(s *model.Stack) *store.Node {
	n := store.NewNode(s.Name, "")
	n.SetAttr(attrDescription, s.Description)
	for _, it := range s.Items {
		n.Add(itemToNode(it))
	}
	return n
}

func itemToNode(it *model.StackItem) *store.Node {
	n := store.NewNode(it.Name, it.Value)
	n.SetAttr(attrDescription, it.Description)
	for _, c := range it.Items {
		n.Add(itemToNode(c))
	}
	return n
}

func columnFromNode(n *store.Node) *model.Column {
	kind, err := model.ParseKind(n.Attr(attrDataType))
	if err != nil {
		kind = model.String
	}
	c := model.NewResultColumn(n.Name, kind)
	c.Description = n.Attr(attrDescription)
	for _, d := range n.ChildrenNamed(dataNode) {
		c.AppendStored(d.Value)
	}
	return c
}

func columnToNode(c *model.Column) *store.Node {
	n := store.NewNode(c.Name, "")
	n.SetAttr(attrDataType, c.Kind().String())
	n.SetAttr(attrDescription, c.Description)
	for _, text := range c.Texts() {
		n.Add(store.NewNode(dataNode, text))
	}
	return n
}

func tableFromNode(n *store.Node) *model.Table {
	var cols []*model.Column
	for _, c := range n.Children {
		cols = append(cols, columnFromNode(c))
	}
	t := model.NewResultTable(n.Name, cols...)
	t.Description = n.Attr(attrDescription)
	return t
}

func tableToNode(t *model.Table) *store.Node {
	n := store.NewNode(t.Name, "")
	writeTable(n, t)
	return n
}

// writeTable replaces n's description and columns with t's.
func writeTable(n *store.Node, t *model.Table) {
	n.SetAttr(attrDescription, t.Description)
	n.RemoveAll()
	for _, c := range t.Columns() {
		n.Add(columnToNode(c))
	}
}
