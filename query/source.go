package query

import (
	"slices"
	"strings"

	"github.com/vegasq/mochadb/database"
	"github.com/vegasq/mochadb/errors"
	"github.com/vegasq/mochadb/model"
)

// Catalog is the entity store a query runs against. *database.Database
// implements it.
type Catalog interface {
	GetTable(name string) (*model.Table, error)
	GetTables() ([]*model.Table, error)
	GetSector(name string) (*model.Sector, error)
	GetSectors() ([]*model.Sector, error)
	GetStacks() ([]*model.Stack, error)
	RemoveItem(item any) error
}

// Field names of the table built from sectors
const (
	sectorName        = "Name"
	sectorData        = "Data"
	sectorDescription = "Description"
)

var sectorFields = []string{sectorName, sectorData, sectorDescription}

// useTable materialises the working table of a USE query.
func useTable(cat Catalog, p *Plan) (*model.Table, error) {
	switch {
	case p.HasTag(TagSectors) && p.Head.From != "":
		return useSectorFields(cat, p.Head)
	case p.HasTag(TagSectors):
		return useSectors(cat, p.Head)
	case p.Head.From != "":
		return useColumnsFrom(cat, p.Head)
	}
	return useRefs(cat, p.Head)
}

// useColumnsFrom handles: USE c1, c2 FROM T and USE * FROM T
func useColumnsFrom(cat Catalog, h Head) (*model.Table, error) {
	t, err := cat.GetTable(h.From)
	if err != nil {
		return nil, err
	}
	var cols []*model.Column
	for _, it := range h.Items {
		if it.IsAll() {
			for _, c := range t.Columns() {
				cols = append(cols, c.Clone())
			}
			continue
		}
		c, err := t.Column(it.Ref)
		if err != nil {
			return nil, err
		}
		cols = append(cols, aliased(c, it.Alias))
	}
	if err := uniqueNames(cols); err != nil {
		return nil, err
	}
	out := model.NewResultTable(t.Name, cols...)
	out.Description = t.Description
	return out, nil
}

// useRefs handles: USE T.c1, T.c2, U
func useRefs(cat Catalog, h Head) (*model.Table, error) {
	tables := map[string]*model.Table{}
	load := func(name string) (*model.Table, error) {
		if t, ok := tables[name]; ok {
			return t, nil
		}
		t, err := cat.GetTable(name)
		if err != nil {
			return nil, err
		}
		tables[name] = t
		return t, nil
	}

	var cols []*model.Column
	var names []string
	for _, it := range h.Items {
		if it.IsAll() {
			return nil, errors.Wrap(errors.ErrGrammar, "USE * needs FROM <table>")
		}
		tableName, colName, isColumn := strings.Cut(it.Ref, ".")
		t, err := load(tableName)
		if err != nil {
			return nil, err
		}
		if !slices.Contains(names, tableName) {
			names = append(names, tableName)
		}
		if !isColumn {
			if it.Alias != "" {
				return nil, errors.Wrapf(errors.ErrGrammar, "cannot alias whole table %q", tableName)
			}
			for _, c := range t.Columns() {
				cols = append(cols, c.Clone())
			}
			continue
		}
		c, err := t.Column(colName)
		if err != nil {
			return nil, err
		}
		cols = append(cols, aliased(c, it.Alias))
	}

	if err := uniqueNames(cols); err != nil {
		return nil, err
	}
	name := "Result"
	if len(names) == 1 {
		name = names[0]
	}
	return model.NewResultTable(name, cols...), nil
}

// useSectors handles: @SECTORS USE s1, s2 and @SECTORS USE *
func useSectors(cat Catalog, h Head) (*model.Table, error) {
	var sectors []*model.Sector
	for _, it := range h.Items {
		if it.IsAll() {
			all, err := cat.GetSectors()
			if err != nil {
				return nil, err
			}
			sectors = append(sectors, all...)
			continue
		}
		s, err := cat.GetSector(it.Ref)
		if err != nil {
			return nil, err
		}
		sectors = append(sectors, s)
	}

	out := model.NewResultTable("Sectors",
		model.NewResultColumn(sectorName, model.String),
		model.NewResultColumn(sectorData, model.String),
		model.NewResultColumn(sectorDescription, model.String),
	)
	for _, s := range sectors {
		if err := out.AppendRow(s.Name, s.Data, s.Description); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// useSectorFields handles: @SECTORS USE Data, Description FROM s1
func useSectorFields(cat Catalog, h Head) (*model.Table, error) {
	s, err := cat.GetSector(h.From)
	if err != nil {
		return nil, err
	}
	values := map[string]string{
		sectorName:        s.Name,
		sectorData:        s.Data,
		sectorDescription: s.Description,
	}

	var cols []*model.Column
	add := func(field, alias string) error {
		c := model.NewResultColumn(field, model.String)
		if alias != "" {
			c.Name = alias
		}
		if err := c.Append(values[field]); err != nil {
			return err
		}
		cols = append(cols, c)
		return nil
	}
	for _, it := range h.Items {
		if it.IsAll() {
			for _, f := range sectorFields {
				if err := add(f, ""); err != nil {
					return nil, err
				}
			}
			continue
		}
		field := ""
		for _, f := range sectorFields {
			if strings.EqualFold(f, it.Ref) {
				field = f
			}
		}
		if field == "" {
			return nil, errors.Wrapf(errors.ErrNotFound, "sector field %q (want Name, Data or Description)", it.Ref)
		}
		if err := add(field, it.Alias); err != nil {
			return nil, err
		}
	}
	if err := uniqueNames(cols); err != nil {
		return nil, err
	}
	out := model.NewResultTable(s.Name, cols...)
	out.Description = s.Description
	return out, nil
}

// selectEntities resolves the entities named by a SELECT query.
func selectEntities(cat Catalog, p *Plan) ([]any, error) {
	if p.Head.From != "" {
		return selectColumns(cat, p.Head)
	}

	tags := p.Tags
	if len(tags) == 0 {
		tags = []Tag{TagTables}
	}
	var out []any
	for _, tag := range tags {
		switch tag {
		case TagTables:
			tables, err := cat.GetTables()
			if err != nil {
				return nil, err
			}
			for _, t := range tables {
				if p.Head.matches(t.Name) {
					out = append(out, t)
				}
			}
		case TagSectors:
			sectors, err := cat.GetSectors()
			if err != nil {
				return nil, err
			}
			for _, s := range sectors {
				if p.Head.matches(s.Name) {
					out = append(out, s)
				}
			}
		case TagStacks:
			stacks, err := cat.GetStacks()
			if err != nil {
				return nil, err
			}
			for _, s := range stacks {
				if p.Head.matches(s.Name) {
					out = append(out, s)
				}
			}
		}
	}
	return out, nil
}

// selectColumns handles: SELECT c1, c2 FROM T
func selectColumns(cat Catalog, h Head) ([]any, error) {
	t, err := cat.GetTable(h.From)
	if err != nil {
		return nil, err
	}
	var out []any
	for _, c := range t.Columns() {
		if h.matches(c.Name) {
			out = append(out, &database.TableColumn{Table: t.Name, Column: c})
		}
	}
	return out, nil
}

// matches reports whether name matches any SELECT pattern.
func (h Head) matches(name string) bool {
	for _, it := range h.Items {
		if it.pattern != nil && it.pattern.MatchString(name) {
			return true
		}
	}
	return false
}

// uniqueNames rejects working tables with two columns of the same name.
func uniqueNames(cols []*model.Column) error {
	seen := make(map[string]struct{}, len(cols))
	for _, c := range cols {
		if _, ok := seen[c.Name]; ok {
			return errors.WithHint(
				errors.Wrapf(errors.ErrAlreadyExists, "column %q is used more than once", c.Name),
				"rename one of them with AS")
		}
		seen[c.Name] = struct{}{}
	}
	return nil
}

func aliased(c *model.Column, alias string) *model.Column {
	out := c.Clone()
	if alias != "" {
		out.Name = alias
	}
	return out
}
