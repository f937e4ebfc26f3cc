package query

import (
	"github.com/vegasq/mochadb/errors"
	"github.com/vegasq/mochadb/model"
)

// Names of the columns produced by GROUPBY
const (
	GroupValueColumn = "Datas"
	GroupCountColumn = "Count"
)

// Group is one distinct value of the grouped column
type Group struct {
	Value string // canonical text of the grouped cells
	Count int32
}

// GroupRows partitions the rows of t by the text of one column. Groups
// come back in order of first appearance.
func GroupRows(t *model.Table, ref ColumnRef) ([]Group, error) {
	idx, err := ref.resolve(t)
	if err != nil {
		return nil, errors.Wrap(err, "GROUPBY")
	}

	// Hash-based grouping keyed by cell text
	index := make(map[string]int)
	var groups []Group
	for _, row := range t.Rows() {
		key := row.Cell(idx).Text()
		if i, ok := index[key]; ok {
			groups[i].Count++
			continue
		}
		index[key] = len(groups)
		groups = append(groups, Group{Value: key, Count: 1})
	}
	return groups, nil
}

// ApplyGroupBy replaces t with a two-column table of distinct values and
// their occurrence counts. The ASC/DESC flag of spec is accepted and
// ignored.
func ApplyGroupBy(t *model.Table, spec *SortSpec) (*model.Table, error) {
	groups, err := GroupRows(t, spec.Column)
	if err != nil {
		return nil, err
	}
	out := model.NewResultTable(t.Name,
		model.NewResultColumn(GroupValueColumn, model.String),
		model.NewResultColumn(GroupCountColumn, model.Int32),
	)
	out.Description = t.Description
	for _, g := range groups {
		if err := out.AppendRow(g.Value, g.Count); err != nil {
			return nil, err
		}
	}
	return out, nil
}
