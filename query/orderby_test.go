package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vegasq/mochadb/errors"
	"github.com/vegasq/mochadb/model"
)

func TestApplyOrderBy_SingleColumn(t *testing.T) {
	tests := []struct {
		name string
		desc bool
		want []string
	}{
		{name: "ascending", want: []string{"1", "2", "3"}},
		{name: "descending", desc: true, want: []string{"3", "2", "1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tbl := newColumnTable(t, model.Int32, []string{"3", "1", "2"})
			require.NoError(t, ApplyOrderBy(tbl, &SortSpec{Column: ColumnRef{Index: 0}, Desc: tt.desc}))
			assert.Equal(t, tt.want, columnTexts(t, tbl, 0))
		})
	}
}

func TestApplyOrderBy_Numeric(t *testing.T) {
	// Lexical order would put 10 before 9.
	tbl := newColumnTable(t, model.Int64, []string{"10", "9", "100"})
	require.NoError(t, ApplyOrderBy(tbl, &SortSpec{Column: ColumnRef{Index: 0}}))
	assert.Equal(t, []string{"9", "10", "100"}, columnTexts(t, tbl, 0))
}

func TestApplyOrderBy_StableTies(t *testing.T) {
	tbl := newColumnTable(t, model.String,
		[]string{"b", "a", "b", "a"},
		[]string{"1", "2", "3", "4"},
	)
	require.NoError(t, ApplyOrderBy(tbl, &SortSpec{Column: ColumnRef{Name: "A"}}))
	assert.Equal(t, []string{"a", "a", "b", "b"}, columnTexts(t, tbl, 0))
	assert.Equal(t, []string{"2", "4", "1", "3"}, columnTexts(t, tbl, 1))
}

func TestApplyOrderBy_MissingColumn(t *testing.T) {
	tbl := newColumnTable(t, model.String, []string{"a"})
	err := ApplyOrderBy(tbl, &SortSpec{Column: ColumnRef{Index: 2}})
	assert.True(t, errors.IsNotFound(err))
}
