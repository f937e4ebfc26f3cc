package query

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/vegasq/mochadb/errors"
	"github.com/vegasq/mochadb/model"
)

// Keyword is a primary MHQL keyword. Each one opens a clause.
type Keyword int

const (
	KeywordNone Keyword = iota
	KeywordUse
	KeywordSelect
	KeywordMust
	KeywordGroupBy
	KeywordOrderBy
	KeywordReturn
	KeywordRemove
)

var keywordNames = map[Keyword]string{
	KeywordUse:     "USE",
	KeywordSelect:  "SELECT",
	KeywordMust:    "MUST",
	KeywordGroupBy: "GROUPBY",
	KeywordOrderBy: "ORDERBY",
	KeywordReturn:  "RETURN",
	KeywordRemove:  "REMOVE",
}

// primaryKeywords maps the upper-cased spelling to the keyword
var primaryKeywords = map[string]Keyword{
	"USE":     KeywordUse,
	"SELECT":  KeywordSelect,
	"MUST":    KeywordMust,
	"GROUPBY": KeywordGroupBy,
	"ORDERBY": KeywordOrderBy,
	"RETURN":  KeywordReturn,
	"REMOVE":  KeywordRemove,
}

// Secondary keywords used inside clause bodies.
const (
	wordFrom = "FROM"
	wordAs   = "AS"
	wordAnd  = "AND"
	wordEnd  = "END"
	wordAsc  = "ASC"
	wordDesc = "DESC"
)

func (k Keyword) String() string {
	if s, ok := keywordNames[k]; ok {
		return s
	}
	return "NONE"
}

// Tag scopes a query to one entity universe.
type Tag int

const (
	TagTables Tag = iota
	TagSectors
	TagStacks
)

var tagNames = map[string]Tag{
	"@TABLES":  TagTables,
	"@SECTORS": TagSectors,
	"@STACKS":  TagStacks,
}

func (t Tag) String() string {
	switch t {
	case TagTables:
		return "@TABLES"
	case TagSectors:
		return "@SECTORS"
	case TagStacks:
		return "@STACKS"
	}
	return "@UNKNOWN"
}

// Clause is one keyword-delimited segment of a query
type Clause struct {
	Keyword Keyword
	Body    string
}

// Plan is a parsed MHQL query. Plans are immutable and safe to share.
type Plan struct {
	Text     string
	Tags     []Tag
	Head     Head
	Must     []Term    // nil without a MUST clause
	GroupBy  *SortSpec // nil without a GROUPBY clause
	OrderBy  *SortSpec // nil without an ORDERBY clause
	Terminal Keyword   // KeywordReturn or KeywordRemove
}

// HasTag reports whether the query carries tag.
func (p *Plan) HasTag(tag Tag) bool {
	for _, t := range p.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Head is the opening USE or SELECT clause
type Head struct {
	Keyword Keyword
	Items   []Item
	From    string // empty without FROM
}

// Item is one comma-separated entry of the head clause.
type Item struct {
	Ref     string         // as written: "T.c", "T", "c", "*" or a name pattern
	Alias   string         // USE ... AS alias
	pattern *regexp.Regexp // SELECT only
}

// IsAll reports whether the item is the "*" wildcard.
func (it Item) IsAll() bool { return it.Ref == "*" }

// ColumnRef addresses a column of the working table by index or name.
type ColumnRef struct {
	Index int
	Name  string
}

func parseColumnRef(s string) ColumnRef {
	s = unquote(strings.TrimSpace(s))
	if i, err := strconv.Atoi(s); err == nil {
		return ColumnRef{Index: i}
	}
	return ColumnRef{Name: s}
}

func (r ColumnRef) String() string {
	if r.Name != "" {
		return r.Name
	}
	return strconv.Itoa(r.Index)
}

// resolve returns the column index within t.
func (r ColumnRef) resolve(t *model.Table) (int, error) {
	if r.Name != "" {
		i := t.ColumnIndex(r.Name)
		if i < 0 {
			return -1, errors.Wrapf(errors.ErrNotFound, "column %q", r.Name)
		}
		return i, nil
	}
	if r.Index < 0 || r.Index >= t.ColumnCount() {
		return -1, errors.Wrapf(errors.ErrNotFound, "column index %d out of range (table has %d columns)", r.Index, t.ColumnCount())
	}
	return r.Index, nil
}

// SortSpec is the body of a GROUPBY or ORDERBY clause
type SortSpec struct {
	Column ColumnRef
	Desc   bool
}

// Func is a MUST predicate function.
type Func int

const (
	FuncEqual Func = iota
	FuncNotEqual
	FuncBigger
	FuncLower
	FuncBetween
	FuncStartsWith
	FuncEndsWith
)

type funcInfo struct {
	fn      Func
	name    string
	args    int // including the column
	numeric bool
}

var functions = map[string]funcInfo{
	"EQUAL":    {FuncEqual, "EQUAL", 2, true},
	"NOTEQUAL": {FuncNotEqual, "NOTEQUAL", 2, true},
	"BIGGER":   {FuncBigger, "BIGGER", 2, true},
	"LOWER":    {FuncLower, "LOWER", 2, true},
	"BETWEEN":  {FuncBetween, "BETWEEN", 3, true},
	"STARTW":   {FuncStartsWith, "STARTW", 2, false},
	"ENDW":     {FuncEndsWith, "ENDW", 2, false},
}

func (f Func) String() string {
	for _, info := range functions {
		if info.fn == f {
			return info.name
		}
	}
	return "UNKNOWN"
}

// Term is one comparison of a MUST clause.
type Term struct {
	Func   Func
	Column ColumnRef
	Text   string            // STARTW / ENDW operand
	Num    []decimal.Decimal // numeric operands; BETWEEN has low and high
}
