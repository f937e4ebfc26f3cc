package query

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/vegasq/mochadb/errors"
)

// clauseRank orders the optional middle clauses
var clauseRank = map[Keyword]int{
	KeywordMust:    1,
	KeywordGroupBy: 2,
	KeywordOrderBy: 3,
}

// Parse parses an MHQL query into a Plan
func Parse(text string) (*Plan, error) {
	if err := ValidateQuery(text); err != nil {
		return nil, err
	}

	tags, rest, err := SplitTags(text)
	if err != nil {
		return nil, err
	}
	clauses, err := splitClauses(rest)
	if err != nil {
		return nil, err
	}
	if len(clauses) == 0 {
		return nil, errors.Wrap(errors.ErrGrammar, "empty query")
	}

	p := &Plan{Text: text, Tags: tags}

	head := clauses[0]
	if head.Keyword != KeywordUse && head.Keyword != KeywordSelect {
		return nil, errors.Wrapf(errors.ErrGrammar, "query must begin with USE or SELECT, not %s", head.Keyword)
	}
	if len(clauses) < 2 {
		return nil, errors.Wrap(errors.ErrGrammar, "query must end with RETURN or REMOVE")
	}
	last := clauses[len(clauses)-1]
	if last.Keyword != KeywordReturn && last.Keyword != KeywordRemove {
		return nil, errors.Wrapf(errors.ErrGrammar, "query must end with RETURN or REMOVE, not %s", last.Keyword)
	}
	if last.Body != "" {
		return nil, errors.Wrapf(errors.ErrGrammar, "unexpected text after %s: %q", last.Keyword, truncate(last.Body, 32))
	}
	p.Terminal = last.Keyword

	if err := checkTags(tags, head.Keyword); err != nil {
		return nil, err
	}
	if p.Terminal == KeywordRemove && head.Keyword != KeywordSelect {
		return nil, errors.Wrap(errors.ErrGrammar, "REMOVE requires a SELECT query")
	}

	if p.Head, err = parseHead(head); err != nil {
		return nil, err
	}
	if head.Keyword == KeywordSelect && p.Head.From != "" {
		if len(tags) > 1 || (len(tags) == 1 && tags[0] != TagTables) {
			return nil, errors.Wrap(errors.ErrGrammar, "SELECT ... FROM selects table columns and only combines with @TABLES")
		}
	}

	var prev Keyword
	for _, c := range clauses[1 : len(clauses)-1] {
		rank, ok := clauseRank[c.Keyword]
		if !ok {
			return nil, errors.Wrapf(errors.ErrGrammar, "%s must be the first or the last clause", c.Keyword)
		}
		if head.Keyword == KeywordSelect {
			return nil, errors.Wrapf(errors.ErrGrammar, "%s cannot be combined with SELECT", c.Keyword)
		}
		if prev != KeywordNone && rank <= clauseRank[prev] {
			return nil, errors.Wrapf(errors.ErrGrammar, "%s cannot follow %s", c.Keyword, prev)
		}
		prev = c.Keyword

		switch c.Keyword {
		case KeywordMust:
			if p.Must, err = parseMust(c.Body); err != nil {
				return nil, err
			}
		case KeywordGroupBy:
			if p.GroupBy, err = parseSortSpec(c); err != nil {
				return nil, err
			}
		case KeywordOrderBy:
			if p.OrderBy, err = parseSortSpec(c); err != nil {
				return nil, err
			}
		}
	}
	return p, nil
}

// checkTags enforces the tag and head keyword combinations
func checkTags(tags []Tag, head Keyword) error {
	if head != KeywordUse {
		return nil
	}
	if len(tags) > 1 {
		return errors.Wrap(errors.ErrGrammar, "multiple tags are only allowed with SELECT")
	}
	if len(tags) == 1 && tags[0] == TagStacks {
		return errors.Wrap(errors.ErrGrammar, "@STACKS cannot be combined with USE")
	}
	return nil
}

// parseHead parses: USE|SELECT item [AS alias], ... [FROM name]
func parseHead(c Clause) (Head, error) {
	h := Head{Keyword: c.Keyword}

	parts := splitWord(c.Body, wordFrom)
	switch len(parts) {
	case 1:
	case 2:
		h.From = unquote(parts[1])
		if h.From == "" || strings.ContainsAny(h.From, ", \t") {
			return Head{}, errors.Wrapf(errors.ErrGrammar, "%s ... FROM takes a single name, got %q", c.Keyword, parts[1])
		}
	default:
		return Head{}, errors.Wrapf(errors.ErrGrammar, "%s has more than one FROM", c.Keyword)
	}

	if parts[0] == "" {
		return Head{}, errors.Wrapf(errors.ErrGrammar, "%s needs at least one item", c.Keyword)
	}
	raw := splitTopLevel(parts[0], ',')
	if len(raw) > MaxHeadItems {
		return Head{}, errors.Wrapf(ErrTooManyItems, "%d (max %d)", len(raw), MaxHeadItems)
	}
	for _, r := range raw {
		item, err := parseItem(c.Keyword, r)
		if err != nil {
			return Head{}, err
		}
		h.Items = append(h.Items, item)
	}
	return h, nil
}

func parseItem(kw Keyword, s string) (Item, error) {
	if s == "" {
		return Item{}, errors.Wrapf(errors.ErrGrammar, "empty item in %s", kw)
	}
	var item Item
	switch parts := splitWord(s, wordAs); len(parts) {
	case 1:
		item.Ref = unquote(parts[0])
	case 2:
		if kw != KeywordUse {
			return Item{}, errors.Wrapf(errors.ErrGrammar, "AS is only allowed with USE: %q", s)
		}
		item.Ref, item.Alias = unquote(parts[0]), unquote(parts[1])
		if item.Alias == "" || item.Ref == "*" {
			return Item{}, errors.Wrapf(errors.ErrGrammar, "invalid alias in %q", s)
		}
	default:
		return Item{}, errors.Wrapf(errors.ErrGrammar, "invalid item %q", s)
	}
	if item.Ref == "" {
		return Item{}, errors.Wrapf(errors.ErrGrammar, "invalid item %q", s)
	}

	if kw == KeywordSelect {
		expr := item.Ref
		if item.IsAll() {
			expr = ".*"
		}
		re, err := regexp.Compile("^(?:" + expr + ")$")
		if err != nil {
			return Item{}, errors.Wrapf(errors.ErrGrammar, "invalid pattern %q: %v", item.Ref, err)
		}
		item.pattern = re
	}
	return item, nil
}

// parseMust parses: term [AND term]*
func parseMust(body string) ([]Term, error) {
	if body == "" {
		return nil, errors.Wrap(errors.ErrGrammar, "MUST needs at least one term")
	}
	raw := splitWord(body, wordAnd)
	if len(raw) > MaxTerms {
		return nil, errors.Wrapf(ErrTooManyTerms, "%d (max %d)", len(raw), MaxTerms)
	}
	terms := make([]Term, 0, len(raw))
	for _, r := range raw {
		t, err := parseTerm(r)
		if err != nil {
			return nil, err
		}
		terms = append(terms, t)
	}
	return terms, nil
}

// parseTerm parses: FUNC(column, arg[, arg])
func parseTerm(s string) (Term, error) {
	open := strings.IndexByte(s, '(')
	if open <= 0 || !strings.HasSuffix(s, ")") {
		return Term{}, errors.Wrapf(errors.ErrGrammar, "malformed MUST term %q", s)
	}
	name := strings.ToUpper(strings.TrimSpace(s[:open]))
	info, ok := functions[name]
	if !ok {
		return Term{}, errors.Wrapf(errors.ErrGrammar, "unknown MUST function %q", name)
	}
	args := splitTopLevel(s[open+1:len(s)-1], ',')
	if len(args) != info.args {
		return Term{}, errors.Wrapf(errors.ErrGrammar, "%s takes %d arguments, got %d", name, info.args, len(args))
	}
	if args[0] == "" {
		return Term{}, errors.Wrapf(errors.ErrGrammar, "%s is missing its column", name)
	}

	t := Term{Func: info.fn, Column: parseColumnRef(args[0])}
	if !info.numeric {
		t.Text = unquote(args[1])
		return t, nil
	}
	for _, a := range args[1:] {
		d, err := decimal.NewFromString(unquote(a))
		if err != nil {
			return Term{}, errors.Wrapf(errors.ErrNotProcessable, "%s: %q is not a number", name, a)
		}
		t.Num = append(t.Num, d)
	}
	return t, nil
}

// parseSortSpec parses: [ASC|DESC] column
func parseSortSpec(c Clause) (*SortSpec, error) {
	fields := strings.Fields(c.Body)
	spec := &SortSpec{}
	if len(fields) > 0 {
		switch strings.ToUpper(fields[0]) {
		case wordAsc:
			fields = fields[1:]
		case wordDesc:
			spec.Desc = true
			fields = fields[1:]
		}
	}
	if len(fields) != 1 {
		return nil, errors.Wrapf(errors.ErrGrammar, "%s takes [ASC|DESC] and one column, got %q", c.Keyword, c.Body)
	}
	spec.Column = parseColumnRef(fields[0])
	return spec, nil
}
