package query

import (
	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"

	"github.com/vegasq/mochadb/errors"
	"github.com/vegasq/mochadb/logger"
	"github.com/vegasq/mochadb/model"
)

// DefaultCacheSize is the number of parsed plans a Command keeps
const DefaultCacheSize = 128

// Options configures a Command
type Options struct {
	// CacheSize bounds the plan cache. Zero selects DefaultCacheSize and a
	// negative value disables caching.
	CacheSize int
	// Logger defaults to the global logger named "query".
	Logger *zap.SugaredLogger
}

// Command runs MHQL queries against a catalog. Like the catalog it wraps,
// a Command is meant for one caller at a time.
type Command struct {
	cat   Catalog
	log   *zap.SugaredLogger
	plans *lru.Cache[string, *Plan]
}

// NewCommand creates a command processor bound to cat
func NewCommand(cat Catalog, opts Options) (*Command, error) {
	c := &Command{cat: cat, log: opts.Logger}
	if c.log == nil {
		c.log = logger.Named("query")
	}

	size := opts.CacheSize
	if size == 0 {
		size = DefaultCacheSize
	}
	if size > 0 {
		cache, err := lru.New[string, *Plan](size)
		if err != nil {
			return nil, errors.Wrap(err, "plan cache")
		}
		c.plans = cache
	}
	return c, nil
}

// Prepare parses query, reusing a cached plan when one exists
func (c *Command) Prepare(query string) (*Plan, error) {
	if c.plans != nil {
		if p, ok := c.plans.Get(query); ok {
			c.log.Debugw("plan cache hit", "query", query)
			return p, nil
		}
	}
	p, err := Parse(query)
	if err != nil {
		return nil, err
	}
	if c.plans != nil {
		c.plans.Add(query, p)
	}
	return p, nil
}

// ExecuteReader runs a RETURN query and returns its results
func (c *Command) ExecuteReader(query string) (*Reader, error) {
	p, err := c.Prepare(query)
	if err != nil {
		return nil, err
	}
	if p.Terminal != KeywordReturn {
		return nil, errors.Wrap(errors.ErrGrammar, "ExecuteReader needs a query ending in RETURN")
	}
	items, err := c.run(p)
	if err != nil {
		return nil, err
	}
	return NewReader(items), nil
}

// ExecuteScalar runs a RETURN query and returns its first result, or nil
// when there is none.
func (c *Command) ExecuteScalar(query string) (any, error) {
	r, err := c.ExecuteReader(query)
	if err != nil {
		return nil, err
	}
	if !r.Read() {
		return nil, nil
	}
	return r.Value(), nil
}

// ExecuteScalarTable runs a RETURN query whose first result is a table
func (c *Command) ExecuteScalarTable(query string) (*model.Table, error) {
	v, err := c.ExecuteScalar(query)
	if err != nil {
		return nil, err
	}
	t, ok := v.(*model.Table)
	if !ok {
		return nil, errors.Wrapf(errors.ErrNotProcessable, "query returned %T, not a table", v)
	}
	return t, nil
}

// ExecuteCommand runs a REMOVE query and returns the number of removed
// entities. Removal stops at the first failure; entities removed before it
// stay removed.
func (c *Command) ExecuteCommand(query string) (int, error) {
	p, err := c.Prepare(query)
	if err != nil {
		return 0, err
	}
	if p.Terminal != KeywordRemove {
		return 0, errors.Wrap(errors.ErrGrammar, "ExecuteCommand needs a query ending in REMOVE")
	}
	items, err := c.run(p)
	return len(items), err
}

// Execute runs a query of either kind. For REMOVE queries the reader
// yields the removed entities.
func (c *Command) Execute(query string) (*Reader, error) {
	p, err := c.Prepare(query)
	if err != nil {
		return nil, err
	}
	items, err := c.run(p)
	if err != nil {
		return nil, err
	}
	return NewReader(items), nil
}

// run executes a plan. Clauses apply in query order; the parser has
// already enforced MUST, GROUPBY, ORDERBY.
func (c *Command) run(p *Plan) ([]any, error) {
	c.log.Debugw("executing query", "query", p.Text, "tags", p.Tags, "head", p.Head.Keyword)

	if p.Head.Keyword == KeywordSelect {
		items, err := selectEntities(c.cat, p)
		if err != nil {
			return nil, err
		}
		c.log.Debugw("SELECT", "matched", len(items))
		if p.Terminal == KeywordRemove {
			return c.remove(items)
		}
		return items, nil
	}

	t, err := useTable(c.cat, p)
	if err != nil {
		return nil, err
	}
	c.log.Debugw("USE", "table", t.Name, "columns", t.ColumnCount(), "rows", t.RowCount())

	if p.Must != nil {
		if err := ApplyFilter(t, p.Must); err != nil {
			return nil, err
		}
		c.log.Debugw("MUST", "terms", len(p.Must), "rows", t.RowCount())
	}
	if p.GroupBy != nil {
		if t, err = ApplyGroupBy(t, p.GroupBy); err != nil {
			return nil, err
		}
		c.log.Debugw("GROUPBY", "column", p.GroupBy.Column.String(), "groups", t.RowCount())
	}
	if p.OrderBy != nil {
		if err := ApplyOrderBy(t, p.OrderBy); err != nil {
			return nil, err
		}
		c.log.Debugw("ORDERBY", "column", p.OrderBy.Column.String(), "desc", p.OrderBy.Desc)
	}
	return []any{t}, nil
}

func (c *Command) remove(items []any) ([]any, error) {
	for i, item := range items {
		if err := c.cat.RemoveItem(item); err != nil {
			c.log.Warnw("REMOVE stopped", "removed", i, "error", err)
			return items[:i], err
		}
	}
	c.log.Debugw("REMOVE", "removed", len(items))
	return items, nil
}
