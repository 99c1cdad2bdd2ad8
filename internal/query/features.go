// Package query turns a parsed URL query string into a filtered, sorted,
// field-limited and paginated GORM query. The reserved keys page, sort,
// limit and fields are control parameters; every other key is a filter
// predicate. Nothing here touches the database: the builder only decorates
// the query handle, execution stays with the caller.
package query

import (
	"net/url"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	DefaultPage  = 1
	DefaultLimit = 100
)

var reserved = map[string]struct{}{
	"page":   {},
	"sort":   {},
	"limit":  {},
	"fields": {},
}

// price[gte]=100 style keys: column name plus comparison operator.
var operatorKey = regexp.MustCompile(`^([A-Za-z_][A-Za-z0-9_]*)\[([A-Za-z]+)\]$`)

var identifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Features carries a base query handle plus the raw request parameters and
// accumulates the four pipeline stages. Stage methods are chainable and only
// parse; Query composes the final handle.
type Features struct {
	base   *gorm.DB
	params url.Values

	conds  []clause.Expression
	orders []clause.OrderByColumn
	fields []string

	page         int
	limit        int
	pageExplicit bool
}

func New(base *gorm.DB, params url.Values) *Features {
	return &Features{
		// New session so Query and Filtered each clone the statement
		// instead of stacking conditions onto a shared one.
		base:   base.Session(&gorm.Session{}),
		params: params,
		page:   DefaultPage,
		limit:  DefaultLimit,
	}
}

// Filter translates every non-reserved parameter into a WHERE condition.
// A bracketed key whose operator is one of gt/gte/lt/lte/eq/ne becomes a
// comparison; anything else is an equality predicate on the raw key. Unknown
// operator tokens are deliberately not validated here — the key passes
// through as a (quoted) column name and fails at execution, the same
// deferred behavior the query has for any misspelled field.
func (f *Features) Filter() *Features {
	keys := make([]string, 0, len(f.params))
	for key := range f.params {
		if _, ok := reserved[key]; ok {
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		for _, value := range f.params[key] {
			f.conds = append(f.conds, condition(key, value))
		}
	}
	return f
}

func condition(key, value string) clause.Expression {
	if m := operatorKey.FindStringSubmatch(key); m != nil {
		col := clause.Column{Name: m[1]}
		switch m[2] {
		case "gt":
			return clause.Gt{Column: col, Value: value}
		case "gte":
			return clause.Gte{Column: col, Value: value}
		case "lt":
			return clause.Lt{Column: col, Value: value}
		case "lte":
			return clause.Lte{Column: col, Value: value}
		case "eq":
			return clause.Eq{Column: col, Value: value}
		case "ne":
			return clause.Neq{Column: col, Value: value}
		}
	}
	// Column is quoted by the dialect, so an unrecognized key can never
	// smuggle SQL; it just names a column that may not exist.
	return clause.Eq{Column: clause.Column{Name: key}, Value: value}
}

// Sort applies a comma-separated sort list ("price,-ratings_average"); a
// leading '-' means descending. The listed order is preserved, first field
// primary. Without a sort parameter the newest rows come first.
func (f *Features) Sort() *Features {
	raw := f.params.Get("sort")
	if raw == "" {
		f.orders = append(f.orders, clause.OrderByColumn{
			Column: clause.Column{Name: "created_at"},
			Desc:   true,
		})
		return f
	}

	for _, field := range strings.Split(raw, ",") {
		field = strings.TrimSpace(field)
		desc := strings.HasPrefix(field, "-")
		field = strings.TrimPrefix(field, "-")
		if !identifier.MatchString(field) {
			continue
		}
		f.orders = append(f.orders, clause.OrderByColumn{
			Column: clause.Column{Name: field},
			Desc:   desc,
		})
	}
	return f
}

// LimitFields applies a comma-separated projection list; without one all
// columns are selected.
func (f *Features) LimitFields() *Features {
	raw := f.params.Get("fields")
	if raw == "" {
		return f
	}
	for _, field := range strings.Split(raw, ",") {
		field = strings.TrimSpace(field)
		if identifier.MatchString(field) {
			f.fields = append(f.fields, field)
		}
	}
	return f
}

// Paginate parses page and limit (both ≥1, defaulting to 1 and 100) and
// records whether page was explicitly supplied, which controls the
// page-overrun check done by list handlers.
func (f *Features) Paginate() *Features {
	raw := f.params.Get("page")
	f.pageExplicit = raw != ""
	f.page = positiveInt(raw, DefaultPage)
	f.limit = positiveInt(f.params.Get("limit"), DefaultLimit)
	return f
}

func positiveInt(raw string, fallback int) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}

// Apply runs all four stages in their fixed order.
func (f *Features) Apply() *Features {
	return f.Filter().Sort().LimitFields().Paginate()
}

// Query composes the fully configured handle: filter → sort → field-limit →
// paginate. Execution is up to the caller.
func (f *Features) Query() *gorm.DB {
	q := f.applyConds(f.base)
	for _, order := range f.orders {
		q = q.Order(order)
	}
	if len(f.fields) > 0 {
		q = q.Select(f.fields)
	}
	return q.Offset(f.Skip()).Limit(f.limit)
}

// Filtered returns a handle carrying only the filter stage, for counting the
// matching set without the sort/projection/window applied.
func (f *Features) Filtered() *gorm.DB {
	return f.applyConds(f.base)
}

func (f *Features) applyConds(q *gorm.DB) *gorm.DB {
	for _, cond := range f.conds {
		q = q.Where(cond)
	}
	return q
}

func (f *Features) Page() int  { return f.page }
func (f *Features) Limit() int { return f.limit }
func (f *Features) Skip() int  { return (f.page - 1) * f.limit }

// PageExplicit reports whether the request named a page. Only then may a
// window past the end of the matching set be treated as an error.
func (f *Features) PageExplicit() bool { return f.pageExplicit }
