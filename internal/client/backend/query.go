package backend

import (
	"net/url"
	"strings"
)

// Query describes a read or update against one table of the data API.
// The zero value selects every column of every row.
type Query struct {
	columns string
	filters [][2]string
	or      []string
	order   string
	single  bool
}

// Select sets the column list, e.g. "*,author:profiles(*)" to embed the
// author of each blog.
func (q Query) Select(columns string) Query {
	q.columns = columns
	return q
}

// Eq keeps rows whose column equals value.
func (q Query) Eq(column, value string) Query {
	q.filters = append(q.filters[:len(q.filters):len(q.filters)], [2]string{column, "eq." + value})
	return q
}

// Or keeps rows matching any of conds; build them with ILike and Contains.
func (q Query) Or(conds ...string) Query {
	q.or = append(q.or[:len(q.or):len(q.or)], conds...)
	return q
}

// Order sorts by column.
func (q Query) Order(column string, ascending bool) Query {
	dir := "desc"
	if ascending {
		dir = "asc"
	}
	q.order = column + "." + dir
	return q
}

// Single expects exactly one row; zero rows is reported as ErrNotFound.
func (q Query) Single() Query {
	q.single = true
	return q
}

func (q Query) IsSingle() bool {
	return q.single
}

// Values renders q as URL query parameters.
func (q Query) Values() url.Values {
	v := url.Values{}
	columns := q.columns
	if columns == "" {
		columns = "*"
	}
	v.Set("select", columns)
	for _, f := range q.filters {
		v.Add(f[0], f[1])
	}
	if len(q.or) > 0 {
		v.Set("or", "("+strings.Join(q.or, ",")+")")
	}
	if q.order != "" {
		v.Set("order", q.order)
	}
	return v
}

// ILike is a case-insensitive pattern condition for Or; "*" matches any run
// of characters.
func ILike(column, pattern string) string {
	return column + ".ilike." + quote(pattern)
}

// Contains is an array containment condition for Or.
func Contains(column string, values ...string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = quote(v)
	}
	return column + ".cs.{" + strings.Join(quoted, ",") + "}"
}

var quoteReplacer = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

// quote wraps a value in double quotes so commas, dots and parentheses in
// user input cannot break the or-group grammar.
func quote(v string) string {
	return `"` + quoteReplacer.Replace(v) + `"`
}
