package querybuilder

import (
	"fmt"
	"strings"
)

// Projection is a computed select-list entry correlated with the enclosing row
type Projection interface {
	// Expr renders the expression correlated with the given parent table
	Expr(parent *Table) string
	// Name is the output column name
	Name() string
}

// Field is one key of a nested JSON object
type Field struct {
	Key    string
	column string
	float  bool
	raw    string
}

// Plain projects a child column under its own name
func Plain(column string) Field { return Field{Key: column, column: column} }

// Float projects a decimal child column as a float, zero when null
func Float(column string) Field { return Field{Key: column, column: column, float: true} }

// Raw projects an arbitrary SQL expression under key
func Raw(key, expr string) Field { return Field{Key: key, raw: expr} }

// Plains projects several child columns under their own names
func Plains(columns ...string) []Field {
	out := make([]Field, len(columns))
	for i, c := range columns {
		out[i] = Plain(c)
	}
	return out
}

func (f Field) expr(t *Table) string {
	switch {
	case f.raw != "":
		return f.raw
	case f.float:
		return DecimalExpr(t, f.column)
	default:
		return t.Col(f.column)
	}
}

// DecimalExpr renders a decimal column as float8, zero when null
func DecimalExpr(t *Table, column string) string {
	return fmt.Sprintf("COALESCE(%s, 0)::float8", t.Col(column))
}

// DecimalToFloat is DecimalExpr aliased to the column name, for select lists
func DecimalToFloat(t *Table, column string) string {
	return DecimalExpr(t, column) + " AS " + column
}

// Collection describes an array of child objects nested in each parent row
type Collection struct {
	name       string
	table      *Table
	foreignKey string
	parentKey  string
	fields     []Field
	orderBy    string
	children   []Collection
}

// NestedCollection builds the array of child rows whose foreignKey equals the
// parent's uuid, ordered ascending by orderBy. An empty orderBy means "index"
// when the child has one, else "created_at". Grandchildren are correlated
// with each child row the same way.
func NestedCollection(name string, child *Table, foreignKey string, fields []Field, orderBy string, grandchildren ...Collection) Collection {
	if orderBy == "" {
		orderBy = "created_at"
		if child.Has("index") {
			orderBy = "index"
		}
	}
	return Collection{
		name:       name,
		table:      child,
		foreignKey: foreignKey,
		parentKey:  "uuid",
		fields:     fields,
		orderBy:    orderBy,
		children:   grandchildren,
	}
}

// CorrelatedOn changes the parent column the foreign key is compared with
func (c Collection) CorrelatedOn(parentKey string) Collection {
	c.parentKey = parentKey
	return c
}

// Name implements Projection
func (c Collection) Name() string { return c.name }

// Expr implements Projection. The result is never null: no children yields '[]'.
func (c Collection) Expr(parent *Table) string {
	pairs := make([]string, 0, len(c.fields)+len(c.children))
	for _, f := range c.fields {
		pairs = append(pairs, fmt.Sprintf("'%s', %s", f.Key, f.expr(c.table)))
	}
	for _, gc := range c.children {
		pairs = append(pairs, fmt.Sprintf("'%s', %s", gc.name, gc.Expr(c.table)))
	}
	return fmt.Sprintf(
		"COALESCE((SELECT jsonb_agg(jsonb_build_object(%s) ORDER BY %s ASC) FROM %s WHERE %s = %s), '[]'::jsonb)",
		strings.Join(pairs, ", "),
		c.table.Col(c.orderBy),
		c.table.From(),
		c.table.Col(c.foreignKey),
		parent.Col(c.parentKey),
	)
}

type aggregateKind int

const (
	aggregateSum aggregateKind = iota
	aggregateDistinctConcat
)

// Aggregate is a scalar computed over a parent's child rows
type Aggregate struct {
	name       string
	kind       aggregateKind
	table      *Table
	column     string
	foreignKey string
	parentKey  string
	separator  string
}

// Sum totals a child decimal column as float8; zero when there are no rows
func Sum(name string, child *Table, column, foreignKey string) Aggregate {
	return Aggregate{name: name, kind: aggregateSum, table: child, column: column, foreignKey: foreignKey, parentKey: "uuid"}
}

// DistinctConcat joins the distinct values of a child column; empty string when there are no rows
func DistinctConcat(name string, child *Table, column, foreignKey, separator string) Aggregate {
	return Aggregate{name: name, kind: aggregateDistinctConcat, table: child, column: column, foreignKey: foreignKey, parentKey: "uuid", separator: separator}
}

// Name implements Projection
func (a Aggregate) Name() string { return a.name }

// Expr implements Projection
func (a Aggregate) Expr(parent *Table) string {
	where := fmt.Sprintf("FROM %s WHERE %s = %s", a.table.From(), a.table.Col(a.foreignKey), parent.Col(a.parentKey))
	switch a.kind {
	case aggregateDistinctConcat:
		return fmt.Sprintf("COALESCE((SELECT STRING_AGG(DISTINCT %s::text, %s) %s), '')",
			a.table.Col(a.column), quoteLiteral(a.separator), where)
	default:
		return fmt.Sprintf("COALESCE((SELECT SUM(%s) %s), 0)::float8", a.table.Col(a.column), where)
	}
}

// Shape adds the projections to the query's select list, each aliased to its name
func Shape(q Query, projections ...Projection) Query {
	for _, p := range projections {
		q.builder = q.builder.Column(p.Expr(q.table) + " AS " + p.Name())
	}
	return q
}

func quoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// TableColumns projects every column of t in declaration order, decimals as
// float. Columns named in except are left out.
func TableColumns(t *Table, except ...string) []string {
	skip := make(map[string]struct{}, len(except))
	for _, e := range except {
		skip[e] = struct{}{}
	}
	out := make([]string, 0, len(t.columns))
	for _, c := range t.columns {
		if _, ok := skip[c.Name]; ok {
			continue
		}
		if c.Type == TypeDecimal {
			out = append(out, DecimalToFloat(t, c.Name))
			continue
		}
		out = append(out, t.Col(c.Name))
	}
	return out
}
