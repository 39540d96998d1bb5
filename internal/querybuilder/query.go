package querybuilder

import (
	sq "github.com/Masterminds/squirrel"
)

// psql is the statement builder shared by every query; Postgres placeholders
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Builder returns the Postgres statement builder for inserts, updates and deletes
func Builder() sq.StatementBuilderType {
	return psql
}

// Query is a read query scoped to one primary table plus its joined tables.
// Every method returns a new value and leaves the receiver untouched.
type Query struct {
	builder sq.SelectBuilder
	table   *Table
	joins   []Join
}

// Select starts a query over the primary table with the given projection
func Select(t *Table, columns ...string) Query {
	return Query{
		builder: psql.Select(columns...).From(t.From()),
		table:   t,
	}
}

// Table returns the primary table
func (q Query) Table() *Table { return q.table }

// Joins returns the joined tables in join order
func (q Query) Joins() []Join {
	out := make([]Join, len(q.joins))
	copy(out, q.joins)
	return out
}

// Columns appends plain projection columns
func (q Query) Columns(columns ...string) Query {
	q.builder = q.builder.Columns(columns...)
	return q
}

// LeftJoin attaches a secondary table with the given join condition
func (q Query) LeftJoin(t *Table, on string) Query {
	joins := make([]Join, len(q.joins), len(q.joins)+1)
	copy(joins, q.joins)
	q.joins = append(joins, Join{Table: t, On: on})
	q.builder = q.builder.LeftJoin(t.From() + " ON " + on)
	return q
}

// Where adds a predicate; multiple calls are joined with AND
func (q Query) Where(pred interface{}, args ...interface{}) Query {
	q.builder = q.builder.Where(pred, args...)
	return q
}

// OrderBy appends ORDER BY expressions
func (q Query) OrderBy(exprs ...string) Query {
	q.builder = q.builder.OrderBy(exprs...)
	return q
}

// GroupBy appends GROUP BY expressions
func (q Query) GroupBy(exprs ...string) Query {
	q.builder = q.builder.GroupBy(exprs...)
	return q
}

// ToSql renders the statement and its bound arguments
func (q Query) ToSql() (string, []interface{}, error) {
	return q.builder.ToSql()
}
