package querybuilder

import (
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
)

// DefaultSortField orders list results when no sort is requested
const DefaultSortField = "created_at"

// Options tunes Compose for one endpoint
type Options struct {
	// DefaultSortField is sorted descending when the request has no sort; "created_at" when empty
	DefaultSortField string
	// AdditionalSearchFields opts joined-table columns into free-text search
	AdditionalSearchFields []string
}

// SearchColumns lists the qualified columns free-text search runs over:
// the primary table's searchable columns, then each joined table's searchable
// columns that were opted in, in join order.
func SearchColumns(q Query, additional []string) []string {
	cols := q.table.SearchableColumns()

	if len(additional) == 0 {
		return cols
	}
	allowed := make(map[string]struct{}, len(additional))
	for _, f := range additional {
		allowed[f] = struct{}{}
	}
	for _, j := range q.joins {
		for _, c := range j.Table.columns {
			if !c.Searchable {
				continue
			}
			if _, ok := allowed[c.Name]; ok {
				cols = append(cols, j.Table.Ref(c.Name))
			}
		}
	}
	return cols
}

// MatchSearchField returns the first qualified column containing field as a substring.
// Matching runs over the whole "table"."column" string, so "name" resolves to
// whichever of "name", "client_name" or "created_by_name" comes first.
func MatchSearchField(columns []string, field string) (string, bool) {
	for _, c := range columns {
		if strings.Contains(c, field) {
			return c, true
		}
	}
	return "", false
}

func likePredicate(column, value string) sq.Sqlizer {
	return sq.Expr(fmt.Sprintf("LOWER(CAST(%s AS TEXT)) LIKE LOWER(?)", column), "%"+value+"%")
}

// Compose applies search, sort and pagination from params to a base query.
// The base query is not modified.
func Compose(q Query, p Params, opts Options) (Query, error) {
	columns := SearchColumns(q, opts.AdditionalSearchFields)

	switch {
	case p.FieldSearch():
		if col, ok := MatchSearchField(columns, *p.SearchField); ok {
			q = q.Where(likePredicate(col, *p.SearchValue))
		}
	case p.Q != "":
		if len(columns) > 0 {
			or := make(sq.Or, 0, len(columns))
			for _, col := range columns {
				or = append(or, likePredicate(col, p.Q))
			}
			q = q.Where(or)
		}
	}

	if p.Sort != "" {
		if !q.table.Has(p.Sort) {
			return Query{}, fmt.Errorf("%w: sort %q on %s", ErrInvalidColumn, p.Sort, q.table.Name)
		}
		dir := "DESC"
		if p.Ascending() {
			dir = "ASC"
		}
		q = q.OrderBy(q.table.Ref(p.Sort) + " " + dir)
	} else {
		field := opts.DefaultSortField
		if field == "" {
			field = DefaultSortField
		}
		if !q.table.Has(field) {
			return Query{}, fmt.Errorf("%w: default sort %q on %s", ErrInvalidColumn, field, q.table.Name)
		}
		q = q.OrderBy(q.table.Ref(field) + " DESC")
	}

	if p.Paginated() {
		q.builder = q.builder.Limit(uint64(p.Limit)).Offset(uint64(p.Offset()))
	}
	return q, nil
}
