package querybuilder

import (
	"errors"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testClient = NewTable("lib", "client",
		ID("uuid"),
		Serial("id"),
		Text("name").NotNull(),
		Text("contact_name"),
		Text("email"),
		Timestamp("created_at").NotNull(),
	)
	testUsers = NewTable("hr", "users",
		ID("uuid"),
		Text("name").NotNull(),
		Text("email").NotNull(),
		Text("image"),
		Timestamp("created_at").NotNull(),
	)
	testJob = NewTable("lib", "job",
		ID("uuid"),
		Serial("id"),
		Text("work_order").NotNull(),
		ID("client_uuid"),
		ID("created_by"),
		Timestamp("created_at").NotNull(),
		Timestamp("updated_at"),
		Text("remarks"),
		Text("subject"),
	)
)

func baseJobQuery() Query {
	return Select(testJob, "job.uuid", "job.work_order", "client.name AS client_name").
		LeftJoin(testClient, "job.client_uuid = client.uuid").
		LeftJoin(testUsers, "job.created_by = users.uuid")
}

func strp(s string) *string { return &s }

func TestSearchColumns_ExcludesDenyListAndQualifies(t *testing.T) {
	t.Parallel()

	cols := SearchColumns(baseJobQuery(), nil)

	assert.Equal(t, []string{`"job"."work_order"`, `"job"."client_uuid"`, `"job"."created_by"`, `"job"."remarks"`, `"job"."subject"`}, cols)
	for _, c := range cols {
		assert.NotContains(t, c, `"uuid"`)
		assert.NotContains(t, c, `"id"`)
		assert.NotContains(t, c, `"created_at"`)
	}
}

func TestSearchColumns_JoinedColumnsAreOptIn(t *testing.T) {
	t.Parallel()

	cols := SearchColumns(baseJobQuery(), []string{"name", "image", "uuid"})

	// primary first, then joins in join order; deny-listed joined columns stay out
	assert.Equal(t, []string{
		`"job"."work_order"`, `"job"."client_uuid"`, `"job"."created_by"`, `"job"."remarks"`, `"job"."subject"`,
		`"client"."name"`, `"users"."name"`,
	}, cols)
}

func TestCompose_FreeTextSearchOrsEverySearchableColumn(t *testing.T) {
	t.Parallel()

	q, err := Compose(baseJobQuery(), Params{Q: "abc"}, Options{})
	require.NoError(t, err)

	sql, args, err := q.ToSql()
	require.NoError(t, err)

	assert.Contains(t, sql, `WHERE (LOWER(CAST("job"."work_order" AS TEXT)) LIKE LOWER($1) OR `)
	assert.Contains(t, sql, `LOWER(CAST("job"."subject" AS TEXT)) LIKE LOWER($5))`)
	assert.NotContains(t, sql, `"job"."uuid" AS TEXT`)
	require.Len(t, args, 5)
	for _, a := range args {
		assert.Equal(t, "%abc%", a)
	}
}

func TestCompose_FreeTextSearchWithAdditionalFields(t *testing.T) {
	t.Parallel()

	q, err := Compose(baseJobQuery(), Params{Q: "acme"}, Options{AdditionalSearchFields: []string{"name"}})
	require.NoError(t, err)

	sql, args, err := q.ToSql()
	require.NoError(t, err)

	assert.Contains(t, sql, `LOWER(CAST("client"."name" AS TEXT)) LIKE LOWER($6)`)
	assert.Contains(t, sql, `LOWER(CAST("users"."name" AS TEXT)) LIKE LOWER($7)`)
	assert.Len(t, args, 7)
}

func TestCompose_EmptyQAppliesNoFilter(t *testing.T) {
	t.Parallel()

	q, err := Compose(baseJobQuery(), Params{}, Options{})
	require.NoError(t, err)

	sql, args, err := q.ToSql()
	require.NoError(t, err)
	assert.NotContains(t, sql, "WHERE")
	assert.Empty(t, args)
}

func TestCompose_FreeTextSearchWithNoSearchableColumns(t *testing.T) {
	t.Parallel()

	ids := NewTable("lib", "ids", ID("uuid"), Timestamp("created_at"))
	q, err := Compose(Select(ids, "ids.uuid"), Params{Q: "x"}, Options{})
	require.NoError(t, err)

	sql, _, err := q.ToSql()
	require.NoError(t, err)
	assert.NotContains(t, sql, "WHERE")
}

func TestCompose_FieldSearchUsesSingleExactPredicate(t *testing.T) {
	t.Parallel()

	p := Params{Q: "ignored", SearchField: strp("work_order"), SearchValue: strp("WO-1")}
	q, err := Compose(baseJobQuery(), p, Options{})
	require.NoError(t, err)

	sql, args, err := q.ToSql()
	require.NoError(t, err)

	assert.Contains(t, sql, `WHERE LOWER(CAST("job"."work_order" AS TEXT)) LIKE LOWER($1)`)
	assert.NotContains(t, sql, " OR ")
	assert.Equal(t, []interface{}{"%WO-1%"}, args)
}

// "name" is a substring of several qualified columns. Resolution is the
// first match in search-column order, not an exact column match.
func TestCompose_FieldSearchSubstringMatchIsFirstInOrder(t *testing.T) {
	t.Parallel()

	withNames := NewTable("lib", "entry",
		ID("uuid"),
		Text("client_name"),
		Text("name"),
		Text("created_by_name"),
		Timestamp("created_at"),
	)
	q, err := Compose(Select(withNames, "*"), Params{SearchField: strp("name"), SearchValue: strp("bob")}, Options{})
	require.NoError(t, err)

	sql, _, err := q.ToSql()
	require.NoError(t, err)
	assert.Contains(t, sql, `LOWER(CAST("entry"."client_name" AS TEXT))`)
	assert.NotContains(t, sql, `"entry"."name"`)
}

// Matching runs over the qualified string, so the table name participates.
func TestCompose_FieldSearchMatchesTableNamePart(t *testing.T) {
	t.Parallel()

	q, err := Compose(baseJobQuery(), Params{SearchField: strp("job"), SearchValue: strp("x")}, Options{})
	require.NoError(t, err)

	sql, _, err := q.ToSql()
	require.NoError(t, err)
	assert.Contains(t, sql, `LOWER(CAST("job"."work_order" AS TEXT))`)
}

func TestCompose_FieldSearchReachesOptedInJoinColumns(t *testing.T) {
	t.Parallel()

	p := Params{SearchField: strp("client\".\"name"), SearchValue: strp("acme")}
	q, err := Compose(baseJobQuery(), p, Options{AdditionalSearchFields: []string{"name"}})
	require.NoError(t, err)

	sql, _, err := q.ToSql()
	require.NoError(t, err)
	assert.Contains(t, sql, `WHERE LOWER(CAST("client"."name" AS TEXT)) LIKE LOWER($1)`)
}

func TestCompose_FieldSearchWithoutMatchIsUnfiltered(t *testing.T) {
	t.Parallel()

	p := Params{Q: "abc", SearchField: strp("nope"), SearchValue: strp("x")}
	q, err := Compose(baseJobQuery(), p, Options{})
	require.NoError(t, err)

	sql, args, err := q.ToSql()
	require.NoError(t, err)
	assert.NotContains(t, sql, "WHERE")
	assert.Empty(t, args)
}

func TestCompose_FieldSearchNeedsBothHalves(t *testing.T) {
	t.Parallel()

	q, err := Compose(baseJobQuery(), Params{Q: "abc", SearchField: strp("work_order")}, Options{})
	require.NoError(t, err)

	sql, _, err := q.ToSql()
	require.NoError(t, err)
	assert.Contains(t, sql, " OR ")
}

func TestCompose_DefaultSortIsCreatedAtDesc(t *testing.T) {
	t.Parallel()

	q, err := Compose(baseJobQuery(), Params{}, Options{})
	require.NoError(t, err)

	sql, _, err := q.ToSql()
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(sql, `ORDER BY "job"."created_at" DESC`), sql)
}

func TestCompose_CustomDefaultSortField(t *testing.T) {
	t.Parallel()

	q, err := Compose(baseJobQuery(), Params{}, Options{DefaultSortField: "work_order"})
	require.NoError(t, err)

	sql, _, err := q.ToSql()
	require.NoError(t, err)
	assert.Contains(t, sql, `ORDER BY "job"."work_order" DESC`)
}

func TestCompose_SortDirection(t *testing.T) {
	t.Parallel()

	cases := []struct {
		orderBy string
		want    string
	}{
		{"asc", `ORDER BY "job"."work_order" ASC`},
		{"desc", `ORDER BY "job"."work_order" DESC`},
		{"", `ORDER BY "job"."work_order" DESC`},
		{"ASC", `ORDER BY "job"."work_order" DESC`},
		{"sideways", `ORDER BY "job"."work_order" DESC`},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.orderBy, func(t *testing.T) {
			t.Parallel()
			q, err := Compose(baseJobQuery(), Params{Sort: "work_order", OrderBy: tc.orderBy}, Options{})
			require.NoError(t, err)
			sql, _, err := q.ToSql()
			require.NoError(t, err)
			assert.Contains(t, sql, tc.want)
		})
	}
}

func TestCompose_SortResolvesAgainstPrimaryTableOnly(t *testing.T) {
	t.Parallel()

	// "name" exists on the joined client table but not on job
	_, err := Compose(baseJobQuery(), Params{Sort: "name"}, Options{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidColumn))
}

func TestCompose_UnknownDefaultSortFieldFails(t *testing.T) {
	t.Parallel()

	_, err := Compose(baseJobQuery(), Params{}, Options{DefaultSortField: "missing"})
	assert.ErrorIs(t, err, ErrInvalidColumn)
}

func TestCompose_Pagination(t *testing.T) {
	t.Parallel()

	q, err := Compose(baseJobQuery(), Params{Page: 3, Limit: 10}, Options{})
	require.NoError(t, err)

	sql, _, err := q.ToSql()
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(sql, "LIMIT 10 OFFSET 20"), sql)
}

func TestCompose_PaginationNeedsPageAndLimit(t *testing.T) {
	t.Parallel()

	for _, p := range []Params{{Page: 2}, {Limit: 5}, {}} {
		q, err := Compose(baseJobQuery(), p, Options{})
		require.NoError(t, err)
		sql, _, err := q.ToSql()
		require.NoError(t, err)
		assert.NotContains(t, sql, "LIMIT")
		assert.NotContains(t, sql, "OFFSET")
	}
}

func TestCompose_DoesNotMutateBaseQuery(t *testing.T) {
	t.Parallel()

	base := baseJobQuery()
	before, _, err := base.ToSql()
	require.NoError(t, err)

	_, err = Compose(base, Params{Q: "x", Sort: "work_order", Page: 1, Limit: 5}, Options{})
	require.NoError(t, err)

	after, _, err := base.ToSql()
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestCompose_IsDeterministic(t *testing.T) {
	t.Parallel()

	p := Params{Q: "x", Sort: "work_order", OrderBy: "asc", Page: 2, Limit: 5}
	a, err := Compose(baseJobQuery(), p, Options{AdditionalSearchFields: []string{"name"}})
	require.NoError(t, err)
	b, err := Compose(baseJobQuery(), p, Options{AdditionalSearchFields: []string{"name"}})
	require.NoError(t, err)

	sa, aa, _ := a.ToSql()
	sb, ab, _ := b.ToSql()
	assert.Equal(t, sa, sb)
	assert.Equal(t, aa, ab)
}

func TestCompose_SearchValueIsBoundNotInterpolated(t *testing.T) {
	t.Parallel()

	q, err := Compose(baseJobQuery(), Params{Q: "'; DROP TABLE lib.job; --"}, Options{})
	require.NoError(t, err)

	sql, args, err := q.ToSql()
	require.NoError(t, err)
	assert.NotContains(t, sql, "DROP TABLE")
	assert.Contains(t, args, "%'; DROP TABLE lib.job; --%")
}

func TestParseParams(t *testing.T) {
	t.Parallel()

	values, err := url.ParseQuery("q=abc&page=2&limit=25&sort=name&orderby=asc&search_field=name&search_value=bob&extra=1")
	require.NoError(t, err)

	p, err := ParseParams(values)
	require.NoError(t, err)
	assert.Equal(t, "abc", p.Q)
	assert.Equal(t, 2, p.Page)
	assert.Equal(t, 25, p.Limit)
	assert.Equal(t, "name", p.Sort)
	assert.True(t, p.Ascending())
	require.True(t, p.FieldSearch())
	assert.Equal(t, "name", *p.SearchField)
	assert.Equal(t, "bob", *p.SearchValue)
	assert.Equal(t, 25, p.Offset())
}

func TestParseParams_CoercesBadNumbersToAbsent(t *testing.T) {
	t.Parallel()

	values, err := url.ParseQuery("page=abc&limit=-4")
	require.NoError(t, err)

	p, err := ParseParams(values)
	require.NoError(t, err)
	assert.Equal(t, 0, p.Page)
	assert.Equal(t, 0, p.Limit)
	assert.False(t, p.Paginated())
}

func TestParseParams_RejectsPageBeyondOffsetRange(t *testing.T) {
	t.Parallel()

	values, err := url.ParseQuery("page=4611686018427387905&limit=4")
	require.NoError(t, err)

	_, err = ParseParams(values)
	require.ErrorIs(t, err, ErrInvalidParams)

	values, err = url.ParseQuery("page=1000&limit=4")
	require.NoError(t, err)
	p, err := ParseParams(values)
	require.NoError(t, err)
	assert.Equal(t, 3996, p.Offset())
}

func TestParseParams_EmptySearchValueCountsAsGiven(t *testing.T) {
	t.Parallel()

	values, err := url.ParseQuery("search_field=name&search_value=")
	require.NoError(t, err)

	p, err := ParseParams(values)
	require.NoError(t, err)
	require.True(t, p.FieldSearch())
	assert.Equal(t, "", *p.SearchValue)
}

func TestNewTable_PanicsOnDuplicateColumn(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() {
		NewTable("lib", "dup", Text("name"), Text("name"))
	})
}

func TestTable_SearchableFixedAtDeclaration(t *testing.T) {
	t.Parallel()

	c, ok := testJob.Column("uuid")
	require.True(t, ok)
	assert.False(t, c.Searchable)

	c, ok = testJob.Column("work_order")
	require.True(t, ok)
	assert.True(t, c.Searchable)

	assert.Equal(t, "lib.job", testJob.From())
	assert.Equal(t, `"job"."remarks"`, testJob.Ref("remarks"))
}
