package query_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"userapp/internal/core/domain"
	"userapp/internal/core/query"
)

func intPtr(v int) *int {
	return &v
}

func boolPtr(v bool) *bool {
	return &v
}

func TestBuildListPredicate_NoFilters(t *testing.T) {
	assert.Nil(t, query.BuildListPredicate(query.Filters{}))
}

func TestBuildListPredicate_CombinesFilters(t *testing.T) {
	pred := query.BuildListPredicate(query.Filters{
		Name:     "Ann",
		MinAge:   intPtr(18),
		MaxAge:   intPtr(30),
		IsActive: boolPtr(true),
	})

	require.NotNil(t, pred)

	sql, args, err := pred.ToSql()

	require.NoError(t, err)
	assert.Contains(t, sql, "LOWER(name) LIKE ?")
	assert.Contains(t, sql, "age >= ?")
	assert.Contains(t, sql, "age <= ?")
	assert.Contains(t, sql, "is_active = ?")
	assert.Contains(t, args, "%ann%")
	assert.Contains(t, args, 18)
	assert.Contains(t, args, 30)
}

func TestBuildListPredicate_EmailIsExactAndLowercased(t *testing.T) {
	pred := query.BuildListPredicate(query.Filters{Email: "ANN@Example.com"})

	sql, args, err := pred.ToSql()

	require.NoError(t, err)
	assert.Contains(t, sql, "LOWER(email) = ?")
	assert.Equal(t, []any{"ann@example.com"}, args)
}

func TestBuildListPredicate_HobbyMatchesJSONElement(t *testing.T) {
	pred := query.BuildListPredicate(query.Filters{Hobby: "Chess"})

	sql, args, err := pred.ToSql()

	require.NoError(t, err)
	assert.Contains(t, sql, "LOWER(hobbies) LIKE ?")
	assert.Equal(t, []any{`%"chess"%`}, args)
}

func TestBuildSearchPredicate_AllFields(t *testing.T) {
	for _, field := range []string{"", "all"} {
		pred, err := query.BuildSearchPredicate("ann", field)

		require.NoError(t, err)

		sql, args, err := pred.ToSql()

		require.NoError(t, err)
		assert.Contains(t, sql, "LOWER(name) LIKE ?")
		assert.Contains(t, sql, "LOWER(email) LIKE ?")
		assert.Contains(t, sql, "LOWER(hobbies) LIKE ?")
		assert.Contains(t, sql, " OR ")
		assert.Equal(t, []any{"%ann%", "%ann%", "%ann%"}, args)
	}
}

func TestBuildSearchPredicate_SingleField(t *testing.T) {
	pred, err := query.BuildSearchPredicate("Ann Lee", "name")

	require.NoError(t, err)

	sql, args, err := pred.ToSql()

	require.NoError(t, err)
	assert.Equal(t, "LOWER(name) LIKE ?", sql)
	assert.Equal(t, []any{"%ann lee%"}, args)
}

func TestBuildSearchPredicate_RejectsUnknownField(t *testing.T) {
	_, err := query.BuildSearchPredicate("ann", "nickname")

	var malformed *domain.MalformedRequestError
	require.ErrorAs(t, err, &malformed)
	assert.Equal(t, "field", malformed.Field)
}

func TestBuildSearchPredicate_RejectsEmptyQuery(t *testing.T) {
	for _, q := range []string{"", "   "} {
		_, err := query.BuildSearchPredicate(q, "all")

		var malformed *domain.MalformedRequestError
		require.ErrorAs(t, err, &malformed)
		assert.Equal(t, "q", malformed.Field)
	}
}

func TestParseSort_Defaults(t *testing.T) {
	sort := query.ParseSort("", "")

	assert.Equal(t, "created_at DESC", sort.OrderBy())
}

func TestParseSort_WhitelistedColumns(t *testing.T) {
	assert.Equal(t, "name ASC", query.ParseSort("name", "asc").OrderBy())
	assert.Equal(t, "profile_score DESC", query.ParseSort("profileScore", "desc").OrderBy())
	assert.Equal(t, "is_active ASC", query.ParseSort("isActive", "asc").OrderBy())
}

func TestParseSort_UnknownColumnFallsBack(t *testing.T) {
	sort := query.ParseSort("password; DROP TABLE users", "asc")

	assert.Equal(t, "created_at ASC", sort.OrderBy())
}

func TestParsePagination_Defaults(t *testing.T) {
	p, err := query.ParsePagination("", "")

	require.NoError(t, err)
	assert.Equal(t, query.Pagination{Page: 1, Limit: 10}, p)
	assert.Equal(t, uint64(0), p.Offset())
}

func TestParsePagination_Values(t *testing.T) {
	p, err := query.ParsePagination("3", "25")

	require.NoError(t, err)
	assert.Equal(t, query.Pagination{Page: 3, Limit: 25}, p)
	assert.Equal(t, uint64(50), p.Offset())
}

func TestParsePagination_OutOfRangeFallsBackToDefaults(t *testing.T) {
	p, err := query.ParsePagination("0", "-5")

	require.NoError(t, err)
	assert.Equal(t, query.Pagination{Page: 1, Limit: 10}, p)
}

func TestParsePagination_ClampsLimit(t *testing.T) {
	p, err := query.ParsePagination("1", "5000")

	require.NoError(t, err)
	assert.Equal(t, query.MaxLimit, p.Limit)
}

func TestParsePagination_RejectsNonNumeric(t *testing.T) {
	_, err := query.ParsePagination("abc", "10")
	assert.Error(t, err)

	_, err = query.ParsePagination("1", "ten")
	assert.Error(t, err)

	var malformed *domain.MalformedRequestError
	assert.True(t, errors.As(err, &malformed))
}

func TestParseAge(t *testing.T) {
	age, err := query.ParseAge("minAge", "18")

	require.NoError(t, err)
	require.NotNil(t, age)
	assert.Equal(t, 18, *age)

	age, err = query.ParseAge("minAge", "")
	require.NoError(t, err)
	assert.Nil(t, age)

	_, err = query.ParseAge("maxAge", "old")
	assert.Error(t, err)
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 0, query.TotalPages(0, 10))
	assert.Equal(t, 1, query.TotalPages(1, 10))
	assert.Equal(t, 1, query.TotalPages(10, 10))
	assert.Equal(t, 2, query.TotalPages(11, 10))
	assert.Equal(t, 5, query.TotalPages(41, 10))
	assert.Equal(t, 0, query.TotalPages(5, 0))
}
