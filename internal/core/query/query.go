// Package query translates request parameters into storage predicates.
// Everything here is pure: predicates are built as squirrel expressions and
// executed by the repository adapters.
package query

import (
	"strconv"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"userapp/internal/core/domain"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100

	// SearchLimit caps search results regardless of pagination.
	SearchLimit = 50
)

// Filters holds the optional list filters. Nil pointer fields were not
// supplied.
type Filters struct {
	Name     string
	Email    string
	MinAge   *int
	MaxAge   *int
	Hobby    string
	IsActive *bool
}

type Sort struct {
	Column string
	Desc   bool
}

func (s Sort) OrderBy() string {
	if s.Desc {
		return s.Column + " DESC"
	}
	return s.Column + " ASC"
}

type Pagination struct {
	Page  int
	Limit int
}

func (p Pagination) Offset() uint64 {
	return uint64((p.Page - 1) * p.Limit)
}

// sortColumns whitelists sortable fields and maps them onto columns; anything
// else falls back to the default sort.
var sortColumns = map[string]string{
	"name":         "name",
	"email":        "email",
	"age":          "age",
	"isActive":     "is_active",
	"profileScore": "profile_score",
	"createdAt":    "created_at",
	"updatedAt":    "updated_at",
}

// BuildListPredicate combines the supplied filters into one conjunction.
// Returns nil when no filter was supplied.
func BuildListPredicate(f Filters) sq.Sqlizer {
	var conj sq.And

	if f.Name != "" {
		conj = append(conj, sq.Expr("LOWER(name) LIKE ?", "%"+strings.ToLower(f.Name)+"%"))
	}

	if f.Email != "" {
		conj = append(conj, sq.Expr("LOWER(email) = ?", strings.ToLower(f.Email)))
	}

	if f.MinAge != nil {
		conj = append(conj, sq.GtOrEq{"age": *f.MinAge})
	}

	if f.MaxAge != nil {
		conj = append(conj, sq.LtOrEq{"age": *f.MaxAge})
	}

	if f.Hobby != "" {
		// hobbies are stored as a JSON array, so membership is a match on
		// the quoted element
		conj = append(conj, sq.Expr("LOWER(hobbies) LIKE ?", `%"`+strings.ToLower(f.Hobby)+`"%`))
	}

	if f.IsActive != nil {
		conj = append(conj, sq.Eq{"is_active": *f.IsActive})
	}

	if len(conj) == 0 {
		return nil
	}

	return conj
}

// BuildSearchPredicate builds the free-text predicate. field selects which
// columns participate; "all" is an OR across name, email and hobbies. An
// unknown field or an empty q is a malformed request, never silently ignored.
func BuildSearchPredicate(q, field string) (sq.Sqlizer, error) {
	if strings.TrimSpace(q) == "" {
		return nil, domain.NewMalformedRequest("q", "search query is required")
	}

	needle := "%" + strings.ToLower(strings.TrimSpace(q)) + "%"

	name := sq.Expr("LOWER(name) LIKE ?", needle)
	email := sq.Expr("LOWER(email) LIKE ?", needle)
	hobby := sq.Expr("LOWER(hobbies) LIKE ?", needle)

	switch field {
	case "", "all":
		return sq.Or{name, email, hobby}, nil
	case "name":
		return name, nil
	case "email":
		return email, nil
	case "hobby":
		return hobby, nil
	default:
		return nil, domain.NewMalformedRequest("field", "field must be one of name, email, hobby, all")
	}
}

// ParseSort resolves sortBy/order onto a whitelisted column, defaulting to
// newest-first.
func ParseSort(sortBy, order string) Sort {
	column, ok := sortColumns[sortBy]
	if !ok {
		column = "created_at"
	}

	return Sort{Column: column, Desc: order != "asc"}
}

// ParsePagination rejects non-numeric page/limit values instead of coercing
// them, and clamps limit to MaxLimit.
func ParsePagination(pageRaw, limitRaw string) (Pagination, error) {
	p := Pagination{Page: DefaultPage, Limit: DefaultLimit}

	if pageRaw != "" {
		page, err := strconv.Atoi(pageRaw)
		if err != nil {
			return p, domain.NewMalformedRequest("page", "page must be a number")
		}
		if page >= 1 {
			p.Page = page
		}
	}

	if limitRaw != "" {
		limit, err := strconv.Atoi(limitRaw)
		if err != nil {
			return p, domain.NewMalformedRequest("limit", "limit must be a number")
		}
		if limit >= 1 {
			p.Limit = limit
		}
	}

	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}

	return p, nil
}

// ParseAge parses an optional minAge/maxAge query value.
func ParseAge(name, raw string) (*int, error) {
	if raw == "" {
		return nil, nil
	}

	age, err := strconv.Atoi(raw)
	if err != nil {
		return nil, domain.NewMalformedRequest(name, name+" must be a number")
	}

	return &age, nil
}

// TotalPages implements ceil(total / limit) without floats.
func TotalPages(total int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}
