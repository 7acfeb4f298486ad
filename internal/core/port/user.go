package port

import (
	"context"

	sq "github.com/Masterminds/squirrel"

	"userapp/internal/core/domain"
	"userapp/internal/core/query"
	"userapp/internal/core/stats"
)

type UserRepository interface {
	List(ctx context.Context, pred sq.Sqlizer, sort query.Sort, page query.Pagination) ([]domain.User, int64, error)
	Search(ctx context.Context, pred sq.Sqlizer, limit int) ([]domain.User, error)
	GetAll(ctx context.Context) ([]domain.User, error)
	GetByID(ctx context.Context, id string) (domain.User, error)
	GetByEmail(ctx context.Context, email string) (domain.User, error)
	Create(ctx context.Context, user domain.User) (domain.User, error)
	Update(ctx context.Context, user domain.User) (domain.User, error)
	Delete(ctx context.Context, id string) (domain.User, error)
}

type UserService interface {
	List(ctx context.Context, filters query.Filters, sort query.Sort, page query.Pagination) ([]domain.User, int64, error)
	Search(ctx context.Context, q, field string) ([]domain.User, error)
	Stats(ctx context.Context) (stats.Bundle, error)
	GetByID(ctx context.Context, id string) (domain.User, error)
	Create(ctx context.Context, user domain.User) (domain.User, error)
	Update(ctx context.Context, id string, patch domain.UserPatch) (domain.User, error)
	Delete(ctx context.Context, id string) (domain.User, error)
	AddHobby(ctx context.Context, id, hobby string) (domain.User, error)
	RemoveHobby(ctx context.Context, id, hobby string) (domain.User, error)
}
