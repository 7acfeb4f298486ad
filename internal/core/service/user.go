package service

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"userapp/internal/core/domain"
	"userapp/internal/core/port"
	"userapp/internal/core/query"
	"userapp/internal/core/stats"
	"userapp/internal/core/validation"
)

const (
	statsCacheKey = "users:stats"
	statsCacheTTL = 30 * time.Second
	cachePrefix   = "users:"
)

type UserService struct {
	repo  port.UserRepository
	cache port.CacheRepository
}

func NewUserService(repo port.UserRepository, cache port.CacheRepository) *UserService {
	return &UserService{repo: repo, cache: cache}
}

func (us *UserService) List(ctx context.Context, filters query.Filters, sort query.Sort, page query.Pagination) ([]domain.User, int64, error) {
	pred := query.BuildListPredicate(filters)

	users, total, err := us.repo.List(ctx, pred, sort, page)

	if err != nil {
		slog.Error("Error listing users", "error", err)
		return nil, 0, err
	}

	return users, total, nil
}

func (us *UserService) Search(ctx context.Context, q, field string) ([]domain.User, error) {
	pred, err := query.BuildSearchPredicate(q, field)

	if err != nil {
		return nil, err
	}

	users, err := us.repo.Search(ctx, pred, query.SearchLimit)

	if err != nil {
		slog.Error("Error searching users", "error", err, "q", q, "field", field)
		return nil, err
	}

	return users, nil
}

func (us *UserService) Stats(ctx context.Context) (stats.Bundle, error) {
	if cached, err := us.cache.Get(ctx, statsCacheKey); err == nil && cached != nil {
		var bundle stats.Bundle

		if err := json.Unmarshal(cached, &bundle); err == nil {
			return bundle, nil
		}
	}

	users, err := us.repo.GetAll(ctx)

	if err != nil {
		slog.Error("Error loading users for stats", "error", err)
		return stats.Bundle{}, err
	}

	bundle := stats.Compute(users)

	if encoded, err := json.Marshal(bundle); err == nil {
		us.cache.Set(ctx, statsCacheKey, encoded, statsCacheTTL)
	}

	return bundle, nil
}

func (us *UserService) GetByID(ctx context.Context, id string) (domain.User, error) {
	if !domain.IsValidID(id) {
		return domain.User{}, domain.ErrInvalidID
	}

	return us.repo.GetByID(ctx, id)
}

func (us *UserService) Create(ctx context.Context, user domain.User) (domain.User, error) {
	if ve := validation.ValidateCreate(&user); ve != nil {
		return domain.User{}, ve
	}

	now := time.Now().UTC()

	user.ID = domain.NewID()
	user.ProfileScore = domain.ComputeScore(user)
	user.CreatedAt = now
	user.UpdatedAt = now

	created, err := us.repo.Create(ctx, user)

	if err != nil {
		slog.Error("Error creating user", "error", err, "email", user.Email)
		return domain.User{}, err
	}

	us.invalidate(ctx)

	return created, nil
}

func (us *UserService) Update(ctx context.Context, id string, patch domain.UserPatch) (domain.User, error) {
	if !domain.IsValidID(id) {
		return domain.User{}, domain.ErrInvalidID
	}

	if patch.Empty() {
		return domain.User{}, domain.ErrEmptyPatch
	}

	if ve := validation.ValidateUpdate(&patch); ve != nil {
		return domain.User{}, ve
	}

	existing, err := us.repo.GetByID(ctx, id)

	if err != nil {
		return domain.User{}, err
	}

	return us.persist(ctx, patch.Apply(existing))
}

func (us *UserService) Delete(ctx context.Context, id string) (domain.User, error) {
	if !domain.IsValidID(id) {
		return domain.User{}, domain.ErrInvalidID
	}

	deleted, err := us.repo.Delete(ctx, id)

	if err != nil {
		return domain.User{}, err
	}

	us.invalidate(ctx)

	return deleted, nil
}

func (us *UserService) AddHobby(ctx context.Context, id, hobby string) (domain.User, error) {
	if !domain.IsValidID(id) {
		return domain.User{}, domain.ErrInvalidID
	}

	normalized, ve := validation.ValidateHobby(hobby)

	if ve != nil {
		return domain.User{}, ve
	}

	user, err := us.repo.GetByID(ctx, id)

	if err != nil {
		return domain.User{}, err
	}

	// add is idempotent: an already present hobby is not appended again
	if user.HasHobby(normalized) {
		return user, nil
	}

	if len(user.Hobbies) >= domain.MaxHobbies {
		return domain.User{}, domain.ErrHobbiesFull
	}

	user.Hobbies = append(user.Hobbies, normalized)

	return us.persist(ctx, user)
}

func (us *UserService) RemoveHobby(ctx context.Context, id, hobby string) (domain.User, error) {
	if !domain.IsValidID(id) {
		return domain.User{}, domain.ErrInvalidID
	}

	user, err := us.repo.GetByID(ctx, id)

	if err != nil {
		return domain.User{}, err
	}

	target := strings.TrimSpace(hobby)
	kept := make([]string, 0, len(user.Hobbies))

	for _, h := range user.Hobbies {
		if h != target {
			kept = append(kept, h)
		}
	}

	if len(kept) == len(user.Hobbies) {
		return domain.User{}, domain.ErrNoSuchHobby
	}

	user.Hobbies = kept

	return us.persist(ctx, user)
}

// persist recomputes the derived score, stamps the mutation time and writes
// through the repository, so the stored score is never stale.
func (us *UserService) persist(ctx context.Context, user domain.User) (domain.User, error) {
	user.ProfileScore = domain.ComputeScore(user)
	user.UpdatedAt = time.Now().UTC()

	updated, err := us.repo.Update(ctx, user)

	if err != nil {
		slog.Error("Error updating user", "error", err, "id", user.ID)
		return domain.User{}, err
	}

	us.invalidate(ctx)

	return updated, nil
}

func (us *UserService) invalidate(ctx context.Context) {
	if err := us.cache.DeleteByPrefix(ctx, cachePrefix); err != nil {
		slog.Error("Error invalidating user cache", "error", err)
	}
}
