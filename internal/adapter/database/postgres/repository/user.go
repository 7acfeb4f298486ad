package repository

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.opentelemetry.io/otel/attribute"

	database "userapp/internal/adapter/database/postgres"
	"userapp/internal/core/domain"
	"userapp/internal/core/port"
	"userapp/internal/core/query"
	"userapp/pkg/tracing"
)

const usersTable = "users"

var userColumns = []string{"id", "name", "email", "age", "hobbies", "is_active", "profile_score", "created_at", "updated_at"}

type UserRepository struct {
	db *database.DB
}

func NewUserRepository(db *database.DB) port.UserRepository {
	return &UserRepository{db: db}
}

func scanUser(row pgx.Row) (domain.User, error) {
	var user domain.User
	var hobbies []byte

	err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.Age,
		&hobbies,
		&user.IsActive,
		&user.ProfileScore,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		return domain.User{}, err
	}

	if len(hobbies) > 0 {
		if err := json.Unmarshal(hobbies, &user.Hobbies); err != nil {
			return domain.User{}, err
		}
	}

	return user, nil
}

func encodeHobbies(hobbies []string) string {
	if hobbies == nil {
		hobbies = []string{}
	}

	encoded, _ := json.Marshal(hobbies)

	return string(encoded)
}

func mapError(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrUserNotFound
	}

	var pgErr *pgconn.PgError

	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return domain.ErrEmailTaken
	}

	return err
}

func (ur *UserRepository) List(ctx context.Context, pred sq.Sqlizer, sort query.Sort, page query.Pagination) ([]domain.User, int64, error) {
	ctx, span := tracing.CreateChildSpan(ctx, "db.user.List", []attribute.KeyValue{
		attribute.String("db.table", usersTable),
		attribute.String("db.operation", "SELECT"),
		attribute.Int("user.page", page.Page),
		attribute.Int("user.limit", page.Limit),
	})

	defer span.End()

	countQuery := ur.db.QueryBuilder.Select("COUNT(*)").From(usersTable)
	listQuery := ur.db.QueryBuilder.Select(userColumns...).From(usersTable)

	if pred != nil {
		countQuery = countQuery.Where(pred)
		listQuery = listQuery.Where(pred)
	}

	stmt, args, err := countQuery.ToSql()

	if err != nil {
		return nil, 0, err
	}

	var total int64

	if err := ur.db.QueryRow(ctx, stmt, args...).Scan(&total); err != nil {
		tracing.AddSpanError(span, err)
		return nil, 0, err
	}

	stmt, args, err = listQuery.
		OrderBy(sort.OrderBy()).
		Limit(uint64(page.Limit)).
		Offset(page.Offset()).
		ToSql()

	if err != nil {
		return nil, 0, err
	}

	rows, err := ur.db.Query(ctx, stmt, args...)

	if err != nil {
		tracing.AddSpanError(span, err)
		slog.Error("Error listing users", "error", err)
		return nil, 0, err
	}

	defer rows.Close()

	users := []domain.User{}

	for rows.Next() {
		user, err := scanUser(rows)

		if err != nil {
			return nil, 0, err
		}

		users = append(users, user)
	}

	span.SetAttributes(attribute.Int("db.rows_returned", len(users)))

	return users, total, rows.Err()
}

func (ur *UserRepository) Search(ctx context.Context, pred sq.Sqlizer, limit int) ([]domain.User, error) {
	stmt, args, err := ur.db.QueryBuilder.Select(userColumns...).
		From(usersTable).
		Where(pred).
		OrderBy("created_at DESC").
		Limit(uint64(limit)).
		ToSql()

	if err != nil {
		return nil, err
	}

	rows, err := ur.db.Query(ctx, stmt, args...)

	if err != nil {
		slog.Error("Error searching users", "error", err)
		return nil, err
	}

	defer rows.Close()

	users := []domain.User{}

	for rows.Next() {
		user, err := scanUser(rows)

		if err != nil {
			return nil, err
		}

		users = append(users, user)
	}

	return users, rows.Err()
}

func (ur *UserRepository) GetAll(ctx context.Context) ([]domain.User, error) {
	stmt, args, err := ur.db.QueryBuilder.Select(userColumns...).
		From(usersTable).
		ToSql()

	if err != nil {
		return nil, err
	}

	rows, err := ur.db.Query(ctx, stmt, args...)

	if err != nil {
		return nil, err
	}

	defer rows.Close()

	users := []domain.User{}

	for rows.Next() {
		user, err := scanUser(rows)

		if err != nil {
			return nil, err
		}

		users = append(users, user)
	}

	return users, rows.Err()
}

func (ur *UserRepository) GetByID(ctx context.Context, id string) (domain.User, error) {
	stmt, args, err := ur.db.QueryBuilder.Select(userColumns...).
		From(usersTable).
		Where(sq.Eq{"id": id}).
		Limit(1).
		ToSql()

	if err != nil {
		return domain.User{}, err
	}

	user, err := scanUser(ur.db.QueryRow(ctx, stmt, args...))

	if err != nil {
		return domain.User{}, mapError(err)
	}

	return user, nil
}

func (ur *UserRepository) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	stmt, args, err := ur.db.QueryBuilder.Select(userColumns...).
		From(usersTable).
		Where(sq.Expr("LOWER(email) = ?", email)).
		Limit(1).
		ToSql()

	if err != nil {
		return domain.User{}, err
	}

	user, err := scanUser(ur.db.QueryRow(ctx, stmt, args...))

	if err != nil {
		return domain.User{}, mapError(err)
	}

	return user, nil
}

func (ur *UserRepository) Create(ctx context.Context, user domain.User) (domain.User, error) {
	stmt, args, err := ur.db.QueryBuilder.Insert(usersTable).
		Columns(userColumns...).
		Values(user.ID, user.Name, user.Email, user.Age, encodeHobbies(user.Hobbies), user.IsActive, user.ProfileScore, user.CreatedAt, user.UpdatedAt).
		Suffix("RETURNING " + columnList()).
		ToSql()

	if err != nil {
		return domain.User{}, err
	}

	created, err := scanUser(ur.db.QueryRow(ctx, stmt, args...))

	if err != nil {
		slog.Error("Error creating user", "error", err)
		return domain.User{}, mapError(err)
	}

	return created, nil
}

func (ur *UserRepository) Update(ctx context.Context, user domain.User) (domain.User, error) {
	stmt, args, err := ur.db.QueryBuilder.Update(usersTable).
		SetMap(map[string]interface{}{
			"name":          user.Name,
			"email":         user.Email,
			"age":           user.Age,
			"hobbies":       encodeHobbies(user.Hobbies),
			"is_active":     user.IsActive,
			"profile_score": user.ProfileScore,
			"updated_at":    user.UpdatedAt,
		}).
		Where(sq.Eq{"id": user.ID}).
		Suffix("RETURNING " + columnList()).
		ToSql()

	if err != nil {
		return domain.User{}, err
	}

	updated, err := scanUser(ur.db.QueryRow(ctx, stmt, args...))

	if err != nil {
		slog.Error("Error updating user", "error", err, "id", user.ID)
		return domain.User{}, mapError(err)
	}

	return updated, nil
}

func (ur *UserRepository) Delete(ctx context.Context, id string) (domain.User, error) {
	stmt, args, err := ur.db.QueryBuilder.Delete(usersTable).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING " + columnList()).
		ToSql()

	if err != nil {
		return domain.User{}, err
	}

	deleted, err := scanUser(ur.db.QueryRow(ctx, stmt, args...))

	if err != nil {
		return domain.User{}, mapError(err)
	}

	return deleted, nil
}

func columnList() string {
	list := userColumns[0]

	for _, c := range userColumns[1:] {
		list += ", " + c
	}

	return list
}
