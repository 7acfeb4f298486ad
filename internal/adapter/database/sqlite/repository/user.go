package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"

	sq "github.com/Masterminds/squirrel"
	"github.com/mattn/go-sqlite3"

	database "userapp/internal/adapter/database/sqlite"
	"userapp/internal/core/domain"
	"userapp/internal/core/port"
	"userapp/internal/core/query"
)

const usersTable = "users"

var userColumns = []string{"id", "name", "email", "age", "hobbies", "is_active", "profile_score", "created_at", "updated_at"}

type UserRepository struct {
	db *database.DB
}

func NewUserRepository(db *database.DB) port.UserRepository {
	return &UserRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (domain.User, error) {
	var user domain.User
	var age sql.NullInt64
	var hobbies string

	err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&age,
		&hobbies,
		&user.IsActive,
		&user.ProfileScore,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		return domain.User{}, err
	}

	if age.Valid {
		value := int(age.Int64)
		user.Age = &value
	}

	if hobbies != "" {
		if err := json.Unmarshal([]byte(hobbies), &user.Hobbies); err != nil {
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

func ageValue(age *int) any {
	if age == nil {
		return nil
	}

	return *age
}

func mapError(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrUserNotFound
	}

	var sqliteErr sqlite3.Error

	if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
		return domain.ErrEmailTaken
	}

	return err
}

func (ur *UserRepository) List(ctx context.Context, pred sq.Sqlizer, sort query.Sort, page query.Pagination) ([]domain.User, int64, error) {
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

	if err := ur.db.QueryRowContext(ctx, stmt, args...).Scan(&total); err != nil {
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

	users, err := ur.queryUsers(ctx, stmt, args)

	if err != nil {
		slog.Error("Error listing users", "error", err)
		return nil, 0, err
	}

	return users, total, nil
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

	return ur.queryUsers(ctx, stmt, args)
}

func (ur *UserRepository) GetAll(ctx context.Context) ([]domain.User, error) {
	stmt, args, err := ur.db.QueryBuilder.Select(userColumns...).
		From(usersTable).
		ToSql()

	if err != nil {
		return nil, err
	}

	return ur.queryUsers(ctx, stmt, args)
}

func (ur *UserRepository) queryUsers(ctx context.Context, stmt string, args []interface{}) ([]domain.User, error) {
	rows, err := ur.db.QueryContext(ctx, stmt, args...)

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

	user, err := scanUser(ur.db.QueryRowContext(ctx, stmt, args...))

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

	user, err := scanUser(ur.db.QueryRowContext(ctx, stmt, args...))

	if err != nil {
		return domain.User{}, mapError(err)
	}

	return user, nil
}

func (ur *UserRepository) Create(ctx context.Context, user domain.User) (domain.User, error) {
	stmt, args, err := ur.db.QueryBuilder.Insert(usersTable).
		Columns(userColumns...).
		Values(user.ID, user.Name, user.Email, ageValue(user.Age), encodeHobbies(user.Hobbies), user.IsActive, user.ProfileScore, user.CreatedAt, user.UpdatedAt).
		ToSql()

	if err != nil {
		return domain.User{}, err
	}

	if _, err := ur.db.ExecContext(ctx, stmt, args...); err != nil {
		slog.Error("Error creating user", "error", err)
		return domain.User{}, mapError(err)
	}

	return ur.GetByID(ctx, user.ID)
}

func (ur *UserRepository) Update(ctx context.Context, user domain.User) (domain.User, error) {
	stmt, args, err := ur.db.QueryBuilder.Update(usersTable).
		SetMap(map[string]interface{}{
			"name":          user.Name,
			"email":         user.Email,
			"age":           ageValue(user.Age),
			"hobbies":       encodeHobbies(user.Hobbies),
			"is_active":     user.IsActive,
			"profile_score": user.ProfileScore,
			"updated_at":    user.UpdatedAt,
		}).
		Where(sq.Eq{"id": user.ID}).
		ToSql()

	if err != nil {
		return domain.User{}, err
	}

	result, err := ur.db.ExecContext(ctx, stmt, args...)

	if err != nil {
		slog.Error("Error updating user", "error", err, "id", user.ID)
		return domain.User{}, mapError(err)
	}

	if affected, _ := result.RowsAffected(); affected == 0 {
		return domain.User{}, domain.ErrUserNotFound
	}

	return ur.GetByID(ctx, user.ID)
}

func (ur *UserRepository) Delete(ctx context.Context, id string) (domain.User, error) {
	existing, err := ur.GetByID(ctx, id)

	if err != nil {
		return domain.User{}, err
	}

	stmt, args, err := ur.db.QueryBuilder.Delete(usersTable).
		Where(sq.Eq{"id": id}).
		ToSql()

	if err != nil {
		return domain.User{}, err
	}

	if _, err := ur.db.ExecContext(ctx, stmt, args...); err != nil {
		return domain.User{}, mapError(err)
	}

	return existing, nil
}
