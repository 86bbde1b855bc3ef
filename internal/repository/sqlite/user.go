package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"

	"github.com/adamitejs/service-auth/internal/model"
)

const userColumns = `id, email, password_hash, created_at, last_login_at, last_login_ip, login_count, disabled`

var _ model.UserStore = (*UserRepository)(nil)

// UserRepository stores users in SQLite. Timestamps are kept as Unix
// milliseconds and booleans as 0/1.
type UserRepository struct {
	db DBTX
}

func NewUserRepository(db DBTX) *UserRepository {
	return &UserRepository{db: db}
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (model.User, error) {
	var (
		user        model.User
		id          string
		createdAt   int64
		lastLoginAt int64
	)
	err := row.Scan(&id, &user.Email, &user.PasswordHash, &createdAt, &lastLoginAt,
		&user.LastLoginIP, &user.LoginCount, &user.Disabled)
	if err != nil {
		return model.User{}, err
	}

	user.ID, err = uuid.Parse(id)
	if err != nil {
		return model.User{}, fmt.Errorf("invalid user id %q: %w", id, err)
	}
	user.CreatedAt = fromMillis(createdAt)
	user.LastLoginAt = fromMillis(lastLoginAt)

	return user, nil
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_UNIQUE, sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY:
			return true
		}
	}
	return strings.Contains(strings.ToLower(err.Error()), "unique constraint failed")
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = ?`

	user, err := scanUser(r.db.QueryRowContext(ctx, query, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	return user, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = ?`

	user, err := scanUser(r.db.QueryRowContext(ctx, query, id.String()))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to get user by id: %w", err)
	}

	return user, nil
}

func (r *UserRepository) Create(ctx context.Context, user model.User) (model.User, error) {
	query := `INSERT INTO users (` + userColumns + `)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?)
			  RETURNING ` + userColumns

	saved, err := scanUser(r.db.QueryRowContext(ctx, query,
		user.ID.String(), user.Email, user.PasswordHash, toMillis(user.CreatedAt), toMillis(user.LastLoginAt),
		user.LastLoginIP, user.LoginCount, user.Disabled,
	))
	if err != nil {
		if isUniqueViolation(err) {
			return model.User{}, model.ErrEmailAlreadyExists
		}
		return model.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	return saved, nil
}

// Update applies the set fields in one statement; unset fields bind NULL and
// keep their current value.
func (r *UserRepository) Update(ctx context.Context, id uuid.UUID, update model.UserUpdate) (model.User, error) {
	query := `UPDATE users SET
				email = COALESCE(?, email),
				password_hash = COALESCE(?, password_hash),
				disabled = COALESCE(?, disabled),
				last_login_at = COALESCE(?, last_login_at),
				last_login_ip = COALESCE(?, last_login_ip),
				login_count = login_count + ?
			  WHERE id = ?
			  RETURNING ` + userColumns

	var email, passwordHash, disabled, lastLoginAt, lastLoginIP any
	if update.Email != nil {
		email = *update.Email
	}
	if update.PasswordHash != nil {
		passwordHash = *update.PasswordHash
	}
	if update.Disabled != nil {
		disabled = *update.Disabled
	}
	if update.LastLoginAt != nil {
		lastLoginAt = toMillis(*update.LastLoginAt)
	}
	if update.LastLoginIP != nil {
		lastLoginIP = *update.LastLoginIP
	}

	saved, err := scanUser(r.db.QueryRowContext(ctx, query,
		email, passwordHash, disabled, lastLoginAt, lastLoginIP, update.LoginCountDelta(), id.String(),
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.User{}, model.ErrNotFound
		}
		if isUniqueViolation(err) {
			return model.User{}, model.ErrEmailAlreadyExists
		}
		return model.User{}, fmt.Errorf("failed to update user: %w", err)
	}

	return saved, nil
}

func (r *UserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id.String())
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if affected == 0 {
		return model.ErrNotFound
	}

	return nil
}

func (r *UserRepository) List(ctx context.Context) ([]model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at, id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	users := make([]model.User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	return users, nil
}

func (r *UserRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
