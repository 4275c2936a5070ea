package repository

import (
	"calcapi/internal/models"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Ensure implementation of Users interface at compile time.
var _ Users = (*UserRepository)(nil)

const (
	insertUserSQL = `INSERT INTO users (first_name, last_name, username, email, password_hash, is_active, is_verified, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	selectUserColumns = `id, first_name, last_name, username, email, password_hash, is_active, is_verified, last_login, created_at, updated_at`

	selectUserByIdentifierSQL = `SELECT ` + selectUserColumns + ` FROM users WHERE username = ? OR email = ?`
	selectUserByIDSQL         = `SELECT ` + selectUserColumns + ` FROM users WHERE id = ?`

	updateLastLoginSQL = `UPDATE users SET last_login = ?, updated_at = ? WHERE id = ?`
)

// Create inserts a new user and returns its ID.
func (r *UserRepository) Create(ctx context.Context, u models.User) (int, error) {
	res, err := r.db.ExecContext(ctx, insertUserSQL,
		u.FirstName,
		u.LastName,
		u.Username,
		u.Email,
		u.PasswordHash,
		u.IsActive,
		u.IsVerified,
		u.CreatedAt.UTC(),
		u.UpdatedAt.UTC(),
	)
	if err != nil {
		return 0, fmt.Errorf("insert user %q: %w", u.Username, err)
	}
	lastID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get last insert id for user %q: %w", u.Username, err)
	}
	return int(lastID), nil
}

// GetByIdentifier fetches a user whose username or email equals identifier.
// Returns (nil, nil) if not found.
func (r *UserRepository) GetByIdentifier(ctx context.Context, identifier string) (*models.User, error) {
	row := r.db.QueryRowContext(ctx, selectUserByIdentifierSQL, identifier, identifier)
	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select user %q: %w", identifier, err)
	}
	return u, nil
}

// GetByID fetches a user by primary key. Returns (nil, nil) if not found.
func (r *UserRepository) GetByID(ctx context.Context, id int) (*models.User, error) {
	row := r.db.QueryRowContext(ctx, selectUserByIDSQL, id)
	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select user id=%d: %w", id, err)
	}
	return u, nil
}

// TouchLastLogin stamps a successful authentication.
func (r *UserRepository) TouchLastLogin(ctx context.Context, id int, when time.Time) error {
	when = when.UTC()
	if _, err := r.db.ExecContext(ctx, updateLastLoginSQL, when, when, id); err != nil {
		return fmt.Errorf("update last_login for user id=%d: %w", id, err)
	}
	return nil
}

func scanUser(row *sql.Row) (*models.User, error) {
	var (
		u         models.User
		lastLogin sql.NullTime
	)
	if err := row.Scan(
		&u.ID,
		&u.FirstName,
		&u.LastName,
		&u.Username,
		&u.Email,
		&u.PasswordHash,
		&u.IsActive,
		&u.IsVerified,
		&lastLogin,
		&u.CreatedAt,
		&u.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if lastLogin.Valid {
		t := lastLogin.Time.UTC()
		u.LastLogin = &t
	}
	u.CreatedAt = u.CreatedAt.UTC()
	u.UpdatedAt = u.UpdatedAt.UTC()
	return &u, nil
}
