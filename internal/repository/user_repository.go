package repository

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"strings"

	"github.com/jmvaldes/setlist-helper/internal/model"
	"github.com/jmvaldes/setlist-helper/internal/utils"
)

// UserRepo persists application users. Usernames are matched exactly
// and case-sensitively; uniqueness is enforced by the store.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

// Create hashes the password and inserts the user, returning its ID.
// A username collision is reported as ErrUserExists.
func (r *UserRepo) Create(ctx context.Context, username, password, role string, cost int) (uint64, error) {
	username = strings.TrimSpace(username)
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (username, password_hash, role) VALUES (?,?,?)",
		username, hash, role)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, ErrUserExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByUsername fetches a user by exact username.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (model.User, error) {
	var u model.User
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, username, password_hash, role, created_at, updated_at FROM users WHERE username=? LIMIT 1",
		username).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, ErrUserNotFound
	}
	return u, err
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	var u model.User
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, username, password_hash, role, created_at, updated_at FROM users WHERE id=? LIMIT 1",
		id).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, ErrUserNotFound
	}
	return u, err
}

// UpdatePassword replaces the stored hash in place. The caller is
// responsible for verifying the current password and validating the new
// one beforehand.
func (r *UserRepo) UpdatePassword(ctx context.Context, id uint64, newHash string) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE users SET password_hash=?, updated_at=CURRENT_TIMESTAMP WHERE id=?",
		newHash, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrUserNotFound
	}
	return nil
}

// Count returns the number of user rows.
func (r *UserRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM users").Scan(&n)
	return n, err
}

// SeedDefaults inserts the fixed local-dev accounts (admin/admin123 and
// usuario/user123) when they are missing. Idempotent: repeated calls
// never duplicate an account. These are well-known credentials and must
// never be enabled on a networked deployment.
func (r *UserRepo) SeedDefaults(ctx context.Context, cost int) error {
	seeds := []struct {
		username, password, role string
	}{
		{"admin", "admin123", model.RoleAdmin},
		{"usuario", "user123", model.RoleUser},
	}
	for _, s := range seeds {
		_, err := r.GetByUsername(ctx, s.username)
		if err == nil {
			continue
		}
		if !errors.Is(err, ErrUserNotFound) {
			return err
		}
		if _, err := r.Create(ctx, s.username, s.password, s.role, cost); err != nil {
			// A concurrent seeder may have won the race; the account
			// existing is the goal, not our insert.
			if errors.Is(err, ErrUserExists) {
				continue
			}
			return err
		}
		log.Printf("seeded default account %q (role=%s); change this password outside local dev", s.username, s.role)
	}
	return nil
}

// isUniqueViolation reports whether err is a SQLite UNIQUE constraint
// failure.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "unique constraint failed")
}
