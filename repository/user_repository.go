package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"libraryManagement/models"
)

const (
	minUsernameLen = 3
	minPasswordLen = 6
)

var mobileRe = regexp.MustCompile(`^[0-9]{10}$`)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create registers a new account. The password is stored as a bcrypt hash and
// the email is normalized to lowercase. Duplicate username, email or mobile
// surfaces as ErrDuplicate via the UNIQUE constraints.
func (r *UserRepository) Create(ctx context.Context, u *models.User, password string) (*models.User, error) {
	if u == nil {
		return nil, errors.New("user is nil")
	}
	if strings.TrimSpace(u.Name) == "" {
		return nil, validationErr("name", "is required")
	}
	if len(u.Username) < minUsernameLen {
		return nil, validationErr("username", "must be at least 3 characters")
	}
	if len(password) < minPasswordLen {
		return nil, validationErr("password", "must be at least 6 characters")
	}
	if strings.TrimSpace(u.Email) == "" {
		return nil, validationErr("email", "is required")
	}
	if !mobileRe.MatchString(u.Mobile) {
		return nil, validationErr("mobile", "must be a 10-digit number")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	id := uuid.NewString()
	email := strings.ToLower(u.Email)
	_, err = r.db.ExecContext(ctx, `INSERT INTO users (id, name, username, password_hash, email, mobile, admin) VALUES (?,?,?,?,?,?,?)`,
		id, u.Name, u.Username, string(hash), email, u.Mobile, u.Admin)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, err
	}
	return r.GetByUsername(ctx, u.Username)
}

// GetByUsername fetches an account including its password hash.
// Returns nil when absent. Callers serving listings must use List, which
// never exposes the hash.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var u models.User
	err := r.db.QueryRowContext(ctx, `SELECT id, name, username, password_hash, email, mobile, admin, created_at FROM users WHERE username = ?`, username).
		Scan(&u.ID, &u.Name, &u.Username, &u.PasswordHash, &u.Email, &u.Mobile, &u.Admin, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

// VerifyPassword compares a candidate password against the stored hash.
func (r *UserRepository) VerifyPassword(u *models.User, password string) bool {
	if u == nil {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// List returns a page of accounts with the credential secret omitted.
func (r *UserRepository) List(ctx context.Context, limit, offset int) ([]models.User, error) {
	if limit <= 0 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `SELECT id, name, username, email, mobile, admin, created_at FROM users ORDER BY created_at, id LIMIT ? OFFSET ?`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Username, &u.Email, &u.Mobile, &u.Admin, &u.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// SetAdminByUsername grants or revokes the admin flag.
// Intended for administrative flows and tests.
func (r *UserRepository) SetAdminByUsername(ctx context.Context, username string, admin bool) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	_, err := r.db.ExecContext(ctx, `UPDATE users SET admin = ? WHERE username = ?`, admin, username)
	return err
}
