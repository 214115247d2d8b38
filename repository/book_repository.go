package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"libraryManagement/models"
)

type BookRepository struct {
	db *sql.DB
}

func NewBookRepository(db *sql.DB) *BookRepository {
	return &BookRepository{db: db}
}

// Create inserts a new catalog entry. All descriptive fields are required;
// availability defaults to true.
func (r *BookRepository) Create(ctx context.Context, b *models.Book) (*models.Book, error) {
	if b == nil {
		return nil, errors.New("book is nil")
	}
	for field, val := range map[string]string{
		"name":   b.Name,
		"author": b.Author,
		"genre":  b.Genre,
		"type":   b.Type,
	} {
		if strings.TrimSpace(val) == "" {
			return nil, validationErr(field, "is required")
		}
	}

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	id := uuid.NewString()
	_, err := r.db.ExecContext(ctx, `INSERT INTO books (id, name, author, genre, type, available) VALUES (?,?,?,?,?,1)`,
		id, b.Name, b.Author, b.Genre, b.Type)
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, r.db, id)
}

// GetByID fetches a book by its id. Returns nil when absent.
// Accepts a DBTX so the lending service can read inside its transaction.
func (r *BookRepository) GetByID(ctx context.Context, q DBTX, id string) (*models.Book, error) {
	if q == nil {
		q = r.db
	}
	var b models.Book
	err := q.QueryRowContext(ctx, `SELECT id, name, author, genre, type, available, created_at, updated_at FROM books WHERE id = ?`, id).
		Scan(&b.ID, &b.Name, &b.Author, &b.Genre, &b.Type, &b.Available, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &b, nil
}

// Update applies an admin patch. Nil patch fields are left untouched;
// non-nil descriptive fields must not be blank.
func (r *BookRepository) Update(ctx context.Context, id string, patch models.BookPatch) (*models.Book, error) {
	var set []string
	var args []any
	for field, val := range map[string]*string{
		"name":   patch.Name,
		"author": patch.Author,
		"genre":  patch.Genre,
		"type":   patch.Type,
	} {
		if val == nil {
			continue
		}
		if strings.TrimSpace(*val) == "" {
			return nil, validationErr(field, "must not be blank")
		}
		set = append(set, field+" = ?")
		args = append(args, *val)
	}
	if patch.Available != nil {
		set = append(set, "available = ?")
		args = append(args, *patch.Available)
	}
	if len(set) == 0 {
		return nil, validationErr("patch", "no fields to update")
	}
	set = append(set, "updated_at = CURRENT_TIMESTAMP")

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	args = append(args, id)
	res, err := r.db.ExecContext(ctx, `UPDATE books SET `+strings.Join(set, ", ")+` WHERE id = ?`, args...)
	if err != nil {
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, ErrNotFound
	}
	return r.GetByID(ctx, r.db, id)
}

// List returns a page of books ordered by creation time.
func (r *BookRepository) List(ctx context.Context, limit, offset int) ([]models.Book, error) {
	if limit <= 0 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `SELECT id, name, author, genre, type, available, created_at, updated_at FROM books ORDER BY created_at, id LIMIT ? OFFSET ?`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []models.Book
	for rows.Next() {
		var b models.Book
		if err := rows.Scan(&b.ID, &b.Name, &b.Author, &b.Genre, &b.Type, &b.Available, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// MarkUnavailable flips available from true to false. Returns false when the
// book is missing or already unavailable, which lets a racing borrower lose
// cleanly instead of double-lending the copy.
func (r *BookRepository) MarkUnavailable(ctx context.Context, q DBTX, id string) (bool, error) {
	if q == nil {
		q = r.db
	}
	res, err := q.ExecContext(ctx, `UPDATE books SET available = 0, updated_at = CURRENT_TIMESTAMP WHERE id = ? AND available = 1`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n == 1, err
}

// MarkAvailable flips available from false to true. Returns false when the
// book is missing or already available.
func (r *BookRepository) MarkAvailable(ctx context.Context, q DBTX, id string) (bool, error) {
	if q == nil {
		q = r.db
	}
	res, err := q.ExecContext(ctx, `UPDATE books SET available = 1, updated_at = CURRENT_TIMESTAMP WHERE id = ? AND available = 0`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n == 1, err
}
