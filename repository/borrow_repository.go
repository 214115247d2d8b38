package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"libraryManagement/models"
)

// dueDateFormat is how due dates are stored in SQLite.
const dueDateFormat = time.RFC3339Nano

type BorrowRepository struct {
	db *sql.DB
}

func NewBorrowRepository(db *sql.DB) *BorrowRepository {
	return &BorrowRepository{db: db}
}

// FindOpen returns the open loan for (username, bookID), or nil when the pair
// has no loan. Accepts a DBTX so the lending service can read inside its
// transaction.
func (r *BorrowRepository) FindOpen(ctx context.Context, q DBTX, username, bookID string) (*models.Borrow, error) {
	if q == nil {
		q = r.db
	}
	var b models.Borrow
	var due string
	err := q.QueryRowContext(ctx, `SELECT id, username, book_id, due_date, created_at FROM borrows WHERE username = ? AND book_id = ?`, username, bookID).
		Scan(&b.ID, &b.Username, &b.BookID, &due, &b.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	b.DueDate, err = time.Parse(dueDateFormat, due)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// Open creates a loan for (username, bookID) due at due. A second open loan
// for the same pair fails ErrDuplicate via the UNIQUE index even if the
// caller's pre-check raced.
func (r *BorrowRepository) Open(ctx context.Context, q DBTX, username, bookID string, due time.Time) (*models.Borrow, error) {
	if q == nil {
		q = r.db
	}
	id := uuid.NewString()
	_, err := q.ExecContext(ctx, `INSERT INTO borrows (id, username, book_id, due_date) VALUES (?,?,?,?)`,
		id, username, bookID, due.Format(dueDateFormat))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, err
	}
	return r.FindOpen(ctx, q, username, bookID)
}

// Close deletes a settled loan. Fails ErrNotFound when the loan was already
// closed; closing is not idempotent.
func (r *BorrowRepository) Close(ctx context.Context, q DBTX, id string) error {
	if q == nil {
		q = r.db
	}
	res, err := q.ExecContext(ctx, `DELETE FROM borrows WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// ListByUsername returns all open loans held by a user, oldest first.
func (r *BorrowRepository) ListByUsername(ctx context.Context, username string) ([]models.Borrow, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `SELECT id, username, book_id, due_date, created_at FROM borrows WHERE username = ? ORDER BY created_at, id`, username)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []models.Borrow
	for rows.Next() {
		var b models.Borrow
		var due string
		if err := rows.Scan(&b.ID, &b.Username, &b.BookID, &due, &b.CreatedAt); err != nil {
			return nil, err
		}
		if b.DueDate, err = time.Parse(dueDateFormat, due); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
