package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"libraryManagement/models"
)

type ReturnRepository struct {
	db *sql.DB
}

func NewReturnRepository(db *sql.DB) *ReturnRepository {
	return &ReturnRepository{db: db}
}

// Record appends a completed-loan row. The ledger exposes no update or delete.
func (r *ReturnRepository) Record(ctx context.Context, q DBTX, username, bookID string, due time.Time, fine int64) (*models.Return, error) {
	if q == nil {
		q = r.db
	}
	id := uuid.NewString()
	_, err := q.ExecContext(ctx, `INSERT INTO returns (id, username, book_id, due_date, fine) VALUES (?,?,?,?,?)`,
		id, username, bookID, due.Format(dueDateFormat), fine)
	if err != nil {
		return nil, err
	}
	var rec models.Return
	var dueStr string
	err = q.QueryRowContext(ctx, `SELECT id, username, book_id, due_date, fine, created_at FROM returns WHERE id = ?`, id).
		Scan(&rec.ID, &rec.Username, &rec.BookID, &dueStr, &rec.Fine, &rec.CreatedAt)
	if err != nil {
		return nil, err
	}
	if rec.DueDate, err = time.Parse(dueDateFormat, dueStr); err != nil {
		return nil, err
	}
	return &rec, nil
}

// List returns a page of the audit trail, most recent first.
func (r *ReturnRepository) List(ctx context.Context, limit, offset int) ([]models.Return, error) {
	if limit <= 0 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `SELECT id, username, book_id, due_date, fine, created_at FROM returns ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []models.Return
	for rows.Next() {
		var rec models.Return
		var due string
		if err := rows.Scan(&rec.ID, &rec.Username, &rec.BookID, &due, &rec.Fine, &rec.CreatedAt); err != nil {
			return nil, err
		}
		if rec.DueDate, err = time.Parse(dueDateFormat, due); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
