package models

import "time"

// Return is the audit record of a completed loan.
// It maps to the `returns` table in SQLite and is append-only: rows are never
// updated or deleted. DueDate is copied from the borrow record it closes.
type Return struct {
	ID        string    `db:"id" json:"id"`
	Username  string    `db:"username" json:"username"`
	BookID    string    `db:"book_id" json:"bookid"`
	DueDate   time.Time `db:"due_date" json:"duedate"`
	Fine      int64     `db:"fine" json:"fine"`
	CreatedAt string    `db:"created_at" json:"created_at"`
}
