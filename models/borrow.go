package models

import "time"

// Borrow represents an open loan: a book held by a user until DueDate.
// It maps to the `borrows` table in SQLite. At most one row may exist per
// (username, book id) pair; the row is deleted when the loan is settled.
type Borrow struct {
	ID        string    `db:"id" json:"id"`
	Username  string    `db:"username" json:"username"`
	BookID    string    `db:"book_id" json:"bookid"`
	DueDate   time.Time `db:"due_date" json:"duedate"`
	CreatedAt string    `db:"created_at" json:"created_at"`
}
