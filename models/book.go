package models

// Book represents a catalog entry.
// It maps to the `books` table in SQLite. A book is unavailable exactly while
// one open borrow record references it.
type Book struct {
	ID        string `db:"id" json:"id"`
	Name      string `db:"name" json:"name"`
	Author    string `db:"author" json:"author"`
	Genre     string `db:"genre" json:"genre"`
	Type      string `db:"type" json:"type"`
	Available bool   `db:"available" json:"available"`
	CreatedAt string `db:"created_at" json:"created_at"`
	UpdatedAt string `db:"updated_at" json:"updated_at"`
}

// BookPatch carries the admin-editable fields for a book update.
// Nil fields are left untouched.
type BookPatch struct {
	Name      *string `json:"name,omitempty"`
	Author    *string `json:"author,omitempty"`
	Genre     *string `json:"genre,omitempty"`
	Type      *string `json:"type,omitempty"`
	Available *bool   `json:"available,omitempty"`
}
