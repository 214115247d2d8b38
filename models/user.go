package models

// User represents a registered account.
// It maps to the `users` table in SQLite. PasswordHash is never serialized.
type User struct {
	ID           string `db:"id" json:"id"`
	Name         string `db:"name" json:"name"`
	Username     string `db:"username" json:"username"`
	PasswordHash string `db:"password_hash" json:"-"`
	Email        string `db:"email" json:"email"`
	Mobile       string `db:"mobile" json:"mobile"`
	Admin        bool   `db:"admin" json:"admin"`
	CreatedAt    string `db:"created_at" json:"created_at"`
}
