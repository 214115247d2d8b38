package testutil

import (
	"database/sql"
	"net/http"
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"libraryManagement/internal/db"
)

// OpenInMemoryDB opens an in-memory SQLite database and applies migrations.
// Caller is responsible for closing the DB, typically via t.Cleanup.
func OpenInMemoryDB(t *testing.T, name string) *sql.DB {
	t.Helper()
	// We use a shared cache memory database so that multiple connections share the same DB if needed.
	d, err := db.Open("file:" + name + "?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })
	return d
}

// GenerateJWTHS256 returns a signed JWT string with the claims used by the app.
func GenerateJWTHS256(t *testing.T, secret, userID, username string, admin bool) string {
	t.Helper()
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":      userID,
		"username": username,
		"admin":    admin,
		"iat":      now.Unix(),
		"exp":      now.Add(time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return s
}

// SetBearer sets the Authorization header with the given token.
func SetBearer(r *http.Request, token string) {
	r.Header.Set("Authorization", "Bearer "+token)
}
