package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"libraryManagement/internal/testutil"
	"libraryManagement/models"
	"libraryManagement/repository"
)

func okHandler() (http.Handler, *bool) {
	called := false
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	}), &called
}

func TestAuthenticate_MissingHeader(t *testing.T) {
	m := &Middleware{Secret: testSecret}
	next, called := okHandler()

	rec := httptest.NewRecorder()
	m.Authenticate(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/books", nil))
	if rec.Code != http.StatusUnauthorized || *called {
		t.Fatalf("want 401 without handler call, got %d called=%v", rec.Code, *called)
	}
}

func TestAuthenticate_InvalidToken(t *testing.T) {
	m := &Middleware{Secret: testSecret}
	next, called := okHandler()

	r := httptest.NewRequest(http.MethodGet, "/books", nil)
	r.Header.Set("Authorization", "Bearer not-a-token")
	rec := httptest.NewRecorder()
	m.Authenticate(next).ServeHTTP(rec, r)
	if rec.Code != http.StatusForbidden || *called {
		t.Fatalf("want 403 without handler call, got %d called=%v", rec.Code, *called)
	}
}

func TestAuthenticate_ValidTokenInjectsPrincipal(t *testing.T) {
	m := &Middleware{Secret: testSecret}
	var got *Principal
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = FromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	tok := testutil.GenerateJWTHS256(t, testSecret, "u-1", "alice", false)
	r := httptest.NewRequest(http.MethodGet, "/books", nil)
	testutil.SetBearer(r, tok)
	rec := httptest.NewRecorder()
	m.Authenticate(next).ServeHTTP(rec, r)
	if rec.Code != http.StatusOK {
		t.Fatalf("want 200, got %d", rec.Code)
	}
	if got == nil || got.Username != "alice" || got.Admin {
		t.Fatalf("principal mismatch: %+v", got)
	}
}

func TestRequireAdmin_ChecksStoreNotJustClaims(t *testing.T) {
	d := testutil.OpenInMemoryDB(t, "authadmin")
	users := repository.NewUserRepository(d)
	ctx := context.Background()
	if _, err := users.Create(ctx, &models.User{Name: "Alice", Username: "alice", Email: "a@x.com", Mobile: "1234567890"}, "secret1"); err != nil {
		t.Fatalf("seed user: %v", err)
	}

	m := &Middleware{Secret: testSecret, Users: users}
	next, called := okHandler()
	guard := m.Authenticate(m.RequireAdmin(next))

	// Token claims admin but the store says otherwise: stale privileges.
	tok := testutil.GenerateJWTHS256(t, testSecret, "u-1", "alice", true)
	r := httptest.NewRequest(http.MethodGet, "/users", nil)
	testutil.SetBearer(r, tok)
	rec := httptest.NewRecorder()
	guard.ServeHTTP(rec, r)
	if rec.Code != http.StatusForbidden || *called {
		t.Fatalf("stale admin token must be refused: %d called=%v", rec.Code, *called)
	}

	// Non-admin claims are refused before touching the store.
	tok = testutil.GenerateJWTHS256(t, testSecret, "u-1", "alice", false)
	r = httptest.NewRequest(http.MethodGet, "/users", nil)
	testutil.SetBearer(r, tok)
	rec = httptest.NewRecorder()
	guard.ServeHTTP(rec, r)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("want 403 for non-admin, got %d", rec.Code)
	}

	// A real admin passes.
	if err := users.SetAdminByUsername(ctx, "alice", true); err != nil {
		t.Fatalf("set admin: %v", err)
	}
	tok = testutil.GenerateJWTHS256(t, testSecret, "u-1", "alice", true)
	r = httptest.NewRequest(http.MethodGet, "/users", nil)
	testutil.SetBearer(r, tok)
	rec = httptest.NewRecorder()
	guard.ServeHTTP(rec, r)
	if rec.Code != http.StatusOK || !*called {
		t.Fatalf("admin should pass: %d called=%v", rec.Code, *called)
	}
}

