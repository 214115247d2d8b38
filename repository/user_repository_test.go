package repository

import (
	"context"
	"errors"
	"sync"
	"testing"

	"libraryManagement/internal/db"
	"libraryManagement/models"
)

func newUser(username, email, mobile string) *models.User {
	return &models.User{Name: "Test User", Username: username, Email: email, Mobile: mobile}
}

func TestUserRepository_CreateAndQueries(t *testing.T) {
	d, err := db.Open("file:userrepo?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })

	repo := NewUserRepository(d)
	ctx := context.Background()

	u, err := repo.Create(ctx, newUser("alice", "A@X.com", "1234567890"), "secret1")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if u.ID == "" || u.Username != "alice" || u.Admin {
		t.Fatalf("unexpected created user: %+v", u)
	}
	if u.Email != "a@x.com" {
		t.Fatalf("email not lowercased: %q", u.Email)
	}
	if u.PasswordHash == "secret1" || u.PasswordHash == "" {
		t.Fatalf("password stored in plaintext or missing")
	}

	if !repo.VerifyPassword(u, "secret1") {
		t.Fatalf("correct password rejected")
	}
	if repo.VerifyPassword(u, "wrong") {
		t.Fatalf("wrong password accepted")
	}

	g, err := repo.GetByUsername(ctx, "alice")
	if err != nil || g == nil || g.ID != u.ID {
		t.Fatalf("get by username: %v %+v", err, g)
	}
	missing, err := repo.GetByUsername(ctx, "nobody")
	if err != nil || missing != nil {
		t.Fatalf("expected nil for unknown user, got %+v err=%v", missing, err)
	}

	// List never exposes the credential secret.
	list, err := repo.List(ctx, 10, 0)
	if err != nil || len(list) != 1 {
		t.Fatalf("list: %v len=%d", err, len(list))
	}
	if list[0].PasswordHash != "" {
		t.Fatalf("list leaked password hash")
	}

	// SetAdminByUsername
	if err := repo.SetAdminByUsername(ctx, "alice", true); err != nil {
		t.Fatalf("set admin: %v", err)
	}
	g2, _ := repo.GetByUsername(ctx, "alice")
	if !g2.Admin {
		t.Fatalf("admin flag not set: %+v", g2)
	}
}

func TestUserRepository_CreateValidation(t *testing.T) {
	d, err := db.Open("file:userval?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })

	repo := NewUserRepository(d)
	ctx := context.Background()

	cases := []struct {
		name string
		user *models.User
		pwd  string
	}{
		{"short username", newUser("al", "a@x.com", "1234567890"), "secret1"},
		{"short password", newUser("alice", "a@x.com", "1234567890"), "12345"},
		{"short mobile", newUser("alice", "a@x.com", "12345"), "secret1"},
		{"non-numeric mobile", newUser("alice", "a@x.com", "12345abcde"), "secret1"},
		{"missing email", newUser("alice", "", "1234567890"), "secret1"},
		{"missing name", &models.User{Username: "alice", Email: "a@x.com", Mobile: "1234567890"}, "secret1"},
	}
	for _, tc := range cases {
		_, err := repo.Create(ctx, tc.user, tc.pwd)
		var ve *ValidationError
		if !errors.As(err, &ve) {
			t.Fatalf("%s: expected validation error, got %v", tc.name, err)
		}
	}
}

func TestUserRepository_DuplicateKeys(t *testing.T) {
	d, err := db.Open("file:userdup?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })

	repo := NewUserRepository(d)
	ctx := context.Background()

	if _, err := repo.Create(ctx, newUser("alice", "a@x.com", "1234567890"), "secret1"); err != nil {
		t.Fatalf("create: %v", err)
	}

	dups := []*models.User{
		newUser("alice", "b@x.com", "0987654321"), // same username
		newUser("bob", "a@x.com", "0987654321"),   // same email
		newUser("carol", "c@x.com", "1234567890"), // same mobile
		newUser("dan", "A@X.COM", "1112223334"),   // same email after lowercasing
	}
	for _, u := range dups {
		if _, err := repo.Create(ctx, u, "secret1"); !errors.Is(err, ErrDuplicate) {
			t.Fatalf("expected ErrDuplicate for %s, got %v", u.Username, err)
		}
	}
}

func TestUserRepository_ConcurrentRegistration(t *testing.T) {
	d, err := db.Open("file:userconc?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })

	repo := NewUserRepository(d)
	ctx := context.Background()

	// Two registrations with overlapping unique values: exactly one wins.
	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = repo.Create(ctx, newUser("alice", "a@x.com", "1234567890"), "secret1")
		}(i)
	}
	wg.Wait()

	var okCount, dupCount int
	for _, err := range errs {
		switch {
		case err == nil:
			okCount++
		case errors.Is(err, ErrDuplicate):
			dupCount++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if okCount != 1 || dupCount != 1 {
		t.Fatalf("want exactly one winner, got ok=%d dup=%d", okCount, dupCount)
	}
}
