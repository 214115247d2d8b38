package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"libraryManagement/internal/db"
	"libraryManagement/models"
)

// seedLoanFixtures creates the user and book rows the borrow/return tables
// reference.
func seedLoanFixtures(t *testing.T, users *UserRepository, books *BookRepository) *models.Book {
	t.Helper()
	ctx := context.Background()
	if _, err := users.Create(ctx, newUser("alice", "a@x.com", "1234567890"), "secret1"); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	b, err := books.Create(ctx, &models.Book{Name: "Dune", Author: "Frank Herbert", Genre: "Sci-Fi", Type: "Hardcover"})
	if err != nil {
		t.Fatalf("seed book: %v", err)
	}
	return b
}

func TestBorrowRepository_OpenFindClose(t *testing.T) {
	d, err := db.Open("file:borrowrepo?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })

	users := NewUserRepository(d)
	books := NewBookRepository(d)
	borrows := NewBorrowRepository(d)
	book := seedLoanFixtures(t, users, books)
	ctx := context.Background()

	due := time.Now().Add(15 * 24 * time.Hour)
	loan, err := borrows.Open(ctx, nil, "alice", book.ID, due)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if loan.ID == "" || loan.Username != "alice" || loan.BookID != book.ID {
		t.Fatalf("unexpected loan: %+v", loan)
	}
	if !loan.DueDate.Equal(due) {
		t.Fatalf("due date round-trip: want %v got %v", due, loan.DueDate)
	}

	// Second open for the same pair fails the unique index.
	if _, err := borrows.Open(ctx, nil, "alice", book.ID, due); !errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}

	found, err := borrows.FindOpen(ctx, nil, "alice", book.ID)
	if err != nil || found == nil || found.ID != loan.ID {
		t.Fatalf("find open: %v %+v", err, found)
	}

	list, err := borrows.ListByUsername(ctx, "alice")
	if err != nil || len(list) != 1 {
		t.Fatalf("list by username: %v len=%d", err, len(list))
	}

	if err := borrows.Close(ctx, nil, loan.ID); err != nil {
		t.Fatalf("close: %v", err)
	}
	// Closing twice is not idempotent.
	if err := borrows.Close(ctx, nil, loan.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on double close, got %v", err)
	}
	gone, err := borrows.FindOpen(ctx, nil, "alice", book.ID)
	if err != nil || gone != nil {
		t.Fatalf("loan should be gone: %+v err=%v", gone, err)
	}
}

func TestReturnRepository_RecordAndList(t *testing.T) {
	d, err := db.Open("file:returnrepo?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })

	users := NewUserRepository(d)
	books := NewBookRepository(d)
	returns := NewReturnRepository(d)
	book := seedLoanFixtures(t, users, books)
	ctx := context.Background()

	due := time.Now().Add(-24 * time.Hour)
	rec, err := returns.Record(ctx, nil, "alice", book.ID, due, 100)
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if rec.ID == "" || rec.Fine != 100 || !rec.DueDate.Equal(due) {
		t.Fatalf("unexpected return record: %+v", rec)
	}

	if _, err := returns.Record(ctx, nil, "alice", book.ID, due, 0); err != nil {
		t.Fatalf("second record must append: %v", err)
	}

	list, err := returns.List(ctx, 10, 0)
	if err != nil || len(list) != 2 {
		t.Fatalf("list: %v len=%d", err, len(list))
	}
}
