package repository

import (
	"context"
	"time"

	"libraryManagement/models"
)

// BookRepositoryI defines operations on the book catalog.
// MarkUnavailable/MarkAvailable are conditional updates reserved for the
// lending service; everything else treats `available` as read-only.
type BookRepositoryI interface {
	Create(ctx context.Context, b *models.Book) (*models.Book, error)
	GetByID(ctx context.Context, q DBTX, id string) (*models.Book, error)
	Update(ctx context.Context, id string, patch models.BookPatch) (*models.Book, error)
	List(ctx context.Context, limit, offset int) ([]models.Book, error)
	MarkUnavailable(ctx context.Context, q DBTX, id string) (bool, error)
	MarkAvailable(ctx context.Context, q DBTX, id string) (bool, error)
}

// UserRepositoryI defines operations on accounts.
type UserRepositoryI interface {
	Create(ctx context.Context, u *models.User, password string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	List(ctx context.Context, limit, offset int) ([]models.User, error)
}

// BorrowRepositoryI defines operations on the open-loan ledger.
type BorrowRepositoryI interface {
	FindOpen(ctx context.Context, q DBTX, username, bookID string) (*models.Borrow, error)
	Open(ctx context.Context, q DBTX, username, bookID string, due time.Time) (*models.Borrow, error)
	Close(ctx context.Context, q DBTX, id string) error
	ListByUsername(ctx context.Context, username string) ([]models.Borrow, error)
}

// ReturnRepositoryI defines operations on the completed-loan ledger.
// Append and read only; rows are never updated or deleted.
type ReturnRepositoryI interface {
	Record(ctx context.Context, q DBTX, username, bookID string, due time.Time, fine int64) (*models.Return, error)
	List(ctx context.Context, limit, offset int) ([]models.Return, error)
}
