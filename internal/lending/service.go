// Package lending orchestrates borrow/return transitions across the catalog
// and the loan ledgers. It is the sole writer of a book's availability flag
// during loan transitions and the sole creator/deleter of borrow records.
package lending

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"libraryManagement/models"
	"libraryManagement/repository"
)

const (
	defaultLoanPeriodDays = 15
	defaultLateFine       = 100

	// txTimeout bounds a whole borrow/return transaction.
	txTimeout = 5 * time.Second
)

// Config tunes the lending policy. Zero values fall back to the defaults:
// 15-day loans, flat fine of 100, wall clock.
type Config struct {
	LoanPeriodDays int
	LateFine       int64
	Now            func() time.Time
}

// Service executes the borrow/return state transitions. Each transition runs
// in a single SQLite transaction so concurrent requests for the same copy
// serialize and the loser fails with a domain error instead of corrupting
// the availability flag.
type Service struct {
	db      *sql.DB
	books   *repository.BookRepository
	borrows *repository.BorrowRepository
	returns *repository.ReturnRepository

	loanPeriod time.Duration
	lateFine   int64
	now        func() time.Time
}

func NewService(db *sql.DB, books *repository.BookRepository, borrows *repository.BorrowRepository, returns *repository.ReturnRepository, cfg Config) *Service {
	if cfg.LoanPeriodDays <= 0 {
		cfg.LoanPeriodDays = defaultLoanPeriodDays
	}
	if cfg.LateFine <= 0 {
		cfg.LateFine = defaultLateFine
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Service{
		db:         db,
		books:      books,
		borrows:    borrows,
		returns:    returns,
		loanPeriod: time.Duration(cfg.LoanPeriodDays) * 24 * time.Hour,
		lateFine:   cfg.LateFine,
		now:        cfg.Now,
	}
}

// Borrow opens a loan of bookID for username. The actor may only borrow for
// themself. The availability check, the duplicate-loan check and both writes
// happen inside one transaction; the availability flip is conditional, so of
// two concurrent borrowers exactly one wins.
func (s *Service) Borrow(ctx context.Context, actor, username, bookID string) (*models.Borrow, error) {
	if username != actor {
		return nil, ErrForbidden
	}
	ctx, cancel := context.WithTimeout(ctx, txTimeout)
	defer cancel()

	var loan *models.Borrow
	err := repository.InTx(ctx, s.db, func(tx *sql.Tx) error {
		book, err := s.books.GetByID(ctx, tx, bookID)
		if err != nil {
			return fmt.Errorf("get book: %w", err)
		}
		if book == nil || !book.Available {
			return ErrBookUnavailable
		}

		open, err := s.borrows.FindOpen(ctx, tx, username, bookID)
		if err != nil {
			return fmt.Errorf("find open loan: %w", err)
		}
		if open != nil {
			return ErrDuplicateLoan
		}

		due := s.now().Add(s.loanPeriod)
		loan, err = s.borrows.Open(ctx, tx, username, bookID, due)
		if err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				return ErrDuplicateLoan
			}
			return fmt.Errorf("open loan: %w", err)
		}

		flipped, err := s.books.MarkUnavailable(ctx, tx, bookID)
		if err != nil {
			return fmt.Errorf("mark unavailable: %w", err)
		}
		if !flipped {
			// Lost the race between the read and the flip.
			return ErrBookUnavailable
		}
		return nil
	})
	if err != nil {
		return nil, s.mapStoreErr(err)
	}
	return loan, nil
}

// Return settles the open loan of bookID held by username, records the
// completed loan with its fine, and frees the book. The actor may only
// return for themself.
func (s *Service) Return(ctx context.Context, actor, username, bookID string) (*models.Return, error) {
	if username != actor {
		return nil, ErrForbidden
	}
	ctx, cancel := context.WithTimeout(ctx, txTimeout)
	defer cancel()

	var rec *models.Return
	err := repository.InTx(ctx, s.db, func(tx *sql.Tx) error {
		open, err := s.borrows.FindOpen(ctx, tx, username, bookID)
		if err != nil {
			return fmt.Errorf("find open loan: %w", err)
		}
		if open == nil {
			return ErrNoActiveLoan
		}

		fine := fineAmount(open.DueDate, s.now(), s.lateFine)
		rec, err = s.returns.Record(ctx, tx, username, bookID, open.DueDate, fine)
		if err != nil {
			return fmt.Errorf("record return: %w", err)
		}

		freed, err := s.books.MarkAvailable(ctx, tx, bookID)
		if err != nil {
			return fmt.Errorf("mark available: %w", err)
		}
		if !freed {
			// An open loan must imply an unavailable book.
			return fmt.Errorf("%w: book %s available while on loan", ErrInconsistentState, bookID)
		}

		if err := s.borrows.Close(ctx, tx, open.ID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return fmt.Errorf("%w: loan %s vanished mid-return", ErrInconsistentState, open.ID)
			}
			return fmt.Errorf("close loan: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, s.mapStoreErr(err)
	}
	return rec, nil
}

// mapStoreErr surfaces store timeouts as ErrStoreUnavailable and passes
// domain errors through untouched.
func (s *Service) mapStoreErr(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return err
}
