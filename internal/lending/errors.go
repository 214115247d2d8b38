package lending

import "errors"

var (
	// ErrForbidden is returned when the actor tries to borrow or return on
	// behalf of another user.
	ErrForbidden = errors.New("cannot act for another user")

	// ErrBookUnavailable is returned when the book does not exist or is
	// already lent out.
	ErrBookUnavailable = errors.New("book not available")

	// ErrDuplicateLoan is returned when the user already holds an open loan
	// for the book.
	ErrDuplicateLoan = errors.New("book already borrowed by this user")

	// ErrNoActiveLoan is returned on a return with no matching open loan.
	ErrNoActiveLoan = errors.New("no borrow record found")

	// ErrInconsistentState is returned when the ledgers and the catalog
	// disagree mid-transition, e.g. an open loan against a book whose
	// availability flag is already set.
	ErrInconsistentState = errors.New("inconsistent lending state")

	// ErrStoreUnavailable is returned when the store did not answer within
	// the operation deadline.
	ErrStoreUnavailable = errors.New("store unavailable")
)
