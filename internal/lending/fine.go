package lending

import "time"

// fineAmount computes the penalty for a loan due at due and settled at
// returnedAt. The fine is flat: zero on or before the due date, lateFine
// after it, regardless of how late the return is.
func fineAmount(due, returnedAt time.Time, lateFine int64) int64 {
	if !returnedAt.After(due) {
		return 0
	}
	return lateFine
}
