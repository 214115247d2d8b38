package lending

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFineAmount(t *testing.T) {
	due := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	assert.EqualValues(t, 0, fineAmount(due, due.Add(-10*24*time.Hour), 100), "early return")
	assert.EqualValues(t, 0, fineAmount(due, due, 100), "return exactly on the due date")
	assert.EqualValues(t, 100, fineAmount(due, due.Add(time.Second), 100), "one second late")
	assert.EqualValues(t, 100, fineAmount(due, due.Add(365*24*time.Hour), 100), "a year late is the same flat fine")
}
