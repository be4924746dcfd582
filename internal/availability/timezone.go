package availability

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// CandidateInstant converts a business-local calendar date and wall-clock time into an absolute instant
func CandidateInstant(date time.Time, t types.TimeString, loc *time.Location) (time.Time, error) {
	return t.OnDate(date, loc)
}

// SameDay compares calendar days ignoring clock and location
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
