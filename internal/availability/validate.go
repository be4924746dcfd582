package availability

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// Candidate a single requested booking start
type Candidate struct {
	Date       time.Time
	Time       types.TimeString
	Quantity   int
	TeamMember *int64
	IsPublic   bool
}

// Result outcome of a candidate validation.
// Reason is one of the package error values when IsValid is false.
type Result struct {
	IsValid         bool
	Reason          error
	Message         string
	MinimumDateTime *time.Time
}

func reject(reason error) Result {
	return Result{Reason: reason, Message: Message(reason)}
}

// ValidateCandidate runs every rule of slot generation against one start time.
// Public candidates must additionally fall within an opening range of the day.
func ValidateCandidate(snap Snapshot, cand Candidate, now time.Time, opts Options) Result {
	start, err := cand.Time.Minutes()
	if err != nil {
		return reject(ErrInvalidCandidate)
	}
	if !snap.configured() {
		return reject(ErrConfigurationIncomplete)
	}

	quantity := cand.Quantity
	if quantity < 1 {
		quantity = 1
	}
	if quantity > snap.Service.EffectiveCapacity() {
		return reject(ErrConflictOverCapacity)
	}

	if IsDateBlocked(cand.Date, snap.BlockedRanges) {
		return reject(ErrConflictBlockedDate)
	}

	if cand.IsPublic {
		if reason := withinOpeningHours(snap, cand.Date, start); reason != nil {
			return reject(reason)
		}
	}

	instant, err := CandidateInstant(cand.Date, cand.Time, snap.location())
	if err != nil {
		return reject(ErrInvalidCandidate)
	}
	lead := ValidateLeadTime(now, instant, snap.delayHours(), cand.IsPublic)
	if !lead.IsValid {
		minimum := lead.MinimumDateTime
		return Result{Reason: lead.Reason, Message: lead.Message, MinimumDateTime: &minimum}
	}

	check := slotCheck{
		date:       cand.Date,
		start:      start,
		startTime:  cand.Time,
		quantity:   quantity,
		teamMember: cand.TeamMember,
		buffer:     opts.buffer(snap.Settings),
	}
	if reason := conflict(snap.Service, check, snap.Bookings, snap.Unavailabilities); reason != nil {
		return reject(reason)
	}

	return Result{IsValid: true}
}

// withinOpeningHours проверяет, что старт попадает в один из рабочих интервалов дня
func withinOpeningHours(snap Snapshot, date time.Time, start int) error {
	ranges := RangesFor(ApplicableHours(snap.Service, snap.Settings), date)
	if len(ranges) == 0 {
		return ErrConfigurationIncomplete
	}
	for _, r := range ranges {
		from, to, ok := rangeMinutes(r)
		if ok && start >= from && start < to {
			return nil
		}
	}
	return ErrOutsideOpeningHours
}
