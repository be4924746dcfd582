package availability

import (
	"sort"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// SlotQuery selects the day and audience of a slot listing
type SlotQuery struct {
	Date       time.Time
	TeamMember *int64
	Quantity   int
	IsPublic   bool
}

// GenerateSlots lists every candidate start time of the date, available or not, sorted ascending.
// Unknown configuration, a closed day and a blocked date all produce an empty list.
func GenerateSlots(snap Snapshot, q SlotQuery, now time.Time, opts Options) []domain.TimeSlot {
	slots := make([]domain.TimeSlot, 0)
	if !snap.configured() || IsDateBlocked(q.Date, snap.BlockedRanges) {
		return slots
	}

	ranges := RangesFor(ApplicableHours(snap.Service, snap.Settings), q.Date)
	if len(ranges) == 0 {
		return slots
	}

	quantity := q.Quantity
	if quantity < 1 {
		quantity = 1
	}

	step := opts.step()
	seen := make(map[types.TimeString]struct{})
	for _, r := range ranges {
		start, end, ok := rangeMinutes(r)
		if !ok {
			continue
		}

		ts := r.Start
		for m := start; m < end; m += step {
			if _, dup := seen[ts]; !dup {
				seen[ts] = struct{}{}

				check := slotCheck{
					date:       q.Date,
					start:      m,
					startTime:  ts,
					quantity:   quantity,
					teamMember: q.TeamMember,
					buffer:     opts.buffer(snap.Settings),
				}
				slots = append(slots, domain.TimeSlot{
					Time:      ts,
					Available: evaluate(snap, check, q.IsPublic, now) == nil,
				})
			}

			next, err := ts.AddMinutes(step)
			if err != nil {
				break
			}
			ts = next
		}
	}

	sort.Slice(slots, func(i, j int) bool {
		return slots[i].Time.IsBefore(slots[j].Time)
	})
	return slots
}

// evaluate проверяет время начала: минимальный срок записи, окна недоступности, пересечения
func evaluate(snap Snapshot, c slotCheck, isPublic bool, now time.Time) error {
	instant, err := CandidateInstant(c.date, c.startTime, snap.location())
	if err != nil {
		return ErrInvalidCandidate
	}
	if lead := ValidateLeadTime(now, instant, snap.delayHours(), isPublic); !lead.IsValid {
		return lead.Reason
	}
	return conflict(snap.Service, c, snap.Bookings, snap.Unavailabilities)
}
