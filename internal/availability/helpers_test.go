package availability

import (
	"time"

	_ "time/tzdata"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// 2026-10-13 is a Tuesday
var tuesday = time.Date(2026, 10, 13, 0, 0, 0, 0, time.UTC)

// longAgo keeps lead-time checks out of the way
var longAgo = time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

func day(ranges ...string) domain.DaySchedule {
	d := domain.DaySchedule{Ranges: []domain.TimeRange{}}
	for i := 0; i+1 < len(ranges); i += 2 {
		d.Ranges = append(d.Ranges, domain.TimeRange{
			Start: types.TimeString(ranges[i]),
			End:   types.TimeString(ranges[i+1]),
		})
	}
	return d
}

func newSettings(hours domain.OpeningHours) *domain.BusinessSettings {
	return &domain.BusinessSettings{
		ID:           1,
		BusinessID:   1,
		OpeningHours: hours,
		Timezone:     "UTC",
	}
}

func newService(id int64, duration, capacity int) *domain.Service {
	return &domain.Service{
		ID:              id,
		BusinessID:      1,
		Name:            "service",
		DurationMinutes: duration,
		Capacity:        capacity,
		IsActive:        true,
	}
}

func booking(serviceID int64, start string, duration, quantity int) domain.Booking {
	return domain.Booking{
		BusinessID:      1,
		ServiceID:       serviceID,
		BookingDate:     tuesday,
		StartTime:       types.TimeString(start),
		DurationMinutes: duration,
		Quantity:        quantity,
		Status:          domain.StatusConfirmed,
	}
}

func availableAt(slots []domain.TimeSlot, t string) (available bool, found bool) {
	for _, s := range slots {
		if s.Time == types.TimeString(t) {
			return s.Available, true
		}
	}
	return false, false
}

func slotTimes(slots []domain.TimeSlot) []string {
	out := make([]string, 0, len(slots))
	for _, s := range slots {
		out = append(out, s.Time.String())
	}
	return out
}

func int64Ptr(v int64) *int64 {
	return &v
}
