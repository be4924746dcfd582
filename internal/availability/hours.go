package availability

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// RangesFor returns the open ranges of date's weekday.
// A missing or closed day, or an explicitly empty range list, yields no ranges.
func RangesFor(schedule domain.OpeningHours, date time.Time) []domain.TimeRange {
	day, ok := schedule[domain.WeekdayKey(date)]
	if !ok || day.Closed {
		return nil
	}

	if day.Ranges != nil {
		return day.Ranges
	}

	// Legacy single start/end entry
	if day.Start.IsZero() || day.End.IsZero() {
		return nil
	}
	return []domain.TimeRange{{Start: day.Start, End: day.End}}
}

// ApplicableHours returns the service override when it is set, otherwise business hours
func ApplicableHours(service *domain.Service, settings *domain.BusinessSettings) domain.OpeningHours {
	if service != nil && service.HasOwnHours() {
		return service.AvailabilityHours
	}
	if settings == nil {
		return nil
	}
	return settings.OpeningHours
}

// rangeMinutes converts a range to minutes since midnight, ok is false for malformed ranges
func rangeMinutes(r domain.TimeRange) (start, end int, ok bool) {
	start, err := r.Start.Minutes()
	if err != nil {
		return 0, 0, false
	}
	end, err = r.End.Minutes()
	if err != nil {
		return 0, 0, false
	}
	if start >= end {
		return 0, 0, false
	}
	return start, end, true
}
