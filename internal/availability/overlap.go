package availability

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// interval half-open [start, end) in minutes since midnight
type interval struct {
	start int
	end   int
}

func (a interval) overlaps(b interval) bool {
	return a.start < b.end && a.end > b.start
}

func (a interval) extend(minutes int) interval {
	return interval{start: a.start, end: a.end + minutes}
}

// slotCheck параметры проверки одного стартового времени
type slotCheck struct {
	date       time.Time
	start      int
	startTime  types.TimeString
	quantity   int
	teamMember *int64
	buffer     int
}

// IsDateBlocked returns true if any blocked range covers the calendar day
func IsDateBlocked(date time.Time, blocked []domain.BlockedDateRange) bool {
	for i := range blocked {
		if blocked[i].Contains(date) {
			return true
		}
	}
	return false
}

// IsSlotAvailable returns true if a booking of service starting at startTime conflicts with nothing.
// Bookings and unavailability windows are those of the same date; cancelled bookings are ignored.
func IsSlotAvailable(
	service *domain.Service,
	date time.Time,
	startTime types.TimeString,
	quantity int,
	bookings []domain.Booking,
	unavailabilities []domain.Unavailability,
	teamMember *int64,
	bufferMinutes int,
) bool {
	start, err := startTime.Minutes()
	if err != nil {
		return false
	}
	check := slotCheck{
		date:       date,
		start:      start,
		startTime:  startTime,
		quantity:   quantity,
		teamMember: teamMember,
		buffer:     bufferMinutes,
	}
	return conflict(service, check, bookings, unavailabilities) == nil
}

// conflict возвращает причину недоступности или nil
func conflict(service *domain.Service, c slotCheck, bookings []domain.Booking, unavailabilities []domain.Unavailability) error {
	candidate := interval{start: c.start, end: c.start + service.DurationMinutes}

	for i := range unavailabilities {
		u := &unavailabilities[i]
		if !u.Date.IsZero() && !SameDay(u.Date, c.date) {
			continue
		}
		if !u.AppliesTo(c.teamMember) {
			continue
		}
		ws, we, ok := rangeMinutes(domain.TimeRange{Start: u.StartTime, End: u.EndTime})
		if !ok {
			continue
		}
		window := interval{start: ws, end: we}
		if candidate.overlaps(window) {
			return ErrConflictUnavailability
		}
	}

	for i := range bookings {
		b := &bookings[i]
		if !countsFor(b, c) {
			continue
		}
		existing, ok := bookingInterval(b)
		if !ok {
			continue
		}

		if candidate.overlaps(existing) {
			if b.ServiceID != service.ID {
				return ErrConflictDifferentService
			}
			occupied := occupiedAt(service.ID, b.StartTime, bookings, c)
			if occupied+c.quantity > service.EffectiveCapacity() {
				return ErrConflictOverCapacity
			}
			continue
		}

		if c.buffer > 0 && candidate.extend(c.buffer).overlaps(existing.extend(c.buffer)) {
			return ErrConflictBuffer
		}
	}

	return nil
}

// occupiedAt суммирует количество мест, занятых бронированиями услуги на указанное время
func occupiedAt(serviceID int64, startTime types.TimeString, bookings []domain.Booking, c slotCheck) int {
	total := 0
	for i := range bookings {
		b := &bookings[i]
		if b.ServiceID != serviceID || b.StartTime != startTime || !countsFor(b, c) {
			continue
		}
		if b.Quantity < 1 {
			total++
			continue
		}
		total += b.Quantity
	}
	return total
}

// countsFor отбрасывает отмененные бронирования, бронирования другой даты и другого сотрудника
func countsFor(b *domain.Booking, c slotCheck) bool {
	if b.IsCancelled() {
		return false
	}
	if !b.BookingDate.IsZero() && !SameDay(b.BookingDate, c.date) {
		return false
	}
	if c.teamMember != nil && !b.IsAssignedTo(*c.teamMember) {
		return false
	}
	return true
}

func bookingInterval(b *domain.Booking) (interval, bool) {
	if b.DurationMinutes <= 0 {
		return interval{}, false
	}
	start, err := b.StartTime.Minutes()
	if err != nil {
		return interval{}, false
	}
	return interval{start: start, end: start + b.DurationMinutes}, true
}
