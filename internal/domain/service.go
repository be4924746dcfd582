package domain

import "time"

// Service is a bookable offering of a business
type Service struct {
	ID                int64
	BusinessID        int64
	Name              string
	DurationMinutes   int
	Capacity          int // max simultaneous participants per start time
	Price             float64
	AvailabilityHours OpeningHours // optional override of the business opening hours
	IsActive          bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// HasOwnHours returns true if the service overrides business-wide opening hours
func (s *Service) HasOwnHours() bool {
	return !s.AvailabilityHours.IsEmpty()
}

// EffectiveCapacity returns capacity clamped to at least one participant
func (s *Service) EffectiveCapacity() int {
	if s.Capacity < 1 {
		return 1
	}
	return s.Capacity
}
