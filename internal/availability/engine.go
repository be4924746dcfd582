package availability

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// Options engine-wide tuning
type Options struct {
	// StepMinutes distance between consecutive candidate start times
	StepMinutes int
	// EnforceBuffer applies BusinessSettings.BufferMinutes between bookings
	EnforceBuffer bool
}

// DefaultOptions returns options with the default slot step and no buffer enforcement
func DefaultOptions() Options {
	return Options{StepMinutes: domain.DefaultSlotStepMinutes}
}

func (o Options) step() int {
	if o.StepMinutes <= 0 {
		return domain.DefaultSlotStepMinutes
	}
	return o.StepMinutes
}

func (o Options) buffer(settings *domain.BusinessSettings) int {
	if !o.EnforceBuffer || settings == nil || settings.BufferMinutes <= 0 {
		return 0
	}
	return settings.BufferMinutes
}

// Snapshot is everything the engine reads for one service on one date.
// Bookings, Unavailabilities and BlockedRanges are expected to be pre-filtered by business and date.
type Snapshot struct {
	Service          *domain.Service
	Settings         *domain.BusinessSettings
	Bookings         []domain.Booking
	Unavailabilities []domain.Unavailability
	BlockedRanges    []domain.BlockedDateRange
}

func (s Snapshot) configured() bool {
	return s.Service != nil && s.Settings != nil && s.Service.DurationMinutes > 0
}

func (s Snapshot) delayHours() int {
	if s.Settings == nil {
		return 0
	}
	return s.Settings.MinimumBookingDelayHours
}

func (s Snapshot) location() *time.Location {
	return s.Settings.Location()
}
