package availability

import (
	"fmt"
	"math"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// LeadTimeResult outcome of the minimum lead-time check
type LeadTimeResult struct {
	IsValid         bool
	Reason          error
	Message         string
	MinimumDateTime time.Time
}

// ValidateLeadTime checks a candidate instant against now + minimumDelayHours.
// Staff-originated requests always pass.
func ValidateLeadTime(now, candidate time.Time, minimumDelayHours int, isPublic bool) LeadTimeResult {
	if minimumDelayHours < 0 {
		minimumDelayHours = 0
	}
	minimum := now.Add(time.Duration(minimumDelayHours) * time.Hour)

	if !isPublic {
		return LeadTimeResult{IsValid: true, MinimumDateTime: minimum}
	}

	if candidate.Before(minimum) {
		hours := int(math.Ceil(minimum.Sub(now).Hours()))
		if hours > 0 {
			return LeadTimeResult{
				Reason:          ErrLeadTimeViolation,
				Message:         fmt.Sprintf("bookings must be made at least %d hours in advance", hours),
				MinimumDateTime: minimum,
			}
		}
	}

	if candidate.Before(now) {
		return LeadTimeResult{
			Reason:          ErrPastDateTime,
			Message:         Message(ErrPastDateTime),
			MinimumDateTime: minimum,
		}
	}

	return LeadTimeResult{IsValid: true, MinimumDateTime: minimum}
}

// NextAvailableDateTime returns now + minimum delay as a date and "HH:MM" in the business timezone
func NextAvailableDateTime(settings *domain.BusinessSettings, now time.Time) domain.DateTime {
	delay := 0
	if settings != nil && settings.MinimumBookingDelayHours > 0 {
		delay = settings.MinimumBookingDelayHours
	}

	next := now.Add(time.Duration(delay) * time.Hour).In(settings.Location())
	return domain.DateTime{
		Date: next.Format(domain.DateFormat),
		Time: types.NewTimeString(next),
	}
}
