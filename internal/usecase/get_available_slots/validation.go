package get_available_slots

import (
	"fmt"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.BusinessID <= 0 {
		return fmt.Errorf("%w: businessID must be positive", ErrInvalidInput)
	}

	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.TeamMember != nil && *req.TeamMember <= 0 {
		return fmt.Errorf("%w: teamMember must be positive", ErrInvalidInput)
	}

	if req.StepMinutes != 0 &&
		(req.StepMinutes < domain.MinSlotStepMinutes || req.StepMinutes > domain.MaxSlotStepMinutes) {
		return fmt.Errorf("%w: step must be between %d and %d minutes",
			ErrInvalidInput, domain.MinSlotStepMinutes, domain.MaxSlotStepMinutes)
	}

	return nil
}
