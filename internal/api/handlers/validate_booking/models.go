package validate_booking

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	validateBooking "github.com/m04kA/SMC-SchedulingService/internal/usecase/validate_booking"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// ValidateBookingRequest HTTP request model
type ValidateBookingRequest struct {
	ServiceID  int64  `json:"serviceId"`
	Date       string `json:"date"` // "2025-10-15"
	Time       string `json:"time"` // "10:00"
	Quantity   int    `json:"quantity"`
	TeamMember *int64 `json:"teamMember,omitempty"`
}

// ValidateBookingResponse HTTP response model
type ValidateBookingResponse struct {
	IsValid         bool    `json:"isValid"`
	Reason          string  `json:"reason,omitempty"`
	Message         string  `json:"message,omitempty"`
	MinimumDateTime *string `json:"minimumDateTime,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *ValidateBookingRequest) ToUseCaseRequest(businessID int64) (*validateBooking.Request, error) {
	date, err := handlers.ParseDate(r.Date)
	if err != nil {
		return nil, err
	}

	return &validateBooking.Request{
		BusinessID: businessID,
		ServiceID:  r.ServiceID,
		Date:       date,
		Time:       types.TimeString(r.Time),
		Quantity:   r.Quantity,
		TeamMember: r.TeamMember,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *validateBooking.Response) *ValidateBookingResponse {
	result := &ValidateBookingResponse{
		IsValid: resp.IsValid,
		Reason:  resp.Reason,
		Message: resp.Message,
	}
	if resp.MinimumDateTime != nil {
		minimum := resp.MinimumDateTime.Format(time.RFC3339)
		result.MinimumDateTime = &minimum
	}
	return result
}
