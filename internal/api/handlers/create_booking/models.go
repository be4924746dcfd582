package create_booking

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	createBooking "github.com/m04kA/SMC-SchedulingService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	ServiceID   int64   `json:"serviceId"`
	Date        string  `json:"date"` // "2025-10-15"
	Time        string  `json:"time"` // "10:00"
	Quantity    int     `json:"quantity"`
	TeamMember  *int64  `json:"teamMember,omitempty"`
	ClientName  string  `json:"clientName"`
	ClientEmail string  `json:"clientEmail"`
	ClientPhone *string `json:"clientPhone,omitempty"`
	Notes       *string `json:"notes,omitempty"`
	Status      string  `json:"status,omitempty"` // только для сотрудников: pending|confirmed
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID              int64   `json:"id"`
	BusinessID      int64   `json:"businessId"`
	ServiceID       int64   `json:"serviceId"`
	Date            string  `json:"date"`
	Time            string  `json:"time"`
	DurationMinutes int     `json:"durationMinutes"`
	Quantity        int     `json:"quantity"`
	Status          string  `json:"status"`
	PaymentStatus   string  `json:"paymentStatus"`
	TeamMember      *int64  `json:"teamMember,omitempty"`
	ClientName      string  `json:"clientName"`
	ClientEmail     string  `json:"clientEmail"`
	ClientPhone     *string `json:"clientPhone,omitempty"`
	Notes           *string `json:"notes,omitempty"`
	DepositAmount   float64 `json:"depositAmount"`
	TotalPrice      float64 `json:"totalPrice"`
	CreatedBy       *int64  `json:"createdBy,omitempty"`
	CreatedAt       string  `json:"createdAt"`
	UpdatedAt       string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case.
// userID == nil для публичного запроса с виджета.
func (r *CreateBookingRequest) ToUseCaseRequest(businessID int64, userID *int64) (*createBooking.Request, error) {
	date, err := handlers.ParseDate(r.Date)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		UserID:      userID,
		BusinessID:  businessID,
		ServiceID:   r.ServiceID,
		Date:        date,
		StartTime:   types.TimeString(r.Time),
		Quantity:    r.Quantity,
		TeamMember:  r.TeamMember,
		ClientName:  r.ClientName,
		ClientEmail: r.ClientEmail,
		ClientPhone: r.ClientPhone,
		Notes:       r.Notes,
		Status:      domain.BookingStatus(r.Status),
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:              resp.ID,
		BusinessID:      resp.BusinessID,
		ServiceID:       resp.ServiceID,
		Date:            resp.BookingDate.Format(domain.DateFormat),
		Time:            resp.StartTime.String(),
		DurationMinutes: resp.DurationMinutes,
		Quantity:        resp.Quantity,
		Status:          string(resp.Status),
		PaymentStatus:   string(resp.PaymentStatus),
		TeamMember:      resp.AssignedUserID,
		ClientName:      resp.ClientName,
		ClientEmail:     resp.ClientEmail,
		ClientPhone:     resp.ClientPhone,
		Notes:           resp.Notes,
		DepositAmount:   resp.DepositAmount,
		TotalPrice:      resp.TotalPrice,
		CreatedBy:       resp.CreatedBy,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}
