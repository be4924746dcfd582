package create_booking

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	UserID *int64 `json:"-"` // ID сотрудника, nil для публичного запроса

	BusinessID  int64                `json:"businessId" validate:"gt=0"`
	ServiceID   int64                `json:"serviceId" validate:"gt=0"`
	Date        time.Time            `json:"-"`
	StartTime   types.TimeString     `json:"time" validate:"required,hhmm"`
	Quantity    int                  `json:"quantity" validate:"omitempty,min=1,max=100"`
	TeamMember  *int64               `json:"teamMember" validate:"omitempty,gt=0"`
	ClientName  string               `json:"clientName" validate:"required,max=200"`
	ClientEmail string               `json:"clientEmail" validate:"required,email,max=254"`
	ClientPhone *string              `json:"clientPhone" validate:"omitempty,max=32"`
	Notes       *string              `json:"notes" validate:"omitempty,max=500"`
	Status      domain.BookingStatus `json:"status" validate:"omitempty,oneof=pending confirmed"`
}

// IsPublic возвращает true для запроса клиента с виджета
func (r *Request) IsPublic() bool {
	return r.UserID == nil
}

// Origin возвращает источник бронирования для метрик
func (r *Request) Origin() string {
	if r.IsPublic() {
		return domain.OriginPublic
	}
	return domain.OriginStaff
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID              int64
	BusinessID      int64
	ServiceID       int64
	BookingDate     time.Time
	StartTime       types.TimeString
	DurationMinutes int
	Quantity        int
	Status          domain.BookingStatus
	PaymentStatus   domain.PaymentStatus
	AssignedUserID  *int64
	ClientName      string
	ClientEmail     string
	ClientPhone     *string
	Notes           *string
	DepositAmount   float64
	TotalPrice      float64
	CreatedBy       *int64
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
