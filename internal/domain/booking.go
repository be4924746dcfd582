package domain

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
	StatusCompleted BookingStatus = "completed"
)

// PaymentStatus represents the payment state of a booking
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentPartial   PaymentStatus = "partial"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
	PaymentRefunded  PaymentStatus = "refunded"
)

// Booking represents a reservation of a service at a wall-clock time on a business date
type Booking struct {
	ID              int64
	BusinessID      int64
	ServiceID       int64
	BookingDate     time.Time
	StartTime       types.TimeString
	DurationMinutes int // frozen from the service at creation time
	Quantity        int
	Status          BookingStatus
	PaymentStatus   PaymentStatus
	AssignedUserID  *int64

	ClientName    string
	ClientEmail   string
	ClientPhone   *string
	Notes         *string
	DepositAmount float64
	CreatedBy     *int64 // staff user, nil for public requests

	CreatedAt time.Time
	UpdatedAt time.Time
}

// BusinessBookingsFilter narrows a business booking listing.
// Both dates are inclusive; nil means unbounded.
type BusinessBookingsFilter struct {
	BusinessID       int64
	StartDate        *time.Time
	EndDate          *time.Time
	Status           *BookingStatus
	AssignedUserID   *int64
	IncludeCancelled bool
}

// IsCancelled returns true if the booking no longer occupies its slot
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelled
}

// CanBeCancelled returns true if the booking can be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// IsAssignedTo returns true if the booking is unassigned or assigned to the given member
func (b *Booking) IsAssignedTo(userID int64) bool {
	return b.AssignedUserID == nil || *b.AssignedUserID == userID
}

// allowedTransitions допустимые переходы статусов бронирования
var allowedTransitions = map[BookingStatus][]BookingStatus{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCompleted, StatusCancelled},
}

// CanTransitionTo returns true if the status change is allowed
func (b *Booking) CanTransitionTo(to BookingStatus) bool {
	for _, s := range allowedTransitions[b.Status] {
		if s == to {
			return true
		}
	}
	return false
}

// IsValidBookingStatus checks a raw status value
func IsValidBookingStatus(s BookingStatus) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted:
		return true
	}
	return false
}

// IsValidPaymentStatus checks a raw payment status value
func IsValidPaymentStatus(s PaymentStatus) bool {
	switch s {
	case PaymentPending, PaymentPartial, PaymentCompleted, PaymentFailed, PaymentRefunded:
		return true
	}
	return false
}
