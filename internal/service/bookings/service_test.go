package bookings

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-SchedulingService/internal/service/bookings/models"
	"github.com/m04kA/SMC-SchedulingService/pkg/logger"
	"github.com/m04kA/SMC-SchedulingService/pkg/ptr"
)

type fakeRepo struct {
	bookings  map[int64]*domain.Booking
	listErr   error
	cancelErr error
	filter    domain.BusinessBookingsFilter
}

func (f *fakeRepo) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	copied := *b
	return &copied, nil
}

func (f *fakeRepo) GetByBusinessWithFilter(ctx context.Context, filter domain.BusinessBookingsFilter) ([]domain.Booking, error) {
	f.filter = filter
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]domain.Booking, 0)
	for _, b := range f.bookings {
		if b.BusinessID == filter.BusinessID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (f *fakeRepo) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	f.bookings[id].Status = status
	return nil
}

func (f *fakeRepo) UpdatePaymentStatus(ctx context.Context, id int64, status domain.PaymentStatus) error {
	f.bookings[id].PaymentStatus = status
	return nil
}

func (f *fakeRepo) Cancel(ctx context.Context, id int64) error {
	if f.cancelErr != nil {
		return f.cancelErr
	}
	f.bookings[id].Status = domain.StatusCancelled
	return nil
}

// fakeAuthorizer разрешает действия только из allowed
type fakeAuthorizer struct {
	allowed map[string]bool
	err     error
}

func (f *fakeAuthorizer) CanPerform(ctx context.Context, userID int64, action string, businessID int64) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return f.allowed[action], nil
}

func allowAll() *fakeAuthorizer {
	return &fakeAuthorizer{allowed: map[string]bool{
		domain.ActionBookingRead:   true,
		domain.ActionBookingCancel: true,
		domain.ActionBookingUpdate: true,
	}}
}

func newRepo() *fakeRepo {
	return &fakeRepo{bookings: map[int64]*domain.Booking{
		1: {ID: 1, BusinessID: 10, ServiceID: 7, BookingDate: time.Date(2026, 10, 13, 0, 0, 0, 0, time.UTC),
			StartTime: "10:00", DurationMinutes: 60, Quantity: 1, Status: domain.StatusPending, PaymentStatus: domain.PaymentPending},
		2: {ID: 2, BusinessID: 10, ServiceID: 7, StartTime: "12:00", DurationMinutes: 60, Status: domain.StatusCompleted},
		3: {ID: 3, BusinessID: 20, ServiceID: 8, StartTime: "09:00", DurationMinutes: 30, Status: domain.StatusConfirmed},
	}}
}

func TestGetByID(t *testing.T) {
	svc := NewService(newRepo(), allowAll(), logger.Nop())

	resp, err := svc.GetByID(context.Background(), 1, 42)
	require.NoError(t, err)
	assert.Equal(t, "2026-10-13", resp.BookingDate)
	assert.Equal(t, "10:00", resp.StartTime)
	assert.Equal(t, "pending", resp.Status)

	_, err = svc.GetByID(context.Background(), 99, 42)
	assert.ErrorIs(t, err, ErrBookingNotFound)

	denied := NewService(newRepo(), &fakeAuthorizer{}, logger.Nop())
	_, err = denied.GetByID(context.Background(), 1, 42)
	assert.ErrorIs(t, err, ErrAccessDenied)

	unavailable := NewService(newRepo(), &fakeAuthorizer{err: errors.New("timeout")}, logger.Nop())
	_, err = unavailable.GetByID(context.Background(), 1, 42)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetBusinessBookings(t *testing.T) {
	repo := newRepo()
	svc := NewService(repo, allowAll(), logger.Nop())

	day := time.Date(2026, 10, 13, 0, 0, 0, 0, time.UTC)
	resp, err := svc.GetBusinessBookings(context.Background(), &models.GetBusinessBookingsRequest{
		UserID: 42, BusinessID: 10, StartDate: &day, EndDate: &day, Status: ptr.Ptr("pending"),
	})
	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 2)
	require.NotNil(t, repo.filter.Status)
	assert.Equal(t, domain.StatusPending, *repo.filter.Status)
	assert.Equal(t, &day, repo.filter.StartDate)

	_, err = svc.GetBusinessBookings(context.Background(), &models.GetBusinessBookingsRequest{
		UserID: 42, BusinessID: 10, Status: ptr.Ptr("archived"),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	before := day.AddDate(0, 0, -1)
	_, err = svc.GetBusinessBookings(context.Background(), &models.GetBusinessBookingsRequest{
		UserID: 42, BusinessID: 10, StartDate: &day, EndDate: &before,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	repo.listErr = errors.New("db down")
	_, err = svc.GetBusinessBookings(context.Background(), &models.GetBusinessBookingsRequest{UserID: 42, BusinessID: 10})
	assert.ErrorIs(t, err, ErrInternal)
}

func TestGetBusinessBookings_EmptyListIsNotNil(t *testing.T) {
	svc := NewService(newRepo(), allowAll(), logger.Nop())

	resp, err := svc.GetBusinessBookings(context.Background(), &models.GetBusinessBookingsRequest{UserID: 42, BusinessID: 999})
	require.NoError(t, err)
	assert.NotNil(t, resp.Bookings)
	assert.Empty(t, resp.Bookings)
}

func TestCancel(t *testing.T) {
	repo := newRepo()
	svc := NewService(repo, allowAll(), logger.Nop())

	require.NoError(t, svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{UserID: 42}))
	assert.Equal(t, domain.StatusCancelled, repo.bookings[1].Status)

	// Повторная отмена и отмена завершенного бронирования
	assert.ErrorIs(t, svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{UserID: 42}), ErrCannotCancel)
	assert.ErrorIs(t, svc.Cancel(context.Background(), 2, &models.CancelBookingRequest{UserID: 42}), ErrCannotCancel)

	// Гонка: статус сменился между чтением и обновлением
	repo.cancelErr = bookingRepo.ErrCannotCancel
	assert.ErrorIs(t, svc.Cancel(context.Background(), 3, &models.CancelBookingRequest{UserID: 42}), ErrCannotCancel)

	readOnly := NewService(newRepo(), &fakeAuthorizer{allowed: map[string]bool{domain.ActionBookingRead: true}}, logger.Nop())
	assert.ErrorIs(t, readOnly.Cancel(context.Background(), 1, &models.CancelBookingRequest{UserID: 42}), ErrAccessDenied)
}

func TestUpdateStatus(t *testing.T) {
	tests := []struct {
		name    string
		id      int64
		status  string
		wantErr error
	}{
		{name: "pending to confirmed", id: 1, status: "confirmed"},
		{name: "pending to completed", id: 1, status: "completed", wantErr: ErrInvalidTransition},
		{name: "confirmed to completed", id: 3, status: "completed"},
		{name: "completed is final", id: 2, status: "cancelled", wantErr: ErrInvalidTransition},
		{name: "unknown status", id: 1, status: "no_show", wantErr: ErrInvalidInput},
		{name: "not found", id: 99, status: "confirmed", wantErr: ErrBookingNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newRepo()
			svc := NewService(repo, allowAll(), logger.Nop())

			err := svc.UpdateStatus(context.Background(), tt.id, &models.UpdateStatusRequest{UserID: 42, Status: tt.status})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, domain.BookingStatus(tt.status), repo.bookings[tt.id].Status)
		})
	}
}

func TestUpdatePaymentStatus(t *testing.T) {
	repo := newRepo()
	svc := NewService(repo, allowAll(), logger.Nop())

	require.NoError(t, svc.UpdatePaymentStatus(context.Background(), 1, &models.UpdatePaymentStatusRequest{UserID: 42, PaymentStatus: "partial"}))
	assert.Equal(t, domain.PaymentPartial, repo.bookings[1].PaymentStatus)

	err := svc.UpdatePaymentStatus(context.Background(), 1, &models.UpdatePaymentStatusRequest{UserID: 42, PaymentStatus: "paid"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	denied := NewService(newRepo(), &fakeAuthorizer{}, logger.Nop())
	err = denied.UpdatePaymentStatus(context.Background(), 1, &models.UpdatePaymentStatusRequest{UserID: 42, PaymentStatus: "partial"})
	assert.ErrorIs(t, err, ErrAccessDenied)
}
