package create_booking

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/api/middleware"
	"github.com/m04kA/SMC-SchedulingService/internal/availability"
	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	createBooking "github.com/m04kA/SMC-SchedulingService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-SchedulingService/pkg/validation"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeUseCase struct {
	got  *createBooking.Request
	resp *createBooking.Response
	err  error
}

func (f *fakeUseCase) Execute(_ context.Context, req *createBooking.Request) (*createBooking.Response, error) {
	f.got = req
	return f.resp, f.err
}

const validBody = `{"serviceId":5,"date":"2025-10-15","time":"10:00","quantity":2,` +
	`"clientName":"Anna","clientEmail":"anna@example.com","notes":"window seat"}`

func serve(h *Handler, body string, userID *int64) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/businesses/{businessId}/bookings", h.Handle).Methods(http.MethodPost)

	req := httptest.NewRequest(http.MethodPost, "/businesses/3/bookings", strings.NewReader(body))
	if userID != nil {
		req = req.WithContext(middleware.WithUserID(req.Context(), *userID))
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandler_PublicCreated(t *testing.T) {
	created := time.Date(2025, 10, 14, 9, 0, 0, 0, time.UTC)
	uc := &fakeUseCase{resp: &createBooking.Response{
		ID:              100,
		BusinessID:      3,
		ServiceID:       5,
		BookingDate:     time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC),
		StartTime:       "10:00",
		DurationMinutes: 60,
		Quantity:        2,
		Status:          domain.StatusPending,
		PaymentStatus:   domain.PaymentPending,
		ClientName:      "Anna",
		ClientEmail:     "anna@example.com",
		DepositAmount:   20,
		TotalPrice:      80,
		CreatedAt:       created,
		UpdatedAt:       created,
	}}
	h := NewHandler(uc, nopLogger{})

	rec := serve(h, validBody, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	require.NotNil(t, uc.got)
	assert.Nil(t, uc.got.UserID)
	assert.Equal(t, int64(3), uc.got.BusinessID)
	assert.Equal(t, "2025-10-15", uc.got.Date.Format(domain.DateFormat))
	assert.Equal(t, 2, uc.got.Quantity)
	require.NotNil(t, uc.got.Notes)
	assert.Equal(t, "window seat", *uc.got.Notes)

	var body BookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, int64(100), body.ID)
	assert.Equal(t, "2025-10-15", body.Date)
	assert.Equal(t, "10:00", body.Time)
	assert.Equal(t, "pending", body.Status)
	assert.Equal(t, 20.0, body.DepositAmount)
	assert.Equal(t, 80.0, body.TotalPrice)
	assert.Equal(t, "2025-10-14T09:00:00Z", body.CreatedAt)
}

func TestHandler_StaffPassesUserAndStatus(t *testing.T) {
	uc := &fakeUseCase{resp: &createBooking.Response{Status: domain.StatusConfirmed}}
	h := NewHandler(uc, nopLogger{})
	userID := int64(42)

	body := `{"serviceId":5,"date":"2025-10-15","time":"10:00","clientName":"Anna",` +
		`"clientEmail":"anna@example.com","status":"confirmed","teamMember":7}`
	rec := serve(h, body, &userID)
	require.Equal(t, http.StatusCreated, rec.Code)

	require.NotNil(t, uc.got.UserID)
	assert.Equal(t, userID, *uc.got.UserID)
	assert.Equal(t, domain.StatusConfirmed, uc.got.Status)
	require.NotNil(t, uc.got.TeamMember)
	assert.Equal(t, int64(7), *uc.got.TeamMember)
}

func TestHandler_SlotRejected(t *testing.T) {
	minimum := time.Date(2025, 10, 15, 12, 0, 0, 0, time.UTC)
	uc := &fakeUseCase{err: &createBooking.SlotError{
		Reason:          availability.ErrLeadTimeViolation,
		Message:         "Bookings must be made at least 2 hours in advance",
		MinimumDateTime: &minimum,
	}}
	h := NewHandler(uc, nopLogger{})

	rec := serve(h, validBody, nil)
	require.Equal(t, http.StatusConflict, rec.Code)

	var body handlers.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "lead_time", body.Code)
	assert.Equal(t, "Bookings must be made at least 2 hours in advance", body.Error)
	assert.Equal(t, "2025-10-15T12:00:00Z", body.Details["minimumDateTime"])
}

func TestHandler_CapacityRejected(t *testing.T) {
	uc := &fakeUseCase{err: fmt.Errorf("tx: %w", &createBooking.SlotError{
		Reason:  availability.ErrConflictOverCapacity,
		Message: "this time slot is fully booked",
	})}
	h := NewHandler(uc, nopLogger{})

	rec := serve(h, validBody, nil)
	require.Equal(t, http.StatusConflict, rec.Code)

	var body handlers.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "over_capacity", body.Code)
	assert.Nil(t, body.Details)
}

func TestHandler_ValidationDetails(t *testing.T) {
	fields := validation.Errors{{Field: "clientEmail", Message: "must be a valid email address"}}
	uc := &fakeUseCase{err: fmt.Errorf("%w: %w", createBooking.ErrInvalidInput, fields)}
	h := NewHandler(uc, nopLogger{})

	rec := serve(h, validBody, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body handlers.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "validation_failed", body.Code)
	assert.Contains(t, rec.Body.String(), `"field":"clientEmail"`)
}

func TestHandler_Errors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		ucErr      error
		wantStatus int
	}{
		{name: "bad json", body: `not json`, wantStatus: http.StatusBadRequest},
		{name: "bad date", body: `{"serviceId":5,"date":"15/10/2025","time":"10:00"}`, wantStatus: http.StatusBadRequest},
		{name: "invalid input", body: validBody, ucErr: createBooking.ErrInvalidInput, wantStatus: http.StatusBadRequest},
		{name: "service not found", body: validBody, ucErr: createBooking.ErrServiceNotFound, wantStatus: http.StatusNotFound},
		{name: "forbidden", body: validBody, ucErr: createBooking.ErrForbidden, wantStatus: http.StatusForbidden},
		{name: "internal", body: validBody, ucErr: createBooking.ErrInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&fakeUseCase{err: tt.ucErr}, nopLogger{})
			rec := serve(h, tt.body, nil)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
