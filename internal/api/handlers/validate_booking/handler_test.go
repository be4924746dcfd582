package validate_booking

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	validateBooking "github.com/m04kA/SMC-SchedulingService/internal/usecase/validate_booking"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeUseCase struct {
	got  *validateBooking.Request
	resp *validateBooking.Response
	err  error
}

func (f *fakeUseCase) Execute(_ context.Context, req *validateBooking.Request) (*validateBooking.Response, error) {
	f.got = req
	return f.resp, f.err
}

func serve(h *Handler, target, body string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/businesses/{businessId}/bookings/validate", h.Handle).Methods(http.MethodPost)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, target, strings.NewReader(body)))
	return rec
}

func TestHandler_Valid(t *testing.T) {
	uc := &fakeUseCase{resp: &validateBooking.Response{IsValid: true}}
	h := NewHandler(uc, nopLogger{})

	rec := serve(h, "/businesses/3/bookings/validate",
		`{"serviceId":5,"date":"2025-10-15","time":"10:00","quantity":2,"teamMember":9}`)
	require.Equal(t, http.StatusOK, rec.Code)

	require.NotNil(t, uc.got)
	assert.Equal(t, int64(3), uc.got.BusinessID)
	assert.Equal(t, int64(5), uc.got.ServiceID)
	assert.Equal(t, types.TimeString("10:00"), uc.got.Time)
	assert.Equal(t, 2, uc.got.Quantity)
	require.NotNil(t, uc.got.TeamMember)
	assert.Equal(t, int64(9), *uc.got.TeamMember)

	assert.JSONEq(t, `{"isValid":true}`, rec.Body.String())
}

func TestHandler_Rejected(t *testing.T) {
	minimum := time.Date(2025, 10, 15, 12, 0, 0, 0, time.UTC)
	uc := &fakeUseCase{resp: &validateBooking.Response{
		IsValid:         false,
		Reason:          "lead_time",
		Message:         "Bookings must be made at least 2 hours in advance",
		MinimumDateTime: &minimum,
	}}
	h := NewHandler(uc, nopLogger{})

	rec := serve(h, "/businesses/3/bookings/validate", `{"serviceId":5,"date":"2025-10-15","time":"10:00"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var body ValidateBookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.IsValid)
	assert.Equal(t, "lead_time", body.Reason)
	require.NotNil(t, body.MinimumDateTime)
	assert.Equal(t, "2025-10-15T12:00:00Z", *body.MinimumDateTime)
}

func TestHandler_Errors(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		body       string
		ucErr      error
		wantStatus int
	}{
		{name: "bad business id", target: "/businesses/0/bookings/validate", body: `{}`, wantStatus: http.StatusBadRequest},
		{name: "bad json", target: "/businesses/3/bookings/validate", body: `{`, wantStatus: http.StatusBadRequest},
		{name: "unknown field", target: "/businesses/3/bookings/validate", body: `{"foo":1}`, wantStatus: http.StatusBadRequest},
		{name: "bad date", target: "/businesses/3/bookings/validate", body: `{"serviceId":5,"date":"tomorrow","time":"10:00"}`, wantStatus: http.StatusBadRequest},
		{name: "invalid input", target: "/businesses/3/bookings/validate", body: `{"serviceId":5,"date":"2025-10-15","time":"25:00"}`,
			ucErr: validateBooking.ErrInvalidInput, wantStatus: http.StatusBadRequest},
		{name: "service not found", target: "/businesses/3/bookings/validate", body: `{"serviceId":5,"date":"2025-10-15","time":"10:00"}`,
			ucErr: validateBooking.ErrServiceNotFound, wantStatus: http.StatusNotFound},
		{name: "internal", target: "/businesses/3/bookings/validate", body: `{"serviceId":5,"date":"2025-10-15","time":"10:00"}`,
			ucErr: validateBooking.ErrInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&fakeUseCase{err: tt.ucErr}, nopLogger{})
			rec := serve(h, tt.target, tt.body)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
