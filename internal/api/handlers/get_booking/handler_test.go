package get_booking

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/api/middleware"
	"github.com/m04kA/SMC-SchedulingService/internal/service/bookings"
	"github.com/m04kA/SMC-SchedulingService/internal/service/bookings/models"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeService struct {
	gotID, gotUser int64
	resp           *models.BookingResponse
	err            error
}

func (f *fakeService) GetByID(_ context.Context, id int64, userID int64) (*models.BookingResponse, error) {
	f.gotID, f.gotUser = id, userID
	return f.resp, f.err
}

func serve(h *Handler, target string, userID *int64) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/bookings/{bookingId}", h.Handle).Methods(http.MethodGet)

	req := httptest.NewRequest(http.MethodGet, target, nil)
	if userID != nil {
		req = req.WithContext(middleware.WithUserID(req.Context(), *userID))
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandler_Success(t *testing.T) {
	svc := &fakeService{resp: &models.BookingResponse{ID: 10, BusinessID: 3, Status: "pending"}}
	userID := int64(42)

	rec := serve(NewHandler(svc, nopLogger{}), "/bookings/10", &userID)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(10), svc.gotID)
	assert.Equal(t, userID, svc.gotUser)

	var body models.BookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, int64(10), body.ID)
	assert.Equal(t, "pending", body.Status)
}

func TestHandler_Errors(t *testing.T) {
	userID := int64(42)
	tests := []struct {
		name       string
		target     string
		userID     *int64
		svcErr     error
		wantStatus int
	}{
		{name: "bad id", target: "/bookings/abc", userID: &userID, wantStatus: http.StatusBadRequest},
		{name: "no user", target: "/bookings/10", wantStatus: http.StatusUnauthorized},
		{name: "not found", target: "/bookings/10", userID: &userID, svcErr: bookings.ErrBookingNotFound, wantStatus: http.StatusNotFound},
		{name: "forbidden", target: "/bookings/10", userID: &userID, svcErr: bookings.ErrAccessDenied, wantStatus: http.StatusForbidden},
		{name: "internal", target: "/bookings/10", userID: &userID, svcErr: bookings.ErrInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(NewHandler(&fakeService{err: tt.svcErr}, nopLogger{}), tt.target, tt.userID)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
