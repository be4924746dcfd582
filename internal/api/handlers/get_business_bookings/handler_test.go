package get_business_bookings

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/api/middleware"
	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/service/bookings"
	"github.com/m04kA/SMC-SchedulingService/internal/service/bookings/models"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeService struct {
	got  *models.GetBusinessBookingsRequest
	resp *models.BookingListResponse
	err  error
}

func (f *fakeService) GetBusinessBookings(_ context.Context, req *models.GetBusinessBookingsRequest) (*models.BookingListResponse, error) {
	f.got = req
	return f.resp, f.err
}

func serve(h *Handler, target string, userID *int64) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/businesses/{businessId}/bookings", h.Handle).Methods(http.MethodGet)

	req := httptest.NewRequest(http.MethodGet, target, nil)
	if userID != nil {
		req = req.WithContext(middleware.WithUserID(req.Context(), *userID))
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestToServiceRequest(t *testing.T) {
	t.Run("single date", func(t *testing.T) {
		req, err := ToServiceRequest(3, 42, url.Values{"date": {"2025-10-15"}, "startDate": {"2025-01-01"}})
		require.NoError(t, err)
		require.NotNil(t, req.StartDate)
		require.NotNil(t, req.EndDate)
		assert.Equal(t, "2025-10-15", req.StartDate.Format(domain.DateFormat))
		assert.Equal(t, "2025-10-15", req.EndDate.Format(domain.DateFormat))
	})

	t.Run("range and filters", func(t *testing.T) {
		req, err := ToServiceRequest(3, 42, url.Values{
			"startDate":        {"2025-10-01"},
			"endDate":          {"2025-10-31"},
			"status":           {"confirmed"},
			"teamMember":       {"7"},
			"includeCancelled": {"true"},
		})
		require.NoError(t, err)
		assert.Equal(t, int64(3), req.BusinessID)
		assert.Equal(t, int64(42), req.UserID)
		assert.Equal(t, "2025-10-01", req.StartDate.Format(domain.DateFormat))
		assert.Equal(t, "2025-10-31", req.EndDate.Format(domain.DateFormat))
		require.NotNil(t, req.Status)
		assert.Equal(t, "confirmed", *req.Status)
		require.NotNil(t, req.TeamMember)
		assert.Equal(t, int64(7), *req.TeamMember)
		assert.True(t, req.IncludeCancelled)
	})

	t.Run("no filters", func(t *testing.T) {
		req, err := ToServiceRequest(3, 42, url.Values{})
		require.NoError(t, err)
		assert.Nil(t, req.StartDate)
		assert.Nil(t, req.Status)
		assert.Nil(t, req.TeamMember)
		assert.False(t, req.IncludeCancelled)
	})

	for name, query := range map[string]url.Values{
		"bad date":        {"date": {"yesterday"}},
		"bad start":       {"startDate": {"2025/10/01"}},
		"bad team member": {"teamMember": {"x"}},
		"bad include":     {"includeCancelled": {"maybe"}},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := ToServiceRequest(3, 42, query)
			assert.Error(t, err)
		})
	}
}

func TestHandler(t *testing.T) {
	userID := int64(42)
	tests := []struct {
		name       string
		target     string
		userID     *int64
		svcErr     error
		wantStatus int
	}{
		{name: "success", target: "/businesses/3/bookings?date=2025-10-15", userID: &userID, wantStatus: http.StatusOK},
		{name: "no user", target: "/businesses/3/bookings", wantStatus: http.StatusUnauthorized},
		{name: "bad business", target: "/businesses/zero/bookings", userID: &userID, wantStatus: http.StatusBadRequest},
		{name: "bad params", target: "/businesses/3/bookings?date=bad", userID: &userID, wantStatus: http.StatusBadRequest},
		{name: "invalid filter", target: "/businesses/3/bookings?status=archived", userID: &userID,
			svcErr: bookings.ErrInvalidInput, wantStatus: http.StatusBadRequest},
		{name: "forbidden", target: "/businesses/3/bookings", userID: &userID, svcErr: bookings.ErrAccessDenied, wantStatus: http.StatusForbidden},
		{name: "internal", target: "/businesses/3/bookings", userID: &userID, svcErr: bookings.ErrInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeService{resp: &models.BookingListResponse{Bookings: []models.BookingResponse{{ID: 1}}}, err: tt.svcErr}
			rec := serve(NewHandler(svc, nopLogger{}), tt.target, tt.userID)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
