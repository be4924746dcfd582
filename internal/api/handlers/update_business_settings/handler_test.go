package update_business_settings

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/api/middleware"
	"github.com/m04kA/SMC-SchedulingService/internal/service/settings"
	"github.com/m04kA/SMC-SchedulingService/internal/service/settings/models"
	"github.com/m04kA/SMC-SchedulingService/pkg/validation"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeService struct {
	got *models.UpdateSettingsRequest
	err error
}

func (f *fakeService) Update(_ context.Context, req *models.UpdateSettingsRequest) (*models.SettingsResponse, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &models.SettingsResponse{BusinessID: req.BusinessID, Timezone: req.Timezone}, nil
}

const body = `{"openingHours":{"monday":{"ranges":[{"start":"09:00","end":"17:00"}]}},` +
	`"bufferMinutes":10,"minimumBookingDelayHours":2,"timezone":"Europe/Paris",` +
	`"deposit":{"enabled":true,"type":"percentage","value":25}}`

func serve(h *Handler, payload string, userID *int64) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/businesses/{businessId}/settings", h.Handle).Methods(http.MethodPut)

	req := httptest.NewRequest(http.MethodPut, "/businesses/3/settings", strings.NewReader(payload))
	if userID != nil {
		req = req.WithContext(middleware.WithUserID(req.Context(), *userID))
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandler_Success(t *testing.T) {
	svc := &fakeService{}
	userID := int64(42)

	rec := serve(NewHandler(svc, nopLogger{}), body, &userID)
	require.Equal(t, http.StatusOK, rec.Code)

	require.NotNil(t, svc.got)
	assert.Equal(t, int64(3), svc.got.BusinessID)
	assert.Equal(t, userID, svc.got.UserID)
	assert.Equal(t, "Europe/Paris", svc.got.Timezone)
	assert.Equal(t, 10, svc.got.BufferMinutes)
	assert.Equal(t, "percentage", svc.got.Deposit.Type)
	require.Len(t, svc.got.OpeningHours["monday"].Ranges, 1)
	assert.Equal(t, "17:00", svc.got.OpeningHours["monday"].Ranges[0].End)
}

func TestHandler_ValidationError(t *testing.T) {
	fields := validation.Errors{{Field: "timezone", Message: "must be a valid IANA timezone"}}
	svc := &fakeService{err: fmt.Errorf("%w: %w", settings.ErrInvalidInput, fields)}
	userID := int64(42)

	rec := serve(NewHandler(svc, nopLogger{}), body, &userID)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp handlers.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "validation_failed", resp.Code)
	assert.Contains(t, rec.Body.String(), `"field":"timezone"`)
}

func TestHandler_Errors(t *testing.T) {
	userID := int64(42)
	tests := []struct {
		name       string
		payload    string
		userID     *int64
		svcErr     error
		wantStatus int
	}{
		{name: "no user", payload: body, wantStatus: http.StatusUnauthorized},
		{name: "bad json", payload: `{"timezone":`, userID: &userID, wantStatus: http.StatusBadRequest},
		{name: "rule violation", payload: body, userID: &userID,
			svcErr: fmt.Errorf("%w: start must be before end", settings.ErrInvalidInput), wantStatus: http.StatusBadRequest},
		{name: "forbidden", payload: body, userID: &userID, svcErr: settings.ErrAccessDenied, wantStatus: http.StatusForbidden},
		{name: "internal", payload: body, userID: &userID, svcErr: settings.ErrInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(NewHandler(&fakeService{err: tt.svcErr}, nopLogger{}), tt.payload, tt.userID)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
