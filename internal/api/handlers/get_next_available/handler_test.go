package get_next_available

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	getNextAvailable "github.com/m04kA/SMC-SchedulingService/internal/usecase/get_next_available"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeUseCase struct {
	resp *getNextAvailable.Response
	err  error
}

func (f *fakeUseCase) Execute(context.Context, int64) (*getNextAvailable.Response, error) {
	return f.resp, f.err
}

func serve(h *Handler, target string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/businesses/{businessId}/next-available", h.Handle).Methods(http.MethodGet)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHandler_Success(t *testing.T) {
	h := NewHandler(&fakeUseCase{resp: &getNextAvailable.Response{
		BusinessID:               3,
		Next:                     domain.DateTime{Date: "2025-10-15", Time: "12:00"},
		MinimumBookingDelayHours: 2,
		Timezone:                 "Europe/Paris",
	}}, nopLogger{})

	rec := serve(h, "/businesses/3/next-available")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"businessId":3,"next":{"date":"2025-10-15","time":"12:00"},`+
		`"minimumBookingDelayHours":2,"timezone":"Europe/Paris"}`, rec.Body.String())
}

func TestHandler_Errors(t *testing.T) {
	rec := serve(NewHandler(&fakeUseCase{}, nopLogger{}), "/businesses/abc/next-available")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(NewHandler(&fakeUseCase{err: getNextAvailable.ErrInternal}, nopLogger{}), "/businesses/3/next-available")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
