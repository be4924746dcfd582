package get_next_available

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	getNextAvailable "github.com/m04kA/SMC-SchedulingService/internal/usecase/get_next_available"
)

const (
	msgInvalidBusinessID = "некорректный ID бизнеса"
)

// NextAvailableResponse HTTP response model
type NextAvailableResponse struct {
	BusinessID               int64           `json:"businessId"`
	Next                     domain.DateTime `json:"next"`
	MinimumBookingDelayHours int             `json:"minimumBookingDelayHours"`
	Timezone                 string          `json:"timezone"`
}

type Handler struct {
	useCase GetNextAvailableUseCase
	logger  Logger
}

func NewHandler(useCase GetNextAvailableUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/businesses/{businessId}/next-available
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	businessID, err := handlers.PathID(r, "businessId")
	if err != nil {
		h.logger.Warn("GET /businesses/{id}/next-available - Invalid business ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBusinessID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), businessID)
	if err != nil {
		switch {
		case errors.Is(err, getNextAvailable.ErrInvalidInput):
			h.logger.Warn("GET /businesses/{id}/next-available - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidBusinessID)

		default:
			h.logger.Error("GET /businesses/{id}/next-available - Failed: business_id=%d, error=%v", businessID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /businesses/{id}/next-available - business_id=%d, next=%s %s",
		businessID, result.Next.Date, result.Next.Time)
	handlers.RespondJSON(w, http.StatusOK, &NextAvailableResponse{
		BusinessID:               result.BusinessID,
		Next:                     result.Next,
		MinimumBookingDelayHours: result.MinimumBookingDelayHours,
		Timezone:                 result.Timezone,
	})
}
