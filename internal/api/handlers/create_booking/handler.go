package create_booking

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/api/middleware"
	"github.com/m04kA/SMC-SchedulingService/internal/availability"
	createBooking "github.com/m04kA/SMC-SchedulingService/internal/usecase/create_booking"
)

const (
	msgInvalidBusinessID  = "некорректный ID бизнеса"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты бронирования, ожидается YYYY-MM-DD"
	msgInvalidInput       = "некорректные данные бронирования"
	msgServiceNotFound    = "услуга не найдена"
	msgForbidden          = "доступ запрещен"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/businesses/{businessId}/bookings (публичный)
// и POST /api/v1/businesses/{businessId}/staff/bookings (за Auth)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	businessID, err := handlers.PathID(r, "businessId")
	if err != nil {
		h.logger.Warn("POST /businesses/{id}/bookings - Invalid business ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBusinessID)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /businesses/{id}/bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	var userID *int64
	if id, ok := middleware.GetUserID(r.Context()); ok {
		userID = &id
	}

	useCaseReq, err := req.ToUseCaseRequest(businessID, userID)
	if err != nil {
		h.logger.Warn("POST /businesses/{id}/bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		var slotErr *createBooking.SlotError

		switch {
		case errors.As(err, &slotErr):
			h.logger.Warn("POST /businesses/{id}/bookings - Slot not available: business_id=%d, service_id=%d, reason=%v",
				businessID, req.ServiceID, slotErr.Reason)
			respondSlotError(w, slotErr)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /businesses/{id}/bookings - Invalid input: %v", err)
			handlers.RespondValidationError(w, msgInvalidInput, err)

		case errors.Is(err, createBooking.ErrServiceNotFound):
			h.logger.Warn("POST /businesses/{id}/bookings - Service not found: business_id=%d, service_id=%d",
				businessID, req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createBooking.ErrForbidden):
			h.logger.Warn("POST /businesses/{id}/bookings - Access denied: business_id=%d", businessID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("POST /businesses/{id}/bookings - Failed to create booking: business_id=%d, error=%v",
				businessID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /businesses/{id}/bookings - Booking created successfully: booking_id=%d, business_id=%d, status=%s",
		result.ID, businessID, result.Status)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}

// respondSlotError отдает 409 с кодом причины, чтобы виджет показал нужное сообщение
func respondSlotError(w http.ResponseWriter, slotErr *createBooking.SlotError) {
	var details map[string]interface{}
	if slotErr.MinimumDateTime != nil {
		details = map[string]interface{}{
			"minimumDateTime": slotErr.MinimumDateTime.Format(time.RFC3339),
		}
	}
	handlers.RespondErrorWithCode(w, http.StatusConflict,
		availability.ReasonCode(slotErr.Reason), slotErr.Message, details)
}
