package get_available_slots

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/api/middleware"
	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-SchedulingService/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date       string          `json:"date"`
	BusinessID int64           `json:"businessId"`
	ServiceID  int64           `json:"serviceId"`
	Slots      []AvailableSlot `json:"slots"`
}

// AvailableSlot модель временного слота
type AvailableSlot struct {
	Time      string `json:"time"`
	Available bool   `json:"available"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]AvailableSlot, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = AvailableSlot{
			Time:      slot.Time.String(),
			Available: slot.Available,
		}
	}

	return &AvailableSlotsResponse{
		Date:       resp.Date.Format(domain.DateFormat),
		BusinessID: resp.BusinessID,
		ServiceID:  resp.ServiceID,
		Slots:      slots,
	}
}

// ToUseCaseRequest создает запрос use case из пути и query параметров.
// Для защищенного маршрута userID берется из контекста.
func ToUseCaseRequest(r *http.Request, businessID, serviceID int64) (*getAvailableSlots.Request, error) {
	query := r.URL.Query()

	date, err := handlers.ParseDate(query.Get("date"))
	if err != nil {
		return nil, err
	}

	teamMember, err := handlers.ParseTeamMember(query.Get("teamMember"))
	if err != nil {
		return nil, err
	}

	req := &getAvailableSlots.Request{
		BusinessID: businessID,
		ServiceID:  serviceID,
		Date:       date,
		TeamMember: teamMember,
	}

	if stepStr := query.Get("step"); stepStr != "" {
		step, err := strconv.Atoi(stepStr)
		if err != nil {
			return nil, fmt.Errorf("%w: step=%q", handlers.ErrInvalidParam, stepStr)
		}
		req.StepMinutes = step
	}

	if userID, ok := middleware.GetUserID(r.Context()); ok {
		req.UserID = &userID
	}

	return req, nil
}
