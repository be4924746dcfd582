package create_booking

import (
	"fmt"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func (uc *UseCase) validateRequest(req *Request) error {
	if err := uc.validator.Struct(req); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	// Публичный клиент не выбирает статус, бронирование всегда ждет подтверждения
	if req.IsPublic() && req.Status != "" && req.Status != domain.StatusPending {
		return fmt.Errorf("%w: status can only be set by staff", ErrInvalidInput)
	}

	return nil
}

// initialStatus возвращает статус нового бронирования
func initialStatus(req *Request) domain.BookingStatus {
	if req.IsPublic() || req.Status == "" {
		return domain.StatusPending
	}
	return req.Status
}

// quantity возвращает количество участников, по умолчанию один
func quantity(req *Request) int {
	if req.Quantity < 1 {
		return 1
	}
	return req.Quantity
}
