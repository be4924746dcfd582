package create_booking

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("create_booking: service not found")

	// ErrForbidden возвращается, когда у сотрудника нет прав на бизнес
	ErrForbidden = errors.New("create_booking: access denied")

	// ErrSlotNotAvailable возвращается, когда выбранный слот недоступен
	ErrSlotNotAvailable = errors.New("create_booking: slot is not available")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)

// SlotError отказ движка доступности при повторной проверке слота.
// errors.Is находит и ErrSlotNotAvailable, и конкретную причину из пакета availability.
type SlotError struct {
	Reason          error
	Message         string
	MinimumDateTime *time.Time
}

func (e *SlotError) Error() string {
	return fmt.Sprintf("%v: %s", ErrSlotNotAvailable, e.Message)
}

func (e *SlotError) Unwrap() []error {
	return []error{ErrSlotNotAvailable, e.Reason}
}
