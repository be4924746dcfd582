package availability

import "errors"

// Причины недоступности слота. Генерация слотов никогда не возвращает их как ошибку,
// они используются только для одиночной проверки кандидата.
var (
	// ErrConfigurationIncomplete расписание или услуга не настроены на этот день
	ErrConfigurationIncomplete = errors.New("availability: configuration incomplete")

	// ErrInvalidCandidate время кандидата не в формате HH:MM
	ErrInvalidCandidate = errors.New("availability: invalid candidate time")

	// ErrOutsideOpeningHours время кандидата вне рабочих интервалов
	ErrOutsideOpeningHours = errors.New("availability: outside opening hours")

	// ErrLeadTimeViolation кандидат раньше минимально допустимого момента
	ErrLeadTimeViolation = errors.New("availability: minimum lead time violated")

	// ErrPastDateTime кандидат в прошлом
	ErrPastDateTime = errors.New("availability: date and time in the past")

	// ErrConflictOverCapacity свободных мест на это время не осталось
	ErrConflictOverCapacity = errors.New("availability: capacity exceeded")

	// ErrConflictDifferentService пересечение с бронированием другой услуги
	ErrConflictDifferentService = errors.New("availability: overlaps another service booking")

	// ErrConflictBuffer нарушен обязательный зазор между бронированиями
	ErrConflictBuffer = errors.New("availability: buffer between bookings violated")

	// ErrConflictUnavailability пересечение с окном недоступности
	ErrConflictUnavailability = errors.New("availability: overlaps unavailability window")

	// ErrConflictBlockedDate дата полностью заблокирована
	ErrConflictBlockedDate = errors.New("availability: date is blocked")
)

// reasonMessages сообщения для пользователя по причине отказа
var reasonMessages = map[error]string{
	ErrConfigurationIncomplete:  "the business is closed on this date",
	ErrInvalidCandidate:         "the selected time is invalid",
	ErrOutsideOpeningHours:      "the selected time is outside opening hours",
	ErrPastDateTime:             "the selected date and time is in the past",
	ErrConflictOverCapacity:     "this time slot is fully booked",
	ErrConflictDifferentService: "this time slot is occupied",
	ErrConflictBuffer:           "this time slot is occupied",
	ErrConflictUnavailability:   "this time slot is unavailable",
	ErrConflictBlockedDate:      "bookings are closed on this date",
}

// Message возвращает сообщение для пользователя по причине отказа
func Message(reason error) string {
	for target, msg := range reasonMessages {
		if errors.Is(reason, target) {
			return msg
		}
	}
	if reason == nil {
		return ""
	}
	return reason.Error()
}

// reasonCodes машиночитаемые коды причин для API и метрик
var reasonCodes = map[error]string{
	ErrConfigurationIncomplete:  "configuration_incomplete",
	ErrInvalidCandidate:         "invalid_time",
	ErrOutsideOpeningHours:      "outside_opening_hours",
	ErrLeadTimeViolation:        "lead_time",
	ErrPastDateTime:             "past",
	ErrConflictOverCapacity:     "over_capacity",
	ErrConflictDifferentService: "different_service",
	ErrConflictBuffer:           "buffer",
	ErrConflictUnavailability:   "unavailability",
	ErrConflictBlockedDate:      "blocked_date",
}

// ReasonCode возвращает код причины отказа, "ok" для nil и "unknown" для прочих ошибок
func ReasonCode(reason error) string {
	if reason == nil {
		return "ok"
	}
	for target, code := range reasonCodes {
		if errors.Is(reason, target) {
			return code
		}
	}
	return "unknown"
}
