package schedule

import "time"

// Policy поведение при ошибке чтения списков (бронирования, недоступность, закрытые даты)
type Policy int

const (
	// PolicyDisplay ошибка логируется, список считается пустым. Только для отображения слотов.
	PolicyDisplay Policy = iota
	// PolicyStrict любая ошибка прерывает расчет
	PolicyStrict
)

// Query параметры загрузки данных на одну дату
type Query struct {
	BusinessID int64
	ServiceID  int64
	Date       time.Time
	Policy     Policy
}
