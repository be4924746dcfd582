package permissions

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("permissions client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("permissions client: invalid response")

	// ErrUnavailable возвращается, когда сервис прав недоступен. Доступ в этом случае запрещается.
	ErrUnavailable = errors.New("permissions service unavailable")
)
