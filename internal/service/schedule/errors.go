package schedule

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена или выключена
	ErrServiceNotFound = errors.New("service not found")

	// ErrInternal возвращается, когда данные для расчета не удалось получить
	ErrInternal = errors.New("schedule: internal error")
)
