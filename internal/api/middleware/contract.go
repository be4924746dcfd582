package middleware

import "context"

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Limiter считает запросы по ключу клиента.
// Allow возвращает false, когда лимит окна исчерпан.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}
