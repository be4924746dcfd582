package middleware

import (
	"net"
	"net/http"
	"strings"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
)

const (
	msgTooManyRequests    = "слишком много запросов, попробуйте позже"
	msgLimiterUnavailable = "ограничитель запросов недоступен"
)

// RateLimit ограничивает публичные маршруты по IP клиента.
// При ошибке лимитера запрос пропускается, если failOpen, иначе 503.
func RateLimit(limiter Limiter, failOpen bool, logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := clientKey(r)

			allowed, err := limiter.Allow(r.Context(), key)
			if err != nil {
				logger.Warn("RateLimit: limiter error for key=%s: %v", key, err)
				if failOpen {
					next.ServeHTTP(w, r)
					return
				}
				handlers.RespondError(w, http.StatusServiceUnavailable, msgLimiterUnavailable)
				return
			}

			if !allowed {
				logger.Warn("RateLimit: limit exceeded for key=%s, path=%s", key, r.URL.Path)
				handlers.RespondTooManyRequests(w, msgTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func clientKey(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		parts := strings.Split(forwarded, ",")
		return strings.TrimSpace(parts[0])
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil {
		return host
	}
	return r.RemoteAddr
}
