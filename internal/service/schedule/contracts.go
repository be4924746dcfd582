package schedule

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// ServiceRepository интерфейс репозитория услуг
type ServiceRepository interface {
	GetByID(ctx context.Context, businessID, serviceID int64) (*domain.Service, error)
}

// SettingsRepository интерфейс репозитория настроек бизнеса
type SettingsRepository interface {
	GetByBusinessID(ctx context.Context, businessID int64) (*domain.BusinessSettings, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetForDate(ctx context.Context, businessID int64, date time.Time) ([]domain.Booking, error)
}

// TimeOffRepository интерфейс репозитория окон недоступности и закрытых дат
type TimeOffRepository interface {
	GetUnavailabilityForDate(ctx context.Context, businessID int64, date time.Time) ([]domain.Unavailability, error)
	GetBlockedDateRanges(ctx context.Context, businessID int64, date time.Time) ([]domain.BlockedDateRange, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
