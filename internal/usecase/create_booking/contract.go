package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/availability"
	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/service/schedule"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	// LockDate сериализует создание бронирований бизнеса на одну дату до конца транзакции
	LockDate(ctx context.Context, businessID int64, date time.Time) error
}

// ScheduleLoader интерфейс загрузчика данных для расчета доступности
type ScheduleLoader interface {
	Load(ctx context.Context, q schedule.Query) (availability.Snapshot, error)
}

// Authorizer интерфейс проверки прав сотрудника
type Authorizer interface {
	CanPerform(ctx context.Context, userID int64, action string, businessID int64) (bool, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// MetricsRecorder интерфейс записи метрик
type MetricsRecorder interface {
	ObserveCandidateCheck(outcome string)
	ObserveBookingCreated(origin string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
