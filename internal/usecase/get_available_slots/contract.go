package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/availability"
	"github.com/m04kA/SMC-SchedulingService/internal/service/schedule"
)

// ScheduleLoader интерфейс загрузчика данных для расчета доступности
type ScheduleLoader interface {
	Load(ctx context.Context, q schedule.Query) (availability.Snapshot, error)
}

// Authorizer интерфейс проверки прав сотрудника
type Authorizer interface {
	CanPerform(ctx context.Context, userID int64, action string, businessID int64) (bool, error)
}

// MetricsRecorder интерфейс записи метрик генерации слотов
type MetricsRecorder interface {
	ObserveSlots(available, unavailable int)
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
