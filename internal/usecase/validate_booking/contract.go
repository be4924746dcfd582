package validate_booking

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

// MetricsRecorder интерфейс записи метрик проверки слота
type MetricsRecorder interface {
	ObserveCandidateCheck(outcome string)
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
