package settings

import (
	"context"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// SettingsRepository интерфейс репозитория настроек бизнеса
type SettingsRepository interface {
	GetByBusinessID(ctx context.Context, businessID int64) (*domain.BusinessSettings, error)
	Upsert(ctx context.Context, s *domain.BusinessSettings) (*domain.BusinessSettings, error)
}

// Authorizer интерфейс проверки прав сотрудника
type Authorizer interface {
	CanPerform(ctx context.Context, userID int64, action string, businessID int64) (bool, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
