package get_next_available

import (
	"context"

	getNextAvailable "github.com/m04kA/SMC-SchedulingService/internal/usecase/get_next_available"
)

type GetNextAvailableUseCase interface {
	Execute(ctx context.Context, businessID int64) (*getNextAvailable.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
