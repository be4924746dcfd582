package get_next_available

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-SchedulingService/internal/availability"
)

// UseCase use case для подсказки ближайшей допустимой даты на форме бронирования
type UseCase struct {
	settings     SettingsProvider
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(settings SettingsProvider, logger Logger) *UseCase {
	return &UseCase{
		settings:     settings,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute возвращает now + minimum_booking_delay_hours в часовом поясе бизнеса
func (uc *UseCase) Execute(ctx context.Context, businessID int64) (*Response, error) {
	uc.logger.Info("GetNextAvailable: business=%d", businessID)

	if businessID <= 0 {
		return nil, fmt.Errorf("%w: businessID must be positive", ErrInvalidInput)
	}

	settings, err := uc.settings.GetSettings(ctx, businessID)
	if err != nil {
		uc.logger.Error("GetNextAvailable: failed to get settings for business=%d: %v", businessID, err)
		return nil, fmt.Errorf("%w: failed to get settings: %v", ErrInternal, err)
	}

	next := availability.NextAvailableDateTime(settings, uc.timeProvider.Now())

	return &Response{
		BusinessID:               businessID,
		Next:                     next,
		MinimumBookingDelayHours: settings.MinimumBookingDelayHours,
		Timezone:                 settings.Location().String(),
	}, nil
}
