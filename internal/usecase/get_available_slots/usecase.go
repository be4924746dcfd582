package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SchedulingService/internal/availability"
	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/service/schedule"
	"github.com/m04kA/SMC-SchedulingService/pkg/ptr"
)

// UseCase use case для получения слотов на дату
type UseCase struct {
	loader       ScheduleLoader
	authorizer   Authorizer
	metrics      MetricsRecorder
	options      availability.Options
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	loader ScheduleLoader,
	authorizer Authorizer,
	metrics MetricsRecorder,
	options availability.Options,
	logger Logger,
) *UseCase {
	return &UseCase{
		loader:       loader,
		authorizer:   authorizer,
		metrics:      metrics,
		options:      options,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения слотов.
// Ошибки чтения бронирований и недоступности не прерывают расчет: результат только для отображения.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: business=%d, service=%d, date=%s, team_member=%d, public=%t",
		req.BusinessID, req.ServiceID, req.Date.Format(domain.DateFormat), ptr.Deref(req.TeamMember, 0), req.IsPublic())

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Сотрудник должен иметь право создавать бронирования в бизнесе
	if !req.IsPublic() {
		if err := uc.checkStaffAccess(ctx, *req.UserID, req.BusinessID); err != nil {
			return nil, err
		}
	}

	now := uc.timeProvider.Now()

	// 3. Загружаем данные на дату
	snap, err := uc.loader.Load(ctx, schedule.Query{
		BusinessID: req.BusinessID,
		ServiceID:  req.ServiceID,
		Date:       req.Date,
		Policy:     schedule.PolicyDisplay,
	})
	if err != nil {
		if errors.Is(err, schedule.ErrServiceNotFound) {
			uc.logger.Warn("GetAvailableSlots: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to load schedule: %v", err)
		return nil, fmt.Errorf("%w: failed to load schedule: %v", ErrInternal, err)
	}

	// 4. Генерируем слоты
	options := uc.options
	if req.StepMinutes > 0 {
		options.StepMinutes = req.StepMinutes
	}

	slots := availability.GenerateSlots(snap, availability.SlotQuery{
		Date:       req.Date,
		TeamMember: req.TeamMember,
		IsPublic:   req.IsPublic(),
	}, now, options)

	available := 0
	for _, s := range slots {
		if s.Available {
			available++
		}
	}
	uc.metrics.ObserveSlots(available, len(slots)-available)

	uc.logger.Info("GetAvailableSlots: generated %d slots (%d available) for business=%d, service=%d, date=%s",
		len(slots), available, req.BusinessID, req.ServiceID, req.Date.Format(domain.DateFormat))

	return &Response{
		Date:       req.Date,
		BusinessID: req.BusinessID,
		ServiceID:  req.ServiceID,
		Slots:      slots,
	}, nil
}

// checkStaffAccess проверяет право сотрудника, при ошибке проверки доступ запрещается
func (uc *UseCase) checkStaffAccess(ctx context.Context, userID, businessID int64) error {
	allowed, err := uc.authorizer.CanPerform(ctx, userID, domain.ActionBookingCreate, businessID)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: permission check failed for user=%d: %v", userID, err)
		return fmt.Errorf("%w: permission check failed: %v", ErrForbidden, err)
	}
	if !allowed {
		uc.logger.Warn("GetAvailableSlots: user=%d has no access to business=%d", userID, businessID)
		return ErrForbidden
	}
	return nil
}
