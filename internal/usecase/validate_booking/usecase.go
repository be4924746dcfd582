package validate_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SchedulingService/internal/availability"
	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/service/schedule"
)

// UseCase use case проверки выбранного клиентом слота
type UseCase struct {
	loader       ScheduleLoader
	metrics      MetricsRecorder
	options      availability.Options
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(loader ScheduleLoader, metrics MetricsRecorder, options availability.Options, logger Logger) *UseCase {
	return &UseCase{
		loader:       loader,
		metrics:      metrics,
		options:      options,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute проверяет слот публичного запроса.
// Любая ошибка чтения данных считается отказом, слот не подтверждается.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ValidateBooking: business=%d, service=%d, date=%s, time=%s, quantity=%d",
		req.BusinessID, req.ServiceID, req.Date.Format(domain.DateFormat), req.Time, req.Quantity)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ValidateBooking: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	snap, err := uc.loader.Load(ctx, schedule.Query{
		BusinessID: req.BusinessID,
		ServiceID:  req.ServiceID,
		Date:       req.Date,
		Policy:     schedule.PolicyStrict,
	})
	if err != nil {
		if errors.Is(err, schedule.ErrServiceNotFound) {
			uc.logger.Warn("ValidateBooking: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("ValidateBooking: failed to load schedule: %v", err)
		uc.metrics.ObserveCandidateCheck("error")
		return nil, fmt.Errorf("%w: failed to load schedule: %v", ErrInternal, err)
	}

	result := availability.ValidateCandidate(snap, availability.Candidate{
		Date:       req.Date,
		Time:       req.Time,
		Quantity:   req.Quantity,
		TeamMember: req.TeamMember,
		IsPublic:   true,
	}, now, uc.options)

	uc.metrics.ObserveCandidateCheck(availability.ReasonCode(result.Reason))

	if !result.IsValid {
		uc.logger.Info("ValidateBooking: slot %s %s rejected: %v",
			req.Date.Format(domain.DateFormat), req.Time, result.Reason)
		return &Response{
			Reason:          availability.ReasonCode(result.Reason),
			Message:         result.Message,
			MinimumDateTime: result.MinimumDateTime,
		}, nil
	}

	uc.logger.Info("ValidateBooking: slot %s %s is available", req.Date.Format(domain.DateFormat), req.Time)
	return &Response{IsValid: true}, nil
}
