package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SchedulingService/internal/availability"
	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/service/schedule"
	"github.com/m04kA/SMC-SchedulingService/pkg/validation"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	loader       ScheduleLoader
	authorizer   Authorizer
	txManager    TransactionManager
	metrics      MetricsRecorder
	options      availability.Options
	validator    *validation.Validator
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	loader ScheduleLoader,
	authorizer Authorizer,
	txManager TransactionManager,
	metrics MetricsRecorder,
	options availability.Options,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		loader:       loader,
		authorizer:   authorizer,
		txManager:    txManager,
		metrics:      metrics,
		options:      options,
		validator:    validation.New(),
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования.
// Слот перепроверяется внутри сериализуемой транзакции под блокировкой даты,
// поэтому два параллельных запроса не могут занять одно и то же место.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: origin=%s, business=%d, service=%d, date=%s, time=%s, quantity=%d",
		req.Origin(), req.BusinessID, req.ServiceID, req.Date.Format(domain.DateFormat), req.StartTime, req.Quantity)

	// 1. Валидация входных данных
	if err := uc.validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверка прав сотрудника
	if !req.IsPublic() {
		if err := uc.checkStaffAccess(ctx, *req.UserID, req.BusinessID); err != nil {
			return nil, err
		}
	}

	now := uc.timeProvider.Now()

	var result *domain.Booking
	var price float64

	// 3. Перепроверка и создание в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.1. Блокируем дату бизнеса
		if err := uc.bookingRepo.LockDate(txCtx, req.BusinessID, req.Date); err != nil {
			uc.logger.Error("CreateBooking: failed to lock date: %v", err)
			return fmt.Errorf("%w: failed to lock date: %v", ErrInternal, err)
		}

		// 3.2. Свежие данные, любая ошибка чтения прерывает создание
		snap, err := uc.loader.Load(txCtx, schedule.Query{
			BusinessID: req.BusinessID,
			ServiceID:  req.ServiceID,
			Date:       req.Date,
			Policy:     schedule.PolicyStrict,
		})
		if err != nil {
			if errors.Is(err, schedule.ErrServiceNotFound) {
				uc.logger.Warn("CreateBooking: service id=%d not found", req.ServiceID)
				return ErrServiceNotFound
			}
			uc.logger.Error("CreateBooking: failed to load schedule: %v", err)
			return fmt.Errorf("%w: failed to load schedule: %v", ErrInternal, err)
		}

		// 3.3. Проверяем слот с запрошенным количеством участников
		check := availability.ValidateCandidate(snap, availability.Candidate{
			Date:       req.Date,
			Time:       req.StartTime,
			Quantity:   quantity(req),
			TeamMember: req.TeamMember,
			IsPublic:   req.IsPublic(),
		}, now, uc.options)
		uc.metrics.ObserveCandidateCheck(availability.ReasonCode(check.Reason))

		if !check.IsValid {
			uc.logger.Warn("CreateBooking: slot %s %s rejected: %v",
				req.Date.Format(domain.DateFormat), req.StartTime, check.Reason)
			return &SlotError{Reason: check.Reason, Message: check.Message, MinimumDateTime: check.MinimumDateTime}
		}

		// 3.4. Создаем бронирование, длительность фиксируется из услуги
		price = snap.Service.Price
		booking := &domain.Booking{
			BusinessID:      req.BusinessID,
			ServiceID:       req.ServiceID,
			BookingDate:     req.Date,
			StartTime:       req.StartTime,
			DurationMinutes: snap.Service.DurationMinutes,
			Quantity:        quantity(req),
			Status:          initialStatus(req),
			PaymentStatus:   domain.PaymentPending,
			AssignedUserID:  req.TeamMember,
			ClientName:      req.ClientName,
			ClientEmail:     req.ClientEmail,
			ClientPhone:     req.ClientPhone,
			Notes:           req.Notes,
			DepositAmount:   snap.Settings.Deposit.Amount(price, quantity(req)),
			CreatedBy:       req.UserID,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})
	if err != nil {
		return nil, uc.classifyTxError(err)
	}

	uc.metrics.ObserveBookingCreated(req.Origin())
	uc.logger.Info("CreateBooking: successfully created booking id=%d, status=%s, deposit=%.2f",
		result.ID, result.Status, result.DepositAmount)

	return toResponse(result, price), nil
}

// classifyTxError оставляет ошибки usecase как есть, ошибки транзакции считает внутренними
func (uc *UseCase) classifyTxError(err error) error {
	switch {
	case errors.Is(err, ErrSlotNotAvailable),
		errors.Is(err, ErrServiceNotFound),
		errors.Is(err, ErrInternal):
		return err
	default:
		uc.logger.Error("CreateBooking: transaction failed: %v", err)
		return fmt.Errorf("%w: transaction failed: %v", ErrInternal, err)
	}
}

// checkStaffAccess проверяет право сотрудника, при ошибке проверки доступ запрещается
func (uc *UseCase) checkStaffAccess(ctx context.Context, userID, businessID int64) error {
	allowed, err := uc.authorizer.CanPerform(ctx, userID, domain.ActionBookingCreate, businessID)
	if err != nil {
		uc.logger.Error("CreateBooking: permission check failed for user=%d: %v", userID, err)
		return fmt.Errorf("%w: permission check failed: %v", ErrForbidden, err)
	}
	if !allowed {
		uc.logger.Warn("CreateBooking: user=%d has no access to business=%d", userID, businessID)
		return ErrForbidden
	}
	return nil
}

func toResponse(b *domain.Booking, price float64) *Response {
	return &Response{
		ID:              b.ID,
		BusinessID:      b.BusinessID,
		ServiceID:       b.ServiceID,
		BookingDate:     b.BookingDate,
		StartTime:       b.StartTime,
		DurationMinutes: b.DurationMinutes,
		Quantity:        b.Quantity,
		Status:          b.Status,
		PaymentStatus:   b.PaymentStatus,
		AssignedUserID:  b.AssignedUserID,
		ClientName:      b.ClientName,
		ClientEmail:     b.ClientEmail,
		ClientPhone:     b.ClientPhone,
		Notes:           b.Notes,
		DepositAmount:   b.DepositAmount,
		TotalPrice:      price * float64(b.Quantity),
		CreatedBy:       b.CreatedBy,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}
