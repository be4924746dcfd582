package schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/m04kA/SMC-SchedulingService/internal/availability"
	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	servicesRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/services"
	settingsRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/settings"
	"github.com/m04kA/SMC-SchedulingService/pkg/dbmetrics"
)

// Service собирает снимок данных, по которому движок считает доступность
type Service struct {
	serviceRepo  ServiceRepository
	settingsRepo SettingsRepository
	bookingRepo  BookingRepository
	timeOffRepo  TimeOffRepository
	fetchTimeout time.Duration
	logger       Logger
}

// NewService создает новый экземпляр сервиса
func NewService(
	serviceRepo ServiceRepository,
	settingsRepo SettingsRepository,
	bookingRepo BookingRepository,
	timeOffRepo TimeOffRepository,
	fetchTimeout time.Duration,
	logger Logger,
) *Service {
	return &Service{
		serviceRepo:  serviceRepo,
		settingsRepo: settingsRepo,
		bookingRepo:  bookingRepo,
		timeOffRepo:  timeOffRepo,
		fetchTimeout: fetchTimeout,
		logger:       logger,
	}
}

// GetSettings получает настройки бизнеса, при их отсутствии возвращает значения по умолчанию
func (s *Service) GetSettings(ctx context.Context, businessID int64) (*domain.BusinessSettings, error) {
	settings, err := s.settingsRepo.GetByBusinessID(ctx, businessID)
	if errors.Is(err, settingsRepo.ErrSettingsNotFound) {
		s.logger.Info("GetSettings: using default settings for business=%d", businessID)
		return domain.DefaultSettings(businessID), nil
	}
	if err != nil {
		s.logger.Error("GetSettings: failed to get settings for business=%d: %v", businessID, err)
		return nil, fmt.Errorf("%w: failed to get settings: %v", ErrInternal, err)
	}
	return settings, nil
}

// Load загружает услугу, настройки и списки на дату.
// Вне транзакции запросы выполняются параллельно, внутри транзакции последовательно.
func (s *Service) Load(ctx context.Context, q Query) (availability.Snapshot, error) {
	if s.fetchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.fetchTimeout)
		defer cancel()
	}

	var snap availability.Snapshot
	steps := []func(ctx context.Context) error{
		func(ctx context.Context) (err error) {
			snap.Service, err = s.getService(ctx, q)
			return err
		},
		func(ctx context.Context) (err error) {
			snap.Settings, err = s.GetSettings(ctx, q.BusinessID)
			return err
		},
		func(ctx context.Context) error {
			bookings, err := s.bookingRepo.GetForDate(ctx, q.BusinessID, q.Date)
			snap.Bookings = bookings
			return s.listResult(q, "bookings", err)
		},
		func(ctx context.Context) error {
			unavailabilities, err := s.timeOffRepo.GetUnavailabilityForDate(ctx, q.BusinessID, q.Date)
			snap.Unavailabilities = unavailabilities
			return s.listResult(q, "unavailabilities", err)
		},
		func(ctx context.Context) error {
			blocked, err := s.timeOffRepo.GetBlockedDateRanges(ctx, q.BusinessID, q.Date)
			snap.BlockedRanges = blocked
			return s.listResult(q, "blocked date ranges", err)
		},
	}

	if dbmetrics.IsInTransaction(ctx) {
		for _, step := range steps {
			if err := step(ctx); err != nil {
				return availability.Snapshot{}, err
			}
		}
		return snap, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, step := range steps {
		step := step
		g.Go(func() error { return step(gctx) })
	}
	if err := g.Wait(); err != nil {
		return availability.Snapshot{}, err
	}
	return snap, nil
}

func (s *Service) getService(ctx context.Context, q Query) (*domain.Service, error) {
	service, err := s.serviceRepo.GetByID(ctx, q.BusinessID, q.ServiceID)
	if errors.Is(err, servicesRepo.ErrServiceNotFound) {
		s.logger.Warn("Load: service id=%d not found in business=%d", q.ServiceID, q.BusinessID)
		return nil, ErrServiceNotFound
	}
	if err != nil {
		s.logger.Error("Load: failed to get service id=%d: %v", q.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	if !service.IsActive {
		s.logger.Warn("Load: service id=%d is inactive", q.ServiceID)
		return nil, ErrServiceNotFound
	}
	return service, nil
}

// listResult применяет политику к ошибке чтения списка
func (s *Service) listResult(q Query, what string, err error) error {
	if err == nil {
		return nil
	}
	if q.Policy == PolicyDisplay {
		s.logger.Warn("Load: failed to get %s for business=%d, date=%s, treating as empty: %v",
			what, q.BusinessID, q.Date.Format(domain.DateFormat), err)
		return nil
	}
	s.logger.Error("Load: failed to get %s for business=%d, date=%s: %v",
		what, q.BusinessID, q.Date.Format(domain.DateFormat), err)
	return fmt.Errorf("%w: failed to get %s: %v", ErrInternal, what, err)
}
