package settings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	settingsRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/settings"
	"github.com/m04kA/SMC-SchedulingService/internal/service/settings/models"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
	"github.com/m04kA/SMC-SchedulingService/pkg/validation"
)

// Service сервис для работы с настройками бизнеса
type Service struct {
	settingsRepo SettingsRepository
	authorizer   Authorizer
	validator    *validation.Validator
	logger       Logger
}

// NewService создает новый экземпляр сервиса настроек
func NewService(settingsRepo SettingsRepository, authorizer Authorizer, logger Logger) *Service {
	return &Service{
		settingsRepo: settingsRepo,
		authorizer:   authorizer,
		validator:    validation.New(),
		logger:       logger,
	}
}

// Get получает настройки бизнеса, для бизнеса без настроек возвращает значения по умолчанию
func (s *Service) Get(ctx context.Context, businessID, userID int64) (*models.SettingsResponse, error) {
	s.logger.Info("Get: fetching settings for business=%d by user=%d", businessID, userID)

	if err := s.checkAccess(ctx, userID, domain.ActionSettingsRead, businessID); err != nil {
		return nil, err
	}

	settings, err := s.settingsRepo.GetByBusinessID(ctx, businessID)
	if err != nil {
		if errors.Is(err, settingsRepo.ErrSettingsNotFound) {
			s.logger.Info("Get: business=%d has no settings, returning defaults", businessID)
			return models.FromDomainSettings(domain.DefaultSettings(businessID), true), nil
		}
		s.logger.Error("Get: repository error for business=%d: %v", businessID, err)
		return nil, fmt.Errorf("%w: Get - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Get: successfully fetched settings id=%d", settings.ID)
	return models.FromDomainSettings(settings, false), nil
}

// Update полностью заменяет настройки бизнеса
func (s *Service) Update(ctx context.Context, req *models.UpdateSettingsRequest) (*models.SettingsResponse, error) {
	s.logger.Info("Update: updating settings for business=%d by user=%d", req.BusinessID, req.UserID)

	// 1. Валидируем входные данные
	if err := s.validate(req); err != nil {
		s.logger.Warn("Update: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем права доступа
	if err := s.checkAccess(ctx, req.UserID, domain.ActionSettingsUpdate, req.BusinessID); err != nil {
		return nil, err
	}

	// 3. Сохраняем
	saved, err := s.settingsRepo.Upsert(ctx, req.ToDomainSettings())
	if err != nil {
		s.logger.Error("Update: repository error for business=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: successfully saved settings id=%d for business=%d", saved.ID, req.BusinessID)
	return models.FromDomainSettings(saved, false), nil
}

// validate проверяет теги структуры и правила, которые тегами не выражаются
func (s *Service) validate(req *models.UpdateSettingsRequest) error {
	if req.BusinessID <= 0 {
		return fmt.Errorf("%w: businessID must be positive", ErrInvalidInput)
	}

	if err := s.validator.Struct(req); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	for key, day := range req.OpeningHours {
		for i, r := range day.Ranges {
			if !types.TimeString(r.Start).IsBefore(types.TimeString(r.End)) {
				return fmt.Errorf("%w: openingHours.%s.ranges[%d]: start must be before end", ErrInvalidInput, key, i)
			}
		}
		if day.Start != "" && day.End != "" && !types.TimeString(day.Start).IsBefore(types.TimeString(day.End)) {
			return fmt.Errorf("%w: openingHours.%s: start must be before end", ErrInvalidInput, key)
		}
	}

	if req.Deposit.Enabled {
		switch domain.DepositType(req.Deposit.Type) {
		case domain.DepositPercentage:
			if req.Deposit.Value > 100 {
				return fmt.Errorf("%w: deposit.value must be at most 100 for percentage deposits", ErrInvalidInput)
			}
		case domain.DepositFixed:
		default:
			return fmt.Errorf("%w: deposit.type is required when deposit is enabled", ErrInvalidInput)
		}
	}

	return nil
}

// checkAccess проверяет право сотрудника на действие в бизнесе.
// Недоступность сервиса прав приравнивается к отказу.
func (s *Service) checkAccess(ctx context.Context, userID int64, action string, businessID int64) error {
	allowed, err := s.authorizer.CanPerform(ctx, userID, action, businessID)
	if err != nil {
		s.logger.Error("checkAccess: permission check failed for user=%d, action=%s: %v", userID, action, err)
		return fmt.Errorf("%w: permission check failed: %v", ErrAccessDenied, err)
	}
	if !allowed {
		s.logger.Warn("checkAccess: user=%d is not allowed to %s in business=%d", userID, action, businessID)
		return ErrAccessDenied
	}
	return nil
}
