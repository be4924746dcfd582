package settings

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SchedulingService/pkg/psqlbuilder"
)

const tableName = "business_settings"

// Repository репозиторий настроек бизнеса
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория настроек
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByBusinessID получает настройки бизнеса
func (r *Repository) GetByBusinessID(ctx context.Context, businessID int64) (*domain.BusinessSettings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"business_id",
		"opening_hours",
		"buffer_minutes",
		"minimum_booking_delay_hours",
		"timezone",
		"deposit_enabled",
		"deposit_type",
		"deposit_value",
		"deposit_multiply_by_qty",
		"stripe_enabled",
		"brevo_enabled",
		"calendar_enabled",
		"created_at",
		"updated_at",
	).
		From(tableName).
		Where(squirrel.Eq{"business_id": businessID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByBusinessID - build select query: %v", ErrBuildQuery, err)
	}

	var s domain.BusinessSettings
	var hours []byte
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&s.ID,
		&s.BusinessID,
		&hours,
		&s.BufferMinutes,
		&s.MinimumBookingDelayHours,
		&s.Timezone,
		&s.Deposit.Enabled,
		&s.Deposit.Type,
		&s.Deposit.Value,
		&s.Deposit.MultiplyByQuantity,
		&s.StripeEnabled,
		&s.BrevoEnabled,
		&s.CalendarEnabled,
		&createdAt,
		&updatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSettingsNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByBusinessID - scan settings: %v", ErrScanRow, err)
	}

	if s.OpeningHours, err = decodeHours(hours); err != nil {
		return nil, fmt.Errorf("%w: GetByBusinessID - decode opening hours: %v", ErrScanRow, err)
	}
	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return &s, nil
}

// Upsert создает или полностью перезаписывает настройки бизнеса
func (r *Repository) Upsert(ctx context.Context, s *domain.BusinessSettings) (*domain.BusinessSettings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := upsertQuery(s)
	if err != nil {
		return nil, err
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&s.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute upsert: %v", ErrExecQuery, err)
	}

	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return s, nil
}

func upsertQuery(s *domain.BusinessSettings) (string, []interface{}, error) {
	hours, err := json.Marshal(s.OpeningHours)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrEncodeHours, err)
	}

	query, args, err := psqlbuilder.Insert(tableName).
		Columns(
			"business_id",
			"opening_hours",
			"buffer_minutes",
			"minimum_booking_delay_hours",
			"timezone",
			"deposit_enabled",
			"deposit_type",
			"deposit_value",
			"deposit_multiply_by_qty",
			"stripe_enabled",
			"brevo_enabled",
			"calendar_enabled",
		).
		Values(
			s.BusinessID,
			string(hours),
			s.BufferMinutes,
			s.MinimumBookingDelayHours,
			s.Timezone,
			s.Deposit.Enabled,
			string(s.Deposit.Type),
			s.Deposit.Value,
			s.Deposit.MultiplyByQuantity,
			s.StripeEnabled,
			s.BrevoEnabled,
			s.CalendarEnabled,
		).
		Suffix(`ON CONFLICT (business_id) DO UPDATE SET
			opening_hours = EXCLUDED.opening_hours,
			buffer_minutes = EXCLUDED.buffer_minutes,
			minimum_booking_delay_hours = EXCLUDED.minimum_booking_delay_hours,
			timezone = EXCLUDED.timezone,
			deposit_enabled = EXCLUDED.deposit_enabled,
			deposit_type = EXCLUDED.deposit_type,
			deposit_value = EXCLUDED.deposit_value,
			deposit_multiply_by_qty = EXCLUDED.deposit_multiply_by_qty,
			stripe_enabled = EXCLUDED.stripe_enabled,
			brevo_enabled = EXCLUDED.brevo_enabled,
			calendar_enabled = EXCLUDED.calendar_enabled,
			updated_at = NOW()
		RETURNING id, created_at, updated_at`).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: Upsert - build upsert query: %v", ErrBuildQuery, err)
	}
	return query, args, nil
}

// decodeHours разбирает JSONB расписания, NULL и пустое значение дают пустое расписание
func decodeHours(raw []byte) (domain.OpeningHours, error) {
	if len(raw) == 0 {
		return domain.OpeningHours{}, nil
	}
	hours := domain.OpeningHours{}
	if err := json.Unmarshal(raw, &hours); err != nil {
		return nil, err
	}
	return hours, nil
}
