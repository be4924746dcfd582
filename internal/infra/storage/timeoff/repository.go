package timeoff

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SchedulingService/pkg/psqlbuilder"
)

// Repository репозиторий окон недоступности и закрытых дат
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetUnavailabilityForDate получает окна недоступности бизнеса на дату
func (r *Repository) GetUnavailabilityForDate(ctx context.Context, businessID int64, date time.Time) ([]domain.Unavailability, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := unavailabilityQuery(businessID, date).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetUnavailabilityForDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetUnavailabilityForDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]domain.Unavailability, 0)
	for rows.Next() {
		var u domain.Unavailability
		if err := rows.Scan(
			&u.ID,
			&u.BusinessID,
			&u.Date,
			&u.StartTime,
			&u.EndTime,
			&u.AssignedUserID,
			&u.Reason,
		); err != nil {
			return nil, fmt.Errorf("%w: GetUnavailabilityForDate - scan row: %v", ErrScanRow, err)
		}
		result = append(result, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetUnavailabilityForDate - rows error: %v", ErrScanRow, err)
	}

	return result, nil
}

// GetBlockedDateRanges получает закрытые периоды бизнеса, покрывающие дату
func (r *Repository) GetBlockedDateRanges(ctx context.Context, businessID int64, date time.Time) ([]domain.BlockedDateRange, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := blockedQuery(businessID, date).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetBlockedDateRanges - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetBlockedDateRanges - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]domain.BlockedDateRange, 0)
	for rows.Next() {
		var b domain.BlockedDateRange
		if err := rows.Scan(&b.ID, &b.BusinessID, &b.StartDate, &b.EndDate, &b.Reason); err != nil {
			return nil, fmt.Errorf("%w: GetBlockedDateRanges - scan row: %v", ErrScanRow, err)
		}
		result = append(result, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetBlockedDateRanges - rows error: %v", ErrScanRow, err)
	}

	return result, nil
}

func unavailabilityQuery(businessID int64, date time.Time) squirrel.SelectBuilder {
	return psqlbuilder.Select("id", "business_id", "date", "start_time", "end_time", "assigned_user_id", "reason").
		From("unavailabilities").
		Where(squirrel.Eq{"business_id": businessID}).
		Where(squirrel.Eq{"date": date.Format(domain.DateFormat)}).
		OrderBy("start_time ASC")
}

func blockedQuery(businessID int64, date time.Time) squirrel.SelectBuilder {
	day := date.Format(domain.DateFormat)
	return psqlbuilder.Select("id", "business_id", "start_date", "end_date", "reason").
		From("blocked_date_ranges").
		Where(squirrel.Eq{"business_id": businessID}).
		Where(squirrel.LtOrEq{"start_date": day}).
		Where(squirrel.GtOrEq{"end_date": day})
}
