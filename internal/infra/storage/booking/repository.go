package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SchedulingService/pkg/psqlbuilder"
)

const tableName = "bookings"

var bookingColumns = []string{
	"id",
	"business_id",
	"service_id",
	"booking_date",
	"start_time",
	"duration_minutes",
	"quantity",
	"status",
	"payment_status",
	"assigned_user_id",
	"client_name",
	"client_email",
	"client_phone",
	"notes",
	"deposit_amount",
	"created_by",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование.
// Если в контексте передана активная транзакция, использует её.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableName).
		Columns(
			"business_id",
			"service_id",
			"booking_date",
			"start_time",
			"duration_minutes",
			"quantity",
			"status",
			"payment_status",
			"assigned_user_id",
			"client_name",
			"client_email",
			"client_phone",
			"notes",
			"deposit_amount",
			"created_by",
		).
		Values(
			booking.BusinessID,
			booking.ServiceID,
			booking.BookingDate.Format(domain.DateFormat),
			booking.StartTime,
			booking.DurationMinutes,
			booking.Quantity,
			booking.Status,
			booking.PaymentStatus,
			booking.AssignedUserID,
			booking.ClientName,
			booking.ClientEmail,
			booking.ClientPhone,
			booking.Notes,
			booking.DepositAmount,
			booking.CreatedBy,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From(tableName).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// GetForDate получает неотмененные бронирования бизнеса на дату.
// Внутри транзакции строки блокируются FOR UPDATE.
func (r *Repository) GetForDate(ctx context.Context, businessID int64, date time.Time) ([]domain.Booking, error) {
	query, args, err := forDateQuery(businessID, date, dbmetrics.IsInTransaction(ctx)).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetForDate - build select query: %v", ErrBuildQuery, err)
	}

	return r.query(ctx, "GetForDate", query, args)
}

// GetByBusinessWithFilter получает бронирования бизнеса с фильтрацией по периоду, статусу и сотруднику
func (r *Repository) GetByBusinessWithFilter(ctx context.Context, filter domain.BusinessBookingsFilter) ([]domain.Booking, error) {
	query, args, err := filterQuery(filter).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByBusinessWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	return r.query(ctx, "GetByBusinessWithFilter", query, args)
}

// UpdateStatus обновляет статус бронирования
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	return r.update(ctx, "UpdateStatus", psqlbuilder.Update(tableName).
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}), ErrBookingNotFound)
}

// UpdatePaymentStatus обновляет статус оплаты бронирования
func (r *Repository) UpdatePaymentStatus(ctx context.Context, id int64, status domain.PaymentStatus) error {
	return r.update(ctx, "UpdatePaymentStatus", psqlbuilder.Update(tableName).
		Set("payment_status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}), ErrBookingNotFound)
}

// Cancel отменяет бронирование, если оно еще в статусе pending или confirmed
func (r *Repository) Cancel(ctx context.Context, id int64) error {
	return r.update(ctx, "Cancel", psqlbuilder.Update(tableName).
		Set("status", domain.StatusCancelled).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": []string{string(domain.StatusPending), string(domain.StatusConfirmed)}}), ErrCannotCancel)
}

// LockDate берет advisory lock на пару (бизнес, дата) до конца текущей транзакции.
// Сериализует конкурентные создания бронирований на одну дату.
func (r *Repository) LockDate(ctx context.Context, businessID int64, date time.Time) error {
	if !dbmetrics.IsInTransaction(ctx) {
		return fmt.Errorf("%w: LockDate - no active transaction", ErrTransaction)
	}
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := lockQuery(businessID, date).ToSql()
	if err != nil {
		return fmt.Errorf("%w: LockDate - build query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: LockDate - execute: %v", ErrExecQuery, err)
	}
	return nil
}

func forDateQuery(businessID int64, date time.Time, forUpdate bool) squirrel.SelectBuilder {
	b := psqlbuilder.Select(bookingColumns...).
		From(tableName).
		Where(squirrel.Eq{"business_id": businessID}).
		Where(squirrel.Eq{"booking_date": date.Format(domain.DateFormat)}).
		Where(squirrel.NotEq{"status": string(domain.StatusCancelled)}).
		OrderBy("start_time ASC")
	if forUpdate {
		b = b.Suffix("FOR UPDATE")
	}
	return b
}

func filterQuery(filter domain.BusinessBookingsFilter) squirrel.SelectBuilder {
	b := psqlbuilder.Select(bookingColumns...).
		From(tableName).
		Where(squirrel.Eq{"business_id": filter.BusinessID})

	if filter.StartDate != nil {
		b = b.Where(squirrel.GtOrEq{"booking_date": filter.StartDate.Format(domain.DateFormat)})
	}
	if filter.EndDate != nil {
		b = b.Where(squirrel.LtOrEq{"booking_date": filter.EndDate.Format(domain.DateFormat)})
	}
	if filter.AssignedUserID != nil {
		b = b.Where(squirrel.Eq{"assigned_user_id": *filter.AssignedUserID})
	}

	if filter.Status != nil {
		b = b.Where(squirrel.Eq{"status": string(*filter.Status)})
	} else if !filter.IncludeCancelled {
		b = b.Where(squirrel.NotEq{"status": string(domain.StatusCancelled)})
	}

	return b.OrderBy("booking_date ASC", "start_time ASC")
}

func lockQuery(businessID int64, date time.Time) squirrel.SelectBuilder {
	key := fmt.Sprintf("bookings:%d:%s", businessID, date.Format(domain.DateFormat))
	return psqlbuilder.Select().Column(squirrel.Expr("pg_advisory_xact_lock(hashtextextended(?, 0))", key))
}

func (r *Repository) query(ctx context.Context, op, query string, args []interface{}) ([]domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	bookings := make([]domain.Booking, 0)
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %v", ErrScanRow, op, err)
		}
		bookings = append(bookings, *booking)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %v", ErrScanRow, op, err)
	}

	return bookings, nil
}

func (r *Repository) update(ctx context.Context, op string, builder squirrel.UpdateBuilder, notAffected error) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: %s - build update query: %v", ErrBuildQuery, op, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}
	if rowsAffected == 0 {
		return notAffected
	}

	return nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

// scanBooking сканирует строку в порядке bookingColumns
func scanBooking(row scanner) (*domain.Booking, error) {
	var booking domain.Booking
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&booking.ID,
		&booking.BusinessID,
		&booking.ServiceID,
		&booking.BookingDate,
		&booking.StartTime,
		&booking.DurationMinutes,
		&booking.Quantity,
		&booking.Status,
		&booking.PaymentStatus,
		&booking.AssignedUserID,
		&booking.ClientName,
		&booking.ClientEmail,
		&booking.ClientPhone,
		&booking.Notes,
		&booking.DepositAmount,
		&booking.CreatedBy,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}
