package schedule

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	servicesRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/services"
	settingsRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/settings"
	"github.com/m04kA/SMC-SchedulingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SchedulingService/pkg/logger"
)

var errDB = errors.New("connection refused")

type fakeRepos struct {
	mu sync.Mutex

	service     *domain.Service
	serviceErr  error
	settings    *domain.BusinessSettings
	settingsErr error
	bookings    []domain.Booking
	bookingsErr error
	unavail     []domain.Unavailability
	unavailErr  error
	blocked     []domain.BlockedDateRange
	blockedErr  error

	calls []string
}

func (f *fakeRepos) record(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, name)
}

func (f *fakeRepos) GetByID(ctx context.Context, businessID, serviceID int64) (*domain.Service, error) {
	f.record("service")
	return f.service, f.serviceErr
}

func (f *fakeRepos) GetByBusinessID(ctx context.Context, businessID int64) (*domain.BusinessSettings, error) {
	f.record("settings")
	return f.settings, f.settingsErr
}

func (f *fakeRepos) GetForDate(ctx context.Context, businessID int64, date time.Time) ([]domain.Booking, error) {
	f.record("bookings")
	return f.bookings, f.bookingsErr
}

func (f *fakeRepos) GetUnavailabilityForDate(ctx context.Context, businessID int64, date time.Time) ([]domain.Unavailability, error) {
	f.record("unavailabilities")
	return f.unavail, f.unavailErr
}

func (f *fakeRepos) GetBlockedDateRanges(ctx context.Context, businessID int64, date time.Time) ([]domain.BlockedDateRange, error) {
	f.record("blocked")
	return f.blocked, f.blockedErr
}

func newFakeRepos() *fakeRepos {
	return &fakeRepos{
		service:  &domain.Service{ID: 7, BusinessID: 1, DurationMinutes: 60, Capacity: 1, IsActive: true},
		settings: &domain.BusinessSettings{BusinessID: 1, Timezone: "UTC"},
		bookings: []domain.Booking{{ID: 1, ServiceID: 7, StartTime: "10:00", DurationMinutes: 60, Quantity: 1}},
		unavail:  []domain.Unavailability{{ID: 2, StartTime: "12:00", EndTime: "13:00"}},
		blocked:  []domain.BlockedDateRange{{ID: 3}},
	}
}

func newTestService(f *fakeRepos) *Service {
	return NewService(f, f, f, f, time.Second, logger.Nop())
}

var testDate = time.Date(2026, 10, 13, 0, 0, 0, 0, time.UTC)

func TestLoad_Success(t *testing.T) {
	f := newFakeRepos()
	svc := newTestService(f)

	snap, err := svc.Load(context.Background(), Query{BusinessID: 1, ServiceID: 7, Date: testDate, Policy: PolicyStrict})
	require.NoError(t, err)

	assert.Equal(t, int64(7), snap.Service.ID)
	assert.Equal(t, int64(1), snap.Settings.BusinessID)
	assert.Len(t, snap.Bookings, 1)
	assert.Len(t, snap.Unavailabilities, 1)
	assert.Len(t, snap.BlockedRanges, 1)
	assert.Len(t, f.calls, 5)
}

func TestLoad_DefaultSettings(t *testing.T) {
	f := newFakeRepos()
	f.settings = nil
	f.settingsErr = settingsRepo.ErrSettingsNotFound
	svc := newTestService(f)

	snap, err := svc.Load(context.Background(), Query{BusinessID: 1, ServiceID: 7, Date: testDate})
	require.NoError(t, err)
	require.NotNil(t, snap.Settings)
	assert.Equal(t, domain.DefaultTimezone, snap.Settings.Timezone)
	assert.Equal(t, int64(1), snap.Settings.BusinessID)
}

func TestLoad_ServiceErrors(t *testing.T) {
	tests := []struct {
		name    string
		service *domain.Service
		err     error
		wantErr error
	}{
		{name: "not found", err: servicesRepo.ErrServiceNotFound, wantErr: ErrServiceNotFound},
		{name: "inactive", service: &domain.Service{ID: 7, DurationMinutes: 60}, wantErr: ErrServiceNotFound},
		{name: "database error", err: errDB, wantErr: ErrInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFakeRepos()
			f.service = tt.service
			f.serviceErr = tt.err
			svc := newTestService(f)

			_, err := svc.Load(context.Background(), Query{BusinessID: 1, ServiceID: 7, Date: testDate, Policy: PolicyDisplay})
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestLoad_DisplayPolicyTreatsListFailuresAsEmpty(t *testing.T) {
	f := newFakeRepos()
	f.bookings, f.bookingsErr = nil, errDB
	f.unavail, f.unavailErr = nil, errDB
	f.blocked, f.blockedErr = nil, errDB
	svc := newTestService(f)

	snap, err := svc.Load(context.Background(), Query{BusinessID: 1, ServiceID: 7, Date: testDate, Policy: PolicyDisplay})
	require.NoError(t, err)
	assert.Empty(t, snap.Bookings)
	assert.Empty(t, snap.Unavailabilities)
	assert.Empty(t, snap.BlockedRanges)
	assert.NotNil(t, snap.Service)
}

func TestLoad_StrictPolicyFailsClosed(t *testing.T) {
	for _, name := range []string{"bookings", "unavailabilities", "blocked"} {
		t.Run(name, func(t *testing.T) {
			f := newFakeRepos()
			switch name {
			case "bookings":
				f.bookingsErr = errDB
			case "unavailabilities":
				f.unavailErr = errDB
			case "blocked":
				f.blockedErr = errDB
			}
			svc := newTestService(f)

			snap, err := svc.Load(context.Background(), Query{BusinessID: 1, ServiceID: 7, Date: testDate, Policy: PolicyStrict})
			assert.ErrorIs(t, err, ErrInternal)
			assert.Nil(t, snap.Service)
		})
	}
}

func TestLoad_SequentialInTransaction(t *testing.T) {
	f := newFakeRepos()
	svc := newTestService(f)

	// Транзакция нужна только как маркер в контексте, репозитории фейковые
	ctx := dbmetrics.WithTx(context.Background(), &sql.Tx{})

	_, err := svc.Load(ctx, Query{BusinessID: 1, ServiceID: 7, Date: testDate, Policy: PolicyStrict})
	require.NoError(t, err)
	assert.Equal(t, []string{"service", "settings", "bookings", "unavailabilities", "blocked"}, f.calls)
}

func TestLoad_SequentialStopsOnFirstError(t *testing.T) {
	f := newFakeRepos()
	f.serviceErr = servicesRepo.ErrServiceNotFound
	svc := newTestService(f)

	ctx := dbmetrics.WithTx(context.Background(), &sql.Tx{})

	_, err := svc.Load(ctx, Query{BusinessID: 1, ServiceID: 7, Date: testDate, Policy: PolicyStrict})
	assert.ErrorIs(t, err, ErrServiceNotFound)
	assert.Equal(t, []string{"service"}, f.calls)
}

func TestGetSettings(t *testing.T) {
	f := newFakeRepos()
	f.settingsErr = errDB
	svc := newTestService(f)

	_, err := svc.GetSettings(context.Background(), 1)
	assert.ErrorIs(t, err, ErrInternal)
}
