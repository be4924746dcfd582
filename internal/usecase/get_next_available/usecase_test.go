package get_next_available

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/logger"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"

	_ "time/tzdata"
)

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type fakeSettings struct {
	settings *domain.BusinessSettings
	err      error
}

func (f *fakeSettings) GetSettings(ctx context.Context, businessID int64) (*domain.BusinessSettings, error) {
	return f.settings, f.err
}

func TestExecute(t *testing.T) {
	now := time.Date(2026, 10, 13, 22, 15, 0, 0, time.UTC)
	uc := NewUseCase(&fakeSettings{settings: &domain.BusinessSettings{
		BusinessID:               1,
		Timezone:                 "Europe/Paris",
		MinimumBookingDelayHours: 24,
	}}, logger.Nop())
	uc.timeProvider = fixedTime{now: now}

	resp, err := uc.Execute(context.Background(), 1)
	require.NoError(t, err)

	// 2026-10-14 22:15 UTC = 2026-10-15 00:15 в Париже (CEST)
	assert.Equal(t, domain.DateTime{Date: "2026-10-15", Time: types.TimeString("00:15")}, resp.Next)
	assert.Equal(t, 24, resp.MinimumBookingDelayHours)
	assert.Equal(t, "Europe/Paris", resp.Timezone)
}

func TestExecute_Errors(t *testing.T) {
	uc := NewUseCase(&fakeSettings{err: errors.New("db down")}, logger.Nop())

	_, err := uc.Execute(context.Background(), 0)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), 1)
	assert.ErrorIs(t, err, ErrInternal)
}
