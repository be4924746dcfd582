package availability

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

func TestRangesFor(t *testing.T) {
	tests := []struct {
		name     string
		schedule domain.OpeningHours
		want     []domain.TimeRange
	}{
		{
			name:     "missing weekday",
			schedule: domain.OpeningHours{"monday": day("09:00", "18:00")},
			want:     nil,
		},
		{
			name:     "closed day",
			schedule: domain.OpeningHours{"tuesday": {Closed: true, Ranges: []domain.TimeRange{{Start: "09:00", End: "18:00"}}}},
			want:     nil,
		},
		{
			name:     "explicitly empty ranges",
			schedule: domain.OpeningHours{"tuesday": day()},
			want:     []domain.TimeRange{},
		},
		{
			name:     "legacy start and end",
			schedule: domain.OpeningHours{"tuesday": {Start: "10:00", End: "12:00"}},
			want:     []domain.TimeRange{{Start: "10:00", End: "12:00"}},
		},
		{
			name:     "legacy entry without end",
			schedule: domain.OpeningHours{"tuesday": {Start: "10:00"}},
			want:     nil,
		},
		{
			name:     "ranges take precedence over legacy fields",
			schedule: domain.OpeningHours{"tuesday": {Ranges: []domain.TimeRange{{Start: "13:00", End: "14:00"}}, Start: "10:00", End: "12:00"}},
			want:     []domain.TimeRange{{Start: "13:00", End: "14:00"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RangesFor(tt.schedule, tuesday)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRangesFor_EmptyRangesSurviveJSON(t *testing.T) {
	stored := domain.OpeningHours{
		"tuesday": {Ranges: []domain.TimeRange{}, Start: "09:00", End: "18:00"},
	}

	raw, err := json.Marshal(stored)
	require.NoError(t, err)

	var loaded domain.OpeningHours
	require.NoError(t, json.Unmarshal(raw, &loaded))

	assert.Empty(t, RangesFor(loaded, tuesday))
}

func TestApplicableHours(t *testing.T) {
	settings := newSettings(domain.OpeningHours{"tuesday": day("09:00", "18:00")})

	t.Run("business hours when service has none", func(t *testing.T) {
		got := ApplicableHours(newService(1, 60, 1), settings)
		assert.Equal(t, settings.OpeningHours, got)
	})

	t.Run("service override", func(t *testing.T) {
		svc := newService(1, 60, 1)
		svc.AvailabilityHours = domain.OpeningHours{"tuesday": day("12:00", "13:00")}

		got := ApplicableHours(svc, settings)
		require.Contains(t, got, "tuesday")
		assert.Equal(t, types.TimeString("12:00"), got["tuesday"].Ranges[0].Start)
	})

	t.Run("nil settings", func(t *testing.T) {
		assert.Nil(t, ApplicableHours(newService(1, 60, 1), nil))
	})
}
