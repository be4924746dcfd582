package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

var date = time.Date(2026, 10, 13, 0, 0, 0, 0, time.UTC)

func TestForDateQuery(t *testing.T) {
	query, args, err := forDateQuery(7, date, false).ToSql()
	require.NoError(t, err)

	assert.Contains(t, query, "FROM bookings WHERE business_id = $1 AND booking_date = $2 AND status <> $3")
	assert.Contains(t, query, "ORDER BY start_time ASC")
	assert.NotContains(t, query, "FOR UPDATE")
	assert.Equal(t, []interface{}{int64(7), "2026-10-13", "cancelled"}, args)

	query, _, err = forDateQuery(7, date, true).ToSql()
	require.NoError(t, err)
	assert.Contains(t, query, "FOR UPDATE")
}

func TestFilterQuery(t *testing.T) {
	confirmed := domain.StatusConfirmed
	end := date.AddDate(0, 0, 6)
	member := int64(3)

	tests := []struct {
		name     string
		filter   domain.BusinessBookingsFilter
		contains []string
		absent   []string
		args     []interface{}
	}{
		{
			name:     "business only",
			filter:   domain.BusinessBookingsFilter{BusinessID: 1},
			contains: []string{"WHERE business_id = $1 AND status <> $2", "ORDER BY booking_date ASC, start_time ASC"},
			args:     []interface{}{int64(1), "cancelled"},
		},
		{
			name:     "including cancelled",
			filter:   domain.BusinessBookingsFilter{BusinessID: 1, IncludeCancelled: true},
			contains: []string{"WHERE business_id = $1 ORDER BY"},
			absent:   []string{"status <>", "status ="},
			args:     []interface{}{int64(1)},
		},
		{
			name: "period, member and status",
			filter: domain.BusinessBookingsFilter{
				BusinessID:     1,
				StartDate:      &date,
				EndDate:        &end,
				AssignedUserID: &member,
				Status:         &confirmed,
			},
			contains: []string{"booking_date >= $2", "booking_date <= $3", "assigned_user_id = $4", "status = $5"},
			args:     []interface{}{int64(1), "2026-10-13", "2026-10-19", int64(3), "confirmed"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args, err := filterQuery(tt.filter).ToSql()
			require.NoError(t, err)

			for _, c := range tt.contains {
				assert.Contains(t, query, c)
			}
			for _, a := range tt.absent {
				assert.NotContains(t, query, a)
			}
			assert.Equal(t, tt.args, args)
		})
	}
}

func TestLockQuery(t *testing.T) {
	query, args, err := lockQuery(42, date).ToSql()
	require.NoError(t, err)

	assert.Equal(t, "SELECT pg_advisory_xact_lock(hashtextextended($1, 0))", query)
	assert.Equal(t, []interface{}{"bookings:42:2026-10-13"}, args)
}
