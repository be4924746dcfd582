package psqlbuilder

import (
	"testing"

	"github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelect_UsesDollarPlaceholders(t *testing.T) {
	query, args, err := Select("id", "time").
		From("bookings").
		Where(squirrel.Eq{"business_id": 7}).
		Where(squirrel.Eq{"booking_date": "2026-03-10"}).
		ToSql()

	require.NoError(t, err)
	assert.Equal(t, "SELECT id, time FROM bookings WHERE business_id = $1 AND booking_date = $2", query)
	assert.Equal(t, []interface{}{7, "2026-03-10"}, args)
}

func TestUpdate_UsesDollarPlaceholders(t *testing.T) {
	query, _, err := Update("bookings").Set("status", "cancelled").Where(squirrel.Eq{"id": 1}).ToSql()

	require.NoError(t, err)
	assert.Equal(t, "UPDATE bookings SET status = $1 WHERE id = $2", query)
}
