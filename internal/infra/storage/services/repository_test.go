package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectQuery(t *testing.T) {
	query, args, err := selectQuery(3, 11).ToSql()
	require.NoError(t, err)

	// squirrel сортирует ключи Eq
	assert.Contains(t, query, "FROM services WHERE business_id = $1 AND id = $2")
	assert.Equal(t, []interface{}{int64(3), int64(11)}, args)
}
