package dbmetrics

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOperation(t *testing.T) {
	tests := []struct {
		query string
		want  string
	}{
		{"SELECT id FROM bookings", "select"},
		{"  insert INTO bookings (id) VALUES ($1)", "insert"},
		{"UPDATE bookings SET status = $1", "update"},
		{"DELETE FROM bookings", "delete"},
		{"SELECT pg_advisory_xact_lock($1)", "select"},
		{"VACUUM", "other"},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			assert.Equal(t, tt.want, operation(tt.query))
		})
	}
}

func TestGetExecutor_FallsBackToDB(t *testing.T) {
	db := &DB{}
	assert.Same(t, db, GetExecutor(context.Background(), db))

	_, ok := TxFromContext(context.Background())
	assert.False(t, ok)
}
