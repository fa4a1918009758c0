package store

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Requires a reachable MySQL; set TEST_MYSQL_DSN (e.g. root:root@tcp(localhost:3306)/reviews_test)
func TestMySQLInsertIfNew(t *testing.T) {
	dsn := os.Getenv("TEST_MYSQL_DSN")
	if dsn == "" {
		t.Skip("TEST_MYSQL_DSN not set, skipping MySQL test")
	}
	ctx := context.Background()

	s, err := Open(ctx, "mysql", dsn)
	require.NoError(t, err)
	defer s.Close()
	require.NoError(t, s.EnsureSchema(ctx))

	_, err = s.db.ExecContext(ctx, "DELETE FROM reviews")
	require.NoError(t, err)

	published := time.Date(2024, 3, 5, 10, 15, 30, 0, time.UTC)
	r := newReview("Super", "Rapide", &published, 5)

	inserted, err := s.InsertIfNew(ctx, r)
	require.NoError(t, err)
	assert.True(t, inserted)

	inserted, err = s.InsertIfNew(ctx, r)
	require.NoError(t, err)
	assert.False(t, inserted)

	undated := newReview("Sans date", "Rien", nil, 2)
	for i := 0; i < 2; i++ {
		_, err = s.InsertIfNew(ctx, undated)
		require.NoError(t, err)
	}

	rep, err := s.Report(ctx, time.Time{}, time.Time{})
	require.NoError(t, err)
	assert.Equal(t, 2, rep.Total)
	assert.InDelta(t, 3.5, rep.AverageRating, 0.0001)
}
