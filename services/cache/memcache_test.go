package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// This test requires a running memcached instance
// If memcached is not available, the test will be skipped
func TestMemcacheService(t *testing.T) {
	mc := NewMemcacheService("localhost:11211")
	if err := mc.Ping(); err != nil {
		t.Skip("Memcached is not available, skipping test")
	}

	err := mc.Set("reviews_rate_limited_test", []byte("500"), 2*time.Second)
	require.NoError(t, err)

	value, err := mc.Get("reviews_rate_limited_test")
	assert.NoError(t, err)
	assert.Equal(t, "500", string(value))

	_, err = mc.Get("reviews_rate_limited_test_absent")
	assert.ErrorIs(t, err, ErrMiss)

	// The marker expires on its own
	time.Sleep(3 * time.Second)
	_, err = mc.Get("reviews_rate_limited_test")
	assert.ErrorIs(t, err, ErrMiss)
}

func TestMemcacheServiceUnreachable(t *testing.T) {
	mc := NewMemcacheService("127.0.0.1:1")

	_, err := mc.Get("any")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrMiss)
	assert.Contains(t, err.Error(), "[cache]")
}
