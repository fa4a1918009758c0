package cache

import (
	"errors"
	"time"

	"github.com/bradfitz/gomemcache/memcache"

	harvesterrors "sjsage522/reviewworker/pkg/errors"
)

var _ CacheService = (*MemcacheService)(nil)

// MemcacheService implements CacheService using memcache
type MemcacheService struct {
	client *memcache.Client
}

// NewMemcacheService creates a new memcache service
func NewMemcacheService(serverAddr string) *MemcacheService {
	client := memcache.New(serverAddr)
	client.Timeout = 500 * time.Millisecond
	return &MemcacheService{client: client}
}

// Ping checks that every configured server answers
func (m *MemcacheService) Ping() error {
	if err := m.client.Ping(); err != nil {
		return harvesterrors.NewCache("memcache unreachable", err)
	}
	return nil
}

// Get retrieves a value from memcache
func (m *MemcacheService) Get(key string) ([]byte, error) {
	item, err := m.client.Get(key)
	if errors.Is(err, memcache.ErrCacheMiss) {
		return nil, ErrMiss
	}
	if err != nil {
		return nil, harvesterrors.NewCache("get "+key, err)
	}
	return item.Value, nil
}

// Set stores a value in memcache with an expiration time
func (m *MemcacheService) Set(key string, value []byte, expiration time.Duration) error {
	err := m.client.Set(&memcache.Item{
		Key:        key,
		Value:      value,
		Expiration: int32(expiration.Seconds()),
	})
	if err != nil {
		return harvesterrors.NewCache("set "+key, err)
	}
	return nil
}
