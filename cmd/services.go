package cmd

import (
	"context"

	"sjsage522/reviewworker/config"
	"sjsage522/reviewworker/logger"
	"sjsage522/reviewworker/services/cache"
	"sjsage522/reviewworker/services/publisher"
	"sjsage522/reviewworker/services/store"
)

// Services holds all the initialized services
type Services struct {
	Cache     cache.CacheService
	Publisher publisher.Publisher
	Store     *store.SQLStore
}

// Cleanup closes every open connection
func (s *Services) Cleanup() {
	if s.Publisher != nil {
		if err := s.Publisher.Close(); err != nil {
			logger.LogError("publisher", err, "close failed")
		}
	}
	if s.Store != nil {
		if err := s.Store.Close(); err != nil {
			logger.LogError("store", err, "close failed")
		}
	}
}

// initializeServices opens the store and the optional cache and record stream.
// The store is required; cache and stream are skipped when unconfigured or
// unreachable.
func initializeServices(ctx context.Context, cfg *config.Config, withPublisher bool) (*Services, error) {
	services := &Services{}

	st, err := store.Open(ctx, cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		return nil, err
	}
	if err := st.EnsureSchema(ctx); err != nil {
		st.Close()
		return nil, err
	}
	services.Store = st
	logger.ForStore().Info().Str("driver", cfg.DBDriver).Msg("Store ready")

	if cfg.MemcacheAddr != "" {
		mc := cache.NewMemcacheService(cfg.MemcacheAddr)
		if err := mc.Ping(); err != nil {
			logger.ForCache().Warn().Err(err).Msg("Memcache unavailable, rate-limit marker disabled")
		} else {
			services.Cache = mc
			logger.Info("Connected to Memcache at %s", cfg.MemcacheAddr)
		}
	}

	if withPublisher && cfg.RedisAddr != "" {
		redisPublisher := publisher.NewRedisPublisher(
			ctx,
			cfg.RedisAddr,
			cfg.RedisDB,
			cfg.RedisStream,
			cfg.RedisStreamCount,
			cfg.RedisStreamMaxLength,
		)
		if err := redisPublisher.Ping(); err != nil {
			redisPublisher.Close()
			logger.ForPublisher().Warn().Err(err).Msg("Redis unavailable, record stream disabled")
		} else {
			services.Publisher = redisPublisher
			logger.Info("Connected to Redis at %s (DB: %d, Stream: %s)",
				cfg.RedisAddr, cfg.RedisDB, cfg.RedisStream)
		}
	}

	return services, nil
}
