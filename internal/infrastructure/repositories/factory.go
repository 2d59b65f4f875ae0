package repositories

import (
	"context"

	"coursecast/internal/core/ports"
	"coursecast/internal/infrastructure/repositories/memory"
	redisrepo "coursecast/internal/infrastructure/repositories/redis"
	"coursecast/pkg/config"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RepositoryFactory creates catalog and entitlement repositories backed
// by Redis when it is enabled and reachable, and by memory otherwise.
type RepositoryFactory struct {
	useRedis    bool
	redisClient *redis.Client
	cfg         *config.Config
	logger      *zap.SugaredLogger
}

// NewRepositoryFactory creates a new repository factory
func NewRepositoryFactory(cfg *config.Config, logger *zap.SugaredLogger) (*RepositoryFactory, error) {
	factory := &RepositoryFactory{
		useRedis: cfg.Redis.Enabled,
		cfg:      cfg,
		logger:   logger,
	}

	if cfg.Redis.Enabled {
		client, err := redisrepo.NewRedisClient(
			cfg.Redis.Address,
			cfg.Redis.Password,
			cfg.Redis.DB,
			cfg.Redis.PoolSize,
			logger,
		)
		if err != nil {
			logger.Warnw("failed to connect to Redis, falling back to memory repositories",
				"error", err,
			)
			factory.useRedis = false
		} else {
			factory.redisClient = client
			logger.Info("using Redis repositories")
		}
	}

	if !factory.useRedis {
		logger.Info("using memory repositories")
	}

	return factory, nil
}

// CreateCatalogRepository creates the catalog reverse index, wrapped in
// a TTL cache when catalog.cache_ttl > 0.
func (f *RepositoryFactory) CreateCatalogRepository() ports.CatalogRepository {
	var base ports.CatalogRepository
	if f.useRedis && f.redisClient != nil {
		base = redisrepo.NewRedisCatalogRepository(f.redisClient)
	} else {
		base = memory.NewMemoryCatalogRepository()
	}
	return NewCachedCatalogRepository(base, f.cfg.Catalog.CacheTTL)
}

// CreateEntitlementRepository creates the entitlement store. Lookups are
// deliberately uncached: a purchase must take effect immediately.
func (f *RepositoryFactory) CreateEntitlementRepository() ports.EntitlementRepository {
	if f.useRedis && f.redisClient != nil {
		return redisrepo.NewRedisEntitlementRepository(f.redisClient)
	}
	return memory.NewMemoryEntitlementRepository()
}

// Close closes Redis connection if used
func (f *RepositoryFactory) Close() error {
	if f.redisClient != nil {
		return redisrepo.CloseRedisClient(f.redisClient)
	}
	return nil
}

// HealthCheck checks Redis connection health
func (f *RepositoryFactory) HealthCheck(ctx context.Context) error {
	if f.useRedis && f.redisClient != nil {
		return f.redisClient.Ping(ctx).Err()
	}
	return nil
}
