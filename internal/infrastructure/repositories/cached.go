package repositories

import (
	"context"
	"fmt"
	"time"

	"coursecast/internal/core/domain"
	"coursecast/internal/core/ports"
	"coursecast/pkg/cache"
)

// CachedCatalogRepository memoizes successful owner lookups. Catalog
// entries change only when content is authored, so a short TTL keeps
// the hot path off Redis without risking stale access decisions for
// long. Misses are not cached.
type CachedCatalogRepository struct {
	base  ports.CatalogRepository
	cache *cache.Cache
	ttl   time.Duration
}

func NewCachedCatalogRepository(base ports.CatalogRepository, ttl time.Duration) ports.CatalogRepository {
	if ttl <= 0 {
		return base
	}
	return &CachedCatalogRepository{
		base:  base,
		cache: cache.New(ttl),
		ttl:   ttl,
	}
}

func catalogCacheKey(kind domain.AssetKind, filename string) string {
	return fmt.Sprintf("catalog:%s:%s", kind, filename)
}

func (r *CachedCatalogRepository) FindOwner(ctx context.Context, filename string, kind domain.AssetKind) (*domain.MediaAsset, error) {
	value, err := r.cache.GetOrSet(ctx, catalogCacheKey(kind, filename), func(ctx context.Context) (interface{}, error) {
		return r.base.FindOwner(ctx, filename, kind)
	}, r.ttl)
	if err != nil {
		return nil, err
	}
	return value.(*domain.MediaAsset), nil
}

func (r *CachedCatalogRepository) Register(ctx context.Context, filename string, asset *domain.MediaAsset) error {
	if err := r.base.Register(ctx, filename, asset); err != nil {
		return err
	}
	r.cache.Invalidate(catalogCacheKey(asset.Kind, filename))
	return nil
}
