package memory

import (
	"context"
	"sync"

	"coursecast/internal/core/domain"
	"coursecast/internal/core/ports"
)

type catalogKey struct {
	kind     domain.AssetKind
	filename string
}

// MemoryCatalogRepository is an in-process reverse index from
// (kind, filename) to the owning course. Used standalone in dev mode
// and as the fallback when Redis is unavailable.
type MemoryCatalogRepository struct {
	assets map[catalogKey]*domain.MediaAsset
	mu     sync.RWMutex
}

func NewMemoryCatalogRepository() *MemoryCatalogRepository {
	return &MemoryCatalogRepository{
		assets: make(map[catalogKey]*domain.MediaAsset),
	}
}

var _ ports.CatalogRepository = (*MemoryCatalogRepository)(nil)

func (r *MemoryCatalogRepository) FindOwner(ctx context.Context, filename string, kind domain.AssetKind) (*domain.MediaAsset, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	asset, exists := r.assets[catalogKey{kind: kind, filename: filename}]
	if !exists {
		return nil, domain.ErrAssetNotFound
	}

	cp := *asset
	return &cp, nil
}

func (r *MemoryCatalogRepository) Register(ctx context.Context, filename string, asset *domain.MediaAsset) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cp := *asset
	r.assets[catalogKey{kind: asset.Kind, filename: filename}] = &cp
	return nil
}
