package repositories

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"coursecast/internal/core/domain"
	"coursecast/internal/core/ports"
	"coursecast/internal/infrastructure/repositories/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingCatalog wraps a real repository and counts FindOwner calls so
// tests can observe whether the cache absorbed a lookup.
type countingCatalog struct {
	base  ports.CatalogRepository
	finds atomic.Int64
}

func (c *countingCatalog) FindOwner(ctx context.Context, filename string, kind domain.AssetKind) (*domain.MediaAsset, error) {
	c.finds.Add(1)
	return c.base.FindOwner(ctx, filename, kind)
}

func (c *countingCatalog) Register(ctx context.Context, filename string, asset *domain.MediaAsset) error {
	return c.base.Register(ctx, filename, asset)
}

func TestCachedCatalogRepository_MemoizesHits(t *testing.T) {
	ctx := context.Background()
	counting := &countingCatalog{base: memory.NewMemoryCatalogRepository()}
	cached := NewCachedCatalogRepository(counting, time.Minute)

	asset := &domain.MediaAsset{OwnerCourseID: "course-1", StorageKey: "movie.mp4", Kind: domain.KindVideo}
	require.NoError(t, cached.Register(ctx, "movie.mp4", asset))

	for i := 0; i < 3; i++ {
		got, err := cached.FindOwner(ctx, "movie.mp4", domain.KindVideo)
		require.NoError(t, err)
		assert.Equal(t, domain.CourseID("course-1"), got.OwnerCourseID)
	}

	assert.Equal(t, int64(1), counting.finds.Load())
}

func TestCachedCatalogRepository_MissesAreNotCached(t *testing.T) {
	ctx := context.Background()
	counting := &countingCatalog{base: memory.NewMemoryCatalogRepository()}
	cached := NewCachedCatalogRepository(counting, time.Minute)

	_, err := cached.FindOwner(ctx, "unknown.mp4", domain.KindVideo)
	assert.ErrorIs(t, err, domain.ErrAssetNotFound)

	_, err = cached.FindOwner(ctx, "unknown.mp4", domain.KindVideo)
	assert.ErrorIs(t, err, domain.ErrAssetNotFound)

	assert.Equal(t, int64(2), counting.finds.Load())
}

func TestCachedCatalogRepository_RegisterInvalidatesEntry(t *testing.T) {
	ctx := context.Background()
	counting := &countingCatalog{base: memory.NewMemoryCatalogRepository()}
	cached := NewCachedCatalogRepository(counting, time.Minute)

	first := &domain.MediaAsset{OwnerCourseID: "course-1", StorageKey: "movie.mp4", Kind: domain.KindVideo}
	require.NoError(t, cached.Register(ctx, "movie.mp4", first))

	_, err := cached.FindOwner(ctx, "movie.mp4", domain.KindVideo)
	require.NoError(t, err)

	moved := &domain.MediaAsset{OwnerCourseID: "course-2", StorageKey: "v2/movie.mp4", Kind: domain.KindVideo}
	require.NoError(t, cached.Register(ctx, "movie.mp4", moved))

	got, err := cached.FindOwner(ctx, "movie.mp4", domain.KindVideo)
	require.NoError(t, err)
	assert.Equal(t, domain.CourseID("course-2"), got.OwnerCourseID)
}

func TestNewCachedCatalogRepository_ZeroTTLDisablesCaching(t *testing.T) {
	base := memory.NewMemoryCatalogRepository()
	assert.Equal(t, ports.CatalogRepository(base), NewCachedCatalogRepository(base, 0))
}
