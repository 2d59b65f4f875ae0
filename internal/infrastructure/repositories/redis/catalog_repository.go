package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"coursecast/internal/core/domain"
	"coursecast/internal/core/ports"

	"github.com/redis/go-redis/v9"
)

// RedisCatalogRepository reads the filename reverse index from a Redis
// keyspace shared with the course-content service, which writes entries
// when lessons and resources are authored.
type RedisCatalogRepository struct {
	client *redis.Client
	prefix string
}

func NewRedisCatalogRepository(client *redis.Client) ports.CatalogRepository {
	return &RedisCatalogRepository{
		client: client,
		prefix: "coursecast:catalog:",
	}
}

func (r *RedisCatalogRepository) assetKey(kind domain.AssetKind, filename string) string {
	return fmt.Sprintf("%s%s:%s", r.prefix, kind, filename)
}

func (r *RedisCatalogRepository) FindOwner(ctx context.Context, filename string, kind domain.AssetKind) (*domain.MediaAsset, error) {
	data, err := r.client.Get(ctx, r.assetKey(kind, filename)).Result()
	if err == redis.Nil {
		return nil, domain.ErrAssetNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get catalog entry from Redis: %w", err)
	}

	var asset domain.MediaAsset
	if err := json.Unmarshal([]byte(data), &asset); err != nil {
		return nil, fmt.Errorf("failed to unmarshal catalog entry: %w", err)
	}

	return &asset, nil
}

func (r *RedisCatalogRepository) Register(ctx context.Context, filename string, asset *domain.MediaAsset) error {
	data, err := json.Marshal(asset)
	if err != nil {
		return fmt.Errorf("failed to marshal catalog entry: %w", err)
	}

	if err := r.client.Set(ctx, r.assetKey(asset.Kind, filename), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to set catalog entry in Redis: %w", err)
	}

	return nil
}
