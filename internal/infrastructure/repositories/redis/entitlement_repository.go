package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"coursecast/internal/core/domain"
	"coursecast/internal/core/ports"

	"github.com/redis/go-redis/v9"
)

// RedisEntitlementRepository reads purchase grants from a Redis keyspace
// shared with the payment service. Grants for a user live in one hash
// keyed by course id.
type RedisEntitlementRepository struct {
	client *redis.Client
	prefix string
}

func NewRedisEntitlementRepository(client *redis.Client) ports.EntitlementRepository {
	return &RedisEntitlementRepository{
		client: client,
		prefix: "coursecast:entitlements:",
	}
}

func (r *RedisEntitlementRepository) userKey(userID domain.UserID) string {
	return r.prefix + string(userID)
}

func (r *RedisEntitlementRepository) Has(ctx context.Context, userID domain.UserID, courseID domain.CourseID) (bool, error) {
	owned, err := r.client.HExists(ctx, r.userKey(userID), string(courseID)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check entitlement in Redis: %w", err)
	}
	return owned, nil
}

func (r *RedisEntitlementRepository) Grant(ctx context.Context, ent *domain.Entitlement) error {
	data, err := json.Marshal(ent)
	if err != nil {
		return fmt.Errorf("failed to marshal entitlement: %w", err)
	}

	if err := r.client.HSet(ctx, r.userKey(ent.UserID), string(ent.CourseID), data).Err(); err != nil {
		return fmt.Errorf("failed to set entitlement in Redis: %w", err)
	}

	return nil
}
