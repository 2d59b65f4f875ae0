package memory

import (
	"context"
	"sync"

	"coursecast/internal/core/domain"
	"coursecast/internal/core/ports"
)

type entitlementKey struct {
	userID   domain.UserID
	courseID domain.CourseID
}

// MemoryEntitlementRepository holds entitlement grants in process.
type MemoryEntitlementRepository struct {
	grants map[entitlementKey]*domain.Entitlement
	mu     sync.RWMutex
}

func NewMemoryEntitlementRepository() *MemoryEntitlementRepository {
	return &MemoryEntitlementRepository{
		grants: make(map[entitlementKey]*domain.Entitlement),
	}
}

var _ ports.EntitlementRepository = (*MemoryEntitlementRepository)(nil)

func (r *MemoryEntitlementRepository) Has(ctx context.Context, userID domain.UserID, courseID domain.CourseID) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, exists := r.grants[entitlementKey{userID: userID, courseID: courseID}]
	return exists, nil
}

func (r *MemoryEntitlementRepository) Grant(ctx context.Context, ent *domain.Entitlement) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cp := *ent
	r.grants[entitlementKey{userID: ent.UserID, courseID: ent.CourseID}] = &cp
	return nil
}
