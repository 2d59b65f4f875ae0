package services

import (
	"context"

	"coursecast/internal/core/domain"
	"coursecast/internal/core/ports"

	"go.uber.org/zap"
)

type entitlementService struct {
	entitlements ports.EntitlementRepository
	log          *zap.SugaredLogger
}

// NewEntitlementService decides course access. Admins are allowed
// unconditionally; everyone else needs an entitlement record written by
// the payment service.
func NewEntitlementService(entitlements ports.EntitlementRepository, log *zap.SugaredLogger) ports.EntitlementService {
	return &entitlementService{
		entitlements: entitlements,
		log:          log,
	}
}

func (s *entitlementService) Authorize(ctx context.Context, identity domain.Identity, courseID domain.CourseID) (domain.AccessDecision, error) {
	// Anonymous callers are an authentication failure and must be
	// rejected before this step; treat reaching here without an
	// identity as a wiring bug, not a 403.
	if identity.UserID == "" {
		return domain.Deny("no identity"), domain.ErrNoIdentity
	}

	if identity.IsAdmin() {
		return domain.Allow(), nil
	}

	owned, err := s.entitlements.Has(ctx, identity.UserID, courseID)
	if err != nil {
		return domain.Deny("entitlement lookup failed"), err
	}
	if !owned {
		s.log.Debugw("access denied",
			"user_id", identity.UserID,
			"course_id", courseID,
		)
		return domain.Deny("not entitled"), nil
	}

	return domain.Allow(), nil
}
