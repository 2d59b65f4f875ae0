package services

import (
	"context"
	"errors"

	"coursecast/internal/core/domain"
	"coursecast/internal/core/ports"
	"coursecast/pkg/tracing"
	"coursecast/pkg/validation"

	"go.uber.org/zap"
)

type mediaService struct {
	catalog      ports.CatalogRepository
	entitlements ports.EntitlementService
	blobs        ports.BlobStore
	log          *zap.SugaredLogger
}

// NewMediaService wires the pre-stream pipeline. The step order is
// fixed: locate, then authorize, then open. Unknown filenames 404 for
// every caller, admins included, and entitlement logic never runs
// against an asset that does not exist.
func NewMediaService(
	catalog ports.CatalogRepository,
	entitlements ports.EntitlementService,
	blobs ports.BlobStore,
	log *zap.SugaredLogger,
) ports.MediaService {
	return &mediaService{
		catalog:      catalog,
		entitlements: entitlements,
		blobs:        blobs,
		log:          log,
	}
}

func (s *mediaService) OpenStream(ctx context.Context, identity domain.Identity, filename string, kind domain.AssetKind) (*ports.MediaStream, error) {
	ctx, span := tracing.StartSpan(ctx, "media.open_stream")
	defer span.End()

	// Filenames failing validation can never match a catalog entry, so
	// they are indistinguishable from unknown assets to the client.
	if err := validation.ValidateFilename(filename); err != nil {
		return nil, domain.ErrAssetNotFound
	}

	asset, err := s.catalog.FindOwner(ctx, filename, kind)
	if err != nil {
		return nil, err
	}

	decision, err := s.entitlements.Authorize(ctx, identity, asset.OwnerCourseID)
	if err != nil {
		return nil, err
	}
	if !decision.Allowed {
		return nil, domain.ErrNotEntitled
	}

	blob, size, err := s.blobs.Open(ctx, asset.StorageKey)
	if err != nil {
		if errors.Is(err, domain.ErrBlobMissing) {
			// Data-integrity problem: the catalog references bytes that
			// are gone. The client sees a plain 404.
			s.log.Warnw("catalog entry points at missing blob",
				"storage_key", asset.StorageKey,
				"course_id", asset.OwnerCourseID,
				"filename", filename,
			)
		}
		return nil, err
	}

	return &ports.MediaStream{
		Asset:       asset,
		Blob:        blob,
		Size:        size,
		ContentType: domain.ContentTypeFor(kind, filename),
	}, nil
}
