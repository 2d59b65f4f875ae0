package ports

import (
	"context"
	"io"

	"coursecast/internal/core/domain"
)

// MediaStream is an authorized, opened media asset ready for transfer.
// The caller owns Blob and must close it on every exit path.
type MediaStream struct {
	Asset       *domain.MediaAsset
	Blob        io.ReadSeekCloser
	Size        int64
	ContentType string
}

// MediaService runs the pre-stream pipeline: locate the asset, authorize
// the identity against its owning course, then open the backing blob.
// Lookup and authorization failures are fully resolved here, before any
// response byte is written.
type MediaService interface {
	OpenStream(ctx context.Context, identity domain.Identity, filename string, kind domain.AssetKind) (*MediaStream, error)
}

// EntitlementService decides whether an identity may access a course's
// assets. Admins bypass entitlement records.
type EntitlementService interface {
	Authorize(ctx context.Context, identity domain.Identity, courseID domain.CourseID) (domain.AccessDecision, error)
}
