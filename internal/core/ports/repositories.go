package ports

import (
	"context"
	"io"

	"coursecast/internal/core/domain"
)

// CatalogRepository is the read side of the content catalog: a reverse
// index from a public filename to its owning course. Register exists so
// the seeder (and the course-content service, which shares the Redis
// keyspace) can populate the index.
type CatalogRepository interface {
	FindOwner(ctx context.Context, filename string, kind domain.AssetKind) (*domain.MediaAsset, error)
	Register(ctx context.Context, filename string, asset *domain.MediaAsset) error
}

// EntitlementRepository answers whether a user owns a course. Grants are
// written by the payment service; Grant is exposed for seeding and tests.
type EntitlementRepository interface {
	Has(ctx context.Context, userID domain.UserID, courseID domain.CourseID) (bool, error)
	Grant(ctx context.Context, ent *domain.Entitlement) error
}

// BlobStore opens the raw bytes behind a storage key. Open returns
// domain.ErrBlobMissing when the catalog points at a key that no longer
// exists in storage.
type BlobStore interface {
	Open(ctx context.Context, storageKey string) (io.ReadSeekCloser, int64, error)
}
