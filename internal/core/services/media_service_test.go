package services

import (
	"bytes"
	"context"
	"io"
	"testing"

	"coursecast/internal/core/domain"
	"coursecast/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type MockCatalogRepository struct {
	mock.Mock
}

func (m *MockCatalogRepository) FindOwner(ctx context.Context, filename string, kind domain.AssetKind) (*domain.MediaAsset, error) {
	args := m.Called(ctx, filename, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MediaAsset), args.Error(1)
}

func (m *MockCatalogRepository) Register(ctx context.Context, filename string, asset *domain.MediaAsset) error {
	args := m.Called(ctx, filename, asset)
	return args.Error(0)
}

type MockEntitlementService struct {
	mock.Mock
}

func (m *MockEntitlementService) Authorize(ctx context.Context, identity domain.Identity, courseID domain.CourseID) (domain.AccessDecision, error) {
	args := m.Called(ctx, identity, courseID)
	return args.Get(0).(domain.AccessDecision), args.Error(1)
}

type MockBlobStore struct {
	mock.Mock
}

func (m *MockBlobStore) Open(ctx context.Context, storageKey string) (io.ReadSeekCloser, int64, error) {
	args := m.Called(ctx, storageKey)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).(io.ReadSeekCloser), args.Get(1).(int64), args.Error(2)
}

type fakeBlob struct {
	*bytes.Reader
}

func (fakeBlob) Close() error { return nil }

func newFakeBlob(size int) fakeBlob {
	return fakeBlob{Reader: bytes.NewReader(make([]byte, size))}
}

func newMediaServiceForTest(t *testing.T, catalog *MockCatalogRepository, ents *MockEntitlementService, blobs *MockBlobStore) ports.MediaService {
	t.Helper()
	return NewMediaService(catalog, ents, blobs, zaptest.NewLogger(t).Sugar())
}

var entitledUser = domain.Identity{UserID: "user-1", Role: domain.RoleUser}

func TestMediaService_OpensEntitledStream(t *testing.T) {
	catalog := new(MockCatalogRepository)
	ents := new(MockEntitlementService)
	blobs := new(MockBlobStore)

	asset := &domain.MediaAsset{OwnerCourseID: "course-1", StorageKey: "videos/movie.mp4", Kind: domain.KindVideo}
	catalog.On("FindOwner", mock.Anything, "movie.mp4", domain.KindVideo).Return(asset, nil)
	ents.On("Authorize", mock.Anything, entitledUser, domain.CourseID("course-1")).Return(domain.Allow(), nil)
	blobs.On("Open", mock.Anything, "videos/movie.mp4").Return(newFakeBlob(2000), int64(2000), nil)

	svc := newMediaServiceForTest(t, catalog, ents, blobs)
	stream, err := svc.OpenStream(context.Background(), entitledUser, "movie.mp4", domain.KindVideo)
	require.NoError(t, err)
	defer stream.Blob.Close()

	assert.Equal(t, int64(2000), stream.Size)
	assert.Equal(t, "video/mp4", stream.ContentType)
	assert.Equal(t, asset.OwnerCourseID, stream.Asset.OwnerCourseID)
}

func TestMediaService_UnknownFilenameIs404ForEveryone(t *testing.T) {
	for _, identity := range []domain.Identity{
		entitledUser,
		{UserID: "ops-1", Role: domain.RoleAdmin},
	} {
		catalog := new(MockCatalogRepository)
		ents := new(MockEntitlementService)
		blobs := new(MockBlobStore)

		catalog.On("FindOwner", mock.Anything, "unknown.mp4", domain.KindVideo).Return(nil, domain.ErrAssetNotFound)

		svc := newMediaServiceForTest(t, catalog, ents, blobs)
		_, err := svc.OpenStream(context.Background(), identity, "unknown.mp4", domain.KindVideo)
		assert.ErrorIs(t, err, domain.ErrAssetNotFound)

		// Existence is resolved first: authorization never ran.
		ents.AssertNotCalled(t, "Authorize", mock.Anything, mock.Anything, mock.Anything)
		blobs.AssertNotCalled(t, "Open", mock.Anything, mock.Anything)
	}
}

func TestMediaService_DeniedIdentityGetsNotEntitled(t *testing.T) {
	catalog := new(MockCatalogRepository)
	ents := new(MockEntitlementService)
	blobs := new(MockBlobStore)

	asset := &domain.MediaAsset{OwnerCourseID: "course-1", StorageKey: "resources/guide.pdf", Kind: domain.KindResource}
	catalog.On("FindOwner", mock.Anything, "guide.pdf", domain.KindResource).Return(asset, nil)
	ents.On("Authorize", mock.Anything, entitledUser, domain.CourseID("course-1")).Return(domain.Deny("not entitled"), nil)

	svc := newMediaServiceForTest(t, catalog, ents, blobs)
	_, err := svc.OpenStream(context.Background(), entitledUser, "guide.pdf", domain.KindResource)
	assert.ErrorIs(t, err, domain.ErrNotEntitled)

	// Denied requests never touch storage.
	blobs.AssertNotCalled(t, "Open", mock.Anything, mock.Anything)
}

func TestMediaService_MissingBlobSurfacesAsBlobMissing(t *testing.T) {
	catalog := new(MockCatalogRepository)
	ents := new(MockEntitlementService)
	blobs := new(MockBlobStore)

	asset := &domain.MediaAsset{OwnerCourseID: "course-1", StorageKey: "videos/gone.mp4", Kind: domain.KindVideo}
	catalog.On("FindOwner", mock.Anything, "gone.mp4", domain.KindVideo).Return(asset, nil)
	ents.On("Authorize", mock.Anything, entitledUser, domain.CourseID("course-1")).Return(domain.Allow(), nil)
	blobs.On("Open", mock.Anything, "videos/gone.mp4").Return(nil, int64(0), domain.ErrBlobMissing)

	svc := newMediaServiceForTest(t, catalog, ents, blobs)
	_, err := svc.OpenStream(context.Background(), entitledUser, "gone.mp4", domain.KindVideo)
	assert.ErrorIs(t, err, domain.ErrBlobMissing)
}

func TestMediaService_InvalidFilenameNeverReachesCatalog(t *testing.T) {
	catalog := new(MockCatalogRepository)
	ents := new(MockEntitlementService)
	blobs := new(MockBlobStore)

	svc := newMediaServiceForTest(t, catalog, ents, blobs)
	_, err := svc.OpenStream(context.Background(), entitledUser, "../etc/passwd", domain.KindResource)
	assert.ErrorIs(t, err, domain.ErrAssetNotFound)

	catalog.AssertNotCalled(t, "FindOwner", mock.Anything, mock.Anything, mock.Anything)
	blobs.AssertNotCalled(t, "Open", mock.Anything, mock.Anything)
}
