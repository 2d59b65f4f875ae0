package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"coursecast/internal/core/domain"
	"coursecast/internal/core/ports"
	"coursecast/pkg/validation"

	"go.uber.org/zap"
)

// FilesystemBlobStore serves blobs from a directory tree rooted at a
// configured path. Storage keys are slash-separated relative paths; a
// key that fails validation can never escape the root.
type FilesystemBlobStore struct {
	root string
	log  *zap.SugaredLogger
}

func NewFilesystemBlobStore(root string, log *zap.SugaredLogger) (*FilesystemBlobStore, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve storage root %s: %w", root, err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("storage root %s is not accessible: %w", abs, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("storage root %s is not a directory", abs)
	}

	return &FilesystemBlobStore{root: abs, log: log}, nil
}

var _ ports.BlobStore = (*FilesystemBlobStore)(nil)

func (s *FilesystemBlobStore) Open(ctx context.Context, storageKey string) (io.ReadSeekCloser, int64, error) {
	if err := validation.ValidateStorageKey(storageKey); err != nil {
		return nil, 0, domain.ErrBlobMissing
	}

	path := filepath.Join(s.root, filepath.FromSlash(storageKey))

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, 0, domain.ErrBlobMissing
		}
		return nil, 0, fmt.Errorf("failed to open blob %s: %w", storageKey, err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, 0, fmt.Errorf("failed to stat blob %s: %w", storageKey, err)
	}
	if info.IsDir() {
		f.Close()
		return nil, 0, domain.ErrBlobMissing
	}

	return f, info.Size(), nil
}
