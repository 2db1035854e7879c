package image

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// MaxFileSize caps a single upload at 5 MiB.
const MaxFileSize = 5 << 20

// MaxBatchSize caps one multi-upload request.
const MaxBatchSize = 10

var allowedMimeTypes = map[string]struct{}{
	"image/jpeg": {},
	"image/jpg":  {},
	"image/png":  {},
	"image/gif":  {},
}

// Service stores uploaded image files on disk and their metadata in the
// store. Files are renamed to a generated id so original names never reach
// the filesystem.
type Service struct {
	store Store
	dir   string
}

// NewService ensures the upload directory exists and returns a service
// writing into it.
func NewService(store Store, dir string) (*Service, error) {
	if dir == "" {
		dir = "uploads"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Service{store: store, dir: dir}, nil
}

// Upload validates and persists one file. On a store failure the file
// already written to disk is removed again.
func (s *Service) Upload(ctx context.Context, up Upload) (*Image, error) {
	if len(up.Data) == 0 {
		return nil, ErrEmptyFile
	}
	if len(up.Data) > MaxFileSize {
		return nil, fmt.Errorf("%w: maximum size is %d bytes", ErrTooLarge, MaxFileSize)
	}
	if _, ok := allowedMimeTypes[up.ContentType]; !ok {
		return nil, ErrUnsupportedType
	}

	id := uuid.NewString()
	filename := id + filepath.Ext(up.OriginalName)
	path := filepath.Join(s.dir, filename)

	if err := os.WriteFile(path, up.Data, 0o644); err != nil {
		return nil, fmt.Errorf("write file: %w", err)
	}

	img := &Image{
		ID:           id,
		Filename:     filename,
		OriginalName: up.OriginalName,
		Mimetype:     up.ContentType,
		Size:         int64(len(up.Data)),
		Path:         path,
	}
	if err := s.store.Create(ctx, img); err != nil {
		_ = os.Remove(path)
		return nil, err
	}
	return img, nil
}

// Find returns the record for a stored image.
func (s *Service) Find(ctx context.Context, id string) (*Image, error) {
	return s.store.Find(ctx, id)
}
