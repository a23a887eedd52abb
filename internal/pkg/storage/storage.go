package storage

import (
	"context"
	"errors"
	"io"
	"time"
)

var (
	ErrNotFound    = errors.New("file not found")
	ErrInvalidPath = errors.New("invalid file path")
)

// FileStorage is the blob store that holds report artifacts. Paths are
// slash separated keys such as "reports/csv/2025-06/<id>.csv".
type FileStorage interface {
	// Upload uploads a file and returns the file path/key
	Upload(ctx context.Context, file io.Reader, path string, contentType string) (string, error)

	// Download retrieves a file; ErrNotFound when it does not exist
	Download(ctx context.Context, path string) (io.ReadCloser, error)

	// Delete removes a file
	Delete(ctx context.Context, path string) error

	// GetURL generates a presigned/public URL
	GetURL(ctx context.Context, path string, expiry time.Duration) (string, error)

	// Exists checks if file exists
	Exists(ctx context.Context, path string) (bool, error)

	// Copy duplicates src to dst, replacing dst if present
	Copy(ctx context.Context, src, dst string) error
}

// ReadAll downloads path fully into memory.
func ReadAll(ctx context.Context, fs FileStorage, path string) ([]byte, error) {
	rc, err := fs.Download(ctx, path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}
