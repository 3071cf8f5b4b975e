package storage

import (
	"context"
	"io"
)

// Storage abstracts where uploaded car photos live. Paths are relative
// to the backend's root.
type Storage interface {
	Save(ctx context.Context, path string, content io.Reader) error
	Get(ctx context.Context, path string) (io.ReadCloser, error)
	Delete(ctx context.Context, path string) error
}
