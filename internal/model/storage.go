package model

import (
	"context"
	"errors"
	"io"
)

// ErrObjectNotFound is returned by Storage.Download for a missing key.
var ErrObjectNotFound = errors.New("object not found")

// Storage is a blob store holding whole documents under string keys.
// Upload replaces the object atomically: readers see either the old
// or the new content, never a partial write.
type Storage interface {
	Upload(ctx context.Context, key string, reader io.Reader) error
	Download(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}
