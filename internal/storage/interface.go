package storage

import (
	"context"
	"io"
)

// Storage is the blob store holding uploaded document bytes and generated
// export files. Metadata lives in the repositories; only raw bytes pass
// through here.
type Storage interface {
	Download(ctx context.Context, key string) (io.ReadCloser, error)
	Upload(ctx context.Context, key string, data io.Reader) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}
