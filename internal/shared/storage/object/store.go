package object

import (
	"context"
	"io"
)

// Object describes a stored file and where it can be fetched from.
type Object struct {
	Key       string
	URL       string
	SizeBytes int64
	MimeType  string
}

// ObjectStore defines the contract for saving and retrieving binary objects.
type ObjectStore interface {
	Save(ctx context.Context, ownerID string, fileName string, r io.Reader) (Object, error)
	Open(ctx context.Context, storageKey string) (io.ReadCloser, error)
	Delete(ctx context.Context, storageKey string) error
}
