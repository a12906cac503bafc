package port

import (
	"context"
	"time"
)

// ObjectInfo describes an object found in storage.
type ObjectInfo struct {
	ContentLength int64
	ContentType   string
}

// ObjectStorage abstracts the object storage operations this service needs.
// HeadObject returns domain.ErrFileNotInStorage when the key does not exist,
// so callers can distinguish a missing object from a transport failure.
type ObjectStorage interface {
	GeneratePresignedPutURL(ctx context.Context, bucket, key, contentType string, ttl time.Duration) (string, error)
	HeadObject(ctx context.Context, bucket, key string) (*ObjectInfo, error)
	DeleteObjects(ctx context.Context, bucket string, keys []string) error
	GetPublicURL(bucket, key string) string
}
