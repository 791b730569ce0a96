package media

import "context"

// ObjectStorage is the slice of the storage backend deletion needs.
type ObjectStorage interface {
	DeleteObject(ctx context.Context, key string) error
}
