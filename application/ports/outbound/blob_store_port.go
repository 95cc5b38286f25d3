package outbound

import "context"

type StoreBlobRequest struct {
	Bucket      string
	Path        string
	ContentType string
	Content     []byte
}

// BlobStorePort persists binary artifacts and returns a publicly
// retrievable URL for the stored object.
type BlobStorePort interface {
	Store(ctx context.Context, req StoreBlobRequest) (string, error)
}
