package storage

import (
	"context"
	"io"
)

// UploadResult describes a stored object and where it is served from.
type UploadResult struct {
	Key      string
	Location string
}

// FileUploader stores binary assets such as tournament logos and resolves
// their public URLs.
type FileUploader interface {
	Upload(ctx context.Context, key string, contentType string, reader io.Reader) (*UploadResult, error)
	Delete(ctx context.Context, key string) error
	GetPublicURL(key string) string
}
