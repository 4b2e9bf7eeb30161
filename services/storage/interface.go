package storage

import (
	"context"
	"io"
)

// Upload describes a stored file.
type Upload struct {
	URL      string
	PublicID string
}

// StorageService defines the interface for storage operations.
type StorageService interface {
	// UploadFile stores r under destFolder with the given public ID and
	// returns its secure URL.
	UploadFile(ctx context.Context, r io.Reader, destFolder, publicID string) (*Upload, error)
	DeleteFile(ctx context.Context, publicID string) error
}
