package storage

import (
	"context"
	"fmt"
	"io"

	"medibook/config"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// Uploader is the part of the Cloudinary upload API the service uses.
// *uploader.API satisfies it.
type Uploader interface {
	Upload(ctx context.Context, file interface{}, uploadParams uploader.UploadParams) (*uploader.UploadResult, error)
	Destroy(ctx context.Context, params uploader.DestroyParams) (*uploader.DestroyResult, error)
}

// StorageServiceImpl stores files in Cloudinary.
type StorageServiceImpl struct {
	uploader Uploader
}

// NewStorageService creates a new StorageServiceImpl instance.
func NewStorageService(u Uploader) StorageService {
	return &StorageServiceImpl{uploader: u}
}

// NewCloudinaryStorage builds the service from the configured credentials.
func NewCloudinaryStorage() (StorageService, error) {
	cfg := config.AppConfig
	if cfg.CloudinaryCloudName == "" || cfg.CloudinaryAPIKey == "" || cfg.CloudinaryAPISecret == "" {
		return nil, fmt.Errorf("cloudinary credentials not set in configuration")
	}
	cld, err := cloudinary.NewFromParams(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Cloudinary: %w", err)
	}
	return NewStorageService(&cld.Upload), nil
}

// UploadFile uploads r to Cloudinary into the specified folder.
func (s *StorageServiceImpl) UploadFile(ctx context.Context, r io.Reader, destFolder, publicID string) (*Upload, error) {
	overwrite := true
	params := uploader.UploadParams{
		Folder:       destFolder,
		PublicID:     publicID,
		Overwrite:    &overwrite,
		ResourceType: "auto",
	}
	result, err := s.uploader.Upload(ctx, r, params)
	if err != nil {
		return nil, fmt.Errorf("StorageServiceImpl: failed to upload file: %w", err)
	}
	if result.Error.Message != "" {
		return nil, fmt.Errorf("StorageServiceImpl: upload rejected: %s", result.Error.Message)
	}
	if result.PublicID == "" {
		return nil, fmt.Errorf("StorageServiceImpl: no public ID returned")
	}
	return &Upload{URL: result.SecureURL, PublicID: result.PublicID}, nil
}

// DeleteFile deletes a file from Cloudinary given its public ID.
func (s *StorageServiceImpl) DeleteFile(ctx context.Context, publicID string) error {
	if _, err := s.uploader.Destroy(ctx, uploader.DestroyParams{PublicID: publicID}); err != nil {
		return fmt.Errorf("StorageServiceImpl: failed to delete file: %w", err)
	}
	return nil
}
