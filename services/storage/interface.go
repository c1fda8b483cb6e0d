package storage

import (
	"context"

	"skiply/models"
)

// UploadResult identifies an uploaded asset.
type UploadResult struct {
	URL      string
	PublicID string
}

// StorageService defines the interface for blob storage operations.
type StorageService interface {
	UploadFile(ctx context.Context, localFilePath, destFolder string) (*UploadResult, error)
	DeleteFile(ctx context.Context, publicID string) error
}

// ImageService uploads images and records them.
type ImageService interface {
	UploadImage(ctx context.Context, caller models.Identity, localFilePath string) (*models.Image, error)
}
