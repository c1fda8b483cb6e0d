package storage

import (
	"context"
	"errors"
	"fmt"

	"skiply/utils"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// CloudinaryStorageService implements StorageService on Cloudinary.
type CloudinaryStorageService struct {
	cld *cloudinary.Cloudinary
}

// NewStorageService creates a new CloudinaryStorageService instance.
func NewStorageService(cld *cloudinary.Cloudinary) StorageService {
	utils.GetLogger().Debug("Initializing Cloudinary storage service")
	return &CloudinaryStorageService{cld: cld}
}

// UploadFile uploads a file to Cloudinary into the specified folder.
func (s *CloudinaryStorageService) UploadFile(ctx context.Context, localFilePath, destFolder string) (*UploadResult, error) {
	result, err := s.cld.Upload.Upload(ctx, localFilePath, uploader.UploadParams{Folder: destFolder})
	if err != nil {
		return nil, fmt.Errorf("CloudinaryStorageService: failed to upload file: %w", err)
	}
	if result.Error.Message != "" {
		return nil, fmt.Errorf("CloudinaryStorageService: upload rejected: %s", result.Error.Message)
	}
	if result.PublicID == "" {
		return nil, errors.New("CloudinaryStorageService: no public ID returned")
	}
	return &UploadResult{URL: result.SecureURL, PublicID: result.PublicID}, nil
}

// DeleteFile deletes a file from Cloudinary given its public ID.
func (s *CloudinaryStorageService) DeleteFile(ctx context.Context, publicID string) error {
	result, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	if err != nil {
		return fmt.Errorf("CloudinaryStorageService: failed to delete file: %w", err)
	}
	if result.Error.Message != "" {
		return fmt.Errorf("CloudinaryStorageService: delete rejected: %s", result.Error.Message)
	}
	return nil
}
