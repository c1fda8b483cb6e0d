package storage

import (
	"context"
	"time"

	imageRepo "skiply/database/repository/image"
	"skiply/models"
	"skiply/utils"

	"go.uber.org/zap"
)

// DefaultImageService uploads into Folder and keeps a record per image.
type DefaultImageService struct {
	Storage StorageService
	Images  imageRepo.ImageRepository
	Folder  string
	Now     func() time.Time
}

func NewImageService(storage StorageService, images imageRepo.ImageRepository, folder string) *DefaultImageService {
	return &DefaultImageService{Storage: storage, Images: images, Folder: folder, Now: time.Now}
}

// UploadImage stores the file and its record. When the record cannot be saved
// the uploaded asset is destroyed again.
func (s *DefaultImageService) UploadImage(ctx context.Context, caller models.Identity, localFilePath string) (*models.Image, error) {
	logger := utils.GetLogger()

	uploaded, err := s.Storage.UploadFile(ctx, localFilePath, s.Folder)
	if err != nil {
		return nil, utils.NewInternalError("Image upload failed", err)
	}

	image := &models.Image{
		URL:        uploaded.URL,
		PublicID:   uploaded.PublicID,
		UploadedBy: caller.UserID,
		UploadedAt: s.now(),
	}
	if err := s.Images.Create(ctx, image); err != nil {
		if delErr := s.Storage.DeleteFile(ctx, uploaded.PublicID); delErr != nil {
			logger.Error("Failed to remove orphaned upload",
				zap.String("publicId", uploaded.PublicID),
				zap.Error(delErr),
			)
		}
		return nil, utils.NewInternalError("Image upload failed", err)
	}

	logger.Info("Image uploaded", zap.String("publicId", image.PublicID), zap.String("userId", caller.UserID.Hex()))
	return image, nil
}

func (s *DefaultImageService) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}
