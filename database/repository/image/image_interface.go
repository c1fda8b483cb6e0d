package imageRepo

import (
	"context"

	"skiply/models"
)

// ImageRepository records uploaded image assets.
type ImageRepository interface {
	// Create stores the image record, assigning an id when missing.
	Create(ctx context.Context, image *models.Image) error
}
