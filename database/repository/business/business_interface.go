package businessRepo

import (
	"context"
	"errors"

	"skiply/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrBusinessNotFound is returned when no business matches the lookup.
var ErrBusinessNotFound = errors.New("business not found")

// BusinessRepository defines read access to business profiles.
type BusinessRepository interface {
	// GetByID retrieves a business by its id.
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Business, error)
	// GetByName retrieves a business by its exact name.
	GetByName(ctx context.Context, name string) (*models.Business, error)
	// ListOpen lists businesses currently accepting bookings, by name.
	ListOpen(ctx context.Context) ([]models.Business, error)
}
