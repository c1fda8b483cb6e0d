package userRepo

import (
	"context"
	"errors"

	"skiply/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrUserNotFound is returned when no user has the requested id.
var ErrUserNotFound = errors.New("user not found")

// UserRepository defines methods for user data access.
type UserRepository interface {
	// GetByID retrieves a user by its id, without credentials.
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	// GetByIDWithProjection retrieves a user by its id with a projection.
	GetByIDWithProjection(ctx context.Context, id primitive.ObjectID, projection bson.M) (*models.User, error)
	// GetAll retrieves all users, without credentials.
	GetAll(ctx context.Context) ([]models.User, error)
	// UpdateFields sets the given fields and returns the updated user.
	UpdateFields(ctx context.Context, id primitive.ObjectID, fields bson.M) (*models.User, error)
}
