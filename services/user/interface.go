package user

import (
	"context"
	"time"

	businessRepo "skiply/database/repository/business"
	userRepo "skiply/database/repository/user"
	"skiply/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UserService interface {
	// Profile
	GetProfile(ctx context.Context, userID primitive.ObjectID) (*models.User, error)
	UpdateProfile(ctx context.Context, userID primitive.ObjectID, update models.ProfileUpdate) (*models.User, error)

	// Admin / Directory
	GetAllUsers(ctx context.Context) ([]models.User, error)
	ListOpenBusinesses(ctx context.Context) ([]models.Business, error)
}

// DefaultUserService is the production implementation.
type DefaultUserService struct {
	Repo       userRepo.UserRepository
	Businesses businessRepo.BusinessRepository
	Now        func() time.Time
}

func NewUserService(repo userRepo.UserRepository, businesses businessRepo.BusinessRepository) *DefaultUserService {
	return &DefaultUserService{Repo: repo, Businesses: businesses, Now: time.Now}
}
