package user

import (
	"context"
	"errors"
	"strings"
	"time"

	userRepo "skiply/database/repository/user"
	"skiply/models"
	"skiply/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// GetProfile returns the user without credentials.
func (s *DefaultUserService) GetProfile(ctx context.Context, userID primitive.ObjectID) (*models.User, error) {
	user, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			return nil, utils.NewNotFoundError("User not found")
		}
		return nil, utils.NewInternalError("Failed to fetch profile", err)
	}
	return user, nil
}

// UpdateProfile applies the supplied fields only. An update with no fields
// returns the profile unchanged.
func (s *DefaultUserService) UpdateProfile(ctx context.Context, userID primitive.ObjectID, update models.ProfileUpdate) (*models.User, error) {
	logger := utils.GetLogger()
	logger.Debug("UpdateProfile called", zap.String("userId", userID.Hex()))

	if update.Empty() {
		return s.GetProfile(ctx, userID)
	}

	fields := bson.M{"updatedAt": s.now()}
	if update.Name != nil {
		name := strings.TrimSpace(*update.Name)
		if name == "" {
			return nil, utils.NewValidationError("Name cannot be empty")
		}
		fields["name"] = name
	}
	if update.Phone != nil {
		fields["phone"] = strings.TrimSpace(*update.Phone)
	}
	if update.Location != nil {
		fields["location"] = strings.TrimSpace(*update.Location)
	}
	if update.ProfileImage != nil {
		fields["profileImage"] = *update.ProfileImage
	}

	updated, err := s.Repo.UpdateFields(ctx, userID, fields)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			return nil, utils.NewNotFoundError("User not found")
		}
		logger.Error("Failed to update profile", zap.String("userId", userID.Hex()), zap.Error(err))
		return nil, utils.NewInternalError("Failed to update profile", err)
	}
	return updated, nil
}

// GetAllUsers lists every account for administrators.
func (s *DefaultUserService) GetAllUsers(ctx context.Context) ([]models.User, error) {
	users, err := s.Repo.GetAll(ctx)
	if err != nil {
		return nil, utils.NewInternalError("Failed to fetch users", err)
	}
	return users, nil
}

// ListOpenBusinesses lists businesses currently taking bookings.
func (s *DefaultUserService) ListOpenBusinesses(ctx context.Context) ([]models.Business, error) {
	businesses, err := s.Businesses.ListOpen(ctx)
	if err != nil {
		return nil, utils.NewInternalError("Failed to fetch businesses", err)
	}
	return businesses, nil
}

func (s *DefaultUserService) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}
