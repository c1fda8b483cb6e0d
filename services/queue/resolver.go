package queue

import (
	"context"
	"errors"
	"strings"

	businessRepo "skiply/database/repository/business"
	"skiply/models"
	"skiply/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// errBusinessUnresolved is the 400 returned for any reference that names no business.
var errBusinessUnresolved = utils.NewValidationError("Invalid business ID and could not find business by name")

// resolveBusiness turns an id-or-name reference into a stored business.
// An id-shaped ref is tried first; the name (or ref itself) is the fallback.
func (s *DefaultQueueService) resolveBusiness(ctx context.Context, ref, name string) (*models.Business, error) {
	ref = strings.TrimSpace(ref)
	name = strings.TrimSpace(name)

	if oid, err := primitive.ObjectIDFromHex(ref); err == nil {
		business, err := s.Businesses.GetByID(ctx, oid)
		if err == nil {
			return business, nil
		}
		if !errors.Is(err, businessRepo.ErrBusinessNotFound) {
			return nil, utils.NewInternalError("Failed to resolve business", err)
		}
	}

	lookup := name
	if lookup == "" {
		lookup = ref
	}
	if lookup == "" {
		return nil, errBusinessUnresolved
	}

	business, err := s.Businesses.GetByName(ctx, lookup)
	if err != nil {
		if errors.Is(err, businessRepo.ErrBusinessNotFound) {
			return nil, errBusinessUnresolved
		}
		return nil, utils.NewInternalError("Failed to resolve business", err)
	}
	return business, nil
}
