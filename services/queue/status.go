package queue

import (
	"context"
	"errors"
	"strings"

	bookingRepo "skiply/database/repository/booking"
	"skiply/models"
	"skiply/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GetQueueStatus reports how many not-completed bookings sit ahead of a booking
// in its own scope and the expected wait.
func (s *DefaultQueueService) GetQueueStatus(ctx context.Context, bookingID string) (*models.QueueStatus, error) {
	oid, err := primitive.ObjectIDFromHex(bookingID)
	if err != nil {
		return nil, utils.NewValidationError("Invalid booking ID")
	}

	booking, err := s.Bookings.GetByID(ctx, oid)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, utils.NewNotFoundError("Booking not found")
		}
		return nil, utils.NewInternalError("Failed to get queue status", err)
	}

	ahead, err := s.Bookings.CountAhead(ctx, booking.Scope(), booking.TokenNumber)
	if err != nil {
		return nil, utils.NewInternalError("Failed to get queue status", err)
	}

	return &models.QueueStatus{
		PeopleAhead:          int(ahead),
		EstimatedWaitMinutes: s.Estimator.EstimateMinutes(int(ahead)),
		TokenNumber:          booking.TokenNumber,
		Status:               booking.Status,
	}, nil
}

// GetBusinessMetrics aggregates today's open bookings of a business.
func (s *DefaultQueueService) GetBusinessMetrics(ctx context.Context, businessRef string) (*models.QueueMetrics, error) {
	if strings.TrimSpace(businessRef) == "" {
		return nil, utils.NewValidationError("Business ID is required")
	}
	business, err := s.resolveBusiness(ctx, businessRef, "")
	if err != nil {
		return nil, err
	}

	active, err := s.Bookings.ListActiveForDay(ctx, business.ID, s.dayOf(s.now()))
	if err != nil {
		return nil, utils.NewInternalError("Failed to get business metrics", err)
	}

	perDepartment := make(map[string]int)
	for _, b := range active {
		perDepartment[b.DepartmentName]++
	}

	return &models.QueueMetrics{
		TotalInQueue:   len(active),
		AvgWaitMinutes: s.Estimator.EstimateMinutes(len(active)),
		PerDepartment:  perDepartment,
	}, nil
}

// PreviewNextToken returns the token a booking made now would get. The answer
// can be stale by the time the booking is submitted.
func (s *DefaultQueueService) PreviewNextToken(ctx context.Context, req models.TokenPreviewRequest) (*models.TokenPreview, error) {
	department := strings.TrimSpace(req.DepartmentName)
	if department == "" {
		return nil, utils.NewValidationError("departmentName is required")
	}
	if strings.TrimSpace(req.BusinessID) == "" && strings.TrimSpace(req.BusinessName) == "" {
		return nil, utils.NewValidationError("Valid businessId or businessName is required")
	}

	at, err := s.parseInstant(req.Date, "date")
	if err != nil {
		return nil, err
	}

	business, err := s.resolveBusiness(ctx, req.BusinessID, req.BusinessName)
	if err != nil {
		return nil, err
	}

	scope := models.QueueScope{BusinessID: business.ID, Department: department, Day: s.dayOf(at)}
	token, err := s.Allocator.Next(ctx, scope)
	if err != nil {
		return nil, utils.NewInternalError("Failed to get next token", err)
	}
	return &models.TokenPreview{TokenNumber: token}, nil
}
