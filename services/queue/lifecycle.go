package queue

import (
	"context"
	"errors"
	"strings"

	bookingRepo "skiply/database/repository/booking"
	"skiply/models"
	"skiply/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// BookQueue validates the request, resolves the business and stores a pending
// booking under the next token of its (business, department, day) scope.
func (s *DefaultQueueService) BookQueue(ctx context.Context, caller models.Identity, req models.BookingRequest) (*models.Booking, error) {
	ref := strings.TrimSpace(req.BusinessReference())
	businessName := strings.TrimSpace(req.BusinessName)
	department := strings.TrimSpace(req.DepartmentName)
	customerName := strings.TrimSpace(req.CustomerName)
	customerPhone := strings.TrimSpace(req.CustomerPhone)

	if ref == "" {
		return nil, utils.NewValidationError("Business ID is required")
	}
	if businessName == "" {
		return nil, utils.NewValidationError("Business name is required")
	}
	if department == "" || customerName == "" || customerPhone == "" {
		return nil, utils.NewValidationError("Missing required booking details: departmentName, customerName, or customerPhone")
	}

	bookedAt, err := s.parseInstant(req.BookedAt, "bookedAt")
	if err != nil {
		return nil, err
	}

	business, err := s.resolveBusiness(ctx, ref, businessName)
	if err != nil {
		return nil, err
	}

	now := s.now()
	booking := &models.Booking{
		User:           caller.UserID,
		Business:       business.ID,
		BusinessRef:    ref,
		BusinessName:   businessName,
		DepartmentName: department,
		BookingDay:     s.dayOf(bookedAt),
		CustomerName:   customerName,
		CustomerPhone:  customerPhone,
		Notes:          strings.TrimSpace(req.Notes),
		Status:         models.StatusPending,
		BookedAt:       bookedAt,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	_, err = s.Allocator.Allocate(ctx, booking.Scope(), func(token int) error {
		booking.ID = primitive.NewObjectID()
		booking.TokenNumber = token
		booking.QRCode = uuid.NewString()
		return s.Bookings.Create(ctx, booking)
	})
	if err != nil {
		if errors.Is(err, ErrAllocationExhausted) {
			return nil, utils.NewConflictError("Failed to create booking", err)
		}
		return nil, utils.NewInternalError("Failed to create booking", err)
	}

	utils.GetLogger().Info("Booking created",
		zap.String("bookingId", booking.ID.Hex()),
		zap.String("scope", booking.Scope().Key()),
		zap.Int("token", booking.TokenNumber),
	)
	return booking, nil
}

// UpdateBookingStatus moves a booking along the status machine.
func (s *DefaultQueueService) UpdateBookingStatus(ctx context.Context, bookingID string, status models.BookingStatus) (*models.Booking, error) {
	oid, err := primitive.ObjectIDFromHex(bookingID)
	if err != nil {
		return nil, utils.NewValidationError("Invalid booking ID")
	}
	if !status.Valid() {
		return nil, utils.NewValidationError("Invalid status: must be one of pending, in-progress, cancelled, completed")
	}

	booking, err := s.Bookings.GetByID(ctx, oid)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, utils.NewNotFoundError("Booking not found")
		}
		return nil, utils.NewInternalError("Failed to update booking status", err)
	}

	if err := checkTransition(booking.Status, status); err != nil {
		return nil, utils.NewConflictError("Invalid status transition", err)
	}
	if booking.Status == status {
		return booking, nil
	}

	updated, err := s.Bookings.UpdateStatus(ctx, oid, booking.Status, status, s.now())
	switch {
	case err == nil:
	case errors.Is(err, bookingRepo.ErrBookingNotFound):
		return nil, utils.NewNotFoundError("Booking not found")
	case errors.Is(err, bookingRepo.ErrStatusConflict):
		return nil, utils.NewConflictError("Booking status changed concurrently", err)
	default:
		return nil, utils.NewInternalError("Failed to update booking status", err)
	}

	utils.GetLogger().Info("Booking status updated",
		zap.String("bookingId", bookingID),
		zap.String("from", string(booking.Status)),
		zap.String("to", string(status)),
	)
	return updated, nil
}

// GetUserBookings lists the caller's bookings joined with their business.
func (s *DefaultQueueService) GetUserBookings(ctx context.Context, caller models.Identity) ([]models.BookingDetails, error) {
	bookings, err := s.Bookings.ListByUser(ctx, caller.UserID)
	if err != nil {
		return nil, utils.NewInternalError("Failed to fetch bookings", err)
	}
	return bookings, nil
}

// GetBusinessBookings lists a business's bookings joined with the customer.
func (s *DefaultQueueService) GetBusinessBookings(ctx context.Context, businessRef string) ([]models.BookingDetails, error) {
	if strings.TrimSpace(businessRef) == "" {
		return nil, utils.NewValidationError("Business ID is required")
	}
	business, err := s.resolveBusiness(ctx, businessRef, "")
	if err != nil {
		return nil, err
	}

	bookings, err := s.Bookings.ListByBusiness(ctx, business.ID)
	if err != nil {
		return nil, utils.NewInternalError("Failed to fetch business bookings", err)
	}
	return bookings, nil
}
