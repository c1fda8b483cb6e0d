package queue

import (
	"context"
	"time"

	bookingRepo "skiply/database/repository/booking"
	businessRepo "skiply/database/repository/business"
	"skiply/models"
)

// QueueService covers booking tokens and reading queue state.
type QueueService interface {
	// Booking lifecycle
	BookQueue(ctx context.Context, caller models.Identity, req models.BookingRequest) (*models.Booking, error)
	UpdateBookingStatus(ctx context.Context, bookingID string, status models.BookingStatus) (*models.Booking, error)
	GetUserBookings(ctx context.Context, caller models.Identity) ([]models.BookingDetails, error)
	GetBusinessBookings(ctx context.Context, businessRef string) ([]models.BookingDetails, error)

	// Queue state
	GetQueueStatus(ctx context.Context, bookingID string) (*models.QueueStatus, error)
	GetBusinessMetrics(ctx context.Context, businessRef string) (*models.QueueMetrics, error)
	PreviewNextToken(ctx context.Context, req models.TokenPreviewRequest) (*models.TokenPreview, error)

	// Maintenance
	ExpireStaleBookings(ctx context.Context) (int64, error)
}

// DefaultQueueService is the production implementation.
type DefaultQueueService struct {
	Bookings   bookingRepo.BookingRepository
	Businesses businessRepo.BusinessRepository
	Estimator  WaitEstimator
	Allocator  *TokenAllocator
	Location   *time.Location
	Now        func() time.Time
}

// NewQueueService wires a queue service. A nil estimator uses the linear default
// and a nil location uses time.Local.
func NewQueueService(bookings bookingRepo.BookingRepository, businesses businessRepo.BusinessRepository, estimator WaitEstimator, loc *time.Location) *DefaultQueueService {
	if estimator == nil {
		estimator = LinearEstimator{MinutesPerPerson: DefaultMinutesPerPerson}
	}
	if loc == nil {
		loc = time.Local
	}
	return &DefaultQueueService{
		Bookings:   bookings,
		Businesses: businesses,
		Estimator:  estimator,
		Allocator:  NewTokenAllocator(bookings),
		Location:   loc,
		Now:        time.Now,
	}
}
