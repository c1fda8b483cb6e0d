package bookingRepo

import (
	"context"
	"errors"
	"time"

	"skiply/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	// ErrBookingNotFound is returned when no booking has the requested id.
	ErrBookingNotFound = errors.New("booking not found")
	// ErrDuplicateToken is returned when a token number is already taken in its scope.
	ErrDuplicateToken = errors.New("token number already assigned in scope")
	// ErrStatusConflict is returned when a booking's status changed under a compare-and-set update.
	ErrStatusConflict = errors.New("booking status changed concurrently")
)

// BookingRepository defines methods for booking data access.
type BookingRepository interface {
	// Create inserts a new booking. A taken (business, department, day, token) yields ErrDuplicateToken.
	Create(ctx context.Context, booking *models.Booking) error
	// GetByID retrieves a booking by its id.
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Booking, error)
	// UpdateStatus moves a booking from one status to another if it is still in `from`.
	UpdateStatus(ctx context.Context, id primitive.ObjectID, from, to models.BookingStatus, at time.Time) (*models.Booking, error)
	// CountInScope counts every booking in the scope regardless of status.
	CountInScope(ctx context.Context, scope models.QueueScope) (int64, error)
	// CountAhead counts not-completed bookings in the scope with a smaller token.
	CountAhead(ctx context.Context, scope models.QueueScope, tokenNumber int) (int64, error)
	// ListActiveForDay lists a business's bookings on day that are neither cancelled nor completed.
	ListActiveForDay(ctx context.Context, businessID primitive.ObjectID, day string) ([]models.Booking, error)
	// ListByUser lists a user's bookings in creation order, joined with their business.
	ListByUser(ctx context.Context, userID primitive.ObjectID) ([]models.BookingDetails, error)
	// ListByBusiness lists a business's bookings in creation order, joined with their owner.
	ListByBusiness(ctx context.Context, businessID primitive.ObjectID) ([]models.BookingDetails, error)
	// ExpireBefore cancels pending and in-progress bookings from days before day.
	ExpireBefore(ctx context.Context, day string, at time.Time) (int64, error)
}
