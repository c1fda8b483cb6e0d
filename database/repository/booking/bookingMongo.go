// File: database/repository/booking/bookingMongo.go
package bookingRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"skiply/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

const (
	bookingsCollection   = "bookings"
	businessesCollection = "businesses"
	usersCollection      = "users"

	defaultTimeout = 5 * time.Second
)

// MongoBookingRepo implements BookingRepository using MongoDB.
type MongoBookingRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRepo creates a booking repository on db and ensures its indexes.
func NewMongoBookingRepo(db *mongo.Database) BookingRepository {
	repo := newMongoBookingRepo(db.Collection(bookingsCollection))
	if err := repo.ensureIndexes(); err != nil {
		zap.L().Error("failed to create booking indexes", zap.Error(err))
	}
	return repo
}

func newMongoBookingRepo(coll *mongo.Collection) *MongoBookingRepo {
	return &MongoBookingRepo{coll: coll}
}

// newContext derives a bounded context for a single round trip.
func newContext(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, timeout)
}

// Create inserts a new booking document.
func (r *MongoBookingRepo) Create(ctx context.Context, booking *models.Booking) error {
	ctx, cancel := newContext(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, booking); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateToken
		}
		return fmt.Errorf("failed to create booking: %w", err)
	}
	return nil
}

// GetByID retrieves a booking by its id.
func (r *MongoBookingRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Booking, error) {
	ctx, cancel := newContext(ctx, defaultTimeout)
	defer cancel()

	var booking models.Booking
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&booking); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to fetch booking with id %s: %w", id.Hex(), err)
	}
	return &booking, nil
}

// UpdateStatus sets the status only if the stored one is still `from`, so two
// concurrent transitions cannot both apply.
func (r *MongoBookingRepo) UpdateStatus(ctx context.Context, id primitive.ObjectID, from, to models.BookingStatus, at time.Time) (*models.Booking, error) {
	ctx, cancel := newContext(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"_id": id, "status": from}
	update := bson.M{"$set": bson.M{"status": to, "updatedAt": at}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated models.Booking
	err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&updated)
	if err == nil {
		return &updated, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("failed to update status of booking %s: %w", id.Hex(), err)
	}

	// Nothing matched: either the booking is gone or its status moved.
	n, err := r.coll.CountDocuments(ctx, bson.M{"_id": id}, options.Count().SetLimit(1))
	if err != nil {
		return nil, fmt.Errorf("failed to check booking %s: %w", id.Hex(), err)
	}
	if n == 0 {
		return nil, ErrBookingNotFound
	}
	return nil, ErrStatusConflict
}

// ExpireBefore cancels bookings left open on days before day.
func (r *MongoBookingRepo) ExpireBefore(ctx context.Context, day string, at time.Time) (int64, error) {
	ctx, cancel := newContext(ctx, 30*time.Second)
	defer cancel()

	filter := bson.M{
		"bookingDay": bson.M{"$lt": day},
		"status":     bson.M{"$in": []models.BookingStatus{models.StatusPending, models.StatusInProgress}},
	}
	update := bson.M{"$set": bson.M{"status": models.StatusCancelled, "updatedAt": at}}

	res, err := r.coll.UpdateMany(ctx, filter, update)
	if err != nil {
		return 0, fmt.Errorf("failed to expire bookings before %s: %w", day, err)
	}
	return res.ModifiedCount, nil
}
