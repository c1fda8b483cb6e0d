// File: database/repository/booking/bookingMongoQueries.go
package bookingRepo

import (
	"context"
	"fmt"

	"skiply/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func scopeFilter(scope models.QueueScope) bson.M {
	return bson.M{
		"business":       scope.BusinessID,
		"departmentName": scope.Department,
		"bookingDay":     scope.Day,
	}
}

// CountInScope counts every booking in the scope regardless of status.
func (r *MongoBookingRepo) CountInScope(ctx context.Context, scope models.QueueScope) (int64, error) {
	ctx, cancel := newContext(ctx, defaultTimeout)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, scopeFilter(scope))
	if err != nil {
		return 0, fmt.Errorf("failed to count bookings in scope %s: %w", scope.Key(), err)
	}
	return n, nil
}

// CountAhead counts not-completed bookings in the scope with a smaller token.
func (r *MongoBookingRepo) CountAhead(ctx context.Context, scope models.QueueScope, tokenNumber int) (int64, error) {
	ctx, cancel := newContext(ctx, defaultTimeout)
	defer cancel()

	filter := scopeFilter(scope)
	filter["tokenNumber"] = bson.M{"$lt": tokenNumber}
	filter["status"] = bson.M{"$ne": models.StatusCompleted}

	n, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to count bookings ahead of token %d: %w", tokenNumber, err)
	}
	return n, nil
}

// ListActiveForDay lists bookings on day that are neither cancelled nor completed.
func (r *MongoBookingRepo) ListActiveForDay(ctx context.Context, businessID primitive.ObjectID, day string) ([]models.Booking, error) {
	ctx, cancel := newContext(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{
		"business":   businessID,
		"bookingDay": day,
		"status":     bson.M{"$nin": []models.BookingStatus{models.StatusCancelled, models.StatusCompleted}},
	}
	opts := options.Find().SetProjection(bson.M{
		"departmentName": 1,
		"tokenNumber":    1,
		"status":         1,
	})

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list active bookings for %s: %w", businessID.Hex(), err)
	}
	defer cursor.Close(ctx)

	bookings := []models.Booking{}
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode active bookings: %w", err)
	}
	return bookings, nil
}

// ListByUser lists a user's bookings in creation order, joined with their business.
func (r *MongoBookingRepo) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]models.BookingDetails, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "user", Value: userID}}}},
		{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
		lookupStage(businessesCollection, "business", "businessInfo"),
		unwindStage("businessInfo"),
	}
	return r.aggregateDetails(ctx, pipeline)
}

// ListByBusiness lists a business's bookings in creation order, joined with their owner.
func (r *MongoBookingRepo) ListByBusiness(ctx context.Context, businessID primitive.ObjectID) ([]models.BookingDetails, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "business", Value: businessID}}}},
		{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
		lookupStage(usersCollection, "user", "userInfo"),
		unwindStage("userInfo"),
		{{Key: "$project", Value: bson.D{{Key: "userInfo.password", Value: 0}}}},
	}
	return r.aggregateDetails(ctx, pipeline)
}

func (r *MongoBookingRepo) aggregateDetails(ctx context.Context, pipeline mongo.Pipeline) ([]models.BookingDetails, error) {
	ctx, cancel := newContext(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate bookings: %w", err)
	}
	defer cursor.Close(ctx)

	details := []models.BookingDetails{}
	if err := cursor.All(ctx, &details); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}
	return details, nil
}

func lookupStage(from, localField, as string) bson.D {
	return bson.D{{Key: "$lookup", Value: bson.D{
		{Key: "from", Value: from},
		{Key: "localField", Value: localField},
		{Key: "foreignField", Value: "_id"},
		{Key: "as", Value: as},
	}}}
}

func unwindStage(field string) bson.D {
	return bson.D{{Key: "$unwind", Value: bson.D{
		{Key: "path", Value: "$" + field},
		{Key: "preserveNullAndEmptyArrays", Value: true},
	}}}
}
