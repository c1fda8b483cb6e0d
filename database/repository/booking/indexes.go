package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ensureIndexes creates the token uniqueness constraint and the query indexes.
func (r *MongoBookingRepo) ensureIndexes() error {
	ctx, cancel := newContext(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "business", Value: 1},
				{Key: "departmentName", Value: 1},
				{Key: "bookingDay", Value: 1},
				{Key: "tokenNumber", Value: 1},
			},
			Options: options.Index().SetUnique(true).SetName("uniq_scope_token"),
		},
		{Keys: bson.D{{Key: "user", Value: 1}}},
		{Keys: bson.D{
			{Key: "business", Value: 1},
			{Key: "bookingDay", Value: 1},
			{Key: "status", Value: 1},
		}},
		{Keys: bson.D{{Key: "bookingDay", Value: 1}, {Key: "status", Value: 1}}},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}
