// File: database/repository/business/businessMongo.go
package businessRepo

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

const businessesCollection = "businesses"

// MongoBusinessRepo implements BusinessRepository using MongoDB.
type MongoBusinessRepo struct {
	coll *mongo.Collection
}

// NewMongoBusinessRepo creates a business repository on db.
func NewMongoBusinessRepo(db *mongo.Database) BusinessRepository {
	repo := newMongoBusinessRepo(db.Collection(businessesCollection))
	if err := repo.ensureIndexes(); err != nil {
		zap.L().Error("failed to create business indexes", zap.Error(err))
	}
	return repo
}

func newMongoBusinessRepo(coll *mongo.Collection) *MongoBusinessRepo {
	return &MongoBusinessRepo{coll: coll}
}

func newContext(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, timeout)
}

func (r *MongoBusinessRepo) ensureIndexes() error {
	ctx, cancel := newContext(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "businessName", Value: 1}}},
		{Keys: bson.D{{Key: "isOpen", Value: 1}, {Key: "businessName", Value: 1}}},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

func (r *MongoBusinessRepo) findOne(ctx context.Context, filter bson.M, what string) (*models.Business, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	var business models.Business
	if err := r.coll.FindOne(ctx, filter).Decode(&business); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrBusinessNotFound
		}
		return nil, fmt.Errorf("failed to fetch business %s: %w", what, err)
	}
	return &business, nil
}

// GetByID retrieves a business by its id.
func (r *MongoBusinessRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Business, error) {
	return r.findOne(ctx, bson.M{"_id": id}, id.Hex())
}

// GetByName retrieves a business by its exact name. Names are not unique;
// the oldest document wins.
func (r *MongoBusinessRepo) GetByName(ctx context.Context, name string) (*models.Business, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	opts := options.FindOne().SetSort(bson.D{{Key: "_id", Value: 1}})
	var business models.Business
	if err := r.coll.FindOne(ctx, bson.M{"businessName": name}, opts).Decode(&business); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrBusinessNotFound
		}
		return nil, fmt.Errorf("failed to fetch business %q: %w", name, err)
	}
	return &business, nil
}

// ListOpen lists businesses with isOpen set.
func (r *MongoBusinessRepo) ListOpen(ctx context.Context) ([]models.Business, error) {
	ctx, cancel := newContext(ctx, 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "businessName", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{"isOpen": true}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list open businesses: %w", err)
	}
	defer cursor.Close(ctx)

	businesses := []models.Business{}
	if err := cursor.All(ctx, &businesses); err != nil {
		return nil, fmt.Errorf("failed to decode businesses: %w", err)
	}
	return businesses, nil
}
