package imageRepo

import (
	"context"
	"fmt"
	"time"

	"skiply/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const imagesCollection = "images"

// MongoImageRepo implements ImageRepository using MongoDB.
type MongoImageRepo struct {
	coll *mongo.Collection
}

func NewMongoImageRepo(db *mongo.Database) ImageRepository {
	return &MongoImageRepo{coll: db.Collection(imagesCollection)}
}

func (r *MongoImageRepo) Create(ctx context.Context, image *models.Image) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if image.ID.IsZero() {
		image.ID = primitive.NewObjectID()
	}
	if _, err := r.coll.InsertOne(ctx, image); err != nil {
		return fmt.Errorf("failed to save image %s: %w", image.PublicID, err)
	}
	return nil
}
