package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Image records a file uploaded to blob storage.
type Image struct {
	ID         primitive.ObjectID `bson:"_id" json:"_id"`
	URL        string             `bson:"url" json:"url"`
	PublicID   string             `bson:"publicId" json:"publicId"`
	UploadedBy primitive.ObjectID `bson:"uploadedBy,omitempty" json:"uploadedBy,omitempty"`
	UploadedAt time.Time          `bson:"uploadedAt" json:"uploadedAt"`
}
