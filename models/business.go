package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Business is a venue customers queue at. Owned by the business profile service;
// the queue only reads it.
type Business struct {
	ID           primitive.ObjectID `bson:"_id" json:"_id"`
	BusinessName string             `bson:"businessName" json:"businessName"`
	Departments  []string           `bson:"departments,omitempty" json:"departments,omitempty"`
	Address      string             `bson:"address,omitempty" json:"address,omitempty"`
	Phone        string             `bson:"phone,omitempty" json:"phone,omitempty"`
	IsOpen       bool               `bson:"isOpen" json:"isOpen"`
	Owner        primitive.ObjectID `bson:"owner,omitempty" json:"owner,omitempty"`
	CreatedAt    time.Time          `bson:"createdAt,omitempty" json:"createdAt,omitzero"`
	UpdatedAt    time.Time          `bson:"updatedAt,omitempty" json:"updatedAt,omitzero"`
}
