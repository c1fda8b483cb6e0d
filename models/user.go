package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User roles.
const (
	RoleUser     = "user"
	RoleBusiness = "business"
	RoleAdmin    = "admin"
)

// User represents a platform account.
type User struct {
	ID           primitive.ObjectID `bson:"_id" json:"_id"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"`
	Phone        string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Location     string             `bson:"location,omitempty" json:"location,omitempty"`
	ProfileImage string             `bson:"profileImage,omitempty" json:"profileImage,omitempty"`
	Role         string             `bson:"role" json:"role"`
	Password     string             `bson:"password,omitempty" json:"-"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// ProfileUpdate holds the profile fields a user may change; nil means untouched.
type ProfileUpdate struct {
	Name         *string `json:"name" form:"name"`
	Phone        *string `json:"phone" form:"phone"`
	Location     *string `json:"location" form:"location"`
	ProfileImage *string `json:"-" form:"-"`
}

// Empty reports whether no field was supplied.
func (u ProfileUpdate) Empty() bool {
	return u.Name == nil && u.Phone == nil && u.Location == nil && u.ProfileImage == nil
}

// Identity is the authenticated caller of a request.
type Identity struct {
	UserID primitive.ObjectID `json:"userId"`
	Role   string             `json:"role"`
	Name   string             `json:"name,omitempty"`
}

// IsBusiness reports whether the caller acts for a business.
func (i Identity) IsBusiness() bool { return i.Role == RoleBusiness }

// IsAdmin reports whether the caller is an administrator.
func (i Identity) IsAdmin() bool { return i.Role == RoleAdmin }
