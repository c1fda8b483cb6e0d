package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BookingStatus is the lifecycle state of a queue booking.
type BookingStatus string

const (
	StatusPending    BookingStatus = "pending"
	StatusInProgress BookingStatus = "in-progress"
	StatusCancelled  BookingStatus = "cancelled"
	StatusCompleted  BookingStatus = "completed"
)

// Valid reports whether s is one of the known statuses.
func (s BookingStatus) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCancelled, StatusCompleted:
		return true
	}
	return false
}

// Booking represents a customer's reserved token in a business department queue.
type Booking struct {
	ID             primitive.ObjectID `bson:"_id" json:"_id"`
	User           primitive.ObjectID `bson:"user" json:"user"`                     // Owner of the booking
	Business       primitive.ObjectID `bson:"business" json:"business"`             // Resolved canonical business id
	BusinessRef    string             `bson:"businessId" json:"businessId"`         // Reference as supplied by the caller
	BusinessName   string             `bson:"businessName" json:"businessName"`     //
	DepartmentName string             `bson:"departmentName" json:"departmentName"` //
	BookingDay     string             `bson:"bookingDay" json:"bookingDay"`         // "YYYY-MM-DD" in the queue time zone; fixed at creation
	TokenNumber    int                `bson:"tokenNumber" json:"tokenNumber"`       // 1-based, unique per (business, department, day)
	CustomerName   string             `bson:"customerName" json:"customerName"`
	CustomerPhone  string             `bson:"customerPhone" json:"customerPhone"`
	Notes          string             `bson:"notes" json:"notes"`
	Status         BookingStatus      `bson:"status" json:"status"`
	QRCode         string             `bson:"qrCode" json:"qrCode"`
	BookedAt       time.Time          `bson:"bookedAt" json:"bookedAt"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Scope returns the queue scope the booking was numbered in.
func (b Booking) Scope() QueueScope {
	return QueueScope{
		BusinessID: b.Business,
		Department: b.DepartmentName,
		Day:        b.BookingDay,
	}
}

// BookingDetails is a booking joined with the entities it references, for display.
type BookingDetails struct {
	Booking      `bson:",inline"`
	BusinessInfo *Business `bson:"businessInfo,omitempty" json:"businessInfo,omitempty"`
	UserInfo     *User     `bson:"userInfo,omitempty" json:"userInfo,omitempty"`
}

// BookingRequest is the payload accepted when a customer books a token.
type BookingRequest struct {
	Business       string `json:"business"`
	BusinessID     string `json:"businessId"`
	BusinessName   string `json:"businessName"`
	DepartmentName string `json:"departmentName"`
	CustomerName   string `json:"customerName"`
	CustomerPhone  string `json:"customerPhone"`
	Notes          string `json:"notes,omitempty"`
	BookedAt       string `json:"bookedAt,omitempty"` // RFC3339 or YYYY-MM-DD; defaults to now
}

// BusinessReference returns whichever business reference field the caller filled in.
func (r BookingRequest) BusinessReference() string {
	if r.BusinessID != "" {
		return r.BusinessID
	}
	return r.Business
}

// StatusUpdateRequest is the payload for a booking status change.
type StatusUpdateRequest struct {
	Status BookingStatus `json:"status"`
}
