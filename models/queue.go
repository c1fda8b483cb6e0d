package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// DayLayout is the format of Booking.BookingDay.
const DayLayout = "2006-01-02"

// QueueScope is the (business, department, calendar day) triple that bounds token
// uniqueness and queue-status counting.
type QueueScope struct {
	BusinessID primitive.ObjectID
	Department string
	Day        string
}

// Key identifies the scope in in-process maps.
func (s QueueScope) Key() string {
	return s.BusinessID.Hex() + "|" + s.Department + "|" + s.Day
}

// QueueStatus is the live position of one booking.
type QueueStatus struct {
	PeopleAhead          int           `json:"peopleAhead"`
	EstimatedWaitMinutes int           `json:"estimatedWaitTime"`
	TokenNumber          int           `json:"tokenNumber"`
	Status               BookingStatus `json:"status"`
}

// QueueMetrics aggregates today's open bookings for a business.
type QueueMetrics struct {
	TotalInQueue   int            `json:"totalInQueue"`
	AvgWaitMinutes int            `json:"avgWaitMinutes"`
	PerDepartment  map[string]int `json:"perDepartment"`
}

// TokenPreviewRequest carries the query of a next-token preview.
type TokenPreviewRequest struct {
	BusinessID     string `form:"businessId"`
	BusinessName   string `form:"businessName"`
	DepartmentName string `form:"departmentName"`
	Date           string `form:"date"`
}

// TokenPreview is the response of a next-token preview.
type TokenPreview struct {
	TokenNumber int `json:"tokenNumber"`
}
