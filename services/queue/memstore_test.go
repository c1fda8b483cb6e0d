package queue

import (
	"context"
	"sync"
	"time"

	bookingRepo "skiply/database/repository/booking"
	businessRepo "skiply/database/repository/business"
	"skiply/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// memBookings is an in-memory BookingRepository holding the same
// (business, department, day, token) uniqueness as the Mongo index.
type memBookings struct {
	mu    sync.Mutex
	items []models.Booking

	// onCreate runs under the store lock before the uniqueness check.
	onCreate func(m *memBookings, b *models.Booking)
	// createErr, when set, fails every Create.
	createErr error
	creates   int
}

func newMemBookings() *memBookings { return &memBookings{} }

func (m *memBookings) insertLocked(b models.Booking) error {
	for _, existing := range m.items {
		if existing.Scope() == b.Scope() && existing.TokenNumber == b.TokenNumber {
			return bookingRepo.ErrDuplicateToken
		}
	}
	m.items = append(m.items, b)
	return nil
}

func (m *memBookings) Create(_ context.Context, b *models.Booking) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.creates++
	if m.createErr != nil {
		return m.createErr
	}
	if m.onCreate != nil {
		m.onCreate(m, b)
	}
	return m.insertLocked(*b)
}

func (m *memBookings) GetByID(_ context.Context, id primitive.ObjectID) (*models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, b := range m.items {
		if b.ID == id {
			cp := b
			return &cp, nil
		}
	}
	return nil, bookingRepo.ErrBookingNotFound
}

func (m *memBookings) UpdateStatus(_ context.Context, id primitive.ObjectID, from, to models.BookingStatus, at time.Time) (*models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.items {
		if m.items[i].ID != id {
			continue
		}
		if m.items[i].Status != from {
			return nil, bookingRepo.ErrStatusConflict
		}
		m.items[i].Status = to
		m.items[i].UpdatedAt = at
		cp := m.items[i]
		return &cp, nil
	}
	return nil, bookingRepo.ErrBookingNotFound
}

func (m *memBookings) CountInScope(_ context.Context, scope models.QueueScope) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, b := range m.items {
		if b.Scope() == scope {
			n++
		}
	}
	return n, nil
}

func (m *memBookings) CountAhead(_ context.Context, scope models.QueueScope, token int) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, b := range m.items {
		if b.Scope() == scope && b.TokenNumber < token && b.Status != models.StatusCompleted {
			n++
		}
	}
	return n, nil
}

func (m *memBookings) ListActiveForDay(_ context.Context, businessID primitive.ObjectID, day string) ([]models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Booking{}
	for _, b := range m.items {
		if b.Business != businessID || b.BookingDay != day {
			continue
		}
		if b.Status == models.StatusCancelled || b.Status == models.StatusCompleted {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

func (m *memBookings) ListByUser(_ context.Context, userID primitive.ObjectID) ([]models.BookingDetails, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.BookingDetails{}
	for _, b := range m.items {
		if b.User == userID {
			out = append(out, models.BookingDetails{Booking: b})
		}
	}
	return out, nil
}

func (m *memBookings) ListByBusiness(_ context.Context, businessID primitive.ObjectID) ([]models.BookingDetails, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.BookingDetails{}
	for _, b := range m.items {
		if b.Business == businessID {
			out = append(out, models.BookingDetails{Booking: b})
		}
	}
	return out, nil
}

func (m *memBookings) ExpireBefore(_ context.Context, day string, at time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for i := range m.items {
		b := &m.items[i]
		if b.BookingDay < day && (b.Status == models.StatusPending || b.Status == models.StatusInProgress) {
			b.Status = models.StatusCancelled
			b.UpdatedAt = at
			n++
		}
	}
	return n, nil
}

type memBusinesses struct {
	items []models.Business
}

func (m *memBusinesses) GetByID(_ context.Context, id primitive.ObjectID) (*models.Business, error) {
	for _, b := range m.items {
		if b.ID == id {
			cp := b
			return &cp, nil
		}
	}
	return nil, businessRepo.ErrBusinessNotFound
}

func (m *memBusinesses) GetByName(_ context.Context, name string) (*models.Business, error) {
	for _, b := range m.items {
		if b.BusinessName == name {
			cp := b
			return &cp, nil
		}
	}
	return nil, businessRepo.ErrBusinessNotFound
}

func (m *memBusinesses) ListOpen(_ context.Context) ([]models.Business, error) {
	out := []models.Business{}
	for _, b := range m.items {
		if b.IsOpen {
			out = append(out, b)
		}
	}
	return out, nil
}
