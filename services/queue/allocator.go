package queue

import (
	"context"
	"errors"
	"fmt"
	"sync"

	bookingRepo "skiply/database/repository/booking"
	"skiply/models"

	"go.uber.org/zap"
)

// maxAllocationAttempts bounds retries after another writer took the token.
const maxAllocationAttempts = 5

// ErrAllocationExhausted is returned when every attempt hit a taken token.
var ErrAllocationExhausted = errors.New("token allocation retries exhausted")

// TokenAllocator hands out sequential tokens per queue scope.
type TokenAllocator struct {
	bookings bookingRepo.BookingRepository
	locks    *scopeLocks
}

func NewTokenAllocator(bookings bookingRepo.BookingRepository) *TokenAllocator {
	return &TokenAllocator{
		bookings: bookings,
		locks:    &scopeLocks{locks: make(map[string]*scopeLock)},
	}
}

// Next returns the token the next booking in scope would receive. It does not
// reserve anything.
func (a *TokenAllocator) Next(ctx context.Context, scope models.QueueScope) (int, error) {
	n, err := a.bookings.CountInScope(ctx, scope)
	if err != nil {
		return 0, err
	}
	return int(n) + 1, nil
}

// Allocate picks the next token and hands it to persist while holding the
// scope lock. If persist reports ErrDuplicateToken (a writer in another process
// got there first) the count is redone.
func (a *TokenAllocator) Allocate(ctx context.Context, scope models.QueueScope, persist func(token int) error) (int, error) {
	unlock := a.locks.lock(scope.Key())
	defer unlock()

	for attempt := 1; attempt <= maxAllocationAttempts; attempt++ {
		token, err := a.Next(ctx, scope)
		if err != nil {
			return 0, err
		}

		err = persist(token)
		if err == nil {
			return token, nil
		}
		if !errors.Is(err, bookingRepo.ErrDuplicateToken) {
			return 0, err
		}
		zap.L().Warn("token taken concurrently, retrying",
			zap.String("scope", scope.Key()),
			zap.Int("token", token),
			zap.Int("attempt", attempt),
		)
		if err := ctx.Err(); err != nil {
			return 0, err
		}
	}
	return 0, fmt.Errorf("%w for scope %s", ErrAllocationExhausted, scope.Key())
}

// scopeLocks is a refcounted mutex per scope key; entries are dropped once
// nobody holds or waits on them.
type scopeLocks struct {
	mu    sync.Mutex
	locks map[string]*scopeLock
}

type scopeLock struct {
	mu   sync.Mutex
	refs int
}

func (l *scopeLocks) lock(key string) func() {
	l.mu.Lock()
	sl, ok := l.locks[key]
	if !ok {
		sl = &scopeLock{}
		l.locks[key] = sl
	}
	sl.refs++
	l.mu.Unlock()

	sl.mu.Lock()
	return func() {
		sl.mu.Unlock()
		l.mu.Lock()
		sl.refs--
		if sl.refs == 0 {
			delete(l.locks, key)
		}
		l.mu.Unlock()
	}
}

func (l *scopeLocks) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
