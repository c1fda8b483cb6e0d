package queue

import (
	"context"

	"skiply/utils"

	"go.uber.org/zap"
)

// ExpireStaleBookings cancels pending and in-progress bookings left over from
// earlier days.
func (s *DefaultQueueService) ExpireStaleBookings(ctx context.Context) (int64, error) {
	now := s.now()
	today := s.dayOf(now)

	n, err := s.Bookings.ExpireBefore(ctx, today, now)
	if err != nil {
		return 0, utils.NewInternalError("Failed to expire stale bookings", err)
	}
	utils.GetLogger().Info("Expired stale bookings", zap.String("before", today), zap.Int64("count", n))
	return n, nil
}
