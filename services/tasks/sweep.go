package tasks

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

const TypeExpireStaleBookings = "queue:expire-stale"

// ExpireStalePayload records who enqueued a sweep.
type ExpireStalePayload struct {
	Source      string    `json:"source"`
	RequestedAt time.Time `json:"requestedAt"`
}

func NewExpireStaleTask(source string, at time.Time) (*asynq.Task, error) {
	b, err := json.Marshal(ExpireStalePayload{Source: source, RequestedAt: at})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeExpireStaleBookings, b, asynq.MaxRetry(3), asynq.Timeout(2*time.Minute)), nil
}
