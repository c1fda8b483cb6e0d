package queue

import (
	"strings"
	"time"

	"skiply/models"
	"skiply/utils"
)

// dayOf truncates t to its calendar day in the queue time zone.
func (s *DefaultQueueService) dayOf(t time.Time) string {
	return t.In(s.Location).Format(models.DayLayout)
}

func (s *DefaultQueueService) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

// parseInstant reads a caller supplied time. Empty means now; a bare date is
// midnight of that day in the queue time zone.
func (s *DefaultQueueService) parseInstant(raw, field string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return s.now(), nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation(models.DayLayout, raw, s.Location); err == nil {
		return t, nil
	}
	return time.Time{}, utils.NewValidationError("Invalid " + field + ": expected RFC3339 or YYYY-MM-DD")
}
