package queue

import (
	"fmt"

	"skiply/models"
)

// allowedTransitions lists the statuses each status may move to.
// Completed and cancelled are terminal.
var allowedTransitions = map[models.BookingStatus][]models.BookingStatus{
	models.StatusPending:    {models.StatusInProgress, models.StatusCompleted, models.StatusCancelled},
	models.StatusInProgress: {models.StatusCompleted, models.StatusCancelled},
}

// TransitionError rejects a status change the lifecycle does not allow.
type TransitionError struct {
	From models.BookingStatus
	To   models.BookingStatus
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot move booking from %s to %s", e.From, e.To)
}

// checkTransition returns nil when from may move to to. Staying put is allowed.
func checkTransition(from, to models.BookingStatus) error {
	if from == to {
		return nil
	}
	for _, next := range allowedTransitions[from] {
		if next == to {
			return nil
		}
	}
	return &TransitionError{From: from, To: to}
}
