package queue

// DefaultMinutesPerPerson is the service time assumed for each person ahead.
const DefaultMinutesPerPerson = 5

// WaitEstimator turns a number of people ahead into an expected wait.
type WaitEstimator interface {
	EstimateMinutes(peopleAhead int) int
}

// LinearEstimator charges a fixed number of minutes per person.
type LinearEstimator struct {
	MinutesPerPerson int
}

func (e LinearEstimator) EstimateMinutes(peopleAhead int) int {
	if peopleAhead <= 0 {
		return 0
	}
	return peopleAhead * e.MinutesPerPerson
}
