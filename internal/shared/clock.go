package shared

import "time"

// Clock abstracts time lookups so validation and cache logic can be
// tested with a fixed instant.
type Clock interface {
	Now() time.Time
}

// NewClock returns a Clock backed by the system time.
func NewClock() Clock {
	return &systemClock{}
}

type systemClock struct{}

func (c *systemClock) Now() time.Time {
	return time.Now()
}

// FixedClock always reports the same instant.
type FixedClock struct {
	Time time.Time
}

func (c *FixedClock) Now() time.Time {
	return c.Time
}
