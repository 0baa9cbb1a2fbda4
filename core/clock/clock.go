package clock

import "time"

// Clock abstracts "now" so scheduling logic stays deterministic in tests.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}

// System returns the wall-clock implementation used in production.
func System() Clock {
	return systemClock{}
}

type fixedClock struct {
	t time.Time
}

func (c fixedClock) Now() time.Time {
	return c.t
}

// Fixed returns a clock frozen at t, for tests.
func Fixed(t time.Time) Clock {
	return fixedClock{t: t}
}
