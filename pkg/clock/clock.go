package clock

import "time"

// Clock is the time source handed to everything that needs "now".
type Clock interface {
	Now() time.Time
}

// System reads the wall clock in the configured location.
type System struct {
	Location *time.Location
}

// NewSystem returns a System clock; nil location means UTC.
func NewSystem(loc *time.Location) System {
	if loc == nil {
		loc = time.UTC
	}
	return System{Location: loc}
}

func (s System) Now() time.Time {
	if s.Location == nil {
		return time.Now().UTC()
	}
	return time.Now().In(s.Location)
}

// Func adapts a plain function to Clock.
type Func func() time.Time

func (f Func) Now() time.Time { return f() }

// Fixed always reports the same instant. Useful in tests.
func Fixed(t time.Time) Clock {
	return Func(func() time.Time { return t })
}
