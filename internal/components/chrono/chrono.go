package chrono

import (
	"time"
	_ "time/tzdata"
)

// API is the interface that anything depending on the system clock should
// use.
type API interface {
	Now() time.Time
	Location() *time.Location
}

// StandardImpl reads the system clock and reports it in the location the
// collection schedules are published in.
type StandardImpl struct {
	location *time.Location
}

// NewStandardImpl returns a StandardImpl for Europe/London.
func NewStandardImpl() (StandardImpl, error) {
	location, err := time.LoadLocation("Europe/London")
	if err != nil {
		return StandardImpl{}, err
	}
	return StandardImpl{location: location}, nil
}

func (s StandardImpl) Now() time.Time {
	return time.Now().In(s.location)
}

func (s StandardImpl) Location() *time.Location {
	return s.location
}

// FixedImpl always returns the same time, it is for tests.
type FixedImpl struct {
	Time time.Time
}

func (f FixedImpl) Now() time.Time {
	return f.Time
}

func (f FixedImpl) Location() *time.Location {
	return f.Time.Location()
}
