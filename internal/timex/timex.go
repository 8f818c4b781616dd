// Package timex provides small time helpers shared across the project:
// an injectable clock and a JSON-friendly duration type.
package timex

import (
	"errors"
	"time"
)

// Clock abstracts time.Now so expiry logic can be tested deterministically.
// Core services never read the wall clock directly.
type Clock interface {
	Now() time.Time
}

// System is the Clock used in production; it delegates to time.Now.
type System struct{}

func (System) Now() time.Time { return time.Now() }

// Mock is a manually advanced Clock for tests.
type Mock struct {
	T time.Time
}

func NewMock(t time.Time) *Mock { return &Mock{T: t} }

func (m *Mock) Now() time.Time { return m.T }

// Advance moves the mock clock forward by d.
func (m *Mock) Advance(d time.Duration) { m.T = m.T.Add(d) }

// ErrInvalidDuration is returned when a JSON duration is neither a string
// accepted by time.ParseDuration nor a number of nanoseconds.
var ErrInvalidDuration = errors.New("invalid duration")
