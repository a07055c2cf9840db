package timestamps

import (
	"errors"
	"time"
)

// ErrInvalidWindow is returned when a window's end does not exceed its start.
var ErrInvalidWindow = errors.New("end timestamp must be greater than start timestamp")

// Window is a half-open extraction window [Start, End). Bounds are kept in
// UTC; construction is the single place the end > start invariant is
// enforced, before any database or network work happens.
type Window struct {
	start time.Time
	end   time.Time
}

// NewWindow validates and builds a window from two instants.
func NewWindow(start, end time.Time) (Window, error) {
	if !end.After(start) {
		return Window{}, ErrInvalidWindow
	}
	return Window{start: start.UTC(), end: end.UTC()}, nil
}

// StartUTC returns the inclusive lower bound in UTC.
func (w Window) StartUTC() time.Time { return w.start }

// EndUTC returns the exclusive upper bound in UTC.
func (w Window) EndUTC() time.Time { return w.end }
