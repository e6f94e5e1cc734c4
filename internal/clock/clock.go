// Package clock supplies the game time that drives the simulation loop.
// Times are seconds as float64, matching the tick arithmetic.
package clock

import (
	"sync"
	"time"
)

// Clock is a monotonic time source.
type Clock interface {
	Time() float64
}

// Monotonic reports seconds elapsed since it was created, using the
// runtime's monotonic reading so wall-clock jumps are ignored.
type Monotonic struct {
	start time.Time
}

func NewMonotonic() *Monotonic {
	return &Monotonic{start: time.Now()}
}

func (m *Monotonic) Time() float64 {
	return time.Since(m.start).Seconds()
}

// Manual only moves when told to. Used by tests and headless replays.
type Manual struct {
	mu  sync.Mutex
	now float64
}

func NewManual(start float64) *Manual {
	return &Manual{now: start}
}

func (m *Manual) Time() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

func (m *Manual) Set(t float64) {
	m.mu.Lock()
	m.now = t
	m.mu.Unlock()
}

func (m *Manual) Advance(d float64) float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now += d
	return m.now
}
