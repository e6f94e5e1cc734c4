package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestManualClock(t *testing.T) {
	m := NewManual(1)
	require.Equal(t, 1.0, m.Time())
	require.Equal(t, 1.5, m.Advance(0.5))
	m.Set(10)
	require.Equal(t, 10.0, m.Time())
}

func TestPausableFreezesAndResumes(t *testing.T) {
	src := NewManual(0)
	p := NewPausable(src)

	src.Set(2)
	require.Equal(t, 2.0, p.Time())

	require.True(t, p.Toggle())
	src.Set(5)
	require.Equal(t, 2.0, p.Time())
	require.Equal(t, 3.0, p.TotalPaused())
	require.Equal(t, 5.0, p.RealTime())

	require.False(t, p.Toggle())
	require.Equal(t, 2.0, p.Time())
	src.Set(6)
	require.Equal(t, 3.0, p.Time())

	// Redundant calls are no-ops.
	p.Resume()
	require.Equal(t, 3.0, p.Time())
	p.Pause()
	p.Pause()
	src.Set(8)
	p.Resume()
	require.Equal(t, 3.0, p.Time())
}

func TestMonotonicAdvances(t *testing.T) {
	m := NewMonotonic()
	a := m.Time()
	time.Sleep(2 * time.Millisecond)
	require.Greater(t, m.Time(), a)
}
