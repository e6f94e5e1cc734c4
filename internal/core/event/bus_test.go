package event

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBusDeliversInEmissionOrder(t *testing.T) {
	b := NewBus()
	var got []string
	Subscribe(b, func(e ShotFired) { got = append(got, "shot:"+e.Weapon) })
	Subscribe(b, func(e GameOver) { got = append(got, "over") })

	Emit(b, ShotFired{Weapon: "a"})
	Emit(b, GameOver{})
	Emit(b, ShotFired{Weapon: "b"})
	require.Equal(t, 3, b.Pending())
	require.Empty(t, got)

	require.Equal(t, 3, b.Flush())
	require.Equal(t, []string{"shot:a", "over", "shot:b"}, got)
	require.Equal(t, 0, b.Pending())
	require.Equal(t, 0, b.Flush())
}

func TestBusHandlerEmitsGoToNextFlush(t *testing.T) {
	b := NewBus()
	kills := 0
	Subscribe(b, func(e EnemyKilled) { kills++ })
	Subscribe(b, func(e GameOver) { Emit(b, EnemyKilled{}) })

	Emit(b, GameOver{})
	b.Flush()
	require.Equal(t, 0, kills)
	b.Flush()
	require.Equal(t, 1, kills)
}
