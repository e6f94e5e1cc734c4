package system

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type recorder struct {
	phase Phase
	name  string
	log   *[]string
}

func (r recorder) Phase() Phase       { return r.phase }
func (r recorder) Update(now float64) { *r.log = append(*r.log, r.name) }

func TestRunnerPhaseOrder(t *testing.T) {
	var log []string
	r := NewRunner()
	r.Register(recorder{PhaseCleanup, "cleanup", &log})
	r.Register(recorder{PhaseDeath, "death", &log})
	r.Register(recorder{PhaseIntegrate, "integrate-a", &log})
	r.Register(recorder{PhaseIntegrate, "integrate-b", &log})
	r.Register(recorder{PhaseContact, "contact", &log})

	r.Tick(1)
	require.Equal(t, []string{"integrate-a", "integrate-b", "contact", "death", "cleanup"}, log)
	require.Equal(t, uint64(1), r.Ticks())

	log = log[:0]
	r.Tick(2)
	require.Len(t, log, 5)
	require.Equal(t, uint64(2), r.Ticks())
}

func TestPhaseString(t *testing.T) {
	require.Equal(t, "projectile", PhaseProjectile.String())
	require.Equal(t, "unknown", Phase(42).String())
}
