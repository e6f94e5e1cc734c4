package data

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const weaponDoc = `
weapons:
  - slot: 0
    name: blaster
    damage: 1
    cooldown: 0.1
    projectile_speed: 20
    lifetime: 1
  - slot: 2
    name: scatter
    damage: 1
    cooldown: 0.5
    projectile_speed: 16
    lifetime: 0.6
    count: 5
    spread: 40
`

func TestParseWeaponTable(t *testing.T) {
	tbl, err := ParseWeaponTable([]byte(weaponDoc))
	require.NoError(t, err)
	require.Equal(t, 2, tbl.Count())
	require.Equal(t, 0, tbl.First())

	w := tbl.Get(2)
	require.NotNil(t, w)
	require.Equal(t, "scatter", w.Name)
	require.Equal(t, 5, w.Projectiles())
	require.Equal(t, float32(40), w.Spread)

	require.Equal(t, 1, tbl.Get(0).Projectiles())
	require.Nil(t, tbl.Get(1))
	require.Nil(t, tbl.Get(-1))
	require.Nil(t, tbl.Get(SlotCount))
}

func TestParseWeaponTableRejects(t *testing.T) {
	cases := map[string]string{
		"slot 10 out of range": "weapons:\n  - {slot: 10, name: x, cooldown: 1, lifetime: 1}\n",
		"already taken":        "weapons:\n  - {slot: 1, name: a, cooldown: 1, lifetime: 1}\n  - {slot: 1, name: b, cooldown: 1, lifetime: 1}\n",
		"must be positive":     "weapons:\n  - {slot: 1, name: a, cooldown: 0, lifetime: 1}\n",
		"no weapons":           "weapons: []\n",
		"parse weapon_list":    "weapons: [\n",
	}
	for want, doc := range cases {
		_, err := ParseWeaponTable([]byte(doc))
		require.ErrorContains(t, err, want, doc)
	}
}

func TestLoadWeaponTableFallback(t *testing.T) {
	fallback := DefaultWeaponTable(1, 0.1, 20, 1)
	tbl, err := LoadWeaponTable(filepath.Join(t.TempDir(), "missing.yaml"), fallback)
	require.NoError(t, err)
	require.Same(t, fallback, tbl)

	path := filepath.Join(t.TempDir(), "weapons.yaml")
	require.NoError(t, os.WriteFile(path, []byte(weaponDoc), 0o644))
	tbl, err = LoadWeaponTable(path, fallback)
	require.NoError(t, err)
	require.Equal(t, 2, tbl.Count())
}
