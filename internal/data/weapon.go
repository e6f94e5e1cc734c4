package data

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// SlotCount is the number of selectable weapon slots (keys 1-9 and 0).
const SlotCount = 10

// Weapon holds the static firing data for one weapon slot.
type Weapon struct {
	Slot            int     `yaml:"slot"` // 0-based; key 0 selects slot 9
	Name            string  `yaml:"name"`
	Damage          int32   `yaml:"damage"`
	Cooldown        float64 `yaml:"cooldown"` // seconds between volleys
	ProjectileSpeed float32 `yaml:"projectile_speed"`
	Lifetime        float64 `yaml:"lifetime"` // seconds before a projectile despawns
	Count           int     `yaml:"count"`    // projectiles per volley (0 treated as 1)
	Spread          float32 `yaml:"spread"`   // total fan angle in degrees
}

// Projectiles is Count with the zero value treated as a single shot.
func (w *Weapon) Projectiles() int {
	if w.Count < 1 {
		return 1
	}
	return w.Count
}

type weaponListFile struct {
	Weapons []Weapon `yaml:"weapons"`
}

// WeaponTable holds the weapons indexed by slot. Empty slots are nil.
type WeaponTable struct {
	slots [SlotCount]*Weapon
}

// DefaultWeaponTable has a single blaster in slot 0 built from the given
// numbers.
func DefaultWeaponTable(damage int32, cooldown float64, speed float32, lifetime float64) *WeaponTable {
	t := &WeaponTable{}
	t.slots[0] = &Weapon{
		Name:            "blaster",
		Damage:          damage,
		Cooldown:        cooldown,
		ProjectileSpeed: speed,
		Lifetime:        lifetime,
		Count:           1,
	}
	return t
}

// LoadWeaponTable loads weapon slots from a YAML file. A missing file
// returns fallback.
func LoadWeaponTable(path string, fallback *WeaponTable) (*WeaponTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fallback, nil
		}
		return nil, fmt.Errorf("read weapon_list: %w", err)
	}
	return ParseWeaponTable(raw)
}

// ParseWeaponTable decodes and validates a weapon list document.
func ParseWeaponTable(raw []byte) (*WeaponTable, error) {
	var f weaponListFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse weapon_list: %w", err)
	}
	t := &WeaponTable{}
	for i := range f.Weapons {
		w := &f.Weapons[i]
		if w.Slot < 0 || w.Slot >= SlotCount {
			return nil, fmt.Errorf("weapon %q: slot %d out of range", w.Name, w.Slot)
		}
		if t.slots[w.Slot] != nil {
			return nil, fmt.Errorf("weapon %q: slot %d already taken by %q", w.Name, w.Slot, t.slots[w.Slot].Name)
		}
		if w.Cooldown <= 0 || w.Lifetime <= 0 {
			return nil, fmt.Errorf("weapon %q: cooldown and lifetime must be positive", w.Name)
		}
		t.slots[w.Slot] = w
	}
	if t.Count() == 0 {
		return nil, errors.New("weapon_list: no weapons defined")
	}
	return t, nil
}

// Get returns the weapon in slot, or nil if the slot is empty or out of range.
func (t *WeaponTable) Get(slot int) *Weapon {
	if slot < 0 || slot >= SlotCount {
		return nil
	}
	return t.slots[slot]
}

// First returns the lowest occupied slot.
func (t *WeaponTable) First() int {
	for i, w := range t.slots {
		if w != nil {
			return i
		}
	}
	return 0
}

// Count returns the number of occupied slots.
func (t *WeaponTable) Count() int {
	n := 0
	for _, w := range t.slots {
		if w != nil {
			n++
		}
	}
	return n
}
