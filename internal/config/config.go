package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Simulation SimulationConfig `toml:"simulation"`
	Arena      ArenaConfig      `toml:"arena"`
	Player     PlayerConfig     `toml:"player"`
	Enemies    EnemiesConfig    `toml:"enemies"`
	Data       DataConfig       `toml:"data"`
	Logging    LoggingConfig    `toml:"logging"`
}

type SimulationConfig struct {
	Timestep         float64 `toml:"timestep"`           // seconds per tick
	MaxInstanceCount int     `toml:"max_instance_count"` // instance buffer capacity
	Workers          int     `toml:"workers"`            // 0 = GOMAXPROCS
	ParallelMinChunk int     `toml:"parallel_min_chunk"` // entities per worker, 0 = built-in
	BacklogWarnTicks int     `toml:"backlog_warn_ticks"` // log when one frame runs more ticks
}

type ArenaConfig struct {
	Width          float32 `toml:"width"`
	Height         float32 `toml:"height"`
	CameraDistance float32 `toml:"camera_distance"`
	FarClip        float32 `toml:"far_clip"`
	FieldOfView    float32 `toml:"field_of_view"` // vertical, degrees
}

type PlayerConfig struct {
	HP               int32   `toml:"hp"`
	Speed            float32 `toml:"speed"`
	ShotCooldown     float64 `toml:"shot_cooldown"` // used when the weapon table is empty
	ProjectileSpeed  float32 `toml:"projectile_speed"`
	ProjectileLife   float64 `toml:"projectile_life"`
	ProjectileDamage int32   `toml:"projectile_damage"`
	MuzzleOffset     float32 `toml:"muzzle_offset"`
}

type EnemiesConfig struct {
	Count          int     `toml:"count"`
	Gap            float32 `toml:"gap"`
	HP             int32   `toml:"hp"`
	AttackDamage   int32   `toml:"attack_damage"`
	AttackCooldown float64 `toml:"attack_cooldown"`
	MaxSpin        float32 `toml:"max_spin"` // degrees per second around Z
	Seed           int64   `toml:"seed"`     // 0 = random
}

type DataConfig struct {
	WeaponTable string `toml:"weapon_table"`
	ScriptsDir  string `toml:"scripts_dir"`
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
	File   string `toml:"file"`   // log destination; empty = stderr
}

// Load reads a TOML file over the defaults. A missing file yields the
// defaults unchanged.
func Load(path string) (*Config, error) {
	cfg := Defaults()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects values the loop cannot run with.
func (c *Config) Validate() error {
	switch {
	case c.Simulation.Timestep <= 0:
		return fmt.Errorf("simulation.timestep must be positive, got %v", c.Simulation.Timestep)
	case c.Simulation.MaxInstanceCount <= 0:
		return fmt.Errorf("simulation.max_instance_count must be positive, got %d", c.Simulation.MaxInstanceCount)
	case c.Arena.Width <= 0 || c.Arena.Height <= 0:
		return fmt.Errorf("arena size must be positive, got %vx%v", c.Arena.Width, c.Arena.Height)
	case c.Simulation.ParallelMinChunk < 0:
		return fmt.Errorf("simulation.parallel_min_chunk must not be negative, got %d", c.Simulation.ParallelMinChunk)
	case c.Enemies.Count < 0:
		return fmt.Errorf("enemies.count must not be negative, got %d", c.Enemies.Count)
	}
	return nil
}

func Defaults() *Config {
	return &Config{
		Simulation: SimulationConfig{
			Timestep:         1.0 / 60.0,
			MaxInstanceCount: 20_000,
			BacklogWarnTicks: 30,
		},
		Arena: ArenaConfig{
			Width:          20,
			Height:         20,
			CameraDistance: 20,
			FarClip:        200,
			FieldOfView:    60,
		},
		Player: PlayerConfig{
			HP:               100,
			Speed:            5,
			ShotCooldown:     0.1,
			ProjectileSpeed:  20,
			ProjectileLife:   1,
			ProjectileDamage: 1,
			MuzzleOffset:     0.5,
		},
		Enemies: EnemiesConfig{
			Count:          10_000,
			Gap:            2,
			HP:             2,
			AttackDamage:   1,
			AttackCooldown: 1,
			MaxSpin:        30,
		},
		Data: DataConfig{
			WeaponTable: "data/yaml/weapon_list.yaml",
			ScriptsDir:  "scripts",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
