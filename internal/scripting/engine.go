package scripting

import (
	"fmt"
	"os"
	"path/filepath"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// Engine wraps a single gopher-lua VM for tuning formulas. It is only called
// from sequential code: arena construction and the fire phase.
type Engine struct {
	vm  *lua.LState
	log *zap.Logger
}

// NewEngine creates a Lua engine and loads every script under scriptsDir's
// feature subdirectories. Missing directories are skipped.
func NewEngine(scriptsDir string, log *zap.Logger) (*Engine, error) {
	vm := lua.NewState()
	e := &Engine{vm: vm, log: log}

	for _, sub := range []string{"enemy", "weapon"} {
		p := filepath.Join(scriptsDir, sub)
		if err := e.loadDir(p); err != nil {
			vm.Close()
			return nil, fmt.Errorf("load %s scripts: %w", sub, err)
		}
	}

	return e, nil
}

// NewEngineFromSource builds an engine from a single chunk of Lua source.
func NewEngineFromSource(src string, log *zap.Logger) (*Engine, error) {
	vm := lua.NewState()
	if err := vm.DoString(src); err != nil {
		vm.Close()
		return nil, fmt.Errorf("load lua source: %w", err)
	}
	return &Engine{vm: vm, log: log}, nil
}

// loadDir loads all .lua files in a directory.
func (e *Engine) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // skip missing dirs
		}
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := e.vm.DoFile(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		e.log.Debug("loaded lua script", zap.String("file", path))
	}
	return nil
}

// EnemyContext describes one enemy about to be spawned on the grid.
type EnemyContext struct {
	Index  int
	Column int
	Row    int
	X      float32
	Y      float32
	Roll   float32 // uniform in [-1, 1], drawn by the caller
}

// EnemyStats is the tuning for one spawned enemy.
type EnemyStats struct {
	HP             int32
	AttackDamage   int32
	AttackCooldown float64
	Spin           float32 // degrees per second around Z
}

// CalcEnemyStats calls enemy_stats(ctx, defaults). Any field the script
// omits keeps its default; a missing function returns the defaults.
func (e *Engine) CalcEnemyStats(ctx EnemyContext, def EnemyStats) EnemyStats {
	fn := e.vm.GetGlobal("enemy_stats")
	if fn == lua.LNil {
		return def
	}

	t := e.vm.NewTable()
	t.RawSetString("index", lua.LNumber(ctx.Index))
	t.RawSetString("column", lua.LNumber(ctx.Column))
	t.RawSetString("row", lua.LNumber(ctx.Row))
	t.RawSetString("x", lua.LNumber(ctx.X))
	t.RawSetString("y", lua.LNumber(ctx.Y))
	t.RawSetString("roll", lua.LNumber(ctx.Roll))

	d := e.vm.NewTable()
	d.RawSetString("hp", lua.LNumber(def.HP))
	d.RawSetString("attack_damage", lua.LNumber(def.AttackDamage))
	d.RawSetString("attack_cooldown", lua.LNumber(def.AttackCooldown))
	d.RawSetString("spin", lua.LNumber(def.Spin))

	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, t, d); err != nil {
		e.log.Error("lua enemy_stats error", zap.Error(err))
		return def
	}

	result := e.vm.Get(-1)
	e.vm.Pop(1)

	rt, ok := result.(*lua.LTable)
	if !ok {
		e.log.Error("lua enemy_stats returned non-table")
		return def
	}

	return EnemyStats{
		HP:             int32(lNumOr(rt, "hp", float64(def.HP))),
		AttackDamage:   int32(lNumOr(rt, "attack_damage", float64(def.AttackDamage))),
		AttackCooldown: lNumOr(rt, "attack_cooldown", def.AttackCooldown),
		Spin:           float32(lNumOr(rt, "spin", float64(def.Spin))),
	}
}

// ShotContext describes one projectile the player is firing.
type ShotContext struct {
	Weapon     string
	Slot       int
	BaseDamage int32
	Volley     int // index of this projectile within the volley
	Time       float64
}

// CalcShotDamage calls shot_damage(ctx) and returns the damage carried by
// the projectile. Missing function or a bad result keeps BaseDamage.
func (e *Engine) CalcShotDamage(ctx ShotContext) int32 {
	fn := e.vm.GetGlobal("shot_damage")
	if fn == lua.LNil {
		return ctx.BaseDamage
	}

	t := e.vm.NewTable()
	t.RawSetString("weapon", lua.LString(ctx.Weapon))
	t.RawSetString("slot", lua.LNumber(ctx.Slot))
	t.RawSetString("base_damage", lua.LNumber(ctx.BaseDamage))
	t.RawSetString("volley", lua.LNumber(ctx.Volley))
	t.RawSetString("time", lua.LNumber(ctx.Time))

	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, t); err != nil {
		e.log.Error("lua shot_damage error", zap.Error(err))
		return ctx.BaseDamage
	}

	result := e.vm.Get(-1)
	e.vm.Pop(1)

	n, ok := result.(lua.LNumber)
	if !ok {
		e.log.Error("lua shot_damage returned non-number", zap.String("type", result.Type().String()))
		return ctx.BaseDamage
	}
	return int32(n)
}

func lNumOr(t *lua.LTable, key string, def float64) float64 {
	v, ok := t.RawGetString(key).(lua.LNumber)
	if !ok {
		return def
	}
	return float64(v)
}

func (e *Engine) Close() {
	e.vm.Close()
}
