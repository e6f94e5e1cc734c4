package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/profile"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/neonland/sim/internal/config"
	"github.com/neonland/sim/internal/data"
	"github.com/neonland/sim/internal/game"
	"github.com/neonland/sim/internal/scripting"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfgPath := "config/neonland.toml"
	if p := os.Getenv("NEONLAND_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	var headless float64
	if v := os.Getenv("NEONLAND_HEADLESS_SECONDS"); v != "" {
		headless, err = strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("NEONLAND_HEADLESS_SECONDS: %w", err)
		}
	}
	// The terminal frontend owns the screen, so logs go to a file.
	if headless <= 0 && cfg.Logging.File == "" {
		cfg.Logging.File = "neonland.log"
	}

	switch os.Getenv("NEONLAND_PROFILE") {
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	case "mem":
		defer profile.Start(profile.MemProfileAllocs, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	}

	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	weapons, err := data.LoadWeaponTable(cfg.Data.WeaponTable, nil)
	if err != nil {
		return fmt.Errorf("load weapon table: %w", err)
	}
	if weapons != nil {
		log.Info("weapon table loaded", zap.String("path", cfg.Data.WeaponTable), zap.Int("weapons", weapons.Count()))
	}

	luaEngine, err := scripting.NewEngine(cfg.Data.ScriptsDir, log)
	if err != nil {
		return fmt.Errorf("lua engine: %w", err)
	}
	defer luaEngine.Close()

	sess, err := game.NewSession(game.Deps{
		Config:    cfg,
		Log:       log,
		Weapons:   weapons,
		Scripting: luaEngine,
	})
	if err != nil {
		return fmt.Errorf("session: %w", err)
	}
	defer sess.Close()

	if headless > 0 {
		printBanner()
		printSection("arena")
		printStat("enemies", sess.World().Enemies.Len())
		printStat("instance capacity", sess.MaxInstanceCount())
		fmt.Println()
		return runHeadless(sess, headless, log)
	}
	return runTerminal(sess, log)
}

func printBanner() {
	fmt.Println()
	fmt.Println("\033[35;1m  ┌───────────────────────────────────────────┐\033[0m")
	fmt.Println("\033[35;1m  │\033[0m                 NEONLAND                  \033[35;1m│\033[0m")
	fmt.Println("\033[35;1m  └───────────────────────────────────────────┘\033[0m")
	fmt.Println()
}

func printSection(title string) {
	lineLen := max(46-len(title)-1, 3)
	fmt.Printf("  \033[33m── %s %s\033[0m\n", title, strings.Repeat("─", lineLen))
}

func printStat(label string, count int) {
	numStr := strconv.Itoa(count)
	dotsLen := max(42-len(label)-len(numStr), 3)
	fmt.Printf("  %s \033[90m%s\033[0m \033[32m%s\033[0m\n", label, strings.Repeat("·", dotsLen), numStr)
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	if cfg.File != "" {
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		zapCfg.OutputPaths = []string{cfg.File}
		zapCfg.ErrorOutputPaths = []string{cfg.File}
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
