package main

import (
	"fmt"
	"math"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/neonland/sim/internal/component"
	"github.com/neonland/sim/internal/game"
)

const frameInterval = 16 * time.Millisecond

// runHeadless drives the session without a screen for the given number of
// seconds. An autopilot sweeps the aim in a circle with the trigger held and
// strafes slowly, so every tick phase gets exercised.
func runHeadless(sess *game.Session, seconds float64, log *zap.Logger) error {
	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(shutdownCh)

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	sess.SetMouseDown(true)
	sess.Start()
	start := time.Now()
	var frames, peak int

	for {
		select {
		case <-ticker.C:
			elapsed := time.Since(start).Seconds()
			if elapsed >= seconds || sess.ShouldQuit() {
				printSummary(sess, frames, peak)
				return nil
			}

			angle := elapsed * 2
			sess.SetCursorPosition(float32(0.6*math.Cos(angle)), float32(0.6*math.Sin(angle)))
			sess.SetDirectionalInput(float32(math.Cos(elapsed/3)), float32(math.Sin(elapsed/5)))

			sess.Update(16.0 / 9.0)
			f := sess.FrameData()
			frames++
			peak = max(peak, f.InstanceCount())

		case sig := <-shutdownCh:
			log.Info("shutdown signal", zap.String("signal", sig.String()))
			printSummary(sess, frames, peak)
			return nil
		}
	}
}

func printSummary(sess *game.Session, frames, peakInstances int) {
	st := sess.Stats()
	f := sess.FrameData()

	printSection("session")
	printStat("frames", frames)
	printStat("ticks", int(st.Ticks))
	printStat("shots", st.Shots)
	printStat("kills", st.Kills)
	printStat("damage taken", int(st.DamageTaken))
	printStat("peak instances", peakInstances)
	printSection("last frame")
	for t := 0; t < len(f.GroupSizes); t++ {
		printStat(component.MeshType(t).String(), f.GroupSizes[t])
	}
	if sess.GameOver() {
		fmt.Printf("  \033[31mgame over\033[0m at %.2fs\n", st.GameOverAt)
	}
	fmt.Printf("  frame digest %016x\n\n", f.Digest())
}
