package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/neonland/sim/internal/component"
	"github.com/neonland/sim/internal/game"
	"github.com/neonland/sim/internal/render"
)

// Terminals report key presses but not releases, so a movement key keeps the
// player moving for this long after its last repeat.
const moveHold = 150 * time.Millisecond

var (
	glyphs = [component.MeshTypeCount]rune{0, '@', '#', '·', '+'}
	styles = [component.MeshTypeCount]tcell.Style{
		tcell.StyleDefault,
		tcell.StyleDefault.Foreground(tcell.NewRGBColor(0, 255, 255)).Bold(true),
		tcell.StyleDefault.Foreground(tcell.NewRGBColor(255, 0, 160)),
		tcell.StyleDefault.Foreground(tcell.ColorYellow),
		tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true),
	}
	hudStyle = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.NewRGBColor(0, 200, 200))
)

type terminal struct {
	screen tcell.Screen
	sess   *game.Session
	log    *zap.Logger

	width, height int
	dir           mgl32.Vec2
	dirUntil      time.Time
}

func runTerminal(sess *game.Session, log *zap.Logger) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("new screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()
	screen.EnableMouse()
	screen.HideCursor()

	t := &terminal{screen: screen, sess: sess, log: log}
	t.width, t.height = screen.Size()

	eventCh := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			eventCh <- ev
		}
	}()

	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(shutdownCh)

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	sess.Start()
	for !sess.ShouldQuit() {
		select {
		case ev := <-eventCh:
			t.handle(ev)
		case <-ticker.C:
			t.frame()
		case sig := <-shutdownCh:
			log.Info("shutdown signal", zap.String("signal", sig.String()))
			sess.RequestQuit()
		}
	}
	return nil
}

func (t *terminal) handle(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape:
			t.sess.TogglePause()
		case tcell.KeyCtrlC:
			t.sess.RequestQuit()
		case tcell.KeyRune:
			t.handleRune(ev.Rune())
		}

	case *tcell.EventMouse:
		x, y := ev.Position()
		t.sess.SetCursorPosition(toScreen(x, t.width), -toScreen(y, t.height))
		t.sess.SetMouseDown(ev.Buttons()&tcell.Button1 != 0)

	case *tcell.EventResize:
		t.screen.Sync()
		t.width, t.height = t.screen.Size()
	}
}

func (t *terminal) handleRune(r rune) {
	switch {
	case r == 'q':
		t.sess.RequestQuit()
	case r >= '0' && r <= '9':
		t.sess.NumberKeyPressed(int(r - '0'))
	default:
		var d mgl32.Vec2
		switch r {
		case 'w':
			d = mgl32.Vec2{0, 1}
		case 's':
			d = mgl32.Vec2{0, -1}
		case 'a':
			d = mgl32.Vec2{-1, 0}
		case 'd':
			d = mgl32.Vec2{1, 0}
		default:
			return
		}
		if time.Now().After(t.dirUntil) {
			t.dir = mgl32.Vec2{}
		}
		t.dir = t.dir.Add(d)
		t.dirUntil = time.Now().Add(moveHold)
	}
}

func (t *terminal) frame() {
	if time.Now().After(t.dirUntil) {
		t.dir = mgl32.Vec2{}
	}
	t.sess.SetDirectionalInput(t.dir[0], t.dir[1])

	// Cells are roughly twice as tall as they are wide.
	aspect := float32(t.width) / float32(2*max(t.height, 1))
	t.sess.Update(aspect)
	t.draw(t.sess.FrameData())
}

func (t *terminal) draw(f render.FrameData) {
	t.screen.Clear()
	vp := f.Uniforms.Proj.Mul4(f.Uniforms.View)

	start := 0
	for mt, n := range f.GroupSizes {
		glyph := glyphs[mt]
		for _, inst := range f.Instances[start : start+n] {
			if glyph == 0 {
				break
			}
			if x, y, ok := t.project(vp, inst.Model.Col(3)); ok {
				t.screen.SetContent(x, y, glyph, nil, styles[mt])
			}
		}
		start += n
	}

	ws := t.sess.World()
	hud := fmt.Sprintf(" HP %d  weapon %s  kills %d  shots %d ",
		ws.PlayerHP(), ws.Weapon().Name, t.sess.Stats().Kills, t.sess.Stats().Shots)
	switch {
	case t.sess.GameOver():
		hud += " GAME OVER - q to quit "
	case t.sess.Paused():
		hud += " PAUSED "
	}
	t.drawText(0, 0, hud, hudStyle)
	t.screen.Show()
}

func (t *terminal) project(vp mgl32.Mat4, p mgl32.Vec4) (int, int, bool) {
	clip := vp.Mul4x1(p)
	if clip[3] <= 0 {
		return 0, 0, false
	}
	ndc := clip.Vec3().Mul(1 / clip[3])
	if ndc[0] < -1 || ndc[0] > 1 || ndc[1] < -1 || ndc[1] > 1 {
		return 0, 0, false
	}
	x := int((ndc[0] + 1) / 2 * float32(t.width-1))
	y := int((1 - ndc[1]) / 2 * float32(t.height-1))
	return x, y, true
}

func (t *terminal) drawText(x, y int, s string, style tcell.Style) {
	for _, r := range s {
		if x >= t.width {
			return
		}
		t.screen.SetContent(x, y, r, nil, style)
		x++
	}
}

// toScreen maps a cell coordinate onto [-1,1].
func toScreen(cell, size int) float32 {
	if size <= 1 {
		return 0
	}
	return float32(cell)/float32(size-1)*2 - 1
}
