package game

import (
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/neonland/sim/internal/data"
	"github.com/neonland/sim/internal/mathx"
)

// TextureType identifies a render target whose size the platform reports.
type TextureType int

// TexSize is a texture size in pixels.
type TexSize struct {
	Width  int
	Height int
}

// SetCursorPosition records the cursor in screen space. Coordinates are
// clamped to [-1,1] and the movement accumulates into the frame's delta.
func (s *Session) SetCursorPosition(x, y float32) {
	in := &s.world.Input
	in.PrevMousePos = in.MousePos
	in.MousePos = mgl32.Vec2{mathx.Clamp(x, -1, 1), mathx.Clamp(y, -1, 1)}
	in.MouseDelta = in.MouseDelta.Add(in.MousePos.Sub(in.PrevMousePos))
}

func (s *Session) SetMouseDown(down bool) {
	s.world.Input.MouseDown = down
}

// SetDirectionalInput sets the movement direction. It is normalised; a zero
// vector means standing still.
func (s *Session) SetDirectionalInput(x, y float32) {
	s.world.Input.Direction = mathx.Normalize2(mgl32.Vec2{x, y})
}

// NumberKeyPressed selects the weapon bound to a number key: 1-9 pick slots
// 0-8 and 0 picks slot 9. Keys for empty slots are ignored.
func (s *Session) NumberKeyPressed(num int) {
	if num == 0 {
		num = data.SlotCount
	}
	slot := num - 1
	if !s.world.SelectWeapon(slot) {
		s.log.Debug("no weapon in slot", zap.Int("slot", slot))
		return
	}
	s.log.Info("weapon selected", zap.Int("slot", slot), zap.String("weapon", s.world.Weapon().Name))
}

// TogglePause freezes or resumes game time and returns the new state.
func (s *Session) TogglePause() bool {
	paused := s.clock.Toggle()
	s.log.Info("pause toggled", zap.Bool("paused", paused), zap.Float64("time", s.clock.Time()))
	return paused
}

func (s *Session) SetTextureSize(tex TextureType, size TexSize) {
	s.textureSizes[tex] = size
}

// TextureSize returns the last size reported for tex.
func (s *Session) TextureSize(tex TextureType) (TexSize, bool) {
	size, ok := s.textureSizes[tex]
	return size, ok
}

// RequestQuit asks the platform layer to shut the app down.
func (s *Session) RequestQuit() { s.quit = true }

func (s *Session) ShouldQuit() bool { return s.quit }
