package render

import (
	"math"

	"github.com/Garsondee/Chicken-Hunter/internal/game"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// KeyboardInput reads WASD, Shift, the captured mouse and the action keys
// into a game.Input once per frame. It owns the camera pose: mouse motion
// turns it, and the simulation takes it as given.
type KeyboardInput struct {
	Sensitivity float64

	yaw, pitch   float64
	lastX, lastY int
	primed       bool
}

// NewKeyboardInput starts looking down -Z with the given mouse sensitivity
// in radians per pixel.
func NewKeyboardInput(sensitivity float64) *KeyboardInput {
	return &KeyboardInput{Sensitivity: sensitivity}
}

// ResetPose faces the camera forward again, for a new session.
func (k *KeyboardInput) ResetPose() {
	k.yaw, k.pitch = 0, 0
	k.primed = false
}

// Pose returns the current camera yaw and pitch.
func (k *KeyboardInput) Pose() (yaw, pitch float64) {
	return k.yaw, k.pitch
}

// look applies a cursor delta to the pose. Pitch stops at straight up and
// straight down.
func (k *KeyboardInput) look(dx, dy float64) {
	k.yaw -= dx * k.Sensitivity
	k.pitch -= dy * k.Sensitivity
	k.pitch = math.Max(-math.Pi/2, math.Min(math.Pi/2, k.pitch))
}

// Poll implements game.InputProvider.
func (k *KeyboardInput) Poll() game.Input {
	x, y := ebiten.CursorPosition()
	if ebiten.CursorMode() == ebiten.CursorModeCaptured {
		if k.primed {
			k.look(float64(x-k.lastX), float64(y-k.lastY))
		}
		k.primed = true
	} else {
		k.primed = false
	}
	k.lastX, k.lastY = x, y

	var move mgl64.Vec2
	if ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyUp) {
		move[1]++
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyDown) {
		move[1]--
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyRight) {
		move[0]++
	}
	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyLeft) {
		move[0]--
	}

	return game.Input{
		Move:    move,
		Running: ebiten.IsKeyPressed(ebiten.KeyShiftLeft) || ebiten.IsKeyPressed(ebiten.KeyShiftRight),
		Shoot: inpututil.IsKeyJustPressed(ebiten.KeySpace) ||
			inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft),
		Reload: inpututil.IsKeyJustPressed(ebiten.KeyR),
		Pause:  inpututil.IsKeyJustPressed(ebiten.KeyP),
		Yaw:    k.yaw,
		Pitch:  k.pitch,
	}
}
