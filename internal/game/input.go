package game

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Input is one frame's normalised device snapshot. Shoot, Reload and Pause
// are edge-triggered: true only on the frame the action was requested.
//
// Move.X() is strafe (+1 right), Move.Y() is forward (+1 forward). Yaw and
// Pitch are the camera pose the presentation layer already applied.
type Input struct {
	Move    mgl64.Vec2
	Running bool
	Touch   bool // touch profile: running is unavailable

	Shoot  bool
	Reload bool
	Pause  bool

	Yaw   float64
	Pitch float64

	// Aim overrides the ray derived from Yaw/Pitch when set.
	Aim *Ray
}

// InputProvider turns raw device state into an Input once per frame.
type InputProvider interface {
	Poll() Input
}

// sanitized clamps every field into range; garbage becomes zero, never an error.
func (in Input) sanitized() Input {
	in.Move = mgl64.Vec2{clampUnit(in.Move.X()), clampUnit(in.Move.Y())}
	in.Yaw = finiteOr(in.Yaw, 0)
	in.Pitch = math.Max(-math.Pi/2, math.Min(math.Pi/2, finiteOr(in.Pitch, 0)))
	if in.Aim != nil {
		if !in.Aim.valid() {
			in.Aim = nil
		} else {
			r := NewRay(in.Aim.Origin, in.Aim.Dir)
			in.Aim = &r
		}
	}
	return in
}

func clampUnit(v float64) float64 {
	return math.Max(-1, math.Min(1, finiteOr(v, 0)))
}

func finiteOr(v, fallback float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fallback
	}
	return v
}
