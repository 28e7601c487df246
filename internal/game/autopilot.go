package game

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// --- Autopilot tuning ---

const (
	autopilotFireRange = 25.0  // stop walking and shoot inside this horizontal distance
	autopilotRunRange  = 120.0 // run when the target is farther than this
	autopilotJitter    = 0.015 // radians of aim wobble per axis
)

// Autopilot is a headless InputProvider: it hunts the nearest living
// creature, walks into range and fires. Used by the headless report and
// scenario tests.
type Autopilot struct {
	World     func() World
	FireRange float64
	RunRange  float64
	Jitter    float64
	rng       Rand
}

// NewAutopilot reads state through view on every Poll. rng drives aim
// jitter; pass nil for perfect aim.
func NewAutopilot(view func() World, rng Rand) *Autopilot {
	return &Autopilot{
		World:     view,
		FireRange: autopilotFireRange,
		RunRange:  autopilotRunRange,
		Jitter:    autopilotJitter,
		rng:       rng,
	}
}

// nearestAlive returns the closest living creature by horizontal distance.
func nearestAlive(w World) (Creature, float64, bool) {
	var best Creature
	bestDist := math.Inf(1)
	found := false
	for _, c := range w.Creatures {
		if !c.Alive {
			continue
		}
		d := horizontalDist(c.Position, w.Player.Position)
		if d < bestDist {
			best, bestDist, found = c, d, true
		}
	}
	return best, bestDist, found
}

func horizontalDist(a, b mgl64.Vec3) float64 {
	return math.Hypot(a.X()-b.X(), a.Z()-b.Z())
}

// lookAt returns the yaw/pitch whose Forward points from eye to target.
func lookAt(eye, target mgl64.Vec3) (yaw, pitch float64) {
	d := target.Sub(eye)
	yaw = math.Atan2(-d.X(), -d.Z())
	if l := d.Len(); l > 0 {
		pitch = math.Asin(d.Y() / l)
	}
	return yaw, pitch
}

// Poll implements InputProvider.
func (a *Autopilot) Poll() Input {
	w := a.World()
	if w.Phase == PhaseNotStarted || w.Phase == PhaseEnded {
		return Input{}
	}
	p := w.Player
	target, dist, ok := nearestAlive(w)
	if !ok {
		return Input{Yaw: p.Yaw, Pitch: p.Pitch}
	}

	yaw, pitch := lookAt(p.Position, target.Position)
	if a.rng != nil && a.Jitter > 0 {
		yaw += (a.rng.Float64()*2 - 1) * a.Jitter
		pitch += (a.rng.Float64()*2 - 1) * a.Jitter
	}
	in := Input{Yaw: yaw, Pitch: pitch}

	if dist > a.FireRange {
		in.Move = mgl64.Vec2{0, 1}
		in.Running = dist > a.RunRange
	}
	if dist <= a.FireRange*2 && p.Ammo > 0 && !p.Reloading {
		aim := Player{Position: p.Position, Yaw: yaw, Pitch: pitch}.AimRay()
		in.Aim = &aim
		in.Shoot = true
	}
	if p.Ammo == 0 && !p.Reloading {
		in.Reload = true
	}
	return in
}
