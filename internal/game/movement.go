package game

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// --- Movement constants ---

const (
	velocityDamping = 10.0 // fraction of velocity shed per second
	walkSpeed       = 200.0
	runSpeed        = 400.0
	minEyeHeight    = 3.0
	playerBoundFrac = 0.9 // player x/z stay inside ±worldSize*playerBoundFrac
	moveEpsilon     = 1e-4
)

// localBack is the camera's +Z axis in world space for a YXZ Euler pose.
// A camera looks down its -Z axis, so Forward is the negation.
func localBack(yaw, pitch float64) mgl64.Vec3 {
	cp := math.Cos(pitch)
	return mgl64.Vec3{math.Sin(yaw) * cp, -math.Sin(pitch), math.Cos(yaw) * cp}
}

// localLeft is the camera's -X axis in world space. Pitch never tilts it.
func localLeft(yaw float64) mgl64.Vec3 {
	return mgl64.Vec3{-math.Cos(yaw), 0, math.Sin(yaw)}
}

// Forward returns the unit view direction.
func (p Player) Forward() mgl64.Vec3 {
	return localBack(p.Yaw, p.Pitch).Mul(-1)
}

// AimRay is the hit-scan ray through the centre of the player's view.
func (p Player) AimRay() Ray {
	return NewRay(p.Position, p.Forward())
}

// desiredDirection normalises the move vector so diagonals are not faster.
func desiredDirection(move mgl64.Vec2) mgl64.Vec2 {
	if move.LenSqr() < moveEpsilon*moveEpsilon {
		return mgl64.Vec2{}
	}
	return move.Normalize()
}

// integratePlayer damps, drives and translates the player for one step.
//
// Velocity lives in the local frame: Z along the back axis, X along the left
// axis. Desired movement is subtracted in, so forward input drives Z
// negative (toward the view) and right input drives X negative (away from
// left).
func integratePlayer(p *Player, in Input, dt, worldSize float64) {
	decay := math.Min(1, velocityDamping*dt)
	p.Velocity[0] -= p.Velocity[0] * decay
	p.Velocity[2] -= p.Velocity[2] * decay

	dir := desiredDirection(in.Move)
	speed := walkSpeed
	if in.Running && !in.Touch {
		speed = runSpeed
	}
	if dir.Y() != 0 {
		p.Velocity[2] -= dir.Y() * speed * dt
	}
	if dir.X() != 0 {
		p.Velocity[0] -= dir.X() * speed * dt
	}

	step := localBack(p.Yaw, p.Pitch).Mul(p.Velocity.Z() * dt).
		Add(localLeft(p.Yaw).Mul(p.Velocity.X() * dt))
	p.Position = clampPlayerPosition(p.Position.Add(step), worldSize)
}

func clampPlayerPosition(pos mgl64.Vec3, worldSize float64) mgl64.Vec3 {
	bound := worldSize * playerBoundFrac
	return mgl64.Vec3{
		math.Max(-bound, math.Min(bound, pos.X())),
		math.Max(minEyeHeight, pos.Y()),
		math.Max(-bound, math.Min(bound, pos.Z())),
	}
}
