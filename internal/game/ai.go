package game

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// --- Creature AI constants ---

const (
	attackIntervalMs  = 8000.0 // global window opens when the attack timer passes this
	aggroRange        = 30.0
	strikeRange       = 5.0
	attackCooldownMs  = 3000.0
	pursuitSpeedMul   = 2.0
	creatureBoundFrac = 0.8 // wanderers turn around beyond ±worldSize*creatureBoundFrac
)

// Intent is what a creature does this tick.
type Intent int

const (
	IntentWander Intent = iota
	IntentPursue
)

func (i Intent) String() string {
	switch i {
	case IntentWander:
		return "wander"
	case IntentPursue:
		return "pursue"
	default:
		return "unknown"
	}
}

// DecideIntent picks pursue only for aggressive creatures, inside aggro
// range, off cooldown, on a tick where the global attack window is open.
func DecideIntent(c Creature, player mgl64.Vec3, attackWindow bool) Intent {
	if !c.Alive || !c.Aggressive || !attackWindow {
		return IntentWander
	}
	if c.Position.Sub(player).Len() >= aggroRange || c.AttackCooldownMs > 0 {
		return IntentWander
	}
	return IntentPursue
}

// stepCreature advances one living creature and reports whether it struck
// the player this tick.
func stepCreature(c *Creature, player mgl64.Vec3, attackWindow bool, dt, worldSize float64, rng Rand) bool {
	c.WanderTimer += dt
	c.AttackCooldownMs -= dt * 1000

	if DecideIntent(*c, player, attackWindow) == IntentPursue {
		return pursue(c, player)
	}
	wander(c, worldSize, rng)
	return false
}

// pursue closes on the player along the 3D line of sight. Height is held at
// ground level, so only the horizontal part of the step survives.
func pursue(c *Creature, player mgl64.Vec3) bool {
	toPlayer := player.Sub(c.Position)
	dist := toPlayer.Len()
	if dist > 0 {
		step := toPlayer.Mul(c.MoveSpeed * pursuitSpeedMul / dist)
		c.Position = mgl64.Vec3{c.Position.X() + step.X(), creatureGroundY, c.Position.Z() + step.Z()}
	}
	c.Facing = math.Atan2(toPlayer.X(), toPlayer.Z())

	if dist < strikeRange {
		c.AttackCooldownMs = attackCooldownMs
		return true
	}
	return false
}

// wander walks along WanderDir and re-rolls it once the timer passes the
// threshold. Leaving the soft bound flips the heading for the next tick;
// the position itself is not pulled back.
func wander(c *Creature, worldSize float64, rng Rand) {
	if c.WanderTimer > c.WanderThreshold {
		c.WanderDir = rng.Float64() * 2 * math.Pi
		c.WanderThreshold = wanderThreshold(rng)
		c.WanderTimer = 0
	}

	c.Position[0] += math.Cos(c.WanderDir) * c.MoveSpeed
	c.Position[2] += math.Sin(c.WanderDir) * c.MoveSpeed

	bound := worldSize * creatureBoundFrac
	if math.Abs(c.Position.X()) > bound || math.Abs(c.Position.Z()) > bound {
		c.WanderDir += math.Pi
	}
	c.Facing = c.WanderDir
}
