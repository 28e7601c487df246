package game

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// --- World constants ---

const (
	creatureGroundY     = 1.2  // creature body height above the ground plane
	creatureSpawnMinR   = 30.0 // spawn ring inner radius
	creatureSpawnSpread = 0.7  // spawn ring outer radius as a fraction of world size
	creatureSpeedMin    = 0.03 // units per tick
	creatureSpeedRange  = 0.04
	aggressiveChance    = 0.3
	wanderThresholdMin  = 3.0 // seconds
	wanderThresholdSpan = 4.0
)

// playerSpawn is the eye position a fresh session starts from.
var playerSpawn = mgl64.Vec3{0, 8, 15}

// Rand is the random source a World draws from. *rand.Rand satisfies it;
// tests inject a seeded one so wandering is reproducible.
type Rand interface {
	Float64() float64
}

// Phase is the session lifecycle state.
type Phase int

const (
	PhaseNotStarted Phase = iota
	PhaseRunning
	PhasePaused
	PhaseEnded
)

func (p Phase) String() string {
	switch p {
	case PhaseNotStarted:
		return "not_started"
	case PhaseRunning:
		return "running"
	case PhasePaused:
		return "paused"
	case PhaseEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// Outcome is how an Ended session finished.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeWon
	OutcomeLost
)

func (o Outcome) String() string {
	switch o {
	case OutcomeNone:
		return "none"
	case OutcomeWon:
		return "won"
	case OutcomeLost:
		return "lost"
	default:
		return "unknown"
	}
}

// Player is the hunter: eye position, look orientation and weapon state.
// Velocity is held in the player's local frame (see integratePlayer).
type Player struct {
	Position mgl64.Vec3
	Velocity mgl64.Vec3
	Yaw      float64
	Pitch    float64

	Lives int
	Ammo  int

	Reloading         bool
	ReloadRemainingMs float64
	AutoReloadInMs    float64 // >0 while an empty-magazine reload is pending

	LastShotMs float64
	HasShot    bool
}

// Creature is one huntable animal. Dead creatures stay in the slice until
// their death animation timer runs out.
type Creature struct {
	ID       int
	Label    string
	Position mgl64.Vec3
	Facing   float64

	Alive      bool
	Aggressive bool
	MoveSpeed  float64

	WanderDir       float64
	WanderTimer     float64 // seconds
	WanderThreshold float64 // seconds

	AttackCooldownMs float64
	DeathRemainingMs float64
}

// World is the whole simulation state. It is passed by value through the
// step functions; clone() is taken before any mutation so callers keep
// their copy intact.
type World struct {
	Config    Config
	Player    Player
	Creatures []Creature

	Score         int
	AttackTimerMs float64
	ClockMs       float64
	Tick          int

	Phase   Phase
	Outcome Outcome

	rng Rand
}

// NewWorld builds a NotStarted world from cfg (clamped) with a full
// population drawn from rng.
func NewWorld(cfg Config, rng Rand) World {
	w := World{
		Config: cfg.Clamped(),
		rng:    rng,
	}
	w.populate()
	return w
}

// populate resets everything except the config and random source.
func (w *World) populate() {
	w.Player = Player{
		Position: playerSpawn,
		Lives:    w.Config.MaxLives,
		Ammo:     w.Config.MaxAmmo,
	}
	w.Score = 0
	w.AttackTimerMs = 0
	w.ClockMs = 0
	w.Tick = 0
	w.Outcome = OutcomeNone
	w.Creatures = make([]Creature, 0, w.Config.TotalCreatures)
	for i := 0; i < w.Config.TotalCreatures; i++ {
		w.Creatures = append(w.Creatures, spawnCreature(i, w.Config.WorldSize, w.rng))
	}
}

func spawnCreature(id int, worldSize float64, rng Rand) Creature {
	angle := rng.Float64() * 2 * math.Pi
	dist := rng.Float64()*(worldSize*creatureSpawnSpread) + creatureSpawnMinR
	return Creature{
		ID:              id,
		Label:           creatureLabel(id),
		Position:        mgl64.Vec3{math.Cos(angle) * dist, creatureGroundY, math.Sin(angle) * dist},
		Alive:           true,
		MoveSpeed:       creatureSpeedMin + rng.Float64()*creatureSpeedRange,
		WanderDir:       rng.Float64() * 2 * math.Pi,
		Aggressive:      rng.Float64() < aggressiveChance,
		WanderThreshold: wanderThreshold(rng),
	}
}

func wanderThreshold(rng Rand) float64 {
	return wanderThresholdMin + rng.Float64()*wanderThresholdSpan
}

func creatureLabel(id int) string {
	return fmt.Sprintf("C%02d", id)
}

// AliveCount returns how many creatures can still be shot.
func (w World) AliveCount() int {
	n := 0
	for i := range w.Creatures {
		if w.Creatures[i].Alive {
			n++
		}
	}
	return n
}

// Creature looks a creature up by ID, dead or alive.
func (w *World) Creature(id int) (*Creature, bool) {
	for i := range w.Creatures {
		if w.Creatures[i].ID == id {
			return &w.Creatures[i], true
		}
	}
	return nil, false
}

// clone copies the creature slice so the result can be mutated freely.
func (w World) clone() World {
	cs := make([]Creature, len(w.Creatures))
	copy(cs, w.Creatures)
	w.Creatures = cs
	return w
}
