package game

import (
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"
)

// TestSim is a headless session harness for tests and the headless report.
// It wraps a Session with deterministic seeding, hand-placed creatures and
// a record of every event emitted.
type TestSim struct {
	Session *Session
	SimLog  *SimLog

	cfg       Config
	seed      int64
	player    *mgl64.Vec3
	creatures []Creature
	attackMs  float64
	events    []Event
}

// simOptionKind controls the pass in which an option is applied.
type simOptionKind int

const (
	simOptInfra    simOptionKind = iota // config, seed, verbose; applied first
	simOptPlayer                        // player pose, after the session exists
	simOptCreature                      // hand-placed creatures replace the random population
)

// SimOption is a builder function applied to a TestSim during construction.
type SimOption struct {
	kind simOptionKind
	fn   func(*TestSim)
}

// WithWorldSize sets the world size (clamped like any config).
func WithWorldSize(size float64) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.cfg.WorldSize = size
	}}
}

// WithSeed sets the RNG seed for deterministic runs.
func WithSeed(seed int64) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.seed = seed
	}}
}

// WithVerbose enables per-tick position logging.
func WithVerbose(v bool) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.SimLog = NewSimLog(v)
	}}
}

// WithCreatureCount sets the size of the random population.
func WithCreatureCount(n int) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.cfg.TotalCreatures = n
	}}
}

// WithAmmo sets the magazine size; the player starts full.
func WithAmmo(n int) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.cfg.MaxAmmo = n
	}}
}

// WithLives sets the starting (and maximum) lives.
func WithLives(n int) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.cfg.MaxLives = n
	}}
}

// WithAttackTimer pre-loads the global attack timer, in milliseconds.
func WithAttackTimer(ms float64) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.attackMs = ms
	}}
}

// WithPlayerAt places the player's eye at (x, y, z).
func WithPlayerAt(x, y, z float64) SimOption {
	return SimOption{simOptPlayer, func(ts *TestSim) {
		pos := mgl64.Vec3{x, y, z}
		ts.player = &pos
	}}
}

// WithCreature places a living creature on the ground at (x, z). Any
// WithCreature option replaces the random population entirely.
func WithCreature(id int, x, z float64, aggressive bool, moveSpeed float64) SimOption {
	return SimOption{simOptCreature, func(ts *TestSim) {
		ts.creatures = append(ts.creatures, Creature{
			ID:              id,
			Label:           creatureLabel(id),
			Position:        mgl64.Vec3{x, creatureGroundY, z},
			Alive:           true,
			Aggressive:      aggressive,
			MoveSpeed:       moveSpeed,
			WanderThreshold: wanderThresholdMin + wanderThresholdSpan,
		})
	}}
}

// NewTestSim constructs a running TestSim from the given options in ordered
// passes:
//  1. Infrastructure (config, seed, verbose)
//  2. Build the session
//  3. Player
//  4. Creatures
func NewTestSim(opts ...SimOption) *TestSim {
	ts := &TestSim{
		cfg:    DefaultConfig(),
		seed:   1,
		SimLog: NewSimLog(false),
	}
	for _, o := range opts {
		if o.kind == simOptInfra {
			o.fn(ts)
		}
	}
	for _, o := range opts {
		if o.kind != simOptInfra {
			o.fn(ts)
		}
	}
	if len(ts.creatures) > 0 {
		ts.cfg.TotalCreatures = len(ts.creatures)
	}

	rng := rand.New(rand.NewSource(ts.seed)) // #nosec G404 -- test harness
	ts.Session = NewSession(ts.cfg, WithRand(rng), WithSimLog(ts.SimLog))

	w := &ts.Session.World
	if ts.player != nil {
		w.Player.Position = *ts.player
	}
	if len(ts.creatures) > 0 {
		w.Creatures = append([]Creature(nil), ts.creatures...)
	}
	w.AttackTimerMs = ts.attackMs
	ts.events = append(ts.events, ts.Session.Start()...)
	return ts
}

// World returns the current world value.
func (ts *TestSim) World() World {
	return ts.Session.World
}

// Player returns the current player record.
func (ts *TestSim) Player() Player {
	return ts.Session.World.Player
}

// Stats returns the session's running stats.
func (ts *TestSim) Stats() RunStats {
	return ts.Session.Stats
}

// Creature returns a copy of the creature with id.
func (ts *TestSim) Creature(id int) (Creature, bool) {
	c, ok := ts.Session.World.Creature(id)
	if !ok {
		return Creature{}, false
	}
	return *c, true
}

// Step runs one session tick and records its events.
func (ts *TestSim) Step(in Input, dt float64) []Event {
	ev := ts.Session.Tick(in, dt)
	ts.events = append(ts.events, ev...)
	return ev
}

// RunTicks runs n idle ticks of dt seconds each, keeping the current look.
func (ts *TestSim) RunTicks(n int, dt float64) []Event {
	var out []Event
	for i := 0; i < n; i++ {
		p := ts.Player()
		out = append(out, ts.Step(Input{Yaw: p.Yaw, Pitch: p.Pitch}, dt)...)
	}
	return out
}

// RunWith polls provider for n ticks of dt seconds.
func (ts *TestSim) RunWith(provider InputProvider, n int, dt float64) []Event {
	var out []Event
	for i := 0; i < n; i++ {
		if ts.Session.World.Phase == PhaseEnded {
			break
		}
		out = append(out, ts.Step(provider.Poll(), dt)...)
	}
	return out
}

// Shoot fires along ray immediately.
func (ts *TestSim) Shoot(ray Ray) []Event {
	ev := ts.Session.Fire(ray)
	ts.events = append(ts.events, ev...)
	return ev
}

// Events returns every event emitted since construction.
func (ts *TestSim) Events() []Event {
	return ts.events
}

// CountEvents returns how many recorded events have kind.
func (ts *TestSim) CountEvents(kind EventKind) int {
	return countKind(ts.events, kind)
}

// RayAt builds a ray from the player's eye toward a world point.
func (ts *TestSim) RayAt(target mgl64.Vec3) Ray {
	eye := ts.Player().Position
	return NewRay(eye, target.Sub(eye))
}
