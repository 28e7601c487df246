package game

import (
	"bytes"
	"math/rand"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/go-gl/mathgl/mgl64"
)

func newQuietSession(cfg Config) *Session {
	return NewSession(cfg, WithRand(rand.New(rand.NewSource(2)))) // #nosec G404 -- test
}

func TestNewSession_ClampsAndPopulates(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TotalCreatures = 500
	s := newQuietSession(cfg)
	if s.World.Config.TotalCreatures != maxTotalCreatures {
		t.Fatalf("creatures should clamp to %d, got %d", maxTotalCreatures, s.World.Config.TotalCreatures)
	}
	if len(s.World.Creatures) != maxTotalCreatures {
		t.Fatalf("population: %d", len(s.World.Creatures))
	}
	if s.World.Phase != PhaseNotStarted {
		t.Fatalf("phase: %s", s.World.Phase)
	}
	for _, c := range s.World.Creatures {
		r := horizontalDist(c.Position, mgl64.Vec3{})
		if r < creatureSpawnMinR || r > creatureSpawnMinR+creatureSpawnSpread*s.World.Config.WorldSize {
			t.Fatalf("%s spawned at radius %.1f", c.Label, r)
		}
		if c.Position.Y() != creatureGroundY {
			t.Fatalf("%s spawned off the ground", c.Label)
		}
		if c.MoveSpeed < creatureSpeedMin || c.MoveSpeed > creatureSpeedMin+creatureSpeedRange {
			t.Fatalf("%s speed %.3f", c.Label, c.MoveSpeed)
		}
	}
}

func TestSession_SeedIsDeterministic(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Seed = 77
	a := NewSession(cfg)
	b := NewSession(cfg)
	for i := range a.World.Creatures {
		if a.World.Creatures[i] != b.World.Creatures[i] {
			t.Fatalf("creature %d differs between identically seeded sessions", i)
		}
	}
	if a.ID == b.ID {
		t.Fatal("sessions should get distinct IDs")
	}
}

func TestSession_TickPauseEdge(t *testing.T) {
	s := newQuietSession(DefaultConfig())
	s.Start()
	s.Tick(Input{}, 0.1)
	clock := s.World.ClockMs

	s.Tick(Input{Pause: true}, 0.1)
	if s.World.Phase != PhasePaused {
		t.Fatalf("phase: %s", s.World.Phase)
	}
	if s.World.ClockMs != clock {
		t.Fatal("pausing tick advanced the clock")
	}
	s.Tick(Input{Pause: true}, 0.1)
	if s.World.Phase != PhaseRunning {
		t.Fatalf("phase after second toggle: %s", s.World.Phase)
	}
	if s.World.ClockMs <= clock {
		t.Fatal("resuming tick should advance the clock")
	}
}

func TestSession_TickShootUsesView(t *testing.T) {
	s := newQuietSession(DefaultConfig())
	s.Start()
	s.World.Creatures = []Creature{
		{ID: 0, Label: creatureLabel(0), Alive: true, Position: groundAt(0, -30), MoveSpeed: 0.03, WanderThreshold: 7},
		{ID: 1, Label: creatureLabel(1), Alive: true, Position: groundAt(200, 200), MoveSpeed: 0.03, WanderThreshold: 7},
	}
	eye := s.World.Player.Position
	yaw, pitch := lookAt(eye, groundAt(0, -30))

	ev := s.Tick(Input{Yaw: yaw, Pitch: pitch, Shoot: true}, 0.001)
	if countKind(ev, EventCreatureKilled) != 1 {
		t.Fatalf("events: %v", ev)
	}
	if s.Stats.Kills != 1 || s.Stats.Hits != 1 || s.Stats.Shots != 1 {
		t.Fatalf("stats: %+v", s.Stats)
	}
	if s.Stats.Score != killScore {
		t.Fatalf("stats score: %d", s.Stats.Score)
	}
}

func TestSession_TickShootShortAimRay(t *testing.T) {
	s := newQuietSession(DefaultConfig())
	s.Start()
	s.World.Creatures = []Creature{
		{ID: 0, Label: creatureLabel(0), Alive: true, Position: groundAt(0, -20), MoveSpeed: 0.03, WanderThreshold: 7},
		{ID: 1, Label: creatureLabel(1), Alive: true, Position: groundAt(200, 200), MoveSpeed: 0.03, WanderThreshold: 7},
	}
	short := Ray{Origin: groundAt(0, 0), Dir: mgl64.Vec3{0, 0, -0.1}}

	ev := s.Tick(Input{Shoot: true, Aim: &short}, 0.001)
	if countKind(ev, EventCreatureKilled) != 1 {
		t.Fatalf("short aim ray should still kill: %v", ev)
	}
	if c, _ := s.World.Creature(0); c.Alive {
		t.Fatal("creature 0 survived")
	}
}

func TestSession_RestartOnlyWhenDone(t *testing.T) {
	s := newQuietSession(DefaultConfig())
	s.Start()
	id := s.ID
	if ev := s.Restart(true); ev != nil || s.ID != id {
		t.Fatal("restart of a running session should be refused")
	}

	s.apply(End(s.World, OutcomeLost))
	if !s.Log.HasEntry("session", "ended", "lost") {
		t.Fatal("first session's end was not logged")
	}
	ev := s.Restart(true)
	if countKind(ev, EventPhaseChanged) != 1 || s.World.Phase != PhaseRunning {
		t.Fatalf("restart: phase=%s events=%v", s.World.Phase, ev)
	}
	if s.ID == id {
		t.Fatal("restart should mint a new ID")
	}
	if s.Stats.Outcome != OutcomeNone || s.Stats.Ticks != 0 {
		t.Fatalf("restart should clear stats: %+v", s.Stats)
	}
	if s.Log.HasEntry("session", "ended", "") {
		t.Fatalf("previous session leaked into the new log:\n%s", s.Log.Format())
	}
	if got := s.Log.CountCategory("session", "phase"); got != 1 {
		t.Fatalf("new log should hold only the restart phase change, got %d", got)
	}
	if strings.Contains(s.Report(), "ended") {
		t.Fatalf("report carries the old session:\n%s", s.Report())
	}
}

func TestSession_RestartKeepsVerbose(t *testing.T) {
	s := NewSession(DefaultConfig(), WithRand(rand.New(rand.NewSource(3))), WithSimLog(NewSimLog(true))) // #nosec G404 -- test
	s.Start()
	s.apply(End(s.World, OutcomeWon))
	s.Restart(true)
	if !s.Log.Verbose() {
		t.Fatal("restart dropped verbose logging")
	}
	s.Tick(Input{}, 0.01)
	if got := s.Log.CountCategory("move", "position"); got != 1 {
		t.Fatalf("position entries after restart: got %d, want 1", got)
	}
}

func TestSession_LogsThroughLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(&buf)
	logger.SetLevel(log.DebugLevel)

	s := NewSession(DefaultConfig(), WithRand(rand.New(rand.NewSource(4))), WithLogger(logger)) // #nosec G404 -- test
	s.Start()
	s.apply(End(s.World, OutcomeLost))

	out := buf.String()
	for _, want := range []string{"session created", "game ended", "session="} {
		if !strings.Contains(out, want) {
			t.Fatalf("log output missing %q:\n%s", want, out)
		}
	}
}

func TestSession_Report(t *testing.T) {
	s := newQuietSession(DefaultConfig())
	s.Start()
	s.Tick(Input{}, 0.1)
	r := s.Report()
	for _, want := range []string{s.ID.String(), "outcome=none", "Score: 0", "Nearest:"} {
		if !strings.Contains(r, want) {
			t.Fatalf("report missing %q:\n%s", want, r)
		}
	}
}
