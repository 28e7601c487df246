package game

import (
	"fmt"
	"io"
	"math/rand"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// Session is the mutable cell the presentation layer owns. It feeds input
// edges into the pure step functions and keeps the log and stats current.
// It is not safe for concurrent use; drive it from one frame loop.
type Session struct {
	ID    uuid.UUID
	World World
	Log   *SimLog
	Stats RunStats

	base   *log.Logger
	logger *log.Logger
}

// SessionOption configures a Session at construction.
type SessionOption func(*Session)

// WithRand injects the random source. Without it the session seeds from
// Config.Seed, or the clock when that is zero.
func WithRand(rng Rand) SessionOption {
	return func(s *Session) {
		s.World.rng = rng
	}
}

// WithLogger routes session logging; the default discards it.
func WithLogger(l *log.Logger) SessionOption {
	return func(s *Session) {
		s.base = l
	}
}

// WithSimLog replaces the default (non-verbose) SimLog.
func WithSimLog(sl *SimLog) SessionOption {
	return func(s *Session) {
		s.Log = sl
	}
}

// NewSession builds a NotStarted session for cfg.
func NewSession(cfg Config, opts ...SessionOption) *Session {
	cfg = cfg.Clamped()
	s := &Session{
		ID:    uuid.New(),
		World: World{Config: cfg},
		Log:   NewSimLog(false),
		base:  log.New(io.Discard),
	}
	for _, o := range opts {
		o(s)
	}
	if s.World.rng == nil {
		seed := cfg.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		s.World.rng = rand.New(rand.NewSource(seed)) // #nosec G404 -- game only
	}
	s.World.populate()
	s.Stats = newRunStats(cfg)
	s.logger = s.base.With("session", shortID(s.ID))
	s.logger.Debug("session created",
		"world_size", cfg.WorldSize,
		"creatures", cfg.TotalCreatures,
		"aggressive", s.aggressiveCount())
	return s
}

func shortID(id uuid.UUID) string {
	return id.String()[:8]
}

func (s *Session) aggressiveCount() int {
	n := 0
	for _, c := range s.World.Creatures {
		if c.Aggressive {
			n++
		}
	}
	return n
}

// Tick runs one frame: pause edge, simulation step, reload edge, shoot edge.
// dt is the elapsed time in seconds since the previous frame.
func (s *Session) Tick(in Input, dt float64) []Event {
	in = in.sanitized()
	var events []Event

	if in.Pause {
		events = append(events, s.apply(TogglePause(s.World))...)
	}

	events = append(events, s.apply(Advance(s.World, in, dt))...)

	if in.Reload {
		events = append(events, s.apply(Reload(s.World))...)
	}

	if in.Shoot {
		ray := s.World.Player.AimRay()
		if in.Aim != nil {
			ray = *in.Aim
		}
		events = append(events, s.Fire(ray)...)
	}

	if s.World.Phase == PhaseRunning {
		p := s.World.Player.Position
		s.Log.AddVerbose(s.World.Tick, "P", "move", "position",
			fmt.Sprintf("(%.1f,%.1f,%.1f)", p.X(), p.Y(), p.Z()), 0)
	}
	s.Stats.Ticks = s.World.Tick
	s.Stats.ElapsedMs = s.World.ClockMs
	s.Stats.Score = s.World.Score
	return events
}

// Fire shoots along ray outside the normal Tick flow.
func (s *Session) Fire(ray Ray) []Event {
	w, res, events := FireShot(s.World, ray)
	s.World = w
	if res.Hit {
		s.logger.Debug("hit", "creature", creatureLabel(res.CreatureID), "part", res.Part, "dist", fmt.Sprintf("%.1f", res.Distance))
	}
	s.record(events)
	return events
}

// Start moves a fresh session into Running.
func (s *Session) Start() []Event {
	return s.apply(Start(s.World))
}

// TogglePause flips Running and Paused.
func (s *Session) TogglePause() []Event {
	return s.apply(TogglePause(s.World))
}

// Restart deals a new session with the same config once the current one
// has ended (or never started). It gets a fresh ID, stats and SimLog.
func (s *Session) Restart(running bool) []Event {
	if s.World.Phase != PhaseNotStarted && s.World.Phase != PhaseEnded {
		return nil
	}
	prev := s.ID
	s.ID = uuid.New()
	s.Stats = newRunStats(s.World.Config)
	s.Log = NewSimLog(s.Log.Verbose())
	s.logger = s.base.With("session", shortID(s.ID))
	s.logger.Info("restart", "previous", shortID(prev))
	return s.apply(Reset(s.World, running))
}

// Report renders the run stats plus a world summary, for clipboards and logs.
func (s *Session) Report() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "--- Chicken Hunter session %s ---\n", s.ID)
	sb.WriteString(FormatRunStats(s.Stats))
	sb.WriteString(s.Log.Summary(s.World))
	return sb.String()
}

// apply installs the new world and records whatever it emitted.
func (s *Session) apply(w World, events []Event) []Event {
	s.World = w
	s.record(events)
	return events
}

func (s *Session) record(events []Event) {
	for _, e := range events {
		s.Log.RecordEvent(e, s.World)
		s.Stats.observe(e)
		s.logEvent(e)
	}
}

func (s *Session) logEvent(e Event) {
	switch e.Kind {
	case EventCreatureKilled:
		s.logger.Info("creature killed", "creature", creatureLabel(e.CreatureID), "score", s.World.Score, "alive", s.World.AliveCount())
	case EventPlayerHit:
		s.logger.Warn("player hit", "lives", e.Lives)
	case EventGameEnded:
		s.logger.Info("game ended", "outcome", e.Outcome, "score", s.World.Score, "time", FormatDuration(s.World.ClockMs))
	case EventPhaseChanged:
		s.logger.Info("phase", "from", e.From, "to", e.To)
	case EventShotFired, EventReloadStarted, EventReloadFinished:
		s.logger.Debug(e.Kind.String(), "ammo", s.World.Player.Ammo)
	}
}
