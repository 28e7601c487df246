package game

import "fmt"

// EventKind identifies what happened during a step.
type EventKind int

const (
	EventShotFired EventKind = iota
	EventCreatureKilled
	EventPlayerHit
	EventGameEnded
	EventReloadStarted
	EventReloadFinished
	EventCreatureRemoved // death animation finished, creature left the world
	EventPhaseChanged
)

func (k EventKind) String() string {
	switch k {
	case EventShotFired:
		return "shot_fired"
	case EventCreatureKilled:
		return "creature_killed"
	case EventPlayerHit:
		return "player_hit"
	case EventGameEnded:
		return "game_ended"
	case EventReloadStarted:
		return "reload_started"
	case EventReloadFinished:
		return "reload_finished"
	case EventCreatureRemoved:
		return "creature_removed"
	case EventPhaseChanged:
		return "phase_changed"
	default:
		return "unknown"
	}
}

// Event is emitted by the step functions for presentation, audio and logs
// to consume. Only the fields relevant to Kind are set.
type Event struct {
	Kind       EventKind
	Tick       int
	Hit        bool    // ShotFired
	CreatureID int     // CreatureKilled, CreatureRemoved
	Lives      int     // PlayerHit: lives remaining
	Outcome    Outcome // GameEnded
	From, To   Phase   // PhaseChanged
}

func (e Event) String() string {
	switch e.Kind {
	case EventShotFired:
		return fmt.Sprintf("[T=%03d] %s hit=%t", e.Tick, e.Kind, e.Hit)
	case EventCreatureKilled, EventCreatureRemoved:
		return fmt.Sprintf("[T=%03d] %s %s", e.Tick, e.Kind, creatureLabel(e.CreatureID))
	case EventPlayerHit:
		return fmt.Sprintf("[T=%03d] %s lives=%d", e.Tick, e.Kind, e.Lives)
	case EventGameEnded:
		return fmt.Sprintf("[T=%03d] %s %s", e.Tick, e.Kind, e.Outcome)
	case EventPhaseChanged:
		return fmt.Sprintf("[T=%03d] %s %s → %s", e.Tick, e.Kind, e.From, e.To)
	default:
		return fmt.Sprintf("[T=%03d] %s", e.Tick, e.Kind)
	}
}

// countKind is a small helper used by the session and tests.
func countKind(events []Event, kind EventKind) int {
	n := 0
	for _, e := range events {
		if e.Kind == kind {
			n++
		}
	}
	return n
}
