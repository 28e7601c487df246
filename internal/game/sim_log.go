package game

import (
	"fmt"
	"sort"
	"strings"
)

// SimLogEntry is one recorded event during a session.
type SimLogEntry struct {
	Tick     int
	Subject  string  // creature label e.g. "C07", "P" for the player, "--" for session events
	Category string  // weapon, creature, player, session, move
	Key      string  // specific event name within the category
	Value    string  // human-readable detail
	NumVal   float64 // optional numeric value for threshold checks
}

// String formats the entry as a fixed-width log line.
//
//	[T=042] C07  creature  killed           score=45
func (e SimLogEntry) String() string {
	return fmt.Sprintf("[T=%03d] %-4s %-9s %-16s %s",
		e.Tick, e.Subject, e.Category, e.Key, e.Value)
}

// SimLog collects structured events. Unlike the on-screen event feed it is
// unbounded and machine-readable; the headless report is computed from it.
type SimLog struct {
	entries []SimLogEntry
	verbose bool
}

// NewSimLog creates a SimLog. If verbose is true, per-tick position
// entries are also recorded.
func NewSimLog(verbose bool) *SimLog {
	return &SimLog{verbose: verbose}
}

// Add records a new entry.
func (sl *SimLog) Add(tick int, subject, category, key, value string, numVal float64) {
	sl.entries = append(sl.entries, SimLogEntry{
		Tick:     tick,
		Subject:  subject,
		Category: category,
		Key:      key,
		Value:    value,
		NumVal:   numVal,
	})
}

// AddVerbose records an entry only when verbose mode is on.
func (sl *SimLog) AddVerbose(tick int, subject, category, key, value string, numVal float64) {
	if !sl.verbose {
		return
	}
	sl.Add(tick, subject, category, key, value, numVal)
}

// Verbose reports whether per-tick entries are being recorded.
func (sl *SimLog) Verbose() bool {
	return sl.verbose
}

// RecordEvent translates a simulation event into a log entry.
func (sl *SimLog) RecordEvent(e Event, w World) {
	switch e.Kind {
	case EventShotFired:
		hit := 0.0
		if e.Hit {
			hit = 1
		}
		sl.Add(e.Tick, "P", "weapon", "shot", fmt.Sprintf("hit=%t ammo=%d", e.Hit, w.Player.Ammo), hit)
	case EventReloadStarted:
		sl.Add(e.Tick, "P", "weapon", "reload_start", fmt.Sprintf("ammo=%d", w.Player.Ammo), float64(w.Player.Ammo))
	case EventReloadFinished:
		sl.Add(e.Tick, "P", "weapon", "reload_done", fmt.Sprintf("ammo=%d", w.Player.Ammo), float64(w.Player.Ammo))
	case EventCreatureKilled:
		sl.Add(e.Tick, creatureLabel(e.CreatureID), "creature", "killed", fmt.Sprintf("score=%d alive=%d", w.Score, w.AliveCount()), float64(w.Score))
	case EventCreatureRemoved:
		sl.Add(e.Tick, creatureLabel(e.CreatureID), "creature", "removed", "", 0)
	case EventPlayerHit:
		sl.Add(e.Tick, "P", "player", "hit", fmt.Sprintf("lives=%d", e.Lives), float64(e.Lives))
	case EventGameEnded:
		sl.Add(e.Tick, "--", "session", "ended", e.Outcome.String(), float64(w.Score))
	case EventPhaseChanged:
		sl.Add(e.Tick, "--", "session", "phase", fmt.Sprintf("%s → %s", e.From, e.To), 0)
	}
}

// Entries returns all recorded entries.
func (sl *SimLog) Entries() []SimLogEntry {
	return sl.entries
}

// Filter returns entries matching the given category and/or key.
// Pass empty string to match any value for that field.
func (sl *SimLog) Filter(category, key string) []SimLogEntry {
	var out []SimLogEntry
	for _, e := range sl.entries {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		out = append(out, e)
	}
	return out
}

// FilterSubject returns entries for a specific creature label (or "P").
func (sl *SimLog) FilterSubject(label string) []SimLogEntry {
	var out []SimLogEntry
	for _, e := range sl.entries {
		if e.Subject == label {
			out = append(out, e)
		}
	}
	return out
}

// FilterTickRange returns entries within [fromTick, toTick] inclusive.
func (sl *SimLog) FilterTickRange(fromTick, toTick int) []SimLogEntry {
	var out []SimLogEntry
	for _, e := range sl.entries {
		if e.Tick >= fromTick && e.Tick <= toTick {
			out = append(out, e)
		}
	}
	return out
}

// CountCategory returns how many entries match the given category and key.
func (sl *SimLog) CountCategory(category, key string) int {
	return len(sl.Filter(category, key))
}

// LastOf returns the most recent entry matching category+key, or false if none.
func (sl *SimLog) LastOf(category, key string) (SimLogEntry, bool) {
	entries := sl.Filter(category, key)
	if len(entries) == 0 {
		return SimLogEntry{}, false
	}
	return entries[len(entries)-1], true
}

// HasEntry returns true if at least one entry matches category, key, and value substring.
func (sl *SimLog) HasEntry(category, key, valueSubstr string) bool {
	for _, e := range sl.entries {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		if valueSubstr != "" && !strings.Contains(e.Value, valueSubstr) {
			continue
		}
		return true
	}
	return false
}

// Format returns the full log as a single string for t.Log output.
func (sl *SimLog) Format() string {
	var sb strings.Builder
	for _, e := range sl.entries {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// FormatRange returns a log string filtered to a tick range.
func (sl *SimLog) FormatRange(fromTick, toTick int) string {
	var sb strings.Builder
	for _, e := range sl.FilterTickRange(fromTick, toTick) {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Summary returns a short human-readable summary of the world.
func (sl *SimLog) Summary(w World) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "--- Summary at T=%03d ---\n", w.Tick)
	fmt.Fprintf(&sb, "Phase: %s  outcome: %s  clock: %s\n", w.Phase, w.Outcome, FormatDuration(w.ClockMs))

	p := w.Player
	fmt.Fprintf(&sb, "Player: pos=(%.1f,%.1f,%.1f) lives=%d/%d ammo=%d/%d reloading=%t\n",
		p.Position.X(), p.Position.Y(), p.Position.Z(),
		p.Lives, w.Config.MaxLives, p.Ammo, w.Config.MaxAmmo, p.Reloading)
	fmt.Fprintf(&sb, "Score: %d  alive: %d/%d\n", w.Score, w.AliveCount(), w.Config.TotalCreatures)

	// Closest living creatures first, so the interesting ones lead.
	type near struct {
		label string
		dist  float64
		aggro bool
	}
	var nearby []near
	for _, c := range w.Creatures {
		if !c.Alive {
			continue
		}
		nearby = append(nearby, near{c.Label, c.Position.Sub(p.Position).Len(), c.Aggressive})
	}
	sort.Slice(nearby, func(i, j int) bool { return nearby[i].dist < nearby[j].dist })
	if len(nearby) > 5 {
		nearby = nearby[:5]
	}
	if len(nearby) == 0 {
		sb.WriteString("Nearest: none\n")
	}
	for _, n := range nearby {
		tag := ""
		if n.aggro {
			tag = " aggressive"
		}
		fmt.Fprintf(&sb, "Nearest: %s %.1fu%s\n", n.label, n.dist, tag)
	}
	return sb.String()
}
