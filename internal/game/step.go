package game

import "math"

// Advance runs one frame of simulation: movement, creature AI, then timers.
// It is a no-op outside PhaseRunning. dt is in seconds and may vary from
// call to call; negative or non-finite values count as zero.
func Advance(w World, in Input, dt float64) (World, []Event) {
	if w.Phase != PhaseRunning {
		return w, nil
	}
	if math.IsNaN(dt) || math.IsInf(dt, 0) || dt < 0 {
		dt = 0
	}
	in = in.sanitized()
	w = w.clone()

	w.Tick++
	dtMs := dt * 1000
	w.ClockMs += dtMs

	// 1. MOVE: camera pose comes from the input, translation from velocity.
	w.Player.Yaw = in.Yaw
	w.Player.Pitch = in.Pitch
	integratePlayer(&w.Player, in, dt, w.Config.WorldSize)

	// 2. AI: the global attack window is evaluated once for every creature.
	var events []Event
	w.AttackTimerMs += dtMs
	window := w.AttackTimerMs > attackIntervalMs
	for i := range w.Creatures {
		c := &w.Creatures[i]
		if !c.Alive {
			continue
		}
		if stepCreature(c, w.Player.Position, window, dt, w.Config.WorldSize, w.rng) {
			events = append(events, w.hitPlayer()...)
			if w.Phase == PhaseEnded {
				break
			}
		}
	}
	if window {
		w.AttackTimerMs = 0
	}
	if w.Phase == PhaseEnded {
		return w, events
	}

	// 3. TIMERS: weapon, then death animations.
	var ev []Event
	w, ev = advanceWeapon(w, dtMs)
	events = append(events, ev...)
	events = append(events, w.advanceCorpses(dtMs)...)
	return w, events
}

// hitPlayer costs the player a life and ends the session on the last one.
func (w *World) hitPlayer() []Event {
	if w.Player.Lives <= 0 {
		return nil
	}
	w.Player.Lives--
	events := []Event{{Kind: EventPlayerHit, Tick: w.Tick, Lives: w.Player.Lives}}
	if w.Player.Lives == 0 {
		events = append(events, w.end(OutcomeLost)...)
	}
	return events
}

// advanceCorpses counts down death animations and drops finished creatures.
func (w *World) advanceCorpses(dtMs float64) []Event {
	var events []Event
	kept := w.Creatures[:0]
	for _, c := range w.Creatures {
		if !c.Alive {
			c.DeathRemainingMs -= dtMs
			if c.DeathRemainingMs <= 0 {
				events = append(events, Event{Kind: EventCreatureRemoved, Tick: w.Tick, CreatureID: c.ID})
				continue
			}
		}
		kept = append(kept, c)
	}
	w.Creatures = kept
	return events
}
