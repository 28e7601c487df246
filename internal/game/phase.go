package game

// setPhase moves to next and reports the transition, or nothing if the
// phase is unchanged.
func (w *World) setPhase(next Phase) []Event {
	if w.Phase == next {
		return nil
	}
	ev := Event{Kind: EventPhaseChanged, Tick: w.Tick, From: w.Phase, To: next}
	w.Phase = next
	return []Event{ev}
}

// end finishes a running or paused session exactly once.
func (w *World) end(outcome Outcome) []Event {
	if w.Phase != PhaseRunning && w.Phase != PhasePaused {
		return nil
	}
	w.Outcome = outcome
	events := []Event{{Kind: EventGameEnded, Tick: w.Tick, Outcome: outcome}}
	return append(events, w.setPhase(PhaseEnded)...)
}

// Start begins play from NotStarted.
func Start(w World) (World, []Event) {
	if w.Phase != PhaseNotStarted {
		return w, nil
	}
	ev := w.setPhase(PhaseRunning)
	return w, ev
}

// Pause freezes a running session. Timers keep their current values.
func Pause(w World) (World, []Event) {
	if w.Phase != PhaseRunning {
		return w, nil
	}
	ev := w.setPhase(PhasePaused)
	return w, ev
}

// Resume continues a paused session where it left off.
func Resume(w World) (World, []Event) {
	if w.Phase != PhasePaused {
		return w, nil
	}
	ev := w.setPhase(PhaseRunning)
	return w, ev
}

// TogglePause flips between Running and Paused; other phases ignore it.
func TogglePause(w World) (World, []Event) {
	if w.Phase == PhasePaused {
		return Resume(w)
	}
	return Pause(w)
}

// End stops a running or paused session with the given outcome.
func End(w World, outcome Outcome) (World, []Event) {
	ev := w.end(outcome)
	return w, ev
}

// Reset re-deals a fresh session with the same config and random source.
// Only NotStarted and Ended sessions can be reset; running lands in
// Running, otherwise NotStarted.
func Reset(w World, running bool) (World, []Event) {
	if w.Phase != PhaseNotStarted && w.Phase != PhaseEnded {
		return w, nil
	}
	w.populate()
	next := PhaseNotStarted
	if running {
		next = PhaseRunning
	}
	ev := w.setPhase(next)
	return w, ev
}
