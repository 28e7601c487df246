package game

const reloadDurationMs = 2000.0

// Reload starts a reload. It is a no-op while already reloading, with a
// full magazine, or when no session is in progress. Paused sessions may
// start one; its timer waits for the session to resume.
func Reload(w World) (World, []Event) {
	p := w.Player
	if p.Reloading || p.Ammo >= w.Config.MaxAmmo {
		return w, nil
	}
	if w.Phase != PhaseRunning && w.Phase != PhasePaused {
		return w, nil
	}
	w.Player.Reloading = true
	w.Player.ReloadRemainingMs = reloadDurationMs
	w.Player.AutoReloadInMs = 0
	return w, []Event{{Kind: EventReloadStarted, Tick: w.Tick}}
}

// FinishReload completes a reload in progress: full magazine, trigger free.
// A reload left pending when the session ended stays unfinished.
func FinishReload(w World) (World, []Event) {
	if !w.Player.Reloading || w.Phase == PhaseEnded {
		return w, nil
	}
	w.Player.Ammo = w.Config.MaxAmmo
	w.Player.Reloading = false
	w.Player.ReloadRemainingMs = 0
	return w, []Event{{Kind: EventReloadFinished, Tick: w.Tick}}
}

// advanceWeapon runs the pending auto-reload and the reload countdown.
func advanceWeapon(w World, dtMs float64) (World, []Event) {
	var events []Event
	if w.Player.AutoReloadInMs > 0 {
		w.Player.AutoReloadInMs -= dtMs
		if w.Player.AutoReloadInMs <= 0 {
			w.Player.AutoReloadInMs = 0
			var ev []Event
			w, ev = Reload(w)
			events = append(events, ev...)
			// The countdown starts next tick; this tick's time was spent waiting.
			return w, events
		}
	}
	if w.Player.Reloading {
		w.Player.ReloadRemainingMs -= dtMs
		if w.Player.ReloadRemainingMs <= 0 {
			var ev []Event
			w, ev = FinishReload(w)
			events = append(events, ev...)
		}
	}
	return w, events
}
