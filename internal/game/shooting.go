package game

// --- Weapon constants ---

const (
	shotCooldownMs    = 100.0
	autoReloadDelayMs = 500.0
	killScore         = 15
	deathAnimMs       = 1500.0
)

// canFire reports whether the trigger does anything right now.
func (w World) canFire() bool {
	p := w.Player
	if w.Phase != PhaseRunning || p.Reloading || p.Ammo <= 0 {
		return false
	}
	return !p.HasShot || w.ClockMs-p.LastShotMs >= shotCooldownMs
}

// FireShot spends a round along ray. Firing during cooldown, while
// reloading, with an empty magazine or outside a running session is a
// silent no-op: the world comes back unchanged with Miss and no events.
func FireShot(w World, ray Ray) (World, HitResult, []Event) {
	if !w.canFire() {
		return w, Miss, nil
	}
	w = w.clone()
	w.Player.Ammo--
	w.Player.LastShotMs = w.ClockMs
	w.Player.HasShot = true

	res := ResolveHit(ray, w.Creatures, DefaultHitbox)
	events := []Event{{Kind: EventShotFired, Tick: w.Tick, Hit: res.Hit}}

	if res.Hit {
		events = append(events, w.kill(res.CreatureID)...)
	}
	if w.Player.Ammo == 0 && w.Phase == PhaseRunning {
		w.Player.AutoReloadInMs = autoReloadDelayMs
	}
	return w, res, events
}

// kill marks the creature dead, scores it and checks the win condition.
func (w *World) kill(id int) []Event {
	c, ok := w.Creature(id)
	if !ok || !c.Alive {
		return nil
	}
	c.Alive = false
	c.DeathRemainingMs = deathAnimMs
	w.Score += killScore

	events := []Event{{Kind: EventCreatureKilled, Tick: w.Tick, CreatureID: id}}
	if w.AliveCount() == 0 {
		events = append(events, w.end(OutcomeWon)...)
	}
	return events
}
