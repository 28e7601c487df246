package game

import "testing"

func TestStart_OnlyFromNotStarted(t *testing.T) {
	w := newTestWorld(DefaultConfig())
	if w.Phase != PhaseNotStarted {
		t.Fatalf("new world phase: %s", w.Phase)
	}
	w, ev := Start(w)
	if w.Phase != PhaseRunning || len(ev) != 1 || ev[0].From != PhaseNotStarted || ev[0].To != PhaseRunning {
		t.Fatalf("start: phase=%s events=%v", w.Phase, ev)
	}
	if _, ev := Start(w); ev != nil {
		t.Fatal("Start on a running world should be a no-op")
	}
}

func TestPause_FreezesEverything(t *testing.T) {
	w := runningWorld(t, DefaultConfig())
	w, _ = Advance(w, Input{}, 0.5)
	w.Player.Ammo = 0
	w.Player.AutoReloadInMs = autoReloadDelayMs

	paused, ev := TogglePause(w)
	if paused.Phase != PhasePaused || countKind(ev, EventPhaseChanged) != 1 {
		t.Fatalf("pause: phase=%s events=%v", paused.Phase, ev)
	}
	frozen, ev := Advance(paused, Input{}, 10)
	if ev != nil {
		t.Fatalf("paused advance emitted %v", ev)
	}
	if frozen.ClockMs != paused.ClockMs || frozen.Tick != paused.Tick || frozen.AttackTimerMs != paused.AttackTimerMs {
		t.Fatal("paused advance moved the clocks")
	}
	if frozen.Player.AutoReloadInMs != autoReloadDelayMs {
		t.Fatalf("paused advance moved the auto-reload timer: %.0f", frozen.Player.AutoReloadInMs)
	}
	for i := range frozen.Creatures {
		if frozen.Creatures[i].Position != paused.Creatures[i].Position {
			t.Fatalf("creature %d moved while paused", i)
		}
	}

	resumed, _ := TogglePause(frozen)
	if resumed.Phase != PhaseRunning {
		t.Fatalf("resume: %s", resumed.Phase)
	}
	next, _ := Advance(resumed, Input{}, 0.1)
	if next.Tick != resumed.Tick+1 {
		t.Fatal("resumed world did not tick")
	}
}

func TestTogglePause_IgnoredOutsidePlay(t *testing.T) {
	w := newTestWorld(DefaultConfig())
	if _, ev := TogglePause(w); ev != nil {
		t.Fatal("pause before start")
	}
	w = runningWorld(t, DefaultConfig())
	w, _ = End(w, OutcomeWon)
	if _, ev := TogglePause(w); ev != nil {
		t.Fatal("pause after end")
	}
}

func TestEnd_OnlyOnce(t *testing.T) {
	w := runningWorld(t, DefaultConfig())
	w, ev := End(w, OutcomeLost)
	if countKind(ev, EventGameEnded) != 1 || w.Outcome != OutcomeLost || w.Phase != PhaseEnded {
		t.Fatalf("end: %v", ev)
	}
	w, ev = End(w, OutcomeWon)
	if ev != nil || w.Outcome != OutcomeLost {
		t.Fatalf("second end changed the world: outcome=%s events=%v", w.Outcome, ev)
	}
}

func TestReset_OnlyFromNotStartedOrEnded(t *testing.T) {
	w := runningWorld(t, DefaultConfig())
	w.Score = 45
	if got, ev := Reset(w, true); ev != nil || got.Score != 45 {
		t.Fatal("Reset on a running world should be a no-op")
	}
	w, _ = Pause(w)
	if _, ev := Reset(w, true); ev != nil {
		t.Fatal("Reset on a paused world should be a no-op")
	}

	w, _ = End(w, OutcomeLost)
	w.Player.Lives = 0
	w, ev := Reset(w, true)
	if w.Phase != PhaseRunning || countKind(ev, EventPhaseChanged) != 1 {
		t.Fatalf("reset: phase=%s events=%v", w.Phase, ev)
	}
	if w.Score != 0 || w.Outcome != OutcomeNone || w.Tick != 0 {
		t.Fatalf("reset left state behind: score=%d outcome=%s tick=%d", w.Score, w.Outcome, w.Tick)
	}
	if w.Player.Lives != w.Config.MaxLives || w.Player.Ammo != w.Config.MaxAmmo {
		t.Fatalf("reset player: %+v", w.Player)
	}
	if len(w.Creatures) != w.Config.TotalCreatures || w.AliveCount() != w.Config.TotalCreatures {
		t.Fatalf("reset population: %d", len(w.Creatures))
	}
	if w.Player.Position != playerSpawn {
		t.Fatalf("reset spawn: %v", w.Player.Position)
	}
}

func TestReset_FromNotStartedStaysIdle(t *testing.T) {
	w := newTestWorld(DefaultConfig())
	w, ev := Reset(w, false)
	if w.Phase != PhaseNotStarted || ev != nil {
		t.Fatalf("idle reset: phase=%s events=%v", w.Phase, ev)
	}
}

// --- Scenario: last creature shot ---

func TestScenario_WinEndsOnce(t *testing.T) {
	ts := NewTestSim(WithCreature(0, 0, -10, false, 0.03))

	ev := ts.Shoot(ts.RayAt(groundAt(0, -10)))
	if countKind(ev, EventGameEnded) != 1 {
		t.Fatalf("events: %v", ev)
	}
	w := ts.World()
	if w.Phase != PhaseEnded || w.Outcome != OutcomeWon {
		t.Fatalf("phase=%s outcome=%s", w.Phase, w.Outcome)
	}

	ts.RunTicks(120, 1.0/60)
	ts.Shoot(skyward)
	if got := ts.CountEvents(EventGameEnded); got != 1 {
		t.Fatalf("GameEnded: got %d, want 1", got)
	}
	if got := ts.CountEvents(EventShotFired); got != 1 {
		t.Fatalf("ShotFired after end: got %d, want 1", got)
	}
	if ts.Stats().Outcome != OutcomeWon || ts.Stats().Kills != 1 {
		t.Fatalf("stats: %+v", ts.Stats())
	}
}
