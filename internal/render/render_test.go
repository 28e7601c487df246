package render

import (
	"math"
	"math/rand"
	"strings"
	"testing"

	"github.com/Garsondee/Chicken-Hunter/internal/game"
)

func TestEventFeed_RingBuffer(t *testing.T) {
	f := NewEventFeed()
	w := game.World{}
	for i := 0; i < feedMaxEntries+10; i++ {
		f.Push(game.Event{Kind: game.EventReloadStarted, Tick: i}, w)
	}
	got := f.Recent()
	if len(got) != feedMaxEntries {
		t.Fatalf("len: got %d, want %d", len(got), feedMaxEntries)
	}
	if got[0].Tick != 10 || got[len(got)-1].Tick != feedMaxEntries+9 {
		t.Fatalf("order: first=%d last=%d", got[0].Tick, got[len(got)-1].Tick)
	}

	f.Clear()
	if len(f.Recent()) != 0 {
		t.Fatal("Clear left entries behind")
	}
}

func TestEventFeed_SkipsNoise(t *testing.T) {
	f := NewEventFeed()
	w := game.World{}
	f.Push(game.Event{Kind: game.EventShotFired}, w)
	f.Push(game.Event{Kind: game.EventCreatureRemoved, CreatureID: 2}, w)
	f.Push(game.Event{Kind: game.EventPlayerHit, Lives: 1}, w)
	got := f.Recent()
	if len(got) != 1 || !strings.Contains(got[0].Message, "1 lives") {
		t.Fatalf("feed: %+v", got)
	}
}

func TestEventFeed_EndMessages(t *testing.T) {
	won, _ := feedMessage(game.Event{Kind: game.EventGameEnded, Outcome: game.OutcomeWon}, game.World{})
	lost, _ := feedMessage(game.Event{Kind: game.EventGameEnded, Outcome: game.OutcomeLost}, game.World{})
	if won == lost {
		t.Fatalf("won and lost read the same: %q", won)
	}
}

func TestKeyboardInput_LookClampsPitch(t *testing.T) {
	k := NewKeyboardInput(0.002)
	k.look(100, 0)
	yaw, _ := k.Pose()
	if math.Abs(yaw+0.2) > 1e-12 {
		t.Fatalf("moving the mouse right should turn right (negative yaw), got %.4f", yaw)
	}
	k.look(0, -100000)
	if _, pitch := k.Pose(); pitch != math.Pi/2 {
		t.Fatalf("pitch should stop at π/2, got %.4f", pitch)
	}
	k.look(0, 200000)
	if _, pitch := k.Pose(); pitch != -math.Pi/2 {
		t.Fatalf("pitch should stop at -π/2, got %.4f", pitch)
	}
	k.ResetPose()
	if yaw, pitch := k.Pose(); yaw != 0 || pitch != 0 {
		t.Fatalf("reset pose: %.3f %.3f", yaw, pitch)
	}
}

func newRenderSession() *game.Session {
	return game.NewSession(game.DefaultConfig(), game.WithRand(rand.New(rand.NewSource(1)))) // #nosec G404 -- test
}

func TestHUDLines(t *testing.T) {
	s := newRenderSession()
	s.Start()
	lines := hudLines(s.World)
	joined := strings.Join(lines, "\n")
	for _, want := range []string{"SCORE 0", "LIVES 3", "AMMO  30/30", "LEFT  20/20", "TIME  0:00"} {
		if !strings.Contains(joined, want) {
			t.Fatalf("HUD missing %q:\n%s", want, joined)
		}
	}

	s.World.Player.Reloading = true
	s.World.Player.ReloadRemainingMs = 1500
	if l := hudLines(s.World)[2]; !strings.Contains(l, "reloading 1.5s") {
		t.Fatalf("reload line: %q", l)
	}
}

func TestBannerLines_PerPhase(t *testing.T) {
	s := newRenderSession()
	if l := bannerLines(s.World, false); len(l) == 0 || l[0] != "CHICKEN HUNTER" {
		t.Fatalf("title banner: %v", l)
	}
	s.Start()
	if l := bannerLines(s.World, false); l != nil {
		t.Fatalf("running should have no banner: %v", l)
	}
	s.TogglePause()
	if l := bannerLines(s.World, false); len(l) == 0 || l[0] != "PAUSED" {
		t.Fatalf("pause banner: %v", l)
	}

	s.World.Phase = game.PhaseEnded
	s.World.Outcome = game.OutcomeLost
	l := bannerLines(s.World, true)
	if l[0] != "GAME OVER" || !strings.Contains(l[len(l)-1], "report copied") {
		t.Fatalf("end banner: %v", l)
	}
}
