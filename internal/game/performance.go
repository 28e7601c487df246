package game

import (
	"fmt"
	"math"
	"strings"
)

// RunStats accumulates a session's shooting and survival record.
// Session keeps it current from the event stream.
type RunStats struct {
	Ticks      int
	Shots      int
	Hits       int
	Kills      int
	PlayerHits int
	Reloads    int

	FirstKillTick int // -1 until the first kill
	FirstHitTick  int // -1 until the player is first struck

	ElapsedMs float64
	Outcome   Outcome
	Score     int

	LivesLeft      int
	MaxLives       int
	TotalCreatures int
}

func newRunStats(cfg Config) RunStats {
	return RunStats{
		FirstKillTick:  -1,
		FirstHitTick:   -1,
		LivesLeft:      cfg.MaxLives,
		MaxLives:       cfg.MaxLives,
		TotalCreatures: cfg.TotalCreatures,
	}
}

// observe folds one event into the stats.
func (rs *RunStats) observe(e Event) {
	switch e.Kind {
	case EventShotFired:
		rs.Shots++
		if e.Hit {
			rs.Hits++
		}
	case EventCreatureKilled:
		rs.Kills++
		if rs.FirstKillTick < 0 {
			rs.FirstKillTick = e.Tick
		}
	case EventPlayerHit:
		rs.PlayerHits++
		rs.LivesLeft = e.Lives
		if rs.FirstHitTick < 0 {
			rs.FirstHitTick = e.Tick
		}
	case EventReloadStarted:
		rs.Reloads++
	case EventGameEnded:
		rs.Outcome = e.Outcome
	}
}

// Accuracy is hits per shot in [0,1]; zero when nothing was fired.
func (rs RunStats) Accuracy() float64 {
	if rs.Shots == 0 {
		return 0
	}
	return float64(rs.Hits) / float64(rs.Shots)
}

// PerfScore rates a run 0–100: half for the cull, 30 for marksmanship,
// 20 for lives kept.
func (rs RunStats) PerfScore() float64 {
	cull := 0.0
	if rs.TotalCreatures > 0 {
		cull = float64(rs.Kills) / float64(rs.TotalCreatures)
	}
	lives := 0.0
	if rs.MaxLives > 0 {
		lives = float64(rs.LivesLeft) / float64(rs.MaxLives)
	}
	score := cull*50 + rs.Accuracy()*30 + lives*20
	return math.Max(0, math.Min(100, score))
}

// PerfLetterGrade maps a 0–100 score to a letter.
func PerfLetterGrade(score float64) string {
	switch {
	case score >= 93:
		return "A+"
	case score >= 85:
		return "A"
	case score >= 78:
		return "B+"
	case score >= 70:
		return "B"
	case score >= 62:
		return "C+"
	case score >= 55:
		return "C"
	case score >= 45:
		return "D"
	default:
		return "F"
	}
}

// FormatDuration renders milliseconds as m:ss like the in-game timer.
func FormatDuration(ms float64) string {
	secs := int(ms / 1000)
	if secs < 0 {
		secs = 0
	}
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}

// FormatRunStats returns a multi-line report block for one run.
func FormatRunStats(rs RunStats) string {
	var sb strings.Builder
	grade := PerfLetterGrade(rs.PerfScore())
	fmt.Fprintf(&sb, "outcome=%s score=%d grade=%s (%.1f) time=%s ticks=%d\n",
		rs.Outcome, rs.Score, grade, rs.PerfScore(), FormatDuration(rs.ElapsedMs), rs.Ticks)
	fmt.Fprintf(&sb, "shots=%d hits=%d accuracy=%.0f%% kills=%d/%d reloads=%d\n",
		rs.Shots, rs.Hits, rs.Accuracy()*100, rs.Kills, rs.TotalCreatures, rs.Reloads)
	fmt.Fprintf(&sb, "player_hits=%d lives=%d/%d first_kill=%s first_hit=%s\n",
		rs.PlayerHits, rs.LivesLeft, rs.MaxLives, tickString(rs.FirstKillTick), tickString(rs.FirstHitTick))
	return sb.String()
}

func tickString(t int) string {
	if t < 0 {
		return "n/a"
	}
	return fmt.Sprintf("%d", t)
}
