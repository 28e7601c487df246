package main

import (
	"flag"
	"fmt"
	"math/rand"
	"sort"
	"strings"

	"github.com/Garsondee/Chicken-Hunter/internal/game"
)

type runStats struct {
	runIndex int
	seed     int64

	firstKillTick int
	firstHitTick  int
	lastKillTick  int

	shots      int
	hits       int
	kills      int
	playerHits int
	reloads    int
	phaseFlips int

	outcome   game.Outcome
	score     int
	elapsedMs float64
	perf      float64
	creatures int

	killed map[string]struct{}
}

// idleInput stands still and never fires: it measures how hard the flock
// pushes back on its own.
type idleInput struct{}

func (idleInput) Poll() game.Input { return game.Input{} }

func main() {
	var runs int
	var ticks int
	var dt float64
	var seedBase int64
	var seedStep int64
	var worldSize float64
	var creatures int
	var scenario string

	flag.IntVar(&runs, "runs", 5, "number of headless simulation runs")
	flag.IntVar(&ticks, "ticks", 7200, "ticks per run")
	flag.Float64Var(&dt, "dt", 1.0/60, "seconds per tick")
	flag.Int64Var(&seedBase, "seed-base", 42, "base RNG seed for run 1")
	flag.Int64Var(&seedStep, "seed-step", 1, "seed increment between runs")
	flag.Float64Var(&worldSize, "world-size", 500, "world size (clamped to 300..1000)")
	flag.IntVar(&creatures, "creatures", 20, "creatures per run (clamped to 1..200)")
	flag.StringVar(&scenario, "scenario", "autopilot", "scenario name: autopilot, idle")
	flag.Parse()

	if runs <= 0 {
		fmt.Println("error: -runs must be > 0")
		return
	}
	if ticks <= 0 {
		fmt.Println("error: -ticks must be > 0")
		return
	}
	if dt <= 0 {
		fmt.Println("error: -dt must be > 0")
		return
	}
	if scenario != "autopilot" && scenario != "idle" {
		fmt.Printf("error: unsupported scenario %q (supported: autopilot, idle)\n", scenario)
		return
	}

	fmt.Printf("=== Headless Hunt Report ===\n")
	fmt.Printf("scenario=%s runs=%d ticks=%d dt=%.4f seed_base=%d seed_step=%d world_size=%.0f creatures=%d\n\n",
		scenario, runs, ticks, dt, seedBase, seedStep, worldSize, creatures)

	all := make([]runStats, 0, runs)
	for i := 0; i < runs; i++ {
		seed := seedBase + int64(i)*seedStep
		stats := runScenario(scenario, i+1, seed, ticks, dt, worldSize, creatures)
		all = append(all, stats)
		printRun(stats)
	}

	printAggregate(all)
}

func runScenario(scenario string, runIndex int, seed int64, ticks int, dt, worldSize float64, creatures int) runStats {
	ts := game.NewTestSim(
		game.WithSeed(seed),
		game.WithWorldSize(worldSize),
		game.WithCreatureCount(creatures),
	)

	var provider game.InputProvider = idleInput{}
	if scenario == "autopilot" {
		provider = game.NewAutopilot(ts.World, rand.New(rand.NewSource(seed+1))) // #nosec G404 -- simulation only
	}
	ts.RunWith(provider, ticks, dt)

	entries := ts.SimLog.Entries()
	killed := map[string]struct{}{}
	lastKill := -1
	for _, e := range entries {
		if e.Category == "creature" && e.Key == "killed" {
			killed[e.Subject] = struct{}{}
			lastKill = e.Tick
		}
	}

	st := ts.Stats()
	return runStats{
		runIndex:      runIndex,
		seed:          seed,
		firstKillTick: firstTick(entries, "creature", "killed", ""),
		firstHitTick:  firstTick(entries, "player", "hit", ""),
		lastKillTick:  lastKill,
		shots:         ts.SimLog.CountCategory("weapon", "shot"),
		hits:          st.Hits,
		kills:         st.Kills,
		playerHits:    ts.SimLog.CountCategory("player", "hit"),
		reloads:       ts.SimLog.CountCategory("weapon", "reload_start"),
		phaseFlips:    ts.SimLog.CountCategory("session", "phase"),
		outcome:       st.Outcome,
		score:         st.Score,
		elapsedMs:     st.ElapsedMs,
		perf:          st.PerfScore(),
		creatures:     st.TotalCreatures,
		killed:        killed,
	}
}

func firstTick(entries []game.SimLogEntry, category, key, contains string) int {
	for _, e := range entries {
		if e.Category != category || e.Key != key {
			continue
		}
		if contains == "" || strings.Contains(e.Value, contains) {
			return e.Tick
		}
	}
	return -1
}

// classifyRun labels a run and says why.
func classifyRun(rs runStats) (string, string) {
	switch rs.outcome {
	case game.OutcomeWon:
		return "won", fmt.Sprintf("cleared_%d_in_%s", rs.creatures, game.FormatDuration(rs.elapsedMs))
	case game.OutcomeLost:
		return "lost", fmt.Sprintf("killed_%d_of_%d", rs.kills, rs.creatures)
	}
	if rs.kills == 0 {
		return "timeout", "no_kills"
	}
	return "timeout", fmt.Sprintf("%d_left", rs.creatures-rs.kills)
}

// outcomeCounts tallies won, lost and unfinished runs.
func outcomeCounts(all []runStats) (won, lost, timeout int) {
	for _, rs := range all {
		switch rs.outcome {
		case game.OutcomeWon:
			won++
		case game.OutcomeLost:
			lost++
		default:
			timeout++
		}
	}
	return won, lost, timeout
}

func accuracy(hits, shots int) float64 {
	if shots <= 0 {
		return 0
	}
	return float64(hits) / float64(shots)
}

func printRun(rs runStats) {
	label, reason := classifyRun(rs)
	fmt.Printf("--- Run %d (seed=%d) ---\n", rs.runIndex, rs.seed)
	fmt.Printf("result: %s (%s) score=%d time=%s grade=%s (%.1f)\n",
		label, reason, rs.score, game.FormatDuration(rs.elapsedMs), game.PerfLetterGrade(rs.perf), rs.perf)
	fmt.Printf("phase_markers: first_kill=%d last_kill=%d first_hit=%d\n",
		rs.firstKillTick, rs.lastKillTick, rs.firstHitTick)
	fmt.Printf("event_totals: shots=%d hits=%d accuracy=%.0f%% kills=%d player_hits=%d reloads=%d phase_changes=%d\n",
		rs.shots, rs.hits, accuracy(rs.hits, rs.shots)*100, rs.kills, rs.playerHits, rs.reloads, rs.phaseFlips)
	fmt.Printf("killed_labels: %s\n", joinSet(rs.killed))
	fmt.Println()
}

func printAggregate(all []runStats) {
	totalShots := 0
	totalHits := 0
	totalKills := 0
	totalPlayerHits := 0
	totalReloads := 0
	perfSum := 0.0

	firstKills := make([]int, 0, len(all))
	firstHits := make([]int, 0, len(all))
	winTimes := make([]float64, 0, len(all))
	killedCount := map[string]int{}

	for _, rs := range all {
		totalShots += rs.shots
		totalHits += rs.hits
		totalKills += rs.kills
		totalPlayerHits += rs.playerHits
		totalReloads += rs.reloads
		perfSum += rs.perf
		if rs.firstKillTick >= 0 {
			firstKills = append(firstKills, rs.firstKillTick)
		}
		if rs.firstHitTick >= 0 {
			firstHits = append(firstHits, rs.firstHitTick)
		}
		if rs.outcome == game.OutcomeWon {
			winTimes = append(winTimes, rs.elapsedMs)
		}
		for label := range rs.killed {
			killedCount[label]++
		}
	}

	won, lost, timeout := outcomeCounts(all)
	fmt.Println("=== Aggregate ===")
	fmt.Printf("runs=%d won=%d lost=%d timeout=%d\n", len(all), won, lost, timeout)
	fmt.Printf("avg_per_run: shots=%.1f kills=%.1f player_hits=%.1f reloads=%.1f accuracy=%.0f%%\n",
		avg(totalShots, len(all)), avg(totalKills, len(all)), avg(totalPlayerHits, len(all)), avg(totalReloads, len(all)),
		accuracy(totalHits, totalShots)*100)
	fmt.Printf("phase_marker_avg_ticks: first_kill=%s first_hit=%s\n", avgTickString(firstKills), avgTickString(firstHits))
	if len(winTimes) > 0 {
		sum := 0.0
		for _, v := range winTimes {
			sum += v
		}
		fmt.Printf("avg_time_to_win=%s\n", game.FormatDuration(sum/float64(len(winTimes))))
	}
	if len(all) > 0 {
		mean := perfSum / float64(len(all))
		fmt.Printf("avg_grade=%s (%.1f)\n", game.PerfLetterGrade(mean), mean)
	}

	// Creatures that most often went down, by label.
	type labelCount struct {
		label string
		n     int
	}
	var rows []labelCount
	for label, n := range killedCount {
		rows = append(rows, labelCount{label, n})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].n != rows[j].n {
			return rows[i].n > rows[j].n
		}
		return rows[i].label < rows[j].label
	})
	if len(rows) > 5 {
		rows = rows[:5]
	}
	if len(rows) > 0 {
		fmt.Println("\n--- Most hunted ---")
		for _, r := range rows {
			fmt.Printf("  %s  killed in %d/%d runs\n", r.label, r.n, len(all))
		}
	}
}

func avg(sum int, n int) float64 {
	if n <= 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

func avgTickString(vals []int) string {
	if len(vals) == 0 {
		return "n/a"
	}
	sum := 0
	for _, v := range vals {
		sum += v
	}
	return fmt.Sprintf("%.1f", float64(sum)/float64(len(vals)))
}

func joinSet(s map[string]struct{}) string {
	if len(s) == 0 {
		return "none"
	}
	labels := make([]string, 0, len(s))
	for k := range s {
		labels = append(labels, k)
	}
	sort.Strings(labels)
	return strings.Join(labels, ",")
}
