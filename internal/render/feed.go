package render

import (
	"fmt"
	"image/color"

	"github.com/Garsondee/Chicken-Hunter/internal/game"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	feedPanelWidth = 260
	feedMaxEntries = 60
	feedLineHeight = 14
)

// FeedEntry is a single line in the event feed.
type FeedEntry struct {
	Tick    int
	Kind    game.EventKind
	Message string
}

// EventFeed is a ring buffer of recent simulation events rendered on-screen.
type EventFeed struct {
	entries []FeedEntry
	head    int
	count   int
}

// NewEventFeed creates a feed with a fixed capacity.
func NewEventFeed() *EventFeed {
	return &EventFeed{
		entries: make([]FeedEntry, feedMaxEntries),
	}
}

// Push records e if it is worth showing. w is the world after the event.
func (f *EventFeed) Push(e game.Event, w game.World) {
	msg, ok := feedMessage(e, w)
	if !ok {
		return
	}
	f.entries[f.head] = FeedEntry{Tick: e.Tick, Kind: e.Kind, Message: msg}
	f.head = (f.head + 1) % feedMaxEntries
	if f.count < feedMaxEntries {
		f.count++
	}
}

// Clear empties the feed, e.g. on restart.
func (f *EventFeed) Clear() {
	f.head = 0
	f.count = 0
}

// Recent returns entries in chronological order (oldest first).
func (f *EventFeed) Recent() []FeedEntry {
	result := make([]FeedEntry, f.count)
	for i := 0; i < f.count; i++ {
		idx := (f.head - f.count + i + feedMaxEntries) % feedMaxEntries
		result[i] = f.entries[idx]
	}
	return result
}

func feedMessage(e game.Event, w game.World) (string, bool) {
	switch e.Kind {
	case game.EventCreatureKilled:
		return fmt.Sprintf("C%02d down, %d left", e.CreatureID, w.AliveCount()), true
	case game.EventPlayerHit:
		return fmt.Sprintf("pecked! %d lives", e.Lives), true
	case game.EventReloadStarted:
		return "reloading...", true
	case game.EventReloadFinished:
		return "reloaded", true
	case game.EventGameEnded:
		if e.Outcome == game.OutcomeWon {
			return "all chickens down", true
		}
		return "out of lives", true
	case game.EventPhaseChanged:
		return fmt.Sprintf("%s -> %s", e.From, e.To), true
	default:
		// Shots and corpse removal are too frequent to be useful here.
		return "", false
	}
}

func feedColor(k game.EventKind) color.RGBA {
	switch k {
	case game.EventCreatureKilled:
		return color.RGBA{R: 230, G: 200, B: 60, A: 255}
	case game.EventPlayerHit:
		return color.RGBA{R: 220, G: 70, B: 60, A: 255}
	case game.EventGameEnded:
		return color.RGBA{R: 240, G: 240, B: 240, A: 255}
	default:
		return color.RGBA{R: 90, G: 130, B: 200, A: 255}
	}
}

// Draw renders the feed panel at panelX, full height.
func (f *EventFeed) Draw(screen *ebiten.Image, panelX int, panelH int) {
	vector.FillRect(screen, float32(panelX), 0, float32(feedPanelWidth), float32(panelH), color.RGBA{R: 14, G: 16, B: 12, A: 248}, false)
	vector.StrokeLine(screen, float32(panelX), 0, float32(panelX), float32(panelH), 1.0, color.RGBA{R: 70, G: 80, B: 50, A: 255}, false)

	vector.FillRect(screen, float32(panelX), 0, float32(feedPanelWidth), 16, color.RGBA{R: 30, G: 34, B: 20, A: 255}, false)
	ebitenutil.DebugPrintAt(screen, "FIELD LOG", panelX+8, 0)

	entries := f.Recent()
	maxVisible := (panelH - 24) / feedLineHeight
	if len(entries) > maxVisible {
		entries = entries[len(entries)-maxVisible:]
	}

	y := 20
	for i, e := range entries {
		if i >= len(entries)-3 {
			vector.FillRect(screen, float32(panelX+2), float32(y), float32(feedPanelWidth-4), float32(feedLineHeight), color.RGBA{R: 34, G: 40, B: 26, A: 160}, false)
		}
		vector.FillRect(screen, float32(panelX+5), float32(y+4), 3, 6, feedColor(e.Kind), false)
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%5d %s", e.Tick, e.Message), panelX+12, y-1)
		y += feedLineHeight
	}
}
