package render

import (
	"image/color"
	"math"

	"github.com/Garsondee/Chicken-Hunter/internal/game"
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// borderWidth is the pixel gap between the window edge and the map.
const borderWidth = 20

// mapPixels is the side of the square top-down map.
const mapPixels = 860

// terrainStride merges this many height-grid cells into one ground tile.
const terrainStride = 2

// Game adapts a game.Session to ebiten: it polls the keyboard and mouse,
// steps the session once per frame and draws a top-down view of the field.
type Game struct {
	width  int
	height int
	offX   int
	offY   int

	session *game.Session
	input   *KeyboardInput
	feed    *EventFeed
	scenery game.Scenery
	logger  *log.Logger

	// Offscreen buffer for the static ground, drawn once.
	groundBuf *ebiten.Image

	copied bool // report copied since the session ended
}

// New wires a session and its scenery to a window.
func New(s *game.Session, sc game.Scenery, logger *log.Logger) *Game {
	return &Game{
		width:   borderWidth + mapPixels + borderWidth + feedPanelWidth,
		height:  borderWidth + mapPixels + borderWidth,
		offX:    borderWidth,
		offY:    borderWidth,
		session: s,
		input:   NewKeyboardInput(s.World.Config.MouseSensitivity),
		feed:    NewEventFeed(),
		scenery: sc,
		logger:  logger,
	}
}

// Size is the window size Layout reports.
func (g *Game) Size() (int, int) {
	return g.width, g.height
}

func (g *Game) Update() error {
	g.handleKeys()
	g.syncCursor()
	g.push(g.session.Tick(g.input.Poll(), frameDt()))
	return nil
}

// frameDt is the fixed step ebiten runs Update at.
func frameDt() float64 {
	tps := ebiten.TPS()
	if tps <= 0 {
		tps = ebiten.DefaultTPS
	}
	return 1 / float64(tps)
}

// handleKeys processes the session-level keys (edge-triggered). Gameplay
// keys go through KeyboardInput.
func (g *Game) handleKeys() {
	phase := g.session.World.Phase

	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		switch phase {
		case game.PhaseNotStarted:
			g.push(g.session.Start())
		case game.PhaseEnded:
			g.restart()
		}
	}

	// Escape releases the mouse by pausing.
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) && phase == game.PhaseRunning {
		g.push(g.session.TogglePause())
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyC) && phase == game.PhaseEnded {
		g.copyReport()
	}
}

func (g *Game) restart() {
	ev := g.session.Restart(true)
	if ev == nil {
		return
	}
	g.feed.Clear()
	g.input.ResetPose()
	g.copied = false
	g.push(ev)
}

func (g *Game) copyReport() {
	if err := clipboard.WriteAll(g.session.Report()); err != nil {
		g.logger.Warn("copy report", "err", err)
		return
	}
	g.copied = true
	g.logger.Info("report copied to clipboard")
}

// syncCursor captures the mouse while play is live and frees it otherwise.
func (g *Game) syncCursor() {
	want := ebiten.CursorModeVisible
	if g.session.World.Phase == game.PhaseRunning {
		want = ebiten.CursorModeCaptured
	}
	if ebiten.CursorMode() != want {
		ebiten.SetCursorMode(want)
	}
}

func (g *Game) push(events []game.Event) {
	for _, e := range events {
		g.feed.Push(e, g.session.World)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.width, g.height
}

// toScreen maps a world x/z to map pixels.
func (g *Game) toScreen(x, z float64) (float32, float32) {
	ws := g.session.World.Config.WorldSize
	scale := float64(mapPixels) / (2 * ws)
	return float32(float64(g.offX) + (x+ws)*scale), float32(float64(g.offY) + (z+ws)*scale)
}

// toPixels converts a world length to map pixels.
func (g *Game) toPixels(d float64) float32 {
	return float32(d * float64(mapPixels) / (2 * g.session.World.Config.WorldSize))
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 12, G: 14, B: 10, A: 255})

	if g.groundBuf == nil {
		g.groundBuf = ebiten.NewImage(mapPixels, mapPixels)
		g.drawGround(g.groundBuf)
	}
	var op ebiten.DrawImageOptions
	op.GeoM.Translate(float64(g.offX), float64(g.offY))
	screen.DrawImage(g.groundBuf, &op)

	g.drawProps(screen)
	g.drawCreatures(screen)
	g.drawPlayer(screen)

	ox, oy := float32(g.offX), float32(g.offY)
	vector.StrokeRect(screen, ox-1, oy-1, mapPixels+2, mapPixels+2, 2.0, color.RGBA{R: 80, G: 95, B: 60, A: 255}, false)

	w := g.session.World
	drawHUD(screen, w, float64(g.offX)+10, float64(g.offY)+10)
	drawBanner(screen, bannerLines(w, g.copied), g.offX*2+mapPixels, g.height)

	g.feed.Draw(screen, g.offX+mapPixels+borderWidth, g.height)
}

// drawGround paints the height grid as shaded tiles, in buffer coordinates.
func (g *Game) drawGround(dst *ebiten.Image) {
	dst.Fill(color.RGBA{R: 38, G: 62, B: 34, A: 255})
	sc := g.scenery
	if sc.Segments == 0 {
		return
	}
	cell := float32(mapPixels) / float32(sc.Segments)
	for row := 0; row < sc.Segments; row += terrainStride {
		for col := 0; col < sc.Segments; col += terrainStride {
			h := sc.Heights[row*(sc.Segments+1)+col]
			shade := uint8(54 + int(h*8))
			vector.FillRect(dst, float32(col)*cell, float32(row)*cell, cell*terrainStride, cell*terrainStride,
				color.RGBA{R: shade - 16, G: shade + 8, B: shade - 20, A: 255}, false)
		}
	}
}

func (g *Game) drawProps(screen *ebiten.Image) {
	sc := g.scenery
	for _, h := range sc.Hills {
		x, y := g.toScreen(h.Position.X(), h.Position.Z())
		vector.FillCircle(screen, x, y, g.toPixels(h.Radius), color.RGBA{R: 60, G: 84, B: 44, A: 90}, true)
	}
	for _, b := range sc.Bushes {
		x, y := g.toScreen(b.Position.X(), b.Position.Z())
		vector.FillCircle(screen, x, y, max(1.5, g.toPixels(b.Radius)), color.RGBA{R: 30, G: 70, B: 28, A: 255}, true)
	}
	for _, r := range sc.Rocks {
		x, y := g.toScreen(r.Position.X(), r.Position.Z())
		vector.FillCircle(screen, x, y, max(1, g.toPixels(r.Radius)), color.RGBA{R: 110, G: 108, B: 100, A: 255}, true)
	}
	for _, t := range sc.Trees {
		x, y := g.toScreen(t.Position.X(), t.Position.Z())
		vector.FillCircle(screen, x, y, max(2, g.toPixels(t.Radius)), color.RGBA{R: 24, G: 96, B: 36, A: 255}, true)
	}
	for _, h := range sc.Houses {
		x, y := g.toScreen(h.Position.X(), h.Position.Z())
		s := max(4, g.toPixels(h.Radius))
		vector.FillRect(screen, x-s/2, y-s/2, s, s, color.RGBA{R: 150, G: 96, B: 60, A: 255}, false)
		vector.StrokeRect(screen, x-s/2, y-s/2, s, s, 1, color.RGBA{R: 90, G: 40, B: 30, A: 255}, false)
	}
}

func (g *Game) drawCreatures(screen *ebiten.Image) {
	for _, c := range g.session.World.Creatures {
		x, y := g.toScreen(c.Position.X(), c.Position.Z())
		r := max(3, g.toPixels(1.3))
		if !c.Alive {
			a := uint8(200 * math.Max(0, math.Min(1, c.DeathRemainingMs/1500)))
			vector.FillCircle(screen, x, y, r, color.RGBA{R: 120, G: 110, B: 100, A: a}, true)
			continue
		}
		body := color.RGBA{R: 245, G: 240, B: 225, A: 255}
		vector.FillCircle(screen, x, y, r, body, true)
		if c.Aggressive {
			vector.StrokeCircle(screen, x, y, r+1.5, 1.5, color.RGBA{R: 220, G: 50, B: 40, A: 255}, true)
		}
		// Beak: a short tick along the facing.
		hx := x + float32(math.Sin(c.Facing))*(r+3)
		hy := y + float32(math.Cos(c.Facing))*(r+3)
		vector.StrokeLine(screen, x, y, hx, hy, 1.5, color.RGBA{R: 240, G: 170, B: 40, A: 255}, true)
	}
}

func (g *Game) drawPlayer(screen *ebiten.Image) {
	p := g.session.World.Player
	x, y := g.toScreen(p.Position.X(), p.Position.Z())

	fwd := p.Forward()
	flat := math.Hypot(fwd.X(), fwd.Z())
	if flat > 1e-6 {
		lx := x + float32(fwd.X()/flat)*28
		ly := y + float32(fwd.Z()/flat)*28
		vector.StrokeLine(screen, x, y, lx, ly, 1.5, color.RGBA{R: 250, G: 230, B: 120, A: 200}, true)
	}
	vector.FillCircle(screen, x, y, 5, color.RGBA{R: 250, G: 210, B: 60, A: 255}, true)
	vector.StrokeCircle(screen, x, y, 5, 1, color.RGBA{R: 40, G: 30, B: 10, A: 255}, true)
}
