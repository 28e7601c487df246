package render

import (
	"fmt"
	"image/color"

	"github.com/Garsondee/Chicken-Hunter/internal/game"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

// hudScale is the upscale applied to HUD text.
const hudScale = 2

var (
	hudFace = text.NewGoXFace(basicfont.Face7x13)

	hudText   = color.RGBA{R: 235, G: 235, B: 220, A: 255}
	hudDim    = color.RGBA{R: 150, G: 150, B: 130, A: 255}
	hudWarn   = color.RGBA{R: 240, G: 90, B: 70, A: 255}
	hudPanel  = color.RGBA{R: 10, G: 12, B: 8, A: 190}
	hudBorder = color.RGBA{R: 80, G: 95, B: 60, A: 220}
)

// drawText draws s with its top-left corner at (x, y), scaled by hudScale.
func drawText(dst *ebiten.Image, s string, x, y float64, clr color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Scale(hudScale, hudScale)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(dst, s, hudFace, op)
}

// textWidth returns the on-screen width of s at hudScale.
func textWidth(s string) float64 {
	w, _ := text.Measure(s, hudFace, 0)
	return w * hudScale
}

// hudLines is the status block: score, lives, ammo, creatures left, clock.
func hudLines(w game.World) []string {
	p := w.Player
	ammo := fmt.Sprintf("AMMO  %d/%d", p.Ammo, w.Config.MaxAmmo)
	if p.Reloading {
		ammo = fmt.Sprintf("AMMO  reloading %.1fs", p.ReloadRemainingMs/1000)
	}
	return []string{
		fmt.Sprintf("SCORE %d", w.Score),
		fmt.Sprintf("LIVES %d", p.Lives),
		ammo,
		fmt.Sprintf("LEFT  %d/%d", w.AliveCount(), w.Config.TotalCreatures),
		fmt.Sprintf("TIME  %s", game.FormatDuration(w.ClockMs)),
	}
}

// drawHUD renders the status block in the top-left of the map.
func drawHUD(dst *ebiten.Image, w game.World, x, y float64) {
	lines := hudLines(w)
	lineH := 13.0 * hudScale
	boxW := float32(0)
	for _, l := range lines {
		if tw := float32(textWidth(l)); tw > boxW {
			boxW = tw
		}
	}
	boxW += 16
	boxH := float32(float64(len(lines))*lineH + 12)
	vector.FillRect(dst, float32(x), float32(y), boxW, boxH, hudPanel, false)
	vector.StrokeRect(dst, float32(x), float32(y), boxW, boxH, 1, hudBorder, false)

	for i, l := range lines {
		clr := hudText
		switch {
		case i == 1 && w.Player.Lives <= 1:
			clr = hudWarn
		case i == 2 && (w.Player.Ammo == 0 || w.Player.Reloading):
			clr = hudWarn
		}
		drawText(dst, l, x+8, y+6+float64(i)*lineH, clr)
	}
}

// bannerLines is the centred overlay for every phase but Running.
func bannerLines(w game.World, copied bool) []string {
	switch w.Phase {
	case game.PhaseNotStarted:
		return []string{
			"CHICKEN HUNTER",
			"",
			fmt.Sprintf("Shoot all %d chickens. Some of them fight back.", w.Config.TotalCreatures),
			"WASD move  SHIFT run  MOUSE look",
			"SPACE/CLICK shoot  R reload  P pause",
			"",
			"ENTER to start",
		}
	case game.PhasePaused:
		return []string{"PAUSED", "", "P to resume"}
	case game.PhaseEnded:
		title := "YOU WIN"
		if w.Outcome == game.OutcomeLost {
			title = "GAME OVER"
		}
		hint := "C copy report"
		if copied {
			hint = "report copied"
		}
		return []string{
			title,
			"",
			fmt.Sprintf("Score %d in %s", w.Score, game.FormatDuration(w.ClockMs)),
			"",
			"ENTER to play again  " + hint,
		}
	default:
		return nil
	}
}

// drawBanner centres lines over a width×height area.
func drawBanner(dst *ebiten.Image, lines []string, width, height int) {
	if len(lines) == 0 {
		return
	}
	lineH := 13.0 * hudScale
	maxW := 0.0
	for _, l := range lines {
		if tw := textWidth(l); tw > maxW {
			maxW = tw
		}
	}
	boxW := maxW + 48
	boxH := float64(len(lines))*lineH + 36
	bx := (float64(width) - boxW) / 2
	by := (float64(height) - boxH) / 2
	vector.FillRect(dst, float32(bx), float32(by), float32(boxW), float32(boxH), hudPanel, false)
	vector.StrokeRect(dst, float32(bx), float32(by), float32(boxW), float32(boxH), 2, hudBorder, false)

	for i, l := range lines {
		clr := hudDim
		if i == 0 {
			clr = hudText
		}
		x := (float64(width) - textWidth(l)) / 2
		drawText(dst, l, x, by+18+float64(i)*lineH, clr)
	}
}
