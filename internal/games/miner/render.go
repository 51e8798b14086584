package miner

import (
	"fmt"

	"github.com/vovakirdan/procgen-arcade/internal/core"
	"github.com/vovakirdan/procgen-arcade/internal/engine"
)

const hudRows = 2

// Render draws the board around the agent, two characters per cell.
// Cells beyond the board edge are drawn as wall.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.resetErr != nil {
		dst.DrawOverlay("LEVEL FAILED", g.resetErr.Error())
		return
	}
	if g.grid == nil {
		return
	}

	ax, ay := g.agent.Cell()
	ex, ey := g.exit.Cell()
	vp := engine.Fit(dst.Width(), dst.Height(), hudRows, 2, g.grid.W, g.grid.H, ax, ay)
	vp.Each(func(wx, wy int) {
		t := g.grid.GetXY(wx, wy)
		switch {
		case wx == ax && wy == ay:
			t = engine.Player
		case wx == ex && wy == ey && t == engine.Space:
			t = Exit
		}
		gl := glyphs[t]
		if sx, sy, ok := vp.ToScreen(wx, wy); ok {
			if t == engine.Player && g.agent.Facing < 0 {
				dst.DrawTextColored(sx, sy, "◀■", gl.color)
			} else {
				dst.DrawTextColored(sx, sy, gl.text, gl.color)
			}
		}
	})

	// Draw HUD
	hud := fmt.Sprintf(" Diamonds: %d  Score: %d  Steps: %d/%d ",
		g.diamonds, int(g.episode.Total), g.episode.Steps, g.episode.Timeout)
	dst.DrawTextColored(1, 0, hud, core.ColorBrightWhite)
	if g.diamonds == 0 {
		dst.DrawTextColored(1, 1, " Exit open ", core.ColorBrightYellow)
	}

	switch {
	case g.paused:
		dst.DrawOverlay("PAUSED", "Press P to resume")
	case g.episode.LevelComplete:
		dst.DrawOverlay("LEVEL COMPLETE", fmt.Sprintf("Score: %d  |  Press R to restart", int(g.episode.Total)))
	case g.episode.Done:
		dst.DrawOverlay(endTitle(g.episode.End), fmt.Sprintf("Score: %d  |  Press R to restart", int(g.episode.Total)))
	}
}

func endTitle(r engine.EndReason) string {
	switch r {
	case engine.EndCrushed:
		return "CRUSHED"
	case engine.EndTimeout:
		return "OUT OF TIME"
	default:
		return "GAME OVER"
	}
}

// Board renders the whole board as text, one rune per cell, top row first.
func (g *Game) Board() string {
	if g.grid == nil {
		return ""
	}
	ax, ay := g.agent.Cell()
	ex, ey := g.exit.Cell()
	b := g.grid.Clone()
	if b.GetXY(ex, ey) == engine.Space {
		b.SetXY(ex, ey, Exit)
	}
	b.SetXY(ax, ay, engine.Player)
	return b.String(boardRune)
}
