package bigfish

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/procgen-arcade/internal/core"
	"github.com/vovakirdan/procgen-arcade/internal/engine"
)

const hudRows = 2

var assets = map[engine.Tag][]string{
	engine.Player: {"misc_assets/fishTile_072.png"},
	Fish: {
		"misc_assets/fishTile_074.png",
		"misc_assets/fishTile_078.png",
		"misc_assets/fishTile_080.png",
	},
}

// Assets returns the image names for a tag; fish have one per theme.
func (g *Game) Assets(t engine.Tag) []string {
	names := assets[t]
	out := make([]string, len(names))
	copy(out, names)
	return out
}

var themeColors = []core.Color{core.ColorOrange, core.ColorMagenta, core.ColorYellow}

// covers reports whether an entity should be drawn in world cell (wx, wy):
// the cell holds its centre or its box covers the cell centre.
func covers(e *engine.Entity, wx, wy int) bool {
	cx, cy := e.Cell()
	if cx == wx && cy == wy {
		return true
	}
	return math.Abs(float64(wx)+.5-e.X) < e.RX && math.Abs(float64(wy)+.5-e.Y) < e.RY
}

// Render draws the water, two characters per world unit. Fish that would
// eat the agent are drawn in red.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.resetErr != nil {
		dst.DrawOverlay("LEVEL FAILED", g.resetErr.Error())
		return
	}
	if !g.ready {
		return
	}

	w, h := int(g.cfg.World.Width), int(g.cfg.World.Height)
	ax, ay := g.agent.Cell()
	vp := engine.Fit(dst.Width(), dst.Height(), hudRows, 2, w, h, ax, ay)
	vp.Each(func(wx, wy int) {
		sx, sy, ok := vp.ToScreen(wx, wy)
		if !ok {
			return
		}
		if wx < 0 || wx >= w || wy < 0 || wy >= h {
			dst.DrawTextColored(sx, sy, "▓▓", core.ColorDarkGray)
			return
		}
		text, color := "~ ", core.ColorNavy
		for i := range g.fish {
			f := &g.fish[i]
			if !covers(f, wx, wy) {
				continue
			}
			text, color = "▒▒", themeColors[f.Theme%len(themeColors)]
			if f.RX > g.agent.RX {
				color = core.ColorBrightRed
			}
		}
		if covers(&g.agent, wx, wy) {
			text, color = "██", core.ColorBrightGreen
		}
		dst.DrawTextColored(sx, sy, text, color)
	})

	// Draw HUD
	hud := fmt.Sprintf(" Eaten: %d/%d  Size: %.2f  Score: %d  Steps: %d/%d ",
		g.fishEaten, g.cfg.Quota, g.agent.RX, int(g.episode.Total), g.episode.Steps, g.episode.Timeout)
	dst.DrawTextColored(1, 0, hud, core.ColorBrightWhite)

	switch {
	case g.paused:
		dst.DrawOverlay("PAUSED", "Press P to resume")
	case g.episode.LevelComplete:
		dst.DrawOverlay("BIGGEST FISH", fmt.Sprintf("Score: %d  |  Press R to restart", int(g.episode.Total)))
	case g.episode.Done:
		title := "GAME OVER"
		if g.episode.End == engine.EndEaten {
			title = "EATEN"
		}
		dst.DrawOverlay(title, fmt.Sprintf("Score: %d  |  Press R to restart", int(g.episode.Total)))
	}
}

// Board renders the water as text, one rune per world unit, top row first.
// 'A' is the agent, 'f' a fish it can eat and 'F' one that would eat it.
func (g *Game) Board() string {
	if !g.ready {
		return ""
	}
	w, h := int(g.cfg.World.Width), int(g.cfg.World.Height)
	var b strings.Builder
	for wy := h - 1; wy >= 0; wy-- {
		for wx := 0; wx < w; wx++ {
			r := ' '
			for i := range g.fish {
				if covers(&g.fish[i], wx, wy) {
					r = 'f'
					if g.fish[i].RX > g.agent.RX {
						r = 'F'
					}
				}
			}
			if covers(&g.agent, wx, wy) {
				r = 'A'
			}
			b.WriteRune(r)
		}
		if wy > 0 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
