package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/procgen-arcade/internal/core"
)

// palette holds the ANSI 256 code for each core.Color. An empty code
// leaves the terminal's foreground untouched.
var palette = [...]string{
	core.ColorDefault:       "",
	core.ColorRed:           "1",
	core.ColorGreen:         "2",
	core.ColorYellow:        "3",
	core.ColorBlue:          "4",
	core.ColorMagenta:       "5",
	core.ColorCyan:          "6",
	core.ColorWhite:         "7",
	core.ColorBrightRed:     "9",
	core.ColorBrightGreen:   "10",
	core.ColorBrightYellow:  "11",
	core.ColorBrightBlue:    "12",
	core.ColorBrightMagenta: "13",
	core.ColorBrightCyan:    "14",
	core.ColorBrightWhite:   "15",
	core.ColorOrange:        "208",
	core.ColorGray:          "245",
	core.ColorBrown:         "94",
	core.ColorDarkGray:      "238",
	core.ColorNavy:          "18",
}

var styles = func() []lipgloss.Style {
	out := make([]lipgloss.Style, len(palette))
	for i, code := range palette {
		out[i] = lipgloss.NewStyle()
		if code != "" {
			out[i] = out[i].Foreground(lipgloss.Color(code))
		}
	}
	return out
}()

func styleFor(c core.Color) lipgloss.Style {
	if int(c) >= len(styles) {
		return styles[core.ColorDefault]
	}
	return styles[c]
}

// RenderScreen converts a Screen buffer to a styled string. Cells of one
// colour on the same row are emitted as a single styled run.
func RenderScreen(s *core.Screen) string {
	w, h := s.Width(), s.Height()

	var sb, run strings.Builder
	sb.Grow(w*h*2 + h)

	for y := range h {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x := 0; x < w; {
			color := s.GetCell(x, y).Color
			run.Reset()
			for ; x < w; x++ {
				cell := s.GetCell(x, y)
				if cell.Color != color {
					break
				}
				run.WriteRune(cell.Rune)
			}
			sb.WriteString(styleFor(color).Render(run.String()))
		}
	}
	return sb.String()
}
