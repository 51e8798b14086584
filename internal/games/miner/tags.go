package miner

import (
	"github.com/vovakirdan/procgen-arcade/internal/core"
	"github.com/vovakirdan/procgen-arcade/internal/engine"
)

// Cell tags. A falling object carries its Moving tag for one tick after it
// drops into free space.
const (
	Boulder       engine.Tag = 1
	Diamond       engine.Tag = 2
	MovingBoulder engine.Tag = 3
	MovingDiamond engine.Tag = 4
	Exit          engine.Tag = 6
	Dirt          engine.Tag = 9
	OutOfBounds   engine.Tag = 10
)

// IsRound reports whether t falls and rolls.
func IsRound(t engine.Tag) bool {
	return t == Boulder || t == MovingBoulder || t == Diamond || t == MovingDiamond
}

// IsMoving reports whether t is the falling form of a round object.
func IsMoving(t engine.Tag) bool {
	return t == MovingBoulder || t == MovingDiamond
}

// MovingOf returns the falling form of t, or t itself.
func MovingOf(t engine.Tag) engine.Tag {
	switch t {
	case Boulder:
		return MovingBoulder
	case Diamond:
		return MovingDiamond
	}
	return t
}

// StationaryOf returns the resting form of t, or t itself.
func StationaryOf(t engine.Tag) engine.Tag {
	switch t {
	case MovingBoulder:
		return Boulder
	case MovingDiamond:
		return Diamond
	}
	return t
}

// blocksPlayer reports whether the agent may not enter a cell holding t.
func blocksPlayer(t engine.Tag) bool {
	return t == Boulder || t == MovingBoulder || t == OutOfBounds
}

var assets = map[engine.Tag][]string{
	engine.Player: {"misc_assets/robot_greenDrive1.png"},
	Boulder:       {"misc_assets/elementStone007.png"},
	Diamond:       {"misc_assets/gemBlue.png"},
	Exit:          {"misc_assets/window.png"},
	Dirt:          {"misc_assets/dirt.png"},
	OutOfBounds:   {"misc_assets/tile_bricksGrey.png"},
}

// Assets returns the image names for a tag. Falling objects use the
// images of their resting form.
func (g *Game) Assets(t engine.Tag) []string {
	names := assets[StationaryOf(t)]
	out := make([]string, len(names))
	copy(out, names)
	return out
}

// glyph is how a tag is drawn in the terminal: two characters per cell.
type glyph struct {
	text  string
	color core.Color
}

var glyphs = map[engine.Tag]glyph{
	engine.Space:  {"  ", core.ColorDefault},
	Dirt:          {"░░", core.ColorBrown},
	Boulder:       {"()", core.ColorGray},
	MovingBoulder: {"()", core.ColorWhite},
	Diamond:       {"<>", core.ColorBrightCyan},
	MovingDiamond: {"<>", core.ColorCyan},
	Exit:          {"[]", core.ColorBrightYellow},
	OutOfBounds:   {"▓▓", core.ColorDarkGray},
	engine.Player: {"■▶", core.ColorBrightGreen},
}

// boardRune is the single-rune form used by Board and grid dumps in tests.
func boardRune(t engine.Tag) rune {
	switch t {
	case engine.Space:
		return ' '
	case Dirt:
		return '.'
	case Boulder, MovingBoulder:
		return 'o'
	case Diamond, MovingDiamond:
		return '*'
	case Exit:
		return 'E'
	case engine.Player:
		return 'A'
	default:
		return '#'
	}
}
