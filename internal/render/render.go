// Package render turns generated levels into ASCII maps for the CLI
// and the map server.
package render

import (
	"strings"

	"github.com/hollowmoor/hollowmoor/server/internal/grid"
)

// Symbol returns the map glyph for a terrain feature
func Symbol(f grid.Feature) rune {
	switch f {
	case grid.FeatRock:
		return ' '
	case grid.FeatPermWall:
		return '#'
	case grid.FeatWall:
		return '#'
	case grid.FeatFloor:
		return '.'
	case grid.FeatDoor:
		return '+'
	case grid.FeatStairsUp:
		return '<'
	case grid.FeatStairsDown:
		return '>'
	case grid.FeatRubble:
		return ':'
	case grid.FeatPillar:
		return 'o'
	case grid.FeatWater:
		return '~'
	case grid.FeatLava:
		return '&'
	case grid.FeatAcid:
		return '%'
	case grid.FeatGrass:
		return ','
	case grid.FeatTrees:
		return 'T'
	case grid.FeatHills:
		return 'n'
	case grid.FeatMountain:
		return '^'
	case grid.FeatSand:
		return '-'
	case grid.FeatSwamp:
		return '"'
	case grid.FeatSnow:
		return '*'
	case grid.FeatField:
		return '='
	case grid.FeatTown:
		return 'O'
	case grid.FeatEntrance:
		return '>'
	case grid.FeatRoad:
		return '3'
	case grid.FeatTrack:
		return '\''
	default:
		return '?'
	}
}

// Level renders the whole grid, one text row per tile row
func Level(l *grid.Level) string {
	var output strings.Builder
	output.Grow((l.Width + 1) * l.Height)

	for y := 0; y < l.Height; y++ {
		for x := 0; x < l.Width; x++ {
			feat, _ := l.FeatureAt(x, y)
			output.WriteRune(Symbol(feat))
		}
		output.WriteString("\n")
	}
	return output.String()
}

// Legend lists the glyphs a rendered map can contain
func Legend() string {
	return `
Legend:
  [#] Wall           [.] Floor          [+] Door
  [<] Stairs up      [>] Stairs down / dungeon entrance
  [:] Rubble         [o] Pillar
  [~] Water          [&] Lava           [%] Acid
  [,] Grass          [T] Trees          [n] Hills
  [^] Mountain       [-] Sand           ["] Swamp
  [*] Snow           [=] Field          [O] Town
  [3] Road           ['] Track
`
}
