// Package wild generates continuous-terrain wilderness maps. Three
// plasma fields (height, population, law) feed a binary decision tree
// that picks a terrain routine per block; towns, dungeons, roads,
// rivers and lakes are layered on top.
package wild

import "github.com/hollowmoor/hollowmoor/server/internal/grid"

// PlaceKind tags a wilderness site
type PlaceKind int

const (
	PlaceTown PlaceKind = iota
	PlaceDungeon
	PlaceQuest
)

// String returns the string representation of a PlaceKind
func (k PlaceKind) String() string {
	switch k {
	case PlaceTown:
		return "town"
	case PlaceDungeon:
		return "dungeon"
	case PlaceQuest:
		return "quest"
	default:
		return "unknown"
	}
}

// Place is a town, dungeon or quest site. The seed lets the site's
// interior be regenerated deterministically later, independent of the
// overworld stream.
type Place struct {
	Key  string    `yaml:"key"`
	Kind PlaceKind `yaml:"kind"`
	X    int       `yaml:"x"`
	Y    int       `yaml:"y"`
	Size int       `yaml:"size"`
	Seed int64     `yaml:"seed"`

	// Population for towns, monster-type hint for dungeons
	Population  int `yaml:"population,omitempty"`
	MonsterHint int `yaml:"monster_hint,omitempty"`
}

// Block is the per-block generation output
type Block struct {
	RoutineID int
	PlaceIdx  int // 1-based index into the place list, 0 = none
	Flags     grid.Flag

	// Monster generation parameters for this block
	MonsterDensity   int
	MonsterFrequency int
}

// Map is the aggregate wilderness output: one tile and one Block per
// wilderness block. Owned by the caller once Generate returns.
type Map struct {
	Width  int // In blocks
	Height int
	Grid   *grid.Level
	Blocks [][]Block
	Places []Place

	// Per-block scalar magnitudes, kept for river carving and tests
	HeightMap     [][]int
	PopulationMap [][]int
	LawMap        [][]int
}

// BlockAt returns the block record at (x, y), or nil out of bounds
func (m *Map) BlockAt(x, y int) *Block {
	if x < 0 || x >= m.Width || y < 0 || y >= m.Height {
		return nil
	}
	return &m.Blocks[y][x]
}
