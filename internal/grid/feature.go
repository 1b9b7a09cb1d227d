// Package grid provides the tile grid that the level generators write into.
package grid

// Feature represents the terrain feature occupying a tile
type Feature int

const (
	FeatRock      Feature = iota // Solid rock (diggable)
	FeatPermWall                 // Permanent wall - never walkable, never diggable
	FeatWall                     // Plain wall
	FeatFloor                    // Open floor
	FeatDoor                     // Door in a corridor or room boundary
	FeatStairsUp                 // Staircase to the level above
	FeatStairsDown               // Staircase to the level below
	FeatRubble                   // Passable rubble
	FeatPillar                   // Free-standing pillar
	FeatWater                    // Shallow or deep water
	FeatLava                     // Lava pool
	FeatAcid                     // Acid pool
	FeatGrass                    // Wilderness: open grassland
	FeatTrees                    // Wilderness: forest
	FeatHills                    // Wilderness: hills
	FeatMountain                 // Wilderness: impassable mountain
	FeatSand                     // Wilderness: desert sand
	FeatSwamp                    // Wilderness: swamp
	FeatSnow                     // Wilderness: snowfield
	FeatField                    // Wilderness: tilled farmland
	FeatTown                     // Wilderness: town site
	FeatEntrance                 // Wilderness: dungeon entrance
	FeatRoad                     // Wilderness: paved road
	FeatTrack                    // Wilderness: dirt track
)

// String returns the string representation of a Feature
func (f Feature) String() string {
	switch f {
	case FeatRock:
		return "rock"
	case FeatPermWall:
		return "perm_wall"
	case FeatWall:
		return "wall"
	case FeatFloor:
		return "floor"
	case FeatDoor:
		return "door"
	case FeatStairsUp:
		return "stairs_up"
	case FeatStairsDown:
		return "stairs_down"
	case FeatRubble:
		return "rubble"
	case FeatPillar:
		return "pillar"
	case FeatWater:
		return "water"
	case FeatLava:
		return "lava"
	case FeatAcid:
		return "acid"
	case FeatGrass:
		return "grass"
	case FeatTrees:
		return "trees"
	case FeatHills:
		return "hills"
	case FeatMountain:
		return "mountain"
	case FeatSand:
		return "sand"
	case FeatSwamp:
		return "swamp"
	case FeatSnow:
		return "snow"
	case FeatField:
		return "field"
	case FeatTown:
		return "town"
	case FeatEntrance:
		return "entrance"
	case FeatRoad:
		return "road"
	case FeatTrack:
		return "track"
	default:
		return "unknown"
	}
}

// IsPassable returns true if the feature can be walked on
func (f Feature) IsPassable() bool {
	switch f {
	case FeatFloor, FeatDoor, FeatStairsUp, FeatStairsDown, FeatRubble,
		FeatGrass, FeatTrees, FeatHills, FeatSand, FeatSwamp, FeatSnow,
		FeatField, FeatTown, FeatEntrance, FeatRoad, FeatTrack:
		return true
	}
	return false
}

// IsStairs returns true for either staircase feature
func (f Feature) IsStairs() bool {
	return f == FeatStairsUp || f == FeatStairsDown
}
