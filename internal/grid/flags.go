package grid

import "strings"

// Flag is a bit set of per-tile info attributes. Flags are independent
// bits and may combine freely with each other and with any Feature.
type Flag uint16

const (
	FlagRoom  Flag = 1 << iota // Tile belongs to a room
	FlagGlow                   // Tile is permanently lit
	FlagVault                  // Tile belongs to a vault / special region
	FlagWater                  // Wilderness block carries water
	FlagRoad                   // Wilderness block carries a road
	FlagTrack                  // Wilderness block carries a dirt track
	FlagLava                   // Wilderness block carries lava
	FlagAcid                   // Wilderness block carries acid
)

// Has returns true if all bits in mask are set
func (f Flag) Has(mask Flag) bool {
	return f&mask == mask
}

// String returns a pipe-separated list of set flag names
func (f Flag) String() string {
	if f == 0 {
		return "none"
	}
	names := []struct {
		bit  Flag
		name string
	}{
		{FlagRoom, "room"},
		{FlagGlow, "glow"},
		{FlagVault, "vault"},
		{FlagWater, "water"},
		{FlagRoad, "road"},
		{FlagTrack, "track"},
		{FlagLava, "lava"},
		{FlagAcid, "acid"},
	}
	var parts []string
	for _, n := range names {
		if f&n.bit != 0 {
			parts = append(parts, n.name)
		}
	}
	return strings.Join(parts, "|")
}
