package dungeon

// Tuning holds the empirically tuned generation constants. They are
// configuration, not hard-coded law: callers may load overrides from
// YAML and pass them in.
type Tuning struct {
	// Room sizing and placement
	MinRoomSize     int `yaml:"min_room_size"`
	MaxRoomSize     int `yaml:"max_room_size"`
	RoomAreaDivisor int `yaml:"room_area_divisor"` // Target rooms = area / divisor
	MaxRooms        int `yaml:"max_rooms"`
	PlaceRetries    int `yaml:"place_retries"`  // Attempts per room before degrading
	OverlapMargin   int `yaml:"overlap_margin"` // Bounding boxes grown by this during overlap checks

	// Room character
	LitChanceBase    int `yaml:"lit_chance_base"`    // Percent at depth 1
	LitChanceFalloff int `yaml:"lit_chance_falloff"` // Percent lost per depth level
	CrossChancePer   int `yaml:"cross_chance_per"`   // Percent per depth, capped
	CrossChanceCap   int `yaml:"cross_chance_cap"`

	// Corridors
	CorridorBias int `yaml:"corridor_bias"` // Percent chance a walk step heads toward the target
	DoorChance   int `yaml:"door_chance"`   // Percent chance of a door where a corridor meets a room

	// Special features
	PillarMinRoomArea int `yaml:"pillar_min_room_area"`
	PillarChance      int `yaml:"pillar_chance"`   // Percent per eligible room
	RubbleChance      int `yaml:"rubble_chance"`   // Percent per corridor tile
	PoolChancePer     int `yaml:"pool_chance_per"` // Percent per depth, capped
	PoolChanceCap     int `yaml:"pool_chance_cap"`
	PoolMaxRadius     int `yaml:"pool_max_radius"`
	LavaDepth         int `yaml:"lava_depth"` // Pools may be lava at this depth and below

	// Vaults
	VaultDepth  int `yaml:"vault_depth"`  // Vaults appear at this depth and below
	VaultChance int `yaml:"vault_chance"` // Percent per generated level
	VaultRating int `yaml:"vault_rating"` // Rating contribution per vault
}

// DefaultTuning returns the standard generation constants
func DefaultTuning() *Tuning {
	return &Tuning{
		MinRoomSize:     4,
		MaxRoomSize:     11,
		RoomAreaDivisor: 180,
		MaxRooms:        24,
		PlaceRetries:    25,
		OverlapMargin:   1,

		LitChanceBase:    90,
		LitChanceFalloff: 3,
		CrossChancePer:   2,
		CrossChanceCap:   30,

		CorridorBias: 70,
		DoorChance:   40,

		PillarMinRoomArea: 48,
		PillarChance:      50,
		RubbleChance:      2,
		PoolChancePer:     6,
		PoolChanceCap:     60,
		PoolMaxRadius:     3,
		LavaDepth:         12,

		VaultDepth:  8,
		VaultChance: 35,
		VaultRating: 10,
	}
}
