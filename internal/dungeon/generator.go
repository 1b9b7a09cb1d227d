package dungeon

import (
	"fmt"

	"github.com/hollowmoor/hollowmoor/server/internal/grid"
	"github.com/hollowmoor/hollowmoor/server/internal/logger"
	"github.com/hollowmoor/hollowmoor/server/internal/rng"
)

// Generator produces dungeon levels. It holds no state between calls
// beyond its tuning; every Generate call owns its stream.
type Generator struct {
	tuning *Tuning
}

// NewGenerator creates a generator with the given tuning constants.
// A nil tuning selects the defaults.
func NewGenerator(tuning *Tuning) *Generator {
	if tuning == nil {
		tuning = DefaultTuning()
	}
	return &Generator{tuning: tuning}
}

// Generate builds a complete dungeon level. Deterministic for a given
// config and stream seed.
func (g *Generator) Generate(cfg Config, stream *rng.Stream) (*DungeonLevel, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	level, err := grid.NewLevel(cfg.Width, cfg.Height, grid.FeatRock)
	if err != nil {
		return nil, fmt.Errorf("dungeon: %w", err)
	}

	d := &DungeonLevel{
		Width:  cfg.Width,
		Height: cfg.Height,
		Depth:  cfg.Depth,
		Grid:   level,
	}

	g.stampBorder(d)

	// A level too small for even one minimal room degrades to a single
	// open chamber inside the border. Never an error.
	if cfg.Width < g.tuning.MinRoomSize+2 || cfg.Height < g.tuning.MinRoomSize+2 {
		g.carveDegenerate(d)
		g.placeStairs(d, stream)
		d.Rating = cfg.Depth
		return d, nil
	}

	g.placeRooms(d, stream)
	g.connectRooms(d, stream)
	g.scatterFeatures(d, stream)
	g.placeStairs(d, stream)
	g.computeRating(d)

	logger.Debug("dungeon generated",
		"depth", cfg.Depth,
		"rooms", len(d.Rooms),
		"rating", d.Rating)

	return d, nil
}

// stampBorder writes an unbroken permanent wall along all four edges
func (g *Generator) stampBorder(d *DungeonLevel) {
	for x := 0; x < d.Width; x++ {
		d.Grid.SetFeature(x, 0, grid.FeatPermWall)
		d.Grid.SetFeature(x, d.Height-1, grid.FeatPermWall)
	}
	for y := 0; y < d.Height; y++ {
		d.Grid.SetFeature(0, y, grid.FeatPermWall)
		d.Grid.SetFeature(d.Width-1, y, grid.FeatPermWall)
	}
}

// carveDegenerate opens the whole interior as one room
func (g *Generator) carveDegenerate(d *DungeonLevel) {
	room := Room{X: 1, Y: 1, Width: d.Width - 2, Height: d.Height - 2, Type: RoomPlain}
	g.carveRoom(d, room, false)
	d.Rooms = append(d.Rooms, room)
}

// placeRooms attempts a target number of rooms scaled by level area.
// Each room gets a bounded number of placement tries; exhausting them
// reduces the room count rather than looping forever.
func (g *Generator) placeRooms(d *DungeonLevel, stream *rng.Stream) {
	target := d.Width * d.Height / g.tuning.RoomAreaDivisor
	if target < 1 {
		target = 1
	}
	if target > g.tuning.MaxRooms {
		target = g.tuning.MaxRooms
	}

	for i := 0; i < target; i++ {
		room, ok := g.tryPlaceRoom(d, stream)
		if !ok {
			logger.Warning("room placement exhausted",
				"placed", len(d.Rooms),
				"target", target,
				"depth", d.Depth)
			break
		}

		lit := g.rollLit(d.Depth, stream)
		if lit && room.Type == RoomPlain {
			room.Type = RoomLit
		}

		g.carveRoom(d, room, lit)
		d.Rooms = append(d.Rooms, room)
	}
}

// tryPlaceRoom picks random rectangles until one fits or retries run out
func (g *Generator) tryPlaceRoom(d *DungeonLevel, stream *rng.Stream) (Room, bool) {
	for try := 0; try < g.tuning.PlaceRetries; try++ {
		w := stream.Range(g.tuning.MinRoomSize, g.tuning.MaxRoomSize)
		h := stream.Range(g.tuning.MinRoomSize, g.tuning.MaxRoomSize)
		if w > d.Width-2 {
			w = d.Width - 2
		}
		if h > d.Height-2 {
			h = d.Height - 2
		}

		room := Room{
			X:      stream.Range(1, d.Width-1-w),
			Y:      stream.Range(1, d.Height-1-h),
			Width:  w,
			Height: h,
			Type:   RoomPlain,
		}

		// Deeper levels grow a taste for irregular shapes
		crossChance := d.Depth * g.tuning.CrossChancePer
		if crossChance > g.tuning.CrossChanceCap {
			crossChance = g.tuning.CrossChanceCap
		}
		if w >= 6 && h >= 6 && stream.Percent(crossChance) {
			room.Type = RoomCross
		}

		if !g.roomFits(d, room) {
			continue
		}
		return room, true
	}
	return Room{}, false
}

// roomFits rejects placements whose grown bounding box intersects an
// existing room
func (g *Generator) roomFits(d *DungeonLevel, room Room) bool {
	for _, other := range d.Rooms {
		if room.overlaps(other, g.tuning.OverlapMargin) {
			return false
		}
	}
	return true
}

// rollLit decides permanent lighting; the chance falls with depth
func (g *Generator) rollLit(depth int, stream *rng.Stream) bool {
	chance := g.tuning.LitChanceBase - depth*g.tuning.LitChanceFalloff
	return stream.Percent(chance)
}

// carveRoom writes a room's interior to floor and tags membership flags
func (g *Generator) carveRoom(d *DungeonLevel, room Room, lit bool) {
	flags := grid.FlagRoom
	if lit {
		flags |= grid.FlagGlow
	}

	for y := room.Y; y < room.Y+room.Height; y++ {
		for x := room.X; x < room.X+room.Width; x++ {
			if room.Type == RoomCross && !inCross(room, x, y) {
				continue
			}
			d.Grid.SetFeature(x, y, grid.FeatFloor)
			d.Grid.AddFlags(x, y, flags)
		}
	}
}

// inCross shapes a room as two overlapping bars, leaving the corners rock
func inCross(room Room, x, y int) bool {
	thirdW := room.Width / 3
	thirdH := room.Height / 3
	inVBar := x >= room.X+thirdW && x < room.X+room.Width-thirdW
	inHBar := y >= room.Y+thirdH && y < room.Y+room.Height-thirdH
	return inVBar || inHBar
}
