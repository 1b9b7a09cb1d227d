package dungeon

import (
	"github.com/hollowmoor/hollowmoor/server/internal/grid"
	"github.com/hollowmoor/hollowmoor/server/internal/logger"
	"github.com/hollowmoor/hollowmoor/server/internal/rng"
)

// scatterFeatures adds pillars, vaults, rubble and liquid pools with
// depth-scaled probabilities. Every pass leaves room centers open and
// never blocks a sole walkway, so any walk that existed after corridor
// carving still exists afterward.
func (g *Generator) scatterFeatures(d *DungeonLevel, stream *rng.Stream) {
	centers := roomCenters(d)
	g.placePillars(d, stream, centers)
	g.placeVault(d, stream)
	g.placeRubble(d, stream)
	g.placePools(d, stream, centers)
}

// placePillars fills large rooms with a regular pillar lattice
func (g *Generator) placePillars(d *DungeonLevel, stream *rng.Stream, centers map[Point]bool) {
	for i, room := range d.Rooms {
		if room.Type != RoomPlain && room.Type != RoomLit {
			continue
		}
		if room.Width*room.Height < g.tuning.PillarMinRoomArea {
			continue
		}
		if !stream.Percent(g.tuning.PillarChance) {
			continue
		}

		for y := room.Y + 1; y < room.Y+room.Height-1; y += 2 {
			for x := room.X + 1; x < room.X+room.Width-1; x += 2 {
				if centers[Point{x, y}] || severs(d, x, y) {
					continue
				}
				d.Grid.SetFeature(x, y, grid.FeatPillar)
			}
		}
		d.Rooms[i].Type = RoomPillared
	}
}

// placeRubble scatters rubble on corridor floor only; room interiors
// stay clear
func (g *Generator) placeRubble(d *DungeonLevel, stream *rng.Stream) {
	for y := 1; y < d.Height-1; y++ {
		for x := 1; x < d.Width-1; x++ {
			feat, _ := d.Grid.FeatureAt(x, y)
			flags, _ := d.Grid.FlagsAt(x, y)
			if feat != grid.FeatFloor || flags.Has(grid.FlagRoom) {
				continue
			}
			if !stream.Percent(g.tuning.RubbleChance) {
				continue
			}
			if severs(d, x, y) {
				continue
			}
			d.Grid.SetFeature(x, y, grid.FeatRubble)
		}
	}
}

// placePools stamps small water or lava pools in open areas. Lava only
// shows up on deep levels. Vault interiors keep their floor.
func (g *Generator) placePools(d *DungeonLevel, stream *rng.Stream, centers map[Point]bool) {
	chance := d.Depth * g.tuning.PoolChancePer
	if chance > g.tuning.PoolChanceCap {
		chance = g.tuning.PoolChanceCap
	}
	if !stream.Percent(chance) || len(d.Rooms) == 0 {
		return
	}

	var candidates []Room
	for _, room := range d.Rooms {
		if room.Type != RoomVault {
			candidates = append(candidates, room)
		}
	}
	if len(candidates) == 0 {
		return
	}

	room := candidates[stream.IntN(len(candidates))]
	center := room.Center()
	radius := stream.Range(1, g.tuning.PoolMaxRadius)

	liquid := grid.FeatWater
	if d.Depth >= g.tuning.LavaDepth && stream.OneIn(2) {
		liquid = grid.FeatLava
	}

	for y := center.Y - radius; y <= center.Y+radius; y++ {
		for x := center.X - radius; x <= center.X+radius; x++ {
			dx, dy := x-center.X, y-center.Y
			if dx*dx+dy*dy > radius*radius {
				continue
			}
			feat, err := d.Grid.FeatureAt(x, y)
			if err != nil || feat != grid.FeatFloor {
				continue
			}
			if centers[Point{x, y}] || severs(d, x, y) {
				continue
			}
			d.Grid.SetFeature(x, y, liquid)
		}
	}
}

// placeVault converts one room into a vault on deep levels: flagged
// icky, denser interior, higher rating. Monster and treasure placement
// happen elsewhere; the vault only contributes its flag and rating here.
func (g *Generator) placeVault(d *DungeonLevel, stream *rng.Stream) {
	if d.Depth < g.tuning.VaultDepth || len(d.Rooms) == 0 {
		return
	}
	if !stream.Percent(g.tuning.VaultChance) {
		return
	}

	// Prefer plain rectangular rooms for vault conversion
	idx := -1
	for i, room := range d.Rooms {
		if room.Type == RoomPlain || room.Type == RoomLit {
			idx = i
			break
		}
	}
	if idx == -1 {
		idx = stream.IntN(len(d.Rooms))
	}

	room := d.Rooms[idx]
	for y := room.Y; y < room.Y+room.Height; y++ {
		for x := room.X; x < room.X+room.Width; x++ {
			d.Grid.AddFlags(x, y, grid.FlagVault)
		}
	}

	// An inner wall ring with a single gap makes the vault defensible.
	// Only fully carved rectangles get the ring; the floor margin around
	// it keeps through-traffic moving and the gap keeps the interior
	// reachable. Ring walls are no longer open room floor.
	if (room.Type == RoomPlain || room.Type == RoomLit) && room.Width >= 5 && room.Height >= 5 {
		for x := room.X + 1; x < room.X+room.Width-1; x++ {
			d.Grid.SetFeature(x, room.Y+1, grid.FeatWall)
			d.Grid.ClearFlags(x, room.Y+1, grid.FlagRoom)
			d.Grid.SetFeature(x, room.Y+room.Height-2, grid.FeatWall)
			d.Grid.ClearFlags(x, room.Y+room.Height-2, grid.FlagRoom)
		}
		for y := room.Y + 1; y < room.Y+room.Height-1; y++ {
			d.Grid.SetFeature(room.X+1, y, grid.FeatWall)
			d.Grid.ClearFlags(room.X+1, y, grid.FlagRoom)
			d.Grid.SetFeature(room.X+room.Width-2, y, grid.FeatWall)
			d.Grid.ClearFlags(room.X+room.Width-2, y, grid.FlagRoom)
		}
		gapX := stream.Range(room.X+2, room.X+room.Width-3)
		d.Grid.SetFeature(gapX, room.Y+1, grid.FeatDoor)
	}

	d.Rooms[idx].Type = RoomVault
	logger.Debug("vault placed", "depth", d.Depth, "room", idx)
}

// placeStairs puts at least one down staircase on every level and at
// least one up staircase on every level below the minimum depth. Stairs
// only land on unoccupied floor tiles, one stair per cell.
func (g *Generator) placeStairs(d *DungeonLevel, stream *rng.Stream) {
	centers := roomCenters(d)
	downCount := stream.Range(1, 2)
	upCount := 0
	if d.Depth > MinDepth {
		upCount = stream.Range(1, 2)
	}

	for i := 0; i < downCount; i++ {
		if p, ok := g.findStairSpot(d, stream, centers); ok {
			d.Grid.SetFeature(p.X, p.Y, grid.FeatStairsDown)
			d.DownStairs = append(d.DownStairs, p)
		}
	}
	for i := 0; i < upCount; i++ {
		if p, ok := g.findStairSpot(d, stream, centers); ok {
			d.Grid.SetFeature(p.X, p.Y, grid.FeatStairsUp)
			d.UpStairs = append(d.UpStairs, p)
		}
	}
}

// findStairSpot picks a random stair-worthy floor tile with a bounded
// number of random probes, then falls back to a shuffled scan of every
// candidate so the fallback does not favor the top-left corner
func (g *Generator) findStairSpot(d *DungeonLevel, stream *rng.Stream, centers map[Point]bool) (Point, bool) {
	for try := 0; try < 100; try++ {
		x := stream.Range(1, d.Width-2)
		y := stream.Range(1, d.Height-2)
		if g.stairFits(d, x, y, centers) {
			return Point{x, y}, true
		}
	}

	var spots []Point
	for y := 1; y < d.Height-1; y++ {
		for x := 1; x < d.Width-1; x++ {
			if g.stairFits(d, x, y, centers) {
				spots = append(spots, Point{x, y})
			}
		}
	}
	if len(spots) == 0 {
		return Point{}, false
	}
	stream.Shuffle(len(spots), func(i, j int) { spots[i], spots[j] = spots[j], spots[i] })
	return spots[0], true
}

// stairFits accepts an unoccupied floor tile that is neither a room
// center nor the sole walkway between its neighbors
func (g *Generator) stairFits(d *DungeonLevel, x, y int, centers map[Point]bool) bool {
	feat, _ := d.Grid.FeatureAt(x, y)
	if feat != grid.FeatFloor {
		return false
	}
	return !centers[Point{x, y}] && !severs(d, x, y)
}

var stepDirs = [4][2]int{{0, -1}, {0, 1}, {-1, 0}, {1, 0}}

// roomCenters collects every room's center tile. Centers stay plain
// floor through all feature passes so each room keeps a walkable anchor.
func roomCenters(d *DungeonLevel) map[Point]bool {
	centers := make(map[Point]bool, len(d.Rooms))
	for _, room := range d.Rooms {
		centers[room.Center()] = true
	}
	return centers
}

// isWalkway reports whether (x, y) is open floor or a door
func isWalkway(d *DungeonLevel, x, y int) bool {
	feat, err := d.Grid.FeatureAt(x, y)
	return err == nil && (feat == grid.FeatFloor || feat == grid.FeatDoor)
}

// severs reports whether blocking (x, y) would cut the walkway between
// any of its open neighbors. Scatter passes skip such tiles.
func severs(d *DungeonLevel, x, y int) bool {
	var nbrs []Point
	for _, delta := range stepDirs {
		if isWalkway(d, x+delta[0], y+delta[1]) {
			nbrs = append(nbrs, Point{x + delta[0], y + delta[1]})
		}
	}
	if len(nbrs) < 2 {
		return false
	}

	// Flood from one neighbor with the candidate treated as blocked; the
	// rest must still be reachable
	visited := make([]bool, d.Width*d.Height)
	visited[y*d.Width+x] = true
	visited[nbrs[0].Y*d.Width+nbrs[0].X] = true
	queue := []Point{nbrs[0]}
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		for _, delta := range stepDirs {
			nx, ny := p.X+delta[0], p.Y+delta[1]
			if !isWalkway(d, nx, ny) || visited[ny*d.Width+nx] {
				continue
			}
			visited[ny*d.Width+nx] = true
			queue = append(queue, Point{nx, ny})
		}
	}

	for _, n := range nbrs[1:] {
		if !visited[n.Y*d.Width+n.X] {
			return true
		}
	}
	return false
}

// computeRating accumulates the danger score: monotonically
// non-decreasing with more and deeper special content
func (g *Generator) computeRating(d *DungeonLevel) {
	rating := d.Depth

	for y := 1; y < d.Height-1; y++ {
		for x := 1; x < d.Width-1; x++ {
			feat, _ := d.Grid.FeatureAt(x, y)
			switch feat {
			case grid.FeatLava:
				rating += 2
			case grid.FeatWater, grid.FeatRubble, grid.FeatPillar:
				rating++
			}
		}
	}

	for _, room := range d.Rooms {
		if room.Type == RoomVault {
			rating += g.tuning.VaultRating
		}
	}

	d.Rating = rating
}
