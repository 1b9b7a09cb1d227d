package dungeon

import (
	"github.com/hollowmoor/hollowmoor/server/internal/grid"
	"github.com/hollowmoor/hollowmoor/server/internal/rng"
)

// connectRooms carves a corridor from each room toward the nearest
// already-connected room, in placement order. The first room seeds the
// connected set.
func (g *Generator) connectRooms(d *DungeonLevel, stream *rng.Stream) {
	if len(d.Rooms) < 2 {
		return
	}

	connected := []Point{d.Rooms[0].Center()}
	for _, room := range d.Rooms[1:] {
		from := room.Center()
		to := nearestPoint(from, connected)
		g.carveCorridor(d, from, to, stream)
		connected = append(connected, from)
	}
}

// nearestPoint returns the candidate with the smallest squared distance
func nearestPoint(from Point, candidates []Point) Point {
	best := candidates[0]
	bestDist := sqDist(from, best)
	for _, c := range candidates[1:] {
		if dist := sqDist(from, c); dist < bestDist {
			best = c
			bestDist = dist
		}
	}
	return best
}

func sqDist(a, b Point) int {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return dx*dx + dy*dy
}

// carveCorridor walks from one point toward another, carving floor. Each
// step is biased toward the target but may wander; the walk is bounded,
// and any remaining distance is carved as a straight L when the bound is
// hit, so the two endpoints always end up joined.
func (g *Generator) carveCorridor(d *DungeonLevel, from, to Point, stream *rng.Stream) {
	x, y := from.X, from.Y
	maxSteps := (abs(to.X-from.X)+abs(to.Y-from.Y))*4 + 20

	for step := 0; step < maxSteps; step++ {
		if x == to.X && y == to.Y {
			return
		}

		dx, dy := 0, 0
		if stream.Percent(g.tuning.CorridorBias) {
			// Head toward the target along the longer remaining axis
			if abs(to.X-x) >= abs(to.Y-y) && to.X != x {
				dx = sign(to.X - x)
			} else if to.Y != y {
				dy = sign(to.Y - y)
			} else {
				dx = sign(to.X - x)
			}
		} else {
			if stream.OneIn(2) {
				dx = 1 - 2*stream.IntN(2)
			} else {
				dy = 1 - 2*stream.IntN(2)
			}
		}

		nx, ny := x+dx, y+dy
		if nx < 1 || nx > d.Width-2 || ny < 1 || ny > d.Height-2 {
			continue
		}
		x, y = nx, ny
		g.carveCorridorCell(d, x, y, stream)
	}

	// Bound hit: finish with a straight L-shaped corridor
	g.carveStraight(d, Point{x, y}, to, stream)
}

// carveStraight carves horizontally then vertically to the target
func (g *Generator) carveStraight(d *DungeonLevel, from, to Point, stream *rng.Stream) {
	x, y := from.X, from.Y
	for x != to.X {
		x += sign(to.X - x)
		g.carveCorridorCell(d, x, y, stream)
	}
	for y != to.Y {
		y += sign(to.Y - y)
		g.carveCorridorCell(d, x, y, stream)
	}
}

// carveCorridorCell opens a single corridor tile. Where the corridor
// crosses a room boundary it may place a door instead of plain floor.
func (g *Generator) carveCorridorCell(d *DungeonLevel, x, y int, stream *rng.Stream) {
	feat, err := d.Grid.FeatureAt(x, y)
	if err != nil || feat != grid.FeatRock {
		return
	}

	if g.bordersRoom(d, x, y) && stream.Percent(g.tuning.DoorChance) {
		d.Grid.SetFeature(x, y, grid.FeatDoor)
		return
	}
	d.Grid.SetFeature(x, y, grid.FeatFloor)
}

// bordersRoom reports whether a non-room cell touches room floor
// orthogonally
func (g *Generator) bordersRoom(d *DungeonLevel, x, y int) bool {
	here, err := d.Grid.FlagsAt(x, y)
	if err != nil || here.Has(grid.FlagRoom) {
		return false
	}

	for _, delta := range [4][2]int{{0, -1}, {0, 1}, {-1, 0}, {1, 0}} {
		flags, err := d.Grid.FlagsAt(x+delta[0], y+delta[1])
		if err != nil {
			continue
		}
		if flags.Has(grid.FlagRoom) {
			return true
		}
	}
	return false
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
