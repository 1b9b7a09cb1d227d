package wild

import (
	"fmt"

	"github.com/hollowmoor/hollowmoor/server/internal/grid"
	"github.com/hollowmoor/hollowmoor/server/internal/logger"
	"github.com/hollowmoor/hollowmoor/server/internal/rng"
)

// placeSites attempts the configured number of towns and dungeons.
// Candidates closer than the minimum separation to an already-accepted
// site of the same kind are rejected; exhausting the retry budget
// places fewer sites rather than failing.
func (g *Generator) placeSites(m *Map, stream *rng.Stream) {
	placed := g.placeKind(m, stream, PlaceTown, g.constraints.Towns)
	if placed < g.constraints.Towns {
		logger.Warning("town placement exhausted",
			"placed", placed,
			"wanted", g.constraints.Towns)
	}

	placed = g.placeKind(m, stream, PlaceDungeon, g.constraints.Dungeons)
	if placed < g.constraints.Dungeons {
		logger.Warning("dungeon placement exhausted",
			"placed", placed,
			"wanted", g.constraints.Dungeons)
	}
}

func (g *Generator) placeKind(m *Map, stream *rng.Stream, kind PlaceKind, count int) int {
	placed := 0
	for i := 0; i < count; i++ {
		site, ok := g.findSite(m, stream, kind)
		if !ok {
			break
		}

		place := Place{
			Key:  fmt.Sprintf("%s_%d", kind, placed+1),
			Kind: kind,
			X:    site.x,
			Y:    site.y,
			Size: stream.Range(1, 2),
			Seed: stream.Seed(),
		}

		switch kind {
		case PlaceTown:
			place.Population = stream.Range(50, 500)
			m.Grid.SetFeature(site.x, site.y, grid.FeatTown)
		case PlaceDungeon:
			place.MonsterHint = stream.Range(1, 8)
			m.Grid.SetFeature(site.x, site.y, grid.FeatEntrance)
		default:
			m.Grid.SetFeature(site.x, site.y, grid.FeatEntrance)
		}

		m.Places = append(m.Places, place)
		m.Blocks[site.y][site.x].PlaceIdx = len(m.Places)
		placed++
	}
	return placed
}

type candidate struct {
	x, y int
}

// findSite probes random blocks for a spot that is on land, unoccupied
// and far enough from every accepted site of the same kind
func (g *Generator) findSite(m *Map, stream *rng.Stream, kind PlaceKind) (candidate, bool) {
	for try := 0; try < g.constraints.PlaceRetries; try++ {
		x := stream.IntN(m.Width)
		y := stream.IntN(m.Height)

		feat, _ := m.Grid.FeatureAt(x, y)
		if feat == grid.FeatWater || feat == grid.FeatMountain || feat == grid.FeatLava {
			continue
		}
		if m.Blocks[y][x].PlaceIdx != 0 {
			continue
		}
		if g.tooClose(m, x, y, kind) {
			continue
		}
		return candidate{x, y}, true
	}
	return candidate{}, false
}

// tooClose enforces the minimum separation between accepted sites of
// one kind, using Chebyshev distance in blocks
func (g *Generator) tooClose(m *Map, x, y int, kind PlaceKind) bool {
	for _, p := range m.Places {
		if p.Kind != kind {
			continue
		}
		dx, dy := abs(p.X-x), abs(p.Y-y)
		if max(dx, dy) < g.constraints.MinSeparation {
			return true
		}
	}
	return false
}

// carveRoads connects each pair of towns within the configured maximum
// distance with an L-shaped road, and each dungeon to its nearest town
// with a rougher track
func (g *Generator) carveRoads(m *Map) {
	var towns, dungeons []Place
	for _, p := range m.Places {
		switch p.Kind {
		case PlaceTown:
			towns = append(towns, p)
		case PlaceDungeon:
			dungeons = append(dungeons, p)
		}
	}

	for i := 0; i < len(towns); i++ {
		for j := i + 1; j < len(towns); j++ {
			dist := abs(towns[i].X-towns[j].X) + abs(towns[i].Y-towns[j].Y)
			if dist > g.constraints.MaxRoadDistance {
				continue
			}
			g.carvePath(m, towns[i].X, towns[i].Y, towns[j].X, towns[j].Y, grid.FlagRoad, grid.FeatRoad)
		}
	}

	for _, d := range dungeons {
		town, ok := nearestTown(towns, d)
		if !ok {
			continue
		}
		dist := abs(town.X-d.X) + abs(town.Y-d.Y)
		if dist > g.constraints.MaxRoadDistance {
			continue
		}
		g.carvePath(m, d.X, d.Y, town.X, town.Y, grid.FlagTrack, grid.FeatTrack)
	}
}

func nearestTown(towns []Place, from Place) (Place, bool) {
	if len(towns) == 0 {
		return Place{}, false
	}
	best := towns[0]
	bestDist := abs(best.X-from.X) + abs(best.Y-from.Y)
	for _, t := range towns[1:] {
		if d := abs(t.X-from.X) + abs(t.Y-from.Y); d < bestDist {
			best = t
			bestDist = d
		}
	}
	return best, true
}

// carvePath walks horizontally then vertically, marking the road or
// track flag on every crossed block. The surface feature only replaces
// open terrain; water crossings keep their water but still carry the
// flag (a ford).
func (g *Generator) carvePath(m *Map, x1, y1, x2, y2 int, flag grid.Flag, feat grid.Feature) {
	x, y := x1, y1
	for x != x2 {
		x += sign(x2 - x)
		g.markPath(m, x, y, flag, feat)
	}
	for y != y2 {
		y += sign(y2 - y)
		g.markPath(m, x, y, flag, feat)
	}
}

func (g *Generator) markPath(m *Map, x, y int, flag grid.Flag, feat grid.Feature) {
	m.Blocks[y][x].Flags |= flag
	m.Grid.AddFlags(x, y, flag)

	if m.Blocks[y][x].PlaceIdx != 0 {
		return
	}
	current, _ := m.Grid.FeatureAt(x, y)
	switch current {
	case grid.FeatWater, grid.FeatMountain, grid.FeatLava:
		return
	}
	m.Grid.SetFeature(x, y, feat)
}

// carveRivers starts each river on a high block and walks it downhill
// until it reaches open water or the map edge, marking water flags as
// it goes
func (g *Generator) carveRivers(m *Map, stream *rng.Stream) {
	for i := 0; i < g.constraints.Rivers; i++ {
		src, ok := g.findRiverSource(m, stream)
		if !ok {
			logger.Warning("river source search exhausted", "placed", i)
			return
		}
		g.flowRiver(m, src.x, src.y)
	}
}

// findRiverSource probes for a high-altitude land block
func (g *Generator) findRiverSource(m *Map, stream *rng.Stream) (candidate, bool) {
	for try := 0; try < g.constraints.PlaceRetries; try++ {
		x := stream.IntN(m.Width)
		y := stream.IntN(m.Height)
		if m.HeightMap[y][x] >= 180 && m.Blocks[y][x].PlaceIdx == 0 {
			return candidate{x, y}, true
		}
	}
	return candidate{}, false
}

// flowRiver descends the height field one block at a time, always
// moving to the lowest orthogonal neighbor. Reaching water, the map
// edge, or a local minimum ends the river.
func (g *Generator) flowRiver(m *Map, x, y int) {
	for step := 0; step < m.Width*m.Height; step++ {
		g.markWater(m, x, y)

		bestX, bestY := x, y
		bestH := m.HeightMap[y][x]
		for _, delta := range [4][2]int{{0, -1}, {0, 1}, {-1, 0}, {1, 0}} {
			nx, ny := x+delta[0], y+delta[1]
			if nx < 0 || nx >= m.Width || ny < 0 || ny >= m.Height {
				// Flowing off the map ends the river
				return
			}
			if m.HeightMap[ny][nx] < bestH {
				bestX, bestY = nx, ny
				bestH = m.HeightMap[ny][nx]
			}
		}

		if bestX == x && bestY == y {
			return // Local minimum: the river ends in a pool
		}
		x, y = bestX, bestY

		feat, _ := m.Grid.FeatureAt(x, y)
		if feat == grid.FeatWater {
			return // Joined open water
		}
	}
}

func (g *Generator) markWater(m *Map, x, y int) {
	m.Blocks[y][x].Flags |= grid.FlagWater
	m.Grid.AddFlags(x, y, grid.FlagWater)
	if m.Blocks[y][x].PlaceIdx == 0 {
		m.Grid.SetFeature(x, y, grid.FeatWater)
	}
}

// stampLakes adds the configured number of standalone lakes on land
func (g *Generator) stampLakes(m *Map, stream *rng.Stream) {
	for i := 0; i < g.constraints.Lakes; i++ {
		site, ok := g.findSite(m, stream, PlaceQuest)
		if !ok {
			logger.Warning("lake placement exhausted", "placed", i)
			return
		}
		g.stampPool(m, site.x, site.y, stream.Range(1, 3), grid.FeatWater, stream)
	}
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

