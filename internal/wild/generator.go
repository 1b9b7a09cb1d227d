package wild

import (
	"fmt"

	"github.com/aquilax/go-perlin"

	"github.com/hollowmoor/hollowmoor/server/internal/grid"
	"github.com/hollowmoor/hollowmoor/server/internal/logger"
	"github.com/hollowmoor/hollowmoor/server/internal/plasma"
	"github.com/hollowmoor/hollowmoor/server/internal/rng"
)

// SeaLevel is the height below which a block is open water
const SeaLevel = 60

// Constraints holds the wilderness placement configuration
type Constraints struct {
	Towns         int `yaml:"towns"`
	Dungeons      int `yaml:"dungeons"`
	MinSeparation int `yaml:"min_separation"` // Between sites of the same kind, in blocks
	PlaceRetries  int `yaml:"place_retries"`  // Candidate probes per site before giving up

	MaxRoadDistance int `yaml:"max_road_distance"` // Towns farther apart get no road
	Rivers          int `yaml:"rivers"`
	Lakes           int `yaml:"lakes"`

	// SeaFraction controls how much of the height field is seeded
	// below sea level, as a percentage
	SeaFraction int `yaml:"sea_fraction"`
}

// DefaultConstraints returns the standard wilderness configuration
func DefaultConstraints() *Constraints {
	return &Constraints{
		Towns:           4,
		Dungeons:        5,
		MinSeparation:   6,
		PlaceRetries:    50,
		MaxRoadDistance: 30,
		Rivers:          2,
		Lakes:           3,
		SeaFraction:     30,
	}
}

// Generator drives three scalar fields and the decision tree to produce
// a full wilderness map
type Generator struct {
	constraints *Constraints
	classifier  *Tree
}

// NewGenerator creates a wilderness generator. Nil arguments select the
// default tree and constraints.
func NewGenerator(classifier *Tree, constraints *Constraints) *Generator {
	if classifier == nil {
		classifier = DefaultTree()
	}
	if constraints == nil {
		constraints = DefaultConstraints()
	}
	return &Generator{classifier: classifier, constraints: constraints}
}

// Generate builds a wilderness map of the given size in blocks.
// Deterministic for a given size and stream seed.
func (g *Generator) Generate(width, height int, stream *rng.Stream) (*Map, error) {
	if err := g.classifier.Validate(); err != nil {
		return nil, err
	}

	level, err := grid.NewLevel(width, height, grid.FeatGrass)
	if err != nil {
		return nil, fmt.Errorf("wild: %w", err)
	}

	m := &Map{
		Width:  width,
		Height: height,
		Grid:   level,
		Blocks: make([][]Block, height),
	}
	for y := range m.Blocks {
		m.Blocks[y] = make([]Block, width)
	}

	g.buildScalarMaps(m, stream)
	if err := g.classifyBlocks(m, stream); err != nil {
		return nil, err
	}
	g.placeSites(m, stream)
	g.carveRivers(m, stream)
	g.stampLakes(m, stream)
	g.carveRoads(m)
	g.assignMonsterParams(m)

	logger.Debug("wilderness generated",
		"width", width,
		"height", height,
		"places", len(m.Places))

	return m, nil
}

// buildScalarMaps covers the map with field-sized patches for each of
// the three axes. Patch edges shared with already-generated neighbors
// are pre-set from the neighbor's values so terrain blends smoothly
// across patch seams.
func (g *Generator) buildScalarMaps(m *Map, stream *rng.Stream) {
	m.HeightMap = g.buildAxis(m, stream, true)
	m.PopulationMap = g.buildAxis(m, stream, false)
	m.LawMap = g.buildAxis(m, stream, false)
}

func (g *Generator) buildAxis(m *Map, stream *rng.Stream, isHeight bool) [][]int {
	out := make([][]int, m.Height)
	for y := range out {
		out[y] = make([]int, m.Width)
		for x := range out[y] {
			out[y][x] = plasma.Unset
		}
	}

	for py := 0; py < m.Height; py += plasma.BlockSize {
		for px := 0; px < m.Width; px += plasma.BlockSize {
			field := plasma.New()

			// Seed from neighbors already generated to the west/north
			for i := 0; i <= plasma.BlockSize; i++ {
				if px > 0 && py+i < m.Height && out[py+i][px] != plasma.Unset {
					field.SetValue(0, i, out[py+i][px])
				}
				if py > 0 && px+i < m.Width && out[py][px+i] != plasma.Unset {
					field.SetValue(i, 0, out[py][px+i])
				}
			}

			// Fresh corners come from the stream, biased by the sea
			// fraction on the height axis
			for _, c := range [4][2]int{{0, 0}, {plasma.BlockSize, 0}, {0, plasma.BlockSize}, {plasma.BlockSize, plasma.BlockSize}} {
				if v, _ := field.ValueAt(c[0], c[1]); v != plasma.Unset {
					continue
				}
				field.SetValue(c[0], c[1], g.cornerValue(stream, isHeight))
			}

			field.Generate(stream)

			for fy := 0; fy <= plasma.BlockSize; fy++ {
				for fx := 0; fx <= plasma.BlockSize; fx++ {
					x, y := px+fx, py+fy
					if x >= m.Width || y >= m.Height {
						continue
					}
					v, _ := field.ValueAt(fx, fy)
					out[y][x] = clampScalar(v)
				}
			}
		}
	}

	return out
}

// cornerValue draws a patch corner seed. On the height axis the sea
// fraction pulls a matching share of corners under sea level; the other
// axes seed from the full scalar range.
func (g *Generator) cornerValue(stream *rng.Stream, isHeight bool) int {
	if !isHeight {
		return stream.IntN(plasma.MaxValue + 1)
	}
	if stream.Percent(g.constraints.SeaFraction) {
		return stream.IntN(SeaLevel)
	}
	return stream.Range(SeaLevel, plasma.MaxValue)
}

func clampScalar(v int) int {
	if v < 0 {
		return 0
	}
	if v > plasma.MaxValue {
		return plasma.MaxValue
	}
	return v
}

// classifyBlocks runs every block's scalar triple through the decision
// tree and executes the selected terrain routine
func (g *Generator) classifyBlocks(m *Map, stream *rng.Stream) error {
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			h := m.HeightMap[y][x]
			p := m.PopulationMap[y][x]
			l := m.LawMap[y][x]

			id, err := g.classifier.Classify(h, p, l, stream)
			if err != nil {
				return err
			}
			m.Blocks[y][x].RoutineID = id

			spec, err := g.classifier.Routine(id)
			if err != nil {
				return err
			}
			g.runRoutine(m, x, y, spec, stream)
		}
	}
	return nil
}

// runRoutine stamps one block's terrain. The routine set is closed;
// every kind is handled here.
func (g *Generator) runRoutine(m *Map, x, y int, spec RoutineSpec, stream *rng.Stream) {
	switch spec.Kind {
	case KindFractalMix:
		g.runFractalMix(m, x, y, spec, stream)
	case KindFlatPick:
		g.runFlatPick(m, x, y, spec, stream)
	case KindOverlayCircle:
		g.runOverlayCircle(m, x, y, spec, stream)
	case KindFarmPattern:
		g.runFarmPattern(m, x, y, spec)
	}
}

// runFractalMix blends the candidate features using the local scalar
// magnitudes as relative weights: height backs the first candidate,
// population the second, law the third.
func (g *Generator) runFractalMix(m *Map, x, y int, spec RoutineSpec, stream *rng.Stream) {
	if len(spec.Features) == 0 {
		return
	}

	scalars := [3]int{m.HeightMap[y][x], m.PopulationMap[y][x], m.LawMap[y][x]}
	total := 0
	n := len(spec.Features)
	if n > 3 {
		n = 3
	}
	for i := 0; i < n; i++ {
		total += scalars[i] + 1
	}

	draw := stream.IntN(total)
	for i := 0; i < n; i++ {
		draw -= scalars[i] + 1
		if draw < 0 {
			g.setBlockFeature(m, x, y, spec.Features[i])
			return
		}
	}
	g.setBlockFeature(m, x, y, spec.Features[0])
}

// runFlatPick picks one feature with the fixed relative odds in Params,
// ignoring the scalar fields
func (g *Generator) runFlatPick(m *Map, x, y int, spec RoutineSpec, stream *rng.Stream) {
	if len(spec.Features) == 0 {
		return
	}

	total := 0
	for i := range spec.Features {
		total += flatWeight(spec, i)
	}

	draw := stream.IntN(total)
	for i := range spec.Features {
		draw -= flatWeight(spec, i)
		if draw < 0 {
			g.setBlockFeature(m, x, y, spec.Features[i])
			return
		}
	}
	g.setBlockFeature(m, x, y, spec.Features[0])
}

// flatWeight reads a feature's odds from the param array; a missing or
// zero entry counts as weight 1
func flatWeight(spec RoutineSpec, i int) int {
	if i < len(spec.Params) && spec.Params[i] > 0 {
		return spec.Params[i]
	}
	return 1
}

// runOverlayCircle lays the base terrain, then occasionally stamps a
// pond over this block and its neighbors. The shoreline radius is
// modulated with perlin noise so lakes read as irregular rather than
// stamped circles.
func (g *Generator) runOverlayCircle(m *Map, x, y int, spec RoutineSpec, stream *rng.Stream) {
	if len(spec.Features) < 2 {
		return
	}
	g.setBlockFeature(m, x, y, spec.Features[0])

	// Only a few pond-country blocks actually hold the pond
	if !stream.OneIn(8) {
		return
	}

	maxRadius := spec.Params[0]
	if maxRadius < 1 {
		maxRadius = 1
	}
	g.stampPool(m, x, y, stream.Range(1, maxRadius), spec.Features[1], stream)
}

// runFarmPattern stamps the regular tilled-field pattern used in
// settled, lawful country
func (g *Generator) runFarmPattern(m *Map, x, y int, spec RoutineSpec) {
	if len(spec.Features) < 2 {
		return
	}
	period := spec.Params[0]
	if period < 2 {
		period = 2
	}
	if (x+y)%period == 0 {
		g.setBlockFeature(m, x, y, spec.Features[1])
		return
	}
	g.setBlockFeature(m, x, y, spec.Features[0])
}

// setBlockFeature writes a block's terrain and mirrors the hazard info
// flags that gameplay reads
func (g *Generator) setBlockFeature(m *Map, x, y int, feat grid.Feature) {
	m.Grid.SetFeature(x, y, feat)

	block := &m.Blocks[y][x]
	switch feat {
	case grid.FeatWater:
		block.Flags |= grid.FlagWater
		m.Grid.AddFlags(x, y, grid.FlagWater)
	case grid.FeatLava:
		block.Flags |= grid.FlagLava
		m.Grid.AddFlags(x, y, grid.FlagLava)
	case grid.FeatAcid:
		block.Flags |= grid.FlagAcid
		m.Grid.AddFlags(x, y, grid.FlagAcid)
	}
}

// stampPool floods an irregular disc of the overlay feature centered on
// (cx, cy). The effective radius per direction is wobbled by perlin
// noise seeded from the stream, keeping the result deterministic.
func (g *Generator) stampPool(m *Map, cx, cy, radius int, feat grid.Feature, stream *rng.Stream) {
	noise := perlin.NewPerlin(2, 2, 3, stream.Seed())

	for y := cy - radius; y <= cy+radius; y++ {
		for x := cx - radius; x <= cx+radius; x++ {
			if x < 0 || x >= m.Width || y < 0 || y >= m.Height {
				continue
			}
			dx, dy := x-cx, y-cy

			// Wobble the rim: blocks near the nominal radius are kept
			// or dropped by the noise field
			wobble := noise.Noise2D(float64(x)*0.35, float64(y)*0.35)
			limit := float64(radius*radius) * (1 + wobble*0.5)
			if float64(dx*dx+dy*dy) > limit {
				continue
			}

			// Never drown a placed site
			if m.Blocks[y][x].PlaceIdx != 0 {
				continue
			}
			g.setBlockFeature(m, x, y, feat)
		}
	}
}

// assignMonsterParams derives per-block monster density and frequency:
// lawless blocks are denser, populated blocks spawn more often
func (g *Generator) assignMonsterParams(m *Map) {
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			block := &m.Blocks[y][x]
			block.MonsterDensity = (plasma.MaxValue - m.LawMap[y][x]) / 32
			block.MonsterFrequency = m.PopulationMap[y][x]/16 + 1
		}
	}
}
