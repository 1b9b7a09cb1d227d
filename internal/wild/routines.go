package wild

import "github.com/hollowmoor/hollowmoor/server/internal/grid"

// RoutineKind is the closed set of terrain-generation routines. The set
// is fixed, so dispatch is an exhaustive switch rather than open-ended
// polymorphism.
type RoutineKind int

const (
	// KindFractalMix blends candidate features weighted by the local
	// scalar magnitudes
	KindFractalMix RoutineKind = iota
	// KindFlatPick picks one feature from a fixed list with fixed
	// relative odds, ignoring the scalar fields
	KindFlatPick
	// KindOverlayCircle stamps a circular lake or pond over the base
	// terrain
	KindOverlayCircle
	// KindFarmPattern stamps a regular tilled-field pattern
	KindFarmPattern
)

// String returns the string representation of a RoutineKind
func (k RoutineKind) String() string {
	switch k {
	case KindFractalMix:
		return "fractal_mix"
	case KindFlatPick:
		return "flat_pick"
	case KindOverlayCircle:
		return "overlay_circle"
	case KindFarmPattern:
		return "farm_pattern"
	default:
		return "unknown"
	}
}

// RoutineSpec describes one terrain routine: its kind, the features it
// may place, and a small parameter array whose meaning is
// routine-specific (relative odds for flat picks, radius bounds for
// overlays, pattern period for farms).
type RoutineSpec struct {
	Kind     RoutineKind
	Name     string
	Features []grid.Feature
	Params   [4]int
	Bounds   BoundBox // Region of the scalar space this routine expects
}

// DefaultTree returns the standard wilderness classifier: ocean and
// mountains split off the height axis, then population and law divide
// the habitable middle band.
func DefaultTree() *Tree {
	ocean := FullBoundBox()
	ocean.HeightMax = 59

	peaks := FullBoundBox()
	peaks.HeightMin = 200

	farm := FullBoundBox()
	farm.PopulationMin = 128
	farm.LawMin = 128

	routines := []RoutineSpec{
		{
			Kind:     KindFlatPick,
			Name:     "ocean",
			Features: []grid.Feature{grid.FeatWater},
			Params:   [4]int{100},
			Bounds:   ocean,
		},
		{
			Kind:     KindFractalMix,
			Name:     "mountains",
			Features: []grid.Feature{grid.FeatMountain, grid.FeatHills, grid.FeatSnow},
			Bounds:   peaks,
		},
		{
			Kind:     KindFractalMix,
			Name:     "wild_woods",
			Features: []grid.Feature{grid.FeatTrees, grid.FeatGrass, grid.FeatHills},
			Bounds:   FullBoundBox(),
		},
		{
			Kind:     KindFlatPick,
			Name:     "badlands",
			Features: []grid.Feature{grid.FeatSand, grid.FeatSwamp, grid.FeatHills},
			Params:   [4]int{50, 30, 20},
			Bounds:   FullBoundBox(),
		},
		{
			Kind:     KindFlatPick,
			Name:     "meadow",
			Features: []grid.Feature{grid.FeatGrass, grid.FeatTrees},
			Params:   [4]int{75, 25},
			Bounds:   FullBoundBox(),
		},
		{
			Kind: KindOverlayCircle,
			Name: "pond_country",
			// Base grass, water overlay, max radius 2
			Features: []grid.Feature{grid.FeatGrass, grid.FeatWater},
			Params:   [4]int{2},
			Bounds:   FullBoundBox(),
		},
		{
			Kind:     KindFarmPattern,
			Name:     "farmland",
			Features: []grid.Feature{grid.FeatField, grid.FeatGrass},
			Params:   [4]int{2},
			Bounds:   farm,
		},
	}

	// Node layout:
	//   0: height < 60  -> ocean leaf, else 1
	//   1: height >= 200 -> mountains, else habitable band
	//   2: population split over the habitable band
	//   3: law split for sparse population
	//   4: law split for dense population
	nodes := []Node{
		{Axis: AxisHeight, Cutoff: 60, Left: 5, Right: 1},
		{Axis: AxisHeight, Cutoff: 200, Left: 2, Right: 6},
		{Axis: AxisPopulation, Cutoff: 128, Left: 3, Right: 4},
		{Axis: AxisLaw, Cutoff: 128, Left: 7, Right: 8},
		{Axis: AxisLaw, Cutoff: 128, Left: 9, Right: 10},
		{RoutineA: 0, RoutineB: 0, WeightA: 1, WeightB: 1},   // ocean
		{RoutineA: 1, RoutineB: 2, WeightA: 80, WeightB: 20}, // mountains / wild woods
		{RoutineA: 3, RoutineB: 2, WeightA: 60, WeightB: 40}, // lawless, sparse: badlands
		{RoutineA: 4, RoutineB: 5, WeightA: 70, WeightB: 30}, // lawful, sparse: meadow
		{RoutineA: 2, RoutineB: 5, WeightA: 50, WeightB: 50}, // lawless, dense: woods / ponds
		{RoutineA: 6, RoutineB: 4, WeightA: 75, WeightB: 25}, // lawful, dense: farmland
	}

	return &Tree{Nodes: nodes, Routines: routines}
}
