package wild

import (
	"testing"

	"github.com/hollowmoor/hollowmoor/server/internal/grid"
	"github.com/hollowmoor/hollowmoor/server/internal/rng"
)

func TestGenerateDeterministic(t *testing.T) {
	seeds := []int64{1, 42, 100, 255, 1000, 9999}
	for _, seed := range seeds {
		g := NewGenerator(nil, nil)

		first, err := g.Generate(48, 32, rng.New(seed))
		if err != nil {
			t.Fatalf("seed %d: generate failed: %v", seed, err)
		}
		second, err := g.Generate(48, 32, rng.New(seed))
		if err != nil {
			t.Fatalf("seed %d: repeat generate failed: %v", seed, err)
		}

		if first.Grid.Checksum() != second.Grid.Checksum() {
			t.Errorf("seed %d: same seed produced different terrain", seed)
		}
		if len(first.Places) != len(second.Places) {
			t.Errorf("seed %d: same seed produced different place counts", seed)
		}
		for i := range first.Places {
			if first.Places[i] != second.Places[i] {
				t.Errorf("seed %d: place %d differs between runs", seed, i)
			}
		}
	}
}

func TestGenerateSeedsDiverge(t *testing.T) {
	g := NewGenerator(nil, nil)

	a, err := g.Generate(48, 32, rng.New(1))
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	b, err := g.Generate(48, 32, rng.New(2))
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	if a.Grid.Checksum() == b.Grid.Checksum() {
		t.Error("different seeds produced identical terrain")
	}
}

func TestGenerateScalarsInRange(t *testing.T) {
	g := NewGenerator(nil, nil)
	m, err := g.Generate(48, 32, rng.New(42))
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	maps := map[string][][]int{
		"height":     m.HeightMap,
		"population": m.PopulationMap,
		"law":        m.LawMap,
	}
	for name, field := range maps {
		if len(field) != m.Height {
			t.Fatalf("%s map has %d rows, want %d", name, len(field), m.Height)
		}
		for y := range field {
			for x, v := range field[y] {
				if v < 0 || v > MaxCutoff {
					t.Fatalf("%s[%d][%d] = %d out of range", name, y, x, v)
				}
			}
		}
	}
}

func TestCornerSeedsSpanFullRangeOffHeight(t *testing.T) {
	g := NewGenerator(nil, nil)
	stream := rng.New(11)

	sawLow, sawHigh := false, false
	for i := 0; i < 500; i++ {
		v := g.cornerValue(stream, false)
		if v < 0 || v > MaxCutoff {
			t.Fatalf("corner seed %d outside [0, %d]", v, MaxCutoff)
		}
		if v < SeaLevel {
			sawLow = true
		}
		if v >= 200 {
			sawHigh = true
		}
	}
	if !sawLow || !sawHigh {
		t.Error("population and law corner seeds should span the full scalar range")
	}
}

func TestGenerateScalarsReachLowBands(t *testing.T) {
	// Population and law must be able to dip below the height axis's sea
	// floor, otherwise the classifier's low bands are dead branches
	lowPop, lowLaw := false, false
	for _, seed := range []int64{1, 2, 3, 4, 5} {
		g := NewGenerator(nil, nil)
		m, err := g.Generate(64, 48, rng.New(seed))
		if err != nil {
			t.Fatalf("seed %d: generate failed: %v", seed, err)
		}
		for y := 0; y < m.Height; y++ {
			for x := 0; x < m.Width; x++ {
				if m.PopulationMap[y][x] < SeaLevel {
					lowPop = true
				}
				if m.LawMap[y][x] < SeaLevel {
					lowLaw = true
				}
			}
		}
	}
	if !lowPop {
		t.Error("population map never dips below the low band")
	}
	if !lowLaw {
		t.Error("law map never dips below the low band")
	}
}

func TestGenerateMinSeparation(t *testing.T) {
	for _, seed := range []int64{1, 42, 777, 3000} {
		g := NewGenerator(nil, nil)
		m, err := g.Generate(48, 32, rng.New(seed))
		if err != nil {
			t.Fatalf("seed %d: generate failed: %v", seed, err)
		}

		minSep := DefaultConstraints().MinSeparation
		for i := 0; i < len(m.Places); i++ {
			for j := i + 1; j < len(m.Places); j++ {
				a, b := m.Places[i], m.Places[j]
				if a.Kind != b.Kind {
					continue
				}
				dx, dy := abs(a.X-b.X), abs(a.Y-b.Y)
				if max(dx, dy) < minSep {
					t.Errorf("seed %d: %s sites %q and %q only %d apart",
						seed, a.Kind, a.Key, b.Key, max(dx, dy))
				}
			}
		}
	}
}

func TestGeneratePlacesMarked(t *testing.T) {
	g := NewGenerator(nil, nil)
	m, err := g.Generate(48, 32, rng.New(7))
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	for i, p := range m.Places {
		block := m.BlockAt(p.X, p.Y)
		if block == nil {
			t.Fatalf("place %q is out of bounds at (%d, %d)", p.Key, p.X, p.Y)
		}
		if block.PlaceIdx != i+1 {
			t.Errorf("place %q block index %d, want %d", p.Key, block.PlaceIdx, i+1)
		}
		if p.Seed == 0 {
			t.Errorf("place %q has no interior seed", p.Key)
		}

		feat, err := m.Grid.FeatureAt(p.X, p.Y)
		if err != nil {
			t.Fatalf("feature lookup failed: %v", err)
		}
		switch p.Kind {
		case PlaceTown:
			if feat != grid.FeatTown {
				t.Errorf("town %q stamped as %v", p.Key, feat)
			}
			if p.Population <= 0 {
				t.Errorf("town %q has no population", p.Key)
			}
		case PlaceDungeon:
			if feat != grid.FeatEntrance {
				t.Errorf("dungeon %q stamped as %v", p.Key, feat)
			}
		}
	}
}

func TestGenerateDegradesOnCrowdedMap(t *testing.T) {
	// A map too small to fit every requested site still generates; it
	// just places fewer sites
	constraints := DefaultConstraints()
	constraints.Towns = 20
	constraints.MinSeparation = 10

	g := NewGenerator(nil, constraints)
	m, err := g.Generate(16, 16, rng.New(11))
	if err != nil {
		t.Fatalf("crowded map should degrade, not fail: %v", err)
	}

	towns := 0
	for _, p := range m.Places {
		if p.Kind == PlaceTown {
			towns++
		}
	}
	if towns >= constraints.Towns {
		t.Errorf("16x16 map cannot hold %d towns %d blocks apart, placed %d",
			constraints.Towns, constraints.MinSeparation, towns)
	}
}

func TestGenerateBlocksClassified(t *testing.T) {
	g := NewGenerator(nil, nil)
	m, err := g.Generate(32, 32, rng.New(5))
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	tree := DefaultTree()
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			if _, err := tree.Routine(m.Blocks[y][x].RoutineID); err != nil {
				t.Fatalf("block (%d, %d) carries invalid routine %d",
					x, y, m.Blocks[y][x].RoutineID)
			}
		}
	}
}

func TestGenerateMonsterParams(t *testing.T) {
	g := NewGenerator(nil, nil)
	m, err := g.Generate(32, 32, rng.New(13))
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			b := m.Blocks[y][x]
			if b.MonsterDensity < 0 || b.MonsterDensity > 8 {
				t.Fatalf("block (%d, %d) density %d out of range", x, y, b.MonsterDensity)
			}
			if b.MonsterFrequency < 1 {
				t.Fatalf("block (%d, %d) frequency %d below minimum", x, y, b.MonsterFrequency)
			}
		}
	}
}

func TestGenerateRejectsInvalidTree(t *testing.T) {
	bad := &Tree{
		Nodes:    []Node{{Axis: AxisHeight, Cutoff: 500, Left: 0, Right: 0}},
		Routines: []RoutineSpec{{Kind: KindFlatPick, Name: "x"}},
	}
	g := NewGenerator(bad, nil)
	if _, err := g.Generate(16, 16, rng.New(1)); err == nil {
		t.Error("expected error for invalid classifier")
	}
}

func TestGenerateRejectsBadSize(t *testing.T) {
	g := NewGenerator(nil, nil)
	if _, err := g.Generate(0, 16, rng.New(1)); err == nil {
		t.Error("expected error for zero width")
	}
	if _, err := g.Generate(16, -1, rng.New(1)); err == nil {
		t.Error("expected error for negative height")
	}
}
