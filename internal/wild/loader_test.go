package wild

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/hollowmoor/hollowmoor/server/internal/grid"
	"github.com/hollowmoor/hollowmoor/server/internal/rng"
)

const testTreeYAML = `nodes:
  - axis: height
    cutoff: 60
    left: 1
    right: 2
  - routine_a: 0
    routine_b: 0
    weight_a: 1
    weight_b: 1
  - routine_a: 1
    routine_b: 2
    weight_a: 70
    weight_b: 30
routines:
  - kind: flat_pick
    name: sea
    features: [water]
    params: [100]
  - kind: fractal_mix
    name: uplands
    features: [hills, grass, trees]
  - kind: flat_pick
    name: plains
    features: [grass, trees]
    params: [80, 20]
`

func writeTreeFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tree.yaml")
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		t.Fatalf("failed to write tree file: %v", err)
	}
	return path
}

func TestLoadTreeFromYAML(t *testing.T) {
	path := writeTreeFile(t, testTreeYAML)

	tree, err := LoadTreeFromYAML(path)
	if err != nil {
		t.Fatalf("failed to load tree: %v", err)
	}

	if len(tree.Nodes) != 3 {
		t.Errorf("expected 3 nodes, got %d", len(tree.Nodes))
	}
	if len(tree.Routines) != 3 {
		t.Errorf("expected 3 routines, got %d", len(tree.Routines))
	}

	if tree.Routines[0].Kind != KindFlatPick {
		t.Errorf("expected flat_pick, got %v", tree.Routines[0].Kind)
	}
	if tree.Routines[1].Kind != KindFractalMix {
		t.Errorf("expected fractal_mix, got %v", tree.Routines[1].Kind)
	}
	if len(tree.Routines[0].Features) != 1 || tree.Routines[0].Features[0] != grid.FeatWater {
		t.Errorf("sea routine should place water, got %v", tree.Routines[0].Features)
	}
	if tree.Routines[2].Params[0] != 80 || tree.Routines[2].Params[1] != 20 {
		t.Errorf("plains params not loaded: %v", tree.Routines[2].Params)
	}

	// Low height should reach the sea leaf
	stream := rng.New(5)
	id, err := tree.Classify(10, 0, 0, stream)
	if err != nil {
		t.Fatalf("classify failed: %v", err)
	}
	if id != 0 {
		t.Errorf("height 10 should classify as sea, got routine %d", id)
	}
}

func TestLoadTreeMissingFile(t *testing.T) {
	if _, err := LoadTreeFromYAML("/nonexistent/tree.yaml"); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadTreeMalformedYAML(t *testing.T) {
	path := writeTreeFile(t, "nodes: [broken")
	if _, err := LoadTreeFromYAML(path); err == nil {
		t.Error("expected error for malformed YAML")
	}
}

func TestCreateTreeEmpty(t *testing.T) {
	if _, err := CreateTree(nil); !errors.Is(err, ErrEmptyTree) {
		t.Errorf("expected ErrEmptyTree for nil config, got %v", err)
	}
	if _, err := CreateTree(&TreeConfig{}); !errors.Is(err, ErrEmptyTree) {
		t.Errorf("expected ErrEmptyTree for empty config, got %v", err)
	}
}

func TestCreateTreeBadRoutineKind(t *testing.T) {
	config := &TreeConfig{
		Nodes: []NodeConfigYAML{
			{RoutineA: 0, RoutineB: 0, WeightA: 1, WeightB: 1},
		},
		Routines: []RoutineConfigYAML{
			{Kind: "volcano_spiral", Name: "bad"},
		},
	}
	if _, err := CreateTree(config); !errors.Is(err, ErrUnknownRoutine) {
		t.Errorf("expected ErrUnknownRoutine, got %v", err)
	}
}

func TestCreateTreeBadAxis(t *testing.T) {
	config := &TreeConfig{
		Nodes: []NodeConfigYAML{
			{Axis: "altitude", Cutoff: 100, Left: 1, Right: 1},
			{RoutineA: 0, RoutineB: 0, WeightA: 1, WeightB: 1},
		},
		Routines: []RoutineConfigYAML{
			{Kind: "flat_pick", Name: "only", Features: []string{"grass"}},
		},
	}
	if _, err := CreateTree(config); !errors.Is(err, ErrBadNode) {
		t.Errorf("expected ErrBadNode for unknown axis, got %v", err)
	}
}

func TestCreateTreeBadFeature(t *testing.T) {
	config := &TreeConfig{
		Nodes: []NodeConfigYAML{
			{RoutineA: 0, RoutineB: 0, WeightA: 1, WeightB: 1},
		},
		Routines: []RoutineConfigYAML{
			{Kind: "flat_pick", Name: "bad", Features: []string{"quicksilver"}},
		},
	}
	if _, err := CreateTree(config); err == nil {
		t.Error("expected error for unknown feature name")
	}
}

func TestCreateTreeValidatesResult(t *testing.T) {
	// Structurally parseable but semantically broken: child out of range
	config := &TreeConfig{
		Nodes: []NodeConfigYAML{
			{Axis: "height", Cutoff: 100, Left: 0, Right: 7},
		},
		Routines: []RoutineConfigYAML{
			{Kind: "flat_pick", Name: "only", Features: []string{"grass"}},
		},
	}
	if _, err := CreateTree(config); !errors.Is(err, ErrBadNode) {
		t.Errorf("expected ErrBadNode from validation, got %v", err)
	}
}
