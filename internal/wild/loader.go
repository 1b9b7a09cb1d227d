package wild

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/hollowmoor/hollowmoor/server/internal/grid"
)

// TreeConfig is the YAML shape of an externally supplied decision tree
type TreeConfig struct {
	Nodes    []NodeConfigYAML    `yaml:"nodes"`
	Routines []RoutineConfigYAML `yaml:"routines"`
}

// NodeConfigYAML represents one tree node in the YAML config
type NodeConfigYAML struct {
	Axis     string `yaml:"axis,omitempty"` // "height", "population", "law"
	Cutoff   int    `yaml:"cutoff"`
	Left     int    `yaml:"left,omitempty"`
	Right    int    `yaml:"right,omitempty"`
	RoutineA int    `yaml:"routine_a,omitempty"`
	RoutineB int    `yaml:"routine_b,omitempty"`
	WeightA  int    `yaml:"weight_a,omitempty"`
	WeightB  int    `yaml:"weight_b,omitempty"`
}

// RoutineConfigYAML represents one routine spec in the YAML config
type RoutineConfigYAML struct {
	Kind     string   `yaml:"kind"`
	Name     string   `yaml:"name"`
	Features []string `yaml:"features"`
	Params   []int    `yaml:"params,omitempty"`
}

// LoadTreeFromYAML loads a decision tree and its routine table from a
// YAML file and validates the node invariants before returning it
func LoadTreeFromYAML(filename string) (*Tree, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read tree file: %w", err)
	}

	var config TreeConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse tree YAML: %w", err)
	}

	return CreateTree(&config)
}

// CreateTree builds a Tree from a configuration
func CreateTree(config *TreeConfig) (*Tree, error) {
	if config == nil || len(config.Nodes) == 0 {
		return nil, ErrEmptyTree
	}

	tree := &Tree{}

	for i, rc := range config.Routines {
		kind, err := parseRoutineKind(rc.Kind)
		if err != nil {
			return nil, fmt.Errorf("routine %d (%s): %w", i, rc.Name, err)
		}

		spec := RoutineSpec{
			Kind:   kind,
			Name:   rc.Name,
			Bounds: FullBoundBox(),
		}
		for _, name := range rc.Features {
			feat, err := parseFeature(name)
			if err != nil {
				return nil, fmt.Errorf("routine %d (%s): %w", i, rc.Name, err)
			}
			spec.Features = append(spec.Features, feat)
		}
		for j, p := range rc.Params {
			if j >= len(spec.Params) {
				break
			}
			spec.Params[j] = p
		}

		tree.Routines = append(tree.Routines, spec)
	}

	for i, nc := range config.Nodes {
		node := Node{
			Cutoff:   nc.Cutoff,
			Left:     nc.Left,
			Right:    nc.Right,
			RoutineA: nc.RoutineA,
			RoutineB: nc.RoutineB,
			WeightA:  nc.WeightA,
			WeightB:  nc.WeightB,
		}
		if nc.Cutoff != 0 {
			axis, err := parseAxis(nc.Axis)
			if err != nil {
				return nil, fmt.Errorf("node %d: %w", i, err)
			}
			node.Axis = axis
		}
		tree.Nodes = append(tree.Nodes, node)
	}

	if err := tree.Validate(); err != nil {
		return nil, err
	}

	return tree, nil
}

// parseAxis converts a string to the appropriate axis bit
func parseAxis(s string) (Axis, error) {
	switch s {
	case "height":
		return AxisHeight, nil
	case "population":
		return AxisPopulation, nil
	case "law":
		return AxisLaw, nil
	default:
		return 0, fmt.Errorf("%w: axis %q", ErrBadNode, s)
	}
}

// parseRoutineKind converts a string to a RoutineKind
func parseRoutineKind(s string) (RoutineKind, error) {
	switch s {
	case "fractal_mix":
		return KindFractalMix, nil
	case "flat_pick":
		return KindFlatPick, nil
	case "overlay_circle":
		return KindOverlayCircle, nil
	case "farm_pattern":
		return KindFarmPattern, nil
	default:
		return 0, fmt.Errorf("%w: kind %q", ErrUnknownRoutine, s)
	}
}

// parseFeature converts a string to a terrain feature
func parseFeature(s string) (grid.Feature, error) {
	features := map[string]grid.Feature{
		"water":    grid.FeatWater,
		"lava":     grid.FeatLava,
		"acid":     grid.FeatAcid,
		"grass":    grid.FeatGrass,
		"trees":    grid.FeatTrees,
		"hills":    grid.FeatHills,
		"mountain": grid.FeatMountain,
		"sand":     grid.FeatSand,
		"swamp":    grid.FeatSwamp,
		"snow":     grid.FeatSnow,
		"field":    grid.FeatField,
	}
	if feat, ok := features[s]; ok {
		return feat, nil
	}
	return grid.FeatGrass, fmt.Errorf("wild: unknown terrain feature %q", s)
}
