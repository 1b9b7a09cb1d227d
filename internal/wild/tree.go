package wild

import (
	"errors"
	"fmt"

	"github.com/hollowmoor/hollowmoor/server/internal/rng"
)

// Axis selects which scalar field an internal node splits on. Exactly
// one bit is set per internal node.
type Axis uint8

const (
	AxisHeight Axis = 1 << iota
	AxisPopulation
	AxisLaw
)

// MaxCutoff bounds internal node cutoffs; scalar fields are normalized
// to the same range
const MaxCutoff = 255

var (
	ErrEmptyTree      = errors.New("wild: decision tree has no nodes")
	ErrBadNode        = errors.New("wild: invalid decision tree node")
	ErrBadRoutineRef  = errors.New("wild: node references unknown routine")
	ErrBoundsMismatch = errors.New("wild: routine bounds exclude reachable triples")
	ErrTreeTooDeep    = errors.New("wild: classification exceeded tree size")
	ErrUnknownRoutine = errors.New("wild: unknown routine id")
)

// Node is one decision tree entry. Cutoff 0 marks a leaf: the node
// holds two candidate routines and their relative selection weights
// (which need not sum to 100). Any other cutoff marks an internal node
// that compares one axis value and descends.
type Node struct {
	Axis   Axis `yaml:"axis,omitempty"`
	Cutoff int  `yaml:"cutoff"`
	Left   int  `yaml:"left,omitempty"`
	Right  int  `yaml:"right,omitempty"`

	RoutineA int `yaml:"routine_a,omitempty"`
	RoutineB int `yaml:"routine_b,omitempty"`
	WeightA  int `yaml:"weight_a,omitempty"`
	WeightB  int `yaml:"weight_b,omitempty"`
}

// IsLeaf reports whether the node terminates classification
func (n Node) IsLeaf() bool {
	return n.Cutoff == 0
}

// BoundBox describes a region of validity over the three axes,
// min/max inclusive per axis
type BoundBox struct {
	HeightMin, HeightMax         int
	PopulationMin, PopulationMax int
	LawMin, LawMax               int
}

// FullBoundBox covers the whole normalized scalar range on every axis
func FullBoundBox() BoundBox {
	return BoundBox{
		HeightMin: 0, HeightMax: MaxCutoff,
		PopulationMin: 0, PopulationMax: MaxCutoff,
		LawMin: 0, LawMax: MaxCutoff,
	}
}

// Contains reports whether the triple falls inside the box
func (b BoundBox) Contains(height, population, law int) bool {
	return height >= b.HeightMin && height <= b.HeightMax &&
		population >= b.PopulationMin && population <= b.PopulationMax &&
		law >= b.LawMin && law <= b.LawMax
}

// ContainsBox reports whether every triple inside other also falls
// inside b
func (b BoundBox) ContainsBox(other BoundBox) bool {
	return b.HeightMin <= other.HeightMin && b.HeightMax >= other.HeightMax &&
		b.PopulationMin <= other.PopulationMin && b.PopulationMax >= other.PopulationMax &&
		b.LawMin <= other.LawMin && b.LawMax >= other.LawMax
}

// empty reports whether no triple can fall inside the box
func (b BoundBox) empty() bool {
	return b.HeightMin > b.HeightMax ||
		b.PopulationMin > b.PopulationMax ||
		b.LawMin > b.LawMax
}

// Tree is the static terrain classifier plus its routine table. Both
// are read-only input data; generation never mutates them.
type Tree struct {
	Nodes    []Node
	Routines []RoutineSpec
}

// Validate checks the structural invariants of every node: internal
// nodes carry a cutoff in [0, MaxCutoff], exactly one axis bit and two
// valid children; leaves carry valid routine references and positive
// combined weight. It then walks the reachable tree and verifies every
// leaf's candidate routines declare bounds covering the triples that can
// reach it.
func (t *Tree) Validate() error {
	if len(t.Nodes) == 0 {
		return ErrEmptyTree
	}

	for i, n := range t.Nodes {
		if n.IsLeaf() {
			if n.RoutineA < 0 || n.RoutineA >= len(t.Routines) ||
				n.RoutineB < 0 || n.RoutineB >= len(t.Routines) {
				return fmt.Errorf("%w: leaf %d", ErrBadRoutineRef, i)
			}
			if n.WeightA < 0 || n.WeightB < 0 || n.WeightA+n.WeightB <= 0 {
				return fmt.Errorf("%w: leaf %d has no selectable weight", ErrBadNode, i)
			}
			continue
		}

		if n.Cutoff < 0 || n.Cutoff > MaxCutoff {
			return fmt.Errorf("%w: node %d cutoff %d", ErrBadNode, i, n.Cutoff)
		}
		if n.Axis != AxisHeight && n.Axis != AxisPopulation && n.Axis != AxisLaw {
			return fmt.Errorf("%w: node %d must set exactly one axis bit", ErrBadNode, i)
		}
		if n.Left < 0 || n.Left >= len(t.Nodes) || n.Right < 0 || n.Right >= len(t.Nodes) {
			return fmt.Errorf("%w: node %d child out of range", ErrBadNode, i)
		}
	}

	return t.checkBounds(0, FullBoundBox(), 0)
}

// checkBounds narrows the scalar box at each split and checks that each
// reachable leaf's routines declare bounds covering the box. A zero
// BoundBox declares no expectation and is skipped; an empty box marks an
// unreachable leaf.
func (t *Tree) checkBounds(idx int, box BoundBox, depth int) error {
	if depth > len(t.Nodes) {
		return ErrTreeTooDeep
	}
	if box.empty() {
		return nil
	}

	n := t.Nodes[idx]
	if n.IsLeaf() {
		for _, id := range [2]int{n.RoutineA, n.RoutineB} {
			bounds := t.Routines[id].Bounds
			if bounds == (BoundBox{}) {
				continue
			}
			if !bounds.ContainsBox(box) {
				return fmt.Errorf("%w: leaf %d routine %q", ErrBoundsMismatch, idx, t.Routines[id].Name)
			}
		}
		return nil
	}

	left, right := box, box
	switch n.Axis {
	case AxisHeight:
		left.HeightMax = min(left.HeightMax, n.Cutoff-1)
		right.HeightMin = max(right.HeightMin, n.Cutoff)
	case AxisPopulation:
		left.PopulationMax = min(left.PopulationMax, n.Cutoff-1)
		right.PopulationMin = max(right.PopulationMin, n.Cutoff)
	default:
		left.LawMax = min(left.LawMax, n.Cutoff-1)
		right.LawMin = max(right.LawMin, n.Cutoff)
	}

	if err := t.checkBounds(n.Left, left, depth+1); err != nil {
		return err
	}
	return t.checkBounds(n.Right, right, depth+1)
}

// Classify walks the tree for one (height, population, law) triple and
// returns the selected routine id. Values below an internal node's
// cutoff descend left; values at or above it descend right. Leaves pick
// between their two candidates with a single weighted draw.
func (t *Tree) Classify(height, population, law int, stream *rng.Stream) (int, error) {
	if len(t.Nodes) == 0 {
		return 0, ErrEmptyTree
	}

	idx := 0
	// Any walk longer than the node count means a cycle
	for steps := 0; steps <= len(t.Nodes); steps++ {
		n := t.Nodes[idx]
		if n.IsLeaf() {
			total := n.WeightA + n.WeightB
			if stream.IntN(total) < n.WeightA {
				return n.RoutineA, nil
			}
			return n.RoutineB, nil
		}

		var v int
		switch n.Axis {
		case AxisHeight:
			v = height
		case AxisPopulation:
			v = population
		default:
			v = law
		}

		if v < n.Cutoff {
			idx = n.Left
		} else {
			idx = n.Right
		}
	}

	return 0, ErrTreeTooDeep
}

// Routine returns the routine spec for an id
func (t *Tree) Routine(id int) (RoutineSpec, error) {
	if id < 0 || id >= len(t.Routines) {
		return RoutineSpec{}, fmt.Errorf("%w: %d", ErrUnknownRoutine, id)
	}
	return t.Routines[id], nil
}
