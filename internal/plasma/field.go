// Package plasma implements midpoint-displacement scalar fields used by
// the wilderness generator. One field is built per block per axis
// (height, population, law).
package plasma

import (
	"errors"
	"fmt"

	"github.com/hollowmoor/hollowmoor/server/internal/rng"
)

// BlockSize is the side length of one wilderness block. Fields are
// (BlockSize+1) square so neighboring blocks can share edge values.
const BlockSize = 16

// Unset marks a cell that generation has not filled yet. Cells holding
// any other value are invariant: Generate never overwrites them, which
// lets callers seed boundary conditions that must match adjacent blocks.
const Unset = -1

// MaxValue is the upper bound after Normalize
const MaxValue = 255

var ErrBadCoordinate = errors.New("plasma: coordinate outside field")

// Field is a (BlockSize+1) x (BlockSize+1) grid of integer magnitudes
// for one terrain axis.
type Field struct {
	cells [BlockSize + 1][BlockSize + 1]int
}

// New returns a field with every cell unset
func New() *Field {
	f := &Field{}
	f.Clear()
	return f
}

// Size returns the side length of the field
func (f *Field) Size() int {
	return BlockSize + 1
}

// Clear resets every cell to the unset sentinel
func (f *Field) Clear() {
	for y := range f.cells {
		for x := range f.cells[y] {
			f.cells[y][x] = Unset
		}
	}
}

// SetCorners sets all four corner cells to v
func (f *Field) SetCorners(v int) {
	f.cells[0][0] = v
	f.cells[0][BlockSize] = v
	f.cells[BlockSize][0] = v
	f.cells[BlockSize][BlockSize] = v
}

// SetCenter sets the single center cell to v
func (f *Field) SetCenter(v int) {
	f.cells[BlockSize/2][BlockSize/2] = v
}

// SetValue sets the cell at (x, y) to v
func (f *Field) SetValue(x, y, v int) error {
	if x < 0 || x > BlockSize || y < 0 || y > BlockSize {
		return fmt.Errorf("%w: (%d, %d)", ErrBadCoordinate, x, y)
	}
	f.cells[y][x] = v
	return nil
}

// ValueAt returns the cell at (x, y)
func (f *Field) ValueAt(x, y int) (int, error) {
	if x < 0 || x > BlockSize || y < 0 || y > BlockSize {
		return Unset, fmt.Errorf("%w: (%d, %d)", ErrBadCoordinate, x, y)
	}
	return f.cells[y][x], nil
}

// Generate fills every unset cell by midpoint displacement. The random
// offset magnitude tracks the current subdivision step, halving at each
// level, so large-scale variation is coarse and small-scale roughness
// fine. Pre-set cells are never touched.
func (f *Field) Generate(stream *rng.Stream) {
	f.subdivide(stream, true)
}

// Smooth fills every unset cell with the plain bilinear average of the
// surrounding known values, with no random offset. Deterministic with no
// stream required.
func (f *Field) Smooth() {
	f.subdivide(nil, false)
}

// subdivide runs the diamond-square passes. The step size is kept
// explicit: it starts at the full block size and halves each round.
func (f *Field) subdivide(stream *rng.Stream, rough bool) {
	for step := BlockSize; step > 1; step /= 2 {
		half := step / 2

		// Diamond pass: center of each step-sized square
		for y := half; y <= BlockSize; y += step {
			for x := half; x <= BlockSize; x += step {
				if f.cells[y][x] != Unset {
					continue
				}
				sum := f.cells[y-half][x-half] +
					f.cells[y-half][x+half] +
					f.cells[y+half][x-half] +
					f.cells[y+half][x+half]
				f.cells[y][x] = f.displace(sum/4, half, stream, rough)
			}
		}

		// Square pass: edge midpoints, averaging their in-bounds
		// axis-aligned neighbors at distance half
		for y := 0; y <= BlockSize; y += half {
			start := half
			if (y/half)%2 == 1 {
				start = 0
			}
			for x := start; x <= BlockSize; x += step {
				if f.cells[y][x] != Unset {
					continue
				}
				sum, count := 0, 0
				if x-half >= 0 {
					sum += f.cells[y][x-half]
					count++
				}
				if x+half <= BlockSize {
					sum += f.cells[y][x+half]
					count++
				}
				if y-half >= 0 {
					sum += f.cells[y-half][x]
					count++
				}
				if y+half <= BlockSize {
					sum += f.cells[y+half][x]
					count++
				}
				f.cells[y][x] = f.displace(sum/count, half, stream, rough)
			}
		}
	}
}

// displace adds a signed random offset proportional to the current step
func (f *Field) displace(avg, half int, stream *rng.Stream, rough bool) int {
	if !rough || stream == nil {
		return avg
	}
	v := avg + stream.Offset(half)
	if v < 0 {
		v = 0
	}
	return v
}

// Normalize rescales every cell into [0, MaxValue]. Cells still unset
// are treated as zero.
func (f *Field) Normalize() {
	min, max := f.cells[0][0], f.cells[0][0]
	for y := range f.cells {
		for x := range f.cells[y] {
			v := f.cells[y][x]
			if v == Unset {
				v = 0
				f.cells[y][x] = 0
			}
			if v < min {
				min = v
			}
			if v > max {
				max = v
			}
		}
	}

	if max == min {
		return
	}

	for y := range f.cells {
		for x := range f.cells[y] {
			f.cells[y][x] = (f.cells[y][x] - min) * MaxValue / (max - min)
		}
	}
}

// Distinct returns the set of values present in the field. Determinism
// tests compare these sets across seeds.
func (f *Field) Distinct() map[int]bool {
	seen := make(map[int]bool)
	for y := range f.cells {
		for x := range f.cells[y] {
			seen[f.cells[y][x]] = true
		}
	}
	return seen
}

// Equal reports whether two fields hold identical cells
func (f *Field) Equal(other *Field) bool {
	if other == nil {
		return false
	}
	return f.cells == other.cells
}
