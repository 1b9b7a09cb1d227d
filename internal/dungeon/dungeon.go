// Package dungeon generates room-and-corridor dungeon levels.
package dungeon

import (
	"errors"

	"github.com/hollowmoor/hollowmoor/server/internal/grid"
)

// MinDepth is the shallowest dungeon depth. Levels at MinDepth have no
// level above them and therefore no up staircase.
const MinDepth = 1

var (
	ErrBadDimensions = errors.New("dungeon: width and height must be positive")
	ErrBadDepth      = errors.New("dungeon: depth below minimum")
)

// Config describes one generation request
type Config struct {
	Width  int
	Height int
	Depth  int
}

// Validate rejects impossible configurations before generation starts
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return ErrBadDimensions
	}
	if c.Depth < MinDepth {
		return ErrBadDepth
	}
	return nil
}

// RoomType tags how a room was generated
type RoomType int

const (
	RoomPlain RoomType = iota
	RoomLit            // Permanently lit
	RoomCross          // Irregular cross-shaped room
	RoomPillared
	RoomVault // Flagged special region, denser content
)

// String returns the string representation of a RoomType
func (r RoomType) String() string {
	switch r {
	case RoomPlain:
		return "plain"
	case RoomLit:
		return "lit"
	case RoomCross:
		return "cross"
	case RoomPillared:
		return "pillared"
	case RoomVault:
		return "vault"
	default:
		return "unknown"
	}
}

// Point is a tile coordinate
type Point struct {
	X, Y int
}

// Room is a generation-time descriptor. Rooms are plain value records in
// a list; the grid stores flags, not references back into the list.
type Room struct {
	X, Y          int // Top-left corner of the bounding box
	Width, Height int
	Type          RoomType
}

// Center returns the room's center point
func (r Room) Center() Point {
	return Point{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// overlaps reports whether two bounding boxes, each grown by margin,
// intersect
func (r Room) overlaps(other Room, margin int) bool {
	return r.X-margin < other.X+other.Width &&
		other.X-margin < r.X+r.Width &&
		r.Y-margin < other.Y+other.Height &&
		other.Y-margin < r.Y+r.Height
}

// DungeonLevel is the aggregate generation output. The caller owns it
// exclusively once Generate returns.
type DungeonLevel struct {
	Width  int
	Height int
	Depth  int
	Grid   *grid.Level
	Rooms  []Room

	UpStairs   []Point
	DownStairs []Point

	// Rating is the scalar danger score, accumulated from depth, vaults
	// and special-feature density
	Rating int
}
