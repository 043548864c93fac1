package layout

import (
	"fmt"
	"strconv"
)

// Rotation is a clockwise quarter-turn count applied to the logical canvas.
type Rotation uint8

const (
	Rotate0 Rotation = iota
	Rotate90
	Rotate180
	Rotate270
)

// RotationFromDegrees accepts 0, 90, 180 or 270 (negative values and full
// turns are normalized).
func RotationFromDegrees(deg int) (Rotation, error) {
	d := ((deg % 360) + 360) % 360
	if d%90 != 0 {
		return Rotate0, fmt.Errorf("rotation must be a multiple of 90 degrees, got %d", deg)
	}
	return Rotation(d / 90), nil
}

func (r Rotation) Degrees() int { return int(r&3) * 90 }

func (r Rotation) String() string { return strconv.Itoa(r.Degrees()) }

// Visible returns the canvas extent seen by callers under r: width and height
// swap for quarter turns.
func (r Rotation) Visible(phys Dim) Dim {
	if r&1 == 1 {
		return Dim{X: phys.Y, Y: phys.X}
	}
	return phys
}

// Apply rotates an in-bounds logical point into physical panel coordinates.
// It does no bounds checking; use Map for untrusted input.
func (r Rotation) Apply(x, y int, phys Dim) (col, row int) {
	switch r & 3 {
	case Rotate90:
		return phys.X - 1 - y, x
	case Rotate180:
		return phys.X - 1 - x, phys.Y - 1 - y
	case Rotate270:
		return y, phys.Y - 1 - x
	}
	return x, y
}

// Map converts a logical point into physical panel coordinates. ok is false
// when the point lies outside the visible canvas; no rotation math runs then.
func Map(x, y int, rot Rotation, phys Dim) (col, row int, ok bool) {
	return MapVisible(x, y, rot.Visible(phys), rot, phys)
}

// MapVisible is Map with the visible extent supplied by the caller, for hosts
// that track their own rotated width and height.
func MapVisible(x, y int, vis Dim, rot Rotation, phys Dim) (col, row int, ok bool) {
	if x < 0 || y < 0 || x >= vis.X || y >= vis.Y {
		return 0, 0, false
	}
	col, row = rot.Apply(x, y, phys)
	return col, row, true
}
