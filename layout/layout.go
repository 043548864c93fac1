// Package layout turns logical matrix coordinates into linear LED indices.
//
// Rotation is handled here; the coordinate to index step is a Remapper. The
// default is plain row-major order on a single panel. Serpentine wiring and
// tiled panels are expressed as Remappers too, so the default formula never
// has to guess how a particular build was wired.
package layout

import (
	"fmt"
	"strings"
)

type Dim struct{ X, Y int }

func (d Dim) Count() int { return d.X * d.Y }

// Remapper maps physical panel coordinates to a linear device index.
type Remapper interface {
	Index(col, row int) int
}

// RemapFunc adapts a plain function to Remapper.
type RemapFunc func(col, row int) int

func (f RemapFunc) Index(col, row int) int { return f(col, row) }

// Index resolves (col, row) with r, or row-major over phys when r is nil.
// The result is not range checked.
func Index(r Remapper, col, row int, phys Dim) int {
	if r != nil {
		return r.Index(col, row)
	}
	return row*phys.X + col
}

// RowMajor is the default single panel order written out as a Remapper.
type RowMajor struct{ Width int }

func (m RowMajor) Index(col, row int) int { return row*m.Width + col }

// Corner is the position of the first LED of a panel (or the first panel of a
// tile grid).
type Corner uint8

const (
	TopLeft Corner = iota
	TopRight
	BottomLeft
	BottomRight
)

var cornerNames = map[string]Corner{
	"top-left":     TopLeft,
	"top-right":    TopRight,
	"bottom-left":  BottomLeft,
	"bottom-right": BottomRight,
}

// ParseCorner accepts "top-left", "top-right", "bottom-left" or
// "bottom-right". The empty string is TopLeft.
func ParseCorner(s string) (Corner, error) {
	if s == "" {
		return TopLeft, nil
	}
	c, ok := cornerNames[strings.ToLower(s)]
	if !ok {
		return TopLeft, fmt.Errorf("unknown corner %q", s)
	}
	return c, nil
}

func (c Corner) String() string {
	for k, v := range cornerNames {
		if v == c {
			return k
		}
	}
	return fmt.Sprintf("corner(%d)", uint8(c))
}

func (c Corner) right() bool  { return c == TopRight || c == BottomRight }
func (c Corner) bottom() bool { return c == BottomLeft || c == BottomRight }

// Panel describes how a single matrix was wired: where the first LED sits,
// whether the strip runs along rows or columns, and whether every other line
// runs backwards (zigzag/serpentine) or all lines run the same way.
type Panel struct {
	Dim     Dim
	Origin  Corner
	Columns bool
	Zigzag  bool
}

// Serpentine is a row-wise zigzag panel starting top-left, the most common
// hand-built matrix.
func Serpentine(d Dim) Panel {
	return Panel{Dim: d, Zigzag: true}
}

func (p Panel) Count() int { return p.Dim.Count() }

// Index maps x,y -> linear LED index (0..N-1)
func (p Panel) Index(col, row int) int {
	x, y := col, row
	if p.Origin.right() {
		x = p.Dim.X - 1 - x
	}
	if p.Origin.bottom() {
		y = p.Dim.Y - 1 - y
	}

	major, minor, lineLen := y, x, p.Dim.X
	if p.Columns {
		major, minor, lineLen = x, y, p.Dim.Y
	}
	if p.Zigzag && major%2 == 1 {
		minor = lineLen - 1 - minor
	}
	return major*lineLen + minor
}

// Tiled is a grid of identical panels chained one after another. Tiles
// orders the panels themselves: its Dim is the grid size in panels.
type Tiled struct {
	Panel Panel
	Tiles Panel
}

func (t Tiled) Dim() Dim {
	return Dim{X: t.Panel.Dim.X * t.Tiles.Dim.X, Y: t.Panel.Dim.Y * t.Tiles.Dim.Y}
}

func (t Tiled) Count() int { return t.Panel.Count() * t.Tiles.Count() }

func (t Tiled) Index(col, row int) int {
	w, h := t.Panel.Dim.X, t.Panel.Dim.Y
	tile := t.Tiles.Index(col/w, row/h)
	return tile*t.Panel.Count() + t.Panel.Index(col%w, row%h)
}
