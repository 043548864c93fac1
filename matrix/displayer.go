package matrix

import (
	"errors"
	"image/color"

	"github.com/rs/zerolog/log"
	"tinygo.org/x/drivers"

	"github.com/coreman2200/neomatrix/layout"
	"github.com/coreman2200/neomatrix/neocolor"
)

// ErrUnsupportedRotation is returned for mirrored rotations.
var ErrUnsupportedRotation = errors.New("matrix: unsupported rotation")

// Size returns the visible canvas size under the current rotation.
func (m *Matrix[C]) Size() (x, y int16) {
	v := m.rotation.Visible(m.phys)
	return int16(v.X), int16(v.Y)
}

// SetPixel draws through the same 565 path as DrawPixel, so drawing libraries
// written against drivers.Displayer get gamma correction and pass-through.
func (m *Matrix[C]) SetPixel(x, y int16, c color.RGBA) {
	m.DrawPixel(x, y, neocolor.Quantize(c.R, c.G, c.B))
}

// Display latches the written pixels if the bus supports it.
func (m *Matrix[C]) Display() error {
	if s, ok := m.bus.(Shower); ok {
		return s.Show()
	}
	return nil
}

// SetRotation changes the orientation used by the next draw call. Pixels
// already written are not moved.
func (m *Matrix[C]) SetRotation(r drivers.Rotation) error {
	switch r {
	case drivers.Rotation0, drivers.Rotation90, drivers.Rotation180, drivers.Rotation270:
	default:
		return ErrUnsupportedRotation
	}
	m.rotation = layout.Rotation(r)
	log.Debug().Stringer("rotation", m.rotation).Msg("rotation set")
	return nil
}

func (m *Matrix[C]) Rotation() drivers.Rotation {
	return drivers.Rotation(m.rotation)
}

// SetLayoutRotation is SetRotation for a layout.Rotation. Whole turns are
// dropped, so 4 is Rotate0.
func (m *Matrix[C]) SetLayoutRotation(r layout.Rotation) {
	m.rotation = r & 3
	log.Debug().Stringer("rotation", m.rotation).Msg("rotation set")
}

var _ drivers.Displayer = (*Matrix[neocolor.RGB])(nil)
