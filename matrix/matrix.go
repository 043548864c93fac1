// Package matrix lets 2-D drawing code address an LED matrix built from
// addressable strips.
//
// A Matrix owns the canvas geometry, the rotation, an optional Remapper and a
// color Translator. Drawing calls pass through the coordinate mapper and the
// translator and end as single index writes on a Bus, the strip driver.
//
// Matrix is not safe for concurrent use.
package matrix

import (
	"image"

	"github.com/rs/zerolog/log"

	"github.com/coreman2200/neomatrix/layout"
	"github.com/coreman2200/neomatrix/neocolor"
)

// Bus is the strip driver a Matrix writes to.
type Bus[C comparable] interface {
	// SetPixelColor stores c at linear index i. Implementations drop
	// indices outside [0, PixelCount()).
	SetPixelColor(i int, c C)
	PixelCount() int
}

// Shower is implemented by buses that latch written pixels onto the LEDs.
type Shower interface {
	Show() error
}

type Matrix[C comparable] struct {
	phys     layout.Dim
	rotation layout.Rotation
	remap    layout.Remapper
	colors   *neocolor.Translator[C]
	bus      Bus[C]
}

// New returns a Matrix for a width x height canvas (unrotated) over bus.
func New[C comparable](width, height int, bus Bus[C], model neocolor.Model[C]) *Matrix[C] {
	return &Matrix[C]{
		phys:   layout.Dim{X: width, Y: height},
		colors: neocolor.NewTranslator(model),
		bus:    bus,
	}
}

// DrawPixel writes c at logical (x, y). Points outside the visible canvas
// are ignored.
func (m *Matrix[C]) DrawPixel(x, y int16, c uint16) {
	col, row, ok := layout.Map(int(x), int(y), m.rotation, m.phys)
	if !ok {
		return
	}
	m.bus.SetPixelColor(layout.Index(m.remap, col, row, m.phys), m.colors.Translate(c))
}

// FillScreen writes c to every pixel of the bus. The color is translated once.
func (m *Matrix[C]) FillScreen(c uint16) {
	v := m.colors.Translate(c)
	n := m.bus.PixelCount()
	for i := 0; i < n; i++ {
		m.bus.SetPixelColor(i, v)
	}
}

// Clear turns every pixel off, unless pass-through is active.
func (m *Matrix[C]) Clear() { m.FillScreen(0) }

// SetPassThrough makes every following draw write c verbatim, skipping the
// 565 conversion and gamma. It stays active until ClearPassThrough.
func (m *Matrix[C]) SetPassThrough(c C) {
	m.colors.SetPassThrough(c)
	log.Debug().Interface("color", c).Msg("pass-through set")
}

// SetPassThroughPacked is SetPassThrough from packed 0x00RRGGBB. The top
// byte is ignored; use SetPassThrough for white on RGBW strips.
func (m *Matrix[C]) SetPassThroughPacked(v uint32) {
	m.colors.SetPassThroughPacked(v)
	log.Debug().Uint32("color", v).Msg("pass-through set")
}

func (m *Matrix[C]) ClearPassThrough() {
	m.colors.ClearPassThrough()
}

// SetRemapper replaces the coordinate to index strategy. nil restores the
// default row-major order.
func (m *Matrix[C]) SetRemapper(r layout.Remapper) {
	m.remap = r
	log.Debug().Bool("custom", r != nil).Msg("remapper set")
}

// SetRemapFunc is SetRemapper for a plain function. A nil fn restores the
// default.
func (m *Matrix[C]) SetRemapFunc(fn func(col, row int) int) {
	if fn == nil {
		m.SetRemapper(nil)
		return
	}
	m.SetRemapper(layout.RemapFunc(fn))
}

// Color quantizes 8-bit channels to the 565 format DrawPixel takes.
func (m *Matrix[C]) Color(r, g, b uint8) uint16 { return neocolor.Quantize(r, g, b) }

// ExpandColor returns the gamma corrected 0x00RRGGBB for a 565 color.
func (m *Matrix[C]) ExpandColor(c uint16) uint32 { return neocolor.Expand(c) }

func (m *Matrix[C]) PixelCount() int { return m.bus.PixelCount() }

// Bounds is the visible canvas under the current rotation.
func (m *Matrix[C]) Bounds() image.Rectangle {
	v := m.rotation.Visible(m.phys)
	return image.Rect(0, 0, v.X, v.Y)
}

// Dim is the unrotated canvas size.
func (m *Matrix[C]) Dim() layout.Dim { return m.phys }

func (m *Matrix[C]) Model() neocolor.Model[C] { return m.colors.Model() }
