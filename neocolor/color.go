// Package neocolor converts between the 16-bit RGB565 colors used by 2-D
// drawing code and the true-color values that addressable LED strips expect.
//
// Expansion goes through a fixed gamma table so that evenly spaced 565 values
// look evenly spaced on the LEDs. Quantization is plain truncation.
package neocolor

import "image/color"

const (
	redShift   = 11
	greenShift = 5
	redMask    = 0x1F
	greenMask  = 0x3F
	blueMask   = 0x1F
)

// Expand converts an RGB565 color to packed 0x00RRGGBB with gamma correction.
func Expand(c uint16) uint32 {
	r, g, b := Channels(c)
	return uint32(r)<<16 | uint32(g)<<8 | uint32(b)
}

// Channels returns the gamma corrected 8-bit channels of an RGB565 color.
func Channels(c uint16) (r, g, b uint8) {
	r = gamma5[(c>>redShift)&redMask]
	g = gamma6[(c>>greenShift)&greenMask]
	b = gamma5[c&blueMask]
	return r, g, b
}

// Quantize reduces 8-bit channels to RGB565 by truncating the low bits. There
// is no rounding and no inverse gamma, so Quantize does not undo Expand.
func Quantize(r, g, b uint8) uint16 {
	return uint16(r&0xF8)<<8 | uint16(g&0xFC)<<3 | uint16(b>>3)
}

// RGB is a native 3-channel strip color.
type RGB struct{ R, G, B uint8 }

// RGBW is a native 4-channel strip color with a dedicated white LED.
type RGBW struct{ R, G, B, W uint8 }

// Model describes a native strip color: how to build one from 8-bit channels,
// how many bytes it occupies on the wire and how to show it on screen.
type Model[C comparable] interface {
	FromRGB(r, g, b uint8) C
	// Channels is the number of bytes Put writes.
	Channels() int
	// Put serializes c into dst[:Channels()].
	Put(dst []byte, c C)
	NRGBA(c C) color.NRGBA
}

var (
	RGBModel  Model[RGB]  = rgbModel{}
	RGBWModel Model[RGBW] = rgbwModel{}
)

type rgbModel struct{}

func (rgbModel) FromRGB(r, g, b uint8) RGB { return RGB{R: r, G: g, B: b} }
func (rgbModel) Channels() int             { return 3 }

func (rgbModel) Put(dst []byte, c RGB) {
	dst[0], dst[1], dst[2] = c.R, c.G, c.B
}

func (rgbModel) NRGBA(c RGB) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: 0xFF}
}

type rgbwModel struct{}

// FromRGB leaves the white channel off; 565 input has no white component.
func (rgbwModel) FromRGB(r, g, b uint8) RGBW { return RGBW{R: r, G: g, B: b} }
func (rgbwModel) Channels() int              { return 4 }

func (rgbwModel) Put(dst []byte, c RGBW) {
	dst[0], dst[1], dst[2], dst[3] = c.R, c.G, c.B, c.W
}

// NRGBA folds the white LED into the color channels, saturating at 0xFF.
func (rgbwModel) NRGBA(c RGBW) color.NRGBA {
	return color.NRGBA{R: addSat(c.R, c.W), G: addSat(c.G, c.W), B: addSat(c.B, c.W), A: 0xFF}
}

func addSat(a, b uint8) uint8 {
	s := uint16(a) + uint16(b)
	if s > 0xFF {
		return 0xFF
	}
	return uint8(s)
}

// ExpandTo converts an RGB565 color to the native color of m, with gamma.
func ExpandTo[C comparable](m Model[C], c uint16) C {
	return m.FromRGB(Channels(c))
}

// Unpack builds a native color from packed 0x00RRGGBB. The top byte is
// ignored, so a white channel cannot be expressed this way.
func Unpack[C comparable](m Model[C], v uint32) C {
	return m.FromRGB(uint8(v>>16), uint8(v>>8), uint8(v))
}
