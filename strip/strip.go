// Package strip holds LED strip buses for matrix.Matrix.
package strip

import (
	"fmt"
	"io"
	"math"

	"github.com/coreman2200/neomatrix/neocolor"
)

// Buffer keeps pixels in memory. Useful headless and in tests.
type Buffer[C comparable] struct {
	pixels []C
}

func NewBuffer[C comparable](count int) *Buffer[C] {
	return &Buffer[C]{pixels: make([]C, count)}
}

// SetPixelColor drops indices outside the buffer.
func (b *Buffer[C]) SetPixelColor(i int, c C) {
	if i < 0 || i >= len(b.pixels) {
		return
	}
	b.pixels[i] = c
}

func (b *Buffer[C]) PixelCount() int { return len(b.pixels) }

func (b *Buffer[C]) Pixel(i int) C { return b.pixels[i] }

// Pixels returns the backing slice; it is not copied.
func (b *Buffer[C]) Pixels() []C { return b.pixels }

// Stream serializes pixels with a color model and writes the whole frame to
// an io.Writer on Show. The writer is usually the LED encoder, e.g. an
// nrzled device, optionally teed to a preview.
type Stream[C comparable] struct {
	model      neocolor.Model[C]
	w          io.Writer
	raw        []byte
	out        []byte
	brightness uint8
	whiteCap   float64
}

func NewStream[C comparable](m neocolor.Model[C], w io.Writer, count int) *Stream[C] {
	n := count * m.Channels()
	return &Stream[C]{
		model:      m,
		w:          w,
		raw:        make([]byte, n),
		out:        make([]byte, n),
		brightness: 255,
	}
}

func (s *Stream[C]) SetPixelColor(i int, c C) {
	ch := s.model.Channels()
	if i < 0 || (i+1)*ch > len(s.raw) {
		return
	}
	s.model.Put(s.raw[i*ch:(i+1)*ch], c)
}

func (s *Stream[C]) PixelCount() int { return len(s.raw) / s.model.Channels() }

// SetBrightness scales every channel by (b+1)/256 on Show, so 255 leaves
// pixels unchanged. Stored pixels are not touched, so lowering and raising
// brightness loses nothing.
func (s *Stream[C]) SetBrightness(b uint8) { s.brightness = b }

func (s *Stream[C]) Brightness() uint8 { return s.brightness }

// SetBrightnessFloat sets brightness from 0..1, clamped.
func (s *Stream[C]) SetBrightnessFloat(f float64) {
	s.brightness = uint8(math.Round(math.Max(0, math.Min(1, f)) * 255))
}

// SetWhiteCap limits each LED so the sum of its color channels stays under
// c*255*channels, scaling the LED down uniformly when over. Values outside
// (0,1) disable the cap.
func (s *Stream[C]) SetWhiteCap(c float64) { s.whiteCap = c }

// Frame returns the raw serialized frame before brightness; not copied.
func (s *Stream[C]) Frame() []byte { return s.raw }

// Show writes the current frame in a single Write call.
func (s *Stream[C]) Show() error {
	if s.brightness == 255 {
		copy(s.out, s.raw)
	} else {
		b := uint16(s.brightness)
		for i, v := range s.raw {
			s.out[i] = uint8(uint16(v) * (b + 1) >> 8)
		}
	}
	if s.whiteCap > 0 && s.whiteCap < 1 {
		applyWhiteCap(s.out, s.model.Channels(), s.whiteCap)
	}
	if _, err := s.w.Write(s.out); err != nil {
		return fmt.Errorf("strip write: %w", err)
	}
	return nil
}

func applyWhiteCap(frame []byte, ch int, whiteCap float64) {
	limit := whiteCap * float64(ch) * 255
	for i := 0; i+ch <= len(frame); i += ch {
		px := frame[i : i+ch]
		var sum float64
		for _, v := range px {
			sum += float64(v)
		}
		if sum <= limit {
			continue
		}
		scale := limit / sum
		for j, v := range px {
			px[j] = byte(math.Round(float64(v) * scale))
		}
	}
}
