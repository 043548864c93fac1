package neocolor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTranslatorExpandsWithGamma(t *testing.T) {
	tr := NewTranslator(RGBModel)
	assert.Equal(t, RGB{R: gamma5[16], G: gamma6[32], B: gamma5[16]}, tr.Translate(0x8410))

	_, on := tr.PassThrough()
	assert.False(t, on)
}

func TestTranslatorPassThrough(t *testing.T) {
	tr := NewTranslator(RGBWModel)
	want := RGBW{W: 0xFF}
	tr.SetPassThrough(want)

	for _, c := range []uint16{0x0000, 0xFFFF, 0xF800, 0x1234} {
		assert.Equal(t, want, tr.Translate(c))
	}

	got, on := tr.PassThrough()
	assert.True(t, on)
	assert.Equal(t, want, got)

	tr.ClearPassThrough()
	assert.Equal(t, RGBW{R: 0xFF, G: 0xFF, B: 0xFF}, tr.Translate(0xFFFF))
}

func TestTranslatorPassThroughPacked(t *testing.T) {
	tr := NewTranslator(RGBModel)
	tr.SetPassThroughPacked(0x00102030)

	// No gamma is applied to a pass-through value.
	assert.Equal(t, RGB{R: 0x10, G: 0x20, B: 0x30}, tr.Translate(0))
}
