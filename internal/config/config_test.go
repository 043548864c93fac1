package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coreman2200/neomatrix/layout"
)

const sample = `
driver: spi
color: rgbw
brightness: 0.25
fps: 50
rotation: 270
panel:
  width: 16
  height: 8
  origin: bottom-left
  zigzag: true
tiles:
  x: 2
  y: 1
spi:
  port: SPI0.0
  freq_khz: 2400
pattern: text
text: hello
`

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0644))

	c, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, c.Validate())

	assert.Equal(t, "spi", c.Driver)
	assert.Equal(t, 4, c.Channels())
	assert.Equal(t, layout.Rotate270, c.LayoutRotation())
	assert.Equal(t, layout.Dim{X: 32, Y: 8}, c.Dim())
	assert.Equal(t, "SPI0.0", c.SPI.Port)
	assert.Equal(t, 2400, c.SPI.FreqKHz)
	// unset keys keep their defaults
	assert.Equal(t, "", c.Preview.Addr)

	r, ok := c.Remapper().(layout.Tiled)
	require.True(t, ok)
	assert.Equal(t, layout.BottomLeft, r.Panel.Origin)
	assert.Equal(t, layout.Dim{X: 2, Y: 1}, r.Tiles.Dim)
}

func TestLoadIntoKeepsUnsetKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("fps: 60\n"), 0644))

	c := Default()
	c.Pattern = "text"
	c.FPS = 10
	require.NoError(t, LoadInto(path, &c))
	assert.Equal(t, 60, c.FPS)
	assert.Equal(t, "text", c.Pattern)
}

func TestLoadBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("panel: [1, 2"), 0644))
	_, err := Load(path)
	assert.ErrorContains(t, err, "parse")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	c := Default()
	c.Text = "round trip"
	require.NoError(t, Save(path, &c))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, c, *got)
}

func TestDefaultIsValidSinglePanel(t *testing.T) {
	c := Default()
	require.NoError(t, c.Validate())
	assert.Equal(t, 3, c.Channels())
	p, ok := c.Remapper().(layout.Panel)
	require.True(t, ok)
	assert.Equal(t, layout.Serpentine(layout.Dim{X: 8, Y: 8}), p)
}

func TestValidate(t *testing.T) {
	c := Default()
	c.Driver = "pwm"
	c.Color = "grb"
	c.Rotation = 45
	c.Panel.Width = 0
	c.Panel.Origin = "center"
	c.Brightness = 3

	err := c.Validate()
	require.Error(t, err)
	for _, want := range []string{"pwm", "grb", "45", "0x8", "center", "brightness"} {
		assert.Contains(t, err.Error(), want)
	}
}
