package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/coreman2200/neomatrix/layout"
)

type Panel struct {
	Width   int    `yaml:"width"`
	Height  int    `yaml:"height"`
	Origin  string `yaml:"origin"` // top-left | top-right | bottom-left | bottom-right
	Columns bool   `yaml:"columns"`
	Zigzag  bool   `yaml:"zigzag"`
}

type Tiles struct {
	X       int    `yaml:"x"`
	Y       int    `yaml:"y"`
	Origin  string `yaml:"origin"`
	Columns bool   `yaml:"columns"`
	Zigzag  bool   `yaml:"zigzag"`
}

type Power struct {
	WhiteCap float64 `yaml:"white_cap"` // per-LED channel sum cap 0..1, 0 = off
}

type SPI struct {
	Port    string `yaml:"port"`     // spireg name, "" = first available
	FreqKHz int    `yaml:"freq_khz"` // e.g. 2500
}

type Preview struct {
	Addr string `yaml:"addr"` // e.g. :8080, empty disables
}

type Config struct {
	Driver     string  `yaml:"driver"` // "spi" | "sim"
	Color      string  `yaml:"color"`  // "rgb" | "rgbw"
	Brightness float64 `yaml:"brightness"`
	FPS        int     `yaml:"fps"`
	Rotation   int     `yaml:"rotation"` // degrees

	Panel Panel `yaml:"panel"`
	Tiles Tiles `yaml:"tiles,omitempty"`

	Power   Power   `yaml:"power,omitempty"`
	SPI     SPI     `yaml:"spi,omitempty"`
	Preview Preview `yaml:"preview,omitempty"`

	Pattern string `yaml:"pattern"`
	Text    string `yaml:"text,omitempty"`
}

// Default is an 8x8 serpentine RGB matrix on the console.
func Default() Config {
	return Config{
		Driver:     "sim",
		Color:      "rgb",
		Brightness: 0.5,
		FPS:        30,
		Panel:      Panel{Width: 8, Height: 8, Zigzag: true},
		Tiles:      Tiles{X: 1, Y: 1},
		SPI:        SPI{FreqKHz: 2500},
		Pattern:    "rainbow",
	}
}

func Load(path string) (*Config, error) {
	c := Default()
	if err := LoadInto(path, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// LoadInto reads path over c. Keys missing from the file keep c's values,
// so flags written into c first are overridden only where the file says so.
func LoadInto(path string, c *Config) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(b, c); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

func Save(path string, c *Config) error {
	b, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0644)
}

func (c *Config) Validate() error {
	var errs []error
	switch c.Driver {
	case "spi", "sim":
	default:
		errs = append(errs, fmt.Errorf("unknown driver %q", c.Driver))
	}
	switch c.Color {
	case "rgb", "rgbw":
	default:
		errs = append(errs, fmt.Errorf("unknown color model %q", c.Color))
	}
	if c.Panel.Width <= 0 || c.Panel.Height <= 0 {
		errs = append(errs, fmt.Errorf("invalid panel size %dx%d", c.Panel.Width, c.Panel.Height))
	}
	if c.Tiles.X < 0 || c.Tiles.Y < 0 {
		errs = append(errs, fmt.Errorf("invalid tile grid %dx%d", c.Tiles.X, c.Tiles.Y))
	}
	if c.Brightness < 0 || c.Brightness > 1 {
		errs = append(errs, fmt.Errorf("brightness %v out of range 0..1", c.Brightness))
	}
	if c.Power.WhiteCap < 0 || c.Power.WhiteCap > 1 {
		errs = append(errs, fmt.Errorf("white cap %v out of range 0..1", c.Power.WhiteCap))
	}
	if _, err := layout.RotationFromDegrees(c.Rotation); err != nil {
		errs = append(errs, err)
	}
	if _, err := layout.ParseCorner(c.Panel.Origin); err != nil {
		errs = append(errs, fmt.Errorf("panel: %w", err))
	}
	if _, err := layout.ParseCorner(c.Tiles.Origin); err != nil {
		errs = append(errs, fmt.Errorf("tiles: %w", err))
	}
	return errors.Join(errs...)
}

// Channels is the number of bytes per LED for the configured color model.
func (c *Config) Channels() int {
	if c.Color == "rgbw" {
		return 4
	}
	return 3
}

func (c *Config) tiles() (x, y int) {
	x, y = c.Tiles.X, c.Tiles.Y
	if x <= 0 {
		x = 1
	}
	if y <= 0 {
		y = 1
	}
	return x, y
}

// Dim is the full canvas size across all tiles.
func (c *Config) Dim() layout.Dim {
	tx, ty := c.tiles()
	return layout.Dim{X: c.Panel.Width * tx, Y: c.Panel.Height * ty}
}

// Remapper builds the wiring described by the panel and tile sections.
// Call Validate first; unknown corners fall back to top-left here.
func (c *Config) Remapper() layout.Remapper {
	po, _ := layout.ParseCorner(c.Panel.Origin)
	panel := layout.Panel{
		Dim:     layout.Dim{X: c.Panel.Width, Y: c.Panel.Height},
		Origin:  po,
		Columns: c.Panel.Columns,
		Zigzag:  c.Panel.Zigzag,
	}
	tx, ty := c.tiles()
	if tx == 1 && ty == 1 {
		return panel
	}
	to, _ := layout.ParseCorner(c.Tiles.Origin)
	return layout.Tiled{
		Panel: panel,
		Tiles: layout.Panel{
			Dim:     layout.Dim{X: tx, Y: ty},
			Origin:  to,
			Columns: c.Tiles.Columns,
			Zigzag:  c.Tiles.Zigzag,
		},
	}
}

func (c *Config) LayoutRotation() layout.Rotation {
	r, _ := layout.RotationFromDegrees(c.Rotation)
	return r
}
