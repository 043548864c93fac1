// Package device opens the LED output: an nrzled encoder on SPI, or the
// console when no SPI port is available.
package device

import (
	"errors"
	"fmt"
	"image"
	"io"

	"github.com/rs/zerolog/log"
	"periph.io/x/conn/v3/display"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/devices/v3/nrzled"
	"periph.io/x/extra/devices/screen"
	"periph.io/x/host/v3"

	"github.com/coreman2200/neomatrix/internal/config"
	"github.com/coreman2200/neomatrix/neocolor"
)

// DefaultFreq is 800kHz NRZ encoded at 3 SPI bits per LED bit, plus headroom.
const DefaultFreq = ((800 * 3) + 100) * physic.KiloHertz

// Device is the LED sink. Each Write is one full frame of Channels bytes per
// pixel.
type Device struct {
	name      string
	w         io.Writer
	drawer    display.Drawer
	port      io.Closer
	simulated bool
}

func (d *Device) Write(p []byte) (int, error) { return d.w.Write(p) }

// Close blanks the LEDs and releases the port.
func (d *Device) Close() error {
	var errs []error
	if err := d.drawer.Halt(); err != nil {
		errs = append(errs, fmt.Errorf("halt: %w", err))
	}
	if d.port != nil {
		if err := d.port.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close port: %w", err))
		}
	}
	return errors.Join(errs...)
}

func (d *Device) String() string { return d.name }

// Simulated reports whether frames go to the console instead of LEDs.
func (d *Device) Simulated() bool { return d.simulated }

// Open returns the device described by cfg for count pixels. A "spi" driver
// that cannot find its port falls back to the console.
func Open(cfg *config.Config, count int) (*Device, error) {
	channels := cfg.Channels()
	if cfg.Driver != "spi" {
		return NewConsole(count, channels), nil
	}
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("host init: %w", err)
	}
	p, err := spireg.Open(cfg.SPI.Port)
	if err != nil {
		log.Warn().Err(err).Str("port", cfg.SPI.Port).Msg("no SPI port, printing at the console")
		return NewConsole(count, channels), nil
	}
	freq := DefaultFreq
	if cfg.SPI.FreqKHz > 0 {
		freq = physic.Frequency(cfg.SPI.FreqKHz) * physic.KiloHertz
	}
	d, err := NewNRZ(p, count, channels, freq)
	if err != nil {
		p.Close()
		return nil, err
	}
	return d, nil
}

// NewNRZ drives WS2812 style LEDs over p. The LEDs are blanked before
// returning.
func NewNRZ(p spi.PortCloser, count, channels int, freq physic.Frequency) (*Device, error) {
	d, err := nrzled.NewSPI(p, &nrzled.Opts{
		NumPixels: count,
		Channels:  channels,
		Freq:      freq,
	})
	if err != nil {
		return nil, fmt.Errorf("nrzled: %w", err)
	}
	if err := d.Halt(); err != nil {
		return nil, fmt.Errorf("nrzled halt: %w", err)
	}
	log.Info().Str("dev", d.String()).Int("pixels", count).Int("channels", channels).Msg("nrzled ready")
	return &Device{name: d.String(), w: d, drawer: d, port: p}, nil
}

// NewConsole prints frames as a single row of ANSI colored cells.
func NewConsole(count, channels int) *Device {
	s := screen.New(count)
	d := &Device{name: s.String(), w: s, drawer: s, simulated: true}
	if channels == 4 {
		d.w = &DrawerWriter{D: s}
	}
	return d
}

// DrawerWriter adapts a display.Drawer to io.Writer for RGBW frames. Bytes
// are packed 4 byte pixels laid out left to right on the drawer's first row,
// with white folded into RGB.
type DrawerWriter struct {
	D   display.Drawer
	img *image.NRGBA
}

func (w *DrawerWriter) Write(p []byte) (int, error) {
	if len(p)%4 != 0 {
		return 0, fmt.Errorf("drawer writer: %d bytes is not a multiple of 4", len(p))
	}
	n := len(p) / 4
	if w.img == nil || w.img.Rect.Dx() != n {
		w.img = image.NewNRGBA(image.Rect(0, 0, n, 1))
	}
	for i := 0; i < n; i++ {
		px := p[i*4 : (i+1)*4]
		w.img.SetNRGBA(i, 0, neocolor.RGBWModel.NRGBA(neocolor.RGBW{R: px[0], G: px[1], B: px[2], W: px[3]}))
	}
	if err := w.D.Draw(w.D.Bounds(), w.img, image.Point{}); err != nil {
		return 0, err
	}
	return len(p), nil
}
