package main

import (
	"context"
	"flag"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	metrics "github.com/rcrowley/go-metrics"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/coreman2200/neomatrix/internal/config"
	"github.com/coreman2200/neomatrix/internal/device"
	"github.com/coreman2200/neomatrix/internal/pattern"
	"github.com/coreman2200/neomatrix/internal/preview"
	"github.com/coreman2200/neomatrix/matrix"
	"github.com/coreman2200/neomatrix/neocolor"
	"github.com/coreman2200/neomatrix/strip"
)

func main() {
	def := config.Default()
	var (
		width      = flag.Int("width", def.Panel.Width, "panel width in LEDs")
		height     = flag.Int("height", def.Panel.Height, "panel height in LEDs")
		zigzag     = flag.Bool("zigzag", def.Panel.Zigzag, "serpentine wiring: every other row reversed")
		rotation   = flag.Int("rotation", 0, "rotation in degrees: 0, 90, 180 or 270")
		fps        = flag.Int("fps", def.FPS, "target frames per second")
		brightness = flag.Float64("brightness", def.Brightness, "global brightness 0..1")
		driver     = flag.String("driver", def.Driver, "driver: spi | sim")
		colorModel = flag.String("color", def.Color, "color model: rgb | rgbw")
		spiPort    = flag.String("spi", "", "SPI port name, empty for the first one found")
		pat        = flag.String("pattern", def.Pattern, "index_sweep | rgb_channels | rainbow | noise | text")
		text       = flag.String("text", "", "text for the text pattern")
		pass       = flag.String("pass", "", "pass-through color as 0xRRGGBB, drawn instead of every pixel")
		addr       = flag.String("addr", "", "preview HTTP listen address, e.g. :8080")
		configPath = flag.String("config", "config.yaml", "path to config.yaml")
		save       = flag.Bool("save", false, "write the effective config to -config and exit")
		debug      = flag.Bool("debug", false, "debug logging")
	)
	flag.Parse()

	// ---- Logging ----
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	// ---- Flags first, config.yaml overrides ----
	cfg := def
	cfg.Panel.Width, cfg.Panel.Height, cfg.Panel.Zigzag = *width, *height, *zigzag
	cfg.Rotation = *rotation
	cfg.FPS = *fps
	cfg.Brightness = *brightness
	cfg.Driver = *driver
	cfg.Color = *colorModel
	cfg.SPI.Port = *spiPort
	cfg.Pattern = *pat
	cfg.Text = *text
	cfg.Preview.Addr = *addr

	if *save {
		if err := config.Save(*configPath, &cfg); err != nil {
			log.Fatal().Err(err).Str("path", *configPath).Msg("save config")
		}
		log.Info().Str("path", *configPath).Msg("config saved")
		return
	}
	if err := config.LoadInto(*configPath, &cfg); err != nil {
		log.Warn().Err(err).Str("path", *configPath).Msg("config load failed; proceeding with flags")
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid config")
	}

	var passThrough *uint32
	if *pass != "" {
		v, err := strconv.ParseUint(*pass, 0, 32)
		if err != nil {
			log.Fatal().Err(err).Str("pass", *pass).Msg("bad pass-through color")
		}
		p := uint32(v)
		passThrough = &p
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var err error
	switch cfg.Color {
	case "rgbw":
		err = run(ctx, &cfg, neocolor.RGBWModel, passThrough)
	default:
		err = run(ctx, &cfg, neocolor.RGBModel, passThrough)
	}
	if err != nil {
		log.Fatal().Err(err).Msg("render loop stopped")
	}
	log.Info().Msg("shut down")
}

func run[C comparable](ctx context.Context, cfg *config.Config, model neocolor.Model[C], passThrough *uint32) error {
	kind, err := pattern.ParseKind(cfg.Pattern)
	if err != nil {
		return err
	}
	dim := cfg.Dim()

	dev, err := device.Open(cfg, dim.Count())
	if err != nil {
		return err
	}
	defer func() {
		if err := dev.Close(); err != nil {
			log.Warn().Err(err).Msg("device close")
		}
	}()

	timer := metrics.NewTimer()
	var out io.Writer = dev
	if cfg.Preview.Addr != "" {
		hub := preview.NewHub(preview.Topology{
			Width:    dim.X,
			Height:   dim.Y,
			Channels: model.Channels(),
			Rotation: cfg.Rotation,
			Driver:   dev.String(),
		})
		hub.Timer = timer
		out = io.MultiWriter(dev, hub)

		srv := &http.Server{
			Addr:         cfg.Preview.Addr,
			Handler:      hub.Routes(),
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		}
		go func() {
			log.Info().Str("addr", cfg.Preview.Addr).Msg("preview server starting")
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Error().Err(err).Msg("preview server crashed")
			}
		}()
		defer srv.Close()
	}

	bus := strip.NewStream(model, out, dim.Count())
	bus.SetBrightnessFloat(cfg.Brightness)
	bus.SetWhiteCap(cfg.Power.WhiteCap)

	m := matrix.New(dim.X, dim.Y, bus, model)
	m.SetRemapper(cfg.Remapper())
	m.SetLayoutRotation(cfg.LayoutRotation())
	if passThrough != nil {
		m.SetPassThroughPacked(*passThrough)
	}

	plan := pattern.Plan{Kind: kind, Text: cfg.Text, Seed: time.Now().UnixNano()}
	if plan.Text == "" {
		plan.Text = "neomatrix"
	}
	runner := pattern.NewRunner(plan)
	log.Info().
		Str("device", dev.String()).
		Int("width", dim.X).
		Int("height", dim.Y).
		Int("rotation", cfg.Rotation).
		Str("pattern", string(kind)).
		Msg("running")

	loop := device.Looper{
		FPS:   cfg.FPS,
		Timer: timer,
		Frame: func(elapsed time.Duration) error {
			if !runner.Step(m, elapsed) {
				log.Debug().Str("pattern", string(kind)).Msg("pattern complete, restarting")
				runner = pattern.NewRunner(plan)
				m.Clear()
			}
			return m.Display()
		},
	}
	err = loop.Run(ctx)
	m.Clear()
	_ = m.Display()
	return err
}
