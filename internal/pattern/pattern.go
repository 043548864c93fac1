// Package pattern draws calibration and demo frames on a matrix.
package pattern

import (
	"fmt"
	"image/color"
	"math"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/ojrac/opensimplex-go"
	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
)

// Surface is what patterns draw on; matrix.Matrix satisfies it.
type Surface interface {
	drivers.Displayer
	DrawPixel(x, y int16, c uint16)
	FillScreen(c uint16)
}

type Kind string

const (
	None        Kind = ""
	IndexSweep  Kind = "index_sweep"
	RGBChannels Kind = "rgb_channels"
	Rainbow     Kind = "rainbow"
	Noise       Kind = "noise"
	Text        Kind = "text"
)

var kinds = []Kind{IndexSweep, RGBChannels, Rainbow, Noise, Text}

func ParseKind(s string) (Kind, error) {
	for _, k := range kinds {
		if string(k) == s {
			return k, nil
		}
	}
	return None, fmt.Errorf("unknown pattern %q", s)
}

type Plan struct {
	Kind Kind
	Text string
	Seed int64
}

type Runner struct {
	plan  Plan
	step  int
	noise opensimplex.Noise
}

func NewRunner(plan Plan) *Runner {
	r := &Runner{plan: plan}
	if plan.Kind == Noise {
		r.noise = opensimplex.NewNormalized(plan.Seed)
	}
	return r
}

func (r *Runner) Kind() Kind { return r.plan.Kind }

// Step draws the next frame on s; returns false when complete. Only
// IndexSweep finishes, the others loop forever.
func (r *Runner) Step(s Surface, elapsed time.Duration) bool {
	w, h := s.Size()
	switch r.plan.Kind {
	case IndexSweep:
		if r.step >= int(w)*int(h) {
			return false
		}
		s.FillScreen(0)
		s.DrawPixel(int16(r.step%int(w)), int16(r.step/int(w)), 0xFFFF)
	case RGBChannels:
		s.FillScreen([3]uint16{0xF800, 0x07E0, 0x001F}[r.step%3])
	case Rainbow:
		shift := elapsed.Seconds() * 60
		span := float64(w) + float64(h)
		for y := int16(0); y < h; y++ {
			for x := int16(0); x < w; x++ {
				hue := math.Mod(float64(x+y)/span*360+shift, 360)
				setHSV(s, x, y, hue, 1)
			}
		}
	case Noise:
		t := elapsed.Seconds() / 4
		for y := int16(0); y < h; y++ {
			for x := int16(0); x < w; x++ {
				v := r.noise.Eval3(float64(x)/4, float64(y)/4, t)
				setHSV(s, x, y, 240+v*120, v)
			}
		}
	case Text:
		if r.plan.Text == "" {
			return false
		}
		_, width := tinyfont.LineWidth(&tinyfont.TomThumb, r.plan.Text)
		period := int(w) + int(width)
		x := int16(int(w) - r.step%period)
		// TomThumb glyphs are 5 rows above the baseline
		y := (h-6)/2 + 5
		s.FillScreen(0)
		tinyfont.WriteLine(s, &tinyfont.TomThumb, x, y, r.plan.Text, color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF})
	default:
		return false
	}
	r.step++
	return true
}

func setHSV(s Surface, x, y int16, hue, v float64) {
	cr, cg, cb := colorful.Hsv(math.Mod(hue, 360), 1, v).RGB255()
	s.SetPixel(x, y, color.RGBA{R: cr, G: cg, B: cb, A: 0xFF})
}
