package device

import (
	"context"
	"time"

	metrics "github.com/rcrowley/go-metrics"
)

const DefaultFPS = 30

// Looper calls Frame at FPS until its context is done. The tick is shortened
// by the time the previous frame took so slow frames don't drift the rate.
type Looper struct {
	FPS   int
	Frame func(elapsed time.Duration) error

	// Timer, when set, records how long each Frame call took.
	Timer metrics.Timer
}

// Run blocks until ctx is cancelled, returning nil, or until Frame fails,
// returning its error.
func (l *Looper) Run(ctx context.Context) error {
	fps := l.FPS
	if fps <= 0 {
		fps = DefaultFPS
	}
	period := time.Second / time.Duration(fps)
	timer := time.NewTimer(0)
	defer timer.Stop()

	start := time.Now()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-timer.C:
			if ctx.Err() != nil {
				return nil
			}
		}
		t := time.Now()
		if err := l.Frame(t.Sub(start)); err != nil {
			return err
		}
		took := time.Since(t)
		if l.Timer != nil {
			l.Timer.Update(took)
		}
		next := period - took
		if next < 0 {
			next = 0
		}
		timer.Reset(next)
	}
}
