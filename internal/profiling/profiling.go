// Package profiling records per-frame wall-clock durations and renders
// them as a histogram on exit, for spotting frames that blew past the
// 60Hz budget.
package profiling

import (
	"fmt"
	"time"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// Recorder accumulates one duration per frame.
type Recorder struct {
	last    time.Time
	samples []time.Duration
}

// NewRecorder returns a Recorder ready to have Tick called once per frame.
func NewRecorder() *Recorder {
	return &Recorder{last: time.Now()}
}

// Tick records the elapsed time since the previous Tick (or since
// NewRecorder, for the first frame).
func (r *Recorder) Tick() {
	now := time.Now()
	r.samples = append(r.samples, now.Sub(r.last))
	r.last = now
}

// SavePNG renders a histogram of recorded frame times, in milliseconds, to
// path.
func (r *Recorder) SavePNG(path string) error {
	if len(r.samples) == 0 {
		return fmt.Errorf("profiling: no frames recorded")
	}

	values := make(plotter.Values, len(r.samples))
	for i, d := range r.samples {
		values[i] = float64(d.Microseconds()) / 1000.0
	}

	p := plot.New()
	p.Title.Text = "Frame Time"
	p.X.Label.Text = "milliseconds"
	p.Y.Label.Text = "frames"

	hist, err := plotter.NewHist(values, 50)
	if err != nil {
		return fmt.Errorf("profiling: building histogram: %w", err)
	}
	p.Add(hist)

	if err := p.Save(8*vg.Inch, 5*vg.Inch, path); err != nil {
		return fmt.Errorf("profiling: saving %s: %w", path, err)
	}
	return nil
}
