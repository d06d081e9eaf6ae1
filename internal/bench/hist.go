package bench

import (
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
)

// timingHist accumulates repeat measurements of one phase in microseconds.
type timingHist struct {
	hist *hdrhistogram.Histogram
}

func newTimingHist() *timingHist {
	// 1us to 10min, 3 significant figures
	return &timingHist{hist: hdrhistogram.New(1, int64(10*time.Minute/time.Microsecond), 3)}
}

func (h *timingHist) Record(d time.Duration) {
	v := d.Microseconds()
	if v < 1 {
		v = 1
	}
	h.hist.RecordValue(v)
}

// MeanMs returns the mean of the recorded repeats in milliseconds.
func (h *timingHist) MeanMs() float64 {
	return h.hist.Mean() / 1000.0
}

// MaxMs returns the worst repeat in milliseconds.
func (h *timingHist) MaxMs() float64 {
	return float64(h.hist.Max()) / 1000.0
}
