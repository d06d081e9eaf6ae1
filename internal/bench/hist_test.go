package bench

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTimingHistMean(t *testing.T) {
	h := newTimingHist()
	h.Record(10 * time.Millisecond)
	h.Record(20 * time.Millisecond)
	h.Record(30 * time.Millisecond)

	assert.InDelta(t, 20.0, h.MeanMs(), 0.1)
	assert.InDelta(t, 30.0, h.MaxMs(), 0.1)
}

func TestTimingHistClampsSubMicrosecond(t *testing.T) {
	h := newTimingHist()
	h.Record(0)
	h.Record(500 * time.Nanosecond)

	assert.InDelta(t, 0.001, h.MeanMs(), 0.0005)
}
