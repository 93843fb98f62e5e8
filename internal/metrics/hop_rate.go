package metrics

import (
	"github.com/san-kum/randwalk/internal/sim"
	"github.com/san-kum/randwalk/internal/walker"
)

// HopRate is the fraction of ticks on which the walker left its cell,
// absorption included.
type HopRate struct {
	name    string
	hops    int
	samples int
}

func NewHopRate() *HopRate {
	return &HopRate{name: "hop_rate"}
}

func (h *HopRate) Name() string {
	return h.name
}

func (h *HopRate) Observe(s sim.Sample) {
	h.samples++
	if s.Outcome.Kind != walker.Stayed {
		h.hops++
	}
}

func (h *HopRate) Value() float64 {
	if h.samples == 0 {
		return 0
	}
	return float64(h.hops) / float64(h.samples)
}

func (h *HopRate) Reset() {
	h.hops = 0
	h.samples = 0
}
