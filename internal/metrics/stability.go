package metrics

import (
	"math"

	"github.com/san-kum/boosterenv/internal/sim"
)

// Stability is the fraction of steps with tilt within the threshold.
type Stability struct {
	name       string
	threshold  float64
	violations int
	samples    int
}

func NewStability(threshold float64) *Stability {
	return &Stability{name: "stability", threshold: threshold}
}

func (s *Stability) Name() string { return s.name }

func (s *Stability) Observe(st sim.State, a sim.Action, step int) {
	s.samples++
	if math.Abs(st.Alpha) > s.threshold {
		s.violations++
	}
}

func (s *Stability) Value() float64 {
	if s.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(s.violations)/float64(s.samples)
}

func (s *Stability) Reset() {
	s.violations = 0
	s.samples = 0
}

// FuelUsed tracks total fuel fraction burned over the episode.
type FuelUsed struct {
	name    string
	first   float64
	last    float64
	samples int
}

func NewFuelUsed() *FuelUsed {
	return &FuelUsed{name: "fuel_used"}
}

func (f *FuelUsed) Name() string { return f.name }

func (f *FuelUsed) Observe(s sim.State, a sim.Action, step int) {
	if f.samples == 0 {
		f.first = s.FuelRatio
	}
	f.last = s.FuelRatio
	f.samples++
}

func (f *FuelUsed) Value() float64 {
	if f.samples == 0 {
		return 0
	}
	return f.first - f.last
}

func (f *FuelUsed) Reset() {
	f.first = 0
	f.last = 0
	f.samples = 0
}
