package metrics

import (
	"math"

	"github.com/san-kum/boosterenv/internal/sim"
)

// ControlEffort is the mean absolute actuation per step across all three
// control channels.
type ControlEffort struct {
	name    string
	sum     float64
	samples int
}

func NewControlEffort() *ControlEffort {
	return &ControlEffort{name: "control_effort"}
}

func (c *ControlEffort) Name() string { return c.name }

func (c *ControlEffort) Observe(s sim.State, a sim.Action, step int) {
	c.sum += math.Abs(a.Main) + math.Abs(a.Side) + math.Abs(a.Gimbal)
	c.samples++
}

func (c *ControlEffort) Value() float64 {
	if c.samples == 0 {
		return 0
	}
	return c.sum / float64(c.samples)
}

func (c *ControlEffort) Reset() {
	c.sum = 0
	c.samples = 0
}
