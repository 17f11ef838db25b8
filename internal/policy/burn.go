package policy

import (
	"math"

	"github.com/san-kum/boosterenv/internal/sim"
)

// Burn is a suicide-burn descent: free-fall until the remaining altitude
// roughly equals the stopping distance at full thrust, then burn at full
// power while steering toward the pad.
type Burn struct {
	// ThrustAccel is the net full-power main engine acceleration, m/s^2.
	ThrustAccel float64
	Gravity     float64
}

func NewBurn(thrustAccel, gravity float64) *Burn {
	if thrustAccel == 0 {
		thrustAccel = 25.0
	}
	if gravity == 0 {
		gravity = 9.81
	}
	return &Burn{ThrustAccel: thrustAccel, Gravity: gravity}
}

func (b *Burn) Act(o sim.Observation, step int) sim.Action {
	y, vy := o[IxY], o[IxVY]

	a := sim.Action{Main: -1}

	if vy < 0 {
		net := b.ThrustAccel - b.Gravity
		if net > 0 {
			stopping := vy * vy / (2 * net)
			// 15% margin: burning early wastes fuel, burning late is fatal.
			if y <= stopping*1.15 {
				a.Main = 1
			}
		}
	}

	// Near the ground, feather the throttle instead of full burn.
	if y < 25 && vy > -4 {
		a.Main = clip(-vy/4, -1, 0.5)
	}

	a.Gimbal = clip(2.0*o[IxAlpha]+0.8*o[IxW], -1, 1)

	// Nudge toward the pad with the side thrusters when drifting away.
	drift := o[IxX] + 2.0*o[IxVX]
	if math.Abs(drift) > 8 {
		a.Side = clip(-drift/40, -1, 1)
		if math.Abs(a.Side) <= 0.5 {
			a.Side = math.Copysign(0.6, a.Side)
		}
	}

	return a
}
