package policy

import "github.com/san-kum/boosterenv/internal/sim"

// Hover holds vertical velocity near zero with a PID loop on Vy and keeps
// the booster upright with a proportional gimbal command.
type Hover struct {
	Kp, Ki, Kd float64

	integral float64
	prevErr  float64
	first    bool
}

func NewHover(kp, ki, kd float64) *Hover {
	if kp == 0 {
		kp = 0.8
	}
	if kd == 0 {
		kd = 0.2
	}
	return &Hover{Kp: kp, Ki: ki, Kd: kd, first: true}
}

func (h *Hover) Act(o sim.Observation, step int) sim.Action {
	err := -o[IxVY]

	var derivative float64
	if h.first {
		h.first = false
	} else {
		derivative = err - h.prevErr
	}
	h.integral += err
	h.prevErr = err

	u := h.Kp*err + h.Ki*h.integral + h.Kd*derivative

	a := sim.Action{Main: -1}
	if u > 0 {
		a.Main = clip(u, 0.01, 1)
	}

	// Upright attitude: counter tilt and spin with gimbal.
	a.Gimbal = clip(2.0*o[IxAlpha]+0.8*o[IxW], -1, 1)

	return a
}

func clip(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
