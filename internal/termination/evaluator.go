// Package termination implements the stability and landing checks that end
// an episode.
package termination

import (
	"fmt"
	"math"

	"github.com/san-kum/boosterenv/internal/config"
	"github.com/san-kum/boosterenv/internal/sim"
)

// Evaluator checks a state against the configured bounds. Landing criteria
// apply only within GroundTolerance of the pad; stability bounds apply at
// every step.
type Evaluator struct {
	limits   config.Limits
	maxSteps int
}

func NewEvaluator(cfg *config.EnvConfig) *Evaluator {
	return &Evaluator{limits: cfg.Limits, maxSteps: cfg.MaxSteps}
}

// Evaluate returns the verdict for the given state and step count. Checks
// run in priority order; the first match wins.
func (e *Evaluator) Evaluate(s sim.State, step int) sim.Verdict {
	l := e.limits

	if s.Y <= l.GroundTolerance {
		if -s.VY > l.LandingVy {
			return terminated(sim.OutcomeCrashVelocity,
				fmt.Sprintf("landing velocity %.2f m/s exceeds %.2f", -s.VY, l.LandingVy))
		}
		if math.Abs(s.VX) > l.LandingVx {
			return terminated(sim.OutcomeCrashLateral,
				fmt.Sprintf("lateral velocity %.2f m/s exceeds %.2f", math.Abs(s.VX), l.LandingVx))
		}
		if math.Abs(s.Alpha) > l.LandingTilt {
			return terminated(sim.OutcomeCrashTilt,
				fmt.Sprintf("tilt %.3f rad exceeds %.3f", math.Abs(s.Alpha), l.LandingTilt))
		}
		if math.Abs(s.X) > l.PadRadius {
			return terminated(sim.OutcomeMissedPad,
				fmt.Sprintf("touchdown %.1f m from pad center, radius %.1f", math.Abs(s.X), l.PadRadius))
		}
		return terminated(sim.OutcomeLanded, "soft landing on pad")
	}

	if math.Abs(s.X) > l.BoundX || s.Y > l.BoundY {
		return terminated(sim.OutcomeOutOfBounds,
			fmt.Sprintf("position (%.1f, %.1f) outside flight envelope", s.X, s.Y))
	}
	if math.Abs(s.W) > l.MaxAngVel {
		return terminated(sim.OutcomeSpinOut,
			fmt.Sprintf("angular velocity %.2f rad/s exceeds %.2f", math.Abs(s.W), l.MaxAngVel))
	}

	if step >= e.maxSteps {
		return sim.Verdict{Truncated: true, Reason: fmt.Sprintf("step limit %d reached", e.maxSteps)}
	}

	return sim.Verdict{}
}

func terminated(o sim.Outcome, reason string) sim.Verdict {
	return sim.Verdict{Terminated: true, Outcome: o, Reason: reason}
}
