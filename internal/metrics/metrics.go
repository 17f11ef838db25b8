// Package metrics collects per-episode statistics during rollouts.
package metrics

import "github.com/san-kum/boosterenv/internal/sim"

type Metric interface {
	Name() string
	Observe(s sim.State, a sim.Action, step int)
	Value() float64
	Reset()
}

// Defaults returns the standard rollout metric set.
func Defaults(tiltThreshold float64) []Metric {
	return []Metric{
		NewControlEffort(),
		NewStability(tiltThreshold),
		NewFuelUsed(),
	}
}
