// Package policy provides scripted control policies for the booster
// environment. They stand in for the external trainer in rollouts,
// benchmarks and tests; none of them learn.
package policy

import (
	"fmt"

	"github.com/san-kum/boosterenv/internal/sim"
)

// Observation vector indices, matching sim.State.Observation.
const (
	IxX = iota
	IxY
	IxVX
	IxVY
	IxAlpha
	IxW
	IxFuel
	IxPrevMain
	IxPrevGimbal
)

type Policy interface {
	Act(o sim.Observation, step int) sim.Action
}

type Registry struct {
	policies map[string]func(params map[string]float64) Policy
}

func NewRegistry() *Registry {
	r := &Registry{policies: make(map[string]func(map[string]float64) Policy)}

	r.policies["none"] = func(map[string]float64) Policy { return None{} }
	r.policies["hover"] = func(params map[string]float64) Policy {
		return NewHover(params["kp"], params["ki"], params["kd"])
	}
	r.policies["burn"] = func(params map[string]float64) Policy {
		return NewBurn(params["thrust_accel"], params["gravity"])
	}

	return r
}

func (r *Registry) Get(name string, params map[string]float64) (Policy, error) {
	fn, ok := r.policies[name]
	if !ok {
		return nil, fmt.Errorf("unknown policy: %s", name)
	}
	return fn(params), nil
}

func (r *Registry) List() []string {
	names := make([]string, 0, len(r.policies))
	for name := range r.policies {
		names = append(names, name)
	}
	return names
}

// None keeps every engine off. Useful for ballistic baselines.
type None struct{}

func (None) Act(o sim.Observation, step int) sim.Action {
	return sim.Action{Main: -1, Side: 0, Gimbal: 0}
}
