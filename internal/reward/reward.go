// Package reward implements the versioned reward functions of the booster
// environment. Versions are looked up through an explicit registry validated
// at construction time, never by symbol naming conventions.
package reward

import (
	"fmt"
	"math"
	"sort"

	"github.com/san-kum/boosterenv/internal/config"
	"github.com/san-kum/boosterenv/internal/sim"
)

// Func computes the scalar reward for one transition. Implementations must
// be pure: same inputs, same output, no hidden state.
type Func func(prev, cur sim.State, a sim.Action, w config.Weights, v sim.Verdict) float64

type Registry struct {
	versions map[string]Func
}

// NewRegistry returns the registry with all built-in reward versions.
func NewRegistry() *Registry {
	r := &Registry{versions: make(map[string]Func)}
	r.versions["v1"] = v1
	r.versions["v2"] = v2
	r.versions["v3"] = v3
	r.versions["v4"] = v4
	r.versions["v5"] = v5
	return r
}

// Register adds a custom reward version. Registering an existing name
// overwrites it.
func (r *Registry) Register(version string, fn Func) {
	r.versions[version] = fn
}

func (r *Registry) Get(version string) (Func, error) {
	fn, ok := r.versions[version]
	if !ok {
		return nil, &sim.ConfigError{
			Key:     "reward_version",
			Wrapped: fmt.Errorf("%w: %q (available: %v)", sim.ErrUnknownRewardVersion, version, r.Versions()),
		}
	}
	return fn, nil
}

func (r *Registry) Versions() []string {
	names := make([]string, 0, len(r.versions))
	for name := range r.versions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// terminal is the episode-end bonus or penalty. Zero while the episode runs
// and on truncation.
func terminal(w config.Weights, v sim.Verdict) float64 {
	if !v.Terminated {
		return 0
	}
	if v.Outcome.Success() {
		return w.Termination
	}
	return -w.Termination
}

// trajectoryDeviation measures how far the horizontal velocity is from an
// ideal descent path that steers toward the pad at x = 0.
func trajectoryDeviation(s sim.State) float64 {
	want := -0.1 * s.X
	d := s.VX - want
	return d * d
}

// v1 is the minimal shaping: velocity and tilt penalties, per-step time cost
// and the terminal bonus.
func v1(prev, cur sim.State, a sim.Action, w config.Weights, v sim.Verdict) float64 {
	r := -w.Vx*cur.VX*cur.VX - w.Vy*cur.VY*cur.VY
	r -= w.Angle * cur.Alpha * cur.Alpha
	r -= w.Time
	return r + terminal(w, v)
}

// v2 adds position, angular velocity and fuel-consumption penalties.
func v2(prev, cur sim.State, a sim.Action, w config.Weights, v sim.Verdict) float64 {
	r := v1(prev, cur, a, w, v)
	r -= w.Position * cur.X * cur.X
	r -= w.W * cur.W * cur.W
	r -= w.Fuel * (prev.FuelRatio - cur.FuelRatio)
	return r
}

// v3 adds engine-usage penalties: startup transient, burn and gimbal use.
func v3(prev, cur sim.State, a sim.Action, w config.Weights, v sim.Verdict) float64 {
	r := v2(prev, cur, a, w, v)
	if prev.PrevMainPower == 0 && cur.PrevMainPower > 0 {
		r -= w.EngineStartup
	}
	r -= w.MainEngineBurn * cur.PrevMainPower
	r -= w.SideEngineBurn * math.Abs(a.Side)
	r -= w.Gimbal * cur.PrevGimbal * cur.PrevGimbal
	return r
}

// v4 is potential-based shaping on total speed and distance to the pad,
// plus the trajectory corridor penalty.
func v4(prev, cur sim.State, a sim.Action, w config.Weights, v sim.Verdict) float64 {
	phi := func(s sim.State) float64 {
		return -w.Velocity*s.Speed() - w.Position*math.Hypot(s.X, s.Y)
	}
	r := phi(cur) - phi(prev)
	r -= w.Trajectory * trajectoryDeviation(cur)
	r -= w.Time
	return r + terminal(w, v)
}

// v5 is the full shaping: v3 plus trajectory and speed-magnitude terms.
func v5(prev, cur sim.State, a sim.Action, w config.Weights, v sim.Verdict) float64 {
	r := v3(prev, cur, a, w, v)
	r -= w.Trajectory * trajectoryDeviation(cur)
	r -= w.Velocity * cur.Speed() * cur.Speed()
	return r
}
