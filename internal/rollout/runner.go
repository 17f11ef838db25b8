// Package rollout runs scripted-policy episodes against the environment and
// collects trajectories. The external trainer owns its own loop; this one
// serves the CLI, benchmarks and tests.
package rollout

import (
	"context"

	"github.com/san-kum/boosterenv/internal/env"
	"github.com/san-kum/boosterenv/internal/metrics"
	"github.com/san-kum/boosterenv/internal/policy"
	"github.com/san-kum/boosterenv/internal/sim"
)

// Observer is called after every step of a rollout.
type Observer interface {
	OnStep(s sim.State, a sim.Action, r float64, step int)
}

// Result is one collected episode.
type Result struct {
	Observations []sim.Observation
	Actions      []sim.Action
	Rewards      []float64
	TotalReward  float64
	Steps        int
	Terminated   bool
	Truncated    bool
	Outcome      sim.Outcome
	Reason       string
	Metrics      map[string]float64
}

type Runner struct {
	env       *env.Environment
	pol       policy.Policy
	metrics   []metrics.Metric
	observers []Observer
}

func New(e *env.Environment, pol policy.Policy) *Runner {
	return &Runner{env: e, pol: pol}
}

func (r *Runner) AddMetric(m metrics.Metric) { r.metrics = append(r.metrics, m) }
func (r *Runner) AddObserver(o Observer)     { r.observers = append(r.observers, o) }

// Run plays one full episode. The episode always ends on its own through
// termination or truncation; ctx only allows the caller to abandon early.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	for _, m := range r.metrics {
		m.Reset()
	}

	obs := r.env.Reset()
	result := &Result{
		Observations: []sim.Observation{obs.Clone()},
		Metrics:      make(map[string]float64),
	}

	for {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		a := r.pol.Act(obs, result.Steps)
		next, reward, terminated, truncated, info, err := r.env.Step(a)
		if err != nil {
			return result, err
		}

		obs = next
		result.Steps = info.Step
		result.Observations = append(result.Observations, obs.Clone())
		result.Actions = append(result.Actions, a)
		result.Rewards = append(result.Rewards, reward)
		result.TotalReward += reward

		st := r.env.State()
		for _, m := range r.metrics {
			m.Observe(st, a, info.Step)
		}
		for _, o := range r.observers {
			o.OnStep(st, a, reward, info.Step)
		}

		if terminated || truncated {
			result.Terminated = terminated
			result.Truncated = truncated
			result.Outcome = info.Outcome
			result.Reason = info.Reason
			break
		}
	}

	for _, m := range r.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
	return result, nil
}
