// Package env wires the physics model, reward function and termination
// evaluator into the reset/step environment consumed by an external trainer.
package env

import (
	"fmt"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/san-kum/boosterenv/internal/config"
	"github.com/san-kum/boosterenv/internal/physics"
	"github.com/san-kum/boosterenv/internal/reward"
	"github.com/san-kum/boosterenv/internal/sim"
	"github.com/san-kum/boosterenv/internal/termination"
)

type phase int

const (
	phaseInit phase = iota
	phaseRunning
	phaseDone
)

// Renderer receives a best-effort frame after each step. Implementations
// must not touch simulation state; rendering failures are ignored.
type Renderer interface {
	Frame(s sim.State, step int, v sim.Verdict)
}

// Info carries per-step diagnostics alongside the observation.
type Info struct {
	Step          int
	Outcome       sim.Outcome
	Reason        string
	ClampedInputs int
	FuelRatio     float64
	MainPower     float64
	GimbalAngle   float64
}

// Environment is a single-owner, synchronous booster simulation. One
// instance must not be stepped from multiple goroutines.
type Environment struct {
	cfg      *config.EnvConfig
	model    *physics.Model
	rewardFn reward.Func
	eval     *termination.Evaluator
	rng      *rand.Rand
	renderer Renderer

	state     sim.State
	stepCount int
	phase     phase
	verdict   sim.Verdict
}

// New validates the configuration and resolves the reward version. All
// configuration failures surface here, never lazily during an episode.
func New(cfg *config.EnvConfig, seed uint64) (*Environment, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	fn, err := reward.NewRegistry().Get(cfg.RewardVersion)
	if err != nil {
		return nil, err
	}
	return &Environment{
		cfg:      cfg,
		model:    physics.NewModel(cfg),
		rewardFn: fn,
		eval:     termination.NewEvaluator(cfg),
		rng:      rand.New(rand.NewSource(seed)),
	}, nil
}

// SetRenderer installs the best-effort visualization hook. Only active when
// the config has render: true.
func (e *Environment) SetRenderer(r Renderer) { e.renderer = r }

func (e *Environment) Config() *config.EnvConfig { return e.cfg }

// State returns a copy of the current internal state.
func (e *Environment) State() sim.State { return e.state }

// Seed reseeds the environment's random source. The next Reset and all
// turbulence draws after it are a deterministic function of the seed.
func (e *Environment) Seed(seed uint64) {
	e.rng = rand.New(rand.NewSource(seed))
}

// Reset samples a fresh initial state from the configured distributions and
// returns its observation.
func (e *Environment) Reset() sim.Observation {
	ic := e.cfg.InitialCondition
	e.state = sim.State{
		X:         e.sample(ic.X),
		Y:         e.sample(ic.Y),
		VX:        e.sample(ic.VX),
		VY:        e.sample(ic.VY),
		Alpha:     sim.WrapAngle(e.sample(ic.Alpha)),
		W:         e.sample(ic.W),
		FuelRatio: clamp01(e.sample(ic.FuelRatio)),
	}
	e.stepCount = 0
	e.verdict = sim.Verdict{}
	e.phase = phaseRunning
	return e.state.Observation()
}

// ResetSeed reseeds and resets in one call, for reproducible episodes.
func (e *Environment) ResetSeed(seed uint64) sim.Observation {
	e.Seed(seed)
	return e.Reset()
}

func (e *Environment) sample(d config.Distribution) float64 {
	if d.Spread == 0 {
		return d.Mean
	}
	return distuv.Normal{Mu: d.Mean, Sigma: d.Spread, Src: e.rng}.Rand()
}

// Step advances the simulation by one action. Out-of-range action components
// are clamped into bounds and counted in Info; NaN or Inf components are
// rejected with ErrInvalidAction.
func (e *Environment) Step(a sim.Action) (sim.Observation, float64, bool, bool, Info, error) {
	switch e.phase {
	case phaseInit:
		return nil, 0, false, false, Info{}, sim.ErrNotReset
	case phaseDone:
		return nil, 0, false, false, Info{}, sim.ErrEpisodeOver
	}

	if !a.IsValid() {
		return nil, 0, false, false, Info{}, fmt.Errorf("%w: %+v", sim.ErrInvalidAction, a)
	}
	a, clamped := a.Clamp()

	prev := e.state
	next, err := e.model.Advance(prev, a, e.rng)
	if err != nil {
		e.phase = phaseDone
		return nil, 0, false, false, Info{}, &sim.SimulationError{Step: e.stepCount, State: next, Wrapped: err}
	}
	e.state = next
	e.stepCount++

	e.verdict = e.eval.Evaluate(e.state, e.stepCount)
	r := e.rewardFn(prev, e.state, a, e.cfg.Reward, e.verdict)

	if e.verdict.Done() {
		e.phase = phaseDone
	}

	if e.cfg.Render && e.renderer != nil {
		e.renderer.Frame(e.state, e.stepCount, e.verdict)
	}

	info := Info{
		Step:          e.stepCount,
		Outcome:       e.verdict.Outcome,
		Reason:        e.verdict.Reason,
		ClampedInputs: clamped,
		FuelRatio:     e.state.FuelRatio,
		MainPower:     e.state.PrevMainPower,
		GimbalAngle:   e.state.PrevGimbal,
	}
	return e.state.Observation(), r, e.verdict.Terminated, e.verdict.Truncated, info, nil
}

// Close releases the renderer hook. The environment can be reused after
// another Reset.
func (e *Environment) Close() error {
	e.renderer = nil
	e.phase = phaseInit
	return nil
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
