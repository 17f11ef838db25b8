package physics

import (
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/san-kum/boosterenv/internal/config"
	"github.com/san-kum/boosterenv/internal/sim"
)

// Body geometry, per unit mass. Thrust powers in the config are accelerations
// so mass never appears explicitly.
const (
	inertia     = 1.8
	gimbalLever = 1.2
	sideLever   = 2.5
)

// Model integrates booster kinematics under gravity, drag, wind, turbulence
// and engine thrust. It owns no randomness; turbulence draws come from the
// rand source passed to Advance so a seeded caller is reproducible.
type Model struct {
	drag       float64
	wind       float64
	turbulence float64
	phys       config.Physics

	step func(m *Model, s sim.State, mainP, sideP, gimbal float64) sim.State
}

func NewModel(cfg *config.EnvConfig) *Model {
	m := &Model{
		drag:       cfg.Drag,
		wind:       cfg.Wind,
		turbulence: cfg.Turbulence,
		phys:       cfg.Physics,
	}
	switch cfg.Physics.Integrator {
	case "rk4":
		m.step = (*Model).stepRK4
	default:
		m.step = (*Model).stepSemiImplicit
	}
	return m
}

func (m *Model) Dt() float64 { return m.phys.Dt }

// Advance computes one fixed-dt physics step. The returned state is a new
// value; the input is never mutated. Engine thrust is unavailable once fuel
// is exhausted.
func (m *Model) Advance(s sim.State, a sim.Action, rng *rand.Rand) (sim.State, error) {
	mainP := MainPower(a.Main)
	sideP := SidePower(a.Side)
	gimbal := a.Gimbal * m.phys.MaxGimbal

	if s.FuelRatio <= 0 {
		mainP = 0
		sideP = 0
	}

	next := m.step(m, s, mainP, sideP, gimbal)

	if m.turbulence > 0 && rng != nil {
		gust := distuv.Normal{Mu: 0, Sigma: m.turbulence, Src: rng}
		next.VX += gust.Rand() * m.phys.Dt
		next.VY += gust.Rand() * m.phys.Dt
	}

	burn := (mainP*m.phys.MainBurnRate + math.Abs(sideP)*m.phys.SideBurnRate) * m.phys.Dt
	next.FuelRatio = s.FuelRatio - burn
	if next.FuelRatio < 0 {
		next.FuelRatio = 0
	}

	next.Alpha = sim.WrapAngle(next.Alpha)
	next.PrevMainPower = mainP
	next.PrevGimbal = gimbal

	if !next.IsValid() {
		return next, sim.ErrInvalidState
	}
	return next, nil
}

// accel returns the linear and angular accelerations for the deterministic
// part of the dynamics.
func (m *Model) accel(s sim.State, mainP, sideP, gimbal float64) (ax, ay, aw float64) {
	thrust := mainP * m.phys.MainPower
	side := sideP * m.phys.SidePower

	sin, cos := math.Sincos(s.Alpha + gimbal)

	// Main engine pushes along the deflected body axis; side thrusters push
	// laterally and torque the body about its center of mass.
	fx := -thrust * sin
	fy := thrust * cos

	fx += side * math.Cos(s.Alpha)
	fy += side * math.Sin(s.Alpha)

	fx += m.wind
	fx -= m.drag * math.Abs(s.VX) * s.VX
	fy -= m.drag * math.Abs(s.VY) * s.VY
	fy -= m.phys.Gravity

	torque := -thrust*math.Sin(gimbal)*gimbalLever + side*sideLever

	return fx, fy, torque / inertia
}

func (m *Model) stepSemiImplicit(s sim.State, mainP, sideP, gimbal float64) sim.State {
	dt := m.phys.Dt
	ax, ay, aw := m.accel(s, mainP, sideP, gimbal)

	next := s
	next.VX += ax * dt
	next.VY += ay * dt
	next.W += aw * dt
	next.X += next.VX * dt
	next.Y += next.VY * dt
	next.Alpha += next.W * dt
	return next
}

// stepRK4 integrates the six kinematic variables with classic RK4. Thrust is
// held constant over the step, matching the zero-order hold of the action.
func (m *Model) stepRK4(s sim.State, mainP, sideP, gimbal float64) sim.State {
	dt := m.phys.Dt
	deriv := func(x [6]float64) [6]float64 {
		probe := s
		probe.X, probe.Y, probe.Alpha = x[0], x[1], x[2]
		probe.VX, probe.VY, probe.W = x[3], x[4], x[5]
		ax, ay, aw := m.accel(probe, mainP, sideP, gimbal)
		return [6]float64{x[3], x[4], x[5], ax, ay, aw}
	}

	x0 := [6]float64{s.X, s.Y, s.Alpha, s.VX, s.VY, s.W}
	k1 := deriv(x0)
	k2 := deriv(addScaled(x0, k1, dt/2))
	k3 := deriv(addScaled(x0, k2, dt/2))
	k4 := deriv(addScaled(x0, k3, dt))

	var x1 [6]float64
	for i := range x1 {
		x1[i] = x0[i] + dt/6*(k1[i]+2*k2[i]+2*k3[i]+k4[i])
	}

	next := s
	next.X, next.Y, next.Alpha = x1[0], x1[1], x1[2]
	next.VX, next.VY, next.W = x1[3], x1[4], x1[5]
	return next
}

func addScaled(x, k [6]float64, h float64) [6]float64 {
	var r [6]float64
	for i := range r {
		r[i] = x[i] + h*k[i]
	}
	return r
}
