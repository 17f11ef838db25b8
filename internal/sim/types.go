package sim

import "math"

// State holds the full booster state between steps. Positions are meters,
// velocities m/s, angles rad. FuelRatio is the remaining fuel fraction.
type State struct {
	X             float64
	Y             float64
	VX            float64
	VY            float64
	Alpha         float64
	W             float64
	FuelRatio     float64
	PrevMainPower float64
	PrevGimbal    float64
}

// StateDim is the length of the observation vector.
const StateDim = 9

// Observation flattens the state into the 9-vector consumed by a trainer.
func (s State) Observation() Observation {
	return Observation{s.X, s.Y, s.VX, s.VY, s.Alpha, s.W, s.FuelRatio, s.PrevMainPower, s.PrevGimbal}
}

func (s State) IsValid() bool {
	for _, v := range []float64{s.X, s.Y, s.VX, s.VY, s.Alpha, s.W, s.FuelRatio, s.PrevMainPower, s.PrevGimbal} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Speed returns the magnitude of the linear velocity.
func (s State) Speed() float64 {
	return math.Hypot(s.VX, s.VY)
}

type Observation []float64

func (o Observation) Clone() Observation {
	c := make(Observation, len(o))
	copy(c, o)
	return c
}

// Action is the 3-vector control input. All components are in [-1, 1].
// Main maps to main-engine throttle (off at or below 0), Side to the lateral
// thrusters (dead zone in [-0.5, 0.5]), Gimbal to nozzle deflection.
type Action struct {
	Main   float64
	Side   float64
	Gimbal float64
}

func (a Action) IsValid() bool {
	for _, v := range []float64{a.Main, a.Side, a.Gimbal} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Clamp returns the action with every component forced into [-1, 1] and the
// number of components that were out of bounds.
func (a Action) Clamp() (Action, int) {
	clamped := 0
	clip := func(v float64) float64 {
		if v < -1 {
			clamped++
			return -1
		}
		if v > 1 {
			clamped++
			return 1
		}
		return v
	}
	return Action{Main: clip(a.Main), Side: clip(a.Side), Gimbal: clip(a.Gimbal)}, clamped
}

// Outcome classifies how an episode ended.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeLanded
	OutcomeCrashVelocity
	OutcomeCrashLateral
	OutcomeCrashTilt
	OutcomeMissedPad
	OutcomeOutOfBounds
	OutcomeSpinOut
)

func (o Outcome) String() string {
	switch o {
	case OutcomeNone:
		return "none"
	case OutcomeLanded:
		return "landed"
	case OutcomeCrashVelocity:
		return "crash_velocity"
	case OutcomeCrashLateral:
		return "crash_lateral"
	case OutcomeCrashTilt:
		return "crash_tilt"
	case OutcomeMissedPad:
		return "missed_pad"
	case OutcomeOutOfBounds:
		return "out_of_bounds"
	case OutcomeSpinOut:
		return "spin_out"
	default:
		return "unknown"
	}
}

// Success reports whether the outcome counts as a successful landing.
func (o Outcome) Success() bool { return o == OutcomeLanded }

// Verdict is the result of a termination check for one step.
type Verdict struct {
	Terminated bool
	Truncated  bool
	Outcome    Outcome
	Reason     string
}

// Done reports whether the episode is over, by termination or truncation.
func (v Verdict) Done() bool { return v.Terminated || v.Truncated }

// WrapAngle normalizes an angle into [-pi, pi].
func WrapAngle(a float64) float64 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a < -math.Pi {
		a += 2 * math.Pi
	}
	return a
}
