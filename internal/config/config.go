package config

import (
	"bytes"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/boosterenv/internal/sim"
)

const (
	DefaultDt           = 0.02
	DefaultMaxSteps     = 1000
	DefaultGravity      = 9.81
	DefaultPadRadius    = 10.0
	DefaultLandingVy    = 2.0
	DefaultLandingVx    = 1.5
	DefaultLandingTilt  = 0.15
	DefaultGroundTol    = 0.5
	DefaultBoundX       = 400.0
	DefaultBoundY       = 2000.0
	DefaultMaxAngVel    = 4.0
	DefaultMainPower    = 25.0
	DefaultSidePower    = 4.0
	DefaultMaxGimbal    = 0.35
	DefaultMainBurnRate = 0.02
	DefaultSideBurnRate = 0.004
)

// Distribution is a sampled initial-condition parameter written in env.yaml
// as "mean +- spread". A bare number is a point value with zero spread.
type Distribution struct {
	Mean   float64
	Spread float64

	set bool
}

func (d *Distribution) UnmarshalYAML(node *yaml.Node) error {
	raw := strings.TrimSpace(node.Value)
	if raw == "" {
		return fmt.Errorf("empty distribution")
	}
	parts := strings.SplitN(raw, "+-", 2)
	mean, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return fmt.Errorf("distribution mean %q: %w", raw, err)
	}
	spread := 0.0
	if len(parts) == 2 {
		spread, err = strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if err != nil {
			return fmt.Errorf("distribution spread %q: %w", raw, err)
		}
	}
	if spread < 0 {
		return fmt.Errorf("distribution spread must be non-negative, got %f", spread)
	}
	d.Mean = mean
	d.Spread = spread
	d.set = true
	return nil
}

func (d Distribution) MarshalYAML() (interface{}, error) {
	return fmt.Sprintf("%g +- %g", d.Mean, d.Spread), nil
}

// Point returns a distribution with zero spread.
func Point(mean float64) Distribution {
	return Distribution{Mean: mean, Spread: 0, set: true}
}

// Spread returns a distribution with the given mean and spread.
func SpreadDist(mean, spread float64) Distribution {
	return Distribution{Mean: mean, Spread: spread, set: true}
}

type InitialCondition struct {
	X         Distribution `yaml:"x"`
	Y         Distribution `yaml:"y"`
	VX        Distribution `yaml:"Vx"`
	VY        Distribution `yaml:"Vy"`
	Alpha     Distribution `yaml:"alpha"`
	W         Distribution `yaml:"w"`
	FuelRatio Distribution `yaml:"fuel_ratio"`
}

// Limits holds the termination bounds. All are optional in env.yaml and
// default to the values above.
type Limits struct {
	PadRadius       float64 `yaml:"pad_radius"`
	LandingVy       float64 `yaml:"landing_vy"`
	LandingVx       float64 `yaml:"landing_vx"`
	LandingTilt     float64 `yaml:"landing_tilt"`
	GroundTolerance float64 `yaml:"ground_tolerance"`
	BoundX          float64 `yaml:"bound_x"`
	BoundY          float64 `yaml:"bound_y"`
	MaxAngVel       float64 `yaml:"max_ang_vel"`
}

// Physics holds the engine and integration parameters.
type Physics struct {
	Dt           float64 `yaml:"dt"`
	Gravity      float64 `yaml:"gravity"`
	MainPower    float64 `yaml:"main_engine_power"`
	SidePower    float64 `yaml:"side_engine_power"`
	MaxGimbal    float64 `yaml:"max_gimbal"`
	MainBurnRate float64 `yaml:"main_burn_rate"`
	SideBurnRate float64 `yaml:"side_burn_rate"`
	Integrator   string  `yaml:"integrator"`
}

// Weights is the named reward weight mapping consumed by the selected
// reward version.
type Weights struct {
	Vx             float64 `yaml:"Vx"`
	Vy             float64 `yaml:"Vy"`
	Angle          float64 `yaml:"angle"`
	Position       float64 `yaml:"position"`
	Velocity       float64 `yaml:"velocity"`
	W              float64 `yaml:"w"`
	Fuel           float64 `yaml:"fuel_penalization"`
	EngineStartup  float64 `yaml:"engine_startup"`
	MainEngineBurn float64 `yaml:"main_engine_burn"`
	SideEngineBurn float64 `yaml:"side_engine_burn"`
	Gimbal         float64 `yaml:"gimbal"`
	Termination    float64 `yaml:"termination_reward"`
	Time           float64 `yaml:"time_penalization"`
	Trajectory     float64 `yaml:"trajectory_penalization"`
}

// EnvConfig is the immutable per-episode environment configuration loaded
// from env.yaml. It is read-only after construction.
type EnvConfig struct {
	Drag             float64          `yaml:"drag"`
	Turbulence       float64          `yaml:"turbulence"`
	Wind             float64          `yaml:"wind"`
	MaxSteps         int              `yaml:"max_steps"`
	Render           bool             `yaml:"render"`
	InitialCondition InitialCondition `yaml:"initial_condition"`
	RewardVersion    string           `yaml:"reward_version"`
	Reward           Weights          `yaml:"reward"`
	Limits           Limits           `yaml:"limits"`
	Physics          Physics          `yaml:"physics"`
}

func DefaultEnvConfig() *EnvConfig {
	return &EnvConfig{
		MaxSteps: DefaultMaxSteps,
		Limits: Limits{
			PadRadius:       DefaultPadRadius,
			LandingVy:       DefaultLandingVy,
			LandingVx:       DefaultLandingVx,
			LandingTilt:     DefaultLandingTilt,
			GroundTolerance: DefaultGroundTol,
			BoundX:          DefaultBoundX,
			BoundY:          DefaultBoundY,
			MaxAngVel:       DefaultMaxAngVel,
		},
		Physics: Physics{
			Dt:           DefaultDt,
			Gravity:      DefaultGravity,
			MainPower:    DefaultMainPower,
			SidePower:    DefaultSidePower,
			MaxGimbal:    DefaultMaxGimbal,
			MainBurnRate: DefaultMainBurnRate,
			SideBurnRate: DefaultSideBurnRate,
			Integrator:   "semi_implicit",
		},
	}
}

// LoadEnv reads and validates env.yaml. Unknown keys, missing required keys
// and malformed values all fail here, at construction time.
func LoadEnv(path string) (*EnvConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseEnv(data)
}

func ParseEnv(data []byte) (*EnvConfig, error) {
	cfg := DefaultEnvConfig()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, &sim.ConfigError{Key: "env.yaml", Wrapped: err}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func SaveEnv(path string, cfg *EnvConfig) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *EnvConfig) Validate() error {
	if c.MaxSteps <= 0 {
		return &sim.ConfigError{Key: "max_steps", Wrapped: fmt.Errorf("must be positive, got %d", c.MaxSteps)}
	}
	if c.RewardVersion == "" {
		return &sim.ConfigError{Key: "reward_version", Wrapped: sim.ErrMissingConfigKey}
	}
	if c.Drag < 0 {
		return &sim.ConfigError{Key: "drag", Wrapped: fmt.Errorf("must be non-negative, got %f", c.Drag)}
	}
	if c.Turbulence < 0 {
		return &sim.ConfigError{Key: "turbulence", Wrapped: fmt.Errorf("must be non-negative, got %f", c.Turbulence)}
	}
	if c.Physics.Dt <= 0 {
		return &sim.ConfigError{Key: "physics.dt", Wrapped: fmt.Errorf("must be positive, got %f", c.Physics.Dt)}
	}
	switch c.Physics.Integrator {
	case "semi_implicit", "rk4":
	default:
		return &sim.ConfigError{Key: "physics.integrator", Wrapped: fmt.Errorf("unknown integrator %q", c.Physics.Integrator)}
	}
	required := map[string]Distribution{
		"initial_condition.x":          c.InitialCondition.X,
		"initial_condition.y":          c.InitialCondition.Y,
		"initial_condition.Vx":         c.InitialCondition.VX,
		"initial_condition.Vy":         c.InitialCondition.VY,
		"initial_condition.alpha":      c.InitialCondition.Alpha,
		"initial_condition.w":          c.InitialCondition.W,
		"initial_condition.fuel_ratio": c.InitialCondition.FuelRatio,
	}
	for key, d := range required {
		if !d.set {
			return &sim.ConfigError{Key: key, Wrapped: sim.ErrMissingConfigKey}
		}
	}
	fuel := c.InitialCondition.FuelRatio
	if fuel.Mean < 0 || fuel.Mean > 1 {
		return &sim.ConfigError{Key: "initial_condition.fuel_ratio", Wrapped: fmt.Errorf("mean must be in [0,1], got %f", fuel.Mean)}
	}
	if c.InitialCondition.Y.Mean < 0 {
		return &sim.ConfigError{Key: "initial_condition.y", Wrapped: fmt.Errorf("mean altitude must be non-negative, got %f", c.InitialCondition.Y.Mean)}
	}
	if c.Limits.GroundTolerance <= 0 {
		return &sim.ConfigError{Key: "limits.ground_tolerance", Wrapped: fmt.Errorf("must be positive, got %f", c.Limits.GroundTolerance)}
	}
	if c.Physics.MaxGimbal < 0 || c.Physics.MaxGimbal > math.Pi/2 {
		return &sim.ConfigError{Key: "physics.max_gimbal", Wrapped: fmt.Errorf("must be in [0, pi/2], got %f", c.Physics.MaxGimbal)}
	}
	return nil
}
