package config

import "sort"

// Presets are ready-made environment configurations for common scenarios.
func presetBase() *EnvConfig {
	cfg := DefaultEnvConfig()
	cfg.RewardVersion = "v3"
	cfg.Reward = Weights{
		Vx:             0.3,
		Vy:             0.3,
		Angle:          1.0,
		Position:       0.2,
		Velocity:       0.4,
		W:              0.5,
		Fuel:           0.1,
		EngineStartup:  0.05,
		MainEngineBurn: 0.03,
		SideEngineBurn: 0.03,
		Gimbal:         0.02,
		Termination:    100.0,
		Time:           0.01,
		Trajectory:     0.2,
	}
	cfg.InitialCondition = InitialCondition{
		X:         SpreadDist(0, 20),
		Y:         SpreadDist(500, 50),
		VX:        SpreadDist(0, 5),
		VY:        SpreadDist(-40, 5),
		Alpha:     SpreadDist(0, 0.1),
		W:         SpreadDist(0, 0.05),
		FuelRatio: Point(1.0),
	}
	return cfg
}

var Presets = map[string]func() *EnvConfig{
	"hop": func() *EnvConfig {
		cfg := presetBase()
		cfg.InitialCondition.Y = SpreadDist(120, 10)
		cfg.InitialCondition.VY = SpreadDist(-10, 2)
		cfg.MaxSteps = 600
		return cfg
	},
	"drop": func() *EnvConfig {
		cfg := presetBase()
		cfg.InitialCondition.Y = Point(1200)
		cfg.InitialCondition.VY = Point(-60)
		cfg.MaxSteps = 2000
		return cfg
	},
	"windy": func() *EnvConfig {
		cfg := presetBase()
		cfg.Wind = 6.0
		cfg.Turbulence = 1.5
		cfg.Drag = 0.2
		return cfg
	},
	"calm": func() *EnvConfig {
		cfg := presetBase()
		cfg.Wind = 0
		cfg.Turbulence = 0
		cfg.Drag = 0
		return cfg
	},
}

func GetPreset(name string) *EnvConfig {
	fn, ok := Presets[name]
	if !ok {
		return nil
	}
	return fn()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
