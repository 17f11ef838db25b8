package physics

import "math"

// Throttle mapping thresholds. The main engine cannot run below 57% power,
// so positive throttle maps onto [MinMainPower, 1]. Side thrusters have a
// dead zone in [-SideDeadZone, SideDeadZone].
const (
	MinMainPower = 0.57
	SideDeadZone = 0.5
)

// MainPower maps main throttle in [-1, 1] to engine power. At or below zero
// the engine is off; above zero power ramps from MinMainPower to 1.
func MainPower(throttle float64) float64 {
	if throttle <= 0 {
		return 0
	}
	if throttle > 1 {
		throttle = 1
	}
	return MinMainPower + (1-MinMainPower)*throttle
}

// SidePower maps side throttle in [-1, 1] to signed thruster power. Inside
// the dead zone the thrusters are off; beyond it magnitude ramps over
// (SideDeadZone, 1].
func SidePower(throttle float64) float64 {
	mag := math.Abs(throttle)
	if mag <= SideDeadZone {
		return 0
	}
	if mag > 1 {
		mag = 1
	}
	return math.Copysign(mag, throttle)
}
