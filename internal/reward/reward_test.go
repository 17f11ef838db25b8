package reward

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/boosterenv/internal/config"
	"github.com/san-kum/boosterenv/internal/sim"
)

func testWeights() config.Weights {
	return config.Weights{
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
}

func TestRegistryVersions(t *testing.T) {
	r := NewRegistry()

	want := []string{"v1", "v2", "v3", "v4", "v5"}
	got := r.Versions()
	if len(got) != len(want) {
		t.Fatalf("expected %d versions, got %v", len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("version[%d] = %s, want %s", i, got[i], want[i])
		}
	}

	for _, v := range want {
		if _, err := r.Get(v); err != nil {
			t.Errorf("Get(%s) failed: %v", v, err)
		}
	}
}

func TestRegistryUnknownVersion(t *testing.T) {
	_, err := NewRegistry().Get("v99")
	if err == nil {
		t.Fatal("expected error for unknown version")
	}
	if !errors.Is(err, sim.ErrUnknownRewardVersion) {
		t.Errorf("expected ErrUnknownRewardVersion, got %v", err)
	}
	var cerr *sim.ConfigError
	if !errors.As(err, &cerr) {
		t.Errorf("expected ConfigError, got %T", err)
	}
}

func TestRegistryRegisterCustom(t *testing.T) {
	r := NewRegistry()
	r.Register("custom", func(prev, cur sim.State, a sim.Action, w config.Weights, v sim.Verdict) float64 {
		return 7
	})

	fn, err := r.Get("custom")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got := fn(sim.State{}, sim.State{}, sim.Action{}, testWeights(), sim.Verdict{}); got != 7 {
		t.Errorf("custom reward = %f, want 7", got)
	}
}

func TestSoftLandingBeatsCrash(t *testing.T) {
	w := testWeights()
	landing := sim.State{X: 2, Y: 0.1, VX: 0.1, VY: -0.5, Alpha: 0.01, W: 0.01, FuelRatio: 0.4}
	crash := sim.State{X: 2, Y: 0.1, VX: 0.1, VY: -45, Alpha: 0.01, W: 0.01, FuelRatio: 0.4}
	prev := sim.State{X: 2, Y: 1.5, VX: 0.1, VY: -1, FuelRatio: 0.4}

	landVerdict := sim.Verdict{Terminated: true, Outcome: sim.OutcomeLanded}
	crashVerdict := sim.Verdict{Terminated: true, Outcome: sim.OutcomeCrashVelocity}

	r := NewRegistry()
	for _, version := range r.Versions() {
		t.Run(version, func(t *testing.T) {
			fn, err := r.Get(version)
			if err != nil {
				t.Fatal(err)
			}
			good := fn(prev, landing, sim.Action{}, w, landVerdict)
			bad := fn(prev, crash, sim.Action{}, w, crashVerdict)
			if good <= bad {
				t.Errorf("%s: soft landing (%f) should beat crash (%f)", version, good, bad)
			}
		})
	}
}

func TestRewardPure(t *testing.T) {
	w := testWeights()
	prev := sim.State{Y: 100, VY: -10, FuelRatio: 0.8}
	cur := sim.State{Y: 99, VY: -10.2, FuelRatio: 0.79, PrevMainPower: 0.7}
	a := sim.Action{Main: 0.3, Gimbal: 0.1}

	r := NewRegistry()
	for _, version := range r.Versions() {
		fn, _ := r.Get(version)
		first := fn(prev, cur, a, w, sim.Verdict{})
		for i := 0; i < 10; i++ {
			if got := fn(prev, cur, a, w, sim.Verdict{}); got != first {
				t.Fatalf("%s: reward not pure: %f vs %f", version, got, first)
			}
		}
	}
}

func TestTerminalBonusOnlyAtEnd(t *testing.T) {
	w := testWeights()
	s := sim.State{Y: 100, VY: -1}

	fn, _ := NewRegistry().Get("v1")
	running := fn(s, s, sim.Action{}, w, sim.Verdict{})
	truncated := fn(s, s, sim.Action{}, w, sim.Verdict{Truncated: true})
	landed := fn(s, s, sim.Action{}, w, sim.Verdict{Terminated: true, Outcome: sim.OutcomeLanded})
	crashed := fn(s, s, sim.Action{}, w, sim.Verdict{Terminated: true, Outcome: sim.OutcomeCrashTilt})

	if running != truncated {
		t.Errorf("truncation must not add terminal reward: %f vs %f", running, truncated)
	}
	if math.Abs(landed-running-w.Termination) > 1e-9 {
		t.Errorf("landing bonus = %f, want %f", landed-running, w.Termination)
	}
	if math.Abs(running-crashed-w.Termination) > 1e-9 {
		t.Errorf("crash penalty = %f, want %f", running-crashed, w.Termination)
	}
}

func TestEngineStartupPenalty(t *testing.T) {
	w := testWeights()
	fn, _ := NewRegistry().Get("v3")

	off := sim.State{Y: 100, FuelRatio: 1}
	on := sim.State{Y: 100, FuelRatio: 1, PrevMainPower: 0.6}
	stayOn := sim.State{Y: 100, FuelRatio: 1, PrevMainPower: 0.6}
	a := sim.Action{Main: 0.1}

	startup := fn(off, on, a, w, sim.Verdict{})
	sustained := fn(stayOn, on, a, w, sim.Verdict{})
	if math.Abs(sustained-startup-w.EngineStartup) > 1e-9 {
		t.Errorf("startup penalty = %f, want %f", sustained-startup, w.EngineStartup)
	}
}

func TestTimePenalty(t *testing.T) {
	w := config.Weights{Time: 0.25}
	fn, _ := NewRegistry().Get("v1")

	s := sim.State{Y: 100}
	if got := fn(s, s, sim.Action{}, w, sim.Verdict{}); got != -0.25 {
		t.Errorf("expected pure time penalty -0.25, got %f", got)
	}
}
