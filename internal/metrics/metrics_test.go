package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/boosterenv/internal/sim"
)

func TestControlEffort(t *testing.T) {
	m := NewControlEffort()

	if m.Value() != 0 {
		t.Error("expected zero before observations")
	}

	m.Observe(sim.State{}, sim.Action{Main: 1, Side: -0.5, Gimbal: 0.5}, 1)
	m.Observe(sim.State{}, sim.Action{}, 2)

	// (2.0 + 0.0) / 2
	if got := m.Value(); got != 1.0 {
		t.Errorf("control effort = %f, want 1.0", got)
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("reset should clear the metric")
	}
}

func TestStability(t *testing.T) {
	m := NewStability(0.15)

	if m.Value() != 1.0 {
		t.Error("no samples should read fully stable")
	}

	m.Observe(sim.State{Alpha: 0.05}, sim.Action{}, 1)
	m.Observe(sim.State{Alpha: 0.30}, sim.Action{}, 2)
	m.Observe(sim.State{Alpha: -0.02}, sim.Action{}, 3)
	m.Observe(sim.State{Alpha: -0.50}, sim.Action{}, 4)

	if got := m.Value(); got != 0.5 {
		t.Errorf("stability = %f, want 0.5", got)
	}
}

func TestFuelUsed(t *testing.T) {
	m := NewFuelUsed()

	m.Observe(sim.State{FuelRatio: 1.0}, sim.Action{}, 1)
	m.Observe(sim.State{FuelRatio: 0.8}, sim.Action{}, 2)
	m.Observe(sim.State{FuelRatio: 0.65}, sim.Action{}, 3)

	if got := m.Value(); math.Abs(got-0.35) > 1e-12 {
		t.Errorf("fuel used = %f, want 0.35", got)
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("reset should clear the metric")
	}
}

func TestDefaults(t *testing.T) {
	ms := Defaults(0.15)
	if len(ms) != 3 {
		t.Fatalf("expected 3 default metrics, got %d", len(ms))
	}
	names := map[string]bool{}
	for _, m := range ms {
		names[m.Name()] = true
	}
	for _, want := range []string{"control_effort", "stability", "fuel_used"} {
		if !names[want] {
			t.Errorf("missing default metric %s", want)
		}
	}
}
