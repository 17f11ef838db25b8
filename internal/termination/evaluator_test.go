package termination

import (
	"testing"

	"github.com/san-kum/boosterenv/internal/config"
	"github.com/san-kum/boosterenv/internal/sim"
)

func newTestEvaluator() *Evaluator {
	cfg := config.DefaultEnvConfig()
	cfg.MaxSteps = 100
	return NewEvaluator(cfg)
}

func TestEvaluateRunning(t *testing.T) {
	e := newTestEvaluator()
	v := e.Evaluate(sim.State{Y: 500, VY: -30}, 10)
	if v.Done() {
		t.Errorf("nominal descent should not end the episode: %+v", v)
	}
}

func TestLandingChecksRequireGround(t *testing.T) {
	e := newTestEvaluator()

	// Worst-case landing state, but still at altitude: no landing check may fire.
	states := []sim.State{
		{Y: 100, VY: -80},
		{Y: 50, VX: 30, VY: -1},
		{Y: 10, Alpha: 0.5, VY: -1},
		{Y: 5, X: 50, VY: -1},
	}
	for _, s := range states {
		v := e.Evaluate(s, 10)
		if v.Terminated {
			switch v.Outcome {
			case sim.OutcomeCrashVelocity, sim.OutcomeCrashLateral, sim.OutcomeCrashTilt, sim.OutcomeMissedPad, sim.OutcomeLanded:
				t.Errorf("landing-only outcome %s fired at altitude %f", v.Outcome, s.Y)
			}
		}
	}
}

func TestEvaluateTouchdown(t *testing.T) {
	tests := []struct {
		name string
		s    sim.State
		want sim.Outcome
	}{
		{"soft landing", sim.State{Y: 0.2, VY: -1, VX: 0.5, Alpha: 0.05, X: 3}, sim.OutcomeLanded},
		{"hard impact", sim.State{Y: 0.2, VY: -10, VX: 0.5, Alpha: 0.05, X: 3}, sim.OutcomeCrashVelocity},
		{"lateral skid", sim.State{Y: 0.2, VY: -1, VX: 5, Alpha: 0.05, X: 3}, sim.OutcomeCrashLateral},
		{"tipped over", sim.State{Y: 0.2, VY: -1, VX: 0.5, Alpha: 0.4, X: 3}, sim.OutcomeCrashTilt},
		{"off the pad", sim.State{Y: 0.2, VY: -1, VX: 0.5, Alpha: 0.05, X: 30}, sim.OutcomeMissedPad},
	}

	e := newTestEvaluator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := e.Evaluate(tt.s, 10)
			if !v.Terminated {
				t.Fatalf("expected termination, got %+v", v)
			}
			if v.Outcome != tt.want {
				t.Errorf("outcome = %s, want %s", v.Outcome, tt.want)
			}
			if v.Reason == "" {
				t.Error("expected a reason")
			}
		})
	}
}

func TestEvaluatePriorityOrder(t *testing.T) {
	// A state violating every landing criterion reports the highest-priority
	// one: excessive descent velocity.
	e := newTestEvaluator()
	s := sim.State{Y: 0.2, VY: -50, VX: 20, Alpha: 1.0, X: 100}
	v := e.Evaluate(s, 10)
	if v.Outcome != sim.OutcomeCrashVelocity {
		t.Errorf("outcome = %s, want %s", v.Outcome, sim.OutcomeCrashVelocity)
	}
}

func TestEvaluateStabilityBounds(t *testing.T) {
	tests := []struct {
		name string
		s    sim.State
		want sim.Outcome
	}{
		{"x out of envelope", sim.State{Y: 500, X: 1000}, sim.OutcomeOutOfBounds},
		{"y out of envelope", sim.State{Y: 5000}, sim.OutcomeOutOfBounds},
		{"spinning", sim.State{Y: 500, W: 10}, sim.OutcomeSpinOut},
	}

	e := newTestEvaluator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := e.Evaluate(tt.s, 10)
			if !v.Terminated || v.Outcome != tt.want {
				t.Errorf("got %+v, want outcome %s", v, tt.want)
			}
		})
	}
}

func TestEvaluateTruncation(t *testing.T) {
	e := newTestEvaluator()

	v := e.Evaluate(sim.State{Y: 500}, 99)
	if v.Done() {
		t.Errorf("step 99 of 100 should not end: %+v", v)
	}

	v = e.Evaluate(sim.State{Y: 500}, 100)
	if !v.Truncated || v.Terminated {
		t.Errorf("expected truncation at step limit, got %+v", v)
	}
	if v.Outcome != sim.OutcomeNone {
		t.Errorf("truncation has no physical outcome, got %s", v.Outcome)
	}
}

func TestTerminationBeatsTruncation(t *testing.T) {
	// A crash on the final step is a termination, not a truncation.
	e := newTestEvaluator()
	v := e.Evaluate(sim.State{Y: 0.1, VY: -30}, 100)
	if !v.Terminated || v.Truncated {
		t.Errorf("expected termination to win, got %+v", v)
	}
}
