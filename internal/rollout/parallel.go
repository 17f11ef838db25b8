package rollout

import (
	"context"
	"sync"

	"github.com/san-kum/boosterenv/internal/env"
	"github.com/san-kum/boosterenv/internal/policy"
)

// Ensemble runs independent episodes in parallel. Each episode gets its own
// environment and policy instance seeded from seedStart + index, so runs are
// reproducible and goroutines share nothing.
type Ensemble struct {
	makeEnv    func(seed uint64) (*env.Environment, error)
	makePolicy func() policy.Policy
	episodes   int
	seedStart  uint64
}

func NewEnsemble(makeEnv func(seed uint64) (*env.Environment, error), makePolicy func() policy.Policy, episodes int, seedStart uint64) *Ensemble {
	return &Ensemble{
		makeEnv:    makeEnv,
		makePolicy: makePolicy,
		episodes:   episodes,
		seedStart:  seedStart,
	}
}

func (e *Ensemble) Run(ctx context.Context) ([]*Result, error) {
	results := make([]*Result, e.episodes)
	errs := make([]error, e.episodes)

	var wg sync.WaitGroup
	for i := 0; i < e.episodes; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			environment, err := e.makeEnv(e.seedStart + uint64(idx))
			if err != nil {
				errs[idx] = err
				return
			}
			defer environment.Close()

			runner := New(environment, e.makePolicy())
			results[idx], errs[idx] = runner.Run(ctx)
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}

// SuccessRate reports the fraction of episodes that landed.
func SuccessRate(results []*Result) float64 {
	if len(results) == 0 {
		return 0
	}
	landed := 0
	for _, r := range results {
		if r.Outcome.Success() {
			landed++
		}
	}
	return float64(landed) / float64(len(results))
}
