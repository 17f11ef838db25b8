package sim

import "fmt"

// Domain errors for environment operations.
var (
	// ErrMissingConfigKey indicates a required configuration key is absent.
	ErrMissingConfigKey = fmt.Errorf("boosterenv: missing required config key")

	// ErrUnknownRewardVersion indicates reward_version names no registered function.
	ErrUnknownRewardVersion = fmt.Errorf("boosterenv: unknown reward version")

	// ErrInvalidAction indicates an action with NaN or Inf components.
	ErrInvalidAction = fmt.Errorf("boosterenv: invalid action (NaN or Inf)")

	// ErrInvalidState indicates integration produced NaN or Inf state values.
	ErrInvalidState = fmt.Errorf("boosterenv: invalid state (NaN or Inf detected)")

	// ErrEpisodeOver indicates Step was called after termination without Reset.
	ErrEpisodeOver = fmt.Errorf("boosterenv: episode is over, call Reset")

	// ErrNotReset indicates Step was called before the first Reset.
	ErrNotReset = fmt.Errorf("boosterenv: environment not reset")
)

// ConfigError wraps a configuration failure with the offending key.
type ConfigError struct {
	Key     string
	Wrapped error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config %q: %v", e.Key, e.Wrapped)
}

func (e *ConfigError) Unwrap() error { return e.Wrapped }

// SimulationError wraps a physics failure with step context.
type SimulationError struct {
	Step    int
	State   State
	Wrapped error
}

func (e *SimulationError) Error() string {
	return fmt.Sprintf("step %d: %v", e.Step, e.Wrapped)
}

func (e *SimulationError) Unwrap() error { return e.Wrapped }
