package config

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/boosterenv/internal/sim"
)

// TrainConfig mirrors train.yaml. The environment core never reads these
// values; they are parsed and validated here so the external actor-critic
// trainer and the CLI share one schema.
type TrainConfig struct {
	Policy        PolicyConfig `yaml:"policy"`
	LearningRate  float64      `yaml:"learning_rate"`
	LRDecay       float64      `yaml:"lr_decay"`
	Gamma         float64      `yaml:"gamma"`
	GAELambda     float64      `yaml:"gae_lambda"`
	BatchSize     int          `yaml:"batch_size"`
	Epochs        int          `yaml:"epochs"`
	SaveFrequency int          `yaml:"save_frequency"`
	EvalFrequency int          `yaml:"eval_frequency"`
	SavePath      string       `yaml:"save_path"`
}

type PolicyConfig struct {
	HiddenLayers []int  `yaml:"hidden_layers"`
	Activation   string `yaml:"activation"`
}

func DefaultTrainConfig() *TrainConfig {
	return &TrainConfig{
		Policy: PolicyConfig{
			HiddenLayers: []int{64, 64},
			Activation:   "tanh",
		},
		LearningRate:  3e-4,
		LRDecay:       1.0,
		Gamma:         0.99,
		GAELambda:     0.95,
		BatchSize:     64,
		Epochs:        10,
		SaveFrequency: 50,
		EvalFrequency: 10,
		SavePath:      "checkpoints",
	}
}

func LoadTrain(path string) (*TrainConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultTrainConfig()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, &sim.ConfigError{Key: "train.yaml", Wrapped: err}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *TrainConfig) Validate() error {
	if c.Gamma <= 0 || c.Gamma > 1 {
		return &sim.ConfigError{Key: "gamma", Wrapped: fmt.Errorf("must be in (0,1], got %f", c.Gamma)}
	}
	if c.LearningRate <= 0 {
		return &sim.ConfigError{Key: "learning_rate", Wrapped: fmt.Errorf("must be positive, got %f", c.LearningRate)}
	}
	if c.BatchSize <= 0 {
		return &sim.ConfigError{Key: "batch_size", Wrapped: fmt.Errorf("must be positive, got %d", c.BatchSize)}
	}
	return nil
}
