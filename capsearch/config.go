package capsearch

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config mirrors Options for file-driven runs (batch experiments, CI
// sweeps). Zero fields keep their defaults.
type Config struct {
	EpsDet      float64 `yaml:"eps_det"`
	EpsFeas     float64 `yaml:"eps_feas"`
	EpsRot      float64 `yaml:"eps_rot"`
	EpsAction   float64 `yaml:"eps_action"`
	ActionBound float64 `yaml:"action_bound"`
	ExactCheck  bool    `yaml:"exact_check"`
	Workers     int     `yaml:"workers"`
	TimeLimitMS int     `yaml:"time_limit_ms"`
}

// LoadConfig reads a YAML search configuration from path.
func LoadConfig(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("capsearch: reading config: %w", err)
	}

	var c Config
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return Config{}, fmt.Errorf("capsearch: parsing config: %w", err)
	}

	return c, nil
}

// Options converts the file form into search options, skipping zero fields.
func (c Config) Options() []Option {
	var opts []Option
	if c.EpsDet > 0 {
		opts = append(opts, WithEpsDet(c.EpsDet))
	}
	if c.EpsFeas > 0 {
		opts = append(opts, WithEpsFeas(c.EpsFeas))
	}
	if c.EpsRot > 0 {
		opts = append(opts, func(o *Options) { o.EpsRot = c.EpsRot })
	}
	if c.EpsAction > 0 {
		opts = append(opts, func(o *Options) { o.EpsAction = c.EpsAction })
	}
	if c.ActionBound > 0 {
		opts = append(opts, WithActionBound(c.ActionBound))
	}
	if c.ExactCheck {
		opts = append(opts, WithExactCheck(true))
	}
	if c.Workers > 1 {
		opts = append(opts, WithWorkers(c.Workers))
	}
	if c.TimeLimitMS > 0 {
		opts = append(opts, WithTimeLimit(time.Duration(c.TimeLimitMS)*time.Millisecond))
	}

	return opts
}
