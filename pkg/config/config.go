package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// validate is a singleton validator instance
var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Config is the full pipeline configuration. The input path lives here, not
// in the pipeline itself; the core never decides where its data comes from.
type Config struct {
	InputPath     string  `yaml:"input_path" validate:"required"`
	Policy        string  `yaml:"policy" validate:"omitempty,oneof=self-weight temporal-decay"`
	DecayScale    float64 `yaml:"decay_scale" validate:"omitempty,gt=0"`
	Clusters      int     `yaml:"clusters" validate:"omitempty,min=1"`
	MaxIterations int     `yaml:"max_iterations" validate:"omitempty,min=1"`
	Seed          int64   `yaml:"seed"`
	LogLevel      string  `yaml:"log_level" validate:"omitempty,oneof=debug info warn error"`
	MetricsAddr   string  `yaml:"metrics_addr"`
}

// Default returns the configuration used when no file or flag overrides it.
func Default() Config {
	return Config{
		Policy:        "self-weight",
		Clusters:      3,
		MaxIterations: 100,
		Seed:          1,
		LogLevel:      "info",
	}
}

// Load reads a yaml config file. Fields left unset in the file keep their
// defaults. Validation is separate so callers can merge flag overrides
// first.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the configuration against its struct tags.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
			e := errs[0]
			return fmt.Errorf("config field %s failed %q validation", e.Field(), e.Tag())
		}
		return fmt.Errorf("config validation: %w", err)
	}
	return nil
}
