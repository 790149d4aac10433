// Package config centralises runtime configuration for arena tooling.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/coachpo/arena/errs"
)

// TelemetryConfig configures OTLP metric export.
type TelemetryConfig struct {
	OTLPEndpoint string `yaml:"otlpEndpoint"`
	ServiceName  string `yaml:"serviceName"`
}

// SoakConfig shapes the synthetic workload driven by the soak command.
type SoakConfig struct {
	Workers       int           `yaml:"workers"`
	Queue         int           `yaml:"queue"`
	Duration      time.Duration `yaml:"duration"`
	Rate          float64       `yaml:"rate"`
	Burst         int           `yaml:"burst"`
	ArenaCapacity int           `yaml:"arenaCapacity"`
	PayloadBytes  int           `yaml:"payloadBytes"`
}

// UnmarshalYAML decodes soak settings, accepting durations in
// time.ParseDuration form ("500ms", "10s"). Absent keys keep the values
// already present, so decoding over Default() only applies overrides.
func (c *SoakConfig) UnmarshalYAML(value *yaml.Node) error {
	var raw struct {
		Workers       *int     `yaml:"workers"`
		Queue         *int     `yaml:"queue"`
		Duration      *string  `yaml:"duration"`
		Rate          *float64 `yaml:"rate"`
		Burst         *int     `yaml:"burst"`
		ArenaCapacity *int     `yaml:"arenaCapacity"`
		PayloadBytes  *int     `yaml:"payloadBytes"`
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}
	if raw.Workers != nil {
		c.Workers = *raw.Workers
	}
	if raw.Queue != nil {
		c.Queue = *raw.Queue
	}
	if raw.Duration != nil {
		parsed, err := time.ParseDuration(*raw.Duration)
		if err != nil {
			return fmt.Errorf("parse soak duration: %w", err)
		}
		c.Duration = parsed
	}
	if raw.Rate != nil {
		c.Rate = *raw.Rate
	}
	if raw.Burst != nil {
		c.Burst = *raw.Burst
	}
	if raw.ArenaCapacity != nil {
		c.ArenaCapacity = *raw.ArenaCapacity
	}
	if raw.PayloadBytes != nil {
		c.PayloadBytes = *raw.PayloadBytes
	}
	return nil
}

// Settings contains the configuration tree loaded from defaults and overrides.
type Settings struct {
	Telemetry TelemetryConfig `yaml:"telemetry"`
	Soak      SoakConfig      `yaml:"soak"`
}

// Default returns the default configuration.
func Default() Settings {
	return Settings{
		Telemetry: TelemetryConfig{
			OTLPEndpoint: "",
			ServiceName:  "arena-soak",
		},
		Soak: SoakConfig{
			Workers:       8,
			Queue:         64,
			Duration:      10 * time.Second,
			Rate:          5000,
			Burst:         100,
			ArenaCapacity: 256,
			PayloadBytes:  512,
		},
	}
}

// Load reads the YAML file at path over the defaults. A missing file yields
// the defaults unchanged.
func Load(path string) (Settings, error) {
	settings := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return settings, nil
		}
		return Settings{}, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return Settings{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := settings.Validate(); err != nil {
		return Settings{}, err
	}
	return settings, nil
}

// Validate checks the configuration tree for unusable values.
func (s Settings) Validate() error {
	if s.Soak.Workers <= 0 {
		return errs.New("config", errs.CodeInvalid, errs.WithMessage("soak workers must be >0"))
	}
	if s.Soak.Queue < 0 {
		return errs.New("config", errs.CodeInvalid, errs.WithMessage("soak queue must be >=0"))
	}
	if s.Soak.Duration <= 0 {
		return errs.New("config", errs.CodeInvalid, errs.WithMessage("soak duration must be positive"))
	}
	if s.Soak.Rate <= 0 {
		return errs.New("config", errs.CodeInvalid, errs.WithMessage("soak rate must be positive"))
	}
	if s.Soak.Burst <= 0 {
		return errs.New("config", errs.CodeInvalid, errs.WithMessage("soak burst must be >0"))
	}
	if s.Soak.ArenaCapacity < 0 {
		return errs.New("config", errs.CodeInvalid, errs.WithMessage("arena capacity must be >=0"))
	}
	if s.Soak.PayloadBytes <= 0 {
		return errs.New("config", errs.CodeInvalid, errs.WithMessage("payload bytes must be >0"))
	}
	return nil
}
