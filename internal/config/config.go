package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultFPS             = 60
	DefaultVolume          = 0.5
	DefaultPulseCount      = 24
	DefaultPeriodSeconds   = 3.0
	DefaultTurnoverSeconds = 1.2
	DefaultTurnoverCount   = 4
	DefaultMinOpacity      = 0.2
	DefaultMaxOpacity      = 1.0
)

type Config struct {
	// Theme scopes glyph colors to one theme's main+secondary pair. Empty
	// draws every glyph from the full cross-theme palette.
	Theme       string      `yaml:"theme"`
	Interactive bool        `yaml:"interactive"`
	Expand      bool        `yaml:"expand"`
	FPS         int         `yaml:"fps"`
	Seed        int64       `yaml:"seed"`
	CharsFile   string      `yaml:"chars_file"`
	Fonts       FontsConfig `yaml:"fonts"`
	Audio       AudioConfig `yaml:"audio"`
	Pulse       PulseConfig `yaml:"pulse"`
}

// FontsConfig controls the decorative display fonts. Load is an explicit
// switch; nothing is inferred from the build environment.
type FontsConfig struct {
	Load bool `yaml:"load"`
}

type AudioConfig struct {
	Enabled bool    `yaml:"enabled"`
	Volume  float64 `yaml:"volume"`
}

// PulseConfig tunes the breathing animation. Durations are plain seconds so
// config files stay readable.
type PulseConfig struct {
	Count           int     `yaml:"count"`
	PeriodSeconds   float64 `yaml:"period_seconds"`
	TurnoverSeconds float64 `yaml:"turnover_seconds"`
	TurnoverCount   int     `yaml:"turnover_count"`
	MinOpacity      float64 `yaml:"min_opacity"`
	MaxOpacity      float64 `yaml:"max_opacity"`
}

func (p PulseConfig) Period() time.Duration {
	return time.Duration(p.PeriodSeconds * float64(time.Second))
}

func (p PulseConfig) TurnoverEvery() time.Duration {
	return time.Duration(p.TurnoverSeconds * float64(time.Second))
}

func DefaultConfig() *Config {
	return &Config{
		FPS: DefaultFPS,
		Audio: AudioConfig{
			Enabled: true,
			Volume:  DefaultVolume,
		},
		Pulse: PulseConfig{
			Count:           DefaultPulseCount,
			PeriodSeconds:   DefaultPeriodSeconds,
			TurnoverSeconds: DefaultTurnoverSeconds,
			TurnoverCount:   DefaultTurnoverCount,
			MinOpacity:      DefaultMinOpacity,
			MaxOpacity:      DefaultMaxOpacity,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
