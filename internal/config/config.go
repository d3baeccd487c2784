// Package config loads the TOML settings of the queue tester.
//
// Example:
//
//	Echo         = true
//	StringLength = 1024
//	FailPercent  = 0
//	Seed         = 0
//
//	[Log]
//	Dir    = "/tmp/qtest"
//	Level  = "debug"
//	Stdout = false
package config

import (
	"errors"
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/randomizedcoder/ringqueue/internal/logger"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("config: invalid value")

// Config holds the tester settings.
type Config struct {
	Echo         bool   // echo each command before running it
	StringLength int    // size of the buffer passed to remove
	FailPercent  int    // allocation fault rate, 0-100
	Seed         uint64 // random seed, 0 picks one from the clock

	Log logger.Config
}

// Default returns the settings used when no file is given.
func Default() *Config {
	return &Config{
		StringLength: 1024,
		Log: logger.Config{
			Level:      "info",
			MaxSize:    64,
			MaxAge:     7,
			MaxBackups: 3,
		},
	}
}

// LoadString decodes str on top of the defaults.
func LoadString(str string) (*Config, error) {
	cfg := Default()
	if _, err := toml.Decode(str, cfg); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load decodes the file at path on top of the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: load %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.StringLength < 1 {
		return fmt.Errorf("%w: StringLength %d < 1", ErrInvalid, c.StringLength)
	}
	if c.FailPercent < 0 || c.FailPercent > 100 {
		return fmt.Errorf("%w: FailPercent %d not in [0,100]", ErrInvalid, c.FailPercent)
	}
	if !logger.ValidLevel(c.Log.Level) {
		return fmt.Errorf("%w: Log.Level %q", ErrInvalid, c.Log.Level)
	}
	return nil
}
