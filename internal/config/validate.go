package config

import (
	"errors"
	"fmt"
)

// Noise thresholds outside this range either split on breathing noise or
// never trigger at all.
const (
	minNoiseLevelDb = -50.0
	maxNoiseLevelDb = -20.0
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateProcessing(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateProcessing() error {
	if c.Processing.FadeMs < 0 {
		return errors.New("processing.fade_ms must not be negative")
	}
	if c.Processing.MinSegmentSec <= 0 {
		return errors.New("processing.min_segment_sec must be positive")
	}
	if c.Processing.MinSilenceSec <= 0 {
		return errors.New("processing.min_silence_sec must be positive")
	}
	if c.Processing.NoiseLevelDb < minNoiseLevelDb || c.Processing.NoiseLevelDb > maxNoiseLevelDb {
		return fmt.Errorf("processing.noise_level_db must be between %.0f and %.0f",
			minNoiseLevelDb, maxNoiseLevelDb)
	}
	if c.Processing.Workers < 0 {
		return errors.New("processing.workers must not be negative")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}
