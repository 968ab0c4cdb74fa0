// Package config loads, normalizes, and validates the interlace
// configuration. Values come from an optional TOML file merged over
// repository defaults; command-line flags override individual fields after
// loading. Validation runs before the pipeline starts so configuration
// problems never reach the engine.
package config
