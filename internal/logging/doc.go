// Package logging constructs the slog logger used across the pipeline. Two
// handler formats are supported: a compact console handler for interactive
// use and a JSON handler for machine consumption. Loggers write to stderr so
// stdout stays free for tables and progress output.
package logging
