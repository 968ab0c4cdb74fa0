// Package services defines shared utilities consumed by the pipeline and the
// external engine integrations.
//
// Key responsibilities:
//   - Structured error markers plus the Wrap helper that classify failures
//     into the configuration / parse / external-tool taxonomy surfaced at the
//     process boundary.
//   - Context helpers that stamp run IDs and channel names for logging.
//
// Use these helpers when wiring new pipeline logic so error handling and
// observability stay uniform across the tool.
package services
