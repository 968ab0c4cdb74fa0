// Package ffprobe provides a typed wrapper around ffprobe JSON output.
//
// Key types:
//   - Result: parsed ffprobe output containing streams and format metadata
//   - AudioParams: the source audio properties the pipeline reads once and
//     treats as immutable for the run
//
// Primary entry points:
//   - Inspect: executes ffprobe and returns a parsed Result
//   - Prober: binds a binary path to the probe operations the pipeline needs
package ffprobe
