// Package ffmpeg wraps the external audio engine behind a narrow, testable
// client: stereo channel splitting, silence detection, per-segment rendering
// with fades and channel isolation, and final concatenation. It also owns the
// silencedetect diagnostic parser, so the rest of the pipeline never sees raw
// engine output.
package ffmpeg
