// Package pipeline orchestrates a full interlacing run: the stereo source is
// split into isolated channel files, each channel is segmented at silence
// midpoints, segments are rendered concurrently with fades and channel
// panning, and the interleaved plan is concatenated into the final output.
// The engine and prober are interfaces so runs can be exercised without
// invoking external binaries.
package pipeline
