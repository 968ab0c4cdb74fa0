// Package segment implements the segmentation and interleaving core: it
// turns silence intervals and a channel duration into a validated, merged
// list of time segments, derives fade windows for each segment, and weaves
// two channels' rendered segment lists into one chronological
// concatenation plan.
//
// Key types:
//   - SilenceInterval: a detector-flagged quiet range, split at its midpoint
//   - Segment: a contiguous time range of one channel to render
//   - RenderedSegment: a segment plus its channel and rendered file path
//   - FadeWindow: fade-in/fade-out timing for a single segment
//
// The scheduling entry points are ComputeSegments and MergeShortSegments;
// Interleave produces the final render order.
package segment
