package segment

import "fmt"

// ComputeSegments converts ordered silence intervals and the channel duration
// into the merged per-channel segment list. Each interval contributes one
// split point at its midpoint; segment boundaries are 0, the split points in
// order, and the duration, so the raw list covers [0, duration] exactly with
// no gaps or overlaps. Segments shorter than minSegmentSec are then merged
// forward into their successors.
func ComputeSegments(silences []SilenceInterval, duration, minSegmentSec float64) ([]Segment, error) {
	if duration <= 0 {
		return nil, ErrNoDuration
	}

	segments := make([]Segment, 0, len(silences)+1)
	prev := 0.0
	for i, silence := range silences {
		point := silence.Midpoint()
		if point <= prev {
			return nil, fmt.Errorf("silence interval %d: split point %.6f does not advance past %.6f", i, point, prev)
		}
		if point >= duration {
			return nil, fmt.Errorf("silence interval %d: split point %.6f beyond channel duration %.6f", i, point, duration)
		}
		segments = append(segments, Segment{Start: prev, End: point})
		prev = point
	}
	segments = append(segments, Segment{Start: prev, End: duration})

	return MergeShortSegments(segments, minSegmentSec), nil
}

// MergeShortSegments collapses runs of short segments in a single
// left-to-right pass. The length check measures from the start of the
// accumulating run, not the previous split point, so a chain of short
// segments merges once rather than re-triggering. The terminal segment may
// remain shorter than minSegmentSec when the channel itself is shorter.
// The pass is idempotent and never drops or duplicates time.
func MergeShortSegments(segments []Segment, minSegmentSec float64) []Segment {
	if len(segments) == 0 {
		return nil
	}

	merged := make([]Segment, 0, len(segments))
	current := segments[0]
	for _, seg := range segments[1:] {
		if seg.End-current.Start < minSegmentSec {
			current.End = seg.End
			continue
		}
		merged = append(merged, current)
		current = seg
	}
	return append(merged, current)
}
