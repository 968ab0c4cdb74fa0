package segment

import (
	"errors"
	"fmt"
)

// Channel identifies which side of the stereo source a segment belongs to.
type Channel int

const (
	ChannelLeft Channel = iota
	ChannelRight
)

// String returns the lowercase channel name used for directory and log labels.
func (c Channel) String() string {
	switch c {
	case ChannelLeft:
		return "left"
	case ChannelRight:
		return "right"
	default:
		return fmt.Sprintf("channel(%d)", int(c))
	}
}

// SilenceInterval is a detector-flagged quiet range, in seconds from the
// stream origin. Start never exceeds End.
type SilenceInterval struct {
	Start float64
	End   float64
}

// NewSilenceInterval validates and constructs a silence interval.
func NewSilenceInterval(start, end float64) (SilenceInterval, error) {
	if start < 0 {
		return SilenceInterval{}, fmt.Errorf("silence interval start %.6f is negative", start)
	}
	if end < start {
		return SilenceInterval{}, fmt.Errorf("silence interval end %.6f precedes start %.6f", end, start)
	}
	return SilenceInterval{Start: start, End: end}, nil
}

// Midpoint returns the split point derived from this interval.
func (si SilenceInterval) Midpoint() float64 {
	return (si.Start + si.End) / 2
}

// Segment is a contiguous time range of one channel to be independently
// rendered. Start is strictly less than End for every scheduled segment.
type Segment struct {
	Start float64
	End   float64
}

// Duration returns the segment length in seconds.
func (s Segment) Duration() float64 {
	return s.End - s.Start
}

// RenderedSegment pairs a segment with its channel and the path of the file
// the engine rendered for it. Immutable once created.
type RenderedSegment struct {
	Segment
	Channel Channel
	Path    string
}

// ErrNoDuration reports a scheduling request against an empty stream.
var ErrNoDuration = errors.New("channel duration must be positive")
