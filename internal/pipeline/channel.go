package pipeline

import (
	"context"
	"fmt"

	"interlace/internal/segment"
	"interlace/internal/services"
	"interlace/internal/services/ffmpeg"
)

// scheduleChannel derives the merged segment list for one isolated channel
// file: probe its duration, run silence detection, parse the detector
// diagnostics, and convert midpoints into segments.
func (r *Runner) scheduleChannel(ctx context.Context, ch segment.Channel, channelFile string) ([]segment.Segment, error) {
	ctx = services.WithChannel(ctx, ch.String())

	duration, err := r.Prober.Duration(ctx, channelFile)
	if err != nil {
		return nil, fmt.Errorf("%s channel: %w", ch, err)
	}

	diagnostics, err := r.Engine.DetectSilence(ctx, channelFile,
		r.Config.Processing.NoiseLevelDb, r.Config.Processing.MinSilenceSec)
	if err != nil {
		return nil, fmt.Errorf("%s channel: %w", ch, err)
	}

	silences, err := ffmpeg.ParseSilence(diagnostics)
	if err != nil {
		return nil, fmt.Errorf("%s channel: %w", ch, err)
	}

	segments, err := segment.ComputeSegments(silences, duration, r.Config.Processing.MinSegmentSec)
	if err != nil {
		return nil, fmt.Errorf("%s channel: %w", ch, err)
	}

	r.logger().Info("channel scheduled",
		"channel", ch.String(),
		"duration", duration,
		"silences", len(silences),
		"segments", len(segments))
	return segments, nil
}

// plannedSegments assigns deterministic render paths to a channel's schedule.
// Paths exist before rendering so the interleaved plan can be built and
// reported first.
func plannedSegments(ws *workspace, ch segment.Channel, segments []segment.Segment) []segment.RenderedSegment {
	planned := make([]segment.RenderedSegment, 0, len(segments))
	for i, seg := range segments {
		planned = append(planned, segment.RenderedSegment{
			Segment: seg,
			Channel: ch,
			Path:    ws.segmentPath(ch, i),
		})
	}
	return planned
}
