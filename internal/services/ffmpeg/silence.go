package ffmpeg

import (
	"fmt"
	"strconv"
	"strings"

	"interlace/internal/segment"
	"interlace/internal/services"
)

const (
	silenceStartMarker = "silence_start:"
	silenceEndMarker   = "silence_end:"
)

// ParseSilence converts silencedetect diagnostic text into ordered silence
// intervals. The detector emits strictly alternating start/end markers; a
// trailing start with no matching end before the stream closes is dropped.
// An end marker with no preceding start fails with a parse error.
func ParseSilence(diagnostics string) ([]segment.SilenceInterval, error) {
	var intervals []segment.SilenceInterval
	var pendingStart float64
	havePendingStart := false

	for _, line := range strings.Split(diagnostics, "\n") {
		if value, ok := markerValue(line, silenceStartMarker); ok {
			start, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return nil, services.Wrap(services.ErrParse, "detect", "silence_start",
					fmt.Sprintf("malformed value %q", value), err)
			}
			pendingStart = start
			havePendingStart = true
			continue
		}
		if value, ok := markerValue(line, silenceEndMarker); ok {
			if !havePendingStart {
				return nil, services.Wrap(services.ErrParse, "detect", "silence_end",
					"end marker without preceding start", nil)
			}
			end, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return nil, services.Wrap(services.ErrParse, "detect", "silence_end",
					fmt.Sprintf("malformed value %q", value), err)
			}
			interval, err := segment.NewSilenceInterval(pendingStart, end)
			if err != nil {
				return nil, services.Wrap(services.ErrParse, "detect", "silence interval", "", err)
			}
			intervals = append(intervals, interval)
			havePendingStart = false
		}
	}
	return intervals, nil
}

// markerValue extracts the first token after a marker substring, if present.
// silencedetect lines carry trailing fields (`silence_end: 5.7 |
// silence_duration: 0.7`) that must be ignored.
func markerValue(line, marker string) (string, bool) {
	idx := strings.Index(line, marker)
	if idx < 0 {
		return "", false
	}
	rest := strings.TrimSpace(line[idx+len(marker):])
	if rest == "" {
		return "", true
	}
	if fields := strings.Fields(rest); len(fields) > 0 {
		return fields[0], true
	}
	return "", true
}
