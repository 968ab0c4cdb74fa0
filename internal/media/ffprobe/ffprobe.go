package ffprobe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os/exec"
	"strconv"
	"strings"

	"interlace/internal/services"
)

// Result represents the parsed output from an ffprobe inspection.
type Result struct {
	Streams []Stream `json:"streams"`
	Format  Format   `json:"format"`
}

// Stream describes a single stream in the media container.
type Stream struct {
	Index         int    `json:"index"`
	CodecName     string `json:"codec_name"`
	CodecType     string `json:"codec_type"`
	SampleRate    string `json:"sample_rate"`
	SampleFormat  string `json:"sample_fmt"`
	BitsPerSample int    `json:"bits_per_sample"`
	Channels      int    `json:"channels"`
	Duration      string `json:"duration"`
}

// Format captures container-level metadata extracted by ffprobe.
type Format struct {
	Filename   string `json:"filename"`
	NBStreams  int    `json:"nb_streams"`
	Duration   string `json:"duration"`
	FormatName string `json:"format_name"`
}

// AudioParams holds the source audio properties, read once per run.
type AudioParams struct {
	SampleRate    int
	SampleFormat  string
	BitsPerSample int
	Channels      int
}

// Inspect executes ffprobe against the provided path and decodes the JSON response.
func Inspect(ctx context.Context, binary string, path string) (Result, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = "ffprobe"
	}
	path = strings.TrimSpace(path)
	if path == "" {
		return Result{}, errors.New("ffprobe inspect: empty path")
	}

	cmd := exec.CommandContext(ctx, binary, "-v", "error", "-show_format", "-show_streams", "-of", "json", "--", path)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return Result{}, services.Wrap(services.ErrExternalTool, "probe", "ffprobe",
			strings.TrimSpace(string(output)), err)
	}

	var result Result
	if err := json.Unmarshal(output, &result); err != nil {
		return Result{}, fmt.Errorf("ffprobe parse: %w", err)
	}
	return result, nil
}

// DurationSeconds returns the container duration in seconds, or 0 when unavailable.
func (r Result) DurationSeconds() float64 {
	duration := parseFloat(r.Format.Duration)
	if math.IsNaN(duration) || duration < 0 {
		return 0
	}
	return duration
}

// AudioParams extracts the first audio stream's properties. Bits per sample
// defaults to 16 when the container does not report a value.
func (r Result) AudioParams() (AudioParams, error) {
	for _, stream := range r.Streams {
		if !strings.EqualFold(stream.CodecType, "audio") {
			continue
		}
		rate, err := strconv.Atoi(strings.TrimSpace(stream.SampleRate))
		if err != nil {
			return AudioParams{}, fmt.Errorf("ffprobe: bad sample rate %q: %w", stream.SampleRate, err)
		}
		params := AudioParams{
			SampleRate:    rate,
			SampleFormat:  strings.TrimSpace(stream.SampleFormat),
			BitsPerSample: stream.BitsPerSample,
			Channels:      stream.Channels,
		}
		if params.BitsPerSample == 0 {
			params.BitsPerSample = 16
		}
		if params.SampleFormat == "" {
			return AudioParams{}, errors.New("ffprobe: audio stream missing sample format")
		}
		return params, nil
	}
	return AudioParams{}, errors.New("ffprobe: no audio stream found")
}

// Prober binds an ffprobe binary to the probe operations the pipeline needs.
type Prober struct {
	Binary string
}

// Params probes a file and returns its audio parameters.
func (p Prober) Params(ctx context.Context, path string) (AudioParams, error) {
	result, err := Inspect(ctx, p.Binary, path)
	if err != nil {
		return AudioParams{}, err
	}
	return result.AudioParams()
}

// Duration probes a file and returns its duration in seconds.
func (p Prober) Duration(ctx context.Context, path string) (float64, error) {
	result, err := Inspect(ctx, p.Binary, path)
	if err != nil {
		return 0, err
	}
	duration := result.DurationSeconds()
	if duration <= 0 {
		return 0, fmt.Errorf("ffprobe: no duration reported for %s", path)
	}
	return duration, nil
}

func parseFloat(value string) float64 {
	cleaned := strings.TrimSpace(value)
	if cleaned == "" {
		return 0
	}
	if parsed, err := strconv.ParseFloat(cleaned, 64); err == nil {
		return parsed
	}
	return math.NaN()
}
