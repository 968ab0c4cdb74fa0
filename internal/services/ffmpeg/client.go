package ffmpeg

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"interlace/internal/segment"
	"interlace/internal/services"
)

// errorTailLines bounds how much trailing engine output is attached to errors.
const errorTailLines = 6

// RenderRequest describes one segment render: a time range cut from an
// isolated channel file, faded, panned, and encoded to the intermediate codec.
type RenderRequest struct {
	Input        string
	Output       string
	Segment      segment.Segment
	Fade         segment.FadeWindow
	Channel      segment.Channel
	Codec        string
	SampleRate   int
	SampleFormat string
}

// ConcatRequest describes the final concatenation of the interleaved plan.
type ConcatRequest struct {
	ListPath     string
	Output       string
	Codec        string
	SampleRate   int
	SampleFormat string
}

// Option configures the client.
type Option func(*Client)

// WithExecutor injects a custom executor (primarily for tests).
func WithExecutor(exec Executor) Option {
	return func(c *Client) {
		if exec != nil {
			c.exec = exec
		}
	}
}

// Client wraps ffmpeg CLI interactions.
type Client struct {
	binary string
	exec   Executor
}

// New constructs an ffmpeg client.
func New(binary string, opts ...Option) (*Client, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		return nil, errors.New("ffmpeg binary required")
	}
	client := &Client{binary: binary, exec: commandExecutor{}}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// SplitChannels extracts the stereo source into two mono channel files.
func (c *Client) SplitChannels(ctx context.Context, input, leftPath, rightPath string) error {
	args := []string{
		"-loglevel", "error",
		"-y", "-i", input,
		"-filter_complex", "channelsplit=channel_layout=stereo[left][right]",
		"-map", "[left]", leftPath,
		"-map", "[right]", rightPath,
	}
	if err := c.run(ctx, args); err != nil {
		return services.Wrap(services.ErrExternalTool, "split", "ffmpeg channelsplit", "", err)
	}
	return nil
}

// DetectSilence runs the silencedetect filter over a channel file and returns
// the raw diagnostic text for parsing.
func (c *Client) DetectSilence(ctx context.Context, input string, noiseDb, minSilenceSec float64) (string, error) {
	filter := fmt.Sprintf("silencedetect=noise=%sdB:d=%s",
		formatSeconds(noiseDb), formatSeconds(minSilenceSec))
	args := []string{"-i", input, "-af", filter, "-f", "null", "-"}

	var diagnostics strings.Builder
	err := c.exec.Run(ctx, c.binary, args, func(line string) {
		diagnostics.WriteString(line)
		diagnostics.WriteByte('\n')
	})
	if err != nil {
		return "", services.Wrap(services.ErrExternalTool, "detect", "ffmpeg silencedetect",
			tail(diagnostics.String()), err)
	}
	return diagnostics.String(), nil
}

// RenderSegment cuts one time range from an isolated channel file, applies
// the fade windows and the channel-isolation pan, and encodes it with the
// intermediate codec.
func (c *Client) RenderSegment(ctx context.Context, req RenderRequest) error {
	filters := []string{
		fmt.Sprintf("afade=in:st=0:d=%s", formatSeconds(req.Fade.In)),
		fmt.Sprintf("afade=out:st=%s:d=%s", formatSeconds(req.Fade.OutStart), formatSeconds(req.Fade.Out)),
		panFilter(req.Channel),
	}
	args := []string{
		"-loglevel", "error",
		"-y",
		"-ss", formatSeconds(req.Segment.Start),
		"-to", formatSeconds(req.Segment.End),
		"-i", req.Input,
		"-filter_complex", strings.Join(filters, ","),
		"-ac", "2",
		"-ar", strconv.Itoa(req.SampleRate),
		"-sample_fmt", req.SampleFormat,
		"-c:a", req.Codec,
		req.Output,
	}
	if err := c.run(ctx, args); err != nil {
		op := fmt.Sprintf("ffmpeg render %s [%s, %s)", req.Channel,
			formatSeconds(req.Segment.Start), formatSeconds(req.Segment.End))
		return services.Wrap(services.ErrExternalTool, "render", op, "", err)
	}
	return nil
}

// Concatenate stitches the manifest's files into the final output using the
// concat demuxer.
func (c *Client) Concatenate(ctx context.Context, req ConcatRequest) error {
	args := []string{
		"-loglevel", "error",
		"-y",
		"-f", "concat", "-safe", "0",
		"-i", req.ListPath,
		"-c:a", req.Codec,
		"-ar", strconv.Itoa(req.SampleRate),
		"-sample_fmt", req.SampleFormat,
		req.Output,
	}
	if err := c.run(ctx, args); err != nil {
		return services.Wrap(services.ErrExternalTool, "concat", "ffmpeg concat", "", err)
	}
	return nil
}

func (c *Client) run(ctx context.Context, args []string) error {
	var recent []string
	err := c.exec.Run(ctx, c.binary, args, func(line string) {
		recent = append(recent, line)
		if len(recent) > errorTailLines {
			recent = recent[1:]
		}
	})
	if err != nil && len(recent) > 0 {
		return fmt.Errorf("%w: %s", err, strings.Join(recent, "; "))
	}
	return err
}

// panFilter renders a stereo-positioned mono signal so only one logical
// channel is audible.
func panFilter(ch segment.Channel) string {
	if ch == segment.ChannelRight {
		return "pan=stereo|c0=0*c0|c1=1*c0"
	}
	return "pan=stereo|c0=1*c0|c1=0*c0"
}

func formatSeconds(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func tail(output string) string {
	lines := strings.Split(strings.TrimSpace(output), "\n")
	if len(lines) > errorTailLines {
		lines = lines[len(lines)-errorTailLines:]
	}
	return strings.TrimSpace(strings.Join(lines, "; "))
}
