package ffmpeg_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"interlace/internal/segment"
	"interlace/internal/services"
	"interlace/internal/services/ffmpeg"
)

type stubExecutor struct {
	lines []string
	err   error
	calls int
	args  [][]string
}

func (s *stubExecutor) Run(ctx context.Context, binary string, args []string, onLine func(string)) error {
	s.calls++
	s.args = append(s.args, append([]string(nil), args...))
	for _, line := range s.lines {
		onLine(line)
	}
	return s.err
}

func newClient(t *testing.T, exec ffmpeg.Executor) *ffmpeg.Client {
	t.Helper()
	client, err := ffmpeg.New("ffmpeg", ffmpeg.WithExecutor(exec))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	return client
}

func TestNewRequiresBinary(t *testing.T) {
	if _, err := ffmpeg.New("  "); err == nil {
		t.Fatal("expected error for empty binary")
	}
}

func TestDetectSilenceBuildsFilterAndCollectsOutput(t *testing.T) {
	exec := &stubExecutor{lines: []string{
		"[silencedetect] silence_start: 1.5",
		"[silencedetect] silence_end: 2.5 | silence_duration: 1.0",
	}}
	client := newClient(t, exec)

	diagnostics, err := client.DetectSilence(context.Background(), "left.wav", -30.0, 0.5)
	if err != nil {
		t.Fatalf("DetectSilence returned error: %v", err)
	}
	if !strings.Contains(diagnostics, "silence_start: 1.5") {
		t.Fatalf("diagnostics missing detector output: %q", diagnostics)
	}

	args := exec.args[0]
	joined := strings.Join(args, " ")
	if !strings.Contains(joined, "silencedetect=noise=-30dB:d=0.5") {
		t.Fatalf("unexpected filter args: %v", args)
	}
	if args[len(args)-2] != "null" || args[len(args)-1] != "-" {
		t.Fatalf("expected null muxer sink, got %v", args)
	}
}

func TestDetectSilenceWrapsFailure(t *testing.T) {
	exec := &stubExecutor{err: errors.New("exit status 1"), lines: []string{"left.wav: No such file or directory"}}
	client := newClient(t, exec)

	_, err := client.DetectSilence(context.Background(), "left.wav", -30.0, 0.5)
	if err == nil {
		t.Fatal("expected error from executor")
	}
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected external tool classification, got %v", err)
	}
	if !strings.Contains(err.Error(), "No such file") {
		t.Fatalf("expected engine output in error, got %v", err)
	}
}

func TestRenderSegmentAssemblesFilterChain(t *testing.T) {
	exec := &stubExecutor{}
	client := newClient(t, exec)

	err := client.RenderSegment(context.Background(), ffmpeg.RenderRequest{
		Input:        "left.wav",
		Output:       "left/segment_0001.wav",
		Segment:      segment.Segment{Start: 5.35, End: 8.0},
		Fade:         segment.FadeWindow{In: 0.5, OutStart: 2.15, Out: 0.5},
		Channel:      segment.ChannelLeft,
		Codec:        "pcm_s16le",
		SampleRate:   44100,
		SampleFormat: "s16",
	})
	if err != nil {
		t.Fatalf("RenderSegment returned error: %v", err)
	}

	joined := strings.Join(exec.args[0], " ")
	for _, want := range []string{
		"-ss 5.35",
		"-to 8",
		"afade=in:st=0:d=0.5",
		"afade=out:st=2.15:d=0.5",
		"pan=stereo|c0=1*c0|c1=0*c0",
		"-ac 2",
		"-ar 44100",
		"-sample_fmt s16",
		"-c:a pcm_s16le",
	} {
		if !strings.Contains(joined, want) {
			t.Fatalf("render args missing %q: %v", want, exec.args[0])
		}
	}
}

func TestRenderSegmentRightChannelPan(t *testing.T) {
	exec := &stubExecutor{}
	client := newClient(t, exec)

	err := client.RenderSegment(context.Background(), ffmpeg.RenderRequest{
		Input:        "right.wav",
		Output:       "right/segment_0000.wav",
		Segment:      segment.Segment{Start: 0, End: 2.3},
		Fade:         segment.FadeWindow{In: 0.5, OutStart: 1.8, Out: 0.5},
		Channel:      segment.ChannelRight,
		Codec:        "pcm_s16le",
		SampleRate:   48000,
		SampleFormat: "s16",
	})
	if err != nil {
		t.Fatalf("RenderSegment returned error: %v", err)
	}
	if !strings.Contains(strings.Join(exec.args[0], " "), "pan=stereo|c0=0*c0|c1=1*c0") {
		t.Fatalf("expected right-channel pan, got %v", exec.args[0])
	}
}

func TestConcatenateBuildsDemuxerArgs(t *testing.T) {
	exec := &stubExecutor{}
	client := newClient(t, exec)

	err := client.Concatenate(context.Background(), ffmpeg.ConcatRequest{
		ListPath:     "concat.txt",
		Output:       "out.flac",
		Codec:        "flac",
		SampleRate:   44100,
		SampleFormat: "s32",
	})
	if err != nil {
		t.Fatalf("Concatenate returned error: %v", err)
	}

	joined := strings.Join(exec.args[0], " ")
	for _, want := range []string{"-f concat", "-safe 0", "-i concat.txt", "-c:a flac", "-sample_fmt s32", "out.flac"} {
		if !strings.Contains(joined, want) {
			t.Fatalf("concat args missing %q: %v", want, exec.args[0])
		}
	}
}

func TestSplitChannelsMapsBothOutputs(t *testing.T) {
	exec := &stubExecutor{}
	client := newClient(t, exec)

	if err := client.SplitChannels(context.Background(), "in.wav", "left.wav", "right.wav"); err != nil {
		t.Fatalf("SplitChannels returned error: %v", err)
	}
	joined := strings.Join(exec.args[0], " ")
	for _, want := range []string{
		"channelsplit=channel_layout=stereo[left][right]",
		"-map [left] left.wav",
		"-map [right] right.wav",
	} {
		if !strings.Contains(joined, want) {
			t.Fatalf("split args missing %q: %v", want, exec.args[0])
		}
	}
}

func TestSplitChannelsWrapsFailure(t *testing.T) {
	exec := &stubExecutor{err: errors.New("exit status 1")}
	client := newClient(t, exec)

	err := client.SplitChannels(context.Background(), "in.wav", "l.wav", "r.wav")
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected external tool classification, got %v", err)
	}
}
