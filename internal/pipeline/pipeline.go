package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"interlace/internal/config"
	"interlace/internal/encode"
	"interlace/internal/media/ffprobe"
	"interlace/internal/segment"
	"interlace/internal/services"
	"interlace/internal/services/ffmpeg"
)

// Engine is the subset of ffmpeg operations the pipeline drives.
type Engine interface {
	SplitChannels(ctx context.Context, input, leftPath, rightPath string) error
	DetectSilence(ctx context.Context, input string, noiseDb, minSilenceSec float64) (string, error)
	RenderSegment(ctx context.Context, req ffmpeg.RenderRequest) error
	Concatenate(ctx context.Context, req ffmpeg.ConcatRequest) error
}

// Prober inspects media files.
type Prober interface {
	Params(ctx context.Context, path string) (ffprobe.AudioParams, error)
	Duration(ctx context.Context, path string) (float64, error)
}

// Request describes one interlacing run.
type Request struct {
	Input    string
	Output   string
	Force    bool
	KeepTemp bool
	PlanOnly bool
}

// Result reports what a run produced.
type Result struct {
	OutputPath    string
	WorkspaceDir  string
	Params        ffprobe.AudioParams
	Target        encode.Target
	Plan          []segment.RenderedSegment
	LeftSegments  int
	RightSegments int
	PlanOnly      bool
}

// Runner executes interlacing runs. Engine and Prober are required; the
// callbacks are optional.
type Runner struct {
	Config *config.Config
	Logger *slog.Logger
	Engine Engine
	Prober Prober

	// PlanFunc receives the interleaved plan and the final encode target
	// before any segment is rendered.
	PlanFunc func(plan []segment.RenderedSegment, target encode.Target)
	// ProgressFunc is called after each segment render completes.
	ProgressFunc func(completed, total int)
}

// NewRunner wires a runner from configuration.
func NewRunner(cfg *config.Config, logger *slog.Logger) (*Runner, error) {
	if cfg == nil {
		return nil, errors.New("pipeline: config required")
	}
	engine, err := ffmpeg.New(cfg.Tools.FFmpegBinary)
	if err != nil {
		return nil, err
	}
	return &Runner{
		Config: cfg,
		Logger: logger,
		Engine: engine,
		Prober: ffprobe.Prober{Binary: cfg.Tools.FFprobeBinary},
	}, nil
}

// Run executes the full pipeline for one input/output pair.
func (r *Runner) Run(ctx context.Context, req Request) (*Result, error) {
	if r.Engine == nil || r.Prober == nil {
		return nil, errors.New("pipeline: engine and prober required")
	}

	container, err := encode.ContainerForPath(req.Output)
	if err != nil {
		return nil, err
	}

	if err := checkOutputCollision(req.Output, req.Force); err != nil {
		return nil, err
	}
	if _, err := os.Stat(req.Input); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, services.Wrap(services.ErrConfiguration, "setup", "input file",
				fmt.Sprintf("%s does not exist", req.Input), nil)
		}
		return nil, fmt.Errorf("stat input: %w", err)
	}

	params, err := r.Prober.Params(ctx, req.Input)
	if err != nil {
		return nil, err
	}
	if params.Channels != 2 {
		return nil, services.Wrap(services.ErrConfiguration, "setup", "input file",
			fmt.Sprintf("expected stereo input, got %d channel(s)", params.Channels), nil)
	}

	// Both resolutions must succeed before any engine work starts, so an
	// unsupported sample format fails without touching the temp root.
	intermediate, err := encode.ResolveIntermediate(params.SampleFormat)
	if err != nil {
		return nil, err
	}
	target, err := encode.ResolveFinal(params.SampleFormat, container)
	if err != nil {
		return nil, err
	}

	ws, err := newWorkspace(r.Config.Paths.TempDir)
	if err != nil {
		return nil, err
	}
	ctx = services.WithRunID(ctx, ws.runID)
	logger := r.logger().With("run_id", ws.runID)
	keepTemp := req.KeepTemp
	defer func() {
		if err := ws.cleanup(keepTemp); err != nil {
			logger.Warn("workspace cleanup failed", "error", err)
		}
	}()

	logger.Info("run started",
		"input", req.Input,
		"output", req.Output,
		"sample_rate", params.SampleRate,
		"sample_format", params.SampleFormat,
		"container", container.String())

	leftFile := ws.channelPath(segment.ChannelLeft)
	rightFile := ws.channelPath(segment.ChannelRight)
	if err := r.Engine.SplitChannels(ctx, req.Input, leftFile, rightFile); err != nil {
		return nil, err
	}

	schedules, err := r.scheduleChannels(ctx, leftFile, rightFile)
	if err != nil {
		return nil, err
	}

	left := plannedSegments(ws, segment.ChannelLeft, schedules[segment.ChannelLeft])
	right := plannedSegments(ws, segment.ChannelRight, schedules[segment.ChannelRight])
	plan := segment.Interleave(left, right)
	if r.PlanFunc != nil {
		r.PlanFunc(plan, target)
	}

	result := &Result{
		OutputPath:    req.Output,
		WorkspaceDir:  ws.dir,
		Params:        params,
		Target:        target,
		Plan:          plan,
		LeftSegments:  len(left),
		RightSegments: len(right),
	}

	if req.PlanOnly {
		result.PlanOnly = true
		return result, nil
	}

	channelFiles := map[segment.Channel]string{
		segment.ChannelLeft:  leftFile,
		segment.ChannelRight: rightFile,
	}
	if err := r.renderPlan(ctx, plan, channelFiles, intermediate, params); err != nil {
		return nil, err
	}

	if target.Coerced {
		logger.Warn("floating-point source coerced for flac output",
			"source_format", params.SampleFormat,
			"target_format", target.SampleFormat)
	}

	listPath, err := ws.writeManifest(plan)
	if err != nil {
		return nil, err
	}
	scratch := ws.scratchOutput(filepath.Ext(req.Output))
	if err := r.Engine.Concatenate(ctx, ffmpeg.ConcatRequest{
		ListPath:     listPath,
		Output:       scratch,
		Codec:        target.Codec,
		SampleRate:   params.SampleRate,
		SampleFormat: encode.PackedFormat(target.SampleFormat),
	}); err != nil {
		return nil, err
	}

	if err := moveIntoPlace(scratch, req.Output); err != nil {
		return nil, err
	}

	logger.Info("run complete", "output", req.Output, "segments", len(plan))
	return result, nil
}

// scheduleChannels runs silence detection and segmentation for both channels
// concurrently.
func (r *Runner) scheduleChannels(ctx context.Context, leftFile, rightFile string) (map[segment.Channel][]segment.Segment, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	type outcome struct {
		channel  segment.Channel
		segments []segment.Segment
		err      error
	}

	files := map[segment.Channel]string{
		segment.ChannelLeft:  leftFile,
		segment.ChannelRight: rightFile,
	}
	results := make(chan outcome, len(files))
	for ch, file := range files {
		go func(ch segment.Channel, file string) {
			segments, err := r.scheduleChannel(ctx, ch, file)
			if err != nil {
				cancel()
			}
			results <- outcome{channel: ch, segments: segments, err: err}
		}(ch, file)
	}

	schedules := make(map[segment.Channel][]segment.Segment, len(files))
	var firstErr error
	for range files {
		res := <-results
		if res.err != nil && firstErr == nil {
			firstErr = res.err
		}
		schedules[res.channel] = res.segments
	}
	if firstErr != nil {
		return nil, firstErr
	}
	return schedules, nil
}

// renderPlan renders every planned segment through a bounded worker pool.
// The first failure cancels outstanding work.
func (r *Runner) renderPlan(ctx context.Context, plan []segment.RenderedSegment, channelFiles map[segment.Channel]string, codec encode.Codec, params ffprobe.AudioParams) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	workers := r.Config.Processing.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(plan) && len(plan) > 0 {
		workers = len(plan)
	}

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		firstErr  error
		completed int
	)
	sem := make(chan struct{}, workers)
	fadeMs := r.Config.Processing.FadeMs

	for _, entry := range plan {
		select {
		case <-ctx.Done():
		case sem <- struct{}{}:
			wg.Add(1)
			go func(entry segment.RenderedSegment) {
				defer wg.Done()
				defer func() { <-sem }()

				err := r.Engine.RenderSegment(ctx, ffmpeg.RenderRequest{
					Input:        channelFiles[entry.Channel],
					Output:       entry.Path,
					Segment:      entry.Segment,
					Fade:         segment.ComputeFadeWindow(entry.Segment, fadeMs),
					Channel:      entry.Channel,
					Codec:        codec.Name,
					SampleRate:   params.SampleRate,
					SampleFormat: encode.PackedFormat(params.SampleFormat),
				})

				mu.Lock()
				if err != nil {
					if firstErr == nil {
						firstErr = err
					}
					mu.Unlock()
					cancel()
					return
				}
				completed++
				done := completed
				progress := r.ProgressFunc
				mu.Unlock()
				if progress != nil {
					progress(done, len(plan))
				}
			}(entry)
		}
	}
	wg.Wait()

	if firstErr != nil {
		return firstErr
	}
	return ctx.Err()
}

func (r *Runner) logger() *slog.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return slog.Default()
}

func checkOutputCollision(path string, force bool) error {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("stat output: %w", err)
	}
	if info.IsDir() {
		return services.Wrap(services.ErrConfiguration, "setup", "output file",
			fmt.Sprintf("%s is a directory", path), nil)
	}
	if !force {
		return services.Wrap(services.ErrConfiguration, "setup", "output file",
			fmt.Sprintf("%s already exists (use --force to overwrite)", path), nil)
	}
	return nil
}

// moveIntoPlace renames the scratch output to its final destination, falling
// back to a copy when the rename crosses filesystems.
func moveIntoPlace(scratch, dest string) error {
	if dir := filepath.Dir(dest); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}
	if err := os.Rename(scratch, dest); err == nil {
		return nil
	}
	src, err := os.Open(scratch)
	if err != nil {
		return fmt.Errorf("open scratch output: %w", err)
	}
	defer src.Close()
	dst, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		_ = os.Remove(dest)
		return fmt.Errorf("copy output: %w", err)
	}
	if err := dst.Close(); err != nil {
		return fmt.Errorf("finalize output: %w", err)
	}
	return os.Remove(scratch)
}
