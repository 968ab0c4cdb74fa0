package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"interlace/internal/config"
	"interlace/internal/deps"
	"interlace/internal/encode"
	"interlace/internal/logging"
	"interlace/internal/pipeline"
	"interlace/internal/segment"
)

type runOptions struct {
	input      string
	output     string
	fadeMs     int
	minSegment float64
	minSilence float64
	noiseLevel float64
	tempDir    string
	keepTemp   bool
	force      bool
	workers    int
	printPlan  bool
	noProgress bool
	configPath string
	logLevel   string
	logFormat  string
}

func newRunOptions() *runOptions {
	return &runOptions{}
}

// loadConfig resolves the effective configuration: file values first, then
// explicit flag overrides, then a final validation pass.
func (o *runOptions) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, _, _, err := config.Load(o.configPath)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("fade") {
		cfg.Processing.FadeMs = o.fadeMs
	}
	if flags.Changed("min-segment") {
		cfg.Processing.MinSegmentSec = o.minSegment
	}
	if flags.Changed("min-silence") {
		cfg.Processing.MinSilenceSec = o.minSilence
	}
	if flags.Changed("noise-level") {
		cfg.Processing.NoiseLevelDb = o.noiseLevel
	}
	if flags.Changed("workers") {
		cfg.Processing.Workers = o.workers
	}
	if flags.Changed("temp-dir") {
		expanded, err := config.ExpandPath(o.tempDir)
		if err != nil {
			return nil, err
		}
		cfg.Paths.TempDir = expanded
	}
	if flags.Changed("log-level") {
		cfg.Logging.Level = strings.ToLower(strings.TrimSpace(o.logLevel))
	}
	if flags.Changed("log-format") {
		cfg.Logging.Format = strings.ToLower(strings.TrimSpace(o.logFormat))
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runInterlace(cmd *cobra.Command, opts *runOptions) error {
	cfg, err := opts.loadConfig(cmd)
	if err != nil {
		return err
	}

	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		return err
	}

	statuses := deps.CheckSystemDeps(cfg)
	if missing := deps.MissingRequired(statuses); len(missing) > 0 {
		return fmt.Errorf("missing required tools: %s (run 'interlace status' for details)",
			strings.Join(missing, ", "))
	}

	input, err := config.ExpandPath(opts.input)
	if err != nil {
		return err
	}
	output, err := config.ExpandPath(opts.output)
	if err != nil {
		return err
	}

	runner, err := pipeline.NewRunner(cfg, logger)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if opts.printPlan {
		runner.PlanFunc = func(plan []segment.RenderedSegment, target encode.Target) {
			fmt.Fprintln(out, renderPlanTable(plan, target))
		}
	}
	progress := newProgressReporter(out, opts.noProgress)
	runner.ProgressFunc = progress.update
	defer progress.finish()

	result, err := runner.Run(cmd.Context(), pipeline.Request{
		Input:    input,
		Output:   output,
		Force:    opts.force,
		KeepTemp: opts.keepTemp,
		PlanOnly: opts.printPlan,
	})
	if err != nil {
		return err
	}
	progress.finish()

	if result.PlanOnly {
		fmt.Fprintf(out, "Planned %d segments (%d left, %d right); nothing rendered.\n",
			len(result.Plan), result.LeftSegments, result.RightSegments)
		return nil
	}

	fmt.Fprintf(out, "Wrote %s (%d segments: %d left, %d right)\n",
		result.OutputPath, len(result.Plan), result.LeftSegments, result.RightSegments)
	if result.Target.Coerced {
		fmt.Fprintf(out, "Note: %s source was encoded as %s for FLAC output.\n",
			result.Params.SampleFormat, result.Target.SampleFormat)
	}
	if opts.keepTemp {
		fmt.Fprintf(out, "Intermediate files kept in %s\n", result.WorkspaceDir)
	}
	return nil
}
