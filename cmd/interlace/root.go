package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	opts := newRunOptions()

	rootCmd := &cobra.Command{
		Use:           "interlace",
		Short:         "Interlace stereo channels into one alternating track",
		Long: "interlace splits a stereo recording into its two channels, cuts each\n" +
			"channel at silence midpoints, and stitches the segments back together in\n" +
			"chronological order so the channels alternate in a single track.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInterlace(cmd, opts)
		},
	}

	flags := rootCmd.Flags()
	flags.StringVarP(&opts.input, "input", "i", "", "Stereo input file")
	flags.StringVarP(&opts.output, "output", "o", "", "Output file (.wav or .flac)")
	flags.IntVar(&opts.fadeMs, "fade", 0, "Fade duration per segment in milliseconds")
	flags.Float64Var(&opts.minSegment, "min-segment", 0, "Minimum segment length in seconds")
	flags.Float64Var(&opts.minSilence, "min-silence", 0, "Minimum silence duration in seconds")
	flags.Float64Var(&opts.noiseLevel, "noise-level", 0, "Silence threshold in dB")
	flags.StringVar(&opts.tempDir, "temp-dir", "", "Scratch directory for intermediate files")
	flags.BoolVar(&opts.keepTemp, "keep-temp", false, "Keep intermediate files after the run")
	flags.BoolVarP(&opts.force, "force", "f", false, "Overwrite the output file if it exists")
	flags.IntVar(&opts.workers, "workers", 0, "Concurrent segment renders (0 = automatic)")
	flags.BoolVar(&opts.printPlan, "print-plan", false, "Print the interleave plan and exit without rendering")
	flags.BoolVar(&opts.noProgress, "no-progress", false, "Disable the progress bar")
	flags.StringVarP(&opts.configPath, "config", "c", "", "Configuration file path")
	flags.StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flags.StringVar(&opts.logFormat, "log-format", "", "Log format (console, json)")

	_ = rootCmd.MarkFlagRequired("input")
	_ = rootCmd.MarkFlagRequired("output")

	rootCmd.AddCommand(newConfigCommand())
	rootCmd.AddCommand(newStatusCommand())

	return rootCmd
}
