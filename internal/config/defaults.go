package config

const (
	defaultFadeMs        = 500
	defaultMinSegmentSec = 1.0
	defaultMinSilenceSec = 0.5
	defaultNoiseLevelDb  = -30.0
	defaultTempDir       = "temp"
	defaultFFmpegBinary  = "ffmpeg"
	defaultFFprobeBinary = "ffprobe"
	defaultLogFormat     = "console"
	defaultLogLevel      = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Processing: Processing{
			FadeMs:        defaultFadeMs,
			MinSegmentSec: defaultMinSegmentSec,
			MinSilenceSec: defaultMinSilenceSec,
			NoiseLevelDb:  defaultNoiseLevelDb,
		},
		Paths: Paths{
			TempDir: defaultTempDir,
		},
		Tools: Tools{
			FFmpegBinary:  defaultFFmpegBinary,
			FFprobeBinary: defaultFFprobeBinary,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
